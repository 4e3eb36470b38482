package catalog

// Window is the incremental render window: a visible count that grows in
// fixed chunks as the user scrolls and resets whenever the filtered list
// changes identity. Visible never exceeds the total and never shrinks except
// on reset.
type Window struct {
	chunk   int
	total   int
	visible int
}

func NewWindow(chunk int) *Window {
	if chunk < 1 {
		chunk = 1
	}
	return &Window{chunk: chunk}
}

// Reset pins the window to a new filtered list of the given length.
func (w *Window) Reset(total int) {
	if total < 0 {
		total = 0
	}
	w.total = total
	w.visible = w.chunk
	if w.visible > total {
		w.visible = total
	}
}

// Advance grows the visible count by one chunk, capped at the total.
// Returns true if the window actually grew.
func (w *Window) Advance() bool {
	if w.visible >= w.total {
		return false
	}
	w.visible += w.chunk
	if w.visible > w.total {
		w.visible = w.total
	}
	return true
}

func (w *Window) Visible() int { return w.visible }

func (w *Window) Total() int { return w.total }

// Done reports whether everything is already visible.
func (w *Window) Done() bool { return w.visible >= w.total }
