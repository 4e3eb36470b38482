package catalog

import "testing"

func TestWindowResetCapsAtTotal(t *testing.T) {
	w := NewWindow(12)
	w.Reset(5)
	if w.Visible() != 5 {
		t.Fatalf("visible must not exceed total, got %d", w.Visible())
	}
	if !w.Done() {
		t.Fatalf("window should be done when everything is visible")
	}
}

func TestWindowAdvanceGrowsByChunk(t *testing.T) {
	w := NewWindow(10)
	w.Reset(25)
	if w.Visible() != 10 {
		t.Fatalf("initial visible = %d, want 10", w.Visible())
	}
	if !w.Advance() {
		t.Fatalf("advance should grow the window")
	}
	if w.Visible() != 20 {
		t.Fatalf("visible = %d, want 20", w.Visible())
	}
	if !w.Advance() {
		t.Fatalf("advance should grow to the cap")
	}
	if w.Visible() != 25 {
		t.Fatalf("visible = %d, want capped 25", w.Visible())
	}
	if w.Advance() {
		t.Fatalf("advance past total must be a no-op")
	}
	if w.Visible() != 25 {
		t.Fatalf("visible must never exceed total, got %d", w.Visible())
	}
}

func TestWindowResetShrinksOnlyOnFilterChange(t *testing.T) {
	w := NewWindow(10)
	w.Reset(40)
	w.Advance()
	w.Advance()
	if w.Visible() != 30 {
		t.Fatalf("visible = %d, want 30", w.Visible())
	}
	w.Reset(40)
	if w.Visible() != 10 {
		t.Fatalf("reset must return to the initial chunk, got %d", w.Visible())
	}
}

func TestWindowZeroTotal(t *testing.T) {
	w := NewWindow(10)
	w.Reset(0)
	if w.Visible() != 0 {
		t.Fatalf("empty list shows nothing, got %d", w.Visible())
	}
	if w.Advance() {
		t.Fatalf("advance on empty list must be a no-op")
	}
}
