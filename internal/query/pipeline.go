// Package query turns search/category intent into a single authoritative
// product list. Typing is debounced, a new request aborts the in-flight one,
// and a monotonic sequence number drops completions that arrive out of order.
package query

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"kitstore/internal/domain"
	"kitstore/internal/gateway"
)

type ProductSource interface {
	ListProducts(ctx context.Context, params gateway.ListProductsParams) ([]domain.Product, error)
}

type Pipeline struct {
	source   ProductSource
	logger   *log.Logger
	debounce time.Duration
	limit    int
	onUpdate func([]domain.Product)

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	timer    *time.Timer
	products []domain.Product
}

// New builds a Pipeline. onUpdate, if non-nil, is invoked with a snapshot of
// the product list every time an accepted response lands.
func New(source ProductSource, debounce time.Duration, limit int, onUpdate func([]domain.Product), logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pipeline{
		source:   source,
		logger:   logger,
		debounce: debounce,
		limit:    limit,
		onUpdate: onUpdate,
	}
}

// SetQuery registers new search intent. A non-empty trimmed search waits out
// the debounce interval before fetching; clearing the search fetches
// immediately so an emptied box feels instant.
func (p *Pipeline) SetQuery(search, categorySlug string) {
	trimmed := strings.TrimSpace(search)

	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if trimmed == "" {
		p.mu.Unlock()
		p.dispatch(trimmed, categorySlug)
		return
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		p.dispatch(trimmed, categorySlug)
	})
	p.mu.Unlock()
}

// Refresh re-issues the current-slot fetch immediately with the given
// parameters, bypassing the debounce.
func (p *Pipeline) Refresh(search, categorySlug string) {
	p.dispatch(strings.TrimSpace(search), categorySlug)
}

// Results returns a snapshot of the last accepted product list.
func (p *Pipeline) Results() []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Product, len(p.products))
	copy(out, p.products)
	return out
}

// Close aborts any in-flight fetch and pending debounce timer.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pipeline) dispatch(search, categorySlug string) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		products, err := p.source.ListProducts(ctx, gateway.ListProductsParams{
			Search:       search,
			CategorySlug: categorySlug,
			Limit:        p.limit,
		})
		p.complete(seq, products, err)
	}()
}

// complete applies a fetch result unless a newer request has superseded it.
func (p *Pipeline) complete(seq uint64, products []domain.Product, err error) {
	p.mu.Lock()
	if seq != p.seq {
		// Stale: a newer request owns the slot now.
		p.mu.Unlock()
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			p.mu.Unlock()
			return
		}
		p.logger.Printf("query: fetch products: %v", err)
		p.products = []domain.Product{}
	} else {
		if products == nil {
			products = []domain.Product{}
		}
		p.products = products
	}
	snapshot := make([]domain.Product, len(p.products))
	copy(snapshot, p.products)
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(snapshot)
	}
}
