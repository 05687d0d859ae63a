package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrCatalogNotReady is returned while the catalog is still loading
var ErrCatalogNotReady = errors.New("catalog not ready")

// Holder is the process-wide catalog slot
// It is resolved exactly once, by Set or Fail; later calls are ignored
type Holder struct {
	mu   sync.RWMutex
	cat  *Catalog
	err  error
	done chan struct{}
}

// NewHolder creates an unresolved holder
func NewHolder() *Holder {
	return &Holder{done: make(chan struct{})}
}

// NewReadyHolder creates a holder already resolved with cat
func NewReadyHolder(cat *Catalog) *Holder {
	h := NewHolder()
	h.Set(cat)
	return h
}

// Set resolves the holder with a loaded catalog; it reports whether this call resolved it
// A nil catalog resolves the holder as a load failure
func (h *Holder) Set(cat *Catalog) bool {
	if cat == nil {
		return h.Fail(&LoadError{Reason: "nil catalog"})
	}
	return h.resolve(cat, nil)
}

// Fail resolves the holder with a load error; it reports whether this call resolved it
func (h *Holder) Fail(err error) bool {
	if err == nil {
		err = &LoadError{Reason: "unknown failure"}
	}
	return h.resolve(nil, err)
}

func (h *Holder) resolve(cat *Catalog, err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		return false
	default:
	}
	h.cat, h.err = cat, err
	close(h.done)
	return true
}

// Get returns the catalog, ErrCatalogNotReady while loading, or the load error
func (h *Holder) Get() (*Catalog, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	select {
	case <-h.done:
		return h.cat, h.err
	default:
		return nil, ErrCatalogNotReady
	}
}

// Ready reports whether a catalog was loaded successfully
func (h *Holder) Ready() bool {
	cat, err := h.Get()
	return err == nil && cat != nil
}

// Wait blocks until the holder is resolved or ctx is done
func (h *Holder) Wait(ctx context.Context) (*Catalog, error) {
	select {
	case <-h.done:
		return h.Get()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
