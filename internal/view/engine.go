package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/sse"
)

// ErrDisposed is returned when a command reaches an engine whose view is gone.
var ErrDisposed = errors.New("view: engine disposed")

// Status is the lifecycle state of the listing view.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusFiltered Status = "filtered"
)

// ProductLister fetches the full catalog.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Status   Status           `json:"status"`
	Filters  FilterState      `json:"filters"`
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

// Engine owns the full product list of one listing view and derives the
// displayed list from it. Events are serialized by mu.
type Engine struct {
	mu       sync.Mutex
	lister   ProductLister
	notifier sse.Notifier

	mounted  bool
	loaded   bool
	disposed bool
	filtered bool

	full      []models.Product
	displayed []models.Product
	filters   FilterState
	urlSeen   bool
}

// NewEngine creates an engine in the loading state.
func NewEngine(lister ProductLister, notifier sse.Notifier) *Engine {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &Engine{
		lister:   lister,
		notifier: notifier,
		filters:  defaultFilterState(),
	}
}

// Mount fetches the full list once. On failure the engine stays loading and
// later calls do not retry. A result arriving after Dispose is dropped.
func (e *Engine) Mount(ctx context.Context) error {
	e.mu.Lock()
	if e.mounted || e.disposed {
		e.mu.Unlock()
		return nil
	}
	e.mounted = true
	e.mu.Unlock()

	products, err := e.lister.ListProducts(ctx)

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		log.Debug().Msg("view: dropping product list for disposed view")
		return ErrDisposed
	}
	if err != nil {
		e.mu.Unlock()
		log.Error().Err(err).Msg("view: failed to load products")
		return fmt.Errorf("load products: %w", err)
	}

	e.full = clone(products)
	e.displayed = clone(products)
	e.loaded = true
	e.filtered = false
	e.applyURLCategoryLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	log.Info().Int("products", len(products)).Msg("view: products loaded")
	e.publish(snap)
	return nil
}

// SetURLCategory records the category query parameter. When it differs from
// the last one seen and the list is loaded, the displayed list is rebuilt from
// it alone, discarding every manually applied filter.
func (e *Engine) SetURLCategory(category *string) Snapshot {
	if category != nil && *category == "" {
		category = nil
	}

	e.mu.Lock()
	if e.disposed {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}
	changed := !e.urlSeen || !sameCategory(e.filters.URLCategory, category)
	e.urlSeen = true
	e.filters.URLCategory = category
	rebuild := changed && e.loaded
	if rebuild {
		e.applyURLCategoryLocked()
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if rebuild {
		e.publish(snap)
	}
	return snap
}

func (e *Engine) applyURLCategoryLocked() {
	if len(e.full) == 0 {
		return
	}
	if c := e.filters.URLCategory; c != nil {
		e.displayed = byCategory(e.full, *c)
		e.filtered = true
		return
	}
	e.displayed = clone(e.full)
	e.filtered = false
}

// Dispatch applies a filter command. Before the list is loaded only the
// control state changes.
func (e *Engine) Dispatch(cmd Command) (Snapshot, error) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return Snapshot{}, ErrDisposed
	}
	cmd.update(&e.filters)
	if e.loaded {
		e.displayed = cmd.derive(e.full)
		e.filtered = !cmd.identity()
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
	return snap, nil
}

// Dispose marks the view as gone. Pending and future results become no-ops.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disposed = true
}

// Disposed reports whether Dispose was called.
func (e *Engine) Disposed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disposed
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	status := StatusLoading
	switch {
	case e.loaded && e.filtered:
		status = StatusFiltered
	case e.loaded:
		status = StatusReady
	}
	return Snapshot{
		Status:   status,
		Filters:  e.filters,
		Products: clone(e.displayed),
		Total:    len(e.full),
	}
}

func (e *Engine) publish(snap Snapshot) {
	e.notifier.Notify(sse.EventViewChanged, map[string]any{
		"status":    snap.Status,
		"displayed": len(snap.Products),
		"total":     snap.Total,
	})
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
