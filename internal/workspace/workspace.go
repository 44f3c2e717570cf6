package workspace

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/GTDGit/gtd_storefront/internal/sse"
	"github.com/GTDGit/gtd_storefront/internal/state"
	"github.com/GTDGit/gtd_storefront/internal/view"
)

// Workspace is the state of one browser: its stores, its listing view and its
// event stream. A fresh workspace starts logged out with dark mode off.
type Workspace struct {
	ID          string
	Favorites   *state.FavoritesStore
	Session     *state.SessionStore
	Preferences *state.PreferenceStore
	Notifier    sse.Notifier

	lister view.ProductLister

	mu       sync.Mutex
	engine   *view.Engine
	lastSeen time.Time

	submitting atomic.Bool
}

// View returns the live listing engine, creating a fresh one when none
// exists or the previous one was disposed.
func (w *Workspace) View() *view.Engine {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil || w.engine.Disposed() {
		w.engine = view.NewEngine(w.lister, w.Notifier)
	}
	return w.engine
}

// CurrentView returns the live engine without creating one.
func (w *Workspace) CurrentView() (*view.Engine, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.engine == nil || w.engine.Disposed() {
		return nil, false
	}
	return w.engine, true
}

// DisposeView tears down the listing view. An in-flight load is dropped.
func (w *Workspace) DisposeView() {
	w.mu.Lock()
	e := w.engine
	w.engine = nil
	w.mu.Unlock()
	if e != nil {
		e.Dispose()
	}
}

// BeginSubmit claims the form submission slot. It returns false while another
// submission is in flight.
func (w *Workspace) BeginSubmit() bool {
	return w.submitting.CompareAndSwap(false, true)
}

// EndSubmit releases the slot claimed by BeginSubmit.
func (w *Workspace) EndSubmit() {
	w.submitting.Store(false)
}

// Toast publishes a transient notification to the workspace's browsers.
func (w *Workspace) Toast(kind, message string) {
	w.Notifier.Notify(sse.EventToast, sse.Toast{Kind: kind, Message: message})
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

// LastSeen returns the time of the last request that resolved this workspace.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}
