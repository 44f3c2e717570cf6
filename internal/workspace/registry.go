package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/cache"
	"github.com/GTDGit/gtd_storefront/internal/sse"
	"github.com/GTDGit/gtd_storefront/internal/state"
	"github.com/GTDGit/gtd_storefront/internal/view"
)

// KeyPrefix namespaces every persisted key of a client.
const KeyPrefix = "storefront"

// Registry owns the workspaces of all known clients.
type Registry struct {
	mu         sync.Mutex
	store      cache.Store
	hub        *sse.Hub
	lister     view.ProductLister
	workspaces map[string]*Workspace
	now        func() time.Time
}

// NewRegistry creates an empty registry. hub may be nil, in which case
// workspaces publish nothing.
func NewRegistry(store cache.Store, hub *sse.Hub, lister view.ProductLister) *Registry {
	return &Registry{
		store:      store,
		hub:        hub,
		lister:     lister,
		workspaces: make(map[string]*Workspace),
		now:        time.Now,
	}
}

// Get returns the workspace of clientID, creating it and loading its
// persisted favorites on first use. The load runs outside the registry lock
// and is not cancelled with the request.
func (r *Registry) Get(ctx context.Context, clientID string) *Workspace {
	r.mu.Lock()
	ws, ok := r.workspaces[clientID]
	r.mu.Unlock()

	if !ok {
		fresh := r.newWorkspace(context.WithoutCancel(ctx), clientID)

		r.mu.Lock()
		if ws, ok = r.workspaces[clientID]; !ok {
			ws = fresh
			r.workspaces[clientID] = ws
			log.Debug().Str("client_id", clientID).Int("workspaces", len(r.workspaces)).Msg("Workspace created")
		}
		r.mu.Unlock()
	}
	ws.touch(r.now())
	return ws
}

func (r *Registry) newWorkspace(ctx context.Context, clientID string) *Workspace {
	var notifier sse.Notifier = sse.NopNotifier{}
	if r.hub != nil {
		notifier = sse.NewHubNotifier(r.hub, clientID)
	}

	favorites := state.NewFavoritesStore(cache.Namespace(r.store, KeyPrefix+":"+clientID), notifier)
	favorites.Initialize(ctx)

	return &Workspace{
		ID:          clientID,
		Favorites:   favorites,
		Session:     state.NewSessionStore(notifier),
		Preferences: state.NewPreferenceStore(notifier),
		Notifier:    notifier,
		lister:      r.lister,
	}
}

// Lookup returns the workspace of clientID without creating it.
func (r *Registry) Lookup(clientID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[clientID]
	return ws, ok
}

// EvictIdle drops workspaces not seen for ttl and disposes their views.
// Persisted favorites are kept. It returns the number evicted.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	var idle []*Workspace
	for id, ws := range r.workspaces {
		if ws.LastSeen().Before(cutoff) {
			idle = append(idle, ws)
			delete(r.workspaces, id)
		}
	}
	r.mu.Unlock()

	for _, ws := range idle {
		ws.DisposeView()
	}
	return len(idle)
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}
