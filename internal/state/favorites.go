package state

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/cache"
	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/sse"
)

// FavoritesKey is the persistence key holding the serialized favorites set.
const FavoritesKey = "favorites"

// FavoritesStore owns the favorites set of one client. It is the only writer
// of FavoritesKey; every mutation rewrites the whole set.
type FavoritesStore struct {
	mu       sync.RWMutex
	store    cache.Store
	notifier sse.Notifier
	entries  []models.FavoriteEntry
	index    map[int]struct{}
}

// NewFavoritesStore creates an empty store. Call Initialize to load persisted data.
func NewFavoritesStore(store cache.Store, notifier sse.Notifier) *FavoritesStore {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &FavoritesStore{
		store:    store,
		notifier: notifier,
		index:    make(map[int]struct{}),
	}
}

// Initialize loads the persisted favorites. Missing, unreadable or malformed
// data leaves the set empty; failures are logged, never returned.
func (f *FavoritesStore) Initialize(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = nil
	f.index = make(map[int]struct{})

	raw, err := f.store.Get(ctx, FavoritesKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warn().Err(err).Msg("favorites: read failed, starting empty")
		}
		return
	}
	if raw == "" {
		return
	}

	var stored []models.FavoriteEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Warn().Err(err).Msg("favorites: stored data malformed, starting empty")
		return
	}
	for _, e := range stored {
		if _, dup := f.index[e.ID]; dup {
			continue
		}
		f.index[e.ID] = struct{}{}
		f.entries = append(f.entries, e)
	}
}

// Toggle removes the favorite with entry's id if present, otherwise appends
// entry. It returns the new membership and writes the full set back.
func (f *FavoritesStore) Toggle(ctx context.Context, entry models.FavoriteEntry) bool {
	f.mu.Lock()
	member := f.toggleLocked(entry)
	snapshot := f.copyLocked()
	f.persistLocked(ctx)
	f.mu.Unlock()

	f.notifier.Notify(sse.EventFavoritesChanged, snapshot)
	return member
}

func (f *FavoritesStore) toggleLocked(entry models.FavoriteEntry) bool {
	if _, ok := f.index[entry.ID]; ok {
		delete(f.index, entry.ID)
		kept := f.entries[:0]
		for _, e := range f.entries {
			if e.ID != entry.ID {
				kept = append(kept, e)
			}
		}
		f.entries = kept
		return false
	}
	f.index[entry.ID] = struct{}{}
	f.entries = append(f.entries, entry)
	return true
}

func (f *FavoritesStore) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(f.entriesOrEmpty())
	if err != nil {
		log.Error().Err(err).Msg("favorites: encode failed")
		return
	}
	if err := f.store.Set(ctx, FavoritesKey, string(payload)); err != nil {
		log.Error().Err(err).Msg("favorites: write failed, keeping in-memory state")
	}
}

func (f *FavoritesStore) entriesOrEmpty() []models.FavoriteEntry {
	if f.entries == nil {
		return []models.FavoriteEntry{}
	}
	return f.entries
}

// IsFavorite reports whether id is in the set.
func (f *FavoritesStore) IsFavorite(id int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.index[id]
	return ok
}

// List returns the favorites in insertion order.
func (f *FavoritesStore) List() []models.FavoriteEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.copyLocked()
}

// Len returns the number of favorites.
func (f *FavoritesStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

func (f *FavoritesStore) copyLocked() []models.FavoriteEntry {
	out := make([]models.FavoriteEntry, len(f.entries))
	copy(out, f.entries)
	return out
}
