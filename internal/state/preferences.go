package state

import (
	"sync"

	"github.com/GTDGit/gtd_storefront/internal/sse"
)

// PreferenceStore holds process-wide UI preferences. Dark mode resets on every
// new workspace; it is not persisted.
type PreferenceStore struct {
	mu       sync.RWMutex
	darkMode bool
	notifier sse.Notifier
}

func NewPreferenceStore(notifier sse.Notifier) *PreferenceStore {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &PreferenceStore{notifier: notifier}
}

// ToggleDarkMode flips dark mode and returns the new value.
func (p *PreferenceStore) ToggleDarkMode() bool {
	p.mu.Lock()
	p.darkMode = !p.darkMode
	v := p.darkMode
	p.mu.Unlock()

	p.notifier.Notify(sse.EventPreferencesChanged, map[string]bool{"darkMode": v})
	return v
}

func (p *PreferenceStore) DarkMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.darkMode
}
