package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/gtd_storefront/internal/sse"
)

func TestSessionLifecycle(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSessionStore(notifier)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Username())

	s.Login("alice")
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, Session{IsLoggedIn: true, Username: "alice"}, s.Current())

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, Session{}, s.Current())

	assert.Equal(t, []sse.EventType{sse.EventSessionChanged, sse.EventSessionChanged}, notifier.events)
}

func TestNewSessionStartsLoggedOut(t *testing.T) {
	first := NewSessionStore(nil)
	first.Login("bob")

	// A fresh store stands in for a reload: nothing carries over.
	assert.False(t, NewSessionStore(nil).IsAuthenticated())
}

func TestToggleDarkMode(t *testing.T) {
	notifier := &recordingNotifier{}
	p := NewPreferenceStore(notifier)

	assert.False(t, p.DarkMode())
	assert.True(t, p.ToggleDarkMode())
	assert.True(t, p.DarkMode())
	assert.False(t, p.ToggleDarkMode())
	assert.Len(t, notifier.events, 2)
}
