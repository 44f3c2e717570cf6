package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishesPerWorkspace(t *testing.T) {
	hub := NewHub()
	a := hub.Register("ws-a", "stream-1")
	b := hub.Register("ws-b", "stream-2")
	defer hub.Unregister("stream-1")
	defer hub.Unregister("stream-2")

	NewHubNotifier(hub, "ws-a").Notify(EventToast, Toast{Kind: ToastSuccess, Message: "hi"})

	require.Len(t, a.Events, 1)
	assert.Empty(t, b.Events)

	var got struct {
		Event EventType `json:"event"`
		Data  Toast     `json:"data"`
	}
	require.NoError(t, json.Unmarshal(<-a.Events, &got))
	assert.Equal(t, EventToast, got.Event)
	assert.Equal(t, "hi", got.Data.Message)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := hub.Register("ws", "stream")
	defer hub.Unregister("stream")

	for i := 0; i < cap(c.Events)+10; i++ {
		hub.Publish("ws", &Event{Event: EventViewChanged})
	}
	assert.Len(t, c.Events, cap(c.Events))
}

func TestUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	c := hub.Register("ws", "stream")
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister("stream")
	_, ok := <-c.Events
	assert.False(t, ok)
	assert.Zero(t, hub.ClientCount())

	// Unknown ids are ignored.
	hub.Unregister("stream")
}
