package sse

import "time"

// Notifier is the interface state containers use to publish changes.
type Notifier interface {
	Notify(event EventType, data any)
}

// HubNotifier publishes to the streams of a single workspace.
type HubNotifier struct {
	hub       *Hub
	workspace string
}

// NewHubNotifier creates a notifier bound to workspace.
func NewHubNotifier(hub *Hub, workspace string) *HubNotifier {
	return &HubNotifier{hub: hub, workspace: workspace}
}

func (n *HubNotifier) Notify(event EventType, data any) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Publish(n.workspace, &Event{Event: event, Data: data, Timestamp: time.Now()})
}

// NopNotifier is a no-op implementation for when nobody listens.
type NopNotifier struct{}

func (NopNotifier) Notify(EventType, any) {}

// Toast is a transient notification shown by the browser.
type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)
