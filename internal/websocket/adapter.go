package websocket

// FeedNotifier publishes service change events on the change feed. A
// FeedNotifier without a hub, used when the feed is disabled, discards
// every event.
type FeedNotifier struct {
	hub *Hub
}

// NewFeedNotifier creates a notifier for hub, which may be nil
func NewFeedNotifier(hub *Hub) *FeedNotifier {
	return &FeedNotifier{hub: hub}
}

// Broadcast implements services.Notifier
func (n *FeedNotifier) Broadcast(messageType string, data interface{}) {
	if n == nil || n.hub == nil {
		return
	}
	n.hub.Broadcast(messageType, data)
}
