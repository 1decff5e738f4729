package services

import "assetlib/pkg/contracts/events"

// Notifier publishes library change events to connected clients
type Notifier interface {
	Broadcast(messageType string, data interface{})
}

type nopNotifier struct{}

func (nopNotifier) Broadcast(string, interface{}) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func publish(n Notifier, t events.MessageType, data interface{}) {
	n.Broadcast(string(t), data)
}
