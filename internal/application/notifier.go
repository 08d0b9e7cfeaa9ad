package application

import "context"

// Notifier reports failures that happen outside a control-surface call,
// e.g. a missing sink when a bound key is pressed. Hotkey-triggered
// errors must never escape the hook context, so they go here instead.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type NoopNotifier struct{}

func (n *NoopNotifier) Notify(_ context.Context, _ string) error {
	return nil
}
