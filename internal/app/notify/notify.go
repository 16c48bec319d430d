/*
Package notify provides the fire-and-forget notification collaborator consumed
by the state stores.

In the browser prototypes this was a toast overlay; server-side the default
implementation forwards messages to the structured log. Notifications are
never awaited and never participate in control flow.
*/
package notify

import "storefront/internal/pkg/logx"

// Notifier receives success and error messages emitted by store operations.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier is the default Notifier, writing notifications to the log.
type LogNotifier struct{}

// NewLogNotifier returns a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Success records a success notification.
func (n *LogNotifier) Success(msg string) {
	logx.Info("notification", "kind", "success", "message", msg)
}

// Error records an error notification.
func (n *LogNotifier) Error(msg string) {
	logx.Warn("notification", "kind", "error", "message", msg)
}

// Discard is a Notifier that drops every message. Useful in tests.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
