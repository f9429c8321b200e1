// internal/pkg/notification/notifier.go
package notification

import "github.com/sirupsen/logrus"

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notifier is the transient-feedback sink of the storefront. Callers
// fire and forget; implementations must never return control-flow
// decisions back into the pipeline.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message at a level matching its severity.
func (n *LogNotifier) Notify(message string, severity Severity) {
	entry := n.logger.WithField("notification", string(severity))
	switch severity {
	case SeverityError:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(string, Severity) {}
