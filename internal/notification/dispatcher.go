package notification

import "context"

// Dispatcher hands an alert message to an external delivery channel. Sending
// is best-effort: a failure must never unwind the alert that triggered it.
//
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Send(ctx context.Context, schoolID, recipientRole, message string) error
}
