// internal/domain/notification/pusher.go
package notification

import (
	"context"
	"fmt"
)

// Pusher defines an interface for pushing a text message to a destination.
// This decouples the dispatch logic from the specific messaging library or
// API behind each channel.
type Pusher interface {
	// Configured returns a descriptive error when the pusher is missing its
	// delivery credential and cannot attempt delivery.
	Configured() error
	// Push delivers text to the given destination. Delivery failures are
	// returned as errors, with non-2xx HTTP responses wrapped in a
	// *DeliveryError carrying the status and response body.
	Push(ctx context.Context, destination, text string) error
}

// MissingConfigError reports an absent delivery credential or destination.
// It is channel-scoped: it fails that channel only, never the submission.
type MissingConfigError struct {
	What string // e.g. "LINE_CHANNEL_ACCESS_TOKEN", "destination"
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s is missing", e.What)
}

// DeliveryError is a failed push on a single channel: a non-2xx response or
// an equivalent API-level rejection.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("push failed with status %d: %s", e.StatusCode, e.Body)
}
