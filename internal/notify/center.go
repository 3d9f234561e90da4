// Package notify owns the device notification queue: pending requests,
// their triggers, and delivery of fired notifications to subscribers.
package notify

import (
	"context"
	"time"
)

// Request is a registered, not-yet-fired notification. ID doubles as
// the dedup key: adding a request with an existing ID replaces it.
type Request struct {
	ID      string            `json:"id"`
	Trigger time.Time         `json:"trigger"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Sound   string            `json:"sound,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// Center is the notification queue service. It fully owns request
// identity: the last Add for a given ID wins, so callers may race
// remove-then-add cycles without extra locking.
type Center interface {
	// Pending returns a snapshot of all registered requests.
	Pending(ctx context.Context) ([]Request, error)
	// Add registers a request, replacing any pending one with the same ID.
	Add(ctx context.Context, req Request) error
	// Remove drops the pending requests with the given IDs. Unknown IDs
	// are ignored.
	Remove(ctx context.Context, ids ...string) error
}

// Publisher delivers a fired notification to subscribers.
type Publisher interface {
	Publish(req Request) error
}
