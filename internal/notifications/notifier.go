// Package notifications publishes post events to Redis pub/sub or Kafka.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
)

// PostsChannel is the Redis channel post events are published on.
const PostsChannel = "posts:events"

// Event type constants prevent typos in event names.
const (
	EventPostCreated         = "post_created"
	EventPostDeleted         = "post_deleted"
	EventPostReactionUpdated = "post_reaction_updated"
	EventCommentCreated      = "comment_created"
	EventCommentDeleted      = "comment_deleted"
)

// Event is the envelope every publisher writes.
type Event struct {
	Type    string                 `json:"type"`
	PostID  string                 `json:"-"`
	Payload map[string]interface{} `json:"payload"`
}

func (e Event) marshal() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	return b, nil
}

// Publisher delivers post events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards events. It is used when EVENTS_DRIVER is "none".
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
