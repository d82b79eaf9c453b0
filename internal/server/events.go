package server

import (
	"context"
	"log/slog"
	"time"

	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/observability"
)

const publishTimeout = 2 * time.Second

// publishEvent sends a post event. Failures are logged and counted; they never
// change the response of the request that caused them.
func (s *Server) publishEvent(ctx context.Context, eventType, postID string, payload map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := notifications.Event{Type: eventType, PostID: postID, Payload: payload}
	if err := s.publisher.Publish(ctx, event); err != nil {
		observability.EventPublishErrors.WithLabelValues(s.config.EventsDriver, eventType).Inc()
		middleware.Logger.WarnContext(ctx, "failed to publish post event",
			slog.String("event_type", eventType),
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
	}
}
