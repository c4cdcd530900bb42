package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/streamroles/internal/api/models"
	"github.com/smazurov/streamroles/internal/events"
	"github.com/smazurov/streamroles/internal/logging"
)

// registerLogRoutes registers the log history and log streaming endpoints.
func (s *Server) registerLogRoutes() {
	// Recent log history from the ring buffer
	huma.Register(s.api, huma.Operation{
		OperationID: "list-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Recent Logs",
		Description: "Get recent log entries from the in-memory ring buffer, oldest first",
		Tags:        []string{"logs"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.LogListResponse, error) {
		var entries []logging.LogEntry
		if buffer := logging.GetBuffer(); buffer != nil {
			entries = buffer.ReadAll()
		}
		return &models.LogListResponse{
			Body: models.LogListData{
				Entries: entries,
				Count:   len(entries),
			},
		}, nil
	})

	// Register SSE endpoint for log streaming
	sse.Register(s.api, huma.Operation{
		OperationID: "logs-stream",
		Method:      http.MethodGet,
		Path:        "/api/logs/stream",
		Summary:     "Log Stream",
		Description: "Real-time log streaming via Server-Sent Events. Sends historical logs first, then streams new logs.",
		Tags:        []string{"logs"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"message": events.LogEntryEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Historical logs first
		if buffer := logging.GetBuffer(); buffer != nil {
			for _, entry := range buffer.ReadAll() {
				event := events.LogEntryEvent{
					Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
					Level:      entry.Level,
					Module:     entry.Module,
					Message:    entry.Message,
					Attributes: entry.Attributes,
				}
				if err := send.Data(event); err != nil {
					return
				}
			}
		}

		eventCh := make(chan any, 100) // Larger buffer for logs

		unsubscribe := events.SubscribeToChannel[events.LogEntryEvent](s.eventBus, eventCh)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
