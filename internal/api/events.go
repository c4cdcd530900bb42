package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/streamroles/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time event stream for stream refreshes, role changes and resolutions",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"streams-refreshed":      events.StreamsRefreshedEvent{},
		"role-selection-changed": events.RoleSelectionChangedEvent{},
		"prebuffer-changed":      events.PrebufferChangedEvent{},
		"role-resolved":          events.RoleResolvedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.StreamsRefreshedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.RoleSelectionChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PrebufferChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.RoleResolvedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Initial snapshot so clients see current state immediately
		if err := send.Data(events.StreamsRefreshedEvent{
			Streams:   nil,
			Count:     0,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			return
		}

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
