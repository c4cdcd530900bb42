package events

import "github.com/smazurov/streamroles/internal/streams"

// Event type constants for kelindar/event.
const (
	TypeStreamsRefreshed uint32 = iota + 1
	TypeRoleSelectionChanged
	TypePrebufferChanged
	TypeRoleResolved
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// StreamsRefreshedEvent is published after a successful camera stream query.
type StreamsRefreshedEvent struct {
	Streams   []streams.Descriptor `json:"streams" doc:"Stream variants offered by the camera"`
	Count     int                  `json:"count" example:"3" doc:"Number of variants"`
	Timestamp string               `json:"timestamp" example:"2026-08-29T10:30:00Z" doc:"Query timestamp"`
}

// Type returns the event type identifier for StreamsRefreshedEvent.
func (e StreamsRefreshedEvent) Type() uint32 { return TypeStreamsRefreshed }

// RoleSelectionChangedEvent is published when a role is pinned to a stream
// or reverted to the default.
type RoleSelectionChangedEvent struct {
	Role      string `json:"role" example:"remoteStream" doc:"Role setting key"`
	Selection string `json:"selection" example:"substream" doc:"New selection, or the Default sentinel"`
	Timestamp string `json:"timestamp" example:"2026-08-29T10:30:00Z" doc:"Change timestamp"`
}

// Type returns the event type identifier for RoleSelectionChangedEvent.
func (e RoleSelectionChangedEvent) Type() uint32 { return TypeRoleSelectionChanged }

// PrebufferChangedEvent is published when the prebuffered stream set changes.
type PrebufferChangedEvent struct {
	Enabled   []string `json:"enabled" doc:"Stream names designated for prebuffering"`
	Explicit  bool     `json:"explicit" example:"true" doc:"Whether the set was chosen by the user"`
	Timestamp string   `json:"timestamp" example:"2026-08-29T10:30:00Z" doc:"Change timestamp"`
}

// Type returns the event type identifier for PrebufferChangedEvent.
func (e PrebufferChangedEvent) Type() uint32 { return TypePrebufferChanged }

// RoleResolvedEvent is published each time a role is resolved to a stream.
type RoleResolvedEvent struct {
	Role      string `json:"role" example:"defaultStream" doc:"Role setting key"`
	Stream    string `json:"stream,omitempty" example:"main" doc:"Resolved stream name, empty when none"`
	IsDefault bool   `json:"is_default" example:"true" doc:"Whether the result came from the computed default"`
	Timestamp string `json:"timestamp" example:"2026-08-29T10:30:00Z" doc:"Resolution timestamp"`
}

// Type returns the event type identifier for RoleResolvedEvent.
func (e RoleResolvedEvent) Type() uint32 { return TypeRoleResolved }

// LogEntryEvent carries one log line to SSE clients.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"roles" doc:"Originating module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
