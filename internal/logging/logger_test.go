package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func resetState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	logBuffer = nil
	logCallback = nil
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetState()

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"roles":  "debug",
			"camera": "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"roles", true, true, true},
		{"camera", false, false, true},
		{"other", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()

			gotDebug := handler.Enabled(context.Background(), slog.LevelDebug)
			gotInfo := handler.Enabled(context.Background(), slog.LevelInfo)
			gotWarn := handler.Enabled(context.Background(), slog.LevelWarn)

			if gotDebug != tt.wantDebug {
				t.Errorf("module %q: Debug enabled = %v, want %v", tt.module, gotDebug, tt.wantDebug)
			}
			if gotInfo != tt.wantInfo {
				t.Errorf("module %q: Info enabled = %v, want %v", tt.module, gotInfo, tt.wantInfo)
			}
			if gotWarn != tt.wantWarn {
				t.Errorf("module %q: Warn enabled = %v, want %v", tt.module, gotWarn, tt.wantWarn)
			}
		})
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetState()

	logger := GetLogger("early")
	if logger == nil {
		t.Fatal("expected a logger before Initialize")
	}

	// Logging must not panic with no buffer present
	logger.Info("starting up")
}

func TestRingBufferCapturesEntries(t *testing.T) {
	resetState()

	Initialize(Config{Level: "debug", Format: "text"})

	logger := GetLogger("roles")
	logger.Info("resolved role", "role", "defaultStream", "stream", "main")

	buffer := GetBuffer()
	if buffer == nil {
		t.Fatal("expected ring buffer after Initialize")
	}

	entries := buffer.ReadAll()
	if len(entries) == 0 {
		t.Fatal("expected at least one buffered entry")
	}

	last := entries[len(entries)-1]
	if last.Module != "roles" {
		t.Errorf("expected module 'roles', got %q", last.Module)
	}
	if last.Message != "resolved role" {
		t.Errorf("expected message 'resolved role', got %q", last.Message)
	}
	if last.Attributes["role"] != "defaultStream" {
		t.Errorf("expected role attribute, got %v", last.Attributes)
	}
}

func TestLogCallback(t *testing.T) {
	resetState()

	Initialize(Config{Level: "info", Format: "text"})

	received := make(chan LogEntry, 1)
	SetLogCallback(func(entry LogEntry) {
		select {
		case received <- entry:
		default:
		}
	})

	GetLogger("camera").Warn("query failed")

	select {
	case entry := <-received:
		if entry.Level != "warn" {
			t.Errorf("expected level warn, got %q", entry.Level)
		}
	case <-time.After(time.Second):
		t.Fatal("callback was not invoked")
	}
}

func TestRingBufferWraparound(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := range 5 {
		rb.Write(LogEntry{Message: string(rune('a' + i))})
	}

	if rb.Count() != 3 {
		t.Fatalf("expected count 3, got %d", rb.Count())
	}

	entries := rb.ReadAll()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "c" || entries[2].Message != "e" {
		t.Errorf("expected chronological order [c d e], got %v", entries)
	}
}
