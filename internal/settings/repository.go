// Package settings persists per-camera stream preferences: the stream each
// role is pinned to (or the "Default" sentinel) and the set of stream names
// the user designated for prebuffering. The store only holds what the user
// chose; interpreting those choices against a live stream list happens in
// the roles package.
package settings

import "fmt"

// Repository defines the interface for preference data access
type Repository interface {
	// Load loads the persisted preferences from storage
	Load() error

	// Save saves the preferences to storage
	Save() error

	// RoleSelection returns the stored selection for a role setting key.
	// An unset role reads as the "Default" sentinel.
	RoleSelection(role string) string

	// SetRoleSelection stores the selection for a role setting key
	SetRoleSelection(role string, selection string) error

	// EnabledStreams returns the user-designated prebuffered stream names
	// and whether the user ever made an explicit choice. An explicit empty
	// set is distinct from never having chosen.
	EnabledStreams() ([]string, bool)

	// SetEnabledStreams stores the prebuffered stream names
	SetEnabledStreams(names []string) error

	// ClearEnabledStreams reverts the prebuffer choice to unset
	ClearEnabledStreams() error
}

// Error represents a settings persistence error
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeReadFailed  = "SETTINGS_READ_FAILED"
	ErrCodeWriteFailed = "SETTINGS_WRITE_FAILED"
	ErrCodeParseFailed = "SETTINGS_PARSE_FAILED"
)
