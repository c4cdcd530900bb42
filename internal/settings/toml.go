package settings

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// prebufferSection is kept behind a pointer so an absent [prebuffer] table
// reads as "never chosen" rather than "chose nothing".
type prebufferSection struct {
	Enabled []string `toml:"enabled" json:"enabled"`
}

// config represents the complete settings file for TOML marshaling.
type config struct {
	Version   int               `toml:"version" json:"version"`
	Roles     map[string]string `toml:"roles" json:"roles"`
	Prebuffer *prebufferSection `toml:"prebuffer,omitempty" json:"prebuffer,omitempty"`
}

// tomlStore implements Repository using TOML file storage.
type tomlStore struct {
	configPath string
	mu         sync.RWMutex
	config     *config
}

// NewTOML creates a new TOML-based settings repository.
func NewTOML(configPath string) Repository {
	if configPath == "" {
		configPath = "settings.toml"
	}

	return &tomlStore{
		configPath: configPath,
		config: &config{
			Version: 1,
			Roles:   make(map[string]string),
		},
	}
}

// Load loads the settings from file.
func (s *tomlStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Missing file means pristine defaults
	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return &Error{Code: ErrCodeReadFailed, Message: "failed to read settings file", Cause: err}
	}

	loaded := &config{}
	if unmarshalErr := toml.Unmarshal(data, loaded); unmarshalErr != nil {
		return &Error{Code: ErrCodeParseFailed, Message: "failed to parse settings file", Cause: unmarshalErr}
	}

	if loaded.Roles == nil {
		loaded.Roles = make(map[string]string)
	}
	if loaded.Version == 0 {
		loaded.Version = 1
	}

	s.config = loaded
	return nil
}

// Save saves the settings to file.
func (s *tomlStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// saveLocked writes the current config; callers must hold at least a read lock.
func (s *tomlStore) saveLocked() error {
	dir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Code: ErrCodeWriteFailed, Message: "failed to create settings directory", Cause: err}
	}

	data, err := toml.Marshal(s.config)
	if err != nil {
		return &Error{Code: ErrCodeWriteFailed, Message: "failed to marshal settings", Cause: err}
	}

	if writeErr := os.WriteFile(s.configPath, data, 0o644); writeErr != nil {
		return &Error{Code: ErrCodeWriteFailed, Message: "failed to write settings file", Cause: writeErr}
	}

	return nil
}

// RoleSelection returns the stored selection for a role, defaulting to the
// "Default" sentinel when unset or empty.
func (s *tomlStore) RoleSelection(role string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if selection, ok := s.config.Roles[role]; ok && selection != "" {
		return selection
	}
	return "Default"
}

// SetRoleSelection stores the selection for a role and persists it.
func (s *tomlStore) SetRoleSelection(role string, selection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Roles[role] = selection
	return s.saveLocked()
}

// EnabledStreams returns the explicit prebuffer selection, if any.
func (s *tomlStore) EnabledStreams() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config.Prebuffer == nil {
		return nil, false
	}

	names := make([]string, len(s.config.Prebuffer.Enabled))
	copy(names, s.config.Prebuffer.Enabled)
	return names, true
}

// SetEnabledStreams stores the prebuffer selection and persists it.
func (s *tomlStore) SetEnabledStreams(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if names == nil {
		names = []string{}
	}
	s.config.Prebuffer = &prebufferSection{Enabled: names}
	return s.saveLocked()
}

// ClearEnabledStreams reverts the prebuffer choice to unset and persists it.
func (s *tomlStore) ClearEnabledStreams() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Prebuffer = nil
	return s.saveLocked()
}
