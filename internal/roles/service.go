package roles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/smazurov/streamroles/internal/events"
	"github.com/smazurov/streamroles/internal/logging"
	"github.com/smazurov/streamroles/internal/metrics"
	"github.com/smazurov/streamroles/internal/settings"
	"github.com/smazurov/streamroles/internal/streams"
)

// ErrUnknownStream is returned when a selection names a stream the
// camera does not currently offer.
var ErrUnknownStream = errors.New("stream is not offered by the camera")

// Choice is one selectable entry for a role, suitable for rendering
// in a settings UI.
type Choice struct {
	Value string `json:"value" example:"main" doc:"Selection value to store"`
	Label string `json:"label" example:"main (3840x2160)" doc:"Human-readable label"`
}

// RoleState describes a role's current selection, its resolved stream
// and the choices available for it.
type RoleState struct {
	Role      Role                `json:"role" example:"defaultStream" doc:"Role setting key"`
	Title     string              `json:"title" example:"Local Stream" doc:"Display title"`
	Selection string              `json:"selection" example:"Default" doc:"Stored selection"`
	IsDefault bool                `json:"is_default" doc:"Whether the resolved stream came from the computed default"`
	Stream    *streams.Descriptor `json:"stream,omitempty" doc:"Resolved stream, absent when none is available"`
	Choices   []Choice            `json:"choices" doc:"Available selections for this role"`
}

// PrebufferState describes the prebuffered stream set.
type PrebufferState struct {
	Enabled  []string `json:"enabled" doc:"Names of streams designated for prebuffering"`
	Explicit bool     `json:"explicit" doc:"Whether the set was chosen by the user rather than computed"`
}

// Service resolves stream roles against the camera's current stream
// variants and the persisted user preferences.
type Service struct {
	store   settings.Repository
	lister  streams.Lister
	bus     *events.Bus
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewService creates a role resolution service.
func NewService(store settings.Repository, lister streams.Lister, bus *events.Bus, recorder *metrics.Recorder) *Service {
	return &Service{
		store:   store,
		lister:  lister,
		bus:     bus,
		metrics: recorder,
		logger:  logging.GetLogger("roles"),
	}
}

// selection builds the prebuffer selection from the persisted preferences.
func (s *Service) selection() PrebufferSelection {
	names, explicit := s.store.EnabledStreams()
	return PrebufferSelection{Set: explicit, Names: names}
}

// listStreams queries the camera for its stream variants. Camera failures
// degrade to an unknown stream list so resolution still produces a result.
func (s *Service) listStreams(ctx context.Context) []streams.Descriptor {
	list, err := s.lister.ListStreamOptions(ctx)
	if err != nil {
		s.logger.Warn("Camera stream query failed, resolving without stream data", "error", err)
		if s.metrics != nil {
			s.metrics.ObserveCameraError()
		}
		return nil
	}

	if s.metrics != nil {
		s.metrics.SetAvailableStreams(len(list))
	}
	if s.bus != nil {
		s.bus.Publish(events.StreamsRefreshedEvent{
			Streams:   list,
			Count:     len(list),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return list
}

// Streams returns the camera's current stream variants.
func (s *Service) Streams(ctx context.Context) ([]streams.Descriptor, error) {
	list, err := s.lister.ListStreamOptions(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveCameraError()
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SetAvailableStreams(len(list))
	}
	return list, nil
}

// Resolve resolves one role to a stream, honoring the stored selection
// and falling back to the computed default when the selection is the
// sentinel or names a stream the camera no longer offers.
func (s *Service) Resolve(ctx context.Context, role Role) (Resolved, error) {
	if !Valid(role) {
		return Resolved{}, fmt.Errorf("unknown role %q", role)
	}

	configured := s.store.RoleSelection(string(role))
	list := s.listStreams(ctx)
	res := ResolveMediaStream(role, configured, s.selection(), list)

	if configured != "" && configured != streams.SelectionDefault && res.IsDefault {
		s.logger.Warn("Configured stream no longer offered, using computed default",
			"role", role, "configured", configured)
		if s.metrics != nil {
			s.metrics.ObserveStaleFallback(string(role))
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveResolution(string(role), res.IsDefault)
	}
	if s.bus != nil {
		name := ""
		if res.Stream != nil {
			name = res.Stream.Name
		}
		s.bus.Publish(events.RoleResolvedEvent{
			Role:      string(role),
			Stream:    name,
			IsDefault: res.IsDefault,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return res, nil
}

// ResolveAll resolves every role in the catalog against a single
// camera query.
func (s *Service) ResolveAll(ctx context.Context) []Resolved {
	list := s.listStreams(ctx)
	sel := s.selection()

	results := make([]Resolved, 0, len(All()))
	for _, role := range All() {
		configured := s.store.RoleSelection(string(role))
		res := ResolveMediaStream(role, configured, sel, list)
		if s.metrics != nil {
			s.metrics.ObserveResolution(string(role), res.IsDefault)
		}
		results = append(results, res)
	}
	return results
}

// DefaultStream resolves the primary local viewing stream.
func (s *Service) DefaultStream(ctx context.Context) (Resolved, error) {
	return s.Resolve(ctx, RoleDefault)
}

// RemoteStream resolves the bandwidth-constrained remote viewing stream.
func (s *Service) RemoteStream(ctx context.Context) (Resolved, error) {
	return s.Resolve(ctx, RoleRemote)
}

// LowResolutionStream resolves the thumbnail and preview stream.
func (s *Service) LowResolutionStream(ctx context.Context) (Resolved, error) {
	return s.Resolve(ctx, RoleLowResolution)
}

// RecordingStream resolves the local recording stream.
func (s *Service) RecordingStream(ctx context.Context) (Resolved, error) {
	return s.Resolve(ctx, RoleRecording)
}

// RemoteRecordingStream resolves the remote recording stream.
func (s *Service) RemoteRecordingStream(ctx context.Context) (Resolved, error) {
	return s.Resolve(ctx, RoleRemoteRecording)
}

// State reports one role's selection, resolution and available choices.
// The sentinel choice is labeled with the stream the default currently
// computes to, so a UI can show what "Default" means right now.
func (s *Service) State(ctx context.Context, role Role) (RoleState, error) {
	if !Valid(role) {
		return RoleState{}, fmt.Errorf("unknown role %q", role)
	}

	info, _ := Get(role)
	configured := s.store.RoleSelection(string(role))
	list := s.listStreams(ctx)
	sel := s.selection()
	res := ResolveMediaStream(role, configured, sel, list)

	defaultLabel := streams.SelectionDefault
	if def := DefaultMediaStream(role, sel, list); def != nil {
		defaultLabel = fmt.Sprintf("%s (%s)", streams.SelectionDefault, def.Name)
	}

	choices := make([]Choice, 0, len(list)+1)
	choices = append(choices, Choice{Value: streams.SelectionDefault, Label: defaultLabel})
	for _, d := range list {
		label := d.Name
		if d.Video != nil {
			label = fmt.Sprintf("%s (%dx%d)", d.Name, d.Video.Width, d.Video.Height)
		}
		choices = append(choices, Choice{Value: d.Name, Label: label})
	}

	return RoleState{
		Role:      role,
		Title:     info.Title,
		Selection: configured,
		IsDefault: res.IsDefault,
		Stream:    res.Stream,
		Choices:   choices,
	}, nil
}

// StateAll reports the state of every role in the catalog.
func (s *Service) StateAll(ctx context.Context) []RoleState {
	states := make([]RoleState, 0, len(All()))
	for _, role := range All() {
		state, err := s.State(ctx, role)
		if err != nil {
			continue
		}
		states = append(states, state)
	}
	return states
}

// SetSelection stores a selection for a role. An empty selection or the
// sentinel reverts the role to the computed default. A concrete name is
// checked against the camera's current streams when the camera is
// reachable; unknown names are rejected.
func (s *Service) SetSelection(ctx context.Context, role Role, selection string) error {
	if !Valid(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	if selection != "" && selection != streams.SelectionDefault {
		if list, err := s.lister.ListStreamOptions(ctx); err == nil {
			if streams.FindByName(list, selection) == nil {
				return fmt.Errorf("%w: %q", ErrUnknownStream, selection)
			}
		}
	}

	if err := s.store.SetRoleSelection(string(role), selection); err != nil {
		return err
	}

	s.logger.Info("Role selection changed", "role", role, "selection", selection)
	if s.bus != nil {
		s.bus.Publish(events.RoleSelectionChangedEvent{
			Role:      string(role),
			Selection: selection,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}

// Prebuffer reports the effective prebuffered stream set. When the user
// never made an explicit choice, the computed default is reported.
func (s *Service) Prebuffer(ctx context.Context) PrebufferState {
	sel := s.selection()
	list := s.listStreams(ctx)
	enabled := PrebufferedStreams(sel, list)

	names := make([]string, 0, len(enabled))
	for _, d := range enabled {
		names = append(names, d.Name)
	}
	return PrebufferState{Enabled: names, Explicit: sel.Set}
}

// SetPrebuffer stores the user's prebuffered stream choice. An empty
// slice is a valid explicit choice meaning nothing is prebuffered.
func (s *Service) SetPrebuffer(ctx context.Context, names []string) error {
	if err := s.store.SetEnabledStreams(names); err != nil {
		return err
	}

	s.logger.Info("Prebuffer selection changed", "streams", names)
	if s.bus != nil {
		s.bus.Publish(events.PrebufferChangedEvent{
			Enabled:   names,
			Explicit:  true,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}

// ClearPrebuffer reverts the prebuffer choice to the computed default.
func (s *Service) ClearPrebuffer(ctx context.Context) error {
	if err := s.store.ClearEnabledStreams(); err != nil {
		return err
	}

	state := s.Prebuffer(ctx)
	s.logger.Info("Prebuffer selection cleared, reverting to default", "streams", state.Enabled)
	if s.bus != nil {
		s.bus.Publish(events.PrebufferChangedEvent{
			Enabled:   state.Enabled,
			Explicit:  false,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}
