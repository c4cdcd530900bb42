package roles

import (
	"math"

	"github.com/smazurov/streamroles/internal/streams"
)

// worstScore is the distance assigned to candidates that do not advertise
// their dimensions. A candidate with known dimensions always beats one
// without, but a dimension-less candidate is still returned when it is the
// only option.
const worstScore = math.MaxInt

// PrebufferSelection carries the persisted enabled-streams value.
// Set distinguishes "user never chose" from "user chose this set";
// an unset selection falls back to DefaultPrebufferedStreams.
type PrebufferSelection struct {
	Set   bool
	Names []string
}

// Resolved is the outcome of resolving one role against a stream list.
// Stream is nil when no stream could be selected at all.
type Resolved struct {
	Role      Role
	Title     string
	IsDefault bool
	Stream    *streams.Descriptor
}

// Throughout this package a nil stream list means "unknown" (the camera
// query has not succeeded yet) while an empty non-nil list means "the
// camera offers nothing". The two propagate differently: unknown stays
// nil, explicitly-empty stays empty.

// PickBestStream returns the candidate whose pixel count is closest to
// target, scanning in input order and keeping the first candidate on ties.
func PickBestStream(candidates []streams.Descriptor, target int) *streams.Descriptor {
	var best *streams.Descriptor
	bestScore := 0

	for i := range candidates {
		score := worstScore
		if v := candidates[i].Video; v != nil {
			d := v.Pixels() - target
			if d < 0 {
				d = -d
			}
			score = d
		}

		if best == nil || score < bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}

	return best
}

// DefaultPrebufferedStreams chooses which streams should be prebuffered
// when the user has not made an explicit choice: the first stream that is
// neither cloud-sourced nor raw video. Cloud streams incur bandwidth cost
// and raw video cannot be buffered persistently.
//
// A nil input propagates as nil. When no stream qualifies the result is an
// empty non-nil slice: nothing should be prebuffered, and that is known.
func DefaultPrebufferedStreams(list []streams.Descriptor) []streams.Descriptor {
	if list == nil {
		return nil
	}

	for i := range list {
		if list[i].Source == streams.SourceCloud {
			continue
		}
		if list[i].Container == streams.ContainerRawVideo {
			continue
		}
		return []streams.Descriptor{list[i]}
	}

	return []streams.Descriptor{}
}

// PrebufferedStreams resolves the effective prebuffered set: the user's
// explicit selection filtered against the current stream list, or the
// computed default when no selection was ever made. Selected names that no
// longer exist are dropped silently.
func PrebufferedStreams(sel PrebufferSelection, list []streams.Descriptor) []streams.Descriptor {
	if list == nil {
		return nil
	}
	if !sel.Set {
		return DefaultPrebufferedStreams(list)
	}

	selected := make(map[string]struct{}, len(sel.Names))
	for _, name := range sel.Names {
		selected[name] = struct{}{}
	}

	enabled := make([]streams.Descriptor, 0, len(sel.Names))
	for i := range list {
		if _, ok := selected[list[i].Name]; ok {
			enabled = append(enabled, list[i])
		}
	}
	return enabled
}

// DefaultMediaStream computes the stream a role resolves to when no
// explicit choice applies. Roles that prefer a prebuffered source restrict
// the candidate pool to the streams the user designated for prebuffering,
// but only when that subset is non-empty; the pool is never narrowed to
// nothing, and a merely computed prebuffer default does not narrow it.
func DefaultMediaStream(role Role, sel PrebufferSelection, list []streams.Descriptor) *streams.Descriptor {
	info, ok := catalog[role]
	if !ok {
		return nil
	}

	pool := list
	if info.PrefersPrebuffer && sel.Set {
		if enabled := PrebufferedStreams(sel, list); len(enabled) > 0 {
			pool = enabled
		}
	}

	return PickBestStream(pool, info.PreferredResolution)
}

// ResolveMediaStream resolves one role given its persisted selection.
// configured is the stored stream name, or the SelectionDefault sentinel
// (an empty value reads as the sentinel). A configured name that no longer
// exists in the current list falls back to the computed default rather
// than resolving to nothing.
func ResolveMediaStream(role Role, configured string, sel PrebufferSelection, list []streams.Descriptor) Resolved {
	info := catalog[role]

	isDefault := configured == "" || configured == streams.SelectionDefault

	var stream *streams.Descriptor
	if !isDefault {
		stream = streams.FindByName(list, configured)
	}

	if isDefault || stream == nil {
		isDefault = true
		stream = DefaultMediaStream(role, sel, list)
	}

	return Resolved{
		Role:      role,
		Title:     info.Title,
		IsDefault: isDefault,
		Stream:    stream,
	}
}
