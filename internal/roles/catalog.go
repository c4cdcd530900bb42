package roles

// Role identifies a logical purpose a stream is selected for.
// The set is closed; the catalog below is process-wide immutable data and
// must be identical across all cameras using this package.
type Role string

// Known roles. The string values double as persisted setting keys.
const (
	RoleDefault         Role = "defaultStream"
	RoleRemote          Role = "remoteStream"
	RoleLowResolution   Role = "lowResolutionStream"
	RoleRecording       Role = "recordingStream"
	RoleRemoteRecording Role = "remoteRecordingStream"
)

// Info is the static metadata attached to a role.
type Info struct {
	// Title is the human-readable name shown in settings UIs
	Title string

	// Description explains what the role is used for
	Description string

	// PrefersPrebuffer restricts default selection to the prebuffered
	// subset when that subset is non-empty
	PrefersPrebuffer bool

	// PreferredResolution is the target pixel count (width * height)
	PreferredResolution int
}

var catalog = map[Role]Info{
	RoleDefault: {
		Title:               "Local Stream",
		Description:         "The Local Stream is used for local viewing and is the preferred stream for high quality playback.",
		PrefersPrebuffer:    true,
		PreferredResolution: 3840 * 2160,
	},
	RoleRemote: {
		Title:               "Remote Stream",
		Description:         "The Remote Stream is used when viewing away from home, where bandwidth is limited.",
		PrefersPrebuffer:    false,
		PreferredResolution: 1280 * 720,
	},
	RoleLowResolution: {
		Title:               "Low Resolution Stream",
		Description:         "The Low Resolution Stream is used for thumbnails and multi-camera grids.",
		PrefersPrebuffer:    false,
		PreferredResolution: 480 * 360,
	},
	RoleRecording: {
		Title:               "Local Recording Stream",
		Description:         "The Local Recording Stream is used to record clips to local storage.",
		PrefersPrebuffer:    true,
		PreferredResolution: 3840 * 2160,
	},
	RoleRemoteRecording: {
		Title:               "Remote Recording Stream",
		Description:         "The Remote Recording Stream is used to record clips to remote or cloud storage.",
		PrefersPrebuffer:    true,
		PreferredResolution: 1280 * 720,
	},
}

// order fixes the iteration order for All and for settings UIs.
var order = []Role{
	RoleDefault,
	RoleRemote,
	RoleLowResolution,
	RoleRecording,
	RoleRemoteRecording,
}

// All returns every known role in stable order.
func All() []Role {
	roles := make([]Role, len(order))
	copy(roles, order)
	return roles
}

// Get returns the metadata for a role.
func Get(role Role) (Info, bool) {
	info, ok := catalog[role]
	return info, ok
}

// Valid reports whether role names a known role.
func Valid(role Role) bool {
	_, ok := catalog[role]
	return ok
}
