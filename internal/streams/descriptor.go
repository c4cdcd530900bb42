package streams

import "context"

// Well-known descriptor attribute values.
const (
	// SourceCloud marks a stream variant relayed through the vendor cloud.
	SourceCloud = "cloud"

	// ContainerRawVideo marks an uncompressed stream variant.
	ContainerRawVideo = "rawvideo"

	// SelectionDefault is the sentinel stored when the user has not picked
	// a specific stream for a role.
	SelectionDefault = "Default"
)

// Resolution holds the advertised video dimensions of a stream variant.
type Resolution struct {
	Width  int `json:"width" example:"1920" doc:"Frame width in pixels"`
	Height int `json:"height" example:"1080" doc:"Frame height in pixels"`
}

// Pixels returns the total pixel count.
func (r Resolution) Pixels() int {
	return r.Width * r.Height
}

// Descriptor describes one media stream variant offered by a camera.
// Descriptors are snapshots: the camera may add or remove variants between
// queries, so a Name seen earlier is not guaranteed to still exist.
type Descriptor struct {
	// Name uniquely identifies the variant within one query result
	Name string `json:"name" example:"substream" doc:"Stream variant name"`

	// Source is the origin tag, e.g. "local" or "cloud"
	Source string `json:"source,omitempty" example:"local" doc:"Stream origin"`

	// Container is the format tag, e.g. "h264" or "rawvideo"
	Container string `json:"container,omitempty" example:"h264" doc:"Container format"`

	// Video is nil when the camera does not advertise dimensions
	Video *Resolution `json:"video,omitempty" doc:"Advertised video dimensions"`
}

// FindByName returns the first descriptor with the given name, or nil.
func FindByName(list []Descriptor, name string) *Descriptor {
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	return nil
}

// Names returns the variant names in input order.
func Names(list []Descriptor) []string {
	if list == nil {
		return nil
	}
	names := make([]string, len(list))
	for i := range list {
		names[i] = list[i].Name
	}
	return names
}

// Lister is the camera collaborator capability: enumerate the currently
// offered stream variants. The query is asynchronous and may fail; callers
// decide how to degrade.
type Lister interface {
	ListStreamOptions(ctx context.Context) ([]Descriptor, error)
}
