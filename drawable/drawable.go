package drawable

import (
	"errors"
	"image"
	"strconv"
)

// Handle identifies a drawable. Handles are assigned by the host.
type Handle int64

func (h Handle) String() string {
	return strconv.FormatInt(int64(h), 10)
}

// Drawable kinds understood by the default loaders.
const (
	KindNetworkImage = "networkImage"
	KindMemoryImage  = "memoryImage"
)

// ErrUnknownDrawable is reported for a descriptor whose kind has no loader.
// The text is part of the host protocol.
var ErrUnknownDrawable = errors.New("Unknown drawable type.") //nolint:staticcheck // protocol text

// Descriptor is a request to resolve one drawable.
type Descriptor struct {
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
	Data   string `json:"data,omitempty"`
	Target Handle `json:"target"`
}

// Report events.
const (
	EventDecode = "onDecode"
	EventError  = "onError"
)

// Report is the outcome of a resolve, sent back to the host.
type Report struct {
	Event  string `json:"event"`
	Target Handle `json:"target"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the drawable was decoded.
func (r Report) OK() bool { return r.Event == EventDecode }

func decodedReport(target Handle, img image.Image) Report {
	b := img.Bounds()
	return Report{Event: EventDecode, Target: target, Width: b.Dx(), Height: b.Dy()}
}

func errorReport(target Handle, err error) Report {
	return Report{Event: EventError, Target: target, Error: err.Error()}
}
