package custompaint

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/paint"
	"github.com/gogpu/custompaint/surface"
)

// Message types.
const (
	TypeDecodeDrawable = "decode_drawable"
	TypeCustomPaint    = "custom_paint"
	TypeDisposeView    = "dispose_view"
)

var (
	// ErrUnknownMessage is returned by HandleMessage for an unrecognized type.
	ErrUnknownMessage = errors.New("custompaint: unknown message type")

	// ErrClosed is reported for work submitted to a closed Engine.
	ErrClosed = errors.New("custompaint: engine closed")
)

// envelope is the frame shared by every message in both directions.
type envelope struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

// ViewID names a view. The host may send it as a string or a number.
type ViewID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ViewID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ViewID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("custompaint: view id must be a string or a number")
	}
	*id = ViewID(n.String())
	return nil
}

// ViewIDFromInt formats a numeric view id.
func ViewIDFromInt(n int64) ViewID {
	return ViewID(strconv.FormatInt(n, 10))
}

// paintMessage is a custom_paint payload. Either part may be absent.
type paintMessage struct {
	View        ViewID               `json:"view"`
	Attributes  *paint.Attributes    `json:"attributes,omitempty"`
	Constraints *surface.Constraints `json:"constraints,omitempty"`
}

type disposeMessage struct {
	View ViewID `json:"view"`
}

type decodeReply struct {
	Type    string          `json:"type"`
	Message drawable.Report `json:"message"`
}

func encodeReport(r drawable.Report) ([]byte, error) {
	return json.Marshal(decodeReply{Type: TypeDecodeDrawable, Message: r})
}
