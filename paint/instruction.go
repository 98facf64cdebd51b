package paint

import (
	"encoding/json"
	"fmt"
)

// Instruction is one paint opcode. Instructions are immutable once decoded.
type Instruction interface {
	// Action returns the opcode of the instruction.
	Action() Action
}

// DrawRect fills or strokes an axis-aligned rectangle.
type DrawRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Paint  *Paint  `json:"paint"`
}

// DrawPath fills or strokes a path.
type DrawPath struct {
	Path  Path   `json:"path"`
	Paint *Paint `json:"paint"`
}

// ClipPath intersects the clip region with a path. The paint is applied to
// the context but nothing is drawn.
type ClipPath struct {
	Path  Path   `json:"path"`
	Paint *Paint `json:"paint"`
}

// DrawDRRect paints the region inside Outer and outside Inner.
type DrawDRRect struct {
	Outer Path   `json:"outer"`
	Inner Path   `json:"inner"`
	Paint *Paint `json:"paint"`
}

// DrawColor floods the surface with a color, or clears it when BlendMode is
// BlendClear.
type DrawColor struct {
	Color     Color     `json:"color"`
	BlendMode BlendMode `json:"blendMode"`
}

// DrawImage blits a cached drawable with its top-left corner at (DX, DY).
type DrawImage struct {
	Drawable int64   `json:"drawable"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Paint    *Paint  `json:"paint"`
}

// DrawImageRect blits the source rectangle of a cached drawable into the
// destination rectangle.
type DrawImageRect struct {
	Drawable int64   `json:"drawable"`
	SrcX     float64 `json:"srcX"`
	SrcY     float64 `json:"srcY"`
	SrcW     float64 `json:"srcW"`
	SrcH     float64 `json:"srcH"`
	DstX     float64 `json:"dstX"`
	DstY     float64 `json:"dstY"`
	DstW     float64 `json:"dstW"`
	DstH     float64 `json:"dstH"`
	Paint    *Paint  `json:"paint"`
}

// Save pushes the transform, clip and style.
type Save struct{}

// Restore pops the state pushed by the matching Save.
type Restore struct{}

// Rotate rotates the transform by Radians.
type Rotate struct {
	Radians float64 `json:"radians"`
}

// Scale scales the transform.
type Scale struct {
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
}

// Skew shears the transform: x' = x + SX*y, y' = SY*x + y.
type Skew struct {
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
}

// Transform composes the affine matrix
//
//	| A  C  TX |
//	| B  D  TY |
//
// into the current transform.
type Transform struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	D  float64 `json:"d"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// Translate moves the origin.
type Translate struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Unknown is an instruction whose action is outside the vocabulary, or a
// record that could not be decoded. Err is set in the second case.
type Unknown struct {
	Name string
	Err  error
}

func (DrawRect) Action() Action      { return ActionDrawRect }
func (DrawPath) Action() Action      { return ActionDrawPath }
func (ClipPath) Action() Action      { return ActionClipPath }
func (DrawDRRect) Action() Action    { return ActionDrawDRRect }
func (DrawColor) Action() Action     { return ActionDrawColor }
func (DrawImage) Action() Action     { return ActionDrawImage }
func (DrawImageRect) Action() Action { return ActionDrawImageRect }
func (Save) Action() Action          { return ActionSave }
func (Restore) Action() Action       { return ActionRestore }
func (Rotate) Action() Action        { return ActionRotate }
func (Scale) Action() Action         { return ActionScale }
func (Skew) Action() Action          { return ActionSkew }
func (Transform) Action() Action     { return ActionTransform }
func (Translate) Action() Action     { return ActionTranslate }
func (Unknown) Action() Action       { return ActionUnknown }

// actionHeader reads only the tag of a record.
type actionHeader struct {
	Action string `json:"action"`
}

// Batch is an ordered instruction list as carried by an attribute update.
type Batch []Instruction

// UnmarshalJSON implements json.Unmarshaler. The batch must be an array;
// a record that fails to decode becomes an Unknown carrying the error, so
// one bad record does not cost the rest of the batch.
func (b *Batch) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Batch, 0, len(raw))
	for i, msg := range raw {
		ins, err := DecodeInstruction(msg)
		if err != nil {
			var head actionHeader
			_ = json.Unmarshal(msg, &head)
			ins = Unknown{Name: head.Action, Err: fmt.Errorf("paint: instruction %d: %w", i, err)}
		}
		out = append(out, ins)
	}
	*b = out
	return nil
}

// Attributes is the attribute update that carries a paint batch.
type Attributes struct {
	Commands Batch `json:"commands"`
}

// DecodeInstruction decodes one tagged instruction record.
func DecodeInstruction(msg []byte) (Instruction, error) {
	var head actionHeader
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, err
	}
	switch ParseAction(head.Action) {
	case ActionDrawRect:
		return decodeAs[DrawRect](msg)
	case ActionDrawPath:
		return decodeAs[DrawPath](msg)
	case ActionClipPath:
		return decodeAs[ClipPath](msg)
	case ActionDrawDRRect:
		return decodeAs[DrawDRRect](msg)
	case ActionDrawColor:
		return decodeAs[DrawColor](msg)
	case ActionDrawImage:
		return decodeAs[DrawImage](msg)
	case ActionDrawImageRect:
		return decodeAs[DrawImageRect](msg)
	case ActionSave:
		return Save{}, nil
	case ActionRestore:
		return Restore{}, nil
	case ActionRotate:
		return decodeAs[Rotate](msg)
	case ActionScale:
		return decodeAs[Scale](msg)
	case ActionSkew:
		return decodeAs[Skew](msg)
	case ActionTransform:
		return decodeAs[Transform](msg)
	case ActionTranslate:
		return decodeAs[Translate](msg)
	default:
		return Unknown{Name: head.Action}, nil
	}
}

// instructionValue constrains decodeAs to the concrete instruction structs.
type instructionValue interface {
	DrawRect | DrawPath | ClipPath | DrawDRRect | DrawColor | DrawImage |
		DrawImageRect | Rotate | Scale | Skew | Transform | Translate
	Instruction
}

func decodeAs[T instructionValue](msg []byte) (Instruction, error) {
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil, err
	}
	return v, nil
}
