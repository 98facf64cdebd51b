package paint

// Action identifies the type of an instruction.
type Action uint8

const (
	// Drawing actions
	ActionDrawRect      Action = iota // Fill or stroke a rectangle
	ActionDrawPath                    // Fill or stroke a path
	ActionDrawDRRect                  // Fill or stroke an outer path minus an inner path
	ActionClipPath                    // Intersect the clip with a path
	ActionDrawColor                   // Flood or clear the whole surface
	ActionDrawImage                   // Blit a cached drawable at a point
	ActionDrawImageRect               // Blit a region of a cached drawable into a rectangle

	// State actions
	ActionSave    // Push transform, clip and style
	ActionRestore // Pop transform, clip and style

	// Transform actions
	ActionRotate
	ActionScale
	ActionSkew
	ActionTransform
	ActionTranslate

	// ActionUnknown marks an action outside the vocabulary.
	ActionUnknown
)

// actionNames maps Action values to their wire names.
var actionNames = [...]string{
	ActionDrawRect:      "drawRect",
	ActionDrawPath:      "drawPath",
	ActionDrawDRRect:    "drawDRRect",
	ActionClipPath:      "clipPath",
	ActionDrawColor:     "drawColor",
	ActionDrawImage:     "drawImage",
	ActionDrawImageRect: "drawImageRect",
	ActionSave:          "save",
	ActionRestore:       "restore",
	ActionRotate:        "rotate",
	ActionScale:         "scale",
	ActionSkew:          "skew",
	ActionTransform:     "transform",
	ActionTranslate:     "translate",
	ActionUnknown:       "unknown",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a wire name to its Action. Names outside the vocabulary
// map to ActionUnknown.
func ParseAction(name string) Action {
	for a, n := range actionNames {
		if n == name && Action(a) != ActionUnknown {
			return Action(a)
		}
	}
	return ActionUnknown
}
