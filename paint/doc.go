// Package paint defines the paint instruction vocabulary exchanged with the
// host: instructions, path segments, paint styles and colors, together with
// their JSON decoding.
//
// Instructions arrive as tagged records ({"action": "drawRect", ...}). Each
// action decodes into its own struct so the interpreter can dispatch with a
// type switch instead of inspecting raw maps. Enumerated values that the
// host sends with a type prefix ("StrokeCap.round", "PaintingStyle.fill",
// "BlendMode.clear") are reduced to closed Go enumerations here, at the
// boundary, and never reach rendering code as strings.
//
// Actions outside the vocabulary decode into Unknown and path segments
// outside it into UnknownSegment; neither is an error.
package paint
