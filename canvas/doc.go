// Package canvas provides the drawing context that paint instructions
// mutate.
//
// Canvas is the interface the interpreter targets; Context is its raster
// implementation on top of gg's pixmap and software renderer. It follows the
// HTML canvas model: a current path built in user space and stored in device
// space, a save/restore stack holding the transform, style, clip and
// composite operation, and fill/stroke calls that rasterize the current path.
//
// # Coordinate System
//
// Origin at the top-left, X increasing right, Y increasing down, angles in
// radians. Pixel dimensions (Width, Height) are device pixels; a surface may
// pre-scale the transform so callers work in logical units.
//
// # Compositing
//
// Drawing normally composites source-over. Two additions beyond gg's
// immediate API are implemented here: an antialiased clip mask intersected
// by Clip, and an exclusive-or composite operation (OpXor) used to cut
// holes into offscreen buffers.
package canvas
