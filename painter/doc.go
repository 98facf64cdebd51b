// Package painter executes paint instruction batches against a canvas.
//
// An Interpreter walks a batch in order, applying each instruction to a
// canvas.Canvas: style changes through ApplyPaint, geometry through
// BuildPath, image blits through an ImageSource, and compound ring shapes
// through an offscreen buffer cut with the XOR composite operation.
//
// Unknown actions are skipped. Rendering errors are logged and do not stop
// the batch.
package painter
