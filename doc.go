// Package custompaint renders host-driven paint instruction streams onto
// per-view drawing surfaces.
//
// The host talks to an Engine with JSON messages. Three kinds are routed:
//
//   - decode_drawable: resolve a network or in-memory image under a handle;
//     the outcome is reported back through the Sender.
//   - custom_paint: deliver layout constraints or a batch of paint commands
//     to a view.
//   - dispose_view: drop a view and its surface.
//
// # Usage
//
//	e, err := custompaint.New(
//	    custompaint.WithSender(custompaint.SenderFunc(conn.Write)),
//	    custompaint.WithPlatform("web"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	for msg := range inbound {
//	    if err := e.HandleMessage(ctx, msg); err != nil {
//	        log.Println(err)
//	    }
//	}
//
// Decoded drawables are shared by every view of an Engine. A batch that
// arrives before its view has a surface is dropped; the host repaints
// after the next layout.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package custompaint
