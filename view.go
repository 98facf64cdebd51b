package custompaint

import (
	"context"
	"image"
	"sync"

	"github.com/gogpu/custompaint/paint"
	"github.com/gogpu/custompaint/painter"
	"github.com/gogpu/custompaint/surface"
)

// View is one custom-paint element: a surface plus the batches painted on
// it. Batches and constraint updates on a view are serialized.
type View struct {
	mu      sync.Mutex
	id      ViewID
	surface *surface.Surface
	interp  *painter.Interpreter
	skipped func()
}

// ID returns the view's id.
func (v *View) ID() ViewID { return v.id }

// Surface returns the view's surface.
func (v *View) Surface() *surface.Surface { return v.surface }

// ElementAttributes returns the attributes the host must set on the view's
// canvas element, or nil when none are needed.
func (v *View) ElementAttributes() map[string]string {
	return v.surface.Provider().ElementAttributes()
}

// SetConstraints applies a layout update. It reports false when the
// constraints were incomplete and ignored.
func (v *View) SetConstraints(c surface.Constraints) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.surface.ApplyConstraints(c)
}

// Paint executes batch on the view's canvas. When no canvas can be
// acquired the batch is dropped and the acquisition error, which wraps
// surface.ErrNotReady, is returned.
func (v *View) Paint(ctx context.Context, batch paint.Batch) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	dc, err := v.surface.Canvas(ctx)
	if err != nil {
		if v.skipped != nil {
			v.skipped()
		}
		return err
	}
	v.interp.Execute(dc, batch)
	return nil
}

// Snapshot returns a copy of the view's pixels.
func (v *View) Snapshot(ctx context.Context) (*image.NRGBA, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	dc, err := v.surface.Canvas(ctx)
	if err != nil {
		return nil, err
	}
	return dc.Snapshot(), nil
}
