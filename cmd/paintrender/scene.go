package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/custompaint"
	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/paint"
	"github.com/gogpu/custompaint/surface"
)

// Scene is a self-contained paint job: the drawables it references and
// one command batch, painted on a Width×Height view.
type Scene struct {
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	Drawables []drawable.Descriptor `json:"drawables"`
	Commands  paint.Batch           `json:"commands"`
}

func loadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Width < 1 || s.Height < 1 {
		return nil, fmt.Errorf("%s: scene size %vx%v", path, s.Width, s.Height)
	}
	return &s, nil
}

// render paints s on a fresh view of e and returns the pixels.
// Drawables that fail to resolve are logged and left out.
func render(ctx context.Context, e *custompaint.Engine, s *Scene) (*image.NRGBA, error) {
	for _, d := range s.Drawables {
		if r := e.Drawables().Resolve(ctx, d); !r.OK() {
			custompaint.Logger().Warn("paintrender: drawable failed", "target", r.Target, "err", r.Error)
		}
	}

	const id = "scene"
	e.DisposeView(id)
	v, err := e.View(id)
	if err != nil {
		return nil, err
	}
	v.SetConstraints(surface.Rect(0, 0, s.Width, s.Height))
	if err := v.Paint(ctx, s.Commands); err != nil {
		return nil, err
	}
	return v.Snapshot(ctx)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
