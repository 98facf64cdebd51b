package main

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/custompaint"
)

const sceneJSON = `{
  "width": 16, "height": 8,
  "drawables": [{"type": "svgImage", "target": 1}],
  "commands": [
    {"action": "drawColor", "color": "#FFFFFFFF"},
    {"action": "drawRect", "x": 8, "y": 0, "width": 8, "height": 8, "paint": {"color": "#FF0000FF"}}
  ]
}`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRenderFile(t *testing.T) {
	e, err := custompaint.New()
	require.NoError(t, err)
	defer e.Close()

	out := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, renderFile(context.Background(), e, writeScene(t, sceneJSON), out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, color.NRGBAModel.Convert(color.White), color.NRGBAModel.Convert(img.At(2, 4)))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, color.NRGBAModel.Convert(img.At(12, 4)))
}

func TestRenderRepaintsFromScratch(t *testing.T) {
	e, err := custompaint.New()
	require.NoError(t, err)
	defer e.Close()

	s, err := loadScene(writeScene(t, sceneJSON))
	require.NoError(t, err)
	_, err = render(context.Background(), e, s)
	require.NoError(t, err)

	s.Commands = nil
	img, err := render(context.Background(), e, s)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.NRGBAAt(12, 4).A)
	assert.Equal(t, 1, e.ViewCount())
}

func TestLoadSceneErrors(t *testing.T) {
	_, err := loadScene(writeScene(t, `{"width": 0, "height": 4}`))
	assert.Error(t, err)

	_, err = loadScene(writeScene(t, `{"width": 4, "height": 4, "commands": 7}`))
	assert.Error(t, err)

	_, err = loadScene(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestRenderLogsFailedDrawables(t *testing.T) {
	var buf bytes.Buffer
	custompaint.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { custompaint.SetLogger(nil) })

	e, err := custompaint.New()
	require.NoError(t, err)
	defer e.Close()

	s, err := loadScene(writeScene(t, sceneJSON))
	require.NoError(t, err)
	_, err = render(context.Background(), e, s)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "paintrender: drawable failed")
}

func TestRun(t *testing.T) {
	t.Cleanup(func() { custompaint.SetLogger(nil) })
	out := filepath.Join(t.TempDir(), "run.png")
	require.NoError(t, run("", writeScene(t, sceneJSON), out, false))

	_, err := os.Stat(out)
	assert.NoError(t, err)

	assert.Error(t, run(filepath.Join(t.TempDir(), "missing.toml"), writeScene(t, sceneJSON), out, false))
}
