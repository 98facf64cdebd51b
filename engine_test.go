package custompaint

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/custompaint/drawable"
	"github.com/gogpu/custompaint/surface"
)

const red = 0xFFFF0000

// chanSender collects replies.
type chanSender chan []byte

func (c chanSender) Send(msg []byte) error {
	c <- msg
	return nil
}

func (c chanSender) next(t *testing.T) decodeReply {
	t.Helper()
	select {
	case msg := <-c:
		var r decodeReply
		require.NoError(t, json.Unmarshal(msg, &r))
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reply")
		return decodeReply{}
	}
}

func newEngine(t *testing.T, opts ...Option) (*Engine, chanSender) {
	t.Helper()
	out := make(chanSender, 4)
	e, err := New(append([]Option{WithSender(out)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, out
}

func pngBase64(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func handle(t *testing.T, e *Engine, format string, args ...any) error {
	t.Helper()
	return e.HandleMessage(context.Background(), []byte(fmt.Sprintf(format, args...)))
}

func TestDecodeMemoryImage(t *testing.T) {
	e, out := newEngine(t)
	data := pngBase64(t, 3, 2, color.NRGBA{G: 255, A: 255})

	require.NoError(t, handle(t, e,
		`{"type":"decode_drawable","message":{"type":"memoryImage","data":%q,"target":7}}`, data))

	r := out.next(t)
	assert.Equal(t, TypeDecodeDrawable, r.Type)
	assert.Equal(t, drawable.Report{Event: drawable.EventDecode, Target: 7, Width: 3, Height: 2}, r.Message)

	img, ok := e.Drawables().Lookup(7)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestDecodeUnknownType(t *testing.T) {
	e, out := newEngine(t)
	require.NoError(t, handle(t, e,
		`{"type":"decode_drawable","message":{"type":"svgImage","target":3}}`))

	r := out.next(t)
	assert.Equal(t, drawable.EventError, r.Message.Event)
	assert.Equal(t, drawable.Handle(3), r.Message.Target)
	assert.Equal(t, "Unknown drawable type.", r.Message.Error)
}

func TestReplyWireFormat(t *testing.T) {
	msg, err := encodeReport(drawable.Report{Event: drawable.EventDecode, Target: 1, Width: 4, Height: 5})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"decode_drawable","message":{"event":"onDecode","target":1,"width":4,"height":5}}`,
		string(msg))
}

func TestPaintAfterConstraints(t *testing.T) {
	e, _ := newEngine(t)

	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"a","constraints":{"x":0,"y":0,"w":20,"h":20}}}`))
	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"a","attributes":{"commands":[
			{"action":"translate","dx":10,"dy":10},
			{"action":"drawRect","x":0,"y":0,"width":5,"height":5,"paint":{"color":%d}}
		]}}}`, red))

	v, err := e.View("a")
	require.NoError(t, err)
	assert.Nil(t, v.ElementAttributes())
	img, err := v.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(12, 12))
	assert.Equal(t, uint8(0), img.NRGBAAt(2, 2).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(17, 17).A)
}

func TestPaintBeforeLayoutIsDropped(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, _ := newEngine(t, WithRegisterer(reg))

	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":1,"attributes":{"commands":[{"action":"save"}]}}}`))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.skipped))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.metrics.batches))
	assert.Equal(t, 1, e.ViewCount())
}

func TestBatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, _ := newEngine(t, WithRegisterer(reg))

	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"m","constraints":{"x":0,"y":0,"w":4,"h":4},
		  "attributes":{"commands":[{"action":"save"},{"action":"sparkle"},{"action":"restore"}]}}}`))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.batches))
	assert.Equal(t, 2.0, testutil.ToFloat64(e.metrics.instructions.WithLabelValues("executed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.instructions.WithLabelValues("ignored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.views))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "custompaint_drawable_cached")
	assert.Contains(t, names, "custompaint_batch_duration_seconds")
}

func TestIncompleteConstraintsIgnored(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"c","constraints":{"x":0,"y":0,"w":"wide","h":10}}}`))

	v, err := e.View("c")
	require.NoError(t, err)
	assert.Equal(t, surface.Dimensions{}, v.Surface().Size())
}

func TestDrawImageFromCache(t *testing.T) {
	e, out := newEngine(t)
	data := pngBase64(t, 2, 2, color.NRGBA{B: 255, A: 255})
	require.NoError(t, handle(t, e,
		`{"type":"decode_drawable","message":{"type":"memoryImage","data":%q,"target":9}}`, data))
	require.True(t, out.next(t).Message.OK())

	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"i","constraints":{"x":0,"y":0,"w":8,"h":8},
		  "attributes":{"commands":[{"action":"drawImage","drawable":9,"dx":4,"dy":4}]}}}`))

	v, err := e.View("i")
	require.NoError(t, err)
	img, err := v.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(5, 5))
	assert.Equal(t, uint8(0), img.NRGBAAt(1, 1).A)
}

func TestViewIDForms(t *testing.T) {
	var a, b ViewID
	require.NoError(t, json.Unmarshal([]byte(`12`), &a))
	require.NoError(t, json.Unmarshal([]byte(`"12"`), &b))
	assert.Equal(t, a, b)
	assert.Equal(t, ViewIDFromInt(12), a)
	assert.Error(t, json.Unmarshal([]byte(`{}`), &a))
}

func TestDisposeView(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, handle(t, e, `{"type":"custom_paint","message":{"view":"d"}}`))
	assert.Equal(t, 1, e.ViewCount())

	_, ok := e.LookupView("d")
	assert.True(t, ok)

	require.NoError(t, handle(t, e, `{"type":"dispose_view","message":{"view":"d"}}`))
	assert.Equal(t, 0, e.ViewCount())
	_, ok = e.LookupView("d")
	assert.False(t, ok)

	require.NoError(t, handle(t, e, `{"type":"dispose_view","message":{"view":"missing"}}`))
}

func TestMalformedMessages(t *testing.T) {
	e, _ := newEngine(t)

	assert.Error(t, handle(t, e, `{"type":`))
	assert.Error(t, handle(t, e, `{"type":"custom_paint","message":{"view":"x","attributes":{"commands":{}}}}`))
	err := handle(t, e, `{"type":"resize_everything","message":{}}`)
	assert.True(t, errors.Is(err, ErrUnknownMessage), "%v", err)
	assert.Equal(t, 0, e.ViewCount())
}

func TestHandshakePlatform(t *testing.T) {
	reg := surface.NewRegistry()
	surface.RegisterMiniProgram(reg, func(context.Context, surface.Dimensions) (surface.NodeInfo, error) {
		return surface.NodeInfo{Width: 10, Height: 5, PixelRatio: 2}, nil
	})
	e, _ := newEngine(t, WithRegistry(reg), WithPlatform(surface.PlatformWeChat))

	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"h","constraints":{"x":0,"y":0,"w":10,"h":5},
		  "attributes":{"commands":[{"action":"drawRect","x":0,"y":0,"width":10,"height":5,"paint":{"color":%d}}]}}}`, red))

	v, err := e.View("h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"type": "2d"}, v.ElementAttributes())
	img, err := v.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(18, 8))
}

func TestUnknownPlatform(t *testing.T) {
	_, err := New(WithPlatform("tvOS"))
	assert.True(t, errors.Is(err, surface.ErrUnknownPlatform), "%v", err)
}

func TestPlacerPerView(t *testing.T) {
	placed := map[ViewID][4]float64{}
	e, _ := newEngine(t, WithPlacer(func(id ViewID) surface.Placer {
		return surface.PlacerFunc(func(x, y, w, h float64) {
			placed[id] = [4]float64{x, y, w, h}
		})
	}))
	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"p","constraints":{"x":1,"y":2,"w":3,"h":4}}}`))
	assert.Equal(t, [4]float64{1, 2, 3, 4}, placed["p"])
}

func TestCloseIsIdempotent(t *testing.T) {
	out := make(chanSender, 1)
	e, err := New(WithSender(out))
	require.NoError(t, err)
	require.NoError(t, handle(t, e, `{"type":"custom_paint","message":{"view":"z"}}`))

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	assert.Equal(t, 0, e.ViewCount())

	e.DecodeDrawable(drawable.Descriptor{Type: drawable.KindMemoryImage, Target: 1})
	r := out.next(t)
	assert.Equal(t, drawable.Report{Event: drawable.EventError, Target: 1, Error: ErrClosed.Error()}, r.Message)
	select {
	case <-out:
		t.Fatal("exactly one reply per request")
	case <-time.After(20 * time.Millisecond):
	}
	_, err = e.View("z")
	assert.True(t, errors.Is(err, ErrClosed), "%v", err)
}

func TestBadRecordKeepsBatch(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, handle(t, e,
		`{"type":"custom_paint","message":{"view":"b","constraints":{"x":0,"y":0,"w":4,"h":4},
		  "attributes":{"commands":[{"action":"rotate","radians":"1"},{"action":"drawColor","color":"#FFFF0000"}]}}}`))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.instructions.WithLabelValues("ignored")))
	v, err := e.View("b")
	require.NoError(t, err)
	img, err := v.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(2, 2))
}
