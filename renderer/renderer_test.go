package renderer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/camera"
	"github.com/richinsley/goteapot/encoder"
	"github.com/richinsley/goteapot/graphics/graphicstest"
	"github.com/richinsley/goteapot/primitives"
	"github.com/richinsley/goteapot/program"
	"github.com/richinsley/goteapot/scene"
	"github.com/richinsley/goteapot/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContext closes after a fixed number of frames, advancing its clock by
// step seconds per frame.
type fakeContext struct {
	frames     int
	maxFrames  int
	step       float64
	width      int
	height     int
	fullscreen bool
	closed     bool
}

func (c *fakeContext) MakeCurrent()                   {}
func (c *fakeContext) Shutdown()                      {}
func (c *fakeContext) ShouldClose() bool              { return c.closed || c.frames >= c.maxFrames }
func (c *fakeContext) SetShouldClose(v bool)          { c.closed = v }
func (c *fakeContext) EndFrame()                      { c.frames++ }
func (c *fakeContext) GetFramebufferSize() (int, int) { return c.width, c.height }
func (c *fakeContext) Time() float64                  { return float64(c.frames) * c.step }
func (c *fakeContext) SetFullscreen(v bool)           { c.fullscreen = v }

type fakeEncoder struct {
	mu       sync.Mutex
	frames   []*encoder.Frame
	ran      chan struct{}
	closeErr error
}

func newFakeEncoder() *fakeEncoder { return &fakeEncoder{ran: make(chan struct{})} }

func (e *fakeEncoder) Run() { close(e.ran) }

func (e *fakeEncoder) SendVideo(f *encoder.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames = append(e.frames, f)
}

func (e *fakeEncoder) Close() error {
	<-e.ran
	return e.closeErr
}

func newTestRenderer(t *testing.T, ctx *fakeContext) (*Renderer, *scene.Scene, *graphicstest.Device) {
	t.Helper()
	dev := graphicstest.NewDevice()
	lib := primitives.NewLibrary(dev)
	require.NoError(t, lib.LoadDefaults(""))
	rc := &scene.RenderContext{
		Device:     dev,
		Shaders:    program.NewManager(dev, nil),
		Camera:     camera.New(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		Primitives: lib,
	}
	s, err := scene.New(rc, shader.NewStore(nil), scene.Options{Variant: "phong", NumLights: 4, ShowLights: true})
	require.NoError(t, err)
	return NewRenderer(ctx, dev, s), s, dev
}

func TestRenderer_Run(t *testing.T) {
	ctx := &fakeContext{maxFrames: 10, step: 0.1, width: 800, height: 400}
	r, s, dev := newTestRenderer(t, ctx)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 10, ctx.frames)
	assert.Equal(t, 10, dev.Clears)
	// 4 markers and the teapot per frame.
	assert.Len(t, dev.Draws, 50)
	assert.Equal(t, 800, dev.ViewportW)
	// The last update saw 0.9s: 45 rotation ticks.
	assert.Equal(t, float32(45), s.Rotation())
}

func TestRenderer_RunFollowsResize(t *testing.T) {
	ctx := &fakeContext{maxFrames: 1, width: 300, height: 100}
	r, _, dev := newTestRenderer(t, ctx)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 300, dev.ViewportW)
	assert.Equal(t, 100, dev.ViewportH)
}

func TestRenderer_RunCancelled(t *testing.T) {
	ctx := &fakeContext{maxFrames: 1000, width: 10, height: 10}
	r, _, _ := newTestRenderer(t, ctx)
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(cctx), context.Canceled)
	assert.Zero(t, ctx.frames)
}

func TestRenderer_Record(t *testing.T) {
	r, s, dev := newTestRenderer(t, &fakeContext{})
	enc := newFakeEncoder()

	opts := RecordOptions{Width: 64, Height: 32, FPS: 50, Duration: 0.5}
	require.NoError(t, r.Record(context.Background(), opts, enc))

	require.Len(t, enc.frames, 25)
	for i, f := range enc.frames {
		assert.Equal(t, int64(i), f.PTS)
		assert.Len(t, f.Pixels, 64*32*4)
	}
	require.Len(t, dev.Targets, 1)
	assert.Equal(t, 25, dev.Targets[0].Reads)
	assert.True(t, dev.Targets[0].Destroyed)
	assert.False(t, dev.Targets[0].Bound)
	// Frame 24 is at 480ms, 24 rotation ticks after arming at 0.
	assert.Equal(t, float32(24), s.Rotation())
}

func TestRenderer_RecordEncoderError(t *testing.T) {
	r, _, _ := newTestRenderer(t, &fakeContext{})
	enc := newFakeEncoder()
	enc.closeErr = errors.New("ffmpeg failed")
	err := r.Record(context.Background(), RecordOptions{Width: 4, Height: 4, FPS: 10, Duration: 0.2}, enc)
	assert.ErrorIs(t, err, enc.closeErr)
	assert.Len(t, enc.frames, 2)
}

func TestRenderer_RecordCancelled(t *testing.T) {
	r, _, _ := newTestRenderer(t, &fakeContext{})
	enc := newFakeEncoder()
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Record(cctx, RecordOptions{Width: 4, Height: 4, FPS: 10, Duration: 1}, enc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, enc.frames)
}

func TestRenderer_RecordInvalid(t *testing.T) {
	r, _, _ := newTestRenderer(t, &fakeContext{})
	assert.Error(t, r.Record(context.Background(), RecordOptions{Width: 4, Height: 4}, newFakeEncoder()))
	assert.Error(t, r.Record(context.Background(), RecordOptions{FPS: 10, Duration: 1}, newFakeEncoder()))
}

func TestRecordOptions_Frames(t *testing.T) {
	assert.Equal(t, 300, RecordOptions{FPS: 30, Duration: 10}.Frames())
	assert.Equal(t, 0, RecordOptions{FPS: 30}.Frames())
}
