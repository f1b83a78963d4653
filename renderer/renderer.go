package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/scene"
)

// Renderer drives a Scene: interactively against a window, or offscreen into
// an encoder.
type Renderer struct {
	context graphics.Context
	device  graphics.Device
	scene   *scene.Scene
	width   int
	height  int
}

func NewRenderer(ctx graphics.Context, device graphics.Device, s *scene.Scene) *Renderer {
	return &Renderer{
		context: ctx,
		device:  device,
		scene:   s,
	}
}

// syncSize resizes the scene when the framebuffer changed size.
func (r *Renderer) syncSize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.scene.Resize(width, height)
}

// Run is the interactive loop. It returns when the window is asked to close,
// ctx is cancelled or a frame fails to render.
func (r *Renderer) Run(ctx context.Context) error {
	startTime := r.context.Time()
	var frameCount int64

	for !r.context.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.syncSize(r.context.GetFramebufferSize())
		elapsed := time.Duration((r.context.Time() - startTime) * float64(time.Second))
		r.scene.Update(elapsed)

		if _, err := r.scene.Render(); err != nil {
			return fmt.Errorf("frame %d: %w", frameCount, err)
		}

		r.context.EndFrame()
		frameCount++
	}
	log.Printf("Rendered %d frames", frameCount)
	return nil
}
