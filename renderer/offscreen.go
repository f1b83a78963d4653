package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/richinsley/goteapot/encoder"
)

// Encoder consumes rendered frames. Run is started on its own goroutine
// before the first SendVideo; Close waits for it to finish.
type Encoder interface {
	Run()
	SendVideo(frame *encoder.Frame)
	Close() error
}

// RecordOptions fix the offscreen frame size and timing.
type RecordOptions struct {
	Width    int
	Height   int
	FPS      int
	Duration float64 // seconds
}

// Frames is the number of frames a recording renders.
func (o RecordOptions) Frames() int {
	return int(o.Duration * float64(o.FPS))
}

// Record is the producer. It renders a fixed number of frames at a fixed time
// step into an offscreen target and hands the pixels to enc.
func (r *Renderer) Record(ctx context.Context, opts RecordOptions, enc Encoder) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	target, err := r.device.NewRenderTarget(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer target.Destroy()
	r.syncSize(opts.Width, opts.Height)

	log.Println("Starting in record mode...")
	go enc.Run()

	totalFrames := opts.Frames()
	timeStep := time.Second / time.Duration(opts.FPS)

	var renderErr error
	for i := 0; i < totalFrames; i++ {
		if err := ctx.Err(); err != nil {
			renderErr = err
			break
		}

		r.scene.Update(time.Duration(i) * timeStep)

		target.Bind()
		_, err := r.scene.Render()
		var pixels []byte
		if err == nil {
			pixels, err = target.ReadPixels()
		}
		target.Unbind()
		if err != nil {
			log.Printf("Error rendering frame %d: %v", i, err)
			renderErr = fmt.Errorf("frame %d: %w", i, err)
			break
		}

		enc.SendVideo(&encoder.Frame{Pixels: pixels, PTS: int64(i)})
		if i > 0 && i%(opts.FPS*5) == 0 {
			log.Printf("Recorded %d/%d frames", i, totalFrames)
		}
	}

	// Wait for the consumer to finish
	encErr := enc.Close()
	if renderErr != nil {
		return renderErr
	}
	return encErr
}
