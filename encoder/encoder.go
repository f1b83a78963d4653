package encoder

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/richinsley/goteapot/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered video frame's data, ready for encoding.
// Pixels are tightly packed RGBA rows, bottom row first as OpenGL reads them.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Config describes the video ffmpeg produces.
type Config struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	Codec      string // h264 or hevc
	FFMPEGPath string
	// Hardware selects the platform's hardware encoder when one exists.
	Hardware bool
}

// ConfigFromOptions reads the recording options.
func ConfigFromOptions(opts *options.SceneOptions) Config {
	cfg := Config{
		Width:      *opts.Width,
		Height:     *opts.Height,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		Codec:      "h264",
	}
	if opts.Codec != nil && *opts.Codec != "" {
		cfg.Codec = *opts.Codec
	}
	if opts.FFMPEGPath != nil {
		cfg.FFMPEGPath = *opts.FFMPEGPath
	}
	if opts.HWAccel != nil {
		cfg.Hardware = *opts.HWAccel
	}
	return cfg
}

// FrameSize is the byte length of one RGBA frame.
func (c Config) FrameSize() int { return c.Width * c.Height * 4 }

// videoCodec picks the ffmpeg encoder for the configured codec.
func videoCodec(codec string, hardware bool) string {
	if hardware {
		switch runtime.GOOS {
		case "darwin":
			if codec == "hevc" {
				return "hevc_videotoolbox"
			}
			return "h264_videotoolbox"
		case "linux", "windows":
			if codec == "hevc" {
				return "hevc_nvenc"
			}
			return "h264_nvenc"
		}
	}
	if codec == "hevc" {
		return "libx265"
	}
	return "libx264"
}

// Args builds the ffmpeg arguments for raw RGBA frames arriving on stdin.
func Args(cfg Config) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": cfg.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"c:v":     videoCodec(cfg.Codec, cfg.Hardware),
		"pix_fmt": "yuv420p",
		// OpenGL rows come bottom-up.
		"vf":  "vflip",
		"b:v": "8M",
	}
	if cfg.Codec == "hevc" && strings.HasSuffix(cfg.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// FFmpegEncoder pipes frames into an ffmpeg process.
type FFmpegEncoder struct {
	cfg    Config
	frames chan *Frame
	done   chan error
}

func NewFFmpegEncoder(cfg Config) (*FFmpegEncoder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid encoder geometry %dx%d@%d", cfg.Width, cfg.Height, cfg.FPS)
	}
	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("no output file")
	}
	return &FFmpegEncoder{
		cfg:    cfg,
		frames: make(chan *Frame, 5),
		done:   make(chan error, 1),
	}, nil
}

// Run is the consumer. It starts ffmpeg and writes every frame received by
// SendVideo to its stdin until Close.
func (e *FFmpegEncoder) Run() {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := Args(e.cfg)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(e.cfg.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if e.cfg.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(e.cfg.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock writes if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	e.done <- writeFrames(pipeWriter, e.frames, e.cfg.FrameSize(), errc)
}

// writeFrames copies frames to w, then closes w and waits for the process
// result on errc.
func writeFrames(w io.WriteCloser, frames <-chan *Frame, frameSize int, errc <-chan error) error {
	var writeErr error
	for frame := range frames {
		if writeErr != nil {
			// Drain so the producer never blocks.
			continue
		}
		if len(frame.Pixels) != frameSize {
			writeErr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), frameSize)
			continue
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to ffmpeg: %v", frame.PTS, err)
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	w.Close()
	runErr := <-errc
	if writeErr != nil {
		return writeErr
	}
	if runErr != nil {
		return fmt.Errorf("ffmpeg failed: %w", runErr)
	}
	return nil
}

func (e *FFmpegEncoder) SendVideo(frame *Frame) {
	e.frames <- frame
}

// Close signals the end of the stream and waits for ffmpeg to finish.
func (e *FFmpegEncoder) Close() error {
	close(e.frames)
	return <-e.done
}
