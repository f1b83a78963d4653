package encoder

import (
	"bytes"
	"errors"
	"runtime"
	"testing"

	"github.com/richinsley/goteapot/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeBuffer struct {
	bytes.Buffer
	closed bool
	err    error
}

func (b *closeBuffer) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.Buffer.Write(p)
}

func (b *closeBuffer) Close() error {
	b.closed = true
	return nil
}

func TestArgs(t *testing.T) {
	in, out := Args(Config{Width: 640, Height: 360, FPS: 30, OutputFile: "out.mp4", Codec: "h264"})
	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "640x360", in["s"])
	assert.Equal(t, 30, in["framerate"])

	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
	assert.NotContains(t, out, "tag:v")
}

func TestArgs_HEVCInMP4(t *testing.T) {
	_, out := Args(Config{Width: 2, Height: 2, FPS: 1, OutputFile: "out.mp4", Codec: "hevc"})
	assert.Equal(t, "libx265", out["c:v"])
	assert.Equal(t, "hvc1", out["tag:v"])

	_, out = Args(Config{Width: 2, Height: 2, FPS: 1, OutputFile: "out.mkv", Codec: "hevc"})
	assert.NotContains(t, out, "tag:v")
}

func TestVideoCodec_Hardware(t *testing.T) {
	got := videoCodec("h264", true)
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, "h264_videotoolbox", got)
	case "linux", "windows":
		assert.Equal(t, "h264_nvenc", got)
	default:
		assert.Equal(t, "libx264", got)
	}
}

func TestConfigFromOptions(t *testing.T) {
	w, h, fps, out, codec := 320, 240, 25, "teapot.mkv", ""
	cfg := ConfigFromOptions(&options.SceneOptions{Width: &w, Height: &h, FPS: &fps, OutputFile: &out, Codec: &codec})
	assert.Equal(t, Config{Width: 320, Height: 240, FPS: 25, OutputFile: "teapot.mkv", Codec: "h264"}, cfg)
	assert.Equal(t, 320*240*4, cfg.FrameSize())
}

func TestNewFFmpegEncoder_Validates(t *testing.T) {
	_, err := NewFFmpegEncoder(Config{Width: 0, Height: 10, FPS: 30, OutputFile: "x.mp4"})
	assert.Error(t, err)
	_, err = NewFFmpegEncoder(Config{Width: 10, Height: 10, FPS: 30})
	assert.Error(t, err)
	_, err = NewFFmpegEncoder(Config{Width: 10, Height: 10, FPS: 30, OutputFile: "x.mp4"})
	assert.NoError(t, err)
}

func TestWriteFrames(t *testing.T) {
	frames := make(chan *Frame, 3)
	frames <- &Frame{Pixels: []byte{1, 2, 3, 4}, PTS: 0}
	frames <- &Frame{Pixels: []byte{5, 6, 7, 8}, PTS: 1}
	close(frames)
	errc := make(chan error, 1)
	errc <- nil

	var w closeBuffer
	require.NoError(t, writeFrames(&w, frames, 4, errc))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, w.Bytes())
	assert.True(t, w.closed)
}

func TestWriteFrames_WrongSizeDrains(t *testing.T) {
	frames := make(chan *Frame, 3)
	frames <- &Frame{Pixels: []byte{1, 2}, PTS: 0}
	frames <- &Frame{Pixels: []byte{1, 2, 3, 4}, PTS: 1}
	close(frames)
	errc := make(chan error, 1)
	errc <- nil

	var w closeBuffer
	err := writeFrames(&w, frames, 4, errc)
	assert.ErrorContains(t, err, "frame 0")
	assert.Zero(t, w.Len())
	assert.Empty(t, frames)
}

func TestWriteFrames_ProcessError(t *testing.T) {
	frames := make(chan *Frame)
	close(frames)
	errc := make(chan error, 1)
	boom := errors.New("exit status 1")
	errc <- boom

	var w closeBuffer
	err := writeFrames(&w, frames, 4, errc)
	assert.ErrorIs(t, err, boom)
}

func TestWriteFrames_WriteError(t *testing.T) {
	frames := make(chan *Frame, 1)
	frames <- &Frame{Pixels: []byte{1, 2, 3, 4}, PTS: 7}
	close(frames)
	errc := make(chan error, 1)
	errc <- nil

	broken := errors.New("broken pipe")
	w := closeBuffer{err: broken}
	err := writeFrames(&w, frames, 4, errc)
	assert.ErrorIs(t, err, broken)
	assert.ErrorContains(t, err, "frame 7")
}
