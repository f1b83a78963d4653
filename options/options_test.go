package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func validOptions() *SceneOptions {
	return &SceneOptions{
		Width:      ptr(1280),
		Height:     ptr(720),
		Scale:      ptr(8.0),
		Record:     ptr(true),
		Duration:   ptr(5.0),
		FPS:        ptr(30),
		OutputFile: ptr("teapot.mp4"),
		Codec:      ptr("h264"),
	}
}

func TestSceneOptions_Validate(t *testing.T) {
	assert.NoError(t, validOptions().Validate())
	assert.NoError(t, (&SceneOptions{}).Validate())

	o := validOptions()
	o.Width = ptr(0)
	o.Codec = ptr("vp9")
	err := o.Validate()
	assert.ErrorContains(t, err, "width")
	assert.ErrorContains(t, err, "vp9")

	o = validOptions()
	o.Scale = ptr(0.5)
	assert.ErrorContains(t, o.Validate(), "scale")
}

func TestSceneOptions_RecordingOnlyChecks(t *testing.T) {
	o := validOptions()
	o.FPS = ptr(0)
	o.OutputFile = ptr("")
	assert.Error(t, o.Validate())

	o.Record = ptr(false)
	assert.NoError(t, o.Validate())
}

func TestSceneOptions_HeadlessNeedsRecord(t *testing.T) {
	o := validOptions()
	o.Headless = ptr(true)
	assert.NoError(t, o.Validate())

	o.Record = ptr(false)
	assert.ErrorContains(t, o.Validate(), "headless")
}
