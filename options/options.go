package options

import (
	"errors"
	"fmt"
	"strings"
)

// SceneOptions holds the command line configuration. Fields are pointers so
// they can be bound directly to flag values.
type SceneOptions struct {
	Help       *bool
	Variant    *string
	NumLights  *int
	Scale      *float64
	Material   *string
	ShowLights *bool
	Seed       *uint64
	ShaderDir  *string // directory whose files override the built-in shader sources
	ModelFile  *string // Wavefront OBJ used for the teapot
	Translate  *bool   // translate shaders from WebGL2 GLSL ES before compiling
	Width      *int
	Height     *int
	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
	HWAccel    *bool
	Headless   *bool // record through an EGL context instead of a hidden window
}

// Codecs the encoder accepts.
var Codecs = []string{"h264", "hevc"}

// Validate checks the option values that the flag package cannot.
func (o *SceneOptions) Validate() error {
	var errs []error
	if o.Width != nil && *o.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", *o.Width))
	}
	if o.Height != nil && *o.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", *o.Height))
	}
	if o.Scale != nil && *o.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be at least 1, got %g", *o.Scale))
	}
	recording := o.Record != nil && *o.Record
	if o.Headless != nil && *o.Headless && !recording {
		errs = append(errs, errors.New("headless rendering requires -record"))
	}
	if recording {
		if o.FPS == nil || *o.FPS <= 0 {
			errs = append(errs, errors.New("fps must be positive when recording"))
		}
		if o.Duration == nil || *o.Duration <= 0 {
			errs = append(errs, errors.New("duration must be positive when recording"))
		}
		if o.OutputFile == nil || *o.OutputFile == "" {
			errs = append(errs, errors.New("an output file is required when recording"))
		}
		if o.Codec != nil && !validCodec(*o.Codec) {
			errs = append(errs, fmt.Errorf("unsupported codec %q (have %s)", *o.Codec, strings.Join(Codecs, ", ")))
		}
	}
	return errors.Join(errs...)
}

func validCodec(c string) bool {
	for _, k := range Codecs {
		if k == c {
			return true
		}
	}
	return false
}
