package scene

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/richinsley/goteapot/lights"
	"github.com/richinsley/goteapot/shader"
)

const (
	RotationInterval = 20 * time.Millisecond
	LightInterval    = time.Second
	DefaultScale     = 8
)

// Action is a discrete user command.
type Action int

const (
	ScaleUp Action = iota
	ScaleDown
	MoreLights
	FewerLights
	ToggleLights
	WireframeOn
	WireframeOff
	ToggleWireframe
)

var actionNames = map[Action]string{
	ScaleUp:         "scale-up",
	ScaleDown:       "scale-down",
	MoreLights:      "more-lights",
	FewerLights:     "fewer-lights",
	ToggleLights:    "toggle-lights",
	WireframeOn:     "wireframe-on",
	WireframeOff:    "wireframe-off",
	ToggleWireframe: "toggle-wireframe",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "action(" + strconv.Itoa(int(a)) + ")"
}

// Options configure a new Scene.
type Options struct {
	Variant    string
	NumLights  int
	Scale      float32
	ShowLights bool
	Material   string
	Seed       uint64
}

// Scene owns the mutable state of the teapot demo: object rotation and
// scale, the light set, pointer input and the two timers driving animation.
type Scene struct {
	rc      *RenderContext
	variant Variant
	opts    Options

	Pointer Pointer

	rotation   float32
	scale      float32
	showLights bool
	wireframe  bool
	lights     *lights.Set
	rng        *rand.Rand

	rotationTimer *Timer
	lightTimer    *Timer
}

// New defines and builds the scene's shader programs, activates the variant
// program and uploads its first set of lights.
func New(rc *RenderContext, store *shader.Store, opts Options) (*Scene, error) {
	v, err := LookupVariant(opts.Variant)
	if err != nil {
		return nil, err
	}
	if opts.Material == "" {
		opts.Material = v.DefaultMaterial
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.NumLights == 0 {
		opts.NumLights = lights.DefaultLights
	}
	n := lights.Clamp(opts.NumLights)

	if err := definePrograms(rc.Shaders, store, v, n); err != nil {
		return nil, err
	}
	for _, name := range []string{MarkerProgram, v.Program} {
		if err := rc.Shaders.Build(name); err != nil {
			return nil, fmt.Errorf("failed to build shader program %s: %w", name, err)
		}
	}

	s := &Scene{
		rc:            rc,
		variant:       v,
		opts:          opts,
		scale:         opts.Scale,
		showLights:    opts.ShowLights,
		lights:        lights.NewSet(n, v.Lights),
		rng:           rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		rotationTimer: NewTimer(RotationInterval),
		lightTimer:    NewTimer(LightInterval),
	}
	if err := s.rc.Shaders.Use(v.Program); err != nil {
		return nil, err
	}
	if err := v.uploadStatic(rc.Shaders, opts.Material); err != nil {
		return nil, err
	}
	s.lights.Regenerate(s.rng)
	s.uploadLights()
	return s, nil
}

func (s *Scene) Variant() Variant    { return s.variant }
func (s *Scene) Rotation() float32   { return s.rotation }
func (s *Scene) Scale() float32      { return s.scale }
func (s *Scene) ShowLights() bool    { return s.showLights }
func (s *Scene) Wireframe() bool     { return s.wireframe }
func (s *Scene) NumLights() int      { return s.lights.Len() }
func (s *Scene) Lights() *lights.Set { return s.lights }

// uploadLights writes the light set to the variant program in eye space.
func (s *Scene) uploadLights() {
	if err := s.rc.Shaders.Use(s.variant.Program); err != nil {
		log.Printf("Warning: cannot upload lights: %v", err)
		return
	}
	s.lights.Upload(s.rc.Shaders, s.rc.Camera.View())
}

// Update advances the timers to now: each rotation tick turns the object by
// one degree, each light tick regenerates and re-uploads the lights.
func (s *Scene) Update(now time.Duration) {
	if n := s.rotationTimer.Fire(now); n > 0 {
		s.rotation += float32(n)
	}
	if s.lightTimer.Fire(now) > 0 {
		s.lights.Regenerate(s.rng)
		s.uploadLights()
	}
}

// Frame captures the current state for RenderFrame.
func (s *Scene) Frame() Frame {
	return Frame{
		Input:      s.Pointer.Input,
		Rotation:   s.rotation,
		Scale:      s.scale,
		ShowLights: s.showLights,
		Lights:     s.lights.Lights(),
		Program:    s.variant.Program,
	}
}

// Render clears the bound framebuffer and draws the current frame.
func (s *Scene) Render() (Stats, error) {
	s.rc.Device.Clear(0.4, 0.4, 0.4, 1)
	return RenderFrame(s.rc, s.Frame())
}

// Resize follows a framebuffer size change.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.rc.Camera.Resize(width, height)
	s.rc.Device.Viewport(width, height)
}

// Handle applies a user action. Only light count changes can fail; the
// scene then keeps its previous light count and program.
func (s *Scene) Handle(a Action) error {
	switch a {
	case ScaleUp:
		s.scale++
	case ScaleDown:
		s.scale = max(s.scale-1, 1)
	case MoreLights:
		return s.SetNumLights(s.lights.Len() + 1)
	case FewerLights:
		return s.SetNumLights(s.lights.Len() - 1)
	case ToggleLights:
		s.showLights = !s.showLights
	case WireframeOn:
		s.setWireframe(true)
	case WireframeOff:
		s.setWireframe(false)
	case ToggleWireframe:
		s.setWireframe(!s.wireframe)
	default:
		return fmt.Errorf("unknown action %v", a)
	}
	return nil
}

func (s *Scene) setWireframe(on bool) {
	s.wireframe = on
	s.rc.Device.SetWireframe(on)
}

// SetNumLights rebuilds the variant program with n light slots (clamped)
// and resizes the light set to match.
func (s *Scene) SetNumLights(n int) error {
	n = lights.Clamp(n)
	if n == s.lights.Len() {
		return nil
	}
	if err := s.rc.Shaders.Reconfigure(s.variant.Program, "numLights", strconv.Itoa(n)); err != nil {
		return fmt.Errorf("failed to rebuild %s for %d lights, keeping %d: %w", s.variant.Program, n, s.lights.Len(), err)
	}
	s.lights.Resize(n)
	s.lights.Regenerate(s.rng)
	if err := s.rc.Shaders.Use(s.variant.Program); err != nil {
		return err
	}
	if err := s.variant.uploadStatic(s.rc.Shaders, s.opts.Material); err != nil {
		return err
	}
	s.uploadLights()
	log.Printf("Using %d lights", n)
	return nil
}
