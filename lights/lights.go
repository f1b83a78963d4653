package lights

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinLights     = 1
	MaxLights     = 120
	DefaultLights = 8
)

// Clamp bounds a requested light count to [MinLights, MaxLights].
func Clamp(n int) int {
	return min(max(n, MinLights), MaxLights)
}

// Light is a point light. Its index in a Set is its shader array slot.
type Light struct {
	Position mgl32.Vec3
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4
}

// Config bounds the values Regenerate draws.
type Config struct {
	// Extent is half the side of the origin-centred cube positions fall in.
	Extent      float32
	DiffuseMin  float32
	DiffuseMax  float32
	SpecularMin float32
	SpecularMax float32
}

// DefaultConfig matches dim coloured lights scattered around the teapot.
func DefaultConfig() Config {
	return Config{
		Extent:      20,
		DiffuseMin:  0.05,
		DiffuseMax:  0.3,
		SpecularMin: 0.1,
		SpecularMax: 0.2,
	}
}

// Uploader receives light uniforms. *program.Manager satisfies it.
type Uploader interface {
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
}

// Set is an ordered, resizable collection of lights.
type Set struct {
	cfg    Config
	lights []Light
}

func NewSet(n int, cfg Config) *Set {
	s := &Set{cfg: cfg}
	s.Resize(n)
	return s
}

func (s *Set) Len() int        { return len(s.lights) }
func (s *Set) Config() Config  { return s.cfg }
func (s *Set) At(i int) Light  { return s.lights[i] }
func (s *Set) Lights() []Light { return s.lights }

// Resize truncates or zero-extends the set to Clamp(n) lights and returns the new length.
func (s *Set) Resize(n int) int {
	n = Clamp(n)
	if n <= len(s.lights) {
		clear(s.lights[n:])
		s.lights = s.lights[:n]
	} else {
		s.lights = append(s.lights, make([]Light, n-len(s.lights))...)
	}
	return n
}

// Regenerate overwrites every light with a random position and colour.
func (s *Set) Regenerate(rng *rand.Rand) {
	for i := range s.lights {
		s.lights[i] = Light{
			Position: randomPoint(rng, s.cfg.Extent),
			Diffuse:  randomColour(rng, s.cfg.DiffuseMin, s.cfg.DiffuseMax),
			Specular: randomColour(rng, s.cfg.SpecularMin, s.cfg.SpecularMax),
		}
	}
}

// Upload writes every light through u, transforming positions by xform
// (the view matrix when shading happens in eye space). Specular colours are
// skipped when the config has no specular range.
func (s *Set) Upload(u Uploader, xform mgl32.Mat4) {
	specular := s.cfg.SpecularMax > 0
	for i, l := range s.lights {
		u.SetVec3(fmt.Sprintf("lightPosition[%d]", i), xform.Mul4x1(l.Position.Vec4(1)).Vec3())
		u.SetVec4(fmt.Sprintf("lightDiffuse[%d]", i), l.Diffuse)
		if specular {
			u.SetVec4(fmt.Sprintf("lightSpecular[%d]", i), l.Specular)
		}
	}
}

func randomPoint(rng *rand.Rand, extent float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(rng.Float32()*2 - 1) * extent,
		(rng.Float32()*2 - 1) * extent,
		(rng.Float32()*2 - 1) * extent,
	}
}

// randomColour draws each RGB channel uniformly in [lo, hi]; alpha is 1.
func randomColour(rng *rand.Rand, lo, hi float32) mgl32.Vec4 {
	c := mgl32.Vec4{1, 1, 1, 1}
	for i := 0; i < 3; i++ {
		c[i] = mgl32.Clamp(lo+rng.Float32()*(hi-lo), lo, hi)
	}
	return c
}
