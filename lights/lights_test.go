package lights

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	cases := map[int]int{
		-5:  1,
		0:   1,
		1:   1,
		8:   8,
		120: 120,
		121: 120,
		999: 120,
	}
	for in, want := range cases {
		assert.Equal(t, want, Clamp(in), "Clamp(%d)", in)
	}
}

func TestSet_ResizeLengthMatchesClampedRequest(t *testing.T) {
	s := NewSet(DefaultLights, DefaultConfig())
	require.Equal(t, DefaultLights, s.Len())

	for _, n := range []int{-3, 0, 1, 2, 7, 64, 119, 120, 121, 500, 3} {
		got := s.Resize(n)
		assert.Equal(t, Clamp(n), got)
		assert.Equal(t, Clamp(n), s.Len())
	}
}

func TestSet_ResizeKeepsPrefixAndZeroExtends(t *testing.T) {
	s := NewSet(4, DefaultConfig())
	s.Regenerate(rand.New(rand.NewPCG(1, 2)))
	before := append([]Light(nil), s.Lights()...)

	s.Resize(2)
	assert.Equal(t, before[:2], s.Lights())

	s.Resize(5)
	assert.Equal(t, before[:2], s.Lights()[:2])
	for i := 2; i < 5; i++ {
		assert.Equal(t, Light{}, s.At(i), "slot %d is default valued after growing", i)
	}
}

func TestSet_RegenerateStaysInBounds(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSet(MaxLights, cfg)
	rng := rand.New(rand.NewPCG(42, 7))

	for round := 0; round < 20; round++ {
		s.Regenerate(rng)
		for i, l := range s.Lights() {
			for axis := 0; axis < 3; axis++ {
				assert.LessOrEqual(t, l.Position[axis], cfg.Extent, "light %d axis %d", i, axis)
				assert.GreaterOrEqual(t, l.Position[axis], -cfg.Extent, "light %d axis %d", i, axis)
			}
			for ch := 0; ch < 3; ch++ {
				assert.GreaterOrEqual(t, l.Diffuse[ch], cfg.DiffuseMin)
				assert.LessOrEqual(t, l.Diffuse[ch], cfg.DiffuseMax)
				assert.GreaterOrEqual(t, l.Specular[ch], cfg.SpecularMin)
				assert.LessOrEqual(t, l.Specular[ch], cfg.SpecularMax)
			}
			assert.Equal(t, float32(1), l.Diffuse[3])
		}
	}
}

func TestSet_RegenerateWideRange(t *testing.T) {
	cfg := Config{Extent: 5, DiffuseMin: 20, DiffuseMax: 150}
	s := NewSet(16, cfg)
	s.Regenerate(rand.New(rand.NewPCG(3, 3)))
	distinct := make(map[float32]bool)
	for _, l := range s.Lights() {
		assert.GreaterOrEqual(t, l.Diffuse[0], float32(20))
		assert.LessOrEqual(t, l.Diffuse[0], float32(150))
		distinct[l.Diffuse[0]] = true
	}
	assert.Greater(t, len(distinct), 1, "channels are spread over the range, not pinned to a bound")
}

type recordingUploader map[string]any

func (r recordingUploader) SetVec3(name string, v mgl32.Vec3) { r[name] = v }
func (r recordingUploader) SetVec4(name string, v mgl32.Vec4) { r[name] = v }

func TestSet_UploadWritesEverySlot(t *testing.T) {
	s := NewSet(3, DefaultConfig())
	s.Regenerate(rand.New(rand.NewPCG(9, 9)))
	up := recordingUploader{}

	view := mgl32.Translate3D(0, 0, -10)
	s.Upload(up, view)

	assert.Len(t, up, 9)
	for i, l := range s.Lights() {
		pos := up[fmt.Sprintf("lightPosition[%d]", i)].(mgl32.Vec3)
		assert.InDelta(t, l.Position.Z()-10, pos.Z(), 1e-5)
		assert.Equal(t, l.Diffuse, up[fmt.Sprintf("lightDiffuse[%d]", i)])
		assert.Equal(t, l.Specular, up[fmt.Sprintf("lightSpecular[%d]", i)])
	}
	_, ok := up["lightPosition[3]"]
	assert.False(t, ok)
}

func TestSet_UploadSkipsSpecularWithoutRange(t *testing.T) {
	s := NewSet(2, Config{Extent: 1, DiffuseMin: 20, DiffuseMax: 150})
	s.Regenerate(rand.New(rand.NewPCG(1, 1)))
	up := recordingUploader{}
	s.Upload(up, mgl32.Ident4())
	assert.Len(t, up, 4)
	_, ok := up["lightSpecular[0]"]
	assert.False(t, ok)
}
