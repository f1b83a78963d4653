package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/lights"
	"github.com/richinsley/goteapot/primitives"
)

// markerSize is the side of the cube drawn at each light.
const markerSize = 0.2

// Frame is everything a single frame depends on besides the render context.
type Frame struct {
	Input      Input
	Rotation   float32 // object rotation about each axis, degrees
	Scale      float32
	ShowLights bool
	Lights     []lights.Light
	Program    string
}

// Stats counts the draw calls a frame issued.
type Stats struct {
	MarkerDraws int
	ObjectDraws int
}

// PointerTransform is the rotation accumulated from pointer drags with the
// model translation folded into the last column.
func PointerTransform(in Input) mgl32.Mat4 {
	rotX := mgl32.HomogRotate3DX(mgl32.DegToRad(in.SpinX))
	rotY := mgl32.HomogRotate3DY(mgl32.DegToRad(in.SpinY))
	m := rotY.Mul4(rotX)
	m[12], m[13], m[14] = in.ModelPos[0], in.ModelPos[1], in.ModelPos[2]
	return m
}

// ObjectTransform rotates by degrees about X, Y and Z and scales uniformly.
func ObjectTransform(degrees, scale float32) mgl32.Mat4 {
	r := mgl32.DegToRad(degrees)
	rot := mgl32.HomogRotate3DX(r).Mul4(mgl32.HomogRotate3DY(r)).Mul4(mgl32.HomogRotate3DZ(r))
	return rot.Mul4(mgl32.Scale3D(scale, scale, scale))
}

// NormalMatrix is the inverse-transpose of the upper-left 3x3 of mv, which
// keeps normals perpendicular to surfaces under non-uniform scale.
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat3 {
	return mv.Mat3().Inv().Transpose()
}

// markerColour brings a light colour into displayable range.
func markerColour(c mgl32.Vec4) mgl32.Vec4 {
	peak := max(c[0], c[1], c[2])
	if peak > 1 {
		return mgl32.Vec4{c[0] / peak, c[1] / peak, c[2] / peak, 1}
	}
	return mgl32.Vec4{c[0], c[1], c[2], 1}
}

// RenderFrame draws the light markers (when enabled) and the lit object.
// It depends only on its arguments; the shader uniforms it writes are the
// per-draw transforms and marker colours.
func RenderFrame(rc *RenderContext, f Frame) (Stats, error) {
	var st Stats
	view := rc.Camera.View()
	viewProj := rc.Camera.Projection().Mul4(view)
	pointer := PointerTransform(f.Input)

	if f.ShowLights && len(f.Lights) > 0 {
		if err := rc.Shaders.Use(MarkerProgram); err != nil {
			return st, fmt.Errorf("light markers: %w", err)
		}
		marker := mgl32.Scale3D(markerSize, markerSize, markerSize)
		for _, l := range f.Lights {
			model := pointer.Mul4(mgl32.Translate3D(l.Position[0], l.Position[1], l.Position[2])).Mul4(marker)
			rc.Shaders.SetMat4("MVP", viewProj.Mul4(model))
			rc.Shaders.SetVec4("Colour", markerColour(l.Diffuse))
			if err := rc.Primitives.Draw(primitives.Cube); err != nil {
				return st, err
			}
			st.MarkerDraws++
		}
	}

	if err := rc.Shaders.Use(f.Program); err != nil {
		return st, fmt.Errorf("object: %w", err)
	}
	model := pointer.Mul4(ObjectTransform(f.Rotation, f.Scale))
	mv := view.Mul4(model)
	rc.Shaders.SetMat4("MV", mv)
	rc.Shaders.SetMat4("MVP", viewProj.Mul4(model))
	rc.Shaders.SetMat3("normalMatrix", NormalMatrix(mv))
	if err := rc.Primitives.Draw(primitives.Teapot); err != nil {
		return st, err
	}
	st.ObjectDraws++
	return st, nil
}
