package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	spinIncrement      = 0.5
	translateIncrement = 0.01
	zoomIncrement      = 0.1
)

// Input is the pointer-driven part of a frame.
type Input struct {
	SpinX    float32 // degrees
	SpinY    float32 // degrees
	ModelPos mgl32.Vec3
}

// PointerButton identifies a mouse button.
type PointerButton int

const (
	ButtonLeft PointerButton = iota
	ButtonRight
	ButtonMiddle
)

// Pointer accumulates drag and wheel input: left drag spins, right drag
// translates, the wheel moves along Z.
type Pointer struct {
	Input
	rotating    bool
	translating bool
	lastX       float64
	lastY       float64
}

func (p *Pointer) Press(b PointerButton, x, y float64) {
	switch b {
	case ButtonLeft:
		p.rotating = true
	case ButtonRight:
		p.translating = true
	default:
		return
	}
	p.lastX, p.lastY = x, y
}

func (p *Pointer) Release(b PointerButton) {
	switch b {
	case ButtonLeft:
		p.rotating = false
	case ButtonRight:
		p.translating = false
	}
}

func (p *Pointer) Move(x, y float64) {
	dx, dy := float32(x-p.lastX), float32(y-p.lastY)
	switch {
	case p.rotating:
		p.SpinX += spinIncrement * dy
		p.SpinY += spinIncrement * dx
	case p.translating:
		p.ModelPos[0] += translateIncrement * dx
		p.ModelPos[1] -= translateIncrement * dy
	default:
		return
	}
	p.lastX, p.lastY = x, y
}

func (p *Pointer) Scroll(dy float64) {
	switch {
	case dy > 0:
		p.ModelPos[2] += zoomIncrement
	case dy < 0:
		p.ModelPos[2] -= zoomIncrement
	}
}
