package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_Fire(t *testing.T) {
	tm := NewTimer(20 * time.Millisecond)
	assert.Equal(t, 0, tm.Fire(5*time.Millisecond))
	assert.Equal(t, 0, tm.Fire(24*time.Millisecond))
	assert.Equal(t, 1, tm.Fire(25*time.Millisecond))
	assert.Equal(t, 0, tm.Fire(30*time.Millisecond))
	assert.Equal(t, 3, tm.Fire(90*time.Millisecond))
	assert.Equal(t, 0, tm.Fire(100*time.Millisecond))

	tm.Reset()
	assert.Equal(t, 0, tm.Fire(time.Second))
	assert.Equal(t, 1, tm.Fire(time.Second+20*time.Millisecond))
}

func TestTimer_ZeroInterval(t *testing.T) {
	tm := NewTimer(0)
	assert.Equal(t, 0, tm.Fire(time.Hour))
}

func TestPointer(t *testing.T) {
	var p Pointer
	p.Move(10, 10)
	assert.Equal(t, Input{}, p.Input)

	p.Press(ButtonLeft, 0, 0)
	p.Move(10, 4)
	assert.Equal(t, float32(2), p.SpinX)
	assert.Equal(t, float32(5), p.SpinY)
	p.Release(ButtonLeft)

	p.Press(ButtonRight, 0, 0)
	p.Move(100, 50)
	assert.InDelta(t, 1, p.ModelPos[0], 1e-6)
	assert.InDelta(t, -0.5, p.ModelPos[1], 1e-6)
	p.Release(ButtonRight)

	p.Scroll(1)
	p.Scroll(1)
	p.Scroll(-1)
	assert.InDelta(t, 0.1, p.ModelPos[2], 1e-6)
}
