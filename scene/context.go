package scene

import (
	"github.com/richinsley/goteapot/camera"
	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/primitives"
	"github.com/richinsley/goteapot/program"
)

// RenderContext bundles the collaborators a frame is drawn with. It is passed
// explicitly to whatever needs it instead of living in package state.
type RenderContext struct {
	Device     graphics.Device
	Shaders    *program.Manager
	Camera     *camera.Camera
	Primitives *primitives.Library
}
