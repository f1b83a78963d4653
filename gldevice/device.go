package gldevice

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/graphics"
)

var glInitOnce sync.Once

// Device implements graphics.Device on top of an OpenGL 4.1 core context.
type Device struct{}

// New initializes the OpenGL function pointers for the current context and
// sets the fixed pipeline state the demo relies on.
func New(ctx graphics.Context) (*Device, error) {
	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL Version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	return &Device{}, nil
}

func glStage(stage graphics.ShaderStage) (uint32, error) {
	switch stage {
	case graphics.VertexStage:
		return gl.VERTEX_SHADER, nil
	case graphics.FragmentStage:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("unsupported shader stage %d", stage)
}

func (d *Device) CompileShader(stage graphics.ShaderStage, source string) (uint32, error) {
	shaderType, err := glStage(stage)
	if err != nil {
		return 0, err
	}
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, errors.New(strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, errors.New(strings.TrimRight(logText, "\x00"))
	}
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, nil
}

func (d *Device) DeleteShader(id uint32)  { gl.DeleteShader(id) }
func (d *Device) DeleteProgram(id uint32) { gl.DeleteProgram(id) }
func (d *Device) UseProgram(id uint32)    { gl.UseProgram(id) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(loc int32, v int32)   { gl.Uniform1i(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3fv(loc, 1, &v[0])
}

func (d *Device) Uniform4f(loc int32, v mgl32.Vec4) {
	gl.Uniform4fv(loc, 1, &v[0])
}

func (d *Device) UniformMatrix3(loc int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(loc, 1, false, &m[0])
}

func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// vertexStride is the byte size of graphics.Vertex.
const vertexStride = int32(unsafe.Sizeof(graphics.Vertex{}))
