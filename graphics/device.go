package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Vertex is the interleaved layout every mesh is uploaded with:
// location 0 is the position, location 1 the normal.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh is a GPU-resident indexed triangle list.
type Mesh interface {
	IndexCount() int
}

// RenderTarget is an offscreen colour+depth framebuffer.
type RenderTarget interface {
	Bind()
	Unbind()
	Size() (int, int)
	// ReadPixels returns the target contents as tightly packed RGBA8 rows, bottom row first.
	ReadPixels() ([]byte, error)
	Destroy()
}

// Device is the subset of the GL command surface the demo needs.
// Everything is expected to run on the thread that owns the context.
type Device interface {
	// CompileShader returns the shader object id, or an error carrying the driver's info log.
	CompileShader(stage ShaderStage, source string) (uint32, error)
	// LinkProgram links the given compiled shaders. The shaders are not deleted.
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)
	UseProgram(id uint32)

	// UniformLocation returns -1 when the program has no active uniform of that name.
	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform4f(loc int32, v mgl32.Vec4)
	UniformMatrix3(loc int32, m mgl32.Mat3)
	UniformMatrix4(loc int32, m mgl32.Mat4)

	UploadMesh(vertices []Vertex, indices []uint32) (Mesh, error)
	DrawMesh(m Mesh)
	DeleteMesh(m Mesh)

	NewRenderTarget(width, height int) (RenderTarget, error)

	Viewport(width, height int)
	Clear(r, g, b, a float32)
	SetWireframe(enabled bool)
}
