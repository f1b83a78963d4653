// Package graphicstest provides a GPU-free graphics.Device for tests.
//
// The fake compiles by scanning shader text for uniform declarations, so a
// linked program exposes exactly the uniforms (and array slots) its sources
// declare.
package graphicstest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/graphics"
)

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[\s*([^\]]*)\s*\])?\s*;`)

type shaderObject struct {
	stage  graphics.ShaderStage
	source string
}

type programObject struct {
	uniforms map[string]int32
}

type uniformSlot struct {
	program uint32
	name    string
}

// Draw records one DrawMesh call.
type Draw struct {
	Program uint32
	Mesh    *Mesh
}

// Mesh is the fake GPU mesh.
type Mesh struct {
	ID       int
	Vertices int
	Indices  int
	Deleted  bool
}

func (m *Mesh) IndexCount() int { return m.Indices }

// Device records every call made through graphics.Device.
type Device struct {
	// FailCompile, when set, is consulted before compiling; a non-empty
	// return value becomes the compile log of a failed compile.
	FailCompile func(stage graphics.ShaderStage, source string) string

	// FailLink works like FailCompile for linking.
	FailLink func(sources []string) string

	nextID       uint32
	nextLocation int32
	nextMesh     int
	shaders      map[uint32]shaderObject
	programs     map[uint32]*programObject
	slots        map[int32]uniformSlot

	Current         uint32
	Values          map[uint32]map[string]any
	Draws           []Draw
	Meshes          []*Mesh
	Targets         []*Target
	DeletedShaders  []uint32
	DeletedPrograms []uint32
	Wireframe       bool
	ViewportW       int
	ViewportH       int
	Clears          int
	UniformLookups  int
	UseProgramCalls int
}

func NewDevice() *Device {
	return &Device{
		shaders:  make(map[uint32]shaderObject),
		programs: make(map[uint32]*programObject),
		slots:    make(map[int32]uniformSlot),
		Values:   make(map[uint32]map[string]any),
	}
}

func (d *Device) CompileShader(stage graphics.ShaderStage, source string) (uint32, error) {
	if d.FailCompile != nil {
		if msg := d.FailCompile(stage, source); msg != "" {
			return 0, errors.New(msg)
		}
	}
	if i := strings.IndexByte(source, '@'); i >= 0 {
		line := strings.Count(source[:i], "\n") + 1
		return 0, fmt.Errorf("ERROR: 0:%d: '@' : syntax error", line)
	}
	d.nextID++
	d.shaders[d.nextID] = shaderObject{stage: stage, source: source}
	return d.nextID, nil
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	sources := make([]string, 0, len(shaders))
	for _, id := range shaders {
		s, ok := d.shaders[id]
		if !ok {
			return 0, fmt.Errorf("link: unknown shader object %d", id)
		}
		sources = append(sources, s.source)
	}
	if d.FailLink != nil {
		if msg := d.FailLink(sources); msg != "" {
			return 0, errors.New(msg)
		}
	}

	p := &programObject{uniforms: make(map[string]int32)}
	d.nextID++
	id := d.nextID
	for _, src := range sources {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			name := m[1]
			if m[2] == "" {
				d.declare(id, p, name)
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(m[2]))
			if err != nil || n <= 0 {
				return 0, fmt.Errorf("ERROR: array size for %q must be a positive integer constant, got %q", name, m[2])
			}
			d.declare(id, p, name)
			p.uniforms[name+"[0]"] = p.uniforms[name]
			d.slots[p.uniforms[name]] = uniformSlot{program: id, name: name + "[0]"}
			for i := 1; i < n; i++ {
				d.declare(id, p, fmt.Sprintf("%s[%d]", name, i))
			}
		}
	}
	d.programs[id] = p
	d.Values[id] = make(map[string]any)
	return id, nil
}

func (d *Device) declare(program uint32, p *programObject, name string) {
	if _, ok := p.uniforms[name]; ok {
		return
	}
	loc := d.nextLocation
	d.nextLocation++
	p.uniforms[name] = loc
	d.slots[loc] = uniformSlot{program: program, name: name}
}

func (d *Device) DeleteShader(id uint32) {
	delete(d.shaders, id)
	d.DeletedShaders = append(d.DeletedShaders, id)
}

func (d *Device) DeleteProgram(id uint32) {
	delete(d.programs, id)
	d.DeletedPrograms = append(d.DeletedPrograms, id)
	if d.Current == id {
		d.Current = 0
	}
}

func (d *Device) UseProgram(id uint32) {
	d.Current = id
	d.UseProgramCalls++
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.UniformLookups++
	p, ok := d.programs[program]
	if !ok {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// HasUniform reports whether the linked program declares name.
func (d *Device) HasUniform(program uint32, name string) bool {
	p, ok := d.programs[program]
	if !ok {
		return false
	}
	_, ok = p.uniforms[name]
	return ok
}

func (d *Device) set(loc int32, v any) {
	if loc < 0 {
		return
	}
	slot, ok := d.slots[loc]
	if !ok || slot.program != d.Current {
		// GL raises INVALID_OPERATION for a location from another program.
		return
	}
	d.Values[slot.program][slot.name] = v
}

func (d *Device) Uniform1i(loc int32, v int32)           { d.set(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)         { d.set(loc, v) }
func (d *Device) Uniform3f(loc int32, v mgl32.Vec3)      { d.set(loc, v) }
func (d *Device) Uniform4f(loc int32, v mgl32.Vec4)      { d.set(loc, v) }
func (d *Device) UniformMatrix3(loc int32, m mgl32.Mat3) { d.set(loc, m) }
func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) { d.set(loc, m) }

// Value returns the last value uploaded to name in program.
func (d *Device) Value(program uint32, name string) (any, bool) {
	v, ok := d.Values[program][name]
	return v, ok
}

func (d *Device) UploadMesh(vertices []graphics.Vertex, indices []uint32) (graphics.Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("cannot upload empty mesh")
	}
	d.nextMesh++
	m := &Mesh{ID: d.nextMesh, Vertices: len(vertices), Indices: len(indices)}
	d.Meshes = append(d.Meshes, m)
	return m, nil
}

func (d *Device) DrawMesh(m graphics.Mesh) {
	fm, _ := m.(*Mesh)
	d.Draws = append(d.Draws, Draw{Program: d.Current, Mesh: fm})
}

func (d *Device) DeleteMesh(m graphics.Mesh) {
	if fm, ok := m.(*Mesh); ok {
		fm.Deleted = true
	}
}

// DrawsOf counts recorded draws of mesh m.
func (d *Device) DrawsOf(m graphics.Mesh) int {
	n := 0
	for _, dr := range d.Draws {
		if graphics.Mesh(dr.Mesh) == m {
			n++
		}
	}
	return n
}

// ResetDraws forgets recorded draws.
func (d *Device) ResetDraws() { d.Draws = nil }

func (d *Device) NewRenderTarget(width, height int) (graphics.RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render target size %dx%d", width, height)
	}
	t := &Target{W: width, H: height}
	d.Targets = append(d.Targets, t)
	return t, nil
}

func (d *Device) Viewport(width, height int) {
	d.ViewportW, d.ViewportH = width, height
}

func (d *Device) Clear(r, g, b, a float32) { d.Clears++ }

func (d *Device) SetWireframe(enabled bool) { d.Wireframe = enabled }

// Target is the fake offscreen render target.
type Target struct {
	W, H      int
	Bound     bool
	Reads     int
	Destroyed bool
}

func (t *Target) Bind()            { t.Bound = true }
func (t *Target) Unbind()          { t.Bound = false }
func (t *Target) Size() (int, int) { return t.W, t.H }
func (t *Target) Destroy()         { t.Destroyed = true }

func (t *Target) ReadPixels() ([]byte, error) {
	t.Reads++
	return make([]byte, t.W*t.H*4), nil
}
