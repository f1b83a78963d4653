package primitives

import (
	"fmt"
	"log"

	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/mesh"
)

// Names of the built-in shapes.
const (
	Cube   = "cube"
	Sphere = "sphere"
	Teapot = "teapot"
)

// Library keeps named meshes resident on the device and draws them with
// whatever program is bound.
type Library struct {
	device graphics.Device
	meshes map[string]graphics.Mesh
}

func NewLibrary(device graphics.Device) *Library {
	return &Library{device: device, meshes: make(map[string]graphics.Mesh)}
}

// Add uploads m under name, replacing any previous mesh of that name.
func (l *Library) Add(name string, m *mesh.Mesh) error {
	gpu, err := l.device.UploadMesh(m.Vertices, m.Indices)
	if err != nil {
		return fmt.Errorf("failed to upload primitive %s: %w", name, err)
	}
	if old, ok := l.meshes[name]; ok {
		l.device.DeleteMesh(old)
	}
	l.meshes[name] = gpu
	return nil
}

// Has reports whether name is loaded.
func (l *Library) Has(name string) bool {
	_, ok := l.meshes[name]
	return ok
}

// Mesh returns the device mesh for name.
func (l *Library) Mesh(name string) (graphics.Mesh, bool) {
	m, ok := l.meshes[name]
	return m, ok
}

// Draw issues a draw of name with the bound program.
func (l *Library) Draw(name string) error {
	m, ok := l.meshes[name]
	if !ok {
		return fmt.Errorf("unknown primitive %s", name)
	}
	l.device.DrawMesh(m)
	return nil
}

// LoadDefaults creates the marker cube and sphere and the teapot. The teapot
// is read from modelPath; when that is empty or unreadable a sphere stands in.
func (l *Library) LoadDefaults(modelPath string) error {
	if err := l.Add(Cube, mesh.Cube(1)); err != nil {
		return err
	}
	if err := l.Add(Sphere, mesh.Sphere(1, 32, 16)); err != nil {
		return err
	}

	teapot := mesh.Sphere(1, 48, 24)
	if modelPath != "" {
		m, err := mesh.LoadOBJFile(modelPath)
		if err != nil {
			log.Printf("Warning: failed to load model %s, using a sphere: %v", modelPath, err)
		} else {
			m.Normalize(2)
			log.Printf("Loaded model %s: %d vertices, %d triangles", modelPath, len(m.Vertices), m.Triangles())
			teapot = m
		}
	}
	return l.Add(Teapot, teapot)
}

// Destroy releases every mesh.
func (l *Library) Destroy() {
	for name, m := range l.meshes {
		l.device.DeleteMesh(m)
		delete(l.meshes, name)
	}
}
