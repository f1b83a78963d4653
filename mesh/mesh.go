package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/graphics"
)

// Mesh is an indexed triangle list in CPU memory.
type Mesh struct {
	Vertices []graphics.Vertex
	Indices  []uint32
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return lo, hi
}

// Normalize recentres the mesh on the origin and scales it so its largest
// extent is size.
func (m *Mesh) Normalize(size float32) {
	lo, hi := m.Bounds()
	ext := hi.Sub(lo)
	largest := max(ext[0], ext[1], ext[2])
	if largest == 0 {
		return
	}
	centre := lo.Add(hi).Mul(0.5)
	s := size / largest
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(centre).Mul(s)
	}
}

// Cube returns an axis-aligned cube of side size with per-face normals.
func Cube(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		c := f.normal.Mul(h)
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := c.Add(f.u.Mul(corner[0] * h)).Add(f.v.Mul(corner[1] * h))
			m.Vertices = append(m.Vertices, graphics.Vertex{Position: p, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Sphere returns a UV sphere.
func Sphere(radius float32, slices, stacks int) *Mesh {
	slices = max(slices, 3)
	stacks = max(stacks, 2)
	m := &Mesh{}
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			m.Vertices = append(m.Vertices, graphics.Vertex{Position: n.Mul(radius), Normal: n})
		}
	}
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			m.Indices = append(m.Indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return m
}
