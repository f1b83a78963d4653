package mesh

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCube(t *testing.T) {
	m := Cube(2)
	assert.Len(t, m.Vertices, 24)
	assert.Equal(t, 12, m.Triangles())

	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, hi)

	// every triangle winds counter-clockwise around its face normal
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, n.Dot(a.Normal), float32(0), "triangle %d", i/3)
	}
}

func TestSphere(t *testing.T) {
	m := Sphere(3, 16, 8)
	assert.Len(t, m.Vertices, 17*9)
	assert.Equal(t, 16*8*2, m.Triangles())
	for _, v := range m.Vertices {
		assert.InDelta(t, 3, v.Position.Len(), 1e-4)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
	}
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
}

func TestMesh_Normalize(t *testing.T) {
	m := Cube(4)
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(mgl32.Vec3{10, 0, 0})
	}
	m.Normalize(1)
	lo, hi := m.Bounds()
	assert.True(t, lo.ApproxEqual(mgl32.Vec3{-0.5, -0.5, -0.5}), "lo %v", lo)
	assert.True(t, hi.ApproxEqual(mgl32.Vec3{0.5, 0.5, 0.5}), "hi %v", hi)
}

const quadOBJ = `# a unit quad split as a polygon
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

func TestParseOBJ_FansPolygons(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	for _, v := range m.Vertices {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
	}
}

func TestParseOBJ_GeneratesNormalsAndNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf -3/1 -2/1 -1/1\n"
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, m.Triangles())
	for _, v := range m.Vertices {
		assert.True(t, v.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}), "normal %v", v.Normal)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"no faces":     "v 0 0 0\n",
		"bad index":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"short face":   "v 0 0 0\nf 1 1\n",
		"bad position": "v 0 zero 0\n",
	} {
		_, err := ParseOBJ(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}
