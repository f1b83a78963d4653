package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/graphics"
)

// LoadOBJFile reads a Wavefront OBJ file.
func LoadOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

type objKey struct{ v, n int }

// ParseOBJ reads positions, normals and polygonal faces. Polygons are fanned
// into triangles; missing normals are generated from face geometry.
// Everything else (materials, texture coordinates, groups) is ignored.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var positions, normals []mgl32.Vec3
	m := &Mesh{}
	index := make(map[objKey]uint32)
	needNormals := false

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn":
			vec, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if fields[0] == "v" {
				positions = append(positions, vec)
			} else {
				normals = append(normals, vec)
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			var face []uint32
			for _, ref := range fields[1:] {
				key, err := parseFaceRef(ref, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				if key.n < 0 {
					needNormals = true
				}
				idx, ok := index[key]
				if !ok {
					vert := graphics.Vertex{Position: positions[key.v]}
					if key.n >= 0 {
						vert.Normal = normals[key.n]
					}
					idx = uint32(len(m.Vertices))
					m.Vertices = append(m.Vertices, vert)
					index[key] = idx
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				m.Indices = append(m.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("no faces")
	}
	if needNormals {
		m.generateNormals()
	}
	return m, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFaceRef decodes v, v/vt, v//vn or v/vt/vn into zero-based indices;
// n is -1 when absent. Negative OBJ indices count back from the end.
func parseFaceRef(ref string, nv, nn int) (objKey, error) {
	parts := strings.Split(ref, "/")
	v, err := resolveIndex(parts[0], nv)
	if err != nil {
		return objKey{}, fmt.Errorf("vertex %q: %w", ref, err)
	}
	key := objKey{v: v, n: -1}
	if len(parts) == 3 && parts[2] != "" {
		n, err := resolveIndex(parts[2], nn)
		if err != nil {
			return objKey{}, fmt.Errorf("normal %q: %w", ref, err)
		}
		key.n = n
	}
	return key, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range", s)
	}
	return i, nil
}

// generateNormals replaces normals with area-weighted vertex normals.
func (m *Mesh) generateNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl32.Vec3{}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		m.Vertices[a].Normal = m.Vertices[a].Normal.Add(n)
		m.Vertices[b].Normal = m.Vertices[b].Normal.Add(n)
		m.Vertices[c].Normal = m.Vertices[c].Normal.Add(n)
	}
	for i := range m.Vertices {
		if m.Vertices[i].Normal.Len() > 0 {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
		}
	}
}
