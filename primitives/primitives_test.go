package primitives

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/goteapot/graphics/graphicstest"
	"github.com/richinsley/goteapot/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_LoadDefaultsFallsBackToSphere(t *testing.T) {
	dev := graphicstest.NewDevice()
	lib := NewLibrary(dev)
	require.NoError(t, lib.LoadDefaults(filepath.Join(t.TempDir(), "missing.obj")))

	for _, name := range []string{Cube, Sphere, Teapot} {
		assert.True(t, lib.Has(name), name)
	}
	teapot, _ := lib.Mesh(Teapot)
	assert.Equal(t, len(mesh.Sphere(1, 48, 24).Indices), teapot.IndexCount())
}

func TestLibrary_LoadDefaultsReadsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 4 0 0\nv 0 4 0\nf 1 2 3\n"), 0o644))

	dev := graphicstest.NewDevice()
	lib := NewLibrary(dev)
	require.NoError(t, lib.LoadDefaults(path))
	teapot, _ := lib.Mesh(Teapot)
	assert.Equal(t, 3, teapot.IndexCount())
}

func TestLibrary_DrawAndReplace(t *testing.T) {
	dev := graphicstest.NewDevice()
	lib := NewLibrary(dev)
	require.NoError(t, lib.Add(Cube, mesh.Cube(1)))
	first, _ := lib.Mesh(Cube)

	require.NoError(t, lib.Draw(Cube))
	assert.Equal(t, 1, dev.DrawsOf(first))
	assert.Error(t, lib.Draw("dodecahedron"))

	require.NoError(t, lib.Add(Cube, mesh.Cube(2)))
	assert.True(t, first.(*graphicstest.Mesh).Deleted)

	lib.Destroy()
	assert.False(t, lib.Has(Cube))
}
