package shader

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_RenderSubstitutesEveryOccurrence(t *testing.T) {
	tpl := NewTemplate("lights.frag", "uniform vec3 lightPosition[@numLights];\nfor (int i = 0; i < @numLights; ++i) {}\n")
	out, err := tpl.Render(map[string]string{"numLights": "8"})
	require.NoError(t, err)
	assert.Equal(t, "uniform vec3 lightPosition[8];\nfor (int i = 0; i < 8; ++i) {}\n", out)
	assert.Contains(t, tpl.Text, "@numLights", "rendering leaves the template text intact")
}

func TestTemplate_RenderLeavesOtherTextUntouched(t *testing.T) {
	text := "// contact: shaders@example.com\nvec4 c = vec4(1.0);\nint n = 2;\n"
	out, err := NewTemplate("plain.frag", text).Render(map[string]string{"numLights": "3", "example": "x"})
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestTemplate_RenderMissingValue(t *testing.T) {
	_, err := NewTemplate("lights.frag", "#version @glslVersion\nuniform vec3 p[@numLights];\n").
		Render(map[string]string{"glslVersion": "410 core"})
	var missing *MissingVarError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "numLights", missing.Token)
	assert.Equal(t, "lights.frag", missing.Template)
}

func TestTemplate_Tokens(t *testing.T) {
	tpl := NewTemplate("pbr.frag", pbrFragmentSource)
	assert.Equal(t, []string{"glslVersion", "numLights"}, tpl.Tokens())
	assert.Equal(t, []string{"glslVersion"}, NewTemplate("colour.frag", colourFragmentSource).Tokens())
}

func TestSubstitute_OnlyTouchesNamedToken(t *testing.T) {
	text := "#version @glslVersion\nuniform vec3 p[@numLights];\n"
	once := Substitute(text, "numLights", "8")
	assert.Equal(t, "#version @glslVersion\nuniform vec3 p[8];\n", once)
	assert.Equal(t, once, Substitute(once, "numLights", "12"), "substituting again is a no-op")
	assert.Equal(t, text, Substitute(text, "other", "1"))
}

func TestBuiltinsRenderCleanly(t *testing.T) {
	vars := map[string]string{"glslVersion": GLSLVersion(false), "numLights": "8"}
	for _, name := range BuiltinNames() {
		src, ok := Builtin(name)
		require.True(t, ok, name)
		out, err := NewTemplate(name, src).Render(vars)
		require.NoError(t, err, name)
		assert.NotContains(t, out, "@", name)
		assert.Contains(t, out, "#version 410 core", name)
	}
}

func TestStore_DirectoryOverridesBuiltin(t *testing.T) {
	dir := fstest.MapFS{
		PhongFragment: &fstest.MapFile{Data: []byte("#version @glslVersion\n// custom\n")},
	}
	store := NewStore(dir)

	tpl, err := store.Template(PhongFragment)
	require.NoError(t, err)
	assert.Contains(t, tpl.Text, "// custom")

	tpl, err = store.Template(ColourFragment)
	require.NoError(t, err)
	assert.Equal(t, colourFragmentSource, tpl.Text)

	_, err = store.Template("nope.frag")
	assert.Error(t, err)
}

func TestStore_BuiltinsOnly(t *testing.T) {
	tpl, err := NewStore(nil).Template(LitVertex)
	require.NoError(t, err)
	assert.Equal(t, LitVertex, tpl.Name)
}
