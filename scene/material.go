package scene

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// PhongMaterial is a classic ambient/diffuse/specular material.
type PhongMaterial struct {
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Shininess float32
}

// PBRMaterial is a metallic/roughness material.
type PBRMaterial struct {
	Albedo    mgl32.Vec3
	Metallic  float32
	Roughness float32
	AO        float32
}

var phongMaterials = map[string]PhongMaterial{
	"silver": {
		Ambient:   mgl32.Vec4{0.23125, 0.23125, 0.23125, 1},
		Diffuse:   mgl32.Vec4{0.2775, 0.2775, 0.2775, 1},
		Specular:  mgl32.Vec4{0.773911, 0.773911, 0.773911, 1},
		Shininess: 89.6,
	},
	"gold": {
		Ambient:   mgl32.Vec4{0.24725, 0.1995, 0.0745, 1},
		Diffuse:   mgl32.Vec4{0.75164, 0.60648, 0.22648, 1},
		Specular:  mgl32.Vec4{0.628281, 0.555802, 0.366065, 1},
		Shininess: 51.2,
	},
	"chrome": {
		Ambient:   mgl32.Vec4{0.25, 0.25, 0.25, 1},
		Diffuse:   mgl32.Vec4{0.4, 0.4, 0.4, 1},
		Specular:  mgl32.Vec4{0.774597, 0.774597, 0.774597, 1},
		Shininess: 76.8,
	},
	"brass": {
		Ambient:   mgl32.Vec4{0.329412, 0.223529, 0.027451, 1},
		Diffuse:   mgl32.Vec4{0.780392, 0.568627, 0.113725, 1},
		Specular:  mgl32.Vec4{0.992157, 0.941176, 0.807843, 1},
		Shininess: 27.8974,
	},
}

var pbrMaterials = map[string]PBRMaterial{
	"gold":    {Albedo: mgl32.Vec3{0.950, 0.71, 0.29}, Metallic: 1.0, Roughness: 0.38, AO: 0.2},
	"copper":  {Albedo: mgl32.Vec3{0.955, 0.637, 0.538}, Metallic: 1.0, Roughness: 0.3, AO: 0.2},
	"plastic": {Albedo: mgl32.Vec3{0.5, 0.0, 0.0}, Metallic: 0.0, Roughness: 0.5, AO: 1.0},
}

// LookupPhongMaterial returns a named Phong preset.
func LookupPhongMaterial(name string) (PhongMaterial, error) {
	m, ok := phongMaterials[name]
	if !ok {
		return PhongMaterial{}, fmt.Errorf("unknown phong material %q (have %v)", name, keys(phongMaterials))
	}
	return m, nil
}

// LookupPBRMaterial returns a named PBR preset.
func LookupPBRMaterial(name string) (PBRMaterial, error) {
	m, ok := pbrMaterials[name]
	if !ok {
		return PBRMaterial{}, fmt.Errorf("unknown pbr material %q (have %v)", name, keys(pbrMaterials))
	}
	return m, nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
