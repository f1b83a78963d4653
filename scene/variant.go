package scene

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/lights"
	"github.com/richinsley/goteapot/program"
	"github.com/richinsley/goteapot/shader"
)

// MarkerProgram draws the flat-coloured light markers in every variant.
const MarkerProgram = "Colour"

// Variant describes one shading setup: which program lights the object,
// how lights are generated and which static uniforms the program needs.
type Variant struct {
	Name            string
	Program         string
	Fragment        string
	DefaultMaterial string
	Lights          lights.Config
	// uploadStatic writes the uniforms that only change on rebuild.
	uploadStatic func(m *program.Manager, material string) error
}

var variants = map[string]Variant{
	"phong": {
		Name:            "phong",
		Program:         "Phong",
		Fragment:        shader.PhongFragment,
		DefaultMaterial: "silver",
		Lights:          lights.DefaultConfig(),
		uploadStatic: func(m *program.Manager, material string) error {
			mat, err := LookupPhongMaterial(material)
			if err != nil {
				return err
			}
			m.SetBool("Normalize", true)
			m.SetVec4("materialAmbient", mat.Ambient)
			m.SetVec4("materialDiffuse", mat.Diffuse)
			m.SetVec4("materialSpecular", mat.Specular)
			m.SetFloat("materialShininess", mat.Shininess)
			return nil
		},
	},
	"pbr": {
		Name:            "pbr",
		Program:         "PBR",
		Fragment:        shader.PBRFragment,
		DefaultMaterial: "gold",
		Lights: lights.Config{
			Extent:     20,
			DiffuseMin: 20,
			DiffuseMax: 150,
		},
		uploadStatic: func(m *program.Manager, material string) error {
			mat, err := LookupPBRMaterial(material)
			if err != nil {
				return err
			}
			m.SetVec3("albedo", mat.Albedo)
			m.SetFloat("metallic", mat.Metallic)
			m.SetFloat("roughness", mat.Roughness)
			m.SetFloat("ao", mat.AO)
			m.SetFloat("exposure", 1.0)
			return nil
		},
	},
}

// LookupVariant returns a variant by name.
func LookupVariant(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("unknown variant %q (have %v)", name, VariantNames())
	}
	return v, nil
}

// VariantNames lists the available variants.
func VariantNames() []string {
	out := make([]string, 0, len(variants))
	for k := range variants {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// definePrograms registers the marker program and the variant program with
// their templates and an initial light count.
func definePrograms(m *program.Manager, store *shader.Store, v Variant, numLights int) error {
	load := func(names ...string) ([]*shader.Template, error) {
		out := make([]*shader.Template, 0, len(names))
		for _, n := range names {
			t, err := store.Template(n)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	}

	colour, err := load(shader.ColourVertex, shader.ColourFragment)
	if err != nil {
		return err
	}
	if _, err := m.Define(MarkerProgram, nil,
		program.Stage{Kind: graphics.VertexStage, Template: colour[0]},
		program.Stage{Kind: graphics.FragmentStage, Template: colour[1]},
	); err != nil {
		return err
	}

	lit, err := load(shader.LitVertex, v.Fragment)
	if err != nil {
		return err
	}
	_, err = m.Define(v.Program, map[string]string{"numLights": strconv.Itoa(numLights)},
		program.Stage{Kind: graphics.VertexStage, Template: lit[0]},
		program.Stage{Kind: graphics.FragmentStage, Template: lit[1]},
	)
	return err
}
