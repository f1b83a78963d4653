package translator

import (
	"context"
	"fmt"
	"log"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/goteapot/graphics"
)

// Translator turns WebGL2 GLSL ES sources into the desktop dialect and keeps
// the uniform name mapping the output uses.
type Translator struct {
	st   *gst.ShaderTranslator
	gles bool
}

// New starts the translator runtime. gles selects ESSL output instead of GLSL 4.10.
func New(ctx context.Context, gles bool) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	log.Printf("Shader translator ready")
	return &Translator{st: st, gles: gles}, nil
}

// Translate returns the translated code and a map from source uniform names
// to the names used in the translated code.
func (t *Translator) Translate(stage graphics.ShaderStage, source string) (string, map[string]string, error) {
	outputFormat := gst.OutputFormatGLSL410
	if t.gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.st.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return "", nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return out.Code, names, nil
}
