package shader

// Every built-in source starts with an @glslVersion token so the same text can
// be compiled directly by a desktop 4.1 core context ("410 core") or fed to the
// translator as WebGL2 GLSL ES ("300 es"). Sources that size the light arrays
// carry an @numLights token.

// ───────────────────────────── Shared vertex stage ─────────────────────────────

// Lighting happens in eye space: positions go through MV, normals through
// the normal matrix derived from MV.
const litVertexSource = `#version @glslVersion
precision highp float;

layout (location = 0) in vec3 inVert;
layout (location = 1) in vec3 inNormal;

uniform mat4 MV;
uniform mat4 MVP;
uniform mat3 normalMatrix;

out vec3 eyePosition;
out vec3 eyeNormal;

void main()
{
    eyePosition = (MV * vec4(inVert, 1.0)).xyz;
    eyeNormal   = normalMatrix * inNormal;
    gl_Position = MVP * vec4(inVert, 1.0);
}
`

// ──────────────────────────────────── Phong ────────────────────────────────────

const phongFragmentSource = `#version @glslVersion
precision highp float;

in vec3 eyePosition;
in vec3 eyeNormal;
layout (location = 0) out vec4 fragColour;

uniform vec3 lightPosition[@numLights];
uniform vec4 lightDiffuse[@numLights];
uniform vec4 lightSpecular[@numLights];

uniform vec4  materialAmbient;
uniform vec4  materialDiffuse;
uniform vec4  materialSpecular;
uniform float materialShininess;
uniform int   Normalize;

void main()
{
    vec3 N = eyeNormal;
    if (Normalize != 0) {
        N = normalize(N);
    }
    vec3 V = normalize(-eyePosition);

    vec4 colour = materialAmbient;
    for (int i = 0; i < @numLights; ++i) {
        vec3  L     = lightPosition[i] - eyePosition;
        float d     = length(L);
        L /= d;
        float atten = 1.0 / (1.0 + 0.02 * d);
        float NdotL = max(dot(N, L), 0.0);
        float spec  = 0.0;
        if (NdotL > 0.0) {
            vec3 H = normalize(L + V);
            spec = pow(max(dot(N, H), 0.0), materialShininess);
        }
        colour += atten * (materialDiffuse * lightDiffuse[i] * NdotL + materialSpecular * lightSpecular[i] * spec);
    }
    fragColour = vec4(colour.rgb, 1.0);
}
`

// ──────────────────────────────── Flat colour ──────────────────────────────────

const colourVertexSource = `#version @glslVersion
precision highp float;

layout (location = 0) in vec3 inVert;
uniform mat4 MVP;

void main()
{
    gl_Position = MVP * vec4(inVert, 1.0);
}
`

const colourFragmentSource = `#version @glslVersion
precision highp float;

layout (location = 0) out vec4 fragColour;
uniform vec4 Colour;

void main()
{
    fragColour = Colour;
}
`

// ───────────────────────────────────── PBR ─────────────────────────────────────

const pbrFragmentSource = `#version @glslVersion
precision highp float;

in vec3 eyePosition;
in vec3 eyeNormal;
layout (location = 0) out vec4 fragColour;

uniform vec3 lightPosition[@numLights];
uniform vec4 lightDiffuse[@numLights];

uniform vec3  albedo;
uniform float metallic;
uniform float roughness;
uniform float ao;
uniform float exposure;

const float PI = 3.14159265359;

float distributionGGX(vec3 N, vec3 H, float r)
{
    float a      = r * r;
    float a2     = a * a;
    float NdotH  = max(dot(N, H), 0.0);
    float denom  = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * denom * denom);
}

float geometrySchlickGGX(float NdotV, float r)
{
    float k = ((r + 1.0) * (r + 1.0)) / 8.0;
    return NdotV / (NdotV * (1.0 - k) + k);
}

float geometrySmith(vec3 N, vec3 V, vec3 L, float r)
{
    return geometrySchlickGGX(max(dot(N, V), 0.0), r) * geometrySchlickGGX(max(dot(N, L), 0.0), r);
}

vec3 fresnelSchlick(float cosTheta, vec3 F0)
{
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

void main()
{
    vec3 N  = normalize(eyeNormal);
    vec3 V  = normalize(-eyePosition);
    vec3 F0 = mix(vec3(0.04), albedo, metallic);

    vec3 Lo = vec3(0.0);
    for (int i = 0; i < @numLights; ++i) {
        vec3  L        = normalize(lightPosition[i] - eyePosition);
        vec3  H        = normalize(V + L);
        float d        = length(lightPosition[i] - eyePosition);
        vec3  radiance = lightDiffuse[i].rgb / (d * d);

        float NDF = distributionGGX(N, H, roughness);
        float G   = geometrySmith(N, V, L, roughness);
        vec3  F   = fresnelSchlick(max(dot(H, V), 0.0), F0);

        vec3  kD       = (vec3(1.0) - F) * (1.0 - metallic);
        vec3  specular = (NDF * G * F) / (4.0 * max(dot(N, V), 0.0) * max(dot(N, L), 0.0) + 0.0001);
        float NdotL    = max(dot(N, L), 0.0);
        Lo += (kD * albedo / PI + specular) * radiance * NdotL;
    }

    vec3 colour = vec3(0.03) * albedo * ao + Lo;
    colour = vec3(1.0) - exp(-colour * exposure);
    colour = pow(colour, vec3(1.0 / 2.2));
    fragColour = vec4(colour, 1.0);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Built-in source names, also the file names looked up in a shader directory.
const (
	LitVertex      = "lit.vert"
	PhongFragment  = "phong.frag"
	ColourVertex   = "colour.vert"
	ColourFragment = "colour.frag"
	PBRFragment    = "pbr.frag"
)

var builtins = map[string]string{
	LitVertex:      litVertexSource,
	PhongFragment:  phongFragmentSource,
	ColourVertex:   colourVertexSource,
	ColourFragment: colourFragmentSource,
	PBRFragment:    pbrFragmentSource,
}

// Builtin returns the compiled-in source for name.
func Builtin(name string) (string, bool) {
	src, ok := builtins[name]
	return src, ok
}

// BuiltinNames lists every compiled-in source.
func BuiltinNames() []string {
	return []string{LitVertex, PhongFragment, ColourVertex, ColourFragment, PBRFragment}
}

// GLSLVersion returns the @glslVersion value for the target dialect.
func GLSLVersion(gles bool) string {
	if gles {
		return "300 es"
	}
	return "410 core"
}
