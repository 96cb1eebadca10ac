package rlrender

import rl "github.com/gen2brain/raylib-go/raylib"

// Collider shader: hemisphere ambient, half-Lambert key light and a faint rim so flat
// collider colors stay readable from every side. Attribute names match raylib's defaults.
const (
	colliderVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 worldPos;
out vec3 worldNormal;
void main() {
  worldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
  worldNormal = normalize((matNormal * vec4(vertexNormal, 0.0)).xyz);
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// Back faces flip their normal so open trimeshes shade from both sides.
	colliderFS = `#version 330
in vec3 worldPos;
in vec3 worldNormal;
uniform vec4 colDiffuse;
uniform vec3 eye;
uniform vec3 keyDir;
uniform vec3 skyTint;
uniform vec3 groundTint;
uniform float keyStrength;
uniform float rimStrength;
out vec4 finalColor;
void main() {
  vec3 n = normalize(worldNormal);
  vec3 toEye = normalize(eye - worldPos);
  if (!gl_FrontFacing) n = -n;
  float hemi = n.y * 0.5 + 0.5;
  vec3 ambient = mix(groundTint, skyTint, hemi);
  float wrap = dot(n, normalize(keyDir)) * 0.5 + 0.5;
  float rim = pow(1.0 - max(dot(n, toEye), 0.0), 3.0) * rimStrength;
  vec3 base = colDiffuse.rgb;
  finalColor = vec4(base * (ambient + wrap * wrap * keyStrength) + rim, colDiffuse.a);
}
`
)

// uniform is one shader parameter uploaded every frame.
type uniform struct {
	name  string
	kind  rl.ShaderUniformDataType
	value []float32
}

var (
	skyTint    = []float32{0.42, 0.45, 0.5}
	groundTint = []float32{0.22, 0.2, 0.18}
)

const (
	keyStrength = float32(0.7)
	rimStrength = float32(0.08)
)

// uploadUniforms sends this frame's eye and light parameters. Locations are looked up once.
func (r *Renderer) uploadUniforms() {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	eye, key := r.viewPos, r.lightDir
	params := [...]uniform{
		{"eye", rl.ShaderUniformVec3, eye[:]},
		{"keyDir", rl.ShaderUniformVec3, key[:]},
		{"skyTint", rl.ShaderUniformVec3, skyTint},
		{"groundTint", rl.ShaderUniformVec3, groundTint},
		{"keyStrength", rl.ShaderUniformFloat, []float32{keyStrength}},
		{"rimStrength", rl.ShaderUniformFloat, []float32{rimStrength}},
	}
	if r.uniformLocs == nil {
		r.uniformLocs = make(map[string]int32, len(params))
		for _, p := range params {
			r.uniformLocs[p.name] = rl.GetShaderLocation(r.shader, p.name)
		}
	}
	for _, p := range params {
		if loc := r.uniformLocs[p.name]; loc >= 0 {
			rl.SetShaderValue(r.shader, loc, p.value, p.kind)
		}
	}
}
