package renderer

const faceVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;
layout (location = 3) in vec3 aEmission;
layout (location = 4) in float aLit;

uniform mat4 uProjection;
uniform mat4 uView;
uniform vec3 uOffset;

out vec3 vNormal;
out vec4 vColor;
out vec3 vEmission;
out float vLit;

void main() {
	gl_Position = uProjection * uView * vec4(aPos + uOffset, 1.0);
	vNormal = aNormal;
	vColor = aColor;
	vEmission = aEmission;
	vLit = aLit;
}
`

// uAlphaFunc follows frame.AlphaFunc.
const faceFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vColor;
in vec3 vEmission;
in float vLit;

uniform int uAlphaFunc;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

out vec4 FragColor;

void main() {
	vec4 c = vColor;
	if (vLit > 0.5) {
		float d = max(dot(normalize(vNormal), -uLightDir), 0.0);
		c.rgb *= uAmbient + uDiffuse * d;
	}
	c.rgb += vEmission;

	if (uAlphaFunc == 1 && c.a <= 0.0) discard;
	if (uAlphaFunc == 2 && c.a <= 0.9) discard;
	if (uAlphaFunc == 3 && c.a < 1.0) discard;
	if (uAlphaFunc == 4 && c.a >= 1.0) discard;

	FragColor = c;
}
`

var faceUniforms = []string{
	"uProjection", "uView", "uOffset",
	"uAlphaFunc", "uLightDir", "uAmbient", "uDiffuse",
}
