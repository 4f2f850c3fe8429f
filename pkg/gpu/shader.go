package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// The quad covers the dab's bounding rectangle, given in NDC as
// (x0, y0, x1, y1). Vertices come from gl_VertexID so no buffers are needed.
const stampVertexSrc = `#version 410 core
uniform vec4 uRect;
void main() {
	vec2 corner = vec2(float(gl_VertexID & 1), float(gl_VertexID >> 1));
	gl_Position = vec4(mix(uRect.xy, uRect.zw, corner), 0.0, 1.0);
}
`

const stampFragmentSrc = `#version 410 core
uniform vec2 uCenter;
uniform float uRadius;
uniform float uHardness;
uniform float uOpacity;
uniform vec3 uColor;
out vec4 fragColor;

float edgeStep(float e0, float e1, float x) {
	if (e0 >= e1) {
		return x < e1 ? 0.0 : 1.0;
	}
	return smoothstep(e0, e1, x);
}

void main() {
	float t = clamp(distance(gl_FragCoord.xy, uCenter) / uRadius, 0.0, 1.0);
	float a = (1.0 - edgeStep(uHardness, 1.0, t)) * uOpacity;
	fragColor = vec4(uColor, a);
}
`

// compileProgram compiles vertex and fragment shaders and links them into a program.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// stampProgram is the linked stamp shader with its uniform locations.
type stampProgram struct {
	id       uint32
	rect     int32
	center   int32
	radius   int32
	hardness int32
	opacity  int32
	color    int32
}

func newStampProgram() (*stampProgram, error) {
	id, err := compileProgram(stampVertexSrc, stampFragmentSrc)
	if err != nil {
		return nil, err
	}
	return &stampProgram{
		id:       id,
		rect:     uniform(id, "uRect"),
		center:   uniform(id, "uCenter"),
		radius:   uniform(id, "uRadius"),
		hardness: uniform(id, "uHardness"),
		opacity:  uniform(id, "uOpacity"),
		color:    uniform(id, "uColor"),
	}, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (p *stampProgram) delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
