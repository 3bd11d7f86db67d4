// This file is part of Glimmer.
//
// Glimmer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Glimmer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Glimmer.  If not, see <https://www.gnu.org/licenses/>.

package glx

import (
	"strings"

	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
)

func shaderKind(kind gpu.Enum) string {
	switch kind {
	case gpu.VERTEX_SHADER:
		return "vertex"
	case gpu.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}

// Compile a shader of the kind (gpu.VERTEX_SHADER or gpu.FRAGMENT_SHADER).
// Compiler diagnostics are logged and included in the returned error.
func Compile(gl gpu.GL, kind gpu.Enum, source string) (gpu.Shader, error) {
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, ResourceError.Errorf("glx: shader: cannot create %s shader", shaderKind(kind))
	}

	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	if gl.GetShaderi(shader, gpu.COMPILE_STATUS) == gpu.FALSE {
		log := strings.TrimSpace(gl.ShaderInfoLog(shader))
		gl.DeleteShader(shader)
		logger.Errorf(logger.Allow, "glx: shader", "%s shader compilation failed: %s", shaderKind(kind), log)
		return 0, ShaderError.Errorf("glx: shader: %s: %s", shaderKind(kind), log)
	}

	return shader, nil
}

// Link shaders into a program. The shaders are detached from the program
// afterwards but are not deleted.
func Link(gl gpu.GL, shaders ...gpu.Shader) (gpu.Program, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, ResourceError.Errorf("glx: shader: cannot create program")
	}

	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	if gl.GetProgrami(program, gpu.LINK_STATUS) == gpu.FALSE {
		log := strings.TrimSpace(gl.ProgramInfoLog(program))
		gl.DeleteProgram(program)
		logger.Errorf(logger.Allow, "glx: shader", "program link failed: %s", log)
		return 0, ShaderError.Errorf("glx: shader: link: %s", log)
	}

	return program, nil
}

// BuildProgram compiles and links a program from vertex and fragment shader
// source. Either source can be empty, in which case the fixed function
// pipeline is used for that stage. The intermediate shaders are always
// deleted.
func BuildProgram(gl gpu.GL, vertexSrc, fragmentSrc string) (gpu.Program, error) {
	if vertexSrc == "" && fragmentSrc == "" {
		return 0, ShaderError.Errorf("glx: shader: no source")
	}

	var shaders []gpu.Shader
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	if vertexSrc != "" {
		s, err := Compile(gl, gpu.VERTEX_SHADER, vertexSrc)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, s)
	}

	if fragmentSrc != "" {
		s, err := Compile(gl, gpu.FRAGMENT_SHADER, fragmentSrc)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, s)
	}

	return Link(gl, shaders...)
}

// uniform returns the location of the named uniform. A missing uniform is
// not an error because the compiler will remove a uniform that is declared
// but not used.
func uniform(gl gpu.GL, program gpu.Program, name string) gpu.Uniform {
	u := gl.GetUniformLocation(program, name)
	if !u.Valid() {
		logger.Warnf(logger.Allow, "glx: shader", "uniform %s not found in program %d", name, program)
		return gpu.NoUniform
	}
	return u
}
