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

package glx_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/gpu/mock"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/test"
)

const vertexSource = "void main() { gl_Position = ftransform(); }"

func TestBuildProgram(t *testing.T) {
	gl := mock.NewGL()

	prog, err := glx.BuildProgram(gl, vertexSource, mainFragment)
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, prog, 0)
	test.ExpectEquality(t, len(gl.ProgramSources(prog)), 2)

	// shaders do not outlive the program
	_, _, shaders, programs := gl.Live()
	test.ExpectEquality(t, shaders, 0)
	test.ExpectEquality(t, programs, 1)

	// either stage can use the fixed function pipeline
	prog, err = glx.BuildProgram(gl, "", mainFragment)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(gl.ProgramSources(prog)), 1)

	prog, err = glx.BuildProgram(gl, vertexSource, "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(gl.ProgramSources(prog)), 1)

	// but not both
	_, err = glx.BuildProgram(gl, "", "")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.ShaderError))

	test.ExpectEquality(t, gl.ProgramsLinked(), 3)
	expectValidUse(t, gl)
}

func TestBuildProgramFailure(t *testing.T) {
	logger.Clear()

	gl := mock.NewGL()
	gl.FailCompile = "ftransform"

	// the failure of the vertex shader stops the fragment shader being
	// compiled at all
	_, err := glx.BuildProgram(gl, vertexSource, mainFragment)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.ShaderError))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "vertex"))
	test.ExpectEquality(t, gl.LiveObjects(), 0)

	// the fragment shader fails after the vertex shader has compiled
	gl.FailCompile = "invert_color"
	_, err = glx.BuildProgram(gl, vertexSource, mainFragment)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "fragment"))
	test.ExpectEquality(t, gl.LiveObjects(), 0)

	// link failures
	gl.FailCompile = ""
	gl.FailLink = true
	_, err = glx.BuildProgram(gl, vertexSource, mainFragment)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.ShaderError))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "link"))
	test.ExpectEquality(t, gl.LiveObjects(), 0)

	// the compiler diagnostic is logged
	w, err := test.NewCappedWriter(4096)
	test.DemandSuccess(t, err)
	logger.Write(w)
	test.ExpectSuccess(t, w.Contains("mock compile failure"))
	test.ExpectSuccess(t, w.Contains("mock link failure"))

	expectValidUse(t, gl)
}

func TestCompileAndLink(t *testing.T) {
	gl := mock.NewGL()

	v, err := glx.Compile(gl, gpu.VERTEX_SHADER, vertexSource)
	test.DemandSuccess(t, err)
	f, err := glx.Compile(gl, gpu.FRAGMENT_SHADER, mainFragment)
	test.DemandSuccess(t, err)

	prog, err := glx.Link(gl, v, f)
	test.DemandSuccess(t, err)

	// the shaders are detached but not deleted by Link()
	_, _, shaders, _ := gl.Live()
	test.ExpectEquality(t, shaders, 2)
	test.ExpectEquality(t, len(gl.ProgramSources(prog)), 2)

	gl.DeleteShader(v)
	gl.DeleteShader(f)
	gl.DeleteProgram(prog)
	test.ExpectEquality(t, gl.LiveObjects(), 0)
	expectValidUse(t, gl)
}
