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
	"fmt"
	"image"
	"testing"

	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/gpu/mock"
	"github.com/jetsetilly/glimmer/region"
	"github.com/jetsetilly/glimmer/test"
)

const mainFragment = `uniform float opacity;
uniform bool invert_color;
uniform sampler2D tex;

void main() {
	vec4 c = texture2D(tex, gl_TexCoord[0].xy);
	if (invert_color)
		c = vec4(vec3(c.a, c.a, c.a) - vec3(c), c.a);
	gl_FragColor = c * opacity;
}
`

func bind(t *testing.T, rc *glx.RenderContext, pixmap gpu.Pixmap) *glx.BoundTexture {
	t.Helper()
	var tex *glx.BoundTexture
	test.DemandSuccess(t, rc.BindPixmap(&tex, pixmap, glx.Geometry{}))
	return tex
}

// the state DrawQuad() leaves behind whatever path it takes
func expectResetState(t *testing.T, gl *mock.GL) {
	t.Helper()
	test.ExpectFailure(t, gl.IsEnabled(gpu.TEXTURE_2D))
	test.ExpectFailure(t, gl.IsEnabled(gpu.BLEND))
	test.ExpectFailure(t, gl.IsEnabled(gpu.COLOR_LOGIC_OP))
	test.ExpectEquality(t, gl.ActiveUnit, gpu.TEXTURE0)
	test.ExpectEquality(t, gl.Bound(gpu.TEXTURE0, gpu.TEXTURE_2D), 0)
	test.ExpectEquality(t, gl.Bound(gpu.TEXTURE1, gpu.TEXTURE_2D), 0)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE0, Pname: gpu.TEXTURE_ENV_MODE}], gpu.REPLACE)
	test.ExpectEquality(t, gl.Color, [4]float32{})
	test.ExpectEquality(t, gl.Program, 0)
	expectValidUse(t, gl)
}

func expectVertex(t *testing.T, v mock.Vertex, x, y, s, tt float32) {
	t.Helper()
	test.ExpectEquality(t, v.X, x)
	test.ExpectEquality(t, v.Y, y)
	test.ExpectApproximate(t, v.S, s, 0.00001)
	test.ExpectApproximate(t, v.T, tt, 0.00001)
}

func TestDrawQuad(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	tex := bind(t, rc, pixmap24)
	gl.ResetRecords()

	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(10, 20, 100, 50), Z: 0.25, Opacity: 1}, nil, nil))

	test.ExpectEquality(t, gl.Quads, 1)
	test.DemandEquality(t, len(gl.Vertices), 4)

	// the top of the pixmap is the end of the texture
	v := gl.Vertices
	expectVertex(t, v[0], 10, 1060, 0, 1)
	expectVertex(t, v[1], 110, 1060, 1, 1)
	expectVertex(t, v[2], 110, 1010, 1, 0)
	expectVertex(t, v[3], 10, 1010, 0, 0)
	test.ExpectEquality(t, v[0].Z, 0.25)

	// an opaque texture is not blended
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 0)
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.TEXTURE_2D)), 1)

	expectResetState(t, gl)
}

func TestDrawQuadClip(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	tex := bind(t, rc, pixmap24)
	gl.ResetRecords()

	q := glx.Quad{
		Src:     image.Pt(10, 5),
		Dst:     rect(0, 0, 50, 25),
		Opacity: 1,
	}
	clip := region.New(rect(0, 0, 10, 10), rect(40, 15, 10, 10), rect(100, 100, 10, 10))
	test.DemandSuccess(t, rc.DrawQuad(tex, q, clip, nil))

	test.DemandEquality(t, len(gl.Vertices), 8)
	v := gl.Vertices
	test.ExpectEquality(t, v[0].X, 0)
	test.ExpectEquality(t, v[0].Y, 1080)
	test.ExpectApproximate(t, v[0].S, 0.1, 0.00001)
	test.ExpectApproximate(t, v[0].T, 0.9, 0.00001)
	test.ExpectEquality(t, v[4].X, 40)
	test.ExpectEquality(t, v[4].Y, 1065)
	test.ExpectApproximate(t, v[4].S, 0.5, 0.00001)
	test.ExpectApproximate(t, v[4].T, 0.6, 0.00001)
	test.ExpectEquality(t, v[6].X, 50)
	test.ExpectEquality(t, v[6].Y, 1055)

	// an empty clip draws nothing
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, q, &region.Region{}, nil))
	test.ExpectEquality(t, len(gl.Vertices), 0)

	expectResetState(t, gl)
}

func TestDrawQuadRectangleTexture(t *testing.T) {
	gl, dpy := newMocks()
	delete(gl.Extensions, "GL_ARB_texture_non_power_of_two")
	for _, c := range dpy.Configs {
		c.Attribs[gpu.GLX_BIND_TO_TEXTURE_TARGETS_EXT] = gpu.GLX_TEXTURE_2D_BIT_EXT | gpu.GLX_TEXTURE_RECTANGLE_BIT_EXT
	}
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	test.DemandSuccess(t, rc.Init(true))

	tex := bind(t, rc, pixmap24)
	test.DemandEquality(t, tex.Target(), gpu.TEXTURE_RECTANGLE)
	gl.ResetRecords()

	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: 1}, nil, nil))

	// texture coordinates are in texels
	test.DemandEquality(t, len(gl.Vertices), 4)
	test.ExpectEquality(t, gl.Vertices[0].S, 0)
	test.ExpectEquality(t, gl.Vertices[0].T, 50)
	test.ExpectEquality(t, gl.Vertices[2].S, 100)
	test.ExpectEquality(t, gl.Vertices[2].T, 0)

	test.ExpectFailure(t, gl.IsEnabled(gpu.TEXTURE_RECTANGLE))
	test.ExpectEquality(t, gl.Bound(gpu.TEXTURE0, gpu.TEXTURE_RECTANGLE), 0)
	expectValidUse(t, gl)
}

func TestDrawQuadBlend(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())

	// textures with an alpha channel are always blended
	tex := bind(t, rc, pixmap32)
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 64, 64), Opacity: 1}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 1)
	test.ExpectEquality(t, gl.Blend, [2]gpu.Enum{gpu.ONE, gpu.ONE_MINUS_SRC_ALPHA})
	expectResetState(t, gl)

	// as are opaque textures with partial opacity
	tex = bind(t, rc, pixmap24)
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: 0.5}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 1)
	expectResetState(t, gl)

	// and opaque textures drawn as if they had an alpha channel
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: 1, ARGB: true}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 1)
	expectResetState(t, gl)
}

func TestDrawQuadOpacityRange(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	tex := bind(t, rc, pixmap24)

	// opacity above one is opaque
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: 2.5}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 0)
	expectResetState(t, gl)

	// opacity below zero is transparent
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: -1}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 1)
	// once for the draw and once for the reset
	test.ExpectEquality(t, calls(gl, "Color4f[0 0 0 0]"), 2)
	test.ExpectEquality(t, calls(gl, "Color4f[-1 -1 -1 -1]"), 0)
	expectResetState(t, gl)

	// and the dim factor is limited in the same way
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DimRegion(rect(0, 0, 100, 100), 0, 3, nil))
	test.ExpectEquality(t, calls(gl, "Color4f[0 0 0 1]"), 1)
	expectValidUse(t, gl)
}

func TestDrawQuadNegate(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	tex := bind(t, rc, pixmap24)

	// opaque textures are inverted with a logic op
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: 1, Negate: true}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.COLOR_LOGIC_OP)), 1)
	test.ExpectEquality(t, gl.LogicOpValue, gpu.COPY_INVERTED)
	expectResetState(t, gl)

	// partially transparent opaque textures combine the inverted texture
	// with the primary colour
	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 100, 50), Opacity: 0.5, Negate: true}, nil, nil))
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.COLOR_LOGIC_OP)), 0)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE0, Pname: gpu.OPERAND0_RGB}], gpu.ONE_MINUS_SRC_COLOR)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE0, Pname: gpu.COMBINE_RGB}], gpu.MODULATE)
	expectResetState(t, gl)
}

func TestDrawQuadNegateAlpha(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	tex := bind(t, rc, pixmap32)
	gl.ResetRecords()

	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 32, 32), Opacity: 1, Negate: true}, nil, nil))

	// both texture units are used
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE0, Pname: gpu.COMBINE_RGB}], gpu.SUBTRACT)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE0, Pname: gpu.OPERAND0_RGB}], gpu.SRC_ALPHA)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE1, Pname: gpu.COMBINE_RGB}], gpu.MODULATE)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE1, Pname: gpu.SOURCE0_RGB}], gpu.PREVIOUS)
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.COLOR_LOGIC_OP)), 0)
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.TEXTURE_2D)), 2)

	// both units are given the same texture coordinates
	test.DemandEquality(t, len(gl.Vertices), 4)
	for _, v := range gl.Vertices {
		test.ExpectEquality(t, v.S1, v.S)
		test.ExpectEquality(t, v.T1, v.T)
	}
	test.ExpectApproximate(t, gl.Vertices[2].S1, 0.5, 0.00001)

	// the second unit is reset as well as the first
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE1, Pname: gpu.TEXTURE_ENV_MODE}], gpu.REPLACE)
	expectResetState(t, gl)
}

func TestDrawQuadProgram(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	tex := bind(t, rc, pixmap32)

	prog, err := rc.LoadMainProgram("", mainFragment)
	test.DemandSuccess(t, err)
	test.DemandInequality(t, prog.Program(), 0)

	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 64, 64), Opacity: 0.75, Negate: true}, nil, prog))

	p := prog.Program()
	test.ExpectEquality(t, len(gl.UniformsFor(p, "opacity")), 1)
	test.ExpectEquality(t, gl.UniformsFor(p, "opacity")[0][0], 0.75)
	test.ExpectEquality(t, gl.UniformsFor(p, "invert_color")[0][0], 1)
	test.ExpectEquality(t, gl.UniformsFor(p, "tex")[0][0], 0)

	// negation is left to the program
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.COLOR_LOGIC_OP)), 0)
	test.ExpectEquality(t, gl.TexEnv[mock.TexEnvKey{Unit: gpu.TEXTURE1, Pname: gpu.COMBINE_RGB}], 0)
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("UseProgram[%d]", p)), 1)
	expectResetState(t, gl)

	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 64, 64), Opacity: 1}, nil, prog))
	test.ExpectEquality(t, gl.UniformsFor(p, "invert_color")[0][0], 0)

	// a freed program falls back to the fixed function pipeline
	rc.FreeMainProgram(prog)
	test.ExpectEquality(t, prog.Program(), 0)
	_, _, _, programs := gl.Live()
	test.ExpectEquality(t, programs, 0)

	gl.ResetRecords()
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 64, 64), Opacity: 1}, nil, prog))
	test.ExpectEquality(t, gl.CallCount("UseProgram"), 0)
	expectResetState(t, gl)
}

func TestLoadMainProgram(t *testing.T) {
	gl, dpy := newMocks()
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	_, err := rc.LoadMainProgram("", mainFragment)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.CapabilityError))

	// missing uniforms are tolerated
	rc, gl, _ = newContext(t, glx.DefaultSettings())
	prog, err := rc.LoadMainProgram("", "void main() { gl_FragColor = vec4(1.0); }")
	test.DemandSuccess(t, err)
	tex := bind(t, rc, pixmap24)
	test.DemandSuccess(t, rc.DrawQuad(tex, glx.Quad{Dst: rect(0, 0, 10, 10), Opacity: 0.5}, nil, prog))
	test.ExpectEquality(t, len(gl.Uniforms), 0)
	expectValidUse(t, gl)

	// programs are deleted with the context
	rc.Destroy()
	test.ExpectEquality(t, prog.Program(), 0)
	test.ExpectEquality(t, gl.LiveObjects(), 0)

	rc, gl, _ = newContext(t, glx.DefaultSettings())
	gl.FailCompile = "gl_FragColor"
	_, err = rc.LoadMainProgram("", mainFragment)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.ShaderError))
	test.ExpectEquality(t, gl.LiveObjects(), 0)
}

func TestDrawQuadFailure(t *testing.T) {
	gl, dpy := newMocks()
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	err := rc.DrawQuad(&glx.BoundTexture{}, glx.Quad{Dst: rect(0, 0, 10, 10), Opacity: 1}, nil, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.CapabilityError))

	rc, gl, _ = newContext(t, glx.DefaultSettings())
	err = rc.DrawQuad(nil, glx.Quad{Dst: rect(0, 0, 10, 10), Opacity: 1}, nil, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.ResourceError))

	err = rc.DrawQuad(&glx.BoundTexture{}, glx.Quad{Dst: rect(0, 0, 10, 10), Opacity: 1}, nil, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.In(err, glx.ResourceError))

	test.ExpectEquality(t, len(gl.Vertices), 0)
}

func TestDimRegion(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	gl.ResetRecords()

	clip := region.New(rect(0, 0, 10, 10), rect(5, 50, 10, 10))
	test.DemandSuccess(t, rc.DimRegion(rect(0, 0, 100, 100), 0.5, 0.25, clip))

	test.DemandEquality(t, len(gl.Vertices), 8)
	test.ExpectEquality(t, gl.Vertices[0], mock.Vertex{X: 0, Y: 1080, Z: 0.5})
	test.ExpectEquality(t, gl.Vertices[6], mock.Vertex{X: 15, Y: 1020, Z: 0.5})
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("Enable[%d]", gpu.BLEND)), 1)
	test.ExpectEquality(t, gl.Blend, [2]gpu.Enum{gpu.ONE, gpu.ONE_MINUS_SRC_ALPHA})
	test.ExpectFailure(t, gl.IsEnabled(gpu.BLEND))
	test.ExpectEquality(t, gl.Color, [4]float32{})
	expectValidUse(t, gl)
}

func TestCaptureScreenshot(t *testing.T) {
	gl, dpy := newMocks()
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	_, err := rc.CaptureScreenshot()
	test.ExpectFailure(t, err)

	test.DemandSuccess(t, rc.Init(true))
	gl.ResetRecords()

	data, err := rc.CaptureScreenshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 1920*1080*3)

	// the front buffer is read with no row padding
	test.ExpectEquality(t, calls(gl, fmt.Sprintf("ReadPixels[%d 1]", gpu.FRONT)), 1)
	test.ExpectEquality(t, gl.Integers[gpu.PACK_ALIGNMENT], 4)
	test.ExpectEquality(t, gl.ReadBufferValue, gpu.BACK)

	// a smaller root window
	rc.OnRootResize(64, 32)
	data, err = rc.CaptureScreenshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 64*32*3)
}
