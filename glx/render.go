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
	"image"

	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/region"
)

// Quad describes how a texture is drawn by DrawQuad().
type Quad struct {
	// the position in the texture of the top-left corner of Dst
	Src image.Point

	// the area of the screen to draw to
	Dst image.Rectangle

	Z float32

	// opacity in the range 0 to 1. values outside the range are clamped
	Opacity float32

	// the texture has an alpha channel. textures bound with an RGBA
	// configuration are always treated as having an alpha channel
	ARGB bool

	// invert the colours of the texture
	Negate bool
}

// Uniforms of the main window program.
const (
	UniformOpacity     = "opacity"
	UniformInvertColor = "invert_color"
	UniformTex         = "tex"
)

// MainProgram is a user supplied program used by DrawQuad() in place of the
// fixed function pipeline.
type MainProgram struct {
	prog        gpu.Program
	opacity     gpu.Uniform
	invertColor gpu.Uniform
	tex         gpu.Uniform
}

// Program returns the GL program. Zero if the program has been freed.
func (p *MainProgram) Program() gpu.Program {
	return p.prog
}

// LoadMainProgram builds a program from vertex and fragment shader source.
// Either source can be empty but not both. The program can make use of the
// uniforms opacity (float), invert_color (bool) and tex (sampler).
func (rc *RenderContext) LoadMainProgram(vertex, fragment string) (*MainProgram, error) {
	if !rc.contextLive {
		return nil, CapabilityError.Errorf(NotInitialised)
	}

	prog, err := BuildProgram(rc.gl, vertex, fragment)
	if err != nil {
		return nil, err
	}

	p := &MainProgram{
		prog:        prog,
		opacity:     uniform(rc.gl, prog, UniformOpacity),
		invertColor: uniform(rc.gl, prog, UniformInvertColor),
		tex:         uniform(rc.gl, prog, UniformTex),
	}
	rc.programs[p] = true

	rc.checkErrors("load main program")

	return p, nil
}

// FreeMainProgram deletes the program.
func (rc *RenderContext) FreeMainProgram(p *MainProgram) {
	if p == nil {
		return
	}
	if p.prog != 0 {
		rc.gl.DeleteProgram(p.prog)
	}
	*p = MainProgram{}
	delete(rc.programs, p)
}

// the rectangles of the clip that are inside rect. a nil clip is the whole
// of rect
func clipRects(rect image.Rectangle, clip *region.Region) []image.Rectangle {
	if clip == nil {
		if rect.Empty() {
			return nil
		}
		return []image.Rectangle{rect}
	}
	reg := clip.Copy()
	reg.IntersectRect(rect)
	return reg.Rectangles()
}

// emit the four vertices of a quad. texture coordinate (tx, ty) is at vertex
// (vx, vy) and (txe, tye) is at (vxe, vye)
func (rc *RenderContext) emitQuad(tx, ty, txe, tye, vx, vy, vxe, vye, z float32) {
	rc.gl.TexCoord2f(tx, ty)
	rc.gl.Vertex3f(vx, vy, z)
	rc.gl.TexCoord2f(txe, ty)
	rc.gl.Vertex3f(vxe, vy, z)
	rc.gl.TexCoord2f(txe, tye)
	rc.gl.Vertex3f(vxe, vye, z)
	rc.gl.TexCoord2f(tx, tye)
	rc.gl.Vertex3f(vx, vye, z)
}

// as emitQuad() but the texture coordinates are given to both texture units
func (rc *RenderContext) emitDualQuad(tx, ty, txe, tye, vx, vy, vxe, vye, z float32) {
	coord := func(s, t float32) {
		rc.gl.MultiTexCoord2f(gpu.TEXTURE0, s, t)
		rc.gl.MultiTexCoord2f(gpu.TEXTURE1, s, t)
	}
	coord(tx, ty)
	rc.gl.Vertex3f(vx, vy, z)
	coord(txe, ty)
	rc.gl.Vertex3f(vxe, vy, z)
	coord(txe, tye)
	rc.gl.Vertex3f(vxe, vye, z)
	coord(tx, tye)
	rc.gl.Vertex3f(vx, vye, z)
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DrawQuad draws the texture to the back buffer, clipped to the region. A
// nil clip draws the whole of the quad's destination.
//
// If prog is nil the fixed function pipeline is used. Opacity is applied
// with premultiplied alpha blending. Negation of opaque textures uses a
// logic op. Negation of textures with an alpha channel uses two texture
// units: the first inverts the colour and the second multiplies the result
// by alpha.
//
// All GL state changed by DrawQuad is reset before it returns and the
// active texture unit is always left as unit zero.
func (rc *RenderContext) DrawQuad(tex *BoundTexture, q Quad, clip *region.Region, prog *MainProgram) error {
	if !rc.renderReady {
		return CapabilityError.Errorf(NotInitialised)
	}
	if tex == nil || tex.texture == 0 {
		logger.Errorf(logger.Allow, "glx", "draw: missing texture")
		return ResourceError.Errorf("glx: draw: missing texture")
	}

	q.Opacity = clampUnit(q.Opacity)

	argb := q.ARGB || tex.rgba
	dual := false
	usingProgram := prog != nil && prog.prog != 0

	gl := rc.gl
	target := tex.target

	gl.Enable(target)

	if q.Opacity < 1.0 || argb {
		gl.Enable(gpu.BLEND)

		// colours are premultiplied so the source is not scaled by its alpha
		gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.MODULATE)
		gl.BlendFunc(gpu.ONE, gpu.ONE_MINUS_SRC_ALPHA)
		gl.Color4f(q.Opacity, q.Opacity, q.Opacity, q.Opacity)
	}

	if !usingProgram && q.Negate {
		switch {
		case !gl.IsEnabled(gpu.BLEND):
			gl.Enable(gpu.COLOR_LOGIC_OP)
			gl.LogicOp(gpu.COPY_INVERTED)

		case argb:
			dual = true

			// unit zero: rgb = alpha - colour. alpha unchanged
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.COMBINE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.COMBINE_RGB, gpu.SUBTRACT)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE0_RGB, gpu.TEXTURE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND0_RGB, gpu.SRC_ALPHA)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE1_RGB, gpu.TEXTURE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND1_RGB, gpu.SRC_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.COMBINE_ALPHA, gpu.REPLACE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE0_ALPHA, gpu.TEXTURE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND0_ALPHA, gpu.SRC_ALPHA)

			// unit one: result of unit zero multiplied by opacity
			gl.ActiveTexture(gpu.TEXTURE1)
			gl.Enable(target)
			gl.BindTexture(target, tex.texture)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.COMBINE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.COMBINE_RGB, gpu.MODULATE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE0_RGB, gpu.PREVIOUS)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND0_RGB, gpu.SRC_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE1_RGB, gpu.PRIMARY_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND1_RGB, gpu.SRC_ALPHA)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.COMBINE_ALPHA, gpu.MODULATE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE0_ALPHA, gpu.PREVIOUS)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND0_ALPHA, gpu.SRC_ALPHA)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE1_ALPHA, gpu.PRIMARY_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND1_ALPHA, gpu.SRC_ALPHA)
			gl.ActiveTexture(gpu.TEXTURE0)

		default:
			// opaque texture drawn with partial opacity
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.COMBINE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.COMBINE_RGB, gpu.MODULATE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE0_RGB, gpu.TEXTURE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND0_RGB, gpu.ONE_MINUS_SRC_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE1_RGB, gpu.PRIMARY_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND1_RGB, gpu.SRC_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.COMBINE_ALPHA, gpu.MODULATE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE0_ALPHA, gpu.TEXTURE)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND0_ALPHA, gpu.SRC_ALPHA)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.SOURCE1_ALPHA, gpu.PRIMARY_COLOR)
			gl.TexEnvi(gpu.TEXTURE_ENV, gpu.OPERAND1_ALPHA, gpu.SRC_ALPHA)
		}
	}

	if usingProgram {
		gl.UseProgram(prog.prog)
		if prog.opacity.Valid() {
			gl.Uniform1f(prog.opacity, q.Opacity)
		}
		if prog.invertColor.Valid() {
			var v int32
			if q.Negate {
				v = 1
			}
			gl.Uniform1i(prog.invertColor, v)
		}
		if prog.tex.Valid() {
			gl.Uniform1i(prog.tex, 0)
		}
	}

	gl.BindTexture(target, tex.texture)

	// texture coordinates of 2D textures are normalised
	var sx, sy float32 = 1.0, 1.0
	if target == gpu.TEXTURE_2D {
		sx = 1.0 / float32(tex.width)
		sy = 1.0 / float32(tex.height)
	}

	gl.Begin(gpu.QUADS)
	for _, r := range clipRects(q.Dst.Canon(), clip) {
		rx := float32(r.Min.X-q.Dst.Min.X+q.Src.X) * sx
		ry := float32(r.Min.Y-q.Dst.Min.Y+q.Src.Y) * sy
		rxe := rx + float32(r.Dx())*sx
		rye := ry + float32(r.Dy())*sy

		// the first row of the texture is the bottom of the pixmap
		if !tex.yInverted {
			if target == gpu.TEXTURE_2D {
				ry = 1.0 - ry
				rye = 1.0 - rye
			} else {
				ry = float32(tex.height) - ry
				rye = float32(tex.height) - rye
			}
		}

		rdx := float32(r.Min.X)
		rdy := float32(rc.rootHeight - r.Min.Y)
		rdxe := rdx + float32(r.Dx())
		rdye := rdy - float32(r.Dy())

		if dual {
			rc.emitDualQuad(rx, ry, rxe, rye, rdx, rdy, rdxe, rdye, q.Z)
		} else {
			rc.emitQuad(rx, ry, rxe, rye, rdx, rdy, rdxe, rdye, q.Z)
		}
	}
	gl.End()

	// reset state
	gl.BindTexture(target, 0)
	gl.Color4f(0.0, 0.0, 0.0, 0.0)
	gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.REPLACE)
	gl.Disable(gpu.BLEND)
	gl.Disable(gpu.COLOR_LOGIC_OP)
	gl.Disable(target)

	if dual {
		gl.ActiveTexture(gpu.TEXTURE1)
		gl.BindTexture(target, 0)
		gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.REPLACE)
		gl.Disable(target)
		gl.ActiveTexture(gpu.TEXTURE0)
	}

	if usingProgram {
		gl.UseProgram(0)
	}

	rc.checkErrors("draw")

	return nil
}

// DimRegion darkens the area covered by rect and clip. The factor is the
// opacity of the black drawn over the area.
func (rc *RenderContext) DimRegion(rect image.Rectangle, z float32, factor float32, clip *region.Region) error {
	if !rc.renderReady {
		return CapabilityError.Errorf(NotInitialised)
	}

	gl := rc.gl

	gl.Enable(gpu.BLEND)
	gl.BlendFunc(gpu.ONE, gpu.ONE_MINUS_SRC_ALPHA)
	gl.Color4f(0.0, 0.0, 0.0, clampUnit(factor))

	gl.Begin(gpu.QUADS)
	for _, r := range clipRects(rect.Canon(), clip) {
		rdx := float32(r.Min.X)
		rdy := float32(rc.rootHeight - r.Min.Y)
		rdxe := rdx + float32(r.Dx())
		rdye := rdy - float32(r.Dy())

		gl.Vertex3f(rdx, rdy, z)
		gl.Vertex3f(rdxe, rdy, z)
		gl.Vertex3f(rdxe, rdye, z)
		gl.Vertex3f(rdx, rdye, z)
	}
	gl.End()

	gl.Color4f(0.0, 0.0, 0.0, 0.0)
	gl.Disable(gpu.BLEND)

	rc.checkErrors("dim")

	return nil
}
