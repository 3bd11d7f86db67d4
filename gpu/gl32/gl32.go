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

// Package gl32 implements gpu.GL with the OpenGL 3.2 compatibility profile
// bindings from go-gl. The compatibility profile is required because the
// renderer uses the fixed-function pipeline alongside framebuffer objects and
// GLSL programs.
package gl32

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
)

// GL implements the gpu.GL interface.
type GL struct {
	extensions map[string]bool
}

// NewGL is the preferred method of initialisation for the GL type.
func NewGL() *GL {
	return &GL{}
}

// Init implements the gpu.GL interface.
func (g *GL) Init() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("gl32: %w", err)
	}

	g.extensions = make(map[string]bool)
	for _, e := range strings.Fields(gl.GoStr(gl.GetString(gl.EXTENSIONS))) {
		g.extensions[e] = true
	}

	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return nil
}

func (g *GL) Enable(cap gpu.Enum) {
	gl.Enable(cap)
}

func (g *GL) Disable(cap gpu.Enum) {
	gl.Disable(cap)
}

func (g *GL) IsEnabled(cap gpu.Enum) bool {
	return gl.IsEnabled(cap)
}

func (g *GL) GetInteger(pname gpu.Enum) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (g *GL) GetError() gpu.Enum {
	return gl.GetError()
}

func (g *GL) HasExtension(name string) bool {
	return g.extensions[name]
}

func (g *GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (g *GL) MatrixMode(mode gpu.Enum) {
	gl.MatrixMode(mode)
}

func (g *GL) LoadIdentity() {
	gl.LoadIdentity()
}

func (g *GL) Ortho(left, right, bottom, top, near, far float64) {
	gl.Ortho(left, right, bottom, top, near, far)
}

func (g *GL) DepthMask(flag bool) {
	gl.DepthMask(flag)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
}

func (g *GL) Clear(mask gpu.Enum) {
	gl.Clear(mask)
}

func (g *GL) StencilMask(mask uint32) {
	gl.StencilMask(mask)
}

func (g *GL) StencilFunc(fn gpu.Enum, ref int32, mask uint32) {
	gl.StencilFunc(fn, ref, mask)
}

func (g *GL) Scissor(x, y, width, height int32) {
	gl.Scissor(x, y, width, height)
}

func (g *GL) BlendFunc(sfactor, dfactor gpu.Enum) {
	gl.BlendFunc(sfactor, dfactor)
}

func (g *GL) LogicOp(op gpu.Enum) {
	gl.LogicOp(op)
}

func (g *GL) Color4f(r, gr, b, a float32) {
	gl.Color4f(r, gr, b, a)
}

func (g *GL) TexEnvi(target, pname gpu.Enum, param int32) {
	gl.TexEnvi(target, pname, param)
}

func (g *GL) ActiveTexture(unit gpu.Enum) {
	gl.ActiveTexture(unit)
}

var _ gpu.GL = (*GL)(nil)
