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
	"github.com/jetsetilly/glimmer/damage"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/region"
)

// BufferAge returns the age of the back buffer according to the swap method.
// Zero means the content of the back buffer is unknown.
func (rc *RenderContext) BufferAge() int {
	if rc.opts.SwapMethod == SwapBufferAge {
		return rc.dpy.BufferAge()
	}
	return rc.opts.SwapMethod
}

// PreparePaint must be called at the start of every frame with the region
// that has changed since the previous frame. The region is extended to
// include every area of the back buffer that is out of date, and the clip
// is set to the extended region.
func (rc *RenderContext) PreparePaint(reg *region.Region) {
	var raw *region.Region
	if rc.opts.tracksDamage() {
		raw = reg.Copy()
	}

	damage.Compute(reg, rc.BufferAge(), rc.history, rc.screen())

	if raw != nil {
		rc.history.Push(raw)
	}

	rc.SetClip(reg)
}

// SetClip restricts drawing to the region. Only a region of a single
// rectangle is clipped by the GL. For any other region the clip is removed
// and the region must be passed to the drawing functions instead.
//
// SetClip does nothing if the stencil buffer is disabled.
func (rc *RenderContext) SetClip(reg *region.Region) {
	if rc.opts.NoStencil {
		return
	}

	rc.gl.Disable(gpu.STENCIL_TEST)
	rc.gl.Disable(gpu.SCISSOR_TEST)

	if reg == nil || reg.Len() != 1 {
		return
	}

	r := reg.Bounds()
	rc.gl.Enable(gpu.SCISSOR_TEST)
	rc.gl.Scissor(int32(r.Min.X), int32(rc.rootHeight-r.Max.Y), int32(r.Dx()), int32(r.Dy()))
}
