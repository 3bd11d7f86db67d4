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

import "github.com/jetsetilly/glimmer/gpu"

// CaptureScreenshot reads the front buffer. The returned data is tightly
// packed RGB, three bytes per pixel, with the bottom row of the screen
// first.
func (rc *RenderContext) CaptureScreenshot() ([]byte, error) {
	if !rc.renderReady {
		return nil, CapabilityError.Errorf(NotInitialised)
	}

	w, h := rc.rootWidth, rc.rootHeight
	if w <= 0 || h <= 0 {
		return nil, ResourceError.Errorf("glx: screenshot: empty root window")
	}

	pixels := make([]byte, w*h*3)

	alignment := rc.gl.GetInteger(gpu.PACK_ALIGNMENT)
	rc.gl.PixelStorei(gpu.PACK_ALIGNMENT, 1)
	rc.gl.ReadBuffer(gpu.FRONT)
	rc.gl.ReadPixels(0, 0, int32(w), int32(h), gpu.RGB, pixels)
	rc.gl.ReadBuffer(gpu.BACK)
	rc.gl.PixelStorei(gpu.PACK_ALIGNMENT, alignment)

	rc.checkErrors("screenshot")

	return pixels, nil
}
