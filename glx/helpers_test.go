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
	"image"
	"strings"
	"testing"

	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/gpu/mock"
	"github.com/jetsetilly/glimmer/test"
)

// pixmaps known to every mock display created by newMocks()
const (
	pixmap24 = gpu.Pixmap(0x400001)
	pixmap32 = gpu.Pixmap(0x400002)
	pixmap16 = gpu.Pixmap(0x400003)
	pixmap64 = gpu.Pixmap(0x400004)
	pixmapB  = gpu.Pixmap(0x400005)
)

func newMocks() (*mock.GL, *mock.Display) {
	gl := mock.NewGL()
	dpy := mock.NewDisplay()
	dpy.Pixmaps[pixmap24] = mock.PixmapInfo{Width: 100, Height: 50, Depth: 24}
	dpy.Pixmaps[pixmap32] = mock.PixmapInfo{Width: 64, Height: 64, Depth: 32}
	dpy.Pixmaps[pixmap16] = mock.PixmapInfo{Width: 10, Height: 10, Depth: 16}
	dpy.Pixmaps[pixmap64] = mock.PixmapInfo{Width: 10, Height: 10, Depth: 64}
	dpy.Pixmaps[pixmapB] = mock.PixmapInfo{Width: 200, Height: 100, Depth: 24}
	return gl, dpy
}

// create and initialise a context for rendering
func newContext(t *testing.T, opts glx.Settings) (*glx.RenderContext, *mock.GL, *mock.Display) {
	t.Helper()
	gl, dpy := newMocks()
	rc := glx.NewRenderContext(gl, dpy, opts)
	test.DemandSuccess(t, rc.Init(true))
	return rc, gl, dpy
}

// fail the test if the GL was used incorrectly
func expectValidUse(t *testing.T, gl *mock.GL) {
	t.Helper()
	for _, s := range gl.InvalidUse {
		t.Errorf("invalid GL use: %s", s)
	}
}

// number of exact matches for the call in the GL's call record
func calls(gl *mock.GL, call string) int {
	var n int
	for _, c := range gl.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// find a live program with a shader containing the string
func programWith(gl *mock.GL, s string) gpu.Program {
	for p := gpu.Program(1); p < 4096; p++ {
		for _, src := range gl.ProgramSources(p) {
			if strings.Contains(src, s) {
				return p
			}
		}
	}
	return 0
}

// rectangle from position and size
func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
