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
	"testing"

	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/gpu/mock"
	"github.com/jetsetilly/glimmer/test"
	"github.com/jetsetilly/glimmer/vsync"
)

func TestInit(t *testing.T) {
	rc, gl, dpy := newContext(t, glx.DefaultSettings())

	test.ExpectSuccess(t, rc.IsRenderReady())
	test.ExpectSuccess(t, dpy.ContextLive)
	test.ExpectSuccess(t, rc.NonPowerOfTwo())

	w, h := rc.RootSize()
	test.ExpectEquality(t, w, 1920)
	test.ExpectEquality(t, h, 1080)
	test.ExpectEquality(t, gl.ViewportBox, [4]int32{0, 0, 1920, 1080})
	test.ExpectEquality(t, gl.OrthoBox, [6]float64{0, 1920, 0, 1080, -1000, 1000})

	test.ExpectFailure(t, gl.IsEnabled(gpu.DEPTH_TEST))
	test.ExpectFailure(t, gl.IsEnabled(gpu.BLEND))
	test.ExpectFailure(t, gl.IsEnabled(gpu.STENCIL_TEST))
	test.ExpectEquality(t, calls(gl, "StencilFunc[514 1 1]"), 1)
	test.ExpectEquality(t, calls(gl, "Clear[1024]"), 1)

	_, ok := rc.SurfaceConfig(24)
	test.ExpectSuccess(t, ok)
	cfg, ok := rc.SurfaceConfig(32)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, cfg.RGBA())

	// initialising again does not create another context
	test.DemandSuccess(t, rc.Init(true))
	test.ExpectEquality(t, dpy.ContextsCreated, 1)

	expectValidUse(t, gl)
}

func TestInitWithoutRender(t *testing.T) {
	gl, dpy := newMocks()

	// nothing required for rendering is checked
	dpy.Extensions = map[string]bool{}
	dpy.Visual.DoubleBuffer = false
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())

	test.DemandSuccess(t, rc.Init(false))
	test.ExpectSuccess(t, dpy.ContextLive)
	test.ExpectFailure(t, rc.IsRenderReady())

	// rendering operations are refused
	var tex *glx.BoundTexture
	test.ExpectFailure(t, rc.BindPixmap(&tex, pixmap24, glx.Geometry{}))
	_, err := rc.CaptureScreenshot()
	test.ExpectFailure(t, err)

	// the missing requirements are found when rendering is needed
	test.ExpectFailure(t, rc.Init(true))
	test.ExpectFailure(t, dpy.ContextLive)
}

func TestInitFailure(t *testing.T) {
	tests := []struct {
		name  string
		prep  func(*mock.GL, *mock.Display, *glx.Settings)
		class curated.Sentinel
	}{
		{"no glx", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.NoGLX = true }, glx.CapabilityError},
		{"no visual", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.FailVisual = true }, glx.QueryError},
		{"visual without gl", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.Visual.GL = false }, glx.CapabilityError},
		{"single buffered", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.Visual.DoubleBuffer = false }, glx.CapabilityError},
		{"no texture from pixmap", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) {
			delete(dpy.Extensions, "GLX_EXT_texture_from_pixmap")
		}, glx.CapabilityError},
		{"no context", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.FailContext = true }, glx.CapabilityError},
		{"gl init", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { gl.FailInit = true }, glx.CapabilityError},
		{"no stencil", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { gl.Integers[gpu.STENCIL_BITS] = 0 }, glx.CapabilityError},
		{"no binder", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.NoTexImage = true }, glx.CapabilityError},
		{"no fbconfigs", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) { dpy.FailFBConfigs = true }, glx.CapabilityError},
		{"no default depth", func(gl *mock.GL, dpy *mock.Display, _ *glx.Settings) {
			dpy.Configs = []mock.Config{mock.RGBAConfig()}
		}, glx.CapabilityError},
		{"swap method", func(gl *mock.GL, dpy *mock.Display, opts *glx.Settings) {
			opts.SwapMethod = 6
			opts.MaxBufferAge = 5
		}, glx.CapabilityError},
	}

	for _, tt := range tests {
		gl, dpy := newMocks()
		opts := glx.DefaultSettings()
		tt.prep(gl, dpy, &opts)

		rc := glx.NewRenderContext(gl, dpy, opts)
		err := rc.Init(true)
		test.ExpectFailure(t, err, tt.name)
		test.ExpectSuccess(t, curated.In(err, tt.class), tt.name)

		// nothing is left behind
		test.ExpectFailure(t, dpy.ContextLive, tt.name)
		test.ExpectFailure(t, rc.IsRenderReady(), tt.name)
		test.ExpectEquality(t, gl.LiveObjects(), 0, tt.name)
		_, ok := rc.SurfaceConfig(24)
		test.ExpectFailure(t, ok, tt.name)
	}
}

func TestInitNoStencil(t *testing.T) {
	gl, dpy := newMocks()
	gl.Integers[gpu.STENCIL_BITS] = 0

	opts := glx.DefaultSettings()
	opts.NoStencil = true
	rc := glx.NewRenderContext(gl, dpy, opts)
	test.DemandSuccess(t, rc.Init(true))
	test.ExpectEquality(t, calls(gl, "Clear[1024]"), 0)
}

func TestInitMissingDepth32(t *testing.T) {
	gl, dpy := newMocks()
	dpy.Configs = []mock.Config{mock.RGBConfig(24)}

	// translucent windows are degraded but rendering is possible
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	test.DemandSuccess(t, rc.Init(true))
	_, ok := rc.SurfaceConfig(32)
	test.ExpectFailure(t, ok)

	var tex *glx.BoundTexture
	test.ExpectFailure(t, rc.BindPixmap(&tex, pixmap32, glx.Geometry{}))
	test.DemandSuccess(t, rc.BindPixmap(&tex, pixmap24, glx.Geometry{}))
}

func TestDestroy(t *testing.T) {
	rc, gl, dpy := newContext(t, glx.DefaultSettings())

	var texA, texB *glx.BoundTexture
	test.DemandSuccess(t, rc.BindPixmap(&texA, pixmap24, glx.Geometry{}))
	test.DemandSuccess(t, rc.BindPixmap(&texB, pixmap32, glx.Geometry{}))
	test.DemandSuccess(t, rc.InitBlur())

	var cache glx.BlurCache
	test.DemandSuccess(t, rc.BlurRegion(rect(10, 10, 100, 100), 0, 1, nil, &cache))

	_, err := rc.LoadMainProgram("", "uniform float opacity;\nvoid main() {}\n")
	test.DemandSuccess(t, err)

	test.ExpectInequality(t, gl.LiveObjects(), 0)
	test.ExpectEquality(t, dpy.LiveGLXPixmaps(), 2)

	rc.Destroy()

	test.ExpectEquality(t, gl.LiveObjects(), 0)
	test.ExpectEquality(t, dpy.LiveGLXPixmaps(), 0)
	test.ExpectFailure(t, dpy.ContextLive)
	test.ExpectFailure(t, rc.IsRenderReady())
	test.ExpectFailure(t, rc.BlurReady())
	test.ExpectFailure(t, texA.IsBound())
	test.ExpectEquality(t, texA.Texture(), 0)

	// destroying twice is harmless
	rc.Destroy()
	expectValidUse(t, gl)
}

func TestDestroyThenInit(t *testing.T) {
	rc, gl, dpy := newContext(t, glx.DefaultSettings())

	var tex *glx.BoundTexture
	test.DemandSuccess(t, rc.BindPixmap(&tex, pixmap24, glx.Geometry{}))
	test.DemandSuccess(t, rc.InitBlur())

	rc.Destroy()
	test.DemandSuccess(t, rc.Init(true))

	test.ExpectEquality(t, dpy.ContextsCreated, 2)
	test.ExpectSuccess(t, rc.IsRenderReady())

	// no blur programs survive
	test.ExpectFailure(t, rc.BlurReady())
	test.ExpectEquality(t, gl.ProgramsLinked(), 0)
	test.ExpectFailure(t, rc.BlurRegion(rect(0, 0, 10, 10), 0, 1, nil, nil))

	// the old binding is rebound from scratch
	test.DemandSuccess(t, rc.BindPixmap(&tex, pixmap24, glx.Geometry{}))
	test.ExpectSuccess(t, tex.IsBound())
	test.ExpectEquality(t, dpy.LiveGLXPixmaps(), 1)

	test.DemandSuccess(t, rc.InitBlur())
	test.ExpectEquality(t, gl.ProgramsLinked(), 1)

	expectValidUse(t, gl)
}

func TestReinit(t *testing.T) {
	opts := glx.DefaultSettings()
	opts.VSync = vsync.SwapInterval
	rc, gl, dpy := newContext(t, opts)

	test.DemandSuccess(t, rc.VSync().Init())
	test.ExpectEquality(t, dpy.Interval, 1)

	test.DemandSuccess(t, rc.Reinit(true))
	test.ExpectSuccess(t, rc.IsRenderReady())
	test.ExpectSuccess(t, rc.VSync().Active())
	test.ExpectEquality(t, dpy.ContextsCreated, 2)

	// set on init, cleared on deinit, set again
	test.ExpectEquality(t, dpy.IntervalRequests, 3)
	test.ExpectEquality(t, dpy.Interval, 1)

	// failure to create the context again
	dpy.FailContext = true
	test.ExpectFailure(t, rc.Reinit(true))
	test.ExpectFailure(t, rc.VSync().Active())
	test.ExpectFailure(t, dpy.ContextLive)

	expectValidUse(t, gl)
}

func TestSetBlur(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	test.DemandSuccess(t, rc.InitBlur())
	test.ExpectEquality(t, gl.ProgramsLinked(), 1)

	rc.SetBlur(blur.Kawase{Iterations: 2, Offset: 2})
	test.ExpectFailure(t, rc.BlurReady())
	test.ExpectEquality(t, gl.ProgramsLinked(), 0)

	test.DemandSuccess(t, rc.InitBlur())
	test.ExpectEquality(t, gl.ProgramsLinked(), 2)
}

func TestErrorsDrained(t *testing.T) {
	rc, gl, _ := newContext(t, glx.DefaultSettings())
	gl.PendingErrors = []gpu.Enum{0x0500, 0x0502}
	test.DemandSuccess(t, rc.DimRegion(rect(0, 0, 10, 10), 0, 0.5, nil))
	test.ExpectEquality(t, len(gl.PendingErrors), 0)
}
