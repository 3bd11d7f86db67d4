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

	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/gpu/mock"
	"github.com/jetsetilly/glimmer/test"
)

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func candidates() []glx.Candidate {
	var cs []glx.Candidate
	for _, red := range []int{8, 10} {
		for _, rgba := range []bool{false, true} {
			for _, dbl := range []bool{false, true} {
				for _, stencil := range []int{0, 8} {
					for _, depth := range []int{0, 16, 24} {
						for _, mipmap := range []bool{false, true} {
							cs = append(cs, glx.Candidate{
								RedSize:      red,
								BindRGBA:     rgba,
								DoubleBuffer: dbl,
								StencilSize:  stencil,
								DepthSize:    depth,
								BindMipmap:   mipmap,
							})
						}
					}
				}
			}
		}
	}
	return cs
}

func TestCompareCandidatesOrdering(t *testing.T) {
	cs := candidates()

	for _, a := range cs {
		test.ExpectEquality(t, glx.CompareCandidates(a, a), 0)

		for _, b := range cs {
			ab := sign(glx.CompareCandidates(a, b))
			ba := sign(glx.CompareCandidates(b, a))
			if !test.ExpectEquality(t, ab, -ba, a, b) {
				return
			}

			// a ten bit candidate never beats an eight bit candidate
			if a.RedSize != 8 && b.RedSize == 8 {
				test.ExpectEquality(t, ab, -1, a, b)
			}

			for _, c := range cs {
				bc := sign(glx.CompareCandidates(b, c))
				ac := sign(glx.CompareCandidates(a, c))

				// transitivity of better and of equivalence
				if ab > 0 && bc > 0 && ac <= 0 {
					t.Fatalf("ordering is not transitive: %v %v %v", a, b, c)
				}
				if ab == 0 && bc == 0 && ac != 0 {
					t.Fatalf("equivalence is not transitive: %v %v %v", a, b, c)
				}
			}
		}
	}
}

func TestCompareCandidatesRules(t *testing.T) {
	base := glx.Candidate{RedSize: 8}

	better := func(a, b glx.Candidate, tag string) {
		t.Helper()
		test.ExpectEquality(t, sign(glx.CompareCandidates(a, b)), 1, tag)
	}

	a := base
	a.BindRGBA = true
	b := base
	b.DoubleBuffer = true
	b.StencilSize = 8
	b.DepthSize = 24
	better(a, b, "rgba before double buffer")

	a = base
	a.DoubleBuffer = true
	b = base
	b.StencilSize = 8
	better(a, b, "double buffer before stencil")

	a = base
	a.StencilSize = 8
	b = base
	b.DepthSize = 24
	better(a, b, "stencil before depth")

	a = base
	a.DepthSize = 24
	a.BindMipmap = true
	b = base
	b.DepthSize = 16
	better(a, b, "depth before mipmap")

	a = base
	b = base
	b.BindMipmap = true
	better(a, b, "no mipmap")
}

func TestNegotiation(t *testing.T) {
	noStencil := mock.RGBConfig(24)
	noStencil.Attribs[gpu.GLX_STENCIL_SIZE] = 0

	deepRed := mock.RGBConfig(24)
	deepRed.Attribs[gpu.GLX_RED_SIZE] = 10
	deepRed.Attribs[gpu.GLX_STENCIL_SIZE] = 16
	deepRed.Attribs[gpu.GLX_DEPTH_SIZE] = 32

	multisample := mock.RGBConfig(24)
	multisample.Attribs[gpu.GLX_SAMPLES] = 4
	multisample.Attribs[gpu.GLX_STENCIL_SIZE] = 16

	broken := mock.RGBConfig(24)
	broken.FailAttrib = true

	noVisual := mock.RGBConfig(24)
	noVisual.VisualDepth = 0
	noVisual.Attribs[gpu.GLX_STENCIL_SIZE] = 16

	best := mock.RGBConfig(24)
	best.Attribs[gpu.GLX_Y_INVERTED_EXT] = 1

	// a 32 bit buffer with alpha is only an RGB config for depth 24 if the
	// visual is 24 bits deep
	argbVisual := mock.RGBAConfig()
	argbVisual.Attribs[gpu.GLX_BIND_TO_TEXTURE_RGB_EXT] = 1

	gl, dpy := newMocks()
	dpy.Configs = []mock.Config{noStencil, deepRed, multisample, broken, noVisual, best, argbVisual}

	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	test.DemandSuccess(t, rc.Init(true))

	cfg, ok := rc.SurfaceConfig(24)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, cfg.Config, gpu.FBConfig(5))
	test.ExpectSuccess(t, cfg.Candidate.YInverted)
	test.ExpectFailure(t, cfg.RGBA())

	cfg, ok = rc.SurfaceConfig(32)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, cfg.Config, gpu.FBConfig(6))
	test.ExpectSuccess(t, cfg.RGBA())
	test.ExpectEquality(t, cfg.Format, gpu.GLX_TEXTURE_FORMAT_RGBA_EXT)

	// the order in which configurations are found makes no difference
	gl, dpy = newMocks()
	dpy.Configs = []mock.Config{best, noStencil, argbVisual, deepRed}
	rc = glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	test.DemandSuccess(t, rc.Init(true))
	cfg, _ = rc.SurfaceConfig(24)
	test.ExpectEquality(t, cfg.Config, gpu.FBConfig(0))

	// out of range depths
	_, ok = rc.SurfaceConfig(-1)
	test.ExpectFailure(t, ok)
	_, ok = rc.SurfaceConfig(gpu.MaxDepth + 1)
	test.ExpectFailure(t, ok)
}

func TestNegotiationEqualCandidates(t *testing.T) {
	// the first of two equal configurations is kept
	gl, dpy := newMocks()
	dpy.Configs = []mock.Config{mock.RGBConfig(24), mock.RGBConfig(24), mock.RGBAConfig()}
	rc := glx.NewRenderContext(gl, dpy, glx.DefaultSettings())
	test.DemandSuccess(t, rc.Init(true))
	cfg, _ := rc.SurfaceConfig(24)
	test.ExpectEquality(t, cfg.Config, gpu.FBConfig(0))
}
