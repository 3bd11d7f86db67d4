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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/config"
	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/prefs"
	"github.com/jetsetilly/glimmer/test"
	"github.com/jetsetilly/glimmer/vsync"
)

func newOptions(t *testing.T, contents string) *config.Options {
	t.Helper()
	pth := filepath.Join(t.TempDir(), "glimmer.toml")
	if contents != "" {
		test.DemandSuccess(t, os.WriteFile(pth, []byte(contents), 0600))
	}
	o, err := config.NewOptions(pth)
	test.DemandSuccess(t, err)
	return o
}

func TestDefaults(t *testing.T) {
	o := newOptions(t, "")
	test.DemandSuccess(t, o.Load())

	s, err := o.Settings()
	test.DemandSuccess(t, err)

	def := glx.DefaultSettings()
	test.ExpectEquality(t, s.SwapMethod, def.SwapMethod)
	test.ExpectEquality(t, s.MaxBufferAge, def.MaxBufferAge)
	test.ExpectEquality(t, s.NoStencil, false)
	test.ExpectEquality(t, s.UseGPUShader4, false)
	test.ExpectEquality(t, s.VSync, vsync.None)
	test.ExpectEquality(t, s.Blur.String(), def.Blur.String())
}

func TestLoad(t *testing.T) {
	o := newOptions(t, `vsync = "swap-interval"

[blur]
method = "kawase"
strength = 6

[glx]
swap-method = "buffer-age"
max-buffer-age = 8
no-stencil = true
use-gpushader4 = true
`)
	test.DemandSuccess(t, o.Load())

	s, err := o.Settings()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.SwapMethod, glx.SwapBufferAge)
	test.ExpectEquality(t, s.MaxBufferAge, 8)
	test.ExpectSuccess(t, s.NoStencil)
	test.ExpectSuccess(t, s.UseGPUShader4)
	test.ExpectEquality(t, s.VSync, vsync.SwapInterval)

	k, ok := s.Blur.(blur.Kawase)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, k, blur.Strength(6))

	// without a strength the iterations and offset are used
	test.DemandSuccess(t, o.BlurStrength.Set(0))
	test.DemandSuccess(t, o.BlurIterations.Set(4))
	test.DemandSuccess(t, o.BlurOffset.Set("1.5"))
	m, err := o.Blur()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.(blur.Kawase), blur.Kawase{Iterations: 4, Offset: 1.5})
}

func TestLoadKernels(t *testing.T) {
	o := newOptions(t, `[blur]
method = "convolution"
kernels = "3x3gaussian; 3,1,0.5,0.5"
`)
	test.DemandSuccess(t, o.Load())

	m, err := o.Blur()
	test.DemandSuccess(t, err)
	c, ok := m.(blur.Convolution)
	test.DemandSuccess(t, ok)
	test.DemandEquality(t, len(c.Kernels), 2)
	test.ExpectEquality(t, c.Kernels[0].Width, 3)
	test.ExpectEquality(t, c.Kernels[1].Height, 1)
	test.ExpectEquality(t, c.Kernels[1].String(), "3,1,0.5,0.5")
}

func TestLoadFailure(t *testing.T) {
	for _, contents := range []string{
		"vsync = \"sometimes\"\n",
		"[blur]\nmethod = \"gaussian\"\n",
		"[blur]\nkernels = \"3,3,1\"\n",
		"[blur]\nstrength = 21\n",
		"[blur]\noffset = 0.0\n",
		"[glx]\nswap-method = \"sometimes\"\n",
		"[glx]\nswap-method = 6\n",
		"[glx]\nmax-buffer-age = 0\n",
		"[glx\n",
	} {
		o := newOptions(t, contents)
		test.ExpectFailure(t, o.Load(), contents)
	}
}

func TestSwapMethodValidation(t *testing.T) {
	o := newOptions(t, "")

	// a fixed age must not be greater than the maximum buffer age
	test.ExpectFailure(t, o.SwapMethod.Set("7"))
	test.ExpectEquality(t, o.SwapMethod.String(), "undefined")
	test.DemandSuccess(t, o.MaxBufferAge.Set(8))
	test.ExpectSuccess(t, o.SwapMethod.Set("7"))

	// and the maximum can not be lowered below the swap method
	test.ExpectFailure(t, o.MaxBufferAge.Set(6))
	test.ExpectEquality(t, o.MaxBufferAge.Get().(int), 8)

	// buffer-age is not a fixed age
	test.ExpectSuccess(t, o.SwapMethod.Set("buffer-age"))
	test.ExpectSuccess(t, o.MaxBufferAge.Set(1))

	// both values in the same file load whatever their current values
	o = newOptions(t, "[glx]\nswap-method = 7\nmax-buffer-age = 8\n")
	test.DemandSuccess(t, o.Load())
	s, err := o.Settings()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.SwapMethod, 7)

	test.DemandSuccess(t, os.WriteFile(o.Path(), []byte("[glx]\nswap-method = 2\nmax-buffer-age = 3\n"), 0600))
	test.DemandSuccess(t, o.Load())
	s, err = o.Settings()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.SwapMethod, glx.SwapExchange)
	test.ExpectEquality(t, s.MaxBufferAge, 3)
}

func TestParseSwapMethod(t *testing.T) {
	for _, s := range config.SwapMethodList {
		m, err := config.ParseSwapMethod(s)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, config.SwapMethodString(m), s)
	}

	m, err := config.ParseSwapMethod(" 4 ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, 4)
	test.ExpectEquality(t, config.SwapMethodString(m), "4")

	m, err = config.ParseSwapMethod("EXCHANGE")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, glx.SwapExchange)

	_, err = config.ParseSwapMethod("-2")
	test.ExpectFailure(t, err)
	_, err = config.ParseSwapMethod("")
	test.ExpectFailure(t, err)
}

func TestCommandLine(t *testing.T) {
	o := newOptions(t, "[blur]\nmethod = \"convolution\"\n")

	prefs.PushCommandLineStack("blur.method::kawase; blur.iterations::4; unknown.key::1")
	err := o.Load()
	unused := prefs.PopCommandLineStack()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, unused, "unknown.key::1")

	m, err := o.Blur()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.(blur.Kawase).Iterations, 4)
}

func TestSave(t *testing.T) {
	o := newOptions(t, "")
	test.DemandSuccess(t, o.BlurMethod.Set(config.MethodKawase))
	test.DemandSuccess(t, o.BlurStrength.Set(12))
	test.DemandSuccess(t, o.NoStencil.Set(true))
	test.DemandSuccess(t, o.Save())

	p, err := config.NewOptions(o.Path())
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Load())
	test.ExpectEquality(t, p.String(), o.String())

	s, err := p.Settings()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.Blur.(blur.Kawase), blur.Strength(12))
	test.ExpectSuccess(t, s.NoStencil)
}
