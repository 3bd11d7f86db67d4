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

package config

import (
	"strings"

	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/damage"
	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/paths"
	"github.com/jetsetilly/glimmer/prefs"
	"github.com/jetsetilly/glimmer/vsync"
)

// Blur methods accepted by the blur.method value.
const (
	MethodConvolution = "convolution"
	MethodKawase      = "kawase"
)

// the largest value accepted by glx.max-buffer-age
const maxBufferAgeLimit = 16

// Options is the configuration of the rendering backend.
type Options struct {
	dsk *prefs.Disk

	BlurMethod     prefs.String
	BlurKernels    prefs.String
	BlurStrength   prefs.Int
	BlurIterations prefs.Int
	BlurOffset     prefs.Float

	SwapMethod    prefs.String
	MaxBufferAge  prefs.Int
	NoStencil     prefs.Bool
	UseGPUShader4 prefs.Bool

	VSync prefs.String
}

func (o *Options) String() string {
	return o.dsk.String()
}

// NewOptions is the preferred method of initialisation for the Options type.
// The path is the location of the preferences file. If it is empty the
// default preferences file in the resource directory is used.
//
// Values are not loaded from disk until Load() is called.
func NewOptions(pth string) (*Options, error) {
	o := &Options{}
	o.SetDefaults()

	o.BlurStrength.SetRange(0, blur.MaxStrength)
	o.BlurIterations.SetRange(1, blur.MaxIterations)
	o.MaxBufferAge.SetRange(1, maxBufferAgeLimit)

	o.BlurMethod.SetHookPre(func(v prefs.Value) error {
		switch v.(string) {
		case MethodConvolution, MethodKawase:
			return nil
		}
		return curated.Errorf("config: unrecognised blur method (%s)", v)
	})

	o.BlurKernels.SetHookPre(func(v prefs.Value) error {
		if _, err := blur.ParseKernels(v.(string)); err != nil {
			return curated.Errorf("config: %v", err)
		}
		return nil
	})

	o.BlurOffset.SetHookPre(func(v prefs.Value) error {
		if v.(float64) <= 0.0 {
			return curated.Errorf("config: blur offset must be positive")
		}
		return nil
	})

	o.SwapMethod.SetHookPre(func(v prefs.Value) error {
		m, err := ParseSwapMethod(v.(string))
		if err != nil {
			return err
		}
		if max := o.MaxBufferAge.Get().(int); m > max {
			return curated.Errorf("config: swap method (%d) greater than the maximum buffer age (%d)", m, max)
		}
		return nil
	})

	o.MaxBufferAge.SetHookPre(func(v prefs.Value) error {
		m, err := ParseSwapMethod(o.SwapMethod.String())
		if err == nil && m > v.(int) {
			return curated.Errorf("config: maximum buffer age (%d) less than the swap method (%d)", v, m)
		}
		return nil
	})

	o.VSync.SetHookPre(func(v prefs.Value) error {
		if _, err := vsync.ParseMethod(v.(string)); err != nil {
			return curated.Errorf("config: %v", err)
		}
		return nil
	})

	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, curated.Errorf("config: %v", err)
		}
	}

	var err error
	o.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("config: %v", err)
	}

	for _, e := range []struct {
		key string
		p   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{"blur.method", &o.BlurMethod},
		{"blur.kernels", &o.BlurKernels},
		{"blur.strength", &o.BlurStrength},
		{"blur.iterations", &o.BlurIterations},
		{"blur.offset", &o.BlurOffset},
		{"glx.swap-method", &o.SwapMethod},
		{"glx.max-buffer-age", &o.MaxBufferAge},
		{"glx.no-stencil", &o.NoStencil},
		{"glx.use-gpushader4", &o.UseGPUShader4},
		{"vsync", &o.VSync},
	} {
		if err := o.dsk.Add(e.key, e.p); err != nil {
			return nil, curated.Errorf("config: %v", err)
		}
	}

	return o, nil
}

// SetDefaults sets every value to its default. Hooks are not bypassed so
// the defaults are set in an order that satisfies them.
func (o *Options) SetDefaults() {
	o.BlurMethod.Set(MethodConvolution)
	o.BlurKernels.Set("3x3box")
	o.BlurStrength.Set(0)
	o.BlurIterations.Set(3)
	o.BlurOffset.Set(2.5)
	o.SwapMethod.Set("undefined")
	o.MaxBufferAge.Set(damage.MaxBufferAge)
	o.NoStencil.Set(false)
	o.UseGPUShader4.Set(false)
	o.VSync.Set(vsync.None.String())
}

// Path returns the location of the preferences file.
func (o *Options) Path() string {
	return o.dsk.Path()
}

// Load values from the preferences file and from the prefs command line
// stack. A missing file is not an error.
func (o *Options) Load() error {
	// the swap method is reset so that the maximum buffer age can be
	// lowered by the file
	if err := o.SwapMethod.Set("undefined"); err != nil {
		return err
	}
	if err := o.dsk.Load(); err != nil {
		return curated.Errorf("config: %v", err)
	}
	logger.Logf(logger.Allow, "config", "loaded %s", o.dsk.Path())
	return nil
}

// Save values to the preferences file.
func (o *Options) Save() error {
	if err := o.dsk.Save(); err != nil {
		return curated.Errorf("config: %v", err)
	}
	return nil
}

// Blur returns the blur method described by the blur values.
func (o *Options) Blur() (blur.Method, error) {
	switch strings.TrimSpace(o.BlurMethod.String()) {
	case MethodConvolution:
		k, err := blur.ParseKernels(o.BlurKernels.String())
		if err != nil {
			return nil, curated.Errorf("config: %v", err)
		}
		return blur.Convolution{Kernels: k}, nil
	case MethodKawase:
		if n := o.BlurStrength.Get().(int); n > 0 {
			return blur.Strength(n), nil
		}
		return blur.Kawase{
			Iterations: o.BlurIterations.Get().(int),
			Offset:     o.BlurOffset.Get().(float64),
		}, nil
	}
	return nil, curated.Errorf("config: unrecognised blur method (%s)", o.BlurMethod.String())
}

// Settings returns the glx settings described by the options.
func (o *Options) Settings() (glx.Settings, error) {
	s := glx.DefaultSettings()

	var err error

	s.SwapMethod, err = ParseSwapMethod(o.SwapMethod.String())
	if err != nil {
		return glx.Settings{}, err
	}
	s.MaxBufferAge = o.MaxBufferAge.Get().(int)
	s.NoStencil = o.NoStencil.Get().(bool)
	s.UseGPUShader4 = o.UseGPUShader4.Get().(bool)

	s.VSync, err = vsync.ParseMethod(o.VSync.String())
	if err != nil {
		return glx.Settings{}, curated.Errorf("config: %v", err)
	}

	s.Blur, err = o.Blur()
	if err != nil {
		return glx.Settings{}, err
	}

	return s, nil
}
