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

package mock

import (
	"fmt"

	"github.com/jetsetilly/glimmer/gpu"
)

// Config is a framebuffer configuration offered by the mock Display.
type Config struct {
	Attribs map[int]int

	// depth of the associated X visual. zero means there is no visual
	VisualDepth int

	// FailAttrib causes every attribute query to fail
	FailAttrib bool
}

// RGBConfig returns a configuration that binds to RGB textures of the
// specified depth.
func RGBConfig(depth int) Config {
	return Config{
		Attribs: map[int]int{
			gpu.GLX_RED_SIZE:                    8,
			gpu.GLX_BUFFER_SIZE:                 depth,
			gpu.GLX_ALPHA_SIZE:                  0,
			gpu.GLX_DOUBLEBUFFER:                1,
			gpu.GLX_STENCIL_SIZE:                8,
			gpu.GLX_DEPTH_SIZE:                  24,
			gpu.GLX_BIND_TO_TEXTURE_RGB_EXT:     1,
			gpu.GLX_BIND_TO_TEXTURE_RGBA_EXT:    0,
			gpu.GLX_BIND_TO_TEXTURE_TARGETS_EXT: gpu.GLX_TEXTURE_2D_BIT_EXT | gpu.GLX_TEXTURE_RECTANGLE_BIT_EXT,
			gpu.GLX_Y_INVERTED_EXT:              0,
		},
		VisualDepth: depth,
	}
}

// RGBAConfig returns a configuration that binds to RGBA textures with a
// buffer size of 32 bits.
func RGBAConfig() Config {
	c := RGBConfig(32)
	c.Attribs[gpu.GLX_ALPHA_SIZE] = 8
	c.Attribs[gpu.GLX_BIND_TO_TEXTURE_RGB_EXT] = 0
	c.Attribs[gpu.GLX_BIND_TO_TEXTURE_RGBA_EXT] = 1
	return c
}

// PixmapInfo is the geometry of a pixmap known to the mock Display.
type PixmapInfo struct {
	Width, Height, Depth int
}

type glxPixmap struct {
	pixmap gpu.Pixmap
	cfg    gpu.FBConfig
	format int
	target int
}

// Display implements the gpu.Display interface.
type Display struct {
	NoGLX      bool
	Visual     gpu.Visual
	Width      int
	Height     int
	Extensions map[string]bool
	Configs    []Config
	Pixmaps    map[gpu.Pixmap]PixmapInfo
	Age        int

	// failure injection
	FailVisual     bool
	FailContext    bool
	FailFBConfigs  bool
	FailGLXPixmap  bool
	NoTexImage     bool
	NoSwapControl  bool
	FailSwapPeriod bool

	// state and records
	ContextLive      bool
	ContextsCreated  int
	Bound            map[gpu.GLXPixmap]bool
	BindCalls        int
	ReleaseCalls     int
	GeometryQueries  int
	Swaps            int
	Interval         int
	IntervalRequests int

	glxPixmaps map[gpu.GLXPixmap]glxPixmap
	next       gpu.GLXPixmap
}

// NewDisplay is the preferred method of initialisation for the Display type.
// The display has a double buffered 24 bit root visual, a 1920x1080 root
// window, and a configuration for each of depth 24 and depth 32.
func NewDisplay() *Display {
	return &Display{
		Visual: gpu.Visual{
			ID:           0x21,
			Depth:        24,
			GL:           true,
			DoubleBuffer: true,
		},
		Width:  1920,
		Height: 1080,
		Extensions: map[string]bool{
			"GLX_EXT_texture_from_pixmap": true,
			"GLX_EXT_buffer_age":          true,
		},
		Configs:    []Config{RGBConfig(24), RGBAConfig()},
		Pixmaps:    make(map[gpu.Pixmap]PixmapInfo),
		Bound:      make(map[gpu.GLXPixmap]bool),
		glxPixmaps: make(map[gpu.GLXPixmap]glxPixmap),
		next:       0x1000,
	}
}

// LiveGLXPixmaps returns the number of GLX pixmaps that have been created
// and not destroyed.
func (d *Display) LiveGLXPixmaps() int {
	return len(d.glxPixmaps)
}

// GLXPixmapFormat returns the texture format and texture target that the GLX
// pixmap was created with.
func (d *Display) GLXPixmapFormat(p gpu.GLXPixmap) (format int, target int, ok bool) {
	g, ok := d.glxPixmaps[p]
	return g.format, g.target, ok
}

func (d *Display) HasGLX() bool {
	return !d.NoGLX
}

func (d *Display) RootVisual() (gpu.Visual, error) {
	if d.FailVisual {
		return gpu.Visual{}, fmt.Errorf("mock: no visual")
	}
	return d.Visual, nil
}

func (d *Display) RootSize() (int, int) {
	return d.Width, d.Height
}

func (d *Display) HasExtension(name string) bool {
	return d.Extensions[name]
}

func (d *Display) CreateContext() error {
	if d.FailContext {
		return fmt.Errorf("mock: context creation failed")
	}
	if !d.ContextLive {
		d.ContextLive = true
		d.ContextsCreated++
	}
	return nil
}

func (d *Display) DestroyContext() {
	d.ContextLive = false
}

func (d *Display) FBConfigs() ([]gpu.FBConfig, error) {
	if d.FailFBConfigs {
		return nil, fmt.Errorf("mock: no framebuffer configurations")
	}
	ids := make([]gpu.FBConfig, len(d.Configs))
	for i := range ids {
		ids[i] = gpu.FBConfig(i)
	}
	return ids, nil
}

func (d *Display) config(cfg gpu.FBConfig) (Config, error) {
	if int(cfg) < 0 || int(cfg) >= len(d.Configs) {
		return Config{}, fmt.Errorf("mock: unknown configuration %d", cfg)
	}
	return d.Configs[cfg], nil
}

func (d *Display) FBConfigAttrib(cfg gpu.FBConfig, attr int) (int, error) {
	c, err := d.config(cfg)
	if err != nil {
		return 0, err
	}
	if c.FailAttrib {
		return 0, fmt.Errorf("mock: attribute query failed")
	}
	return c.Attribs[attr], nil
}

func (d *Display) FBConfigVisualDepth(cfg gpu.FBConfig) (int, error) {
	c, err := d.config(cfg)
	if err != nil {
		return 0, err
	}
	if c.VisualDepth == 0 {
		return 0, fmt.Errorf("mock: no visual for configuration %d", cfg)
	}
	return c.VisualDepth, nil
}

func (d *Display) PixmapGeometry(pixmap gpu.Pixmap) (int, int, int, error) {
	d.GeometryQueries++
	p, ok := d.Pixmaps[pixmap]
	if !ok {
		return 0, 0, 0, fmt.Errorf("mock: bad pixmap %#x", uint32(pixmap))
	}
	return p.Width, p.Height, p.Depth, nil
}

func (d *Display) CreateGLXPixmap(cfg gpu.FBConfig, pixmap gpu.Pixmap, format, target int) (gpu.GLXPixmap, error) {
	if d.FailGLXPixmap {
		return 0, fmt.Errorf("mock: GLX pixmap creation failed")
	}
	if _, err := d.config(cfg); err != nil {
		return 0, err
	}
	d.next++
	d.glxPixmaps[d.next] = glxPixmap{pixmap: pixmap, cfg: cfg, format: format, target: target}
	return d.next, nil
}

func (d *Display) DestroyGLXPixmap(p gpu.GLXPixmap) {
	delete(d.glxPixmaps, p)
	delete(d.Bound, p)
}

func (d *Display) BufferAge() int {
	return d.Age
}

func (d *Display) SwapBuffers() {
	d.Swaps++
}

func (d *Display) BindTexImage(p gpu.GLXPixmap) {
	d.BindCalls++
	d.Bound[p] = true
}

func (d *Display) ReleaseTexImage(p gpu.GLXPixmap) {
	d.ReleaseCalls++
	delete(d.Bound, p)
}

func (d *Display) ResolveTexImageBinder() (gpu.TexImageBinder, error) {
	if d.NoTexImage {
		return nil, fmt.Errorf("mock: no texture from pixmap entry points")
	}
	return d, nil
}

func (d *Display) SwapInterval(interval int) error {
	d.IntervalRequests++
	if d.FailSwapPeriod {
		return fmt.Errorf("mock: swap interval rejected")
	}
	d.Interval = interval
	return nil
}

func (d *Display) ResolveSwapControl() (gpu.SwapControl, error) {
	if d.NoSwapControl {
		return nil, fmt.Errorf("mock: no swap control")
	}
	return d, nil
}

var _ gpu.Display = (*Display)(nil)
