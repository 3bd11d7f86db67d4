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
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
)

// Candidate is the set of attributes of a framebuffer configuration that
// are used to rank it against other configurations.
type Candidate struct {
	RedSize      int
	BufferSize   int
	AlphaSize    int
	DepthSize    int
	StencilSize  int
	DoubleBuffer bool

	BindRGB    bool
	BindRGBA   bool
	BindMipmap bool
	Targets    int
	YInverted  bool
}

// the only red channel size accepted. configurations with deeper colour
// channels are not suitable for binding to pixmaps
const redSize = 8

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CompareCandidates returns a positive value if a is better than b, a
// negative value if b is better than a, and zero if neither is better.
//
// Attributes are compared in order, the first difference deciding: an
// eight bit red channel, RGBA binding, double buffering, stencil size,
// depth buffer size, and finally the absence of mipmap binding.
func CompareCandidates(a, b Candidate) int {
	keys := [...][2]int{
		{boolRank(a.RedSize == redSize), boolRank(b.RedSize == redSize)},
		{boolRank(a.BindRGBA), boolRank(b.BindRGBA)},
		{boolRank(a.DoubleBuffer), boolRank(b.DoubleBuffer)},
		{a.StencilSize, b.StencilSize},
		{a.DepthSize, b.DepthSize},
		{boolRank(!a.BindMipmap), boolRank(!b.BindMipmap)},
	}
	for _, k := range keys {
		if k[0] > k[1] {
			return 1
		}
		if k[0] < k[1] {
			return -1
		}
	}
	return 0
}

// SurfaceConfig is the framebuffer configuration chosen for a depth.
type SurfaceConfig struct {
	Config    gpu.FBConfig
	Candidate Candidate

	// GLX_TEXTURE_FORMAT_RGB_EXT or GLX_TEXTURE_FORMAT_RGBA_EXT
	Format int
}

// RGBA returns true if pixmaps bound with the configuration have an alpha
// channel.
func (cfg SurfaceConfig) RGBA() bool {
	return cfg.Format == gpu.GLX_TEXTURE_FORMAT_RGBA_EXT
}

// SurfaceConfig returns the configuration chosen for the depth. The bool is
// false if there is no configuration for the depth.
func (rc *RenderContext) SurfaceConfig(depth int) (SurfaceConfig, bool) {
	if depth < 0 || depth > gpu.MaxDepth || rc.configs[depth] == nil {
		return SurfaceConfig{}, false
	}
	return *rc.configs[depth], true
}

// query a configuration's attributes. the error is only returned for
// attributes without which the configuration cannot be used
func (rc *RenderContext) candidate(cfg gpu.FBConfig) (Candidate, error) {
	var c Candidate
	var err error

	c.BufferSize, err = rc.dpy.FBConfigAttrib(cfg, gpu.GLX_BUFFER_SIZE)
	if err != nil {
		return c, QueryError.Errorf("glx: fbconfig: %v", err)
	}
	c.AlphaSize, err = rc.dpy.FBConfigAttrib(cfg, gpu.GLX_ALPHA_SIZE)
	if err != nil {
		return c, QueryError.Errorf("glx: fbconfig: %v", err)
	}
	c.Targets, err = rc.dpy.FBConfigAttrib(cfg, gpu.GLX_BIND_TO_TEXTURE_TARGETS_EXT)
	if err != nil {
		return c, QueryError.Errorf("glx: fbconfig: %v", err)
	}

	attr := func(a int) int {
		v, _ := rc.dpy.FBConfigAttrib(cfg, a)
		return v
	}
	c.RedSize = attr(gpu.GLX_RED_SIZE)
	c.DepthSize = attr(gpu.GLX_DEPTH_SIZE)
	c.StencilSize = attr(gpu.GLX_STENCIL_SIZE)
	c.DoubleBuffer = attr(gpu.GLX_DOUBLEBUFFER) != 0
	c.BindRGB = attr(gpu.GLX_BIND_TO_TEXTURE_RGB_EXT) != 0
	c.BindRGBA = attr(gpu.GLX_BIND_TO_TEXTURE_RGBA_EXT) != 0
	c.BindMipmap = attr(gpu.GLX_BIND_TO_MIPMAP_TEXTURE_EXT) != 0
	c.YInverted = attr(gpu.GLX_Y_INVERTED_EXT) != 0

	return c, nil
}

// choose the best configuration for every depth. it is an error for there
// to be no configuration for the default depth
func (rc *RenderContext) negotiate(defaultDepth int) error {
	cfgs, err := rc.dpy.FBConfigs()
	if err != nil {
		return CapabilityError.Errorf("glx: fbconfig: %v", err)
	}

	for _, cfg := range cfgs {
		// multisampled configurations can not be bound to textures
		if samples, err := rc.dpy.FBConfigAttrib(cfg, gpu.GLX_SAMPLES); err == nil && samples > 1 {
			continue
		}

		c, err := rc.candidate(cfg)
		if err != nil {
			logger.Tracef(logger.Allow, "glx: fbconfig", "skipping %#x: %v", int(cfg), err)
			continue
		}

		if c.RedSize != redSize {
			logger.Tracef(logger.Allow, "glx: fbconfig", "skipping %#x: red size is %d", int(cfg), c.RedSize)
			continue
		}

		visualDepth, err := rc.dpy.FBConfigVisualDepth(cfg)
		if err != nil {
			logger.Tracef(logger.Allow, "glx: fbconfig", "skipping %#x: %v", int(cfg), err)
			continue
		}

		rgba := c.BufferSize >= 32 && c.AlphaSize > 0 && c.BindRGBA

		depth := c.BufferSize - c.AlphaSize
		if depth == visualDepth && depth < 32 && c.BindRGB {
			rc.offer(depth, cfg, c, gpu.GLX_TEXTURE_FORMAT_RGB_EXT)
		}

		if c.BufferSize == visualDepth && rgba {
			rc.offer(c.BufferSize, cfg, c, gpu.GLX_TEXTURE_FORMAT_RGBA_EXT)
		}
	}

	if defaultDepth < 0 || defaultDepth > gpu.MaxDepth || rc.configs[defaultDepth] == nil {
		return CapabilityError.Errorf(NoConfig, defaultDepth)
	}

	if rc.configs[32] == nil {
		logger.Errorf(logger.Allow, "glx: fbconfig", "no configuration for depth 32. translucent windows will not be drawn correctly")
	}

	for depth, cfg := range rc.configs {
		if cfg != nil {
			logger.Debugf(logger.Allow, "glx: fbconfig", "depth %d: %#x (rgba: %v, targets: %#x, y-inverted: %v)",
				depth, int(cfg.Config), cfg.RGBA(), cfg.Candidate.Targets, cfg.Candidate.YInverted)
		}
	}

	return nil
}

// offer a configuration for a depth. it replaces the current configuration
// only if it is strictly better
func (rc *RenderContext) offer(depth int, cfg gpu.FBConfig, c Candidate, format int) {
	if depth < 0 || depth > gpu.MaxDepth {
		return
	}

	if cur := rc.configs[depth]; cur != nil {
		if CompareCandidates(c, cur.Candidate) <= 0 {
			return
		}
		logger.Tracef(logger.Allow, "glx: fbconfig", "depth %d: %#x replaces %#x", depth, int(cfg), int(cur.Config))
	}

	rc.configs[depth] = &SurfaceConfig{
		Config:    cfg,
		Candidate: c,
		Format:    format,
	}
}
