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
	"image"

	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/damage"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/vsync"
)

const textureFromPixmap = "GLX_EXT_texture_from_pixmap"
const nonPowerOfTwo = "GL_ARB_texture_non_power_of_two"

// RenderContext is the single GL context used for compositing, together with
// every GPU object that depends on it.
type RenderContext struct {
	gl  gpu.GL
	dpy gpu.Display

	opts  Settings
	vsync *vsync.Syncer

	// GLX extension checked. unlike the other fields this survives Destroy()
	glxChecked bool

	// the GL context has been created and the GL entry points loaded
	contextLive bool

	// Init() has completed with needRender set
	renderReady bool

	// capabilities discovered during Init()
	npot   bool
	binder gpu.TexImageBinder

	// best configuration for each depth. a nil entry means that there is no
	// configuration for that depth
	configs [gpu.MaxDepth + 1]*SurfaceConfig

	rootWidth  int
	rootHeight int

	history *damage.History

	// compiled blur pipeline. nil if InitBlur() has not been called
	blur blurPasses

	// objects created on behalf of the caller. released by Destroy()
	textures map[*BoundTexture]bool
	caches   map[*BlurCache]bool
	programs map[*MainProgram]bool
}

// NewRenderContext is the preferred method of initialisation for the
// RenderContext type. The GL context is not created until Init() is called.
func NewRenderContext(gl gpu.GL, dpy gpu.Display, opts Settings) *RenderContext {
	if opts.MaxBufferAge < 1 {
		opts.MaxBufferAge = damage.MaxBufferAge
	}
	return &RenderContext{
		gl:       gl,
		dpy:      dpy,
		opts:     opts,
		vsync:    vsync.NewSyncer(dpy, opts.VSync),
		history:  damage.NewHistory(opts.MaxBufferAge),
		textures: make(map[*BoundTexture]bool),
		caches:   make(map[*BlurCache]bool),
		programs: make(map[*MainProgram]bool),
	}
}

// Settings returns the settings of the context.
func (rc *RenderContext) Settings() Settings {
	return rc.opts
}

// SetBlur changes the blur method. Any compiled blur programs are released
// and InitBlur() must be called again before the next call to BlurRegion().
func (rc *RenderContext) SetBlur(method blur.Method) {
	rc.freeBlur()
	rc.opts.Blur = method
}

// VSync returns the synchroniser for the context. It should be initialised
// after Init() and is reinitialised by Reinit().
func (rc *RenderContext) VSync() *vsync.Syncer {
	return rc.vsync
}

// RootSize returns the size of the root window as last reported to the
// context.
func (rc *RenderContext) RootSize() (int, int) {
	return rc.rootWidth, rc.rootHeight
}

// NonPowerOfTwo returns true if the GL supports textures with dimensions
// that are not a power of two.
func (rc *RenderContext) NonPowerOfTwo() bool {
	return rc.npot
}

// IsRenderReady returns true if the context has been initialised for
// rendering.
func (rc *RenderContext) IsRenderReady() bool {
	return rc.renderReady
}

// Init creates the GL context. If needRender is true the context is also
// prepared for drawing: the required extensions are checked, a framebuffer
// configuration is chosen for every depth, and the projection is set to
// the size of the root window.
//
// Calling Init on a context that is already initialised completes any
// preparation not yet done. On error the context is destroyed.
func (rc *RenderContext) Init(needRender bool) (rerr error) {
	defer func() {
		if rerr != nil {
			logger.Errorf(logger.Allow, "glx", "%v", rerr)
			rc.Destroy()
		}
	}()

	if !rc.glxChecked {
		if !rc.dpy.HasGLX() {
			return CapabilityError.Errorf(NoGLX)
		}
		rc.glxChecked = true
	}

	if rc.opts.SwapMethod > rc.opts.MaxBufferAge {
		return CapabilityError.Errorf("glx: swap method (%d) is greater than the maximum buffer age (%d)", rc.opts.SwapMethod, rc.opts.MaxBufferAge)
	}

	visual, err := rc.dpy.RootVisual()
	if err != nil {
		return QueryError.Errorf("glx: %v", err)
	}

	if needRender {
		if !visual.GL {
			return CapabilityError.Errorf("glx: root visual %#x does not support GL", visual.ID)
		}
		if !visual.DoubleBuffer {
			return CapabilityError.Errorf("glx: root visual %#x is not double buffered", visual.ID)
		}
		if !rc.dpy.HasExtension(textureFromPixmap) {
			return CapabilityError.Errorf("glx: no %s extension", textureFromPixmap)
		}
	}

	if !rc.contextLive {
		if err := rc.dpy.CreateContext(); err != nil {
			return CapabilityError.Errorf("glx: %v", err)
		}
		rc.contextLive = true

		if err := rc.gl.Init(); err != nil {
			return CapabilityError.Errorf("glx: %v", err)
		}
		logger.Logf(logger.Allow, "glx", "context created for visual %#x (depth %d)", visual.ID, visual.Depth)
	}

	if !needRender || rc.renderReady {
		return nil
	}

	if !rc.opts.NoStencil && rc.gl.GetInteger(gpu.STENCIL_BITS) == 0 {
		return CapabilityError.Errorf("glx: no stencil buffer")
	}

	rc.npot = rc.gl.HasExtension(nonPowerOfTwo)
	logger.Debugf(logger.Allow, "glx", "non-power-of-two textures: %v", rc.npot)

	rc.binder, err = rc.dpy.ResolveTexImageBinder()
	if err != nil {
		return CapabilityError.Errorf("glx: %v", err)
	}

	if err := rc.negotiate(visual.Depth); err != nil {
		return err
	}

	rc.OnRootResize(rc.dpy.RootSize())

	rc.gl.Disable(gpu.DEPTH_TEST)
	rc.gl.DepthMask(false)
	rc.gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.REPLACE)
	rc.gl.Disable(gpu.BLEND)

	if !rc.opts.NoStencil {
		rc.gl.Clear(gpu.STENCIL_BUFFER_BIT)
		rc.gl.Disable(gpu.STENCIL_TEST)
		rc.gl.StencilMask(0x1)
		rc.gl.StencilFunc(gpu.EQUAL, 0x1, 0x1)
	}

	rc.gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	rc.renderReady = true
	rc.checkErrors("init")

	return nil
}

// Destroy releases every GPU object created by the context and then the GL
// context itself. Textures bound with BindPixmap() are released and must be
// bound again after the next call to Init().
//
// It is safe to call Destroy on a context that is not initialised.
func (rc *RenderContext) Destroy() {
	if rc.contextLive {
		for tex := range rc.textures {
			rc.FreeTexture(tex)
		}
		for cache := range rc.caches {
			rc.FreeBlurCache(cache)
		}
		rc.freeBlur()
		for prog := range rc.programs {
			rc.FreeMainProgram(prog)
		}
		rc.checkErrors("destroy")
	}

	clear(rc.textures)
	clear(rc.caches)
	clear(rc.programs)

	for i := range rc.configs {
		rc.configs[i] = nil
	}
	rc.binder = nil
	rc.npot = false
	rc.renderReady = false
	rc.history.Reset()

	if rc.contextLive {
		rc.dpy.DestroyContext()
		rc.contextLive = false
	}
}

// Reinit destroys and recreates the context. Synchronisation is stopped
// before the context is destroyed and restarted afterwards.
func (rc *RenderContext) Reinit(needRender bool) error {
	rc.vsync.Deinit()
	rc.Destroy()

	if err := rc.Init(needRender); err != nil {
		return err
	}

	if err := rc.vsync.Init(); err != nil {
		return curated.Errorf("glx: %v", err)
	}

	return nil
}

// OnRootResize must be called whenever the size of the root window changes.
func (rc *RenderContext) OnRootResize(width, height int) {
	rc.rootWidth = width
	rc.rootHeight = height

	rc.gl.Viewport(0, 0, int32(width), int32(height))

	rc.gl.MatrixMode(gpu.PROJECTION)
	rc.gl.LoadIdentity()
	rc.gl.Ortho(0, float64(width), 0, float64(height), -1000.0, 1000.0)

	rc.gl.MatrixMode(gpu.MODELVIEW)
	rc.gl.LoadIdentity()

	logger.Debugf(logger.Allow, "glx", "root size %dx%d", width, height)
}

func (rc *RenderContext) screen() image.Rectangle {
	return image.Rect(0, 0, rc.rootWidth, rc.rootHeight)
}

// maximum number of errors collected by one call to checkErrors(). GetError()
// can report errors indefinitely if there is no current context
const maxErrorChecks = 16

// log any errors set by the GL since the last check
func (rc *RenderContext) checkErrors(op string) {
	for i := 0; i < maxErrorChecks; i++ {
		e := rc.gl.GetError()
		if e == gpu.NO_ERROR {
			return
		}
		logger.Warnf(logger.Allow, "glx", "GL error %#04x after %s", e, op)
	}
}
