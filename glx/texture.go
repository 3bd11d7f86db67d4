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

// Geometry of a pixmap. Zero values mean that the geometry is not known and
// must be queried from the X server.
type Geometry struct {
	Width  int
	Height int
	Depth  int
}

func (g Geometry) complete() bool {
	return g.Width != 0 && g.Height != 0 && g.Depth != 0
}

// BoundTexture is a pixmap bound to a GL texture with
// GLX_EXT_texture_from_pixmap.
//
// The zero value is an unbound texture. A BoundTexture is created by
// BindPixmap() and belongs to the RenderContext that created it.
type BoundTexture struct {
	texture   gpu.Texture
	glxPixmap gpu.GLXPixmap
	pixmap    gpu.Pixmap
	target    gpu.Enum
	width     int
	height    int
	depth     int
	yInverted bool
	rgba      bool
}

// Texture returns the GL texture. Zero if there is no texture.
func (tex *BoundTexture) Texture() gpu.Texture {
	return tex.texture
}

// Pixmap returns the X pixmap the texture was last bound to.
func (tex *BoundTexture) Pixmap() gpu.Pixmap {
	return tex.pixmap
}

// IsBound returns true if the texture is bound to a pixmap.
func (tex *BoundTexture) IsBound() bool {
	return tex != nil && tex.texture != 0 && tex.glxPixmap != 0
}

// Target returns gpu.TEXTURE_2D or gpu.TEXTURE_RECTANGLE.
func (tex *BoundTexture) Target() gpu.Enum {
	return tex.target
}

// Geometry returns the size and depth of the bound pixmap.
func (tex *BoundTexture) Geometry() Geometry {
	return Geometry{Width: tex.width, Height: tex.height, Depth: tex.depth}
}

// YInverted returns true if the first row of the texture is the top row of
// the pixmap.
func (tex *BoundTexture) YInverted() bool {
	return tex.yInverted
}

// BindPixmap binds the pixmap to a texture. If *tex is nil a new BoundTexture
// is allocated. If the texture is already bound to the same pixmap the
// binding is refreshed so that the texture shows the current content of the
// pixmap.
//
// The texture object is reused for a different pixmap unless the new pixmap
// needs a different texture target. On error the GLX pixmap is released. The
// texture object is kept for reuse.
func (rc *RenderContext) BindPixmap(tex **BoundTexture, pixmap gpu.Pixmap, geom Geometry) (rerr error) {
	if !rc.renderReady {
		return CapabilityError.Errorf(NotInitialised)
	}

	if pixmap == 0 {
		return QueryError.Errorf("glx: texture: binding to pixmap 0")
	}

	if *tex == nil {
		*tex = &BoundTexture{}
	}
	ptex := *tex

	defer func() {
		if rerr != nil {
			logger.Errorf(logger.Allow, "glx: texture", "%v", rerr)
			rc.ReleasePixmap(ptex)
		}
	}()

	// a different pixmap needs a new GLX pixmap
	if ptex.texture != 0 && ptex.pixmap != pixmap {
		rc.ReleasePixmap(ptex)
	}

	needRelease := true

	if ptex.glxPixmap == 0 {
		needRelease = false

		if !geom.complete() {
			w, h, d, err := rc.dpy.PixmapGeometry(pixmap)
			if err != nil {
				return QueryError.Errorf("glx: texture: %v", err)
			}
			geom = Geometry{Width: w, Height: h, Depth: d}
		}

		if geom.Depth > gpu.MaxDepth {
			return CapabilityError.Errorf("glx: texture: unsupported depth (%d)", geom.Depth)
		}

		cfg, ok := rc.SurfaceConfig(geom.Depth)
		if !ok {
			return CapabilityError.Errorf(NoConfig, geom.Depth)
		}

		var target int
		switch {
		case cfg.Candidate.Targets&gpu.GLX_TEXTURE_2D_BIT_EXT != 0 && rc.npot:
			target = gpu.GLX_TEXTURE_2D_EXT
		case cfg.Candidate.Targets&gpu.GLX_TEXTURE_RECTANGLE_BIT_EXT != 0:
			target = gpu.GLX_TEXTURE_RECTANGLE_EXT
		case cfg.Candidate.Targets&gpu.GLX_TEXTURE_2D_BIT_EXT == 0:
			target = gpu.GLX_TEXTURE_RECTANGLE_EXT
		default:
			target = gpu.GLX_TEXTURE_2D_EXT
		}

		glxPixmap, err := rc.dpy.CreateGLXPixmap(cfg.Config, pixmap, cfg.Format, target)
		if err != nil {
			return ResourceError.Errorf("glx: texture: %v", err)
		}

		glTarget := gpu.Enum(gpu.TEXTURE_RECTANGLE)
		if target == gpu.GLX_TEXTURE_2D_EXT {
			glTarget = gpu.TEXTURE_2D
		}

		// a texture object can only be reused with the target it was
		// created for
		if ptex.texture != 0 && ptex.target != glTarget {
			rc.gl.DeleteTexture(ptex.texture)
			ptex.texture = 0
			delete(rc.textures, ptex)
		}

		ptex.glxPixmap = glxPixmap
		ptex.pixmap = pixmap
		ptex.target = glTarget
		ptex.width = geom.Width
		ptex.height = geom.Height
		ptex.depth = geom.Depth
		ptex.yInverted = cfg.Candidate.YInverted
		ptex.rgba = cfg.RGBA()

		logger.Debugf(logger.Allow, "glx: texture", "pixmap %#x (%dx%d depth %d) using target %#x",
			uint32(pixmap), geom.Width, geom.Height, geom.Depth, ptex.target)
	}

	rc.gl.Enable(ptex.target)
	defer rc.gl.Disable(ptex.target)

	if ptex.texture == 0 {
		needRelease = false

		ptex.texture = rc.gl.GenTexture()
		if ptex.texture == 0 {
			return ResourceError.Errorf("glx: texture: cannot create texture")
		}
		rc.textures[ptex] = true

		rc.gl.BindTexture(ptex.target, ptex.texture)
		rc.gl.TexParameteri(ptex.target, gpu.MIN_FILTER, gpu.NEAREST)
		rc.gl.TexParameteri(ptex.target, gpu.MAG_FILTER, gpu.NEAREST)
		rc.gl.TexParameteri(ptex.target, gpu.WRAP_S, gpu.CLAMP_TO_EDGE)
		rc.gl.TexParameteri(ptex.target, gpu.WRAP_T, gpu.CLAMP_TO_EDGE)
		rc.gl.BindTexture(ptex.target, 0)
	}

	rc.gl.BindTexture(ptex.target, ptex.texture)

	// the first binding of a new GLX pixmap is already current
	if needRelease {
		rc.binder.ReleaseTexImage(ptex.glxPixmap)
	}
	rc.binder.BindTexImage(ptex.glxPixmap)

	rc.gl.BindTexture(ptex.target, 0)

	rc.checkErrors("bind pixmap")

	return nil
}

// ReleasePixmap destroys the GLX pixmap of the texture. The texture object
// is kept and will be reused by the next call to BindPixmap().
func (rc *RenderContext) ReleasePixmap(tex *BoundTexture) {
	if tex == nil {
		return
	}

	if tex.glxPixmap != 0 && tex.texture != 0 && rc.binder != nil {
		rc.gl.BindTexture(tex.target, tex.texture)
		rc.binder.ReleaseTexImage(tex.glxPixmap)
		rc.gl.BindTexture(tex.target, 0)
	}

	if tex.glxPixmap != 0 {
		rc.dpy.DestroyGLXPixmap(tex.glxPixmap)
		tex.glxPixmap = 0
	}
}

// FreeTexture releases the pixmap and deletes the texture object.
func (rc *RenderContext) FreeTexture(tex *BoundTexture) {
	if tex == nil {
		return
	}

	rc.ReleasePixmap(tex)

	if tex.texture != 0 {
		rc.gl.DeleteTexture(tex.texture)
		tex.texture = 0
	}
	delete(rc.textures, tex)
}
