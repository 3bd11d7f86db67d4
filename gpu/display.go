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

package gpu

// Display is the windowing system side of the renderer. It owns the
// connection to the X server and the GLX context.
type Display interface {
	// HasGLX returns true if the server supports the GLX extension.
	HasGLX() bool

	// RootVisual describes the default visual of the screen.
	RootVisual() (Visual, error)

	// RootSize returns the dimensions of the root window.
	RootSize() (width, height int)

	// HasExtension returns true if the named GLX extension is available.
	HasExtension(name string) bool

	// CreateContext creates a GL context for the root visual and makes it
	// current on the target window. DestroyContext releases it and is safe
	// to call when no context exists.
	CreateContext() error
	DestroyContext()

	// FBConfigs returns every framebuffer configuration of the screen.
	FBConfigs() ([]FBConfig, error)

	// FBConfigAttrib queries a single attribute of a configuration.
	FBConfigAttrib(cfg FBConfig, attr int) (int, error)

	// FBConfigVisualDepth returns the depth of the X visual associated with
	// the configuration. Returns an error if the configuration has no
	// visual.
	FBConfigVisualDepth(cfg FBConfig) (int, error)

	// PixmapGeometry queries the size and depth of a pixmap.
	PixmapGeometry(pixmap Pixmap) (width, height, depth int, err error)

	CreateGLXPixmap(cfg FBConfig, pixmap Pixmap, format, target int) (GLXPixmap, error)
	DestroyGLXPixmap(glxPixmap GLXPixmap)

	// BufferAge queries GLX_BACK_BUFFER_AGE_EXT of the target window.
	// Returns zero if the age is unknown.
	BufferAge() int

	SwapBuffers()

	// ResolveTexImageBinder looks up the GLX_EXT_texture_from_pixmap entry
	// points.
	ResolveTexImageBinder() (TexImageBinder, error)

	// ResolveSwapControl looks up an entry point for controlling the swap
	// interval.
	ResolveSwapControl() (SwapControl, error)
}

// TexImageBinder binds the contents of a GLX pixmap to the texture currently
// bound on the active texture unit.
type TexImageBinder interface {
	BindTexImage(glxPixmap GLXPixmap)
	ReleaseTexImage(glxPixmap GLXPixmap)
}

// SwapControl sets the number of video frames between buffer swaps.
type SwapControl interface {
	SwapInterval(interval int) error
}
