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

package xglx

/*
#cgo LDFLAGS: -lGL -lX11
#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <GL/glx.h>

#ifndef GLX_FRONT_LEFT_EXT
#define GLX_FRONT_LEFT_EXT 0x20DE
#endif

#ifndef GLX_BACK_BUFFER_AGE_EXT
#define GLX_BACK_BUFFER_AGE_EXT 0x20F4
#endif

#ifndef GLX_TEXTURE_FORMAT_EXT
#define GLX_TEXTURE_FORMAT_EXT 0x20D5
#define GLX_TEXTURE_TARGET_EXT 0x20D6
#endif

typedef void (*glimmer_bind_tex_image_t)(Display *, GLXDrawable, int, const int *);
typedef void (*glimmer_release_tex_image_t)(Display *, GLXDrawable, int);
typedef int (*glimmer_swap_interval_t)(int);

static glimmer_bind_tex_image_t _glXBindTexImageEXT;
static glimmer_release_tex_image_t _glXReleaseTexImageEXT;
static glimmer_swap_interval_t _glXSwapInterval;

static int glimmer_resolve_tex_image(void) {
	_glXBindTexImageEXT = (glimmer_bind_tex_image_t)glXGetProcAddress((const GLubyte *)"glXBindTexImageEXT");
	_glXReleaseTexImageEXT = (glimmer_release_tex_image_t)glXGetProcAddress((const GLubyte *)"glXReleaseTexImageEXT");
	return _glXBindTexImageEXT != NULL && _glXReleaseTexImageEXT != NULL;
}

static void glimmer_bind_tex_image(Display *dpy, GLXDrawable d) {
	_glXBindTexImageEXT(dpy, d, GLX_FRONT_LEFT_EXT, NULL);
}

static void glimmer_release_tex_image(Display *dpy, GLXDrawable d) {
	_glXReleaseTexImageEXT(dpy, d, GLX_FRONT_LEFT_EXT);
}

static int glimmer_resolve_swap_interval(void) {
	_glXSwapInterval = (glimmer_swap_interval_t)glXGetProcAddress((const GLubyte *)"glXSwapIntervalMESA");
	if (_glXSwapInterval == NULL) {
		_glXSwapInterval = (glimmer_swap_interval_t)glXGetProcAddress((const GLubyte *)"glXSwapIntervalSGI");
	}
	return _glXSwapInterval != NULL;
}

static int glimmer_swap_interval(int interval) {
	return _glXSwapInterval(interval);
}

static int glimmer_x_error;

static int glimmer_error_handler(Display *dpy, XErrorEvent *ev) {
	glimmer_x_error = ev->error_code;
	return 0;
}

static void glimmer_install_error_handler(void) {
	XSetErrorHandler(glimmer_error_handler);
}

static int glimmer_sync_error(Display *dpy) {
	XSync(dpy, False);
	int e = glimmer_x_error;
	glimmer_x_error = 0;
	return e;
}

static XVisualInfo *glimmer_visual_info(Display *dpy, VisualID id) {
	XVisualInfo vreq;
	int n = 0;
	vreq.visualid = id;
	return XGetVisualInfo(dpy, VisualIDMask, &vreq, &n);
}

static GLXPixmap glimmer_create_pixmap(Display *dpy, GLXFBConfig cfg, Pixmap pixmap, int format, int target) {
	const int attrs[] = {
		GLX_TEXTURE_FORMAT_EXT, format,
		GLX_TEXTURE_TARGET_EXT, target,
		0,
	};
	return glXCreatePixmap(dpy, cfg, pixmap, attrs);
}

static unsigned int glimmer_buffer_age(Display *dpy, GLXDrawable d) {
	unsigned int age = 0;
	glXQueryDrawable(dpy, d, GLX_BACK_BUFFER_AGE_EXT, &age);
	return age;
}
*/
import "C"

import (
	"strings"
	"unsafe"

	"github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
)

// Display implements the gpu.Display interface.
type Display struct {
	dpy    *C.Display
	screen C.int

	// the window that the context is made current on. the root window
	// unless otherwise specified
	target C.Window

	xu *xgbutil.XUtil

	hasGLX     bool
	extensions map[string]bool

	ctx     C.GLXContext
	configs []C.GLXFBConfig
}

// Open a connection to the named display. The empty string opens the display
// named by the DISPLAY environment variable. If target is zero the root
// window is used as the rendering target.
func Open(name string, target uint32) (*Display, error) {
	d := &Display{}

	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}

	d.dpy = C.XOpenDisplay(cname)
	if d.dpy == nil {
		return nil, curated.Errorf("xglx: cannot open display %s", name)
	}
	C.glimmer_install_error_handler()
	d.screen = C.XDefaultScreen(d.dpy)

	var err error
	if name == "" {
		d.xu, err = xgbutil.NewConn()
	} else {
		d.xu, err = xgbutil.NewConnDisplay(name)
	}
	if err != nil {
		C.XCloseDisplay(d.dpy)
		return nil, curated.Errorf("xglx: %v", err)
	}

	if target == 0 {
		d.target = C.Window(d.xu.RootWin())
	} else {
		d.target = C.Window(target)
	}

	// GLX presence is checked with the protocol connection
	if err := glx.Init(d.xu.Conn()); err == nil {
		rep, err := glx.QueryVersion(d.xu.Conn(), 1, 4).Reply()
		if err == nil {
			d.hasGLX = true
			logger.Logf(logger.Allow, "xglx", "GLX version %d.%d", rep.MajorVersion, rep.MinorVersion)
		}
	}

	d.extensions = make(map[string]bool)
	if d.hasGLX {
		ext := C.GoString(C.glXQueryExtensionsString(d.dpy, d.screen))
		for _, e := range strings.Fields(ext) {
			d.extensions[e] = true
		}
	}

	return d, nil
}

// Close the connections to the display. The context must have been destroyed
// beforehand.
func (d *Display) Close() {
	d.DestroyContext()
	if d.xu != nil {
		d.xu.Conn().Close()
		d.xu = nil
	}
	if d.dpy != nil {
		C.XCloseDisplay(d.dpy)
		d.dpy = nil
	}
}

// XUtil returns the protocol connection. Useful for listening to events on
// the root window.
func (d *Display) XUtil() *xgbutil.XUtil {
	return d.xu
}

// HasGLX implements the gpu.Display interface.
func (d *Display) HasGLX() bool {
	return d.hasGLX
}

// RootVisual implements the gpu.Display interface.
func (d *Display) RootVisual() (gpu.Visual, error) {
	scr := d.xu.Screen()
	vis := gpu.Visual{
		ID:    uint32(scr.RootVisual),
		Depth: int(scr.RootDepth),
	}

	pvis := C.glimmer_visual_info(d.dpy, C.VisualID(scr.RootVisual))
	if pvis == nil {
		return vis, curated.Errorf("xglx: no visual info for visual %#x", vis.ID)
	}
	defer C.XFree(unsafe.Pointer(pvis))

	var v C.int
	if C.glXGetConfig(d.dpy, pvis, C.GLX_USE_GL, &v) == C.Success && v != 0 {
		vis.GL = true
	}
	if C.glXGetConfig(d.dpy, pvis, C.GLX_DOUBLEBUFFER, &v) == C.Success && v != 0 {
		vis.DoubleBuffer = true
	}

	return vis, nil
}

// RootSize implements the gpu.Display interface.
func (d *Display) RootSize() (int, int) {
	geom, err := xwindow.New(d.xu, d.xu.RootWin()).Geometry()
	if err != nil {
		scr := d.xu.Screen()
		return int(scr.WidthInPixels), int(scr.HeightInPixels)
	}
	return geom.Width(), geom.Height()
}

// HasExtension implements the gpu.Display interface.
func (d *Display) HasExtension(name string) bool {
	return d.extensions[name]
}

// CreateContext implements the gpu.Display interface.
func (d *Display) CreateContext() error {
	if d.ctx != nil {
		return nil
	}

	scr := d.xu.Screen()
	pvis := C.glimmer_visual_info(d.dpy, C.VisualID(scr.RootVisual))
	if pvis == nil {
		return curated.Errorf("xglx: no visual info for root visual")
	}
	defer C.XFree(unsafe.Pointer(pvis))

	d.ctx = C.glXCreateContext(d.dpy, pvis, nil, C.int(1))
	if d.ctx == nil {
		return curated.Errorf("xglx: failed to create GLX context")
	}

	if C.glXMakeCurrent(d.dpy, C.GLXDrawable(d.target), d.ctx) == 0 {
		d.DestroyContext()
		return curated.Errorf("xglx: failed to attach GLX context")
	}

	return nil
}

// DestroyContext implements the gpu.Display interface.
func (d *Display) DestroyContext() {
	if d.ctx == nil {
		return
	}
	C.glXMakeCurrent(d.dpy, C.GLXDrawable(0), nil)
	C.glXDestroyContext(d.dpy, d.ctx)
	d.ctx = nil
	d.configs = nil
}

// FBConfigs implements the gpu.Display interface.
func (d *Display) FBConfigs() ([]gpu.FBConfig, error) {
	var n C.int
	cfgs := C.glXGetFBConfigs(d.dpy, d.screen, &n)
	if cfgs == nil {
		return nil, curated.Errorf("xglx: no framebuffer configurations")
	}
	defer C.XFree(unsafe.Pointer(cfgs))

	// the configurations remain valid after the array has been freed
	d.configs = make([]C.GLXFBConfig, int(n))
	copy(d.configs, unsafe.Slice(cfgs, int(n)))

	ids := make([]gpu.FBConfig, len(d.configs))
	for i := range ids {
		ids[i] = gpu.FBConfig(i)
	}
	return ids, nil
}

func (d *Display) config(cfg gpu.FBConfig) (C.GLXFBConfig, error) {
	if int(cfg) < 0 || int(cfg) >= len(d.configs) {
		return nil, curated.Errorf("xglx: unknown framebuffer configuration %d", cfg)
	}
	return d.configs[cfg], nil
}

// FBConfigAttrib implements the gpu.Display interface.
func (d *Display) FBConfigAttrib(cfg gpu.FBConfig, attr int) (int, error) {
	c, err := d.config(cfg)
	if err != nil {
		return 0, err
	}

	var v C.int
	if r := C.glXGetFBConfigAttrib(d.dpy, c, C.int(attr), &v); r != C.Success {
		return 0, curated.Errorf("xglx: attribute %#x of configuration %d: error %d", attr, cfg, int(r))
	}
	return int(v), nil
}

// FBConfigVisualDepth implements the gpu.Display interface.
func (d *Display) FBConfigVisualDepth(cfg gpu.FBConfig) (int, error) {
	c, err := d.config(cfg)
	if err != nil {
		return 0, err
	}

	pvi := C.glXGetVisualFromFBConfig(d.dpy, c)
	if pvi == nil {
		return 0, curated.Errorf("xglx: no visual for configuration %d", cfg)
	}
	defer C.XFree(unsafe.Pointer(pvi))

	return int(pvi.depth), nil
}

// PixmapGeometry implements the gpu.Display interface.
func (d *Display) PixmapGeometry(pixmap gpu.Pixmap) (int, int, int, error) {
	rep, err := xproto.GetGeometry(d.xu.Conn(), xproto.Drawable(pixmap)).Reply()
	if err != nil {
		return 0, 0, 0, curated.Errorf("xglx: geometry of pixmap %#010x: %v", uint32(pixmap), err)
	}
	return int(rep.Width), int(rep.Height), int(rep.Depth), nil
}

// CreateGLXPixmap implements the gpu.Display interface.
func (d *Display) CreateGLXPixmap(cfg gpu.FBConfig, pixmap gpu.Pixmap, format, target int) (gpu.GLXPixmap, error) {
	c, err := d.config(cfg)
	if err != nil {
		return 0, err
	}

	p := C.glimmer_create_pixmap(d.dpy, c, C.Pixmap(pixmap), C.int(format), C.int(target))
	if e := C.glimmer_sync_error(d.dpy); e != 0 {
		if p != 0 {
			C.glXDestroyPixmap(d.dpy, p)
		}
		return 0, curated.Errorf("xglx: GLX pixmap for %#010x: X error %d", uint32(pixmap), int(e))
	}
	if p == 0 {
		return 0, curated.Errorf("xglx: GLX pixmap for %#010x", uint32(pixmap))
	}

	return gpu.GLXPixmap(p), nil
}

// DestroyGLXPixmap implements the gpu.Display interface.
func (d *Display) DestroyGLXPixmap(glxPixmap gpu.GLXPixmap) {
	C.glXDestroyPixmap(d.dpy, C.GLXPixmap(glxPixmap))
}

// BufferAge implements the gpu.Display interface.
func (d *Display) BufferAge() int {
	return int(C.glimmer_buffer_age(d.dpy, C.GLXDrawable(d.target)))
}

// SwapBuffers implements the gpu.Display interface.
func (d *Display) SwapBuffers() {
	C.glXSwapBuffers(d.dpy, C.GLXDrawable(d.target))
}

type texImageBinder struct {
	dpy *C.Display
}

func (b texImageBinder) BindTexImage(glxPixmap gpu.GLXPixmap) {
	C.glimmer_bind_tex_image(b.dpy, C.GLXDrawable(glxPixmap))
}

func (b texImageBinder) ReleaseTexImage(glxPixmap gpu.GLXPixmap) {
	C.glimmer_release_tex_image(b.dpy, C.GLXDrawable(glxPixmap))
}

// ResolveTexImageBinder implements the gpu.Display interface.
func (d *Display) ResolveTexImageBinder() (gpu.TexImageBinder, error) {
	if C.glimmer_resolve_tex_image() == 0 {
		return nil, curated.Errorf("xglx: glXBindTexImageEXT/glXReleaseTexImageEXT not available")
	}
	return texImageBinder{dpy: d.dpy}, nil
}

type swapControl struct{}

func (swapControl) SwapInterval(interval int) error {
	if r := C.glimmer_swap_interval(C.int(interval)); r != 0 {
		return curated.Errorf("xglx: swap interval: error %d", int(r))
	}
	return nil
}

// ResolveSwapControl implements the gpu.Display interface.
func (d *Display) ResolveSwapControl() (gpu.SwapControl, error) {
	if C.glimmer_resolve_swap_interval() == 0 {
		return nil, curated.Errorf("xglx: no swap interval control")
	}
	return swapControl{}, nil
}

var _ gpu.Display = (*Display)(nil)
