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

package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/bradleyjkemp/memviz"
	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/config"
	"github.com/jetsetilly/glimmer/glx"
	"github.com/jetsetilly/glimmer/gpu/gl32"
	"github.com/jetsetilly/glimmer/gpu/xglx"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/modalflag"
	"github.com/jetsetilly/glimmer/prefs"
	"github.com/jetsetilly/glimmer/region"
	"github.com/jetsetilly/glimmer/screenshot"
	"github.com/jetsetilly/glimmer/statsview"
	"github.com/jetsetilly/glimmer/version"
)

// GL contexts are current on a single thread. every GL call is made from the
// main goroutine which is locked to the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("PROBE", "SHADERS", "WATCH", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "PROBE":
		err = probe(md)

	case "SHADERS":
		err = shaders(md, os.Stdout)

	case "WATCH":
		err = watch(md)

	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// flags shared by every mode that reads the configuration
type common struct {
	prefsFile *string
	override  *string
	log       *bool
}

func addCommon(md *modalflag.Modes) common {
	return common{
		prefsFile: md.AddString("prefs", "", "preferences file (default is in the resource directory)"),
		override:  md.AddString("override", "", "override preferences. eg. \"blur.method::kawase; blur.strength::5\""),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
}

// load the configuration with any command line overrides
func (c common) options() (*config.Options, error) {
	if *c.log {
		logger.SetEcho(os.Stdout, logger.Trace)
	}

	opts, err := config.NewOptions(*c.prefsFile)
	if err != nil {
		return nil, err
	}

	if *c.override != "" {
		prefs.PushCommandLineStack(*c.override)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Warnf(logger.Allow, "config", "unused preferences: %s", unused)
			}
		}()
	}

	if err := opts.Load(); err != nil {
		return nil, err
	}

	return opts, nil
}

// open the display and initialise a context for rendering
func open(name string, settings glx.Settings) (*xglx.Display, *glx.RenderContext, error) {
	dpy, err := xglx.Open(name, 0)
	if err != nil {
		return nil, nil, err
	}

	rc := glx.NewRenderContext(gl32.NewGL(), dpy, settings)
	if err := rc.Init(true); err != nil {
		dpy.Close()
		return nil, nil, err
	}

	return dpy, rc, nil
}

func probe(md *modalflag.Modes) error {
	md.NewMode()

	cmn := addCommon(md)
	display := md.AddString("display", "", "X display to connect to")
	dumpstate := md.AddString("dumpstate", "", "write a graphviz dump of the render context to the file")
	shot := md.AddBool("screenshot", false, "save the contents of the front buffer to the current directory")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	opts, err := cmn.options()
	if err != nil {
		return err
	}

	settings, err := opts.Settings()
	if err != nil {
		return err
	}

	dpy, rc, err := open(*display, settings)
	if err != nil {
		return err
	}
	defer dpy.Close()
	defer rc.Destroy()

	w, h := rc.RootSize()
	fmt.Printf("root window: %dx%d\n", w, h)
	fmt.Printf("non-power-of-two textures: %v\n", rc.NonPowerOfTwo())
	fmt.Printf("swap method: %s (max buffer age %d)\n", config.SwapMethodString(settings.SwapMethod), settings.MaxBufferAge)

	for depth := 0; depth <= 32; depth++ {
		cfg, ok := rc.SurfaceConfig(depth)
		if !ok {
			continue
		}
		format := "rgb"
		if cfg.RGBA() {
			format = "rgba"
		}
		fmt.Printf("depth %2d: config %d, %s, stencil %d, depth buffer %d, y-inverted %v\n",
			depth, cfg.Config, format, cfg.Candidate.StencilSize, cfg.Candidate.DepthSize, cfg.Candidate.YInverted)
	}

	if err := rc.InitBlur(); err != nil {
		fmt.Printf("blur: %v\n", err)
	} else {
		fmt.Printf("blur: %s\n", settings.Blur)
	}

	if *shot {
		data, err := rc.CaptureScreenshot()
		if err != nil {
			return err
		}
		pth, err := screenshot.Save(".", "probe", data, w, h)
		if err != nil {
			return err
		}
		fmt.Printf("screenshot: %s\n", pth)
	}

	if *dumpstate != "" {
		f, err := os.Create(*dumpstate)
		if err != nil {
			return err
		}
		memviz.Map(f, rc)
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("state: %s\n", *dumpstate)
	}

	return nil
}

type namedSource struct {
	name   string
	source string
}

// the fragment shaders that InitBlur() would build for the method
func shaderSources(method blur.Method, opts blur.ShaderOptions) []namedSource {
	var srcs []namedSource

	switch m := method.(type) {
	case blur.Convolution:
		for i, k := range m.Kernels {
			srcs = append(srcs, namedSource{
				name:   fmt.Sprintf("convolution pass %d (%s)", i, k),
				source: blur.ConvolutionSource(k, opts),
			})
		}
	case blur.Kawase:
		down, up := blur.KawaseSources(opts)
		srcs = append(srcs,
			namedSource{name: "kawase down", source: down},
			namedSource{name: "kawase up", source: up},
		)
	}

	return srcs
}

func shaders(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	cmn := addCommon(md)
	rect := md.AddBool("rect", false, "generate shaders for rectangle textures")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	opts, err := cmn.options()
	if err != nil {
		return err
	}

	method, err := opts.Blur()
	if err != nil {
		return err
	}

	srcs := shaderSources(method, blur.ShaderOptions{
		Rectangle:  *rect,
		GPUShader4: opts.UseGPUShader4.Get().(bool),
	})

	for _, s := range srcs {
		fmt.Fprintf(output, "// %s\n%s\n", s.name, s.source)
	}

	return nil
}

// send the size on the buffered channel, replacing any size the receiver has
// yet to see. never blocks while the caller is the only sender
func offerSize(ch chan image.Point, sz image.Point) {
	for {
		select {
		case ch <- sz:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func watch(md *modalflag.Modes) error {
	md.NewMode()

	cmn := addCommon(md)
	display := md.AddString("display", "", "X display to connect to")
	paint := md.AddBool("paint", false, "blur the centre of the screen after every change")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%v)", statsview.Available()))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		defer statsview.Launch(os.Stdout)()
	}

	opts, err := cmn.options()
	if err != nil {
		return err
	}

	settings, err := opts.Settings()
	if err != nil {
		return err
	}

	dpy, rc, err := open(*display, settings)
	if err != nil {
		return err
	}
	defer dpy.Close()
	defer rc.Destroy()

	if err := rc.VSync().Init(); err != nil {
		logger.Warnf(logger.Allow, "vsync", "%v", err)
	}
	defer rc.VSync().Deinit()

	if err := rc.InitBlur(); err != nil {
		logger.Errorf(logger.Allow, "glx: blur", "%v", err)
	}

	// the watcher is on the directory because editors often replace the file
	// rather than writing to it
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	prefsPath, err := filepath.Abs(opts.Path())
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(prefsPath)); err != nil {
		return err
	}

	// root window size changes are reported by the event loop goroutine and
	// applied on the main thread
	resize := make(chan image.Point, 1)
	xu := dpy.XUtil()
	if err := xwindow.New(xu, xu.RootWin()).Listen(xproto.EventMaskStructureNotify); err != nil {
		return err
	}
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		offerSize(resize, image.Pt(int(ev.Width), int(ev.Height)))
	}).Connect(xu, xu.RootWin())
	go xevent.Main(xu)
	defer xevent.Quit(xu)

	var cache glx.BlurCache
	defer rc.FreeBlurCache(&cache)

	repaint := func() {
		if !*paint || !rc.BlurReady() {
			return
		}
		w, h := rc.RootSize()
		screen := image.Rect(0, 0, w, h)
		area := image.Rect(w/4, h/4, w*3/4, h*3/4)

		reg := region.New(area)
		rc.PreparePaint(reg)
		if err := rc.BlurRegion(area, 0, 1, reg, &cache); err != nil {
			logger.Errorf(logger.Allow, "glx: blur", "%v", err)
			return
		}
		logger.Logf(logger.Allow, "glx", "painted %s of %s", reg, screen)
		dpy.SwapBuffers()
	}

	reload := func() {
		if err := opts.Load(); err != nil {
			logger.Errorf(logger.Allow, "config", "%v", err)
			return
		}
		method, err := opts.Blur()
		if err != nil {
			logger.Errorf(logger.Allow, "config", "%v", err)
			return
		}
		if method.String() == rc.Settings().Blur.String() {
			return
		}
		rc.SetBlur(method)
		if err := rc.InitBlur(); err != nil {
			logger.Errorf(logger.Allow, "glx: blur", "%v", err)
			return
		}
		repaint()
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Reset(os.Interrupt)

	fmt.Printf("watching %s\n", prefsPath)
	repaint()

	for {
		select {
		case <-intChan:
			fmt.Print("\r")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != prefsPath {
				continue
			}
			if ev.Op&fsnotify.Write == fsnotify.Write || ev.Op&fsnotify.Create == fsnotify.Create {
				logger.Logf(logger.Allow, "config", "%s changed", strings.TrimPrefix(ev.Name, filepath.Dir(prefsPath)+string(filepath.Separator)))
				reload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf(logger.Allow, "config", "%v", err)

		case sz := <-resize:
			w, h := rc.RootSize()
			if sz.X == w && sz.Y == h {
				continue
			}
			rc.OnRootResize(sz.X, sz.Y)
			repaint()
		}
	}
}
