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
	"fmt"
	"image"

	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/region"
)

// blurPasses is implemented by convolutionPasses and kawasePasses.
type blurPasses interface {
	free(gl gpu.GL)
}

type convolutionPass struct {
	prog         gpu.Program
	offsetX      gpu.Uniform
	offsetY      gpu.Uniform
	factorCenter gpu.Uniform
}

// the first pass with no program marks the end of the chain
type convolutionPasses struct {
	passes [blur.MaxPasses]convolutionPass
}

func (p *convolutionPasses) count() int {
	for i := range p.passes {
		if p.passes[i].prog == 0 {
			return i
		}
	}
	return len(p.passes)
}

func (p *convolutionPasses) free(gl gpu.GL) {
	for i := range p.passes {
		if p.passes[i].prog != 0 {
			gl.DeleteProgram(p.passes[i].prog)
		}
		p.passes[i] = convolutionPass{}
	}
}

type kawasePass struct {
	prog      gpu.Program
	offset    gpu.Uniform
	halfPixel gpu.Uniform
	fullTex   gpu.Uniform
}

type kawasePasses struct {
	down       kawasePass
	up         kawasePass
	iterations int
	offset     float32
}

func (p *kawasePasses) free(gl gpu.GL) {
	if p.down.prog != 0 {
		gl.DeleteProgram(p.down.prog)
	}
	if p.up.prog != 0 {
		gl.DeleteProgram(p.up.prog)
	}
	p.down = kawasePass{}
	p.up = kawasePass{}
}

func (rc *RenderContext) freeBlur() {
	if rc.blur != nil {
		rc.blur.free(rc.gl)
		rc.blur = nil
	}
}

// ShaderOptions returns the options used to generate the blur shaders for
// the context.
func (rc *RenderContext) ShaderOptions() blur.ShaderOptions {
	return blur.ShaderOptions{
		Rectangle:  !rc.npot,
		GPUShader4: rc.opts.UseGPUShader4,
	}
}

// the target of the textures used by the blur
func (rc *RenderContext) blurTarget() gpu.Enum {
	if rc.npot {
		return gpu.TEXTURE_2D
	}
	return gpu.TEXTURE_RECTANGLE
}

// framebuffer objects are required by any blur that has more than one pass
func (rc *RenderContext) testFramebuffer() error {
	fbo := rc.gl.GenFramebuffer()
	if fbo == 0 {
		return CapabilityError.Errorf(UnsupportedBlur, "framebuffer objects are not supported")
	}
	rc.gl.DeleteFramebuffer(fbo)
	return nil
}

// BlurReady returns true if InitBlur() has completed successfully.
func (rc *RenderContext) BlurReady() bool {
	return rc.blur != nil
}

// InitBlur compiles the programs for the blur method in the context's
// settings. Any previously compiled programs are released first.
func (rc *RenderContext) InitBlur() error {
	if !rc.renderReady {
		return CapabilityError.Errorf(NotInitialised)
	}

	rc.freeBlur()

	var passes blurPasses
	var err error

	switch m := rc.opts.Blur.(type) {
	case nil:
		return CapabilityError.Errorf(UnsupportedBlur, "no blur method")
	case blur.Convolution:
		var p *convolutionPasses
		p, err = rc.initConvolution(m)
		passes = p
	case blur.Kawase:
		var p *kawasePasses
		p, err = rc.initKawase(m)
		passes = p
	default:
		return CapabilityError.Errorf(UnsupportedBlur, m)
	}
	if err != nil {
		logger.Errorf(logger.Allow, "glx: blur", "%v", err)
		return err
	}
	rc.blur = passes

	logger.Logf(logger.Allow, "glx: blur", "%s", rc.opts.Blur)
	rc.checkErrors("init blur")

	return nil
}

func (rc *RenderContext) initConvolution(m blur.Convolution) (*convolutionPasses, error) {
	if len(m.Kernels) == 0 {
		return nil, CapabilityError.Errorf(UnsupportedBlur, "no kernels")
	}
	if len(m.Kernels) > blur.MaxPasses {
		return nil, CapabilityError.Errorf(UnsupportedBlur, "too many kernels")
	}

	if len(m.Kernels) > 1 {
		if err := rc.testFramebuffer(); err != nil {
			return nil, err
		}
	}

	opts := rc.ShaderOptions()
	p := &convolutionPasses{}

	for i, k := range m.Kernels {
		prog, err := BuildProgram(rc.gl, "", blur.ConvolutionSource(k, opts))
		if err != nil {
			p.free(rc.gl)
			return nil, curated.Errorf("glx: blur: pass %d: %v", i, err)
		}

		pass := &p.passes[i]
		pass.prog = prog
		pass.factorCenter = uniform(rc.gl, prog, blur.UniformFactorCenter)
		if opts.GPUShader4 {
			pass.offsetX = gpu.NoUniform
			pass.offsetY = gpu.NoUniform
		} else {
			pass.offsetX = uniform(rc.gl, prog, blur.UniformOffsetX)
			pass.offsetY = uniform(rc.gl, prog, blur.UniformOffsetY)
		}
	}

	return p, nil
}

func (rc *RenderContext) initKawase(m blur.Kawase) (*kawasePasses, error) {
	if m.Iterations < 1 {
		return nil, CapabilityError.Errorf(UnsupportedBlur, "kawase: too few iterations")
	}
	if m.Iterations > blur.MaxIterations {
		return nil, CapabilityError.Errorf(UnsupportedBlur, fmt.Sprintf("kawase: too many iterations (max %d)", blur.MaxIterations))
	}

	// the shaders sample with normalised texture coordinates
	if !rc.npot {
		return nil, CapabilityError.Errorf(UnsupportedBlur, "kawase: non-power-of-two textures are not supported")
	}

	if err := rc.testFramebuffer(); err != nil {
		return nil, err
	}

	down, up := blur.KawaseSources(rc.ShaderOptions())

	p := &kawasePasses{
		iterations: m.Iterations,
		offset:     float32(m.Offset),
	}

	build := func(src string) (kawasePass, error) {
		prog, err := BuildProgram(rc.gl, "", src)
		if err != nil {
			return kawasePass{}, err
		}
		return kawasePass{
			prog:      prog,
			offset:    uniform(rc.gl, prog, blur.UniformOffset),
			halfPixel: uniform(rc.gl, prog, blur.UniformHalfPixel),
			fullTex:   uniform(rc.gl, prog, blur.UniformFullTex),
		}, nil
	}

	var err error
	p.down, err = build(down)
	if err != nil {
		return nil, curated.Errorf("glx: blur: down: %v", err)
	}
	p.up, err = build(up)
	if err != nil {
		p.free(rc.gl)
		return nil, curated.Errorf("glx: blur: up: %v", err)
	}

	return p, nil
}

// BlurCache is the scratch space used by BlurRegion(). Keeping a cache for
// each window means that textures are not created every frame. The zero
// value is an empty cache.
type BlurCache struct {
	width    int
	height   int
	target   gpu.Enum
	textures []gpu.Texture
	sizes    []image.Point
	fbo      gpu.Framebuffer
}

// Size returns the size of the area the cache was last used for.
func (cache *BlurCache) Size() (int, int) {
	return cache.width, cache.height
}

// FreeBlurCache deletes the textures and framebuffer of the cache.
func (rc *RenderContext) FreeBlurCache(cache *BlurCache) {
	if cache == nil {
		return
	}
	for _, t := range cache.textures {
		if t != 0 {
			rc.gl.DeleteTexture(t)
		}
	}
	if cache.fbo != 0 {
		rc.gl.DeleteFramebuffer(cache.fbo)
	}
	*cache = BlurCache{}
	delete(rc.caches, cache)
}

func (rc *RenderContext) genBlurTexture(target gpu.Enum, size image.Point) gpu.Texture {
	tex := rc.gl.GenTexture()
	if tex == 0 {
		return 0
	}
	rc.gl.BindTexture(target, tex)
	rc.gl.TexParameteri(target, gpu.MIN_FILTER, gpu.LINEAR)
	rc.gl.TexParameteri(target, gpu.MAG_FILTER, gpu.LINEAR)
	rc.gl.TexParameteri(target, gpu.WRAP_S, gpu.CLAMP_TO_EDGE)
	rc.gl.TexParameteri(target, gpu.WRAP_T, gpu.CLAMP_TO_EDGE)
	rc.gl.TexImage2D(target, gpu.RGB, int32(size.X), int32(size.Y), gpu.RGB)
	rc.gl.BindTexture(target, 0)
	return tex
}

// make sure the cache has a texture of each size and, optionally, a
// framebuffer. all textures are discarded if the area or the sizes have
// changed
func (rc *RenderContext) prepareCache(cache *BlurCache, target gpu.Enum, width, height int, sizes []image.Point, fbo bool) error {
	stale := cache.width != width || cache.height != height || cache.target != target || len(cache.sizes) != len(sizes)
	if !stale {
		for i := range sizes {
			if cache.sizes[i] != sizes[i] {
				stale = true
				break
			}
		}
	}

	if stale {
		for _, t := range cache.textures {
			if t != 0 {
				rc.gl.DeleteTexture(t)
			}
		}
		cache.width = width
		cache.height = height
		cache.target = target
		cache.textures = make([]gpu.Texture, len(sizes))
		cache.sizes = append(cache.sizes[:0], sizes...)
	}

	rc.caches[cache] = true

	for i := range cache.textures {
		if cache.textures[i] == 0 {
			cache.textures[i] = rc.genBlurTexture(target, sizes[i])
			if cache.textures[i] == 0 {
				return ResourceError.Errorf("glx: blur: cannot create texture")
			}
		}
	}

	if fbo && cache.fbo == 0 {
		cache.fbo = rc.gl.GenFramebuffer()
		if cache.fbo == 0 {
			return ResourceError.Errorf("glx: blur: cannot create framebuffer")
		}
	}

	return nil
}

// attach the texture to the cache's framebuffer and direct drawing to it
func (rc *RenderContext) drawToTexture(cache *BlurCache, tex gpu.Texture) error {
	rc.gl.BindFramebuffer(cache.fbo)
	rc.gl.FramebufferTexture2D(gpu.COLOR_ATTACHMENT0, cache.target, tex)
	rc.gl.DrawBuffer(gpu.COLOR_ATTACHMENT0)
	if rc.gl.CheckFramebufferStatus() != gpu.FRAMEBUFFER_COMPLETE {
		return ResourceError.Errorf("glx: blur: framebuffer incomplete")
	}
	return nil
}

// capture the area of the back buffer to the texture
func (rc *RenderContext) capture(target gpu.Enum, tex gpu.Texture, rect image.Rectangle) {
	rc.gl.BindTexture(target, tex)
	rc.gl.CopyTexSubImage2D(target, 0, 0, int32(rect.Min.X), int32(rc.rootHeight-rect.Max.Y), int32(rect.Dx()), int32(rect.Dy()))
}

// BlurRegion blurs the area of the back buffer covered by rect and clip. If
// clip is nil the whole of rect is blurred. The cache can be nil, in which
// case the scratch textures are created and deleted by the call.
//
// The factorCenter value is the weight given to the centre pixel by the
// convolution method. It is ignored by the kawase method.
//
// Scissor and stencil testing are restored to the state they were in on
// entry, even if an error is returned.
func (rc *RenderContext) BlurRegion(rect image.Rectangle, z float32, factorCenter float32, clip *region.Region, cache *BlurCache) error {
	if !rc.renderReady {
		return CapabilityError.Errorf(NotInitialised)
	}
	if rc.blur == nil {
		return CapabilityError.Errorf(UnsupportedBlur, "not initialised")
	}

	rect = rect.Canon()
	if rect.Empty() {
		return nil
	}

	if cache == nil {
		cache = &BlurCache{}
		defer rc.FreeBlurCache(cache)
	}

	var err error
	switch p := rc.blur.(type) {
	case *convolutionPasses:
		err = rc.blurConvolution(p, rect, z, factorCenter, clip, cache)
	case *kawasePasses:
		err = rc.blurKawase(p, rect, z, clip, cache)
	}

	if err != nil {
		logger.Errorf(logger.Allow, "glx: blur", "%v", err)
	}
	rc.checkErrors("blur")

	return err
}

type blurState struct {
	gl      gpu.GL
	scissor bool
	stencil bool
}

func saveBlurState(gl gpu.GL) blurState {
	return blurState{
		gl:      gl,
		scissor: gl.IsEnabled(gpu.SCISSOR_TEST),
		stencil: gl.IsEnabled(gpu.STENCIL_TEST),
	}
}

func (s blurState) disable() {
	s.gl.Disable(gpu.STENCIL_TEST)
	s.gl.Disable(gpu.SCISSOR_TEST)
}

func (s blurState) restore() {
	if s.scissor {
		s.gl.Enable(gpu.SCISSOR_TEST)
	}
	if s.stencil {
		s.gl.Enable(gpu.STENCIL_TEST)
	}
}

// draw to the back buffer again, restoring any tests disabled for the
// intermediate passes
func (rc *RenderContext) drawToScreen(state blurState) {
	rc.gl.BindFramebuffer(0)
	rc.gl.DrawBuffer(gpu.BACK)
	state.restore()
}

func (rc *RenderContext) blurConvolution(p *convolutionPasses, rect image.Rectangle, z float32, factorCenter float32, clip *region.Region, cache *BlurCache) error {
	n := p.count()
	if n == 0 {
		return CapabilityError.Errorf(UnsupportedBlur, "no passes")
	}
	more := n > 1

	target := rc.blurTarget()
	width, height := rect.Dx(), rect.Dy()

	sizes := []image.Point{{X: width, Y: height}}
	if more {
		sizes = append(sizes, sizes[0])
	}
	if err := rc.prepareCache(cache, target, width, height, sizes, more); err != nil {
		return err
	}

	state := saveBlurState(rc.gl)

	rc.gl.Enable(target)
	defer func() {
		rc.gl.UseProgram(0)
		if more {
			rc.gl.BindFramebuffer(0)
			rc.gl.DrawBuffer(gpu.BACK)
		}
		rc.gl.BindTexture(target, 0)
		rc.gl.Disable(target)
		state.restore()
	}()

	rc.capture(target, cache.textures[0], rect)

	// offsets between texels in texture coordinates
	fx, fy := float32(1.0), float32(1.0)
	if target == gpu.TEXTURE_2D {
		fx = 1.0 / float32(width)
		fy = 1.0 / float32(height)
	}

	if more {
		state.disable()
	}

	onscreen := clipRects(rect, clip)

	src := cache.textures[0]
	var dst gpu.Texture
	if more {
		dst = cache.textures[1]
	}

	for i := 0; i < n; i++ {
		last := i == n-1
		pass := p.passes[i]

		rc.gl.BindTexture(target, src)

		// intermediate passes cover the whole area because the next pass
		// samples neighbouring texels
		rects := []image.Rectangle{rect}
		if last {
			if more {
				rc.drawToScreen(state)
			}
			rects = onscreen
		} else if err := rc.drawToTexture(cache, dst); err != nil {
			return err
		}

		rc.gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.REPLACE)
		rc.gl.UseProgram(pass.prog)
		if pass.offsetX.Valid() {
			rc.gl.Uniform1f(pass.offsetX, fx)
		}
		if pass.offsetY.Valid() {
			rc.gl.Uniform1f(pass.offsetY, fy)
		}
		if pass.factorCenter.Valid() {
			rc.gl.Uniform1f(pass.factorCenter, factorCenter)
		}

		rc.gl.Begin(gpu.QUADS)
		for _, r := range rects {
			rx := float32(r.Min.X-rect.Min.X) * fx
			ry := float32(height-(r.Min.Y-rect.Min.Y)) * fy
			rxe := rx + float32(r.Dx())*fx
			rye := ry - float32(r.Dy())*fy

			var rdx, rdy float32
			if last {
				rdx = float32(r.Min.X)
				rdy = float32(rc.rootHeight - r.Min.Y)
			} else {
				rdx = float32(r.Min.X - rect.Min.X)
				rdy = float32(height - (r.Min.Y - rect.Min.Y))
			}
			rdxe := rdx + float32(r.Dx())
			rdye := rdy - float32(r.Dy())

			rc.emitQuad(rx, ry, rxe, rye, rdx, rdy, rdxe, rdye, z)
		}
		rc.gl.End()

		rc.gl.UseProgram(0)

		src, dst = dst, src
	}

	return nil
}

// the size of each level of the kawase pyramid. level zero is the captured
// area and level i is the area shifted down by i-1
func kawaseSizes(width, height, iterations int) []image.Point {
	sizes := make([]image.Point, iterations+1)
	sizes[0] = image.Point{X: width, Y: height}
	for i := 1; i <= iterations; i++ {
		sizes[i] = image.Point{X: width >> (i - 1), Y: height >> (i - 1)}
	}
	return sizes
}

func (rc *RenderContext) kawaseUniforms(pass kawasePass, offset float32, src image.Point) {
	if pass.offset.Valid() {
		rc.gl.Uniform1f(pass.offset, offset)
	}
	if pass.halfPixel.Valid() {
		rc.gl.Uniform2f(pass.halfPixel, 0.5/float32(src.X), 0.5/float32(src.Y))
	}
	if pass.fullTex.Valid() {
		rc.gl.Uniform2f(pass.fullTex, float32(src.X), float32(src.Y))
	}
}

// draw the whole of the src level to the whole of the dst level
func (rc *RenderContext) kawaseLevel(pass kawasePass, offset float32, src, dst image.Point, z float32) {
	rc.gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.REPLACE)
	rc.gl.UseProgram(pass.prog)
	rc.kawaseUniforms(pass, offset, src)
	rc.gl.Begin(gpu.QUADS)
	rc.emitQuad(0, 0, float32(src.X), float32(src.Y), 0, 0, float32(dst.X), float32(dst.Y), z)
	rc.gl.End()
	rc.gl.UseProgram(0)
}

func (rc *RenderContext) blurKawase(p *kawasePasses, rect image.Rectangle, z float32, clip *region.Region, cache *BlurCache) error {
	width, height := rect.Dx(), rect.Dy()

	iterations := blur.EffectiveIterations(width, height, p.iterations)
	if iterations < 1 {
		return nil
	}

	target := rc.blurTarget()
	sizes := kawaseSizes(width, height, iterations)
	if err := rc.prepareCache(cache, target, width, height, sizes, true); err != nil {
		return err
	}

	state := saveBlurState(rc.gl)

	rc.gl.Enable(target)
	defer func() {
		rc.gl.UseProgram(0)
		rc.gl.BindFramebuffer(0)
		rc.gl.DrawBuffer(gpu.BACK)
		rc.gl.BindTexture(target, 0)
		rc.gl.Disable(target)
		state.restore()
	}()

	rc.capture(target, cache.textures[0], rect)
	state.disable()

	for i := 1; i <= iterations; i++ {
		rc.gl.BindTexture(target, cache.textures[i-1])
		if err := rc.drawToTexture(cache, cache.textures[i]); err != nil {
			return err
		}
		rc.kawaseLevel(p.down, p.offset, sizes[i-1], sizes[i], z)
	}

	for i := iterations; i > 1; i-- {
		rc.gl.BindTexture(target, cache.textures[i])
		if err := rc.drawToTexture(cache, cache.textures[i-1]); err != nil {
			return err
		}
		rc.kawaseLevel(p.up, p.offset, sizes[i], sizes[i-1], z)
	}

	// the final up-sample is from level one, which is the same size as the
	// captured area, to the back buffer
	rc.gl.BindTexture(target, cache.textures[1])
	rc.drawToScreen(state)

	rc.gl.TexEnvi(gpu.TEXTURE_ENV, gpu.TEXTURE_ENV_MODE, gpu.REPLACE)
	rc.gl.UseProgram(p.up.prog)
	rc.kawaseUniforms(p.up, p.offset, sizes[1])

	rc.gl.Begin(gpu.QUADS)
	for _, r := range clipRects(rect, clip) {
		rx := float32(r.Min.X - rect.Min.X)
		ry := float32(height - (r.Min.Y - rect.Min.Y))
		rxe := rx + float32(r.Dx())
		rye := ry - float32(r.Dy())

		rdx := float32(r.Min.X)
		rdy := float32(rc.rootHeight - r.Min.Y)
		rdxe := rdx + float32(r.Dx())
		rdye := rdy - float32(r.Dy())

		rc.emitQuad(rx, ry, rxe, rye, rdx, rdy, rdxe, rdye, z)
	}
	rc.gl.End()

	return nil
}
