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
	"regexp"
	"sort"
	"strings"

	"github.com/jetsetilly/glimmer/gpu"
)

// Vertex is a single vertex emitted between Begin() and End().
type Vertex struct {
	X, Y, Z float32

	// texture coordinates for texture unit 0 and texture unit 1
	S, T   float32
	S1, T1 float32
}

// UniformValue is a record of a call to one of the Uniform functions.
type UniformValue struct {
	Program gpu.Program
	Name    string
	Values  []float32
}

// Texture is the state of a texture object.
type Texture struct {
	Target        gpu.Enum
	Width, Height int32
	Params        map[gpu.Enum]int32
}

type shader struct {
	kind     gpu.Enum
	source   string
	compiled bool
}

type program struct {
	shaders  map[gpu.Shader]bool
	sources  []string
	linked   bool
	uniforms []string
}

type bindKey struct {
	unit   gpu.Enum
	target gpu.Enum
}

// TexEnvKey identifies a texture environment parameter on a texture unit.
type TexEnvKey struct {
	Unit  gpu.Enum
	Pname gpu.Enum
}

// GL implements the gpu.GL interface.
type GL struct {
	// Extensions reported by HasExtension()
	Extensions map[string]bool

	// FailInit causes Init() to return an error
	FailInit bool

	// FailTextures causes GenTexture() to return zero
	FailTextures bool

	// FailTexturesAfter causes GenTexture() to return zero once this many
	// textures have been created. zero means no limit
	FailTexturesAfter int

	// FailFramebuffers causes GenFramebuffer() to return zero
	FailFramebuffers bool

	// FramebufferIncomplete causes CheckFramebufferStatus() to never report
	// a complete framebuffer
	FramebufferIncomplete bool

	// FailCompile causes compilation of any shader source containing the
	// string to fail. the empty string never fails
	FailCompile string

	// FailLink causes every link to fail
	FailLink bool

	// MissingUniforms are never found by GetUniformLocation()
	MissingUniforms map[string]bool

	// PendingErrors are returned in order by GetError()
	PendingErrors []gpu.Enum

	// state
	Enabled         map[gpu.Enum]bool
	Integers        map[gpu.Enum]int32
	ActiveUnit      gpu.Enum
	Program         gpu.Program
	Framebuffer     gpu.Framebuffer
	Attachment      gpu.Texture
	DrawBufferValue gpu.Enum
	ReadBufferValue gpu.Enum
	TexEnv          map[TexEnvKey]int32
	Color           [4]float32
	ScissorBox      [4]int32
	ViewportBox     [4]int32
	Blend           [2]gpu.Enum
	LogicOpValue    gpu.Enum
	OrthoBox        [6]float64

	// records
	Vertices      []Vertex
	Quads         int
	Uniforms      []UniformValue
	InvalidUse    []string
	CopiedRegions [][7]int32
	Calls         []string

	bound        map[bindKey]gpu.Texture
	textures     map[gpu.Texture]*Texture
	texturesMade int
	framebuffers map[gpu.Framebuffer]bool
	shaders      map[gpu.Shader]*shader
	programs     map[gpu.Program]*program
	next         uint32

	inBegin bool
	s, t    float32
	s1, t1  float32
}

// NewGL is the preferred method of initialisation for the GL type. The GL
// reports non-power-of-two texture support and an eight bit stencil buffer.
func NewGL() *GL {
	return &GL{
		Extensions: map[string]bool{
			"GL_ARB_texture_non_power_of_two": true,
		},
		MissingUniforms: make(map[string]bool),
		Enabled:         make(map[gpu.Enum]bool),
		Integers: map[gpu.Enum]int32{
			gpu.STENCIL_BITS:     8,
			gpu.PACK_ALIGNMENT:   4,
			gpu.UNPACK_ALIGNMENT: 4,
		},
		ActiveUnit:   gpu.TEXTURE0,
		TexEnv:       make(map[TexEnvKey]int32),
		bound:        make(map[bindKey]gpu.Texture),
		textures:     make(map[gpu.Texture]*Texture),
		framebuffers: make(map[gpu.Framebuffer]bool),
		shaders:      make(map[gpu.Shader]*shader),
		programs:     make(map[gpu.Program]*program),
		next:         1,
	}
}

func (g *GL) call(s string, args ...interface{}) {
	if len(args) > 0 {
		s = fmt.Sprintf("%s%v", s, args)
	}
	g.Calls = append(g.Calls, s)
}

func (g *GL) name() uint32 {
	n := g.next
	g.next++
	return n
}

// Live returns the number of texture, framebuffer, shader and program
// objects that have been created and not deleted.
func (g *GL) Live() (textures, framebuffers, shaders, programs int) {
	return len(g.textures), len(g.framebuffers), len(g.shaders), len(g.programs)
}

// LiveObjects returns the total number of live objects.
func (g *GL) LiveObjects() int {
	t, f, s, p := g.Live()
	return t + f + s + p
}

// TextureState returns the state of a live texture or nil.
func (g *GL) TextureState(tex gpu.Texture) *Texture {
	return g.textures[tex]
}

// Bound returns the texture bound to the target of the texture unit.
func (g *GL) Bound(unit gpu.Enum, target gpu.Enum) gpu.Texture {
	return g.bound[bindKey{unit: unit, target: target}]
}

// ProgramSources returns the sources of the shaders linked into a program.
func (g *GL) ProgramSources(p gpu.Program) []string {
	if prg, ok := g.programs[p]; ok {
		return prg.sources
	}
	return nil
}

// ProgramsLinked returns the number of live programs that have been linked
// successfully.
func (g *GL) ProgramsLinked() int {
	var n int
	for _, p := range g.programs {
		if p.linked {
			n++
		}
	}
	return n
}

// UniformsFor returns the recorded values of the named uniform for the
// program.
func (g *GL) UniformsFor(p gpu.Program, name string) [][]float32 {
	var v [][]float32
	for _, u := range g.Uniforms {
		if u.Program == p && u.Name == name {
			v = append(v, u.Values)
		}
	}
	return v
}

// CallCount returns the number of times a named function was called.
func (g *GL) CallCount(name string) int {
	var n int
	for _, c := range g.Calls {
		if c == name || strings.HasPrefix(c, name+"[") {
			n++
		}
	}
	return n
}

// ResetRecords clears the vertex, uniform and call records.
func (g *GL) ResetRecords() {
	g.Vertices = g.Vertices[:0]
	g.Quads = 0
	g.Uniforms = g.Uniforms[:0]
	g.InvalidUse = g.InvalidUse[:0]
	g.CopiedRegions = g.CopiedRegions[:0]
	g.Calls = g.Calls[:0]
}

func (g *GL) Init() error {
	if g.FailInit {
		return fmt.Errorf("mock: init failed")
	}
	return nil
}

func (g *GL) Enable(cap gpu.Enum) {
	g.call("Enable", cap)
	g.Enabled[cap] = true
}

func (g *GL) Disable(cap gpu.Enum) {
	g.call("Disable", cap)
	delete(g.Enabled, cap)
}

func (g *GL) IsEnabled(cap gpu.Enum) bool {
	return g.Enabled[cap]
}

func (g *GL) GetInteger(pname gpu.Enum) int32 {
	return g.Integers[pname]
}

func (g *GL) GetError() gpu.Enum {
	if len(g.PendingErrors) == 0 {
		return gpu.NO_ERROR
	}
	e := g.PendingErrors[0]
	g.PendingErrors = g.PendingErrors[1:]
	return e
}

func (g *GL) HasExtension(name string) bool {
	return g.Extensions[name]
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.ViewportBox = [4]int32{x, y, width, height}
}

func (g *GL) MatrixMode(mode gpu.Enum) {
	g.call("MatrixMode", mode)
}

func (g *GL) LoadIdentity() {
	g.call("LoadIdentity")
}

func (g *GL) Ortho(left, right, bottom, top, near, far float64) {
	g.OrthoBox = [6]float64{left, right, bottom, top, near, far}
}

func (g *GL) DepthMask(flag bool) {
	g.call("DepthMask", flag)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.call("ClearColor", r, gr, b, a)
}

func (g *GL) Clear(mask gpu.Enum) {
	g.call("Clear", mask)
}

func (g *GL) StencilMask(mask uint32) {
	g.call("StencilMask", mask)
}

func (g *GL) StencilFunc(fn gpu.Enum, ref int32, mask uint32) {
	g.call("StencilFunc", fn, ref, mask)
}

func (g *GL) Scissor(x, y, width, height int32) {
	g.ScissorBox = [4]int32{x, y, width, height}
}

func (g *GL) BlendFunc(sfactor, dfactor gpu.Enum) {
	g.Blend = [2]gpu.Enum{sfactor, dfactor}
}

func (g *GL) LogicOp(op gpu.Enum) {
	g.LogicOpValue = op
}

func (g *GL) Color4f(r, gr, b, a float32) {
	g.call("Color4f", r, gr, b, a)
	g.Color = [4]float32{r, gr, b, a}
}

func (g *GL) TexEnvi(target, pname gpu.Enum, param int32) {
	g.TexEnv[TexEnvKey{Unit: g.ActiveUnit, Pname: pname}] = param
}

func (g *GL) ActiveTexture(unit gpu.Enum) {
	g.ActiveUnit = unit
}

func (g *GL) GenTexture() gpu.Texture {
	if g.FailTextures || (g.FailTexturesAfter > 0 && g.texturesMade >= g.FailTexturesAfter) {
		return 0
	}
	g.texturesMade++
	t := gpu.Texture(g.name())
	g.textures[t] = &Texture{Params: make(map[gpu.Enum]int32)}
	return t
}

func (g *GL) DeleteTexture(tex gpu.Texture) {
	if _, ok := g.textures[tex]; !ok {
		g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("DeleteTexture of unknown texture %d", tex))
		return
	}
	delete(g.textures, tex)
	for k, v := range g.bound {
		if v == tex {
			delete(g.bound, k)
		}
	}
}

func (g *GL) BindTexture(target gpu.Enum, tex gpu.Texture) {
	if tex != 0 {
		t, ok := g.textures[tex]
		if !ok {
			g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("BindTexture of unknown texture %d", tex))
			return
		}
		// a texture takes the target of its first binding and can't be
		// bound to any other
		if t.Target != 0 && t.Target != target {
			g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("BindTexture of texture %d to %#x (created as %#x)", tex, target, t.Target))
			return
		}
		t.Target = target
	}
	g.bound[bindKey{unit: g.ActiveUnit, target: target}] = tex
}

func (g *GL) boundTexture(target gpu.Enum) *Texture {
	return g.textures[g.bound[bindKey{unit: g.ActiveUnit, target: target}]]
}

func (g *GL) TexParameteri(target, pname gpu.Enum, param int32) {
	if t := g.boundTexture(target); t != nil {
		t.Params[pname] = param
	}
}

func (g *GL) TexImage2D(target gpu.Enum, internalFormat int32, width, height int32, format gpu.Enum) {
	if t := g.boundTexture(target); t != nil {
		t.Width = width
		t.Height = height
	} else {
		g.InvalidUse = append(g.InvalidUse, "TexImage2D with no texture bound")
	}
}

func (g *GL) CopyTexSubImage2D(target gpu.Enum, xoffset, yoffset, x, y, width, height int32) {
	g.call("CopyTexSubImage2D")
	if t := g.boundTexture(target); t == nil {
		g.InvalidUse = append(g.InvalidUse, "CopyTexSubImage2D with no texture bound")
	}
	g.CopiedRegions = append(g.CopiedRegions, [7]int32{int32(g.bound[bindKey{unit: g.ActiveUnit, target: target}]), xoffset, yoffset, x, y, width, height})
}

func (g *GL) GenFramebuffer() gpu.Framebuffer {
	if g.FailFramebuffers {
		return 0
	}
	f := gpu.Framebuffer(g.name())
	g.framebuffers[f] = true
	return f
}

func (g *GL) DeleteFramebuffer(fbo gpu.Framebuffer) {
	if !g.framebuffers[fbo] {
		g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("DeleteFramebuffer of unknown framebuffer %d", fbo))
		return
	}
	delete(g.framebuffers, fbo)
	if g.Framebuffer == fbo {
		g.Framebuffer = 0
	}
}

func (g *GL) BindFramebuffer(fbo gpu.Framebuffer) {
	g.call("BindFramebuffer", fbo)
	if fbo != 0 && !g.framebuffers[fbo] {
		g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("BindFramebuffer of unknown framebuffer %d", fbo))
	}
	g.Framebuffer = fbo
}

func (g *GL) FramebufferTexture2D(attachment, textarget gpu.Enum, tex gpu.Texture) {
	g.call("FramebufferTexture2D", tex)
	g.Attachment = tex
}

func (g *GL) DrawBuffer(buf gpu.Enum) {
	g.DrawBufferValue = buf
}

func (g *GL) CheckFramebufferStatus() gpu.Enum {
	if g.FramebufferIncomplete || g.Framebuffer == 0 || g.textures[g.Attachment] == nil {
		return 0
	}
	return gpu.FRAMEBUFFER_COMPLETE
}

func (g *GL) ReadBuffer(src gpu.Enum) {
	g.ReadBufferValue = src
}

func (g *GL) PixelStorei(pname gpu.Enum, param int32) {
	g.call("PixelStorei", pname, param)
	g.Integers[pname] = param
}

// ReadPixels fills the buffer with a pattern derived from the pixel
// position. The pattern depends on the pack alignment being one.
func (g *GL) ReadPixels(x, y, width, height int32, format gpu.Enum, pixels []byte) {
	g.call("ReadPixels", g.ReadBufferValue, g.Integers[gpu.PACK_ALIGNMENT])
	for i := range pixels {
		pixels[i] = byte(i % 251)
	}
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

func (g *GL) CreateShader(kind gpu.Enum) gpu.Shader {
	s := gpu.Shader(g.name())
	g.shaders[s] = &shader{kind: kind}
	return s
}

func (g *GL) ShaderSource(s gpu.Shader, source string) {
	if sh, ok := g.shaders[s]; ok {
		sh.source = source
	}
}

func (g *GL) CompileShader(s gpu.Shader) {
	if sh, ok := g.shaders[s]; ok {
		sh.compiled = g.FailCompile == "" || !strings.Contains(sh.source, g.FailCompile)
	}
}

func (g *GL) GetShaderi(s gpu.Shader, pname gpu.Enum) int32 {
	sh, ok := g.shaders[s]
	if !ok {
		return 0
	}
	switch pname {
	case gpu.COMPILE_STATUS:
		if sh.compiled {
			return gpu.TRUE
		}
		return gpu.FALSE
	}
	return 0
}

func (g *GL) ShaderInfoLog(s gpu.Shader) string {
	if sh, ok := g.shaders[s]; ok && !sh.compiled {
		return "0:1(1): error: mock compile failure"
	}
	return ""
}

func (g *GL) DeleteShader(s gpu.Shader) {
	if _, ok := g.shaders[s]; !ok {
		g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("DeleteShader of unknown shader %d", s))
		return
	}
	delete(g.shaders, s)
}

func (g *GL) CreateProgram() gpu.Program {
	p := gpu.Program(g.name())
	g.programs[p] = &program{shaders: make(map[gpu.Shader]bool)}
	return p
}

func (g *GL) AttachShader(p gpu.Program, s gpu.Shader) {
	if prg, ok := g.programs[p]; ok {
		prg.shaders[s] = true
	}
}

func (g *GL) DetachShader(p gpu.Program, s gpu.Shader) {
	if prg, ok := g.programs[p]; ok {
		delete(prg.shaders, s)
	}
}

func (g *GL) LinkProgram(p gpu.Program) {
	prg, ok := g.programs[p]
	if !ok {
		return
	}

	prg.linked = !g.FailLink
	prg.sources = prg.sources[:0]
	prg.uniforms = prg.uniforms[:0]
	attached := make([]gpu.Shader, 0, len(prg.shaders))
	for s := range prg.shaders {
		attached = append(attached, s)
	}
	sort.Slice(attached, func(i, j int) bool { return attached[i] < attached[j] })

	for _, s := range attached {
		sh := g.shaders[s]
		if sh == nil || !sh.compiled {
			prg.linked = false
			continue
		}
		prg.sources = append(prg.sources, sh.source)
		for _, m := range uniformDecl.FindAllStringSubmatch(sh.source, -1) {
			prg.uniforms = append(prg.uniforms, m[1])
		}
	}
}

func (g *GL) GetProgrami(p gpu.Program, pname gpu.Enum) int32 {
	prg, ok := g.programs[p]
	if !ok {
		return 0
	}
	switch pname {
	case gpu.LINK_STATUS:
		if prg.linked {
			return gpu.TRUE
		}
		return gpu.FALSE
	}
	return 0
}

func (g *GL) ProgramInfoLog(p gpu.Program) string {
	if prg, ok := g.programs[p]; ok && !prg.linked {
		return "error: mock link failure"
	}
	return ""
}

func (g *GL) DeleteProgram(p gpu.Program) {
	if _, ok := g.programs[p]; !ok {
		g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("DeleteProgram of unknown program %d", p))
		return
	}
	delete(g.programs, p)
	if g.Program == p {
		g.Program = 0
	}
}

func (g *GL) UseProgram(p gpu.Program) {
	g.call("UseProgram", p)
	if p != 0 {
		if prg, ok := g.programs[p]; !ok || !prg.linked {
			g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("UseProgram of unusable program %d", p))
		}
	}
	g.Program = p
}

func (g *GL) GetUniformLocation(p gpu.Program, name string) gpu.Uniform {
	prg, ok := g.programs[p]
	if !ok || !prg.linked || g.MissingUniforms[name] {
		return gpu.NoUniform
	}
	for i, u := range prg.uniforms {
		if u == name {
			return gpu.Uniform(i)
		}
	}
	return gpu.NoUniform
}

func (g *GL) uniform(u gpu.Uniform, values ...float32) {
	prg, ok := g.programs[g.Program]
	if !ok || !u.Valid() || int(u) >= len(prg.uniforms) {
		g.InvalidUse = append(g.InvalidUse, fmt.Sprintf("uniform %d set on program %d", u, g.Program))
		return
	}
	g.Uniforms = append(g.Uniforms, UniformValue{
		Program: g.Program,
		Name:    prg.uniforms[u],
		Values:  values,
	})
}

func (g *GL) Uniform1f(u gpu.Uniform, v float32) {
	g.uniform(u, v)
}

func (g *GL) Uniform2f(u gpu.Uniform, v0, v1 float32) {
	g.uniform(u, v0, v1)
}

func (g *GL) Uniform1i(u gpu.Uniform, v int32) {
	g.uniform(u, float32(v))
}

func (g *GL) Begin(mode gpu.Enum) {
	if g.inBegin {
		g.InvalidUse = append(g.InvalidUse, "nested Begin")
	}
	g.inBegin = true
	if mode == gpu.QUADS {
		g.Quads++
	}
}

func (g *GL) End() {
	if !g.inBegin {
		g.InvalidUse = append(g.InvalidUse, "End without Begin")
	}
	g.inBegin = false
}

func (g *GL) TexCoord2f(s, t float32) {
	g.s, g.t = s, t
}

func (g *GL) MultiTexCoord2f(unit gpu.Enum, s, t float32) {
	switch unit {
	case gpu.TEXTURE0:
		g.s, g.t = s, t
	case gpu.TEXTURE1:
		g.s1, g.t1 = s, t
	}
}

func (g *GL) Vertex3f(x, y, z float32) {
	if !g.inBegin {
		g.InvalidUse = append(g.InvalidUse, "Vertex outside of Begin/End")
	}
	g.Vertices = append(g.Vertices, Vertex{X: x, Y: y, Z: z, S: g.s, T: g.t, S1: g.s1, T1: g.t1})
}

var _ gpu.GL = (*GL)(nil)
