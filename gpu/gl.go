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

// GL is the subset of OpenGL used by the renderer. All calls must be made on
// the thread that owns the current context.
type GL interface {
	// Init loads the GL entry points. Must be called after a context has
	// been made current.
	Init() error

	Enable(cap Enum)
	Disable(cap Enum)
	IsEnabled(cap Enum) bool
	GetInteger(pname Enum) int32
	GetError() Enum
	HasExtension(name string) bool

	Viewport(x, y, width, height int32)
	MatrixMode(mode Enum)
	LoadIdentity()
	Ortho(left, right, bottom, top, near, far float64)
	DepthMask(flag bool)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	StencilMask(mask uint32)
	StencilFunc(fn Enum, ref int32, mask uint32)
	Scissor(x, y, width, height int32)
	BlendFunc(sfactor, dfactor Enum)
	LogicOp(op Enum)
	Color4f(r, g, b, a float32)
	TexEnvi(target, pname Enum, param int32)
	ActiveTexture(unit Enum)

	GenTexture() Texture
	DeleteTexture(tex Texture)
	BindTexture(target Enum, tex Texture)
	TexParameteri(target, pname Enum, param int32)
	TexImage2D(target Enum, internalFormat int32, width, height int32, format Enum)
	CopyTexSubImage2D(target Enum, xoffset, yoffset, x, y, width, height int32)

	GenFramebuffer() Framebuffer
	DeleteFramebuffer(fbo Framebuffer)
	BindFramebuffer(fbo Framebuffer)
	FramebufferTexture2D(attachment, textarget Enum, tex Texture)
	DrawBuffer(buf Enum)
	CheckFramebufferStatus() Enum

	ReadBuffer(src Enum)
	PixelStorei(pname Enum, param int32)
	ReadPixels(x, y, width, height int32, format Enum, pixels []byte)

	CreateShader(kind Enum) Shader
	ShaderSource(shader Shader, source string)
	CompileShader(shader Shader)
	GetShaderi(shader Shader, pname Enum) int32
	ShaderInfoLog(shader Shader) string
	DeleteShader(shader Shader)

	CreateProgram() Program
	AttachShader(program Program, shader Shader)
	DetachShader(program Program, shader Shader)
	LinkProgram(program Program)
	GetProgrami(program Program, pname Enum) int32
	ProgramInfoLog(program Program) string
	DeleteProgram(program Program)
	UseProgram(program Program)
	GetUniformLocation(program Program, name string) Uniform
	Uniform1f(u Uniform, v float32)
	Uniform2f(u Uniform, v0, v1 float32)
	Uniform1i(u Uniform, v int32)

	Begin(mode Enum)
	End()
	TexCoord2f(s, t float32)
	MultiTexCoord2f(unit Enum, s, t float32)
	Vertex3f(x, y, z float32)
}
