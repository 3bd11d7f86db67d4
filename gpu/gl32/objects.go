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

package gl32

import (
	"strings"

	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/jetsetilly/glimmer/gpu"
)

func (g *GL) GenTexture() gpu.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return gpu.Texture(t)
}

func (g *GL) DeleteTexture(tex gpu.Texture) {
	t := uint32(tex)
	gl.DeleteTextures(1, &t)
}

func (g *GL) BindTexture(target gpu.Enum, tex gpu.Texture) {
	gl.BindTexture(target, uint32(tex))
}

func (g *GL) TexParameteri(target, pname gpu.Enum, param int32) {
	gl.TexParameteri(target, pname, param)
}

// TexImage2D allocates storage for the texture bound to target. The texture
// contents are undefined.
func (g *GL) TexImage2D(target gpu.Enum, internalFormat int32, width, height int32, format gpu.Enum) {
	gl.TexImage2D(target, 0, internalFormat, width, height, 0, format, gl.UNSIGNED_BYTE, nil)
}

func (g *GL) CopyTexSubImage2D(target gpu.Enum, xoffset, yoffset, x, y, width, height int32) {
	gl.CopyTexSubImage2D(target, 0, xoffset, yoffset, x, y, width, height)
}

func (g *GL) GenFramebuffer() gpu.Framebuffer {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return gpu.Framebuffer(f)
}

func (g *GL) DeleteFramebuffer(fbo gpu.Framebuffer) {
	f := uint32(fbo)
	gl.DeleteFramebuffers(1, &f)
}

func (g *GL) BindFramebuffer(fbo gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fbo))
}

func (g *GL) FramebufferTexture2D(attachment, textarget gpu.Enum, tex gpu.Texture) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, textarget, uint32(tex), 0)
}

func (g *GL) DrawBuffer(buf gpu.Enum) {
	bufs := [1]uint32{buf}
	gl.DrawBuffers(1, &bufs[0])
}

func (g *GL) CheckFramebufferStatus() gpu.Enum {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
}

func (g *GL) ReadBuffer(src gpu.Enum) {
	gl.ReadBuffer(src)
}

func (g *GL) PixelStorei(pname gpu.Enum, param int32) {
	gl.PixelStorei(pname, param)
}

func (g *GL) ReadPixels(x, y, width, height int32, format gpu.Enum, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	gl.ReadPixels(x, y, width, height, format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (g *GL) CreateShader(kind gpu.Enum) gpu.Shader {
	return gpu.Shader(gl.CreateShader(kind))
}

func (g *GL) ShaderSource(shader gpu.Shader, source string) {
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(uint32(shader), 1, csource, nil)
}

func (g *GL) CompileShader(shader gpu.Shader) {
	gl.CompileShader(uint32(shader))
}

func (g *GL) GetShaderi(shader gpu.Shader, pname gpu.Enum) int32 {
	var v int32
	gl.GetShaderiv(uint32(shader), pname, &v)
	return v
}

func (g *GL) ShaderInfoLog(shader gpu.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	// the length includes the NULL character
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(shader), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteShader(shader gpu.Shader) {
	gl.DeleteShader(uint32(shader))
}

func (g *GL) CreateProgram() gpu.Program {
	return gpu.Program(gl.CreateProgram())
}

func (g *GL) AttachShader(program gpu.Program, shader gpu.Shader) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (g *GL) DetachShader(program gpu.Program, shader gpu.Shader) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (g *GL) LinkProgram(program gpu.Program) {
	gl.LinkProgram(uint32(program))
}

func (g *GL) GetProgrami(program gpu.Program, pname gpu.Enum) int32 {
	var v int32
	gl.GetProgramiv(uint32(program), pname, &v)
	return v
}

func (g *GL) ProgramInfoLog(program gpu.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteProgram(program gpu.Program) {
	gl.DeleteProgram(uint32(program))
}

func (g *GL) UseProgram(program gpu.Program) {
	gl.UseProgram(uint32(program))
}

func (g *GL) GetUniformLocation(program gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (g *GL) Uniform1f(u gpu.Uniform, v float32) {
	gl.Uniform1f(int32(u), v)
}

func (g *GL) Uniform2f(u gpu.Uniform, v0, v1 float32) {
	gl.Uniform2f(int32(u), v0, v1)
}

func (g *GL) Uniform1i(u gpu.Uniform, v int32) {
	gl.Uniform1i(int32(u), v)
}

func (g *GL) Begin(mode gpu.Enum) {
	gl.Begin(mode)
}

func (g *GL) End() {
	gl.End()
}

func (g *GL) TexCoord2f(s, t float32) {
	gl.TexCoord2f(s, t)
}

func (g *GL) MultiTexCoord2f(unit gpu.Enum, s, t float32) {
	gl.MultiTexCoord2f(unit, s, t)
}

func (g *GL) Vertex3f(x, y, z float32) {
	gl.Vertex3f(x, y, z)
}
