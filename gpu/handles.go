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

// Enum is an OpenGL or GLX enumeration value.
type Enum = uint32

// Texture is a GL texture object name. The zero value is no texture.
type Texture uint32

// Framebuffer is a GL framebuffer object name. The zero value is the default
// framebuffer.
type Framebuffer uint32

// Program is a GLSL program object name. The zero value is no program.
type Program uint32

// Shader is a GLSL shader object name. The zero value is no shader.
type Shader uint32

// Uniform is the location of a uniform variable in a linked program.
type Uniform int32

// NoUniform is the location reported for a uniform that is not present in a
// program.
const NoUniform Uniform = -1

// Valid returns true if the uniform location can be used.
func (u Uniform) Valid() bool {
	return u >= 0
}

// Pixmap is the X11 identifier of a server side pixmap.
type Pixmap uint32

// GLXPixmap is the GLX drawable created for a Pixmap.
type GLXPixmap uintptr

// FBConfig identifies a GLX framebuffer configuration. Values are only
// meaningful to the Display that returned them.
type FBConfig int

// Visual describes the default visual of the screen.
type Visual struct {
	ID           uint32
	Depth        int
	GL           bool
	DoubleBuffer bool
}
