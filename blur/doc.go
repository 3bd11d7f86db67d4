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

// Package blur describes the two blur algorithms supported by the renderer
// and generates the GLSL source for them.
//
// The convolution method applies one or more kernels in sequence. Each
// kernel becomes one fragment shader and therefore one pass. The kawase
// method (dual filtering) repeatedly down-samples the image into smaller
// textures before up-sampling it again. It always uses exactly two shaders,
// the number of iterations being decided when the blur is drawn.
//
// Kernels can be specified as a string. The string is a comma separated list
// of numbers: the width and height of the kernel followed by the weights of
// every cell except the centre cell, row by row. For example, a 3x3 box
// kernel is:
//
//	3,3,1,1,1,1,1,1,1,1
//
// Kernels can also be named by preset. See the Presets list. Multiple
// kernels are separated by a semi-colon.
package blur
