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

// Package config holds the user configurable values of the rendering backend
// as preferences. The values are saved to the preferences file in the
// resource directory and can be overridden on the command line with the
// prefs command line stack.
//
// The keys and their accepted values:
//
//	blur.method         convolution or kawase
//	blur.kernels        semi-colon separated kernels (convolution)
//	blur.strength       strength preset, zero to use iterations/offset (kawase)
//	blur.iterations     number of down-sample passes (kawase)
//	blur.offset         sample offset (kawase)
//	glx.swap-method     undefined, copy, exchange, buffer-age or a fixed age
//	glx.max-buffer-age  greatest buffer age tracked
//	glx.no-stencil      disable clipping with the stencil buffer
//	glx.use-gpushader4  allow GL_EXT_gpu_shader4 in convolution shaders
//	vsync               none or swap-interval
//
// Values are validated when they are set. An invalid value in the
// preferences file causes Load() to fail.
package config
