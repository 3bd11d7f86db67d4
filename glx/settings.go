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
	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/damage"
	"github.com/jetsetilly/glimmer/vsync"
)

// Swap methods describe what the back buffer contains after a buffer swap.
// Values greater than SwapExchange are fixed buffer ages.
const (
	// the content of the back buffer is unknown. the whole screen is
	// painted every frame
	SwapUndefined = 0

	// the back buffer holds the previous frame
	SwapCopy = 1

	// the back buffer holds the frame before the previous frame
	SwapExchange = 2

	// the age of the back buffer is queried every frame with
	// GLX_EXT_buffer_age
	SwapBufferAge = -1
)

// Settings for a RenderContext.
type Settings struct {
	// SwapMethod is one of the Swap* values or a fixed buffer age
	SwapMethod int

	// the greatest buffer age that is tracked. ages greater than this
	// cause the whole screen to be painted
	MaxBufferAge int

	// NoStencil disables the use of the stencil buffer for clipping
	NoStencil bool

	// UseGPUShader4 allows convolution shaders to use GL_EXT_gpu_shader4
	UseGPUShader4 bool

	// Blur is the blur method. A nil value means that blurring is not
	// supported and InitBlur() will fail
	Blur blur.Method

	// VSync is the method used by the Syncer returned by VSync()
	VSync vsync.Method
}

// DefaultSettings returns the settings used when no configuration is
// available.
func DefaultSettings() Settings {
	k, _ := blur.Preset("3x3box")
	return Settings{
		SwapMethod:   SwapUndefined,
		MaxBufferAge: damage.MaxBufferAge,
		Blur:         blur.Convolution{Kernels: []blur.Kernel{k}},
		VSync:        vsync.None,
	}
}

func (s Settings) tracksDamage() bool {
	return s.SwapMethod < SwapUndefined || s.SwapMethod > SwapCopy
}
