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

import "github.com/jetsetilly/glimmer/curated"

// Classes of error returned by the package. Use curated.In() to test for
// membership.
const (
	// a required extension, configuration or buffer is not available. the
	// context cannot be used for rendering
	CapabilityError = curated.Sentinel("glx: capability")

	// a GPU object could not be created. the operation failed but the
	// context remains usable
	ResourceError = curated.Sentinel("glx: resource")

	// a shader failed to compile or a program failed to link
	ShaderError = curated.Sentinel("glx: shader")

	// a query to the X server failed
	QueryError = curated.Sentinel("glx: query")
)

// Error patterns.
const (
	NoGLX           = "glx: no GLX extension"
	NoConfig        = "glx: no framebuffer configuration for depth %d"
	NotInitialised  = "glx: context not initialised for rendering"
	UnsupportedBlur = "glx: blur: %v"
)
