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

// Package gpu defines the capability tables through which the renderer talks
// to the graphics driver and to the windowing system.
//
// The GL interface covers the subset of OpenGL used for compositing, both the
// fixed-function pipeline and GLSL. The Display interface covers the GLX and
// X11 requests: context management, framebuffer configuration queries and
// the GLX_EXT_texture_from_pixmap extension.
//
// Entry points that are resolved dynamically by the driver are obtained once
// through the Resolve functions of Display. The renderer holds on to the
// returned value for the lifetime of the context. A missing entry point is
// reported as an error at that time rather than as a failure during
// rendering.
//
// Concrete implementations are in the gl32 and xglx sub-packages. The mock
// sub-package is used for testing.
package gpu
