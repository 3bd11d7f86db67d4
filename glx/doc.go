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

// Package glx is the OpenGL compositing backend. It draws the contents of X
// pixmaps to the screen, optionally blurring the area behind translucent
// windows first.
//
// All work is done through a RenderContext. The context owns the GL context
// and every GPU object created on behalf of the compositor: the textures
// bound to window pixmaps, the blur programs and their scratch textures, and
// the main window program. None of the functions in this package are safe to
// call from more than one goroutine, and they must all be called from the
// OS thread on which Init() was called. The main() function of the program
// should call runtime.LockOSThread() before creating the context.
//
// A frame is painted in the following order:
//
//	rc.PreparePaint(reg)
//	for each window, bottom to top:
//		rc.BlurRegion(...)   // translucent windows only
//		rc.BindPixmap(...)
//		rc.DrawQuad(...)
//	dpy.SwapBuffers()
//
// PreparePaint() extends the region to cover any areas of the back buffer
// that are out of date and sets the clip. It relies on the age of the back
// buffer, which depends on the swap method. See the Swap* values.
//
// Coordinates given to the package are in the X convention. The origin is
// the top-left of the root window and Y increases downwards. The projection
// set up by the context puts the origin of GL coordinates at the bottom-left
// so the Y axis is flipped when vertices are emitted.
package glx
