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

// Package xglx implements gpu.Display for an X11 server with the GLX
// extension.
//
// GLX requests that have no protocol equivalent (context creation, the
// texture_from_pixmap entry points and buffer swaps) are made through Xlib
// and libGL with cgo. Plain protocol queries, such as pixmap geometry and the
// root window size, are made with xgb/xgbutil on a second connection to the
// same server.
//
// The GL context is bound to the OS thread that calls CreateContext().
// Callers should lock the goroutine to its thread with runtime.LockOSThread()
// before creating the context and make every subsequent call from that
// goroutine.
package xglx
