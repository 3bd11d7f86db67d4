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

// Package mock implements gpu.GL and gpu.Display without a graphics driver.
//
// The GL type keeps enough state to verify the behaviour of the renderer:
// enabled capabilities, texture bindings per unit, the current program and
// framebuffer, uniform values, and the vertices emitted between Begin() and
// End(). Every object name handed out is tracked so that tests can check
// for leaked objects with Live().
//
// Failures are injected by setting the exported Fail fields before use.
package mock
