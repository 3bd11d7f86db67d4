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

// Package region implements sets of pixels described by non-overlapping
// integer rectangles. It is the currency for damage tracking and clipping
// throughout the renderer.
//
// Rectangles are image.Rectangle values and so are half-open: Min is
// inclusive and Max is exclusive. Empty rectangles are never stored.
//
// The zero value of Region is an empty region ready for use.
package region
