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

// Package damage keeps a history of the regions painted in recent frames and
// uses it, together with the age of the back buffer, to decide how much of
// the screen must be repainted.
//
// The back buffer age is reported by the presentation surface. An age of N
// means the buffer holds the image that was presented N frames ago and so
// every region painted since then must be painted again. An age of zero
// means the content of the buffer is unknown.
package damage

import (
	"image"

	"github.com/jetsetilly/glimmer/region"
)

// MaxBufferAge is the default length of a History.
const MaxBufferAge = 5

// History is a fixed length list of regions, most recent first.
type History struct {
	entries []*region.Region
}

// NewHistory is the preferred method of initialisation for the History
// type. A length less than one is treated as MaxBufferAge.
func NewHistory(length int) *History {
	if length < 1 {
		length = MaxBufferAge
	}
	h := &History{
		entries: make([]*region.Region, length),
	}
	for i := range h.entries {
		h.entries[i] = &region.Region{}
	}
	return h
}

// Len returns the length of the history. The length never changes.
func (h *History) Len() int {
	return len(h.entries)
}

// Push a copy of the region onto the front of the history. The oldest entry
// is discarded.
func (h *History) Push(reg *region.Region) {
	oldest := h.entries[len(h.entries)-1]
	copy(h.entries[1:], h.entries[:len(h.entries)-1])

	// reuse the storage of the discarded entry
	oldest.Set(reg)
	h.entries[0] = oldest
}

// Entry returns the region painted i frames before the most recent one. The
// returned region must not be modified.
func (h *History) Entry(i int) *region.Region {
	return h.entries[i]
}

// Reset empties every entry in the history.
func (h *History) Reset() {
	for _, e := range h.entries {
		e.Clear()
	}
}

// Compute changes the region to cover everything that must be painted given
// the age of the back buffer.
//
// An age of zero, or an age longer than the history, causes the region to
// be replaced by the screen. Otherwise the region is extended with the
// age-1 most recent entries of the history.
func Compute(reg *region.Region, age int, h *History, screen image.Rectangle) {
	if age <= 0 || h == nil || age > h.Len() {
		reg.SetRect(screen)
		return
	}
	for i := 0; i < age-1; i++ {
		reg.Union(h.entries[i])
	}
}
