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

package region

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

// Region is a set of pixels represented by a list of non-overlapping
// rectangles.
type Region struct {
	rects []image.Rectangle
}

// New returns a region covering the supplied rectangles. Rectangles may
// overlap.
func New(rects ...image.Rectangle) *Region {
	reg := &Region{}
	for _, r := range rects {
		reg.UnionRect(r)
	}
	return reg
}

func (reg *Region) String() string {
	if reg.IsEmpty() {
		return "empty"
	}
	s := strings.Builder{}
	for i, r := range reg.Rectangles() {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%d,%d-%d,%d", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y))
	}
	return s.String()
}

// IsEmpty returns true if the region covers no pixels.
func (reg *Region) IsEmpty() bool {
	return reg == nil || len(reg.rects) == 0
}

// Rectangles returns the rectangles that make up the region, sorted top to
// bottom and then left to right. The returned slice is a copy.
func (reg *Region) Rectangles() []image.Rectangle {
	if reg == nil {
		return nil
	}
	rects := make([]image.Rectangle, len(reg.rects))
	copy(rects, reg.rects)
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Min.Y == rects[j].Min.Y {
			return rects[i].Min.X < rects[j].Min.X
		}
		return rects[i].Min.Y < rects[j].Min.Y
	})
	return rects
}

// Len returns the number of rectangles in the region.
func (reg *Region) Len() int {
	if reg == nil {
		return 0
	}
	return len(reg.rects)
}

// Bounds returns the smallest rectangle containing the entire region.
func (reg *Region) Bounds() image.Rectangle {
	var b image.Rectangle
	if reg == nil {
		return b
	}
	for _, r := range reg.rects {
		b = b.Union(r)
	}
	return b
}

// Area returns the number of pixels in the region.
func (reg *Region) Area() int {
	if reg == nil {
		return 0
	}
	var a int
	for _, r := range reg.rects {
		a += r.Dx() * r.Dy()
	}
	return a
}

// Copy returns a new region covering the same pixels.
func (reg *Region) Copy() *Region {
	c := &Region{}
	if reg != nil {
		c.rects = make([]image.Rectangle, len(reg.rects))
		copy(c.rects, reg.rects)
	}
	return c
}

// Set replaces the contents of the region with the contents of another
// region.
func (reg *Region) Set(o *Region) {
	reg.rects = reg.rects[:0]
	if o != nil {
		reg.rects = append(reg.rects, o.rects...)
	}
}

// SetRect replaces the contents of the region with a single rectangle.
func (reg *Region) SetRect(r image.Rectangle) {
	reg.rects = reg.rects[:0]
	r = r.Canon()
	if !r.Empty() {
		reg.rects = append(reg.rects, r)
	}
}

// Clear empties the region.
func (reg *Region) Clear() {
	reg.rects = reg.rects[:0]
}

// UnionRect adds a rectangle to the region.
func (reg *Region) UnionRect(r image.Rectangle) {
	r = r.Canon()
	if r.Empty() {
		return
	}

	// only the parts of r that are not already covered are added
	pieces := []image.Rectangle{r}
	for _, e := range reg.rects {
		var next []image.Rectangle
		for _, p := range pieces {
			next = append(next, subtract(p, e)...)
		}
		pieces = next
		if len(pieces) == 0 {
			return
		}
	}

	reg.rects = append(reg.rects, pieces...)
	reg.coalesce()
}

// Union adds the pixels of another region.
func (reg *Region) Union(o *Region) {
	if o == nil {
		return
	}
	for _, r := range o.rects {
		reg.UnionRect(r)
	}
}

// IntersectRect removes any pixels that are outside of the rectangle.
func (reg *Region) IntersectRect(r image.Rectangle) {
	r = r.Canon()
	n := reg.rects[:0]
	for _, e := range reg.rects {
		i := e.Intersect(r)
		if !i.Empty() {
			n = append(n, i)
		}
	}
	reg.rects = n
	reg.coalesce()
}

// Intersect removes any pixels that are not also in the other region.
func (reg *Region) Intersect(o *Region) {
	if o == nil {
		reg.Clear()
		return
	}

	// pairwise intersections of two sets of disjoint rectangles are also
	// disjoint
	var n []image.Rectangle
	for _, a := range reg.rects {
		for _, b := range o.rects {
			i := a.Intersect(b)
			if !i.Empty() {
				n = append(n, i)
			}
		}
	}
	reg.rects = n
	reg.coalesce()
}

// SubtractRect removes the pixels of the rectangle from the region.
func (reg *Region) SubtractRect(r image.Rectangle) {
	r = r.Canon()
	var n []image.Rectangle
	for _, e := range reg.rects {
		n = append(n, subtract(e, r)...)
	}
	reg.rects = n
	reg.coalesce()
}

// Subtract removes the pixels of another region.
func (reg *Region) Subtract(o *Region) {
	if o == nil {
		return
	}
	for _, r := range o.rects {
		reg.SubtractRect(r)
	}
}

// Contains returns true if the point is inside the region.
func (reg *Region) Contains(p image.Point) bool {
	if reg == nil {
		return false
	}
	for _, r := range reg.rects {
		if p.In(r) {
			return true
		}
	}
	return false
}

// Equal returns true if both regions cover exactly the same pixels. The
// rectangles that make up each region may differ.
func (reg *Region) Equal(o *Region) bool {
	if reg.Area() != o.Area() {
		return false
	}
	d := reg.Copy()
	d.Subtract(o)
	return d.IsEmpty()
}

// Translate moves every rectangle in the region by the point.
func (reg *Region) Translate(p image.Point) {
	for i := range reg.rects {
		reg.rects[i] = reg.rects[i].Add(p)
	}
}

// subtract returns the parts of a that are not covered by b. The returned
// rectangles do not overlap.
func subtract(a, b image.Rectangle) []image.Rectangle {
	i := a.Intersect(b)
	if i.Empty() {
		return []image.Rectangle{a}
	}

	var n []image.Rectangle

	// band above and below the intersection take the full width of a
	if a.Min.Y < i.Min.Y {
		n = append(n, image.Rect(a.Min.X, a.Min.Y, a.Max.X, i.Min.Y))
	}
	if i.Max.Y < a.Max.Y {
		n = append(n, image.Rect(a.Min.X, i.Max.Y, a.Max.X, a.Max.Y))
	}

	// left and right of the intersection take the height of the intersection
	if a.Min.X < i.Min.X {
		n = append(n, image.Rect(a.Min.X, i.Min.Y, i.Min.X, i.Max.Y))
	}
	if i.Max.X < a.Max.X {
		n = append(n, image.Rect(i.Max.X, i.Min.Y, a.Max.X, i.Max.Y))
	}

	return n
}

// coalesce merges rectangles that share a complete edge. repeated until no
// more merges are possible.
func (reg *Region) coalesce() {
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(reg.rects) && !merged; i++ {
			for j := i + 1; j < len(reg.rects); j++ {
				if m, ok := merge(reg.rects[i], reg.rects[j]); ok {
					reg.rects[i] = m
					reg.rects = append(reg.rects[:j], reg.rects[j+1:]...)
					merged = true
					break // for j loop
				}
			}
		}
	}
}

func merge(a, b image.Rectangle) (image.Rectangle, bool) {
	if a.Min.X == b.Min.X && a.Max.X == b.Max.X && (a.Max.Y == b.Min.Y || b.Max.Y == a.Min.Y) {
		return a.Union(b), true
	}
	if a.Min.Y == b.Min.Y && a.Max.Y == b.Max.Y && (a.Max.X == b.Min.X || b.Max.X == a.Min.X) {
		return a.Union(b), true
	}
	return image.Rectangle{}, false
}
