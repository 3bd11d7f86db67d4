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

package blur

import (
	"math"
	"sort"
)

// Presets is the list of named kernels accepted by Preset() and
// ParseKernel().
var Presets = []string{
	"3x3box", "5x5box", "7x7box",
	"3x3gaussian", "5x5gaussian", "7x7gaussian", "9x9gaussian", "11x11gaussian",
}

var presets = map[string]func() Kernel{
	"3x3box":        func() Kernel { return box(3) },
	"5x5box":        func() Kernel { return box(5) },
	"7x7box":        func() Kernel { return box(7) },
	"3x3gaussian":   func() Kernel { return gaussian(3) },
	"5x5gaussian":   func() Kernel { return gaussian(5) },
	"7x7gaussian":   func() Kernel { return gaussian(7) },
	"9x9gaussian":   func() Kernel { return gaussian(9) },
	"11x11gaussian": func() Kernel { return gaussian(11) },
}

func init() {
	sort.Strings(Presets)
}

// Preset returns the named kernel. The bool is false if there is no preset
// of that name.
func Preset(name string) (Kernel, bool) {
	f, ok := presets[name]
	if !ok {
		return Kernel{}, false
	}
	return f(), true
}

func box(n int) Kernel {
	k := Kernel{Width: n, Height: n, Weights: make([]float64, n*n)}
	for i := range k.Weights {
		k.Weights[i] = 1
	}
	k.Weights[(n/2)*n+n/2] = 0
	return k
}

// weights are exp(-(x*x+y*y)/sqrt(2)) measured from the centre cell and
// rounded to six decimal places
func gaussian(n int) Kernel {
	k := Kernel{Width: n, Height: n, Weights: make([]float64, n*n)}
	c := n / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x == c && y == c {
				continue
			}
			dx := float64(x - c)
			dy := float64(y - c)
			w := math.Exp(-(dx*dx + dy*dy) / math.Sqrt2)
			k.Weights[y*n+x] = math.Round(w*1e6) / 1e6
		}
	}
	return k
}

// strength presets for the kawase method
var strengths = [...]Kawase{
	{Iterations: 1, Offset: 1.25},
	{Iterations: 1, Offset: 2.25},
	{Iterations: 2, Offset: 2.0},
	{Iterations: 2, Offset: 3.0},
	{Iterations: 2, Offset: 4.25},
	{Iterations: 3, Offset: 2.5},
	{Iterations: 3, Offset: 3.25},
	{Iterations: 3, Offset: 4.25},
	{Iterations: 3, Offset: 5.5},
	{Iterations: 4, Offset: 3.25},
	{Iterations: 4, Offset: 4.0},
	{Iterations: 4, Offset: 5.0},
	{Iterations: 4, Offset: 6.0},
	{Iterations: 4, Offset: 7.25},
	{Iterations: 4, Offset: 8.25},
	{Iterations: 5, Offset: 4.5},
	{Iterations: 5, Offset: 5.25},
	{Iterations: 5, Offset: 6.25},
	{Iterations: 5, Offset: 7.25},
	{Iterations: 5, Offset: 8.5},
}

// MaxStrength is the highest strength accepted by Strength().
const MaxStrength = len(strengths)

// Strength returns the kawase parameters for a strength between 1 and
// MaxStrength. Values outside of that range are clamped.
func Strength(level int) Kawase {
	if level < 1 {
		level = 1
	} else if level > MaxStrength {
		level = MaxStrength
	}
	return strengths[level-1]
}
