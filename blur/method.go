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
	"fmt"
	"strings"
)

// Method is either Convolution or Kawase. The interface is sealed and the
// renderer switches on the concrete type.
type Method interface {
	method()
	String() string
}

// Convolution applies each kernel in turn. One pass per kernel.
type Convolution struct {
	Kernels []Kernel
}

func (Convolution) method() {}

func (m Convolution) String() string {
	s := make([]string, len(m.Kernels))
	for i := range m.Kernels {
		s[i] = m.Kernels[i].String()
	}
	return fmt.Sprintf("convolution: %s", strings.Join(s, "; "))
}

// MaxIterations is the greatest number of down-sampling passes of the
// Kawase blur.
const MaxIterations = 10

// Kawase is the dual filter blur. The number of iterations is reduced at
// draw time if the blurred area is too small. See EffectiveIterations().
type Kawase struct {
	Iterations int
	Offset     float64
}

func (Kawase) method() {}

func (m Kawase) String() string {
	return fmt.Sprintf("kawase: iterations=%d offset=%g", m.Iterations, m.Offset)
}

// EffectiveIterations returns the largest number of iterations, no greater
// than the requested number, for which every down-sampled level of a width
// by height area is at least one pixel in each dimension.
func EffectiveIterations(width, height, iterations int) int {
	for iterations > 0 {
		if width>>(iterations-1) >= 1 && height>>(iterations-1) >= 1 {
			break
		}
		iterations--
	}
	return iterations
}
