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
	"math"
	"strconv"
	"strings"

	"github.com/jetsetilly/glimmer/curated"
)

// MaxPasses is the maximum number of kernels that can be applied in
// sequence by the convolution method.
const MaxPasses = 5

// Kernel is a convolution kernel. The weight of the centre cell is never
// used by the shader. The factor_center uniform takes its place.
type Kernel struct {
	Width   int
	Height  int
	Weights []float64
}

// At returns the weight at column x and row y.
func (k Kernel) At(x, y int) float64 {
	return k.Weights[y*k.Width+x]
}

// Center returns the column and row of the centre cell.
func (k Kernel) Center() (int, int) {
	return k.Width / 2, k.Height / 2
}

// Sum returns the total of all non-centre weights.
func (k Kernel) Sum() float64 {
	cx, cy := k.Center()
	var sum float64
	for y := 0; y < k.Height; y++ {
		for x := 0; x < k.Width; x++ {
			if x == cx && y == cy {
				continue
			}
			sum += k.At(x, y)
		}
	}
	return sum
}

// String returns the kernel in the form accepted by ParseKernel.
func (k Kernel) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%d,%d", k.Width, k.Height))
	cx, cy := k.Center()
	for y := 0; y < k.Height; y++ {
		for x := 0; x < k.Width; x++ {
			if x == cx && y == cy {
				continue
			}
			s.WriteString(",")
			s.WriteString(strconv.FormatFloat(k.At(x, y), 'g', -1, 64))
		}
	}
	return s.String()
}

// Sentinel patterns for kernel parsing errors.
const (
	KernelError = "kernel: %v"
)

// maximum dimension of a kernel
const maxKernelDimension = 16

// ParseKernel parses a kernel from the comma separated form described in
// the package documentation, or from a preset name.
func ParseKernel(s string) (Kernel, error) {
	s = strings.TrimSpace(s)
	if k, ok := Preset(s); ok {
		return k, nil
	}

	f := strings.Split(s, ",")
	if len(f) < 2 {
		return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("too short (%s)", s))
	}

	var k Kernel
	var err error

	k.Width, err = strconv.Atoi(strings.TrimSpace(f[0]))
	if err != nil {
		return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("invalid width (%s)", f[0]))
	}
	k.Height, err = strconv.Atoi(strings.TrimSpace(f[1]))
	if err != nil {
		return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("invalid height (%s)", f[1]))
	}
	if k.Width < 1 || k.Height < 1 || k.Width > maxKernelDimension || k.Height > maxKernelDimension {
		return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("unsupported size (%dx%d)", k.Width, k.Height))
	}

	n := k.Width*k.Height - 1
	if len(f)-2 != n {
		return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("%dx%d kernel needs %d weights not %d", k.Width, k.Height, n, len(f)-2))
	}

	k.Weights = make([]float64, k.Width*k.Height)
	cx, cy := k.Center()
	centre := cy*k.Width + cx
	i := 0
	for _, v := range f[2:] {
		if i == centre {
			i++
		}
		k.Weights[i], err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("invalid weight (%s)", v))
		}
		if math.IsNaN(k.Weights[i]) || math.IsInf(k.Weights[i], 0) {
			return Kernel{}, curated.Errorf(KernelError, fmt.Sprintf("invalid weight (%s)", v))
		}
		i++
	}

	return k, nil
}

// ParseKernels parses a semi-colon separated list of kernels. Empty entries
// are ignored. No more than MaxPasses kernels are allowed.
func ParseKernels(s string) ([]Kernel, error) {
	var ks []Kernel
	for _, p := range strings.Split(s, ";") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		k, err := ParseKernel(p)
		if err != nil {
			return nil, err
		}
		ks = append(ks, k)
	}
	if len(ks) == 0 {
		return nil, curated.Errorf(KernelError, "no kernels")
	}
	if len(ks) > MaxPasses {
		return nil, curated.Errorf(KernelError, fmt.Sprintf("too many kernels (max %d)", MaxPasses))
	}
	return ks, nil
}
