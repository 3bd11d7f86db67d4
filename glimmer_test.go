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

package main

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/glimmer/blur"
	"github.com/jetsetilly/glimmer/test"
)

func TestShaderSourcesConvolution(t *testing.T) {
	kernels, err := blur.ParseKernels("3x3box;5x5gaussian")
	test.DemandSuccess(t, err)

	srcs := shaderSources(blur.Convolution{Kernels: kernels}, blur.ShaderOptions{})
	test.ExpectEquality(t, len(srcs), 2)
	for i, s := range srcs {
		test.ExpectEquality(t, strings.HasPrefix(s.name, "convolution pass"), true, i)
		test.ExpectEquality(t, s.source, blur.ConvolutionSource(kernels[i], blur.ShaderOptions{}), i)
	}
}

func TestShaderSourcesKawase(t *testing.T) {
	opts := blur.ShaderOptions{GPUShader4: true}
	srcs := shaderSources(blur.Strength(6), opts)
	test.ExpectEquality(t, len(srcs), 2)

	down, up := blur.KawaseSources(opts)
	test.ExpectEquality(t, srcs[0].source, down)
	test.ExpectEquality(t, srcs[1].source, up)
	test.ExpectEquality(t, strings.Contains(srcs[0].source, "sum / 8.0"), true)
}

func TestOfferSize(t *testing.T) {
	ch := make(chan image.Point, 1)

	offerSize(ch, image.Pt(10, 20))
	test.ExpectEquality(t, <-ch, image.Pt(10, 20))

	// an unread size is replaced
	offerSize(ch, image.Pt(10, 20))
	offerSize(ch, image.Pt(30, 40))
	test.ExpectEquality(t, len(ch), 1)
	test.ExpectEquality(t, <-ch, image.Pt(30, 40))

	// the sender never blocks while the receiver drains concurrently
	done := make(chan bool)
	go func() {
		for i := 0; i < 1000; i++ {
			offerSize(ch, image.Pt(i, i))
		}
		done <- true
	}()

	var last image.Point
	for finished := false; !finished; {
		select {
		case last = <-ch:
		case <-done:
			finished = true
		case <-time.After(5 * time.Second):
			t.Fatalf("sender blocked")
		}
	}
	select {
	case last = <-ch:
	default:
	}
	test.ExpectEquality(t, last, image.Pt(999, 999))
}
