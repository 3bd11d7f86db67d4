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

package screenshot_test

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/glimmer/screenshot"
	"github.com/jetsetilly/glimmer/test"
)

// a 3x2 capture. the bottom row is first
var capture = []byte{
	10, 11, 12, 20, 21, 22, 30, 31, 32,
	40, 41, 42, 50, 51, 52, 60, 61, 62,
}

func TestImage(t *testing.T) {
	img, err := screenshot.Image(capture, 3, 2)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, img.Bounds().Dx(), 3)
	test.ExpectEquality(t, img.Bounds().Dy(), 2)
	test.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{R: 40, G: 41, B: 42, A: 255})
	test.ExpectEquality(t, img.RGBAAt(2, 0), color.RGBA{R: 60, G: 61, B: 62, A: 255})
	test.ExpectEquality(t, img.RGBAAt(0, 1), color.RGBA{R: 10, G: 11, B: 12, A: 255})
	test.ExpectEquality(t, img.RGBAAt(1, 1), color.RGBA{R: 20, G: 21, B: 22, A: 255})

	_, err = screenshot.Image(capture, 2, 2)
	test.ExpectFailure(t, err)
	_, err = screenshot.Image(nil, 0, 0)
	test.ExpectFailure(t, err)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	pth, err := screenshot.Save(dir, "test", capture, 3, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, filepath.Dir(pth), dir)
	test.ExpectSuccess(t, strings.HasPrefix(filepath.Base(pth), "screenshot_test_"))
	test.ExpectEquality(t, filepath.Ext(pth), ".png")

	f, err := os.Open(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	test.DemandSuccess(t, err)
	r, g, b, a := img.At(2, 1).RGBA()
	test.ExpectEquality(t, r>>8, 30)
	test.ExpectEquality(t, g>>8, 31)
	test.ExpectEquality(t, b>>8, 32)
	test.ExpectEquality(t, a>>8, 255)

	// nothing is written for a bad capture
	_, err = screenshot.Save(dir, "bad", capture[1:], 3, 2)
	test.ExpectFailure(t, err)
	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 1)
}
