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

// Package screenshot converts the raw front buffer capture of the rendering
// backend to an image and saves it as a PNG file.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/logger"
	"github.com/jetsetilly/glimmer/paths"
)

// Image converts a capture to an image. The capture is tightly packed RGB,
// three bytes per pixel, with the bottom row first. This is the format
// returned by glx.RenderContext.CaptureScreenshot().
func Image(data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, curated.Errorf("screenshot: empty image")
	}
	if len(data) != width*height*3 {
		return nil, curated.Errorf("screenshot: %d bytes is not a %dx%d capture", len(data), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[(height-1-y)*width*3:]
		for x := 0; x < width; x++ {
			p := row[x*3:]
			img.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}

	return img, nil
}

// Save the capture as a PNG file in the directory. The filename is unique
// and includes the label if it is not empty. The full path of the new file
// is returned.
func Save(dir string, label string, data []byte, width, height int) (string, error) {
	img, err := Image(data, width, height)
	if err != nil {
		return "", err
	}

	pth := filepath.Join(dir, fmt.Sprintf("%s.png", paths.UniqueFilename("screenshot", label)))

	f, err := os.Open(pth)
	if f != nil {
		f.Close()
		return "", curated.Errorf("screenshot: file (%s) already exists", pth)
	}
	if err != nil && !os.IsNotExist(err) {
		return "", curated.Errorf("screenshot: %v", err)
	}

	f, err = os.Create(pth)
	if err != nil {
		return "", curated.Errorf("screenshot: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", curated.Errorf("screenshot: %v", err)
	}

	logger.Logf(logger.Allow, "screenshot", "saved to %s", pth)

	return pth, nil
}
