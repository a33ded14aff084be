// Package output turns a rendered RGBA8 pixel buffer into a PNG file,
// the one concrete sink a demo host needs even though the core itself
// never opens a file.
package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// WritePNG encodes a row-major, top-row-first RGBA8 buffer of the given
// dimensions to path.
func WritePNG(path string, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return fmt.Errorf("output: buffer length %d does not match %dx%d RGBA8", len(rgba), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.SetRGBA(x, y, color.RGBA{R: rgba[i], G: rgba[i+1], B: rgba[i+2], A: rgba[i+3]})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return w.Flush()
}
