package output

import (
	"image"
	"image/color"
)

// TestPattern returns the classic first image: red ramps left to right,
// green ramps top to bottom and blue stays off.
func TestPattern(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: ramp(x, width),
				G: ramp(y, height),
				B: 0,
				A: 255,
			})
		}
	}
	return img
}

func ramp(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(255.999 * float64(i) / float64(n-1))
}
