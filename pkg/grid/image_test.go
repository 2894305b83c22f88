package grid

import (
	"image"
	"image/color"
	"testing"
)

// upscale draws a w x h grid of solid k x k blocks, each block's color drawn
// from colors (row-major), for use as a pixel-perfect k-fold upscaling test
// fixture.
func upscale(colors []color.RGBA, baseW, baseH, k int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, baseW*k, baseH*k))
	for by := 0; by < baseH; by++ {
		for bx := 0; bx < baseW; bx++ {
			c := colors[by*baseW+bx]
			for y := 0; y < k; y++ {
				for x := 0; x < k; x++ {
					img.Set(bx*k+x, by*k+y, c)
				}
			}
		}
	}
	return img
}

func TestInferCodelSizeUpscaling(t *testing.T) {
	colors := []color.RGBA{
		{0xFF, 0, 0, 0xFF}, {0, 0xFF, 0, 0xFF},
		{0, 0, 0xFF, 0xFF}, {0xFF, 0xFF, 0, 0xFF},
	}
	for _, k := range []int{1, 2, 5, 8} {
		img := upscale(colors, 2, 2, k)
		got := inferCodelSize(img, img.Bounds().Dx(), img.Bounds().Dy())
		if got != k {
			t.Errorf("inferCodelSize for %dx upscale = %d, want %d", k, got, k)
		}
	}
}

func TestInferCodelSizeNonUniformFallsBackToOne(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 0xFF})
		}
	}
	if got := inferCodelSize(img, 3, 3); got != 1 {
		t.Errorf("inferCodelSize = %d, want 1", got)
	}
}

func TestFromImageProducesBaseGrid(t *testing.T) {
	colors := []color.RGBA{
		{0xFF, 0, 0, 0xFF}, {0, 0xFF, 0, 0xFF},
	}
	img := upscale(colors, 2, 1, 3)
	g := fromImage(img)
	if g.Rows != 1 || g.Cols != 2 {
		t.Fatalf("dims = %dx%d, want 1x2", g.Rows, g.Cols)
	}
}
