package grid

import (
	"image"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"

	"pietc/pkg/palette"
)

// DecodeImage decodes r as an image in the format named by ext ("bmp",
// "png", or "gif", case-insensitive), groups pixels into codels by the
// largest uniform divisor of the image's dimensions, and classifies each
// codel's top-left pixel into a palette color.
func DecodeImage(r io.Reader, ext string) (*Grid, error) {
	var img image.Image
	var err error

	switch strings.ToLower(ext) {
	case "bmp":
		img, err = bmp.Decode(r)
	case "png":
		img, err = png.Decode(r)
	case "gif":
		img, err = gif.Decode(r)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}

	return fromImage(img), nil
}

func fromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	n := inferCodelSize(img, width, height)
	rows, cols := height/n, width/n

	g := New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			px := bounds.Min.Add(image.Pt(c*n, r*n))
			rr, gg, bb, _ := img.At(px.X, px.Y).RGBA()
			hex := palette.RGBToHex(uint8(rr>>8), uint8(gg>>8), uint8(bb>>8))
			g.Set(r, c, palette.HexToColor(hex))
		}
	}
	return g
}

// inferCodelSize finds the largest N dividing both width and height such
// that every non-overlapping N x N pixel block is internally uniform,
// falling back to 1 if no such N > 1 exists. Candidates are the divisors of
// gcd(width, height), tried from largest to smallest, so the first uniform
// candidate is the answer; this reaches the same result as an ascending scan
// that keeps the largest match, without testing every integer.
func inferCodelSize(img image.Image, width, height int) int {
	g := gcd(width, height)
	if g <= 1 {
		return 1
	}

	for _, n := range divisorsDescending(g) {
		if n == 1 {
			return 1
		}
		if uniformAt(img, width, height, n) {
			return n
		}
	}
	return 1
}

func uniformAt(img image.Image, width, height, n int) bool {
	bounds := img.Bounds()
	for by := 0; by < height; by += n {
		for bx := 0; bx < width; bx += n {
			origin := bounds.Min.Add(image.Pt(bx, by))
			or, og, ob, oa := img.At(origin.X, origin.Y).RGBA()
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					if x == 0 && y == 0 {
						continue
					}
					p := bounds.Min.Add(image.Pt(bx+x, by+y))
					r, gg, b, a := img.At(p.X, p.Y).RGBA()
					if r != or || gg != og || b != ob || a != oa {
						return false
					}
				}
			}
		}
	}
	return true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// divisorsDescending returns every divisor of n, largest first.
func divisorsDescending(n int) []int {
	var divs []int
	for i := 1; i*i <= n; i++ {
		if n%i == 0 {
			divs = append(divs, i)
			if j := n / i; j != i {
				divs = append(divs, j)
			}
		}
	}
	// Sort descending; n has few divisors, so an O(d^2) insertion sort is
	// plenty and avoids pulling in sort for a handful of elements.
	for i := 1; i < len(divs); i++ {
		for j := i; j > 0 && divs[j-1] < divs[j]; j-- {
			divs[j-1], divs[j] = divs[j], divs[j-1]
		}
	}
	return divs
}
