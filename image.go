// Package halftone converts grids of gray intensities into black and white
// using threshold, random dither or one-dimensional error diffusion.
package halftone

import (
	"errors"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensions is returned when image content does not match the declared size.
var ErrDimensions = errors.New("halftone: content does not match dimensions")

// Image is an immutable grid of pixel intensities.
// 0.0 is white and 1.0 is black. Rows run top to bottom, columns left to right.
type Image struct {
	pix *mat.Dense // Height x Width, row-major
}

// New builds an Image of width x height from row-major content.
// Content must have exactly height rows of width values each; it is copied.
// Pixel values are not range checked here.
func New(width, height int, content [][]float64) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d is not positive", ErrDimensions, width, height)
	}
	if len(content) != height {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrDimensions, len(content), height)
	}
	data := make([]float64, 0, width*height)
	for y, row := range content {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrDimensions, y, len(row), width)
		}
		data = append(data, row...)
	}
	return &Image{pix: mat.NewDense(height, width, data)}, nil
}

// Uniform returns a width x height image where every pixel is v.
func Uniform(width, height int, v float64) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d is not positive", ErrDimensions, width, height)
	}
	data := make([]float64, width*height)
	for i := range data {
		data[i] = v
	}
	return &Image{pix: mat.NewDense(height, width, data)}, nil
}

// FromImage converts img to intensities using CIE-Lab lightness: 1 - L.
// It returns nil for an empty image.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	data := make([]float64, w*h)
	for y := range h {
		for x := range w {
			c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			if !ok {
				// Fully transparent: nothing to print.
				continue
			}
			l, _, _ := c.Clamped().Lab()
			data[y*w+x] = max(0, min(1, 1-l))
		}
	}
	return &Image{pix: mat.NewDense(h, w, data)}
}

func (img *Image) Width() int {
	_, c := img.pix.Dims()
	return c
}

func (img *Image) Height() int {
	r, _ := img.pix.Dims()
	return r
}

// At returns the intensity at column x, row y.
func (img *Image) At(x, y int) float64 {
	return img.pix.At(y, x)
}

// Row returns a copy of row y.
func (img *Image) Row(y int) []float64 {
	return mat.Row(nil, y, img.pix)
}

// Rows returns a copy of the content as height rows of width pixels.
func (img *Image) Rows() [][]float64 {
	h := img.Height()
	out := make([][]float64, h)
	for y := range h {
		out[y] = img.Row(y)
	}
	return out
}

// Ink returns the sum of all intensities.
func Ink(img *Image) float64 {
	return mat.Sum(img.pix)
}

// Equal reports whether a and b have the same size and all pixels agree within tol.
func Equal(a, b *Image, tol float64) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	return mat.EqualApprox(a.pix, b.pix, tol)
}
