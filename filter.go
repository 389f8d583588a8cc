package halftone

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PixelFunc maps one intensity to another. It may close over state that
// lives for a single Filter call.
type PixelFunc func(p float64) float64

// Filter returns a new image with f applied to every pixel of img.
//
// Pixels are visited row by row from top to bottom, and left to right within
// a row. Stateful functions rely on this order. img is not modified.
func Filter(img *Image, f PixelFunc) *Image {
	h, w := img.pix.Dims()
	data := make([]float64, 0, w*h)
	for y := range h {
		for _, p := range img.pix.RawRowView(y) {
			data = append(data, f(p))
		}
	}
	return &Image{pix: mat.NewDense(h, w, data)}
}

// FilterErr is Filter for functions that can fail. It stops at the first
// error and returns it with the pixel position; no image is returned then.
func FilterErr(img *Image, f func(p float64) (float64, error)) (*Image, error) {
	h, w := img.pix.Dims()
	data := make([]float64, 0, w*h)
	for y := range h {
		for x, p := range img.pix.RawRowView(y) {
			v, err := f(p)
			if err != nil {
				return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			data = append(data, v)
		}
	}
	return &Image{pix: mat.NewDense(h, w, data)}, nil
}

// Chain composes transforms left to right. An empty chain is the identity.
func Chain(fs ...func(*Image) *Image) func(*Image) *Image {
	return func(img *Image) *Image {
		for _, f := range fs {
			img = f(img)
		}
		return img
	}
}
