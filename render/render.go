// Package render turns halftone images into something a person can look at:
// PNG files, or a text preview on a terminal.
//
// Renderers validate that every pixel lies in [0,1] and fail on the first one
// that does not. They never clamp.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/setanarut/halftone"
)

// ErrOutOfRange matches any *RangeError with errors.Is.
var ErrOutOfRange = errors.New("render: pixel out of range")

// RangeError reports the first pixel outside [0,1].
type RangeError struct {
	X, Y  int
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("render: pixel (%d,%d) = %v is outside [0,1]", e.X, e.Y, e.Value)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// Renderer presents an image.
type Renderer interface {
	Render(img *halftone.Image) error
}

// Validate returns a *RangeError for the first out-of-range pixel in scan order.
// NaN is out of range.
func Validate(img *halftone.Image) error {
	for y := range img.Height() {
		for x, p := range img.Row(y) {
			if !(p >= 0 && p <= 1) {
				return &RangeError{X: x, Y: y, Value: p}
			}
		}
	}
	return nil
}

type Options struct {
	Palette Palette
	// Side length in output pixels of the square drawn for each image pixel.
	PixelSize int
}

func DefaultOptions() Options {
	return Options{
		Palette:   DefaultPalette(),
		PixelSize: 1,
	}
}

// ToRGBA validates img and draws it with the palette, one PixelSize square per pixel.
func ToRGBA(img *halftone.Image, opt Options) (*image.RGBA, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}
	s := max(1, opt.PixelSize)
	w, h := img.Width(), img.Height()
	out := image.NewRGBA(image.Rect(0, 0, w*s, h*s))
	for y := range h {
		for x, p := range img.Row(y) {
			c := opt.Palette.Color(p)
			for dy := range s {
				for dx := range s {
					out.SetRGBA(x*s+dx, y*s+dy, c)
				}
			}
		}
	}
	return out, nil
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img *halftone.Image, opt Options) error {
	rgba, err := ToRGBA(img, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, rgba); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG renders to a file at Path.
type PNG struct {
	Path    string
	Options Options
}

// Render validates before touching the file system. On an encode failure the
// partial file is removed.
func (r PNG) Render(img *halftone.Image) error {
	rgba, err := ToRGBA(img, r.Options)
	if err != nil {
		return err
	}
	return savePNG(rgba, r.Path)
}

func savePNG(img image.Image, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(filename)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return nil
}
