package halftone

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustNew(t *testing.T, w, h int, rows [][]float64) *Image {
	t.Helper()
	img, err := New(w, h, rows)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return img
}

func TestNew(t *testing.T) {
	rows := [][]float64{{0, 0.25, 0.5}, {0.75, 1, 0.1}}
	img := mustNew(t, 3, 2, rows)

	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", img.Width(), img.Height())
	}
	if got := img.At(1, 1); got != 1 {
		t.Errorf("At(1, 1) = %v, want 1", got)
	}
	if d := cmp.Diff(rows, img.Rows()); d != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", d)
	}

	// New copies its input.
	rows[0][0] = 0.9
	if got := img.At(0, 0); got != 0 {
		t.Errorf("At(0, 0) = %v after caller mutation, want 0", got)
	}
	// Row returns a copy.
	r := img.Row(0)
	r[1] = 0.9
	if got := img.At(1, 0); got != 0.25 {
		t.Errorf("At(1, 0) = %v after Row mutation, want 0.25", got)
	}
}

func TestNewDimensionMismatch(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		rows [][]float64
	}{
		{"short first row", 2, 2, [][]float64{{1.0}, {1.0, 1.0}}},
		{"long row", 2, 1, [][]float64{{1, 1, 1}}},
		{"too few rows", 1, 3, [][]float64{{1}, {1}}},
		{"too many rows", 1, 1, [][]float64{{1}, {1}}},
		{"zero width", 0, 1, [][]float64{{}}},
		{"zero height", 1, 0, nil},
		{"negative", -1, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(tt.w, tt.h, tt.rows)
			if !errors.Is(err, ErrDimensions) {
				t.Fatalf("err = %v, want ErrDimensions", err)
			}
			if img != nil {
				t.Errorf("got image %dx%d, want nil", img.Width(), img.Height())
			}
		})
	}
}

func TestNewKeepsOutOfRange(t *testing.T) {
	img := mustNew(t, 2, 1, [][]float64{{-0.5, 1.5}})
	if img.At(0, 0) != -0.5 || img.At(1, 0) != 1.5 {
		t.Errorf("out-of-range pixels were altered: %v", img.Rows())
	}
}

func TestUniform(t *testing.T) {
	img, err := Uniform(4, 3, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 4 || img.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", img.Width(), img.Height())
	}
	if got := Ink(img); got < 3.6-1e-9 || got > 3.6+1e-9 {
		t.Errorf("Ink = %v, want 3.6", got)
	}
	if _, err := Uniform(0, 3, 0.3); !errors.Is(err, ErrDimensions) {
		t.Errorf("Uniform(0, 3) err = %v, want ErrDimensions", err)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewGray(image.Rect(10, 10, 13, 11))
	src.SetGray(10, 10, color.Gray{Y: 255})
	src.SetGray(11, 10, color.Gray{Y: 0})
	src.SetGray(12, 10, color.Gray{Y: 128})

	img := FromImage(src)
	if img.Width() != 3 || img.Height() != 1 {
		t.Fatalf("size = %dx%d, want 3x1", img.Width(), img.Height())
	}
	if got := img.At(0, 0); got > 1e-6 {
		t.Errorf("white pixel = %v, want 0", got)
	}
	if got := img.At(1, 0); got < 1-1e-6 {
		t.Errorf("black pixel = %v, want 1", got)
	}
	if got := img.At(2, 0); got <= 0.2 || got >= 0.8 {
		t.Errorf("mid gray pixel = %v, want strictly between 0.2 and 0.8", got)
	}

	if FromImage(image.NewGray(image.Rect(0, 0, 0, 0))) != nil {
		t.Error("FromImage of empty image should be nil")
	}
}

func TestEqual(t *testing.T) {
	a := mustNew(t, 2, 1, [][]float64{{0.1, 0.2}})
	b := mustNew(t, 2, 1, [][]float64{{0.1, 0.2 + 1e-12}})
	c := mustNew(t, 1, 2, [][]float64{{0.1}, {0.2}})

	if !Equal(a, b, 1e-9) {
		t.Error("Equal(a, b) = false, want true")
	}
	if Equal(a, c, 1e-9) {
		t.Error("Equal on different shapes = true, want false")
	}
}
