package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/setanarut/halftone"
)

func mustNew(t *testing.T, w, h int, rows [][]float64) *halftone.Image {
	t.Helper()
	img, err := halftone.New(w, h, rows)
	if err != nil {
		t.Fatalf("halftone.New: %v", err)
	}
	return img
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]float64
		wantX int
		wantY int
	}{
		{"above one", [][]float64{{0, 1}, {1.5, 0}}, 0, 1},
		{"below zero", [][]float64{{0, -0.1}, {0, 0}}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustNew(t, 2, 2, tt.rows))
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("err = %v, want *RangeError", err)
			}
			if re.X != tt.wantX || re.Y != tt.wantY {
				t.Errorf("RangeError at (%d,%d), want (%d,%d)", re.X, re.Y, tt.wantX, tt.wantY)
			}
			if !errors.Is(err, ErrOutOfRange) {
				t.Error("errors.Is(err, ErrOutOfRange) = false")
			}
		})
	}

	if err := Validate(mustNew(t, 3, 1, [][]float64{{0, 0.5, 1}})); err != nil {
		t.Errorf("Validate on valid image: %v", err)
	}
}

func TestToRGBA(t *testing.T) {
	img := mustNew(t, 2, 1, [][]float64{{0, 1}})
	rgba, err := ToRGBA(img, Options{Palette: DefaultPalette(), PixelSize: 3})
	if err != nil {
		t.Fatal(err)
	}
	if b := rgba.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 6x3", b)
	}
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	if got := rgba.RGBAAt(2, 2); got != white {
		t.Errorf("pixel (2,2) = %v, want white", got)
	}
	if got := rgba.RGBAAt(3, 0); got != black {
		t.Errorf("pixel (3,0) = %v, want black", got)
	}
}

func TestPaletteColor(t *testing.T) {
	p := DefaultPalette()
	mid := p.Color(0.5)
	if mid.R == 0 || mid.R == 255 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("Color(0.5) = %v, want a neutral mid gray", mid)
	}
	if a, b := p.Color(0.3), p.Color(0.7); a.R <= b.R {
		t.Errorf("higher intensity should be darker: %v vs %v", a, b)
	}
}

func TestWritePNG(t *testing.T) {
	img := halftone.ErrorDiffuse(mustNew(t, 4, 1, [][]float64{{0.6, 0.6, 0.6, 0.6}}))
	var buf bytes.Buffer
	if err := WritePNG(&buf, img, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got []uint32
	for x := range 4 {
		r, _, _, _ := dec.At(x, 0).RGBA()
		got = append(got, r>>8)
	}
	if d := cmp.Diff([]uint32{0, 255, 0, 255}, got); d != "" {
		t.Errorf("red channel mismatch (-want +got):\n%s", d)
	}
}

func TestPNGRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	r := PNG{Path: path, Options: DefaultOptions()}
	if err := r.Render(mustNew(t, 2, 2, [][]float64{{0, 1}, {1, 0}})); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	bad := filepath.Join(dir, "bad.png")
	r = PNG{Path: bad, Options: DefaultOptions()}
	err := r.Render(mustNew(t, 1, 1, [][]float64{{1.5}}))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("file created for invalid image, stat err = %v", err)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	r := Text{W: &buf, Ramp: ".#"}
	if err := r.Render(mustNew(t, 3, 2, [][]float64{{0, 1, 0}, {1, 0.4, 0.6}})); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(".#.\n#.#\n", buf.String()); d != "" {
		t.Errorf("text mismatch (-want +got):\n%s", d)
	}

	buf.Reset()
	err := Text{W: &buf}.Render(mustNew(t, 1, 1, [][]float64{{-1}}))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q for invalid image", buf.String())
	}
}

func TestRenderer(t *testing.T) {
	var _ Renderer = PNG{}
	var _ Renderer = Text{}
}
