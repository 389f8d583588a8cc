package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"

	"github.com/setanarut/halftone"
	"github.com/spf13/cobra"
)

// addSourceFlags registers the flags that pick the input image.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Source photo (PNG or JPEG); overrides --sample")
	cmd.Flags().String("sample", "gradient", "Built-in sample: gradient, radial or uniform")
	cmd.Flags().Int("width", 256, "Sample width")
	cmd.Flags().Int("height", 64, "Sample height")
	cmd.Flags().Float64("gray", 0.5, "Intensity of the uniform sample")
}

func loadSource(cmd *cobra.Command) (*halftone.Image, error) {
	inputPath, _ := cmd.Flags().GetString("input")
	if inputPath != "" {
		src, err := readImage(inputPath)
		if err != nil {
			return nil, err
		}
		img := halftone.FromImage(src)
		if img == nil {
			return nil, fmt.Errorf("%s: empty image", inputPath)
		}
		return img, nil
	}
	sample, _ := cmd.Flags().GetString("sample")
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	gray, _ := cmd.Flags().GetFloat64("gray")
	return makeSample(sample, w, h, gray)
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// makeSample builds one of the synthetic test images.
func makeSample(name string, w, h int, gray float64) (*halftone.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sample size %dx%d is not positive", w, h)
	}
	var at func(x, y int) float64
	switch strings.ToLower(name) {
	case "gradient":
		// White on the left, black on the right.
		at = func(x, _ int) float64 {
			if w == 1 {
				return 0
			}
			return float64(x) / float64(w-1)
		}
	case "radial":
		// Dark center fading out to white at the corners.
		cx, cy := float64(w-1)/2, float64(h-1)/2
		rmax := math.Hypot(cx, cy)
		at = func(x, y int) float64 {
			if rmax == 0 {
				return 1
			}
			return 1 - math.Hypot(float64(x)-cx, float64(y)-cy)/rmax
		}
	case "uniform":
		return halftone.Uniform(w, h, gray)
	default:
		return nil, fmt.Errorf("unknown sample %q", name)
	}
	rows := make([][]float64, h)
	for y := range h {
		rows[y] = make([]float64, w)
		for x := range w {
			rows[y][x] = at(x, y)
		}
	}
	return halftone.New(w, h, rows)
}
