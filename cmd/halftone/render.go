package main

import (
	"fmt"
	"log"

	"github.com/setanarut/halftone"
	"github.com/setanarut/halftone/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Halftone an image and write it as PNG or a text preview",
	RunE:  runRender,
}

func init() {
	addSourceFlags(renderCmd)
	addStepFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "-", "Output PNG path, or - for a text preview on stdout")
	renderCmd.Flags().Int("pixel-size", 1, "Output pixels per image pixel (PNG only)")
	renderCmd.Flags().String("palette-from", "", "Photo to sample paper and ink colors from (PNG only)")
	renderCmd.Flags().String("palette-method", "dominantcolor", "Palette extraction: dominantcolor or kmeans")
	rootCmd.AddCommand(renderCmd)
}

// addStepFlags registers the flags that describe the transform pipeline.
func addStepFlags(cmd *cobra.Command) {
	def := halftone.DefaultOptions()
	cmd.Flags().StringSlice("steps", []string{def.Method.String()}, "Transforms to apply in order: invert, threshold, dither, diffuse")
	cmd.Flags().Float64("threshold", def.Threshold, "Cut-off for the threshold step")
	cmd.Flags().Uint64("seed", 0, "Seed for the dither step (0 = random)")
}

func stepOptions(cmd *cobra.Command) ([]halftone.Method, halftone.Options, error) {
	names, _ := cmd.Flags().GetStringSlice("steps")
	opt := halftone.DefaultOptions()
	opt.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	opt.Seed, _ = cmd.Flags().GetUint64("seed")

	steps := make([]halftone.Method, 0, len(names))
	for _, n := range names {
		m, err := halftone.ParseMethod(n)
		if err != nil {
			return nil, opt, err
		}
		steps = append(steps, m)
	}
	return steps, opt, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	outputPath, _ := cmd.Flags().GetString("output")
	pixelSize, _ := cmd.Flags().GetInt("pixel-size")
	paletteFrom, _ := cmd.Flags().GetString("palette-from")
	paletteMethodStr, _ := cmd.Flags().GetString("palette-method")

	img, err := loadSource(cmd)
	if err != nil {
		return err
	}
	steps, opt, err := stepOptions(cmd)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("source %dx%d, steps %v", img.Width(), img.Height(), steps)
	}

	out, err := halftone.ApplyAll(img, steps, opt)
	if err != nil {
		return err
	}

	var r render.Renderer
	if outputPath == "-" {
		r = render.Text{W: cmd.OutOrStdout(), Ramp: render.DefaultRamp}
	} else {
		ropt := render.DefaultOptions()
		ropt.PixelSize = pixelSize
		if paletteFrom != "" {
			method, err := render.ParsePaletteMethod(paletteMethodStr)
			if err != nil {
				return err
			}
			src, err := readImage(paletteFrom)
			if err != nil {
				return err
			}
			ropt.Palette = render.PaletteFrom(src, method)
			if verbose {
				log.Printf("palette (%s): paper %s, ink %s", method, ropt.Palette.Paper.Hex(), ropt.Palette.Ink.Hex())
			}
		}
		r = render.PNG{Path: outputPath, Options: ropt}
	}

	if err := r.Render(out); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if verbose && outputPath != "-" {
		log.Printf("wrote %s", outputPath)
	}
	return nil
}
