package main

import (
	"fmt"

	"github.com/setanarut/halftone/render"
	"github.com/spf13/cobra"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Sample paper and ink colors from a photo and save a swatch",
	RunE:  runPalette,
}

func init() {
	paletteCmd.Flags().StringP("input", "i", "", "Photo to sample")
	paletteCmd.Flags().StringP("output", "o", "palette.png", "Swatch PNG path")
	paletteCmd.Flags().String("method", "dominantcolor", "dominantcolor or kmeans")
	paletteCmd.Flags().Int("tile", 64, "Swatch tile size")
	paletteCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	methodStr, _ := cmd.Flags().GetString("method")
	tile, _ := cmd.Flags().GetInt("tile")

	method, err := render.ParsePaletteMethod(methodStr)
	if err != nil {
		return err
	}
	src, err := readImage(inputPath)
	if err != nil {
		return err
	}

	p := render.PaletteFrom(src, method)
	if err := render.SavePalette(p, tile, outputPath); err != nil {
		return fmt.Errorf("writing swatch: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "paper %s\nink   %s\n", p.Paper.Hex(), p.Ink.Hex())
	return nil
}
