package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/setanarut/halftone"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print total ink before and after each transform step",
	RunE:  runStats,
}

func init() {
	addSourceFlags(statsCmd)
	addStepFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	img, err := loadSource(cmd)
	if err != nil {
		return err
	}
	steps, opt, err := stepOptions(cmd)
	if err != nil {
		return err
	}

	n := float64(img.Width() * img.Height())
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tINK\tMEAN")
	fmt.Fprintf(tw, "source\t%.3f\t%.4f\n", halftone.Ink(img), halftone.Ink(img)/n)
	for _, m := range steps {
		opt.Method = m
		img, err = halftone.Apply(img, opt)
		if err != nil {
			return err
		}
		ink := halftone.Ink(img)
		fmt.Fprintf(tw, "%s\t%.3f\t%.4f\n", m, ink, ink/n)
	}
	return tw.Flush()
}
