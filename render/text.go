package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/setanarut/halftone"
)

// DefaultRamp runs from white to black.
const DefaultRamp = " .:-=+*#%@"

// Text writes one rune per pixel, picked from Ramp by intensity,
// and one line per row.
type Text struct {
	W    io.Writer
	Ramp string
}

func (r Text) Render(img *halftone.Image) error {
	if err := Validate(img); err != nil {
		return err
	}
	ramp := []rune(r.Ramp)
	if len(ramp) == 0 {
		ramp = []rune(DefaultRamp)
	}
	last := float64(len(ramp) - 1)

	bw := bufio.NewWriter(r.W)
	for y := range img.Height() {
		for _, p := range img.Row(y) {
			bw.WriteRune(ramp[int(p*last+0.5)])
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
