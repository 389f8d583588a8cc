package halftone

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrUnknownMethod is returned for a Method outside the known set.
var ErrUnknownMethod = errors.New("halftone: unknown method")

type Method int

const (
	MethodNone Method = iota
	MethodInvert
	MethodThreshold
	MethodDither
	MethodDiffuse
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodInvert:
		return "invert"
	case MethodThreshold:
		return "threshold"
	case MethodDither:
		return "dither"
	case MethodDiffuse:
		return "diffuse"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the names returned by Method.String.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return MethodNone, nil
	case "invert":
		return MethodInvert, nil
	case "threshold":
		return MethodThreshold, nil
	case "dither", "random":
		return MethodDither, nil
	case "diffuse", "error-diffusion", "errdiff":
		return MethodDiffuse, nil
	}
	return MethodNone, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

type Options struct {
	Method Method
	// Cut-off for MethodThreshold. Pixels strictly above it turn black.
	// Conventionally in [0,1], not enforced.
	Threshold float64
	// Seed for MethodDither. 0 draws from the global generator,
	// any other value gives a reproducible result.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		Method:    MethodDiffuse,
		Threshold: 0.5,
	}
}

// Apply runs the halftoning method selected by opt on img.
func Apply(img *Image, opt Options) (*Image, error) {
	switch opt.Method {
	case MethodNone:
		return img, nil
	case MethodInvert:
		return Invert(img), nil
	case MethodThreshold:
		return Threshold(img, opt.Threshold), nil
	case MethodDither:
		var src rand.Source
		if opt.Seed != 0 {
			src = rand.NewPCG(opt.Seed, opt.Seed)
		}
		return Dither(img, src), nil
	case MethodDiffuse:
		return ErrorDiffuse(img), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, opt.Method)
}

// ApplyAll runs steps in order, each on the output of the previous one.
// opt supplies the threshold and seed; its Method is ignored.
func ApplyAll(img *Image, steps []Method, opt Options) (*Image, error) {
	for i, m := range steps {
		opt.Method = m
		out, err := Apply(img, opt)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		img = out
	}
	return img, nil
}

// ============ Algorithms ============

func Invert(img *Image) *Image {
	return Filter(img, func(p float64) float64 {
		return 1 - p
	})
}

// Threshold turns pixels above t black and the rest white.
// A pixel equal to t is white.
func Threshold(img *Image, t float64) *Image {
	return Filter(img, func(p float64) float64 {
		if p > t {
			return 1
		}
		return 0
	})
}

// Dither turns each pixel black with probability equal to its intensity.
// Every pixel draws its own uniform value in [0,1) from src.
// A nil src uses the global generator.
func Dither(img *Image, src rand.Source) *Image {
	u := distuv.Uniform{Min: 0, Max: 1, Src: src}
	return Filter(img, func(p float64) float64 {
		if u.Rand() < p {
			return 1
		}
		return 0
	})
}

// ErrorDiffuse halftones img by carrying the quantization error forward in
// scan order. One accumulator spans the whole image and is not reset at row
// boundaries.
func ErrorDiffuse(img *Image) *Image {
	d := &diffuser{}
	return Filter(img, d.next)
}

// diffuser holds the running error of one ErrorDiffuse call.
type diffuser struct {
	err float64
}

func (d *diffuser) next(p float64) float64 {
	if p+d.err > 0.5 {
		d.err -= 1 - p
		return 1
	}
	d.err += p
	return 0
}
