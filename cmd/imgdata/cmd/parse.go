package cmd

import (
	"fmt"
	"strings"

	"github.com/gogpu/imgdata"
	"github.com/gogpu/imgdata/catalog"
	"github.com/gogpu/imgdata/codec"
	"github.com/gogpu/imgdata/format"
)

func parseFormat(name string) (format.Format, error) {
	if name == "" {
		return format.Unknown, nil
	}
	for _, f := range format.All() {
		if strings.EqualFold(f.String(), name) {
			return f, nil
		}
	}
	return format.Unknown, fmt.Errorf("unknown format %q, see 'imgdata formats'", name)
}

func parseType(name string) (imgdata.ImageType, error) {
	for _, t := range []imgdata.ImageType{imgdata.Image1D, imgdata.Image2D, imgdata.ImageCube, imgdata.Image3D} {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return imgdata.Image2D, fmt.Errorf("unknown image type %q (1d|2d|cube|3d)", name)
}

func parseFilter(name string) (codec.FilterMode, error) {
	for _, f := range []codec.FilterMode{codec.FilterPoint, codec.FilterLinear, codec.FilterCubic, codec.FilterFant} {
		if strings.EqualFold(f.String(), name) {
			return f, nil
		}
	}
	return codec.FilterPoint, fmt.Errorf("unknown filter %q (point|linear|cubic|fant)", name)
}

func parseDither(name string) (codec.DitherMode, error) {
	modes := []codec.DitherMode{
		codec.DitherNone,
		codec.DitherOrdered4x4,
		codec.DitherOrdered8x8,
		codec.DitherOrdered16x16,
		codec.DitherErrorDiffusion,
	}
	for _, d := range modes {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return codec.DitherNone, fmt.Errorf("unknown dither mode %q (none|ordered4x4|ordered8x8|ordered16x16|errordiffusion)", name)
}

func bestFitFlags(forceRGB, noX2Bias, no16BPP, allowMono bool) catalog.Flags {
	var flags catalog.Flags
	if forceRGB {
		flags |= catalog.ForceRGB
	}
	if noX2Bias {
		flags |= catalog.NoX2Bias
	}
	if no16BPP {
		flags |= catalog.No16BPP
	}
	if allowMono {
		flags |= catalog.AllowMono
	}
	return flags
}
