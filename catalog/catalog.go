// Package catalog maps semantic buffer formats to external pixel formats.
//
// The tables are static and read-only. An exact table pairs each semantic
// format with one external format; a best-fit table names the nearest
// supported external format for encodings the engine cannot store directly.
package catalog

import (
	"errors"
	"fmt"

	"github.com/gogpu/imgdata/codec"
	"github.com/gogpu/imgdata/format"
)

// ErrUnsupportedFormat is returned when no exact or best-fit mapping exists.
var ErrUnsupportedFormat = errors.New("imgdata: unsupported format")

// Flags adjust the result of FindBestFit.
type Flags uint8

const (
	// ForceRGB replaces BGR(A/X) results with RGBA.
	ForceRGB Flags = 1 << iota

	// NoX2Bias replaces the extended range biased 10-bit format with the unbiased one.
	NoX2Bias

	// No16BPP replaces 16-bit packed color results with 32-bit RGBA.
	No16BPP

	// AllowMono keeps 1-bit monochrome. Without it monochrome resolves to 8-bit gray.
	AllowMono
)

// Mapping pairs a semantic format with an external pixel format.
type Mapping struct {
	Format      format.Format
	PixelFormat codec.PixelFormat
}

// BestFit names the substitute for an external format with no exact mapping.
type BestFit struct {
	Source      codec.PixelFormat
	Destination codec.PixelFormat
}

var exact = [...]Mapping{
	{format.R32G32B32A32Float, codec.PixelFormat128bppRGBAFloat},
	{format.R16G16B16A16Float, codec.PixelFormat64bppRGBAHalf},
	{format.R16G16B16A16Unorm, codec.PixelFormat64bppRGBA},
	{format.R8G8B8A8Unorm, codec.PixelFormat32bppRGBA},
	{format.B8G8R8A8Unorm, codec.PixelFormat32bppBGRA},
	{format.B8G8R8X8Unorm, codec.PixelFormat32bppBGR},
	{format.R10G10B10XRBiasA2Unorm, codec.PixelFormat32bppRGBA1010102XR},
	{format.R10G10B10A2Unorm, codec.PixelFormat32bppRGBA1010102},
	{format.B5G6R5Unorm, codec.PixelFormat16bppBGR565},
	{format.B5G5R5A1Unorm, codec.PixelFormat16bppBGRA5551},
	{format.R32Float, codec.PixelFormat32bppGrayFloat},
	{format.R16Float, codec.PixelFormat16bppGrayHalf},
	{format.R16Unorm, codec.PixelFormat16bppGray},
	{format.R8Unorm, codec.PixelFormat8bppGray},
	{format.A8Unorm, codec.PixelFormat8bppAlpha},
	{format.R1Unorm, codec.PixelFormatBlackWhite},
}

// aliases are semantic formats sharing the external format of their linear
// or color counterpart. They never appear in reverse lookups.
var aliases = [...]Mapping{
	{format.R8G8B8A8UnormSRGB, codec.PixelFormat32bppRGBA},
	{format.B8G8R8A8UnormSRGB, codec.PixelFormat32bppBGRA},
	{format.B8G8R8X8UnormSRGB, codec.PixelFormat32bppBGR},
	{format.D32Float, codec.PixelFormat32bppGrayFloat},
	{format.D16Unorm, codec.PixelFormat16bppGray},
}

var bestFit = [...]BestFit{
	{codec.PixelFormat1bppIndexed, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat2bppIndexed, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat4bppIndexed, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat8bppIndexed, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat2bppGray, codec.PixelFormat8bppGray},
	{codec.PixelFormat4bppGray, codec.PixelFormat8bppGray},
	{codec.PixelFormat16bppGrayFixedPoint, codec.PixelFormat16bppGrayHalf},
	{codec.PixelFormat32bppGrayFixedPoint, codec.PixelFormat32bppGrayFloat},
	{codec.PixelFormat16bppBGR555, codec.PixelFormat16bppBGRA5551},
	{codec.PixelFormat32bppBGR101010, codec.PixelFormat32bppRGBA1010102},
	{codec.PixelFormat24bppBGR, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat24bppRGB, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat32bppPBGRA, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat32bppPRGBA, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat48bppRGB, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat48bppBGR, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat64bppBGRA, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat64bppPRGBA, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat64bppPBGRA, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat48bppRGBFixedPoint, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat48bppBGRFixedPoint, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat64bppRGBAFixedPoint, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat64bppBGRAFixedPoint, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat64bppRGBFixedPoint, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat64bppRGBHalf, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat48bppRGBHalf, codec.PixelFormat64bppRGBAHalf},
	{codec.PixelFormat128bppPRGBAFloat, codec.PixelFormat128bppRGBAFloat},
	{codec.PixelFormat128bppRGBFloat, codec.PixelFormat128bppRGBAFloat},
	{codec.PixelFormat128bppRGBAFixedPoint, codec.PixelFormat128bppRGBAFloat},
	{codec.PixelFormat128bppRGBFixedPoint, codec.PixelFormat128bppRGBAFloat},
	{codec.PixelFormat32bppRGBE, codec.PixelFormat128bppRGBAFloat},
	{codec.PixelFormat32bppCMYK, codec.PixelFormat32bppRGBA},
	{codec.PixelFormat64bppCMYK, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat40bppCMYKAlpha, codec.PixelFormat64bppRGBA},
	{codec.PixelFormat80bppCMYKAlpha, codec.PixelFormat64bppRGBA},
}

// ToExternal returns the external pixel format for f.
// sRGB and depth variants resolve to their counterpart's external format.
func ToExternal(f format.Format) (codec.PixelFormat, bool) {
	for _, m := range exact {
		if m.Format == f {
			return m.PixelFormat, true
		}
	}
	for _, m := range aliases {
		if m.Format == f {
			return m.PixelFormat, true
		}
	}
	return codec.PixelFormatUnknown, false
}

// ToSemantic returns the semantic format stored as pf, or format.Unknown.
func ToSemantic(pf codec.PixelFormat) format.Format {
	for _, m := range exact {
		if m.PixelFormat == pf {
			return m.Format
		}
	}
	return format.Unknown
}

// FindBestFit resolves an external format to a semantic format the engine
// can store, and the external format the source must be converted to first.
// When pf maps exactly the returned pixel format equals pf.
func FindBestFit(pf codec.PixelFormat, flags Flags) (format.Format, codec.PixelFormat, error) {
	result := ToSemantic(pf)
	used := pf

	if result == format.Unknown {
		for _, bf := range bestFit {
			if bf.Source != pf {
				continue
			}
			used = bf.Destination
			result = ToSemantic(used)
			break
		}
	}
	if result == format.Unknown {
		return format.Unknown, codec.PixelFormatUnknown, fmt.Errorf("%w: %v", ErrUnsupportedFormat, pf)
	}

	switch result {
	case format.B8G8R8A8Unorm, format.B8G8R8X8Unorm:
		if flags&ForceRGB != 0 {
			result, used = format.R8G8B8A8Unorm, codec.PixelFormat32bppRGBA
		}
	case format.R10G10B10XRBiasA2Unorm:
		if flags&NoX2Bias != 0 {
			result, used = format.R10G10B10A2Unorm, codec.PixelFormat32bppRGBA1010102
		}
	case format.B5G5R5A1Unorm, format.B5G6R5Unorm:
		if flags&No16BPP != 0 {
			result, used = format.R8G8B8A8Unorm, codec.PixelFormat32bppRGBA
		}
	case format.R1Unorm:
		if flags&AllowMono == 0 {
			result, used = format.R8Unorm, codec.PixelFormat8bppGray
		}
	}
	return result, used, nil
}

// Mappings returns a copy of the exact mapping table.
func Mappings() []Mapping {
	return append([]Mapping(nil), exact[:]...)
}

// Aliases returns a copy of the alias table.
func Aliases() []Mapping {
	return append([]Mapping(nil), aliases[:]...)
}

// BestFitSources returns a copy of the best-fit table.
func BestFitSources() []BestFit {
	return append([]BestFit(nil), bestFit[:]...)
}
