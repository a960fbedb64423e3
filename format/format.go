// Package format defines the semantic buffer formats understood by imgdata.
//
// A Format describes how pixels are laid out in memory independently of any
// GPU API or imaging codec. Every format carries a static Info record that is
// used to compute row and slice pitches for layout calculations.
package format

import "github.com/gogpu/gputypes"

// Format represents a semantic buffer format.
type Format uint8

const (
	// Unknown is an undefined format. It has no size and cannot be laid out.
	Unknown Format = iota

	// R32G32B32A32Typeless is a 128-bit format with no channel interpretation.
	R32G32B32A32Typeless

	// R32G32B32A32Float is four 32-bit floating point channels.
	R32G32B32A32Float

	// R32G32B32Float is three 32-bit floating point channels.
	R32G32B32Float

	// R16G16B16A16Float is four 16-bit floating point channels.
	R16G16B16A16Float

	// R16G16B16A16Unorm is four 16-bit normalized unsigned channels.
	R16G16B16A16Unorm

	// R10G10B10A2Unorm is a packed 10-10-10-2 normalized format.
	R10G10B10A2Unorm

	// R10G10B10XRBiasA2Unorm is a packed 10-10-10-2 format with extended range bias.
	R10G10B10XRBiasA2Unorm

	// R8G8B8A8Typeless is a 32-bit format with no channel interpretation.
	R8G8B8A8Typeless

	// R8G8B8A8Unorm is four 8-bit normalized channels.
	R8G8B8A8Unorm

	// R8G8B8A8UnormSRGB is four 8-bit normalized channels in sRGB space.
	R8G8B8A8UnormSRGB

	// B8G8R8A8Unorm is four 8-bit normalized channels in BGRA order.
	B8G8R8A8Unorm

	// B8G8R8A8UnormSRGB is four 8-bit normalized channels in BGRA order, sRGB space.
	B8G8R8A8UnormSRGB

	// B8G8R8X8Unorm is 32-bit BGR with an unused padding byte.
	B8G8R8X8Unorm

	// B8G8R8X8UnormSRGB is 32-bit BGR with an unused padding byte, sRGB space.
	B8G8R8X8UnormSRGB

	// B5G6R5Unorm is a packed 16-bit 5-6-5 format.
	B5G6R5Unorm

	// B5G5R5A1Unorm is a packed 16-bit 5-5-5-1 format.
	B5G5R5A1Unorm

	// R32Float is a single 32-bit floating point channel.
	R32Float

	// D32Float is a 32-bit floating point depth format.
	D32Float

	// R16Float is a single 16-bit floating point channel.
	R16Float

	// R16Unorm is a single 16-bit normalized channel.
	R16Unorm

	// D16Unorm is a 16-bit normalized depth format.
	D16Unorm

	// R8Unorm is a single 8-bit normalized channel.
	R8Unorm

	// A8Unorm is a single 8-bit alpha channel.
	A8Unorm

	// R1Unorm is a 1-bit monochrome format.
	R1Unorm

	// R8G8B8G8Unorm is a packed 4:2:2 format (two pixels per 32 bits).
	R8G8B8G8Unorm

	// G8R8G8B8Unorm is a packed 4:2:2 format (two pixels per 32 bits).
	G8R8G8B8Unorm

	// BC1Unorm is block compressed RGBA with 1-bit alpha (8 bytes per block).
	BC1Unorm

	// BC1UnormSRGB is BC1 in sRGB space.
	BC1UnormSRGB

	// BC2Unorm is block compressed RGBA with explicit alpha.
	BC2Unorm

	// BC3Unorm is block compressed RGBA with interpolated alpha.
	BC3Unorm

	// BC4Unorm is block compressed single channel (8 bytes per block).
	BC4Unorm

	// BC4Snorm is block compressed signed single channel (8 bytes per block).
	BC4Snorm

	// BC5Unorm is block compressed two channel.
	BC5Unorm

	// BC6HUfloat is block compressed unsigned HDR RGB.
	BC6HUfloat

	// BC7Unorm is block compressed high quality RGBA.
	BC7Unorm

	// BC7UnormSRGB is BC7 in sRGB space.
	BC7UnormSRGB

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Info contains metadata about a semantic buffer format.
type Info struct {
	// Name is the display name of the format.
	Name string

	// BitDepth is the number of bits per pixel. Zero for Unknown and
	// typeless formats.
	BitDepth int

	// Channels is the number of components.
	Channels int

	// BitsPerChannel is the size of the widest component in bits.
	BitsPerChannel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsSRGB indicates if color values are stored in sRGB space.
	IsSRGB bool

	// IsDepth indicates a depth buffer format.
	IsDepth bool

	// IsTypeless indicates a format with no channel interpretation.
	IsTypeless bool

	// IsCompressed indicates a 4x4 block compressed format.
	IsCompressed bool

	// IsPacked indicates a 4:2:2 packed format (two pixels share 32 bits).
	IsPacked bool

	// BlockSize is the number of bytes per 4x4 block for compressed formats.
	BlockSize int

	// GPU is the equivalent GPU texture format, or TextureFormatUndefined.
	GPU gputypes.TextureFormat
}

// infoTable contains metadata for each format.
var infoTable = [formatCount]Info{
	Unknown: {Name: "Unknown"},
	R32G32B32A32Typeless: {
		Name: "R32G32B32A32Typeless", Channels: 4, BitsPerChannel: 32, IsTypeless: true,
	},
	R32G32B32A32Float: {
		Name: "R32G32B32A32Float", BitDepth: 128, Channels: 4, BitsPerChannel: 32, HasAlpha: true,
		GPU: gputypes.TextureFormatRGBA32Float,
	},
	R32G32B32Float: {
		Name: "R32G32B32Float", BitDepth: 96, Channels: 3, BitsPerChannel: 32,
	},
	R16G16B16A16Float: {
		Name: "R16G16B16A16Float", BitDepth: 64, Channels: 4, BitsPerChannel: 16, HasAlpha: true,
		GPU: gputypes.TextureFormatRGBA16Float,
	},
	R16G16B16A16Unorm: {
		Name: "R16G16B16A16Unorm", BitDepth: 64, Channels: 4, BitsPerChannel: 16, HasAlpha: true,
		GPU: gputypes.TextureFormatRGBA16Unorm,
	},
	R10G10B10A2Unorm: {
		Name: "R10G10B10A2Unorm", BitDepth: 32, Channels: 4, BitsPerChannel: 10, HasAlpha: true,
		GPU: gputypes.TextureFormatRGB10A2Unorm,
	},
	R10G10B10XRBiasA2Unorm: {
		Name: "R10G10B10XRBiasA2Unorm", BitDepth: 32, Channels: 4, BitsPerChannel: 10, HasAlpha: true,
	},
	R8G8B8A8Typeless: {
		Name: "R8G8B8A8Typeless", Channels: 4, BitsPerChannel: 8, IsTypeless: true,
	},
	R8G8B8A8Unorm: {
		Name: "R8G8B8A8Unorm", BitDepth: 32, Channels: 4, BitsPerChannel: 8, HasAlpha: true,
		GPU: gputypes.TextureFormatRGBA8Unorm,
	},
	R8G8B8A8UnormSRGB: {
		Name: "R8G8B8A8UnormSRGB", BitDepth: 32, Channels: 4, BitsPerChannel: 8, HasAlpha: true, IsSRGB: true,
		GPU: gputypes.TextureFormatRGBA8UnormSrgb,
	},
	B8G8R8A8Unorm: {
		Name: "B8G8R8A8Unorm", BitDepth: 32, Channels: 4, BitsPerChannel: 8, HasAlpha: true,
		GPU: gputypes.TextureFormatBGRA8Unorm,
	},
	B8G8R8A8UnormSRGB: {
		Name: "B8G8R8A8UnormSRGB", BitDepth: 32, Channels: 4, BitsPerChannel: 8, HasAlpha: true, IsSRGB: true,
		GPU: gputypes.TextureFormatBGRA8UnormSrgb,
	},
	B8G8R8X8Unorm: {
		Name: "B8G8R8X8Unorm", BitDepth: 32, Channels: 3, BitsPerChannel: 8,
	},
	B8G8R8X8UnormSRGB: {
		Name: "B8G8R8X8UnormSRGB", BitDepth: 32, Channels: 3, BitsPerChannel: 8, IsSRGB: true,
	},
	B5G6R5Unorm: {
		Name: "B5G6R5Unorm", BitDepth: 16, Channels: 3, BitsPerChannel: 6,
	},
	B5G5R5A1Unorm: {
		Name: "B5G5R5A1Unorm", BitDepth: 16, Channels: 4, BitsPerChannel: 5, HasAlpha: true,
	},
	R32Float: {
		Name: "R32Float", BitDepth: 32, Channels: 1, BitsPerChannel: 32,
		GPU: gputypes.TextureFormatR32Float,
	},
	D32Float: {
		Name: "D32Float", BitDepth: 32, Channels: 1, BitsPerChannel: 32, IsDepth: true,
		GPU: gputypes.TextureFormatDepth32Float,
	},
	R16Float: {
		Name: "R16Float", BitDepth: 16, Channels: 1, BitsPerChannel: 16,
		GPU: gputypes.TextureFormatR16Float,
	},
	R16Unorm: {
		Name: "R16Unorm", BitDepth: 16, Channels: 1, BitsPerChannel: 16,
		GPU: gputypes.TextureFormatR16Unorm,
	},
	D16Unorm: {
		Name: "D16Unorm", BitDepth: 16, Channels: 1, BitsPerChannel: 16, IsDepth: true,
		GPU: gputypes.TextureFormatDepth16Unorm,
	},
	R8Unorm: {
		Name: "R8Unorm", BitDepth: 8, Channels: 1, BitsPerChannel: 8,
		GPU: gputypes.TextureFormatR8Unorm,
	},
	A8Unorm: {
		Name: "A8Unorm", BitDepth: 8, Channels: 1, BitsPerChannel: 8, HasAlpha: true,
	},
	R1Unorm: {
		Name: "R1Unorm", BitDepth: 1, Channels: 1, BitsPerChannel: 1,
	},
	R8G8B8G8Unorm: {
		Name: "R8G8B8G8Unorm", BitDepth: 16, Channels: 4, BitsPerChannel: 8, IsPacked: true,
	},
	G8R8G8B8Unorm: {
		Name: "G8R8G8B8Unorm", BitDepth: 16, Channels: 4, BitsPerChannel: 8, IsPacked: true,
	},
	BC1Unorm: {
		Name: "BC1Unorm", BitDepth: 4, Channels: 4, HasAlpha: true, IsCompressed: true, BlockSize: 8,
		GPU: gputypes.TextureFormatBC1RGBAUnorm,
	},
	BC1UnormSRGB: {
		Name: "BC1UnormSRGB", BitDepth: 4, Channels: 4, HasAlpha: true, IsSRGB: true, IsCompressed: true, BlockSize: 8,
		GPU: gputypes.TextureFormatBC1RGBAUnormSrgb,
	},
	BC2Unorm: {
		Name: "BC2Unorm", BitDepth: 8, Channels: 4, HasAlpha: true, IsCompressed: true, BlockSize: 16,
		GPU: gputypes.TextureFormatBC2RGBAUnorm,
	},
	BC3Unorm: {
		Name: "BC3Unorm", BitDepth: 8, Channels: 4, HasAlpha: true, IsCompressed: true, BlockSize: 16,
		GPU: gputypes.TextureFormatBC3RGBAUnorm,
	},
	BC4Unorm: {
		Name: "BC4Unorm", BitDepth: 4, Channels: 1, IsCompressed: true, BlockSize: 8,
		GPU: gputypes.TextureFormatBC4RUnorm,
	},
	BC4Snorm: {
		Name: "BC4Snorm", BitDepth: 4, Channels: 1, IsCompressed: true, BlockSize: 8,
		GPU: gputypes.TextureFormatBC4RSnorm,
	},
	BC5Unorm: {
		Name: "BC5Unorm", BitDepth: 8, Channels: 2, IsCompressed: true, BlockSize: 16,
		GPU: gputypes.TextureFormatBC5RGUnorm,
	},
	BC6HUfloat: {
		Name: "BC6HUfloat", BitDepth: 8, Channels: 3, IsCompressed: true, BlockSize: 16,
		GPU: gputypes.TextureFormatBC6HRGBUfloat,
	},
	BC7Unorm: {
		Name: "BC7Unorm", BitDepth: 8, Channels: 4, HasAlpha: true, IsCompressed: true, BlockSize: 16,
		GPU: gputypes.TextureFormatBC7RGBAUnorm,
	},
	BC7UnormSRGB: {
		Name: "BC7UnormSRGB", BitDepth: 8, Channels: 4, HasAlpha: true, IsSRGB: true, IsCompressed: true, BlockSize: 16,
		GPU: gputypes.TextureFormatBC7RGBAUnormSrgb,
	},
}

// Info returns the Info for this format.
func (f Format) Info() Info {
	if f >= formatCount {
		return infoTable[Unknown]
	}
	return infoTable[f]
}

// IsValid returns true if the format is a known, non-Unknown format.
func (f Format) IsValid() bool {
	return f > Unknown && f < formatCount
}

// String returns a string representation of the format.
func (f Format) String() string {
	return f.Info().Name
}

// BitDepth returns the number of bits per pixel.
func (f Format) BitDepth() int {
	return f.Info().BitDepth
}

// SizeInBytes returns the number of bytes per pixel, rounded up.
// Returns 0 when the size cannot be determined (Unknown or typeless formats).
// Compressed formats report the size of one 4x4 block.
func (f Format) SizeInBytes() int {
	info := f.Info()
	if info.IsCompressed {
		return info.BlockSize
	}
	return (info.BitDepth + 7) / 8
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsSRGB returns true if color values are stored in sRGB space.
func (f Format) IsSRGB() bool {
	return f.Info().IsSRGB
}

// IsCompressed returns true for block compressed formats.
func (f Format) IsCompressed() bool {
	return f.Info().IsCompressed
}

// IsPacked returns true for 4:2:2 packed formats.
func (f Format) IsPacked() bool {
	return f.Info().IsPacked
}

// IsTypeless returns true if the format has no channel interpretation.
func (f Format) IsTypeless() bool {
	return f.Info().IsTypeless
}

// TextureFormat returns the GPU texture format equivalent.
// Returns gputypes.TextureFormatUndefined when the GPU layer has no match.
func (f Format) TextureFormat() gputypes.TextureFormat {
	return f.Info().GPU
}

// LinearVersion returns the non-sRGB counterpart of this format.
// Returns the same format if already linear.
func (f Format) LinearVersion() Format {
	switch f {
	case R8G8B8A8UnormSRGB:
		return R8G8B8A8Unorm
	case B8G8R8A8UnormSRGB:
		return B8G8R8A8Unorm
	case B8G8R8X8UnormSRGB:
		return B8G8R8X8Unorm
	case BC1UnormSRGB:
		return BC1Unorm
	case BC7UnormSRGB:
		return BC7Unorm
	default:
		return f
	}
}

// SRGBVersion returns the sRGB counterpart of this format.
// Returns the same format if none exists.
func (f Format) SRGBVersion() Format {
	switch f {
	case R8G8B8A8Unorm:
		return R8G8B8A8UnormSRGB
	case B8G8R8A8Unorm:
		return B8G8R8A8UnormSRGB
	case B8G8R8X8Unorm:
		return B8G8R8X8UnormSRGB
	case BC1Unorm:
		return BC1UnormSRGB
	case BC7Unorm:
		return BC7UnormSRGB
	default:
		return f
	}
}

// FromTextureFormat returns the semantic format for a GPU texture format.
// Returns Unknown if there is no equivalent.
func FromTextureFormat(tf gputypes.TextureFormat) Format {
	if tf == gputypes.TextureFormatUndefined {
		return Unknown
	}
	for f := Unknown + 1; f < formatCount; f++ {
		if infoTable[f].GPU == tf {
			return f
		}
	}
	return Unknown
}

// All returns every valid format in declaration order.
func All() []Format {
	result := make([]Format, 0, formatCount-1)
	for f := Unknown + 1; f < formatCount; f++ {
		result = append(result, f)
	}
	return result
}
