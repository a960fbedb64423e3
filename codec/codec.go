package codec

import (
	"image"
	"image/color"
)

// DitherMode selects how quantization error is handled when a conversion
// reduces bit depth.
type DitherMode uint8

const (
	// DitherNone truncates to the nearest representable value.
	DitherNone DitherMode = iota

	// DitherOrdered4x4 applies a 4x4 Bayer threshold matrix.
	DitherOrdered4x4

	// DitherOrdered8x8 applies an 8x8 Bayer threshold matrix.
	DitherOrdered8x8

	// DitherOrdered16x16 applies a 16x16 Bayer threshold matrix.
	DitherOrdered16x16

	// DitherErrorDiffusion distributes error with Floyd-Steinberg weights.
	DitherErrorDiffusion
)

// String returns a string representation of the dither mode.
func (d DitherMode) String() string {
	switch d {
	case DitherNone:
		return "None"
	case DitherOrdered4x4:
		return "Ordered4x4"
	case DitherOrdered8x8:
		return "Ordered8x8"
	case DitherOrdered16x16:
		return "Ordered16x16"
	case DitherErrorDiffusion:
		return "ErrorDiffusion"
	default:
		return "Unknown"
	}
}

// FilterMode selects the resampling filter used by Scale.
type FilterMode uint8

const (
	// FilterPoint selects the closest source pixel.
	FilterPoint FilterMode = iota

	// FilterLinear interpolates between the 4 nearest source pixels.
	FilterLinear

	// FilterCubic uses Catmull-Rom interpolation over a 4x4 neighborhood.
	FilterCubic

	// FilterFant averages every source pixel covered by a destination pixel.
	FilterFant
)

// String returns a string representation of the filter mode.
func (f FilterMode) String() string {
	switch f {
	case FilterPoint:
		return "Point"
	case FilterLinear:
		return "Linear"
	case FilterCubic:
		return "Cubic"
	case FilterFant:
		return "Fant"
	default:
		return "Unknown"
	}
}

// Codec is the set of imaging capabilities the conversion engine relies on.
//
// Implementations must not modify their source bitmaps. Returned bitmaps are
// owned by the caller.
type Codec interface {
	// CanConvert reports whether Convert supports src to dst.
	CanConvert(src, dst PixelFormat) bool

	// Convert re-encodes src in the dst pixel format. Dithering is applied
	// only when the conversion reduces bit depth. palette is used for indexed
	// destinations and may be nil.
	Convert(src *Bitmap, dst PixelFormat, dither DitherMode, palette color.Palette) (*Bitmap, error)

	// Scale resamples src to width x height using filter.
	Scale(src *Bitmap, width, height int, filter FilterMode) (*Bitmap, error)

	// Clip crops src to r intersected with its bounds.
	Clip(src *Bitmap, r image.Rectangle) (*Bitmap, error)

	// CopyPixels copies src rows into dst, starting each row rowPitch bytes
	// after the previous one. dst must hold rowPitch*src.Height bytes.
	CopyPixels(src *Bitmap, rowPitch int, dst []byte) error

	// BitsPerPixel returns the bits per pixel for pf, or 0 if unknown.
	BitsPerPixel(pf PixelFormat) int
}
