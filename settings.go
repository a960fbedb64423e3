package imgdata

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/imgdata/format"
)

// ImageType is the dimensionality of an image.
type ImageType uint8

const (
	// Image2D is a 2D image, optionally an array. It is the zero value.
	Image2D ImageType = iota

	// Image1D is a single row of pixels, optionally an array.
	Image1D

	// ImageCube is an array of 2D images whose count is a multiple of 6.
	ImageCube

	// Image3D is a volume. Depth halves with each mip level.
	Image3D
)

// String returns a string representation of the image type.
func (t ImageType) String() string {
	switch t {
	case Image1D:
		return "1D"
	case Image2D:
		return "2D"
	case ImageCube:
		return "Cube"
	case Image3D:
		return "3D"
	default:
		return "Unknown"
	}
}

// Dimension returns the GPU texture dimension. Cube images are 2D arrays.
func (t ImageType) Dimension() gputypes.TextureDimension {
	switch t {
	case Image1D:
		return gputypes.TextureDimension1D
	case Image3D:
		return gputypes.TextureDimension3D
	default:
		return gputypes.TextureDimension2D
	}
}

// MaxArrayCount is the largest array count accepted by sub-resource addressing.
const MaxArrayCount = 2048

// Settings describes the shape and format of an image.
//
// Zero or negative counts and dimensions are valid input: they are clamped
// to 1 by Sanitize, which every layout operation applies first.
type Settings struct {
	Type       ImageType
	Width      int
	Height     int
	Depth      int
	ArrayCount int
	MipCount   int
	Format     format.Format
}

// Sanitize returns a copy of s with every field in its valid range.
func (s Settings) Sanitize() Settings {
	s.Width = max(1, s.Width)
	s.Height = max(1, s.Height)
	s.Depth = max(1, s.Depth)
	s.ArrayCount = max(1, s.ArrayCount)
	s.MipCount = max(1, s.MipCount)

	switch s.Type {
	case Image1D:
		s.Height = 1
		s.Depth = 1
	case ImageCube:
		s.Depth = 1
		s.ArrayCount = (s.ArrayCount + 5) / 6 * 6
	case Image3D:
		s.ArrayCount = 1
	default:
		s.Depth = 1
	}

	s.MipCount = min(s.MipCount, MaxMipCount(s.Width, s.Height, s.Depth))
	return s
}

// MaxMipCount returns the length of a full mip chain, the number of halvings
// until every dimension reaches 1, plus one.
func MaxMipCount(width, height, depth int) int {
	width, height, depth = max(1, width), max(1, height), max(1, depth)
	count := 1
	for width > 1 || height > 1 || depth > 1 {
		width = max(1, width>>1)
		height = max(1, height>>1)
		depth = max(1, depth>>1)
		count++
	}
	return count
}

// DepthSliceCount returns the number of depth slices stored across a mip
// chain of mipCount levels starting with slices.
func DepthSliceCount(slices, mipCount int) int {
	slices = max(1, slices)
	if mipCount < 2 {
		return slices
	}
	total := 0
	for range mipCount {
		total += slices
		if slices > 1 {
			slices >>= 1
		}
	}
	return total
}

// MipSize returns the dimensions of mip level mip for s, each at least 1.
func (s Settings) MipSize(mip int) (width, height, depth int) {
	mip = max(0, mip)
	return max(1, s.Width>>mip), max(1, s.Height>>mip), max(1, s.Depth>>mip)
}
