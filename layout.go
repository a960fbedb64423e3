package imgdata

import (
	"fmt"

	"github.com/gogpu/imgdata/format"
)

// Unit is the placement of one (mip level, array index, depth slice) image
// inside an ImageData allocation.
type Unit struct {
	MipLevel   int
	ArrayIndex int
	SliceIndex int
	Width      int
	Height     int
	Depth      int // depth of the mip level the slice belongs to
	Offset     int
	Pitch      format.PitchInfo
}

// Layout is the computed byte layout of an image.
type Layout struct {
	// Settings are the sanitized settings the layout was computed from.
	Settings Settings

	// SizeInBytes is the total allocation size.
	SizeInBytes int

	// Units are ordered array-major, then mip, then depth slice.
	Units []Unit

	// first[array*mipCount+mip] is the index in Units of the mip's first slice.
	first []int
}

// ComputeLayout computes the allocation size and per-unit placement for s.
func ComputeLayout(s Settings) (Layout, error) {
	return ComputeLayoutWithFlags(s, format.PitchNone)
}

// ComputeLayoutWithFlags is ComputeLayout with pitch flags applied to every
// uncompressed level. NewWithFlags allocates image data with this layout.
func ComputeLayoutWithFlags(s Settings, flags format.PitchFlags) (Layout, error) {
	s = s.Sanitize()
	if s.Format.SizeInBytes() == 0 {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidFormat, s.Format)
	}

	l := Layout{
		Settings: s,
		Units:    make([]Unit, 0, s.ArrayCount*DepthSliceCount(s.Depth, s.MipCount)),
		first:    make([]int, 0, s.ArrayCount*s.MipCount),
	}

	offset := 0
	for array := range s.ArrayCount {
		for mip := range s.MipCount {
			w, h, d := s.MipSize(mip)
			pitch := s.Format.Pitch(w, h, flags)

			l.first = append(l.first, len(l.Units))
			for slice := range d {
				l.Units = append(l.Units, Unit{
					MipLevel:   mip,
					ArrayIndex: array,
					SliceIndex: slice,
					Width:      w,
					Height:     h,
					Depth:      d,
					Offset:     offset,
					Pitch:      pitch,
				})
				offset += pitch.SlicePitch
			}
		}
	}

	l.SizeInBytes = offset
	return l, nil
}

// SizeInBytes returns the allocation size for s.
func SizeInBytes(s Settings) (int, error) {
	l, err := ComputeLayout(s)
	if err != nil {
		return 0, err
	}
	return l.SizeInBytes, nil
}

// Find returns the index in Units of the given unit.
// For 3D images arrayOrSlice is the depth slice within the mip level;
// otherwise it is the array index.
func (l Layout) Find(mip, arrayOrSlice int) (int, bool) {
	s := l.Settings
	if mip < 0 || mip >= s.MipCount || arrayOrSlice < 0 {
		return 0, false
	}

	if s.Type == Image3D {
		_, _, d := s.MipSize(mip)
		if arrayOrSlice >= d {
			return 0, false
		}
		return l.first[mip] + arrayOrSlice, true
	}

	if arrayOrSlice >= s.ArrayCount {
		return 0, false
	}
	return l.first[arrayOrSlice*s.MipCount+mip], true
}
