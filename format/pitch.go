package format

// PitchFlags alter how row pitch is computed for uncompressed formats.
type PitchFlags uint8

// PitchNone uses the natural bit depth of the format.
const PitchNone PitchFlags = 0

const (
	// PitchLegacyDWORD aligns rows to 4 bytes, as written by old DirectDraw tools.
	PitchLegacyDWORD PitchFlags = 1 << iota

	// PitchBPP24 treats the format as 24 bits per pixel.
	PitchBPP24

	// PitchBPP16 treats the format as 16 bits per pixel.
	PitchBPP16

	// PitchBPP8 treats the format as 8 bits per pixel.
	PitchBPP8
)

// PitchInfo holds the byte spans of one 2D image at a given size.
type PitchInfo struct {
	// RowPitch is the number of bytes from the start of one scanline to the next.
	// For compressed formats this is one row of 4x4 blocks.
	RowPitch int

	// SlicePitch is the number of bytes in one 2D image.
	SlicePitch int

	// BlocksWide is the number of blocks per row (compressed formats only).
	BlocksWide int

	// BlocksHigh is the number of block rows (compressed formats only).
	BlocksHigh int
}

// IsCompressed returns true if the pitch was computed in block units.
func (p PitchInfo) IsCompressed() bool {
	return p.BlocksWide > 0 && p.BlocksHigh > 0
}

// Pitch computes the row and slice pitch for an image of the given size.
// Width and height below 1 are treated as 1. Returns a zero PitchInfo if the
// format has no known size.
func (f Format) Pitch(width, height int, flags PitchFlags) PitchInfo {
	info := f.Info()
	width = max(1, width)
	height = max(1, height)

	if info.IsCompressed {
		wide := max(1, (width+3)/4)
		high := max(1, (height+3)/4)
		row := wide * info.BlockSize
		return PitchInfo{
			RowPitch:   row,
			SlicePitch: row * high,
			BlocksWide: wide,
			BlocksHigh: high,
		}
	}

	if info.IsPacked {
		row := ((width + 1) >> 1) * 4
		return PitchInfo{RowPitch: row, SlicePitch: row * height}
	}

	bits := info.BitDepth
	if bits == 0 {
		return PitchInfo{}
	}

	switch {
	case flags&PitchBPP24 != 0:
		bits = 24
	case flags&PitchBPP16 != 0:
		bits = 16
	case flags&PitchBPP8 != 0:
		bits = 8
	}

	var row int
	if flags&PitchLegacyDWORD != 0 {
		row = ((width*bits + 31) / 32) * 4
	} else {
		row = (width*bits + 7) / 8
	}

	return PitchInfo{RowPitch: row, SlicePitch: row * height}
}

// Scanlines returns the number of rows stored for an image of the given height.
// Compressed formats store one row per 4 scanlines.
func (f Format) Scanlines(height int) int {
	if f.IsCompressed() {
		return max(1, (height+3)/4)
	}
	return max(1, height)
}
