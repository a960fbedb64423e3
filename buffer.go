package imgdata

import (
	"fmt"
	"image"

	"github.com/gogpu/imgdata/codec"
	"github.com/gogpu/imgdata/format"
)

// ImageBuffer is a non-owning view of one (mip level, array index, depth
// slice) unit inside an ImageData allocation.
//
// A view must not be used after its ImageData is released.
type ImageBuffer struct {
	parent *ImageData
	unit   Unit
	format format.Format
	length int
}

// Format returns the semantic format of the buffer.
func (b *ImageBuffer) Format() format.Format { return b.format }

// Width returns the width of the buffer at its mip level.
func (b *ImageBuffer) Width() int { return b.unit.Width }

// Height returns the height of the buffer at its mip level.
func (b *ImageBuffer) Height() int { return b.unit.Height }

// Depth returns the depth of the buffer's mip level. Always 1 for non-3D images.
func (b *ImageBuffer) Depth() int { return b.unit.Depth }

// MipLevel returns the mip level of the buffer.
func (b *ImageBuffer) MipLevel() int { return b.unit.MipLevel }

// ArrayIndex returns the array index of the buffer.
func (b *ImageBuffer) ArrayIndex() int { return b.unit.ArrayIndex }

// SliceIndex returns the depth slice of the buffer within its mip level.
func (b *ImageBuffer) SliceIndex() int { return b.unit.SliceIndex }

// Pitch returns the row and slice pitch of the buffer.
func (b *ImageBuffer) Pitch() format.PitchInfo { return b.unit.Pitch }

// Offset returns the byte offset of the buffer within its ImageData.
func (b *ImageBuffer) Offset() int { return b.unit.Offset }

// Bounds returns the pixel rectangle of the buffer.
func (b *ImageBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.unit.Width, b.unit.Height)
}

// Data returns the bytes of the buffer, or nil if the parent was released.
func (b *ImageBuffer) Data() []byte {
	if b.parent == nil || b.parent.data == nil {
		return nil
	}
	return b.parent.data[b.unit.Offset : b.unit.Offset+b.length : b.unit.Offset+b.length]
}

// RowBytes returns stored row y including padding, or nil when y is out of
// range. Compressed formats store one row per 4 scanlines.
func (b *ImageBuffer) RowBytes(y int) []byte {
	data := b.Data()
	rows := b.format.Scanlines(b.unit.Height)
	if data == nil || y < 0 || y >= rows {
		return nil
	}
	pitch := b.unit.Pitch.RowPitch
	return data[y*pitch : (y+1)*pitch]
}

// copyGrid describes a buffer in copy units: whole pixels, pixel pairs for
// packed formats, 4x4 blocks for compressed formats and bytes for sub-byte
// formats.
type copyGrid struct {
	cols      int
	rows      int
	unitBytes int
	unitW     int // pixels per unit horizontally
	unitH     int // pixels per unit vertically
}

func (b *ImageBuffer) grid() copyGrid {
	info := b.format.Info()
	p := b.unit.Pitch
	switch {
	case info.IsCompressed:
		return copyGrid{cols: p.BlocksWide, rows: p.BlocksHigh, unitBytes: info.BlockSize, unitW: 4, unitH: 4}
	case info.IsPacked:
		return copyGrid{cols: p.RowPitch / 4, rows: b.unit.Height, unitBytes: 4, unitW: 2, unitH: 1}
	case info.BitDepth < 8:
		return copyGrid{cols: p.RowPitch, rows: b.unit.Height, unitBytes: 1, unitW: 8 / info.BitDepth, unitH: 1}
	default:
		return copyGrid{cols: b.unit.Width, rows: b.unit.Height, unitBytes: info.BitDepth / 8, unitW: 1, unitH: 1}
	}
}

// CopyTo copies this buffer into dst with its top-left corner at (x, y).
//
// Negative offsets are clamped to 0. The copy is clipped to dst; a copy that
// falls entirely outside dst writes nothing and returns nil. Rows are copied
// one at a time using each buffer's own row pitch, so buffers with different
// pitches never overrun a row.
//
// ErrBufferMismatch is returned when dst has no data, or when width, height
// and format all differ from this buffer.
func (b *ImageBuffer) CopyTo(dst *ImageBuffer, x, y int) error {
	if dst == nil || len(dst.Data()) == 0 {
		return fmt.Errorf("%w: destination has no data", ErrBufferMismatch)
	}
	src := b.Data()
	if src == nil {
		return fmt.Errorf("%w: source has no data", ErrBufferMismatch)
	}
	if dst.unit.Width != b.unit.Width && dst.unit.Height != b.unit.Height && dst.format != b.format {
		return fmt.Errorf("%w: %dx%d %v into %dx%d %v", ErrBufferMismatch,
			b.unit.Width, b.unit.Height, b.format, dst.unit.Width, dst.unit.Height, dst.format)
	}

	x, y = max(0, x), max(0, y)
	out := dst.Data()
	sp, dp := b.unit.Pitch, dst.unit.Pitch

	if x == 0 && y == 0 && sp == dp {
		copy(out, src)
		return nil
	}

	sg := b.grid()
	dg := dst.grid()
	ox, oy := x/sg.unitW, y/sg.unitH

	r := image.Rect(ox, oy, ox+sg.cols, oy+sg.rows).Intersect(image.Rect(0, 0, dg.cols, dg.rows))
	if r.Empty() {
		return nil
	}

	n := min(r.Dx()*sg.unitBytes, dp.RowPitch-ox*sg.unitBytes, sp.RowPitch)
	if n <= 0 {
		return nil
	}
	for row := range r.Dy() {
		s := row * sp.RowPitch
		d := (oy+row)*dp.RowPitch + ox*sg.unitBytes
		copy(out[d:d+n], src[s:s+n])
	}
	return nil
}

// ToExternalBitmap returns the buffer as a 32bppRGBA bitmap using the
// default converter.
func (b *ImageBuffer) ToExternalBitmap() (*codec.Bitmap, error) {
	return defaultConverter().Export(b)
}

// bitmap returns a bitmap sharing the buffer's memory.
func (b *ImageBuffer) bitmap(pf codec.PixelFormat) *codec.Bitmap {
	return &codec.Bitmap{
		Width:  b.unit.Width,
		Height: b.unit.Height,
		Stride: b.unit.Pitch.RowPitch,
		Format: pf,
		Pix:    b.Data(),
	}
}
