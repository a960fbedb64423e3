package imgdata

import (
	"fmt"
	"io"

	"github.com/gogpu/imgdata/format"
)

// ImageData owns the single allocation holding every unit of an image.
//
// ImageData is not safe for concurrent mutation. Views returned by Buffers
// and Buffer share its memory.
type ImageData struct {
	layout   Layout
	data     []byte
	external bool
	buffers  []*ImageBuffer
}

// New allocates zeroed image data for settings.
func New(settings Settings) (*ImageData, error) {
	return NewWithFlags(settings, format.PitchNone)
}

// NewWithFlags allocates zeroed image data whose uncompressed levels use the
// row pitch selected by flags, such as DWORD aligned rows of legacy DDS files.
func NewWithFlags(settings Settings, flags format.PitchFlags) (*ImageData, error) {
	l, err := ComputeLayoutWithFlags(settings, flags)
	if err != nil {
		return nil, err
	}
	return newImageData(l, make([]byte, l.SizeInBytes), false), nil
}

// NewFromBuffer wraps data without copying. The caller keeps ownership and
// must keep data alive and unaliased for the lifetime of the ImageData.
func NewFromBuffer(settings Settings, data []byte) (*ImageData, error) {
	l, err := ComputeLayout(settings)
	if err != nil {
		return nil, err
	}
	if len(data) != l.SizeInBytes {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, layout needs %d", ErrSizeMismatch, len(data), l.SizeInBytes)
	}
	return newImageData(l, data, true), nil
}

func newImageData(l Layout, data []byte, external bool) *ImageData {
	d := &ImageData{layout: l, data: data, external: external}
	d.buffers = make([]*ImageBuffer, len(l.Units))
	for i, u := range l.Units {
		d.buffers[i] = &ImageBuffer{
			parent: d,
			unit:   u,
			format: l.Settings.Format,
			length: u.Pitch.SlicePitch,
		}
	}
	return d
}

// Settings returns the sanitized settings of the image.
func (d *ImageData) Settings() Settings {
	return d.layout.Settings
}

// Layout returns the byte layout of the image.
func (d *ImageData) Layout() Layout {
	return d.layout
}

// SizeInBytes returns the size of the allocation.
func (d *ImageData) SizeInBytes() int {
	return d.layout.SizeInBytes
}

// Bytes returns the whole allocation, or nil after Release.
func (d *ImageData) Bytes() []byte {
	return d.data
}

// IsExternal reports whether the allocation was supplied by the caller.
func (d *ImageData) IsExternal() bool {
	return d.external
}

// Release drops the reference to the allocation. Views report no data
// afterwards. Caller supplied memory is never modified.
func (d *ImageData) Release() {
	d.data = nil
}

// Buffers returns every view, ordered array-major then mip then depth slice.
func (d *ImageData) Buffers() []*ImageBuffer {
	return append([]*ImageBuffer(nil), d.buffers...)
}

// Buffer returns the view for a mip level and array index, or depth slice
// for 3D images. Returns nil when either index is out of range.
func (d *ImageData) Buffer(mip, arrayOrSlice int) *ImageBuffer {
	i, ok := d.layout.Find(mip, arrayOrSlice)
	if !ok {
		return nil
	}
	return d.buffers[i]
}

// DepthCount returns the number of depth slices at a mip level.
// 1D, 2D and cube images always have one.
func (d *ImageData) DepthCount(mip int) (int, error) {
	s := d.layout.Settings
	if mip < 0 || mip >= s.MipCount {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrMipOutOfRange, mip, s.MipCount)
	}
	_, _, depth := s.MipSize(mip)
	return depth, nil
}

// WriteTo writes the raw allocation to w.
func (d *ImageData) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	if err != nil {
		return int64(n), fmt.Errorf("imgdata: write raw: %w", err)
	}
	return int64(n), nil
}

// CopyTo copies every unit shared by d and dest, clipped to the smaller
// array count, mip count and depth. Format, width and height must match.
func (d *ImageData) CopyTo(dest *ImageData) error {
	if dest == nil || dest.data == nil {
		return fmt.Errorf("%w: destination has no data", ErrBufferMismatch)
	}
	s, ds := d.layout.Settings, dest.layout.Settings
	if s.Format != ds.Format || s.Width != ds.Width || s.Height != ds.Height {
		return fmt.Errorf("%w: %dx%d %v into %dx%d %v", ErrBufferMismatch,
			s.Width, s.Height, s.Format, ds.Width, ds.Height, ds.Format)
	}

	for array := range min(s.ArrayCount, ds.ArrayCount) {
		for mip := range min(s.MipCount, ds.MipCount) {
			depth := 1
			if s.Type == Image3D {
				_, _, sd := s.MipSize(mip)
				_, _, dd := ds.MipSize(mip)
				depth = min(sd, dd)
			}
			for slice := range depth {
				index := array
				if s.Type == Image3D {
					index = slice
				}
				src, dst := d.Buffer(mip, index), dest.Buffer(mip, index)
				if src == nil || dst == nil {
					continue
				}
				if err := src.CopyTo(dst, 0, 0); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
