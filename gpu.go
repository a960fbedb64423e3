package imgdata

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// CopyBytesPerRowAlignment is the row pitch alignment required for
// buffer to texture copies.
const CopyBytesPerRowAlignment = 256

// TextureDescriptor returns the descriptor of a GPU texture able to hold an
// image with settings s. Cube images are described as 2D arrays.
func (s Settings) TextureDescriptor(label string, usage gputypes.TextureUsage) (gputypes.TextureDescriptor, error) {
	s = s.Sanitize()
	tf := s.Format.TextureFormat()
	if tf == gputypes.TextureFormatUndefined {
		return gputypes.TextureDescriptor{}, fmt.Errorf("%w: %v has no texture format", ErrUnsupportedFormat, s.Format)
	}

	layers := s.ArrayCount
	if s.Type == Image3D {
		layers = s.Depth
	}
	return gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              uint32(s.Width),
			Height:             uint32(s.Height),
			DepthOrArrayLayers: uint32(layers),
		},
		MipLevelCount: uint32(s.MipCount),
		SampleCount:   1,
		Dimension:     s.Type.Dimension(),
		Format:        tf,
		Usage:         usage,
	}, nil
}

func textureAspect(s Settings) gputypes.TextureAspect {
	if s.Format.Info().IsDepth {
		return gputypes.TextureAspectDepthOnly
	}
	return gputypes.TextureAspectAll
}

// Extent returns the size of the buffer as a single layer copy extent.
func (b *ImageBuffer) Extent() gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              uint32(b.unit.Width),
		Height:             uint32(b.unit.Height),
		DepthOrArrayLayers: 1,
	}
}

// TextureDataLayout returns the layout of the buffer inside its ImageData
// allocation. RowsPerImage counts block rows for compressed formats.
func (b *ImageBuffer) TextureDataLayout() gputypes.TextureDataLayout {
	return gputypes.TextureDataLayout{
		Offset:       uint64(b.unit.Offset),
		BytesPerRow:  uint32(b.unit.Pitch.RowPitch),
		RowsPerImage: uint32(b.format.Scanlines(b.unit.Height)),
	}
}

// CopyDestination returns the texture region the buffer uploads to. The
// origin Z is the array layer, or the depth slice for 3D images.
func (b *ImageBuffer) CopyDestination(texture uintptr) gputypes.ImageCopyTexture {
	s := b.parent.layout.Settings
	z := b.unit.ArrayIndex
	if s.Type == Image3D {
		z = b.unit.SliceIndex
	}
	return gputypes.ImageCopyTexture{
		Texture:  texture,
		MipLevel: uint32(b.unit.MipLevel),
		Origin:   gputypes.Origin3D{Z: uint32(z)},
		Aspect:   textureAspect(s),
	}
}

// AlignedRows returns a copy of the buffer's rows with the row pitch rounded
// up to a multiple of alignment, and that pitch. An alignment below 1 uses
// CopyBytesPerRowAlignment. Returns nil when the buffer has no data.
func (b *ImageBuffer) AlignedRows(alignment int) ([]byte, int) {
	if alignment < 1 {
		alignment = CopyBytesPerRowAlignment
	}
	data := b.Data()
	if data == nil {
		return nil, 0
	}

	row := b.unit.Pitch.RowPitch
	pitch := (row + alignment - 1) / alignment * alignment
	rows := b.format.Scanlines(b.unit.Height)
	if pitch == row {
		return append([]byte(nil), data...), pitch
	}

	out := make([]byte, pitch*rows)
	for y := range rows {
		copy(out[y*pitch:y*pitch+row], data[y*row:(y+1)*row])
	}
	return out, pitch
}
