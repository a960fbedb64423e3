package codec

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Software is a pure Go Codec.
//
// Conversions decode every pixel to a float RGBA working image and encode it
// in the destination format. Scaling of 8-bit formats uses the
// golang.org/x/image/draw interpolators; wider and floating point formats are
// resampled in float space so HDR values survive.
//
// The zero value is ready to use and safe for concurrent use.
type Software struct{}

var _ Codec = Software{}

// CanConvert reports whether both formats are known.
func (Software) CanConvert(src, dst PixelFormat) bool {
	return src.IsValid() && dst.IsValid()
}

// BitsPerPixel returns the bits per pixel for pf, or 0 if unknown.
func (Software) BitsPerPixel(pf PixelFormat) int {
	return pf.BitsPerPixel()
}

// Convert re-encodes src in the dst pixel format.
func (s Software) Convert(src *Bitmap, dst PixelFormat, dither DitherMode, pal color.Palette) (*Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !s.CanConvert(src.Format, dst) {
		return nil, fmt.Errorf("%w: %v to %v", ErrCannotConvert, src.Format, dst)
	}
	if src.Format == dst && (!dst.IsIndexed() || len(pal) == 0) {
		return src.Clone(), nil
	}

	work := defaultScratch.get(src.Width, src.Height)
	defer defaultScratch.put(work)

	decode(src, work)
	if !dst.IsIndexed() && reducesDepth(src.Format, dst) {
		applyDither(work, dither, dst.Precision())
	} else if dst.IsIndexed() && !reducesDepth(src.Format, dst) {
		dither = DitherNone
	}
	return encode(work, dst, pal, dither)
}

// Scale resamples src to width x height using filter.
func (Software) Scale(src *Bitmap, width, height int, filter FilterMode) (*Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: scale to %dx%d", ErrInvalidBitmap, width, height)
	}
	if width == src.Width && height == src.Height {
		return src.Clone(), nil
	}

	work := defaultScratch.get(src.Width, src.Height)
	defer defaultScratch.put(work)
	decode(src, work)

	out := defaultScratch.get(width, height)
	defer defaultScratch.put(out)

	if interp := drawInterpolator(src.Format, filter); interp != nil {
		from := toNRGBA(work)
		to := image.NewNRGBA(image.Rect(0, 0, width, height))
		interp.Scale(to, to.Bounds(), from, from.Bounds(), draw.Src, nil)
		fromNRGBA(to, out)
	} else {
		resample(work, out, filter)
	}

	return encode(out, src.Format, src.palette(), DitherNone)
}

// drawInterpolator returns the x/image/draw interpolator for filter when the
// format fits 8-bit drawing without loss, or nil.
func drawInterpolator(pf PixelFormat, filter FilterMode) draw.Interpolator {
	if p := pf.Precision(); p == 0 || p > 8 {
		return nil
	}
	switch filter {
	case FilterPoint:
		return draw.NearestNeighbor
	case FilterLinear:
		return draw.BiLinear
	case FilterCubic:
		return draw.CatmullRom
	default:
		return nil
	}
}

// Clip crops src to r intersected with its bounds.
func (Software) Clip(src *Bitmap, r image.Rectangle) (*Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("%w: empty clip rectangle", ErrInvalidBitmap)
	}
	if r == src.Bounds() {
		return src.Clone(), nil
	}

	out, err := NewBitmap(r.Dx(), r.Dy(), src.Format)
	if err != nil {
		return nil, err
	}
	out.Palette = src.Palette

	bits := src.Format.BitsPerPixel()
	if bits%8 == 0 {
		bpp := bits / 8
		for y := range out.Height {
			row := src.RowBytes(r.Min.Y + y)
			copy(out.RowBytes(y), row[r.Min.X*bpp:r.Max.X*bpp])
		}
		return out, nil
	}

	// Sub-byte formats are repacked pixel by pixel.
	for y := range out.Height {
		srow := src.RowBytes(r.Min.Y + y)
		drow := out.RowBytes(y)
		for x := range out.Width {
			setPackedValue(drow, x, bits, packedValue(srow, r.Min.X+x, bits))
		}
	}
	return out, nil
}

// CopyPixels copies src rows into dst with the given row pitch.
func (Software) CopyPixels(src *Bitmap, rowPitch int, dst []byte) error {
	if err := src.Validate(); err != nil {
		return err
	}
	row := src.Format.RowBytes(src.Width)
	if rowPitch < row {
		return fmt.Errorf("%w: row pitch %d < row size %d", ErrInvalidBitmap, rowPitch, row)
	}
	if need := rowPitch * src.Height; len(dst) < need {
		return fmt.Errorf("%w: destination holds %d bytes, need %d", ErrInvalidBitmap, len(dst), need)
	}

	if rowPitch == src.Stride && len(src.Pix) >= rowPitch*src.Height {
		copy(dst, src.Pix[:rowPitch*src.Height])
		return nil
	}
	for y := range src.Height {
		copy(dst[y*rowPitch:y*rowPitch+row], src.RowBytes(y))
	}
	return nil
}
