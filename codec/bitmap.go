package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
)

// Bitmap errors.
var (
	// ErrInvalidBitmap is returned when a bitmap's dimensions, stride or
	// pixel storage are inconsistent.
	ErrInvalidBitmap = errors.New("codec: invalid bitmap")

	// ErrCannotConvert is returned when no conversion path exists between
	// two pixel formats.
	ErrCannotConvert = errors.New("codec: cannot convert")
)

// Bitmap is a 2D pixel buffer in an external pixel format.
//
// Pix holds Height rows of Stride bytes each. Stride may exceed the minimum
// row size. Palette is used only for indexed formats.
type Bitmap struct {
	Width   int
	Height  int
	Stride  int
	Format  PixelFormat
	Pix     []byte
	Palette color.Palette
}

// NewBitmap allocates a zeroed bitmap with a tightly packed stride.
func NewBitmap(width, height int, pf PixelFormat) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidBitmap, width, height)
	}
	if !pf.IsValid() {
		return nil, fmt.Errorf("%w: format %v", ErrInvalidBitmap, pf)
	}

	stride := pf.RowBytes(width)
	b := &Bitmap{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: pf,
		Pix:    make([]byte, stride*height),
	}
	if pf.IsIndexed() {
		b.Palette = DefaultPalette(pf)
	}
	return b, nil
}

// Validate checks that the bitmap describes a usable pixel buffer.
func (b *Bitmap) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil", ErrInvalidBitmap)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBitmap, b.Width, b.Height)
	}
	if !b.Format.IsValid() {
		return fmt.Errorf("%w: format %v", ErrInvalidBitmap, b.Format)
	}
	row := b.Format.RowBytes(b.Width)
	if b.Stride < row {
		return fmt.Errorf("%w: stride %d < row size %d", ErrInvalidBitmap, b.Stride, row)
	}
	if need := b.Stride*(b.Height-1) + row; len(b.Pix) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrInvalidBitmap, len(b.Pix), need)
	}
	return nil
}

// Bounds returns the bitmap rectangle anchored at the origin.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// RowBytes returns the pixel bytes of row y, excluding stride padding.
func (b *Bitmap) RowBytes(y int) []byte {
	start := y * b.Stride
	return b.Pix[start : start+b.Format.RowBytes(b.Width)]
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	out := *b
	out.Pix = make([]byte, len(b.Pix))
	copy(out.Pix, b.Pix)
	if b.Palette != nil {
		out.Palette = append(color.Palette(nil), b.Palette...)
	}
	return &out
}

// palette returns the bitmap palette, falling back to the default for its format.
func (b *Bitmap) palette() color.Palette {
	if len(b.Palette) > 0 {
		return b.Palette
	}
	return DefaultPalette(b.Format)
}

// DefaultPalette returns the palette used for indexed formats when none is
// supplied. Returns nil for non-indexed formats.
func DefaultPalette(pf PixelFormat) color.Palette {
	switch pf {
	case PixelFormat1bppIndexed:
		return color.Palette{color.Black, color.White}
	case PixelFormat2bppIndexed:
		return grayRamp(4)
	case PixelFormat4bppIndexed:
		return grayRamp(16)
	case PixelFormat8bppIndexed:
		return palette.Plan9
	default:
		return nil
	}
}

func grayRamp(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range n {
		v := uint8(i * 255 / (n - 1))
		p[i] = color.Gray{Y: v}
	}
	return p
}
