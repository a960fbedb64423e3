package codec

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solid returns a 32bppRGBA bitmap filled with one color.
func solid(t *testing.T, w, h int, c color.NRGBA) *Bitmap {
	t.Helper()
	b, err := NewBitmap(w, h, PixelFormat32bppRGBA)
	require.NoError(t, err)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return b
}

func TestSoftware_ConvertChannelOrder(t *testing.T) {
	src := solid(t, 2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := Software{}.Convert(src, PixelFormat32bppBGRA, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, PixelFormat32bppBGRA, out.Format)
	assert.Equal(t, []byte{30, 20, 10, 255}, out.Pix[:4])

	out, err = Software{}.Convert(src, PixelFormat24bppRGB, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, out.Stride)
	assert.Equal(t, []byte{10, 20, 30, 10, 20, 30}, out.Pix[:6])

	out, err = Software{}.Convert(src, PixelFormat32bppBGR, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{30, 20, 10, 255}, out.Pix[:4], "padding byte is opaque")
}

func TestSoftware_ConvertGray(t *testing.T) {
	src := solid(t, 1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := Software{}.Convert(src, PixelFormat8bppGray, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(255), out.Pix[0])

	out, err = Software{}.Convert(src, PixelFormatBlackWhite, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), out.Pix[0])
}

func TestSoftware_ConvertPremultiplied(t *testing.T) {
	src := solid(t, 1, 1, color.NRGBA{R: 200, G: 100, B: 0, A: 128})

	out, err := Software{}.Convert(src, PixelFormat32bppPRGBA, DitherNone, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100, int(out.Pix[0]), 1)
	assert.InDelta(t, 50, int(out.Pix[1]), 1)
	assert.Equal(t, byte(128), out.Pix[3])

	back, err := Software{}.Convert(out, PixelFormat32bppRGBA, DitherNone, nil)
	require.NoError(t, err)
	assert.InDelta(t, 200, int(back.Pix[0]), 2)
	assert.InDelta(t, 100, int(back.Pix[1]), 2)
}

func TestSoftware_ConvertHDR(t *testing.T) {
	src, err := NewBitmap(1, 1, PixelFormat128bppRGBAFloat)
	require.NoError(t, err)

	work := &floatImage{width: 1, height: 1, pix: []float32{4, 0.5, 0.25, 1}}
	writeRow(src.Format.info(), src.RowBytes(0), work.row(0))

	for _, pf := range []PixelFormat{PixelFormat64bppRGBAHalf, PixelFormat32bppRGBE, PixelFormat128bppRGBAFixedPoint} {
		t.Run(pf.String(), func(t *testing.T) {
			out, err := Software{}.Convert(src, pf, DitherNone, nil)
			require.NoError(t, err)

			got := &floatImage{width: 1, height: 1, pix: make([]float32, 4)}
			decode(out, got)
			assert.InDelta(t, 4, got.pix[0], 0.05)
			assert.InDelta(t, 0.5, got.pix[1], 0.02)
		})
	}
}

func TestSoftware_ConvertPacked16(t *testing.T) {
	src := solid(t, 1, 1, color.NRGBA{R: 255, G: 0, B: 255, A: 255})

	out, err := Software{}.Convert(src, PixelFormat16bppBGR565, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0xf8}, out.Pix)

	out, err = Software{}.Convert(src, PixelFormat16bppBGRA5551, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0xfc}, out.Pix)
}

func TestSoftware_ConvertDitherOnlyWhenReducing(t *testing.T) {
	// A mid-gray ramp that 5 bits cannot represent exactly.
	src, err := NewBitmap(16, 16, PixelFormat32bppRGBA)
	require.NoError(t, err)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 100, 100, 100, 255
	}

	plain, err := Software{}.Convert(src, PixelFormat16bppBGR565, DitherNone, nil)
	require.NoError(t, err)
	dithered, err := Software{}.Convert(src, PixelFormat16bppBGR565, DitherOrdered4x4, nil)
	require.NoError(t, err)
	assert.NotEqual(t, plain.Pix, dithered.Pix)

	// Widening never dithers.
	wide1, err := Software{}.Convert(src, PixelFormat64bppRGBA, DitherNone, nil)
	require.NoError(t, err)
	wide2, err := Software{}.Convert(src, PixelFormat64bppRGBA, DitherErrorDiffusion, nil)
	require.NoError(t, err)
	assert.Equal(t, wide1.Pix, wide2.Pix)
}

func TestSoftware_ConvertIndexed(t *testing.T) {
	src := solid(t, 3, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	for _, mode := range []DitherMode{DitherNone, DitherErrorDiffusion} {
		t.Run(mode.String(), func(t *testing.T) {
			out, err := Software{}.Convert(src, PixelFormat1bppIndexed, mode, nil)
			require.NoError(t, err)
			assert.Equal(t, 1, out.Stride)
			assert.Equal(t, byte(0xe0), out.Pix[0], "3 white pixels map to index 1")
			assert.Len(t, out.Palette, 2)
		})
	}

	pal := color.Palette{color.NRGBA{A: 255}, color.NRGBA{R: 255, A: 255}}
	red := solid(t, 1, 1, color.NRGBA{R: 250, A: 255})
	out, err := Software{}.Convert(red, PixelFormat8bppIndexed, DitherNone, pal)
	require.NoError(t, err)
	assert.Equal(t, byte(1), out.Pix[0])

	back, err := Software{}.Convert(out, PixelFormat32bppRGBA, DitherNone, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, back.Pix)
}

func TestSoftware_ConvertInvalid(t *testing.T) {
	src := solid(t, 1, 1, color.NRGBA{})

	_, err := Software{}.Convert(src, PixelFormatUnknown, DitherNone, nil)
	assert.ErrorIs(t, err, ErrCannotConvert)

	_, err = Software{}.Convert(&Bitmap{Width: 2, Height: 2, Stride: 1, Format: PixelFormat8bppGray}, PixelFormat32bppRGBA, DitherNone, nil)
	assert.ErrorIs(t, err, ErrInvalidBitmap)
}

func TestSoftware_Scale(t *testing.T) {
	src := solid(t, 4, 4, color.NRGBA{R: 40, G: 80, B: 120, A: 255})

	for _, filter := range []FilterMode{FilterPoint, FilterLinear, FilterCubic, FilterFant} {
		t.Run(filter.String(), func(t *testing.T) {
			out, err := Software{}.Scale(src, 2, 3, filter)
			require.NoError(t, err)
			assert.Equal(t, 2, out.Width)
			assert.Equal(t, 3, out.Height)
			assert.Equal(t, PixelFormat32bppRGBA, out.Format)
			for i := 0; i < len(out.Pix); i += 4 {
				assert.InDelta(t, 40, int(out.Pix[i]), 1)
				assert.InDelta(t, 120, int(out.Pix[i+2]), 1)
			}
		})
	}
}

func TestSoftware_ScaleFloat(t *testing.T) {
	src, err := NewBitmap(2, 1, PixelFormat32bppGrayFloat)
	require.NoError(t, err)
	work := &floatImage{width: 2, height: 1, pix: []float32{2, 2, 2, 1, 4, 4, 4, 1}}
	writeRow(src.Format.info(), src.RowBytes(0), work.row(0))

	out, err := Software{}.Scale(src, 1, 1, FilterFant)
	require.NoError(t, err)

	got := &floatImage{width: 1, height: 1, pix: make([]float32, 4)}
	decode(out, got)
	assert.InDelta(t, 3, got.pix[0], 1e-5)
}

func TestSoftware_Clip(t *testing.T) {
	src, err := NewBitmap(4, 2, PixelFormat8bppGray)
	require.NoError(t, err)
	copy(src.Pix, []byte{0, 1, 2, 3, 4, 5, 6, 7})

	out, err := Software{}.Clip(src, image.Rect(1, 1, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Width)
	assert.Equal(t, 1, out.Height)
	assert.Equal(t, []byte{5, 6, 7}, out.Pix)

	_, err = Software{}.Clip(src, image.Rect(5, 5, 6, 6))
	assert.ErrorIs(t, err, ErrInvalidBitmap)
}

func TestSoftware_ClipSubByte(t *testing.T) {
	src, err := NewBitmap(8, 1, PixelFormatBlackWhite)
	require.NoError(t, err)
	src.Pix[0] = 0b10110000

	out, err := Software{}.Clip(src, image.Rect(2, 0, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, byte(0b11000000), out.Pix[0])
}

func TestSoftware_CopyPixels(t *testing.T) {
	src, err := NewBitmap(2, 2, PixelFormat8bppGray)
	require.NoError(t, err)
	copy(src.Pix, []byte{1, 2, 3, 4})

	dst := make([]byte, 8)
	require.NoError(t, Software{}.CopyPixels(src, 4, dst))
	assert.Equal(t, []byte{1, 2, 0, 0, 3, 4, 0, 0}, dst)

	tight := make([]byte, 4)
	require.NoError(t, Software{}.CopyPixels(src, 2, tight))
	assert.Equal(t, []byte{1, 2, 3, 4}, tight)

	assert.ErrorIs(t, Software{}.CopyPixels(src, 1, dst), ErrInvalidBitmap)
	assert.ErrorIs(t, Software{}.CopyPixels(src, 4, make([]byte, 7)), ErrInvalidBitmap)
}

func TestSoftware_BitsPerPixel(t *testing.T) {
	tests := []struct {
		pf   PixelFormat
		bits int
	}{
		{PixelFormatUnknown, 0},
		{PixelFormat1bppIndexed, 1},
		{PixelFormat16bppBGR565, 16},
		{PixelFormat24bppBGR, 24},
		{PixelFormat40bppCMYKAlpha, 40},
		{PixelFormat96bppRGBFixedPoint, 96},
		{PixelFormat128bppRGBAFloat, 128},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bits, Software{}.BitsPerPixel(tt.pf), tt.pf.String())
	}
}

func TestScratchPool(t *testing.T) {
	p := newScratchPool(1)

	a := p.get(2, 2)
	a.pix[0] = 1
	p.put(a)
	p.put(&floatImage{width: 2, height: 2, pix: make([]float32, 16)})
	assert.Equal(t, 1, p.count(2, 2))

	b := p.get(2, 2)
	assert.Same(t, a, b)
	assert.Zero(t, b.pix[0])
	assert.Equal(t, 0, p.count(2, 2))
}
