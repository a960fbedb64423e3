package codec

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// bayer returns the n x n Bayer threshold matrix, n a power of two.
func bayer(n int) [][]float32 {
	m := [][]float32{{0}}
	for size := 1; size < n; size *= 2 {
		next := make([][]float32, size*2)
		for y := range next {
			next[y] = make([]float32, size*2)
		}
		for y := range size {
			for x := range size {
				v := m[y][x] * 4
				next[y][x] = v
				next[y][x+size] = v + 2
				next[y+size][x] = v + 3
				next[y+size][x+size] = v + 1
			}
		}
		m = next
	}
	return m
}

var (
	bayer4  = bayer(4)
	bayer8  = bayer(8)
	bayer16 = bayer(16)
)

func (d DitherMode) matrix() [][]float32 {
	switch d {
	case DitherOrdered4x4:
		return bayer4
	case DitherOrdered8x8:
		return bayer8
	case DitherOrdered16x16:
		return bayer16
	default:
		return nil
	}
}

// applyDither quantizes img in place to 2^precision levels per channel.
func applyDither(img *floatImage, mode DitherMode, precision int) {
	if mode == DitherNone || precision <= 0 || precision >= 16 {
		return
	}
	levels := float32(uint32(1)<<precision - 1)

	if mode == DitherErrorDiffusion {
		diffuse(img, levels)
		return
	}

	m := mode.matrix()
	if m == nil {
		return
	}
	n := len(m)
	scale := 1 / float32(n*n)
	for y := range img.height {
		for x := range img.width {
			t := (m[y%n][x%n]+0.5)*scale - 0.5
			px := img.at(x, y)
			for c := range 4 {
				px[c] = levelOf(px[c]*levels+t, levels)
			}
		}
	}
}

// diffuse applies Floyd-Steinberg error diffusion in float space.
func diffuse(img *floatImage, levels float32) {
	w := img.width
	cur := make([]float32, (w+2)*4)
	next := make([]float32, (w+2)*4)

	for y := range img.height {
		for x := range w {
			px := img.at(x, y)
			for c := range 4 {
				e := (x+1)*4 + c
				want := px[c]*levels + cur[e]
				got := levelOf(want, levels) * levels
				px[c] = got / levels
				err := want - got
				cur[e+4] += err * 7 / 16
				next[e-4] += err * 3 / 16
				next[e] += err * 5 / 16
				next[e+4] += err * 1 / 16
			}
		}
		cur, next = next, cur
		clear(next)
	}
}

// levelOf rounds a scaled value to the nearest level and returns it in [0, 1].
func levelOf(v, levels float32) float32 {
	r := float32(math.Round(clampFloat(float64(v), 0, float64(levels))))
	return r / levels
}

// writeIndexed maps src onto the palette of out. Error diffusion uses the
// Floyd-Steinberg drawer, other modes pick the nearest palette entry.
func writeIndexed(src *floatImage, out *Bitmap, dither DitherMode) {
	pal := out.palette()
	if mode := dither; mode != DitherErrorDiffusion && mode != DitherNone {
		applyDither(src, mode, out.Format.BitsPerPixel())
	}

	rgba := toNRGBA(src)
	paletted := image.NewPaletted(rgba.Bounds(), pal)
	var drawer draw.Drawer = draw.Src
	if dither == DitherErrorDiffusion {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(paletted, paletted.Bounds(), rgba, image.Point{})

	bits := out.Format.BitsPerPixel()
	for y := range out.Height {
		row := out.RowBytes(y)
		for x := range out.Width {
			setPackedValue(row, x, bits, uint32(paletted.ColorIndexAt(x, y)))
		}
	}
	out.Palette = pal
}

// toNRGBA converts a working image to 8-bit straight alpha.
func toNRGBA(src *floatImage) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, src.width, src.height))
	for y := range src.height {
		row := src.row(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+src.width*4]
		for i, v := range row {
			dst[i] = uint8(quantize(v, 255))
		}
	}
	return img
}

// fromNRGBA fills dst from an 8-bit straight alpha image of the same size.
func fromNRGBA(img *image.NRGBA, dst *floatImage) {
	for y := range dst.height {
		row := dst.row(y)
		src := img.Pix[y*img.Stride : y*img.Stride+dst.width*4]
		for i, v := range src {
			row[i] = float32(v) / 255
		}
	}
}
