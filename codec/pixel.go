package codec

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/x448/float16"
)

// floatImage is a straight alpha RGBA working image with float32 channels.
// Values may exceed [0, 1] for HDR sources.
type floatImage struct {
	width  int
	height int
	pix    []float32
}

// at returns the 4 channels of pixel (x, y).
func (f *floatImage) at(x, y int) []float32 {
	i := (y*f.width + x) * 4
	return f.pix[i : i+4 : i+4]
}

// row returns the channels of row y.
func (f *floatImage) row(y int) []float32 {
	i := y * f.width * 4
	return f.pix[i : i+f.width*4]
}

// decode reads every pixel of b into dst, which must match b's size.
func decode(b *Bitmap, dst *floatImage) {
	info := b.Format.info()
	pal := b.palette()
	for y := range b.Height {
		readRow(info, b.RowBytes(y), dst.row(y), pal)
	}
}

// encode writes src into a new bitmap of format pf. Indexed formats are
// mapped onto pal using dither.
func encode(src *floatImage, pf PixelFormat, pal color.Palette, dither DitherMode) (*Bitmap, error) {
	out, err := NewBitmap(src.width, src.height, pf)
	if err != nil {
		return nil, err
	}

	info := pf.info()
	if info.enc == encIndexed {
		if len(pal) > 0 {
			out.Palette = pal
		}
		writeIndexed(src, out, dither)
		return out, nil
	}

	for y := range src.height {
		writeRow(info, out.RowBytes(y), src.row(y))
	}
	return out, nil
}

// packedValue returns the n-bit value of pixel x in an MSB-first packed row.
func packedValue(row []byte, x, n int) uint32 {
	perByte := 8 / n
	shift := 8 - n*(x%perByte+1)
	return uint32(row[x/perByte]>>shift) & (1<<n - 1)
}

// setPackedValue stores the n-bit value v for pixel x in an MSB-first packed row.
func setPackedValue(row []byte, x, n int, v uint32) {
	perByte := 8 / n
	shift := 8 - n*(x%perByte+1)
	mask := byte(1<<n-1) << shift
	i := x / perByte
	row[i] = row[i]&^mask | byte(v<<shift)&mask
}

// componentSize returns the stored size in bytes of one component.
func componentSize(enc encoding) int {
	switch enc {
	case encUnorm8:
		return 1
	case encUnorm16, encFixed16, encHalf:
		return 2
	case encFixed32, encFloat:
		return 4
	default:
		return 0
	}
}

func readComponent(enc encoding, b []byte) float32 {
	switch enc {
	case encUnorm8:
		return float32(b[0]) / 255
	case encUnorm16:
		return float32(binary.LittleEndian.Uint16(b)) / 65535
	case encFixed16:
		return float32(int16(binary.LittleEndian.Uint16(b))) / (1 << 13)
	case encHalf:
		return float16.Frombits(binary.LittleEndian.Uint16(b)).Float32()
	case encFixed32:
		return float32(int32(binary.LittleEndian.Uint32(b))) / (1 << 24)
	case encFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	default:
		return 0
	}
}

func writeComponent(enc encoding, b []byte, v float32) {
	switch enc {
	case encUnorm8:
		b[0] = uint8(quantize(v, 255))
	case encUnorm16:
		binary.LittleEndian.PutUint16(b, uint16(quantize(v, 65535)))
	case encFixed16:
		f := clampFloat(float64(v)*(1<<13), math.MinInt16, math.MaxInt16)
		binary.LittleEndian.PutUint16(b, uint16(int16(math.Round(f))))
	case encHalf:
		binary.LittleEndian.PutUint16(b, float16.Fromfloat32(v).Bits())
	case encFixed32:
		f := clampFloat(float64(v)*(1<<24), math.MinInt32, math.MaxInt32)
		binary.LittleEndian.PutUint32(b, uint32(int32(math.Round(f))))
	case encFloat:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	}
}

// quantize maps v in [0, 1] onto [0, maxv] with rounding.
func quantize(v float32, maxv uint32) uint32 {
	f := math.Round(clampFloat(float64(v), 0, 1) * float64(maxv))
	return uint32(f)
}

// luma returns the BT.709 luminance of an RGB triple.
func luma(r, g, b float32) float32 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func readRow(info pixelInfo, row []byte, out []float32, pal color.Palette) {
	width := len(out) / 4
	for x := range width {
		px := out[x*4 : x*4+4 : x*4+4]
		readPixel(info, row, x, px, pal)
		if info.premul && px[chA] > 0 {
			inv := 1 / px[chA]
			px[chR] *= inv
			px[chG] *= inv
			px[chB] *= inv
		}
	}
}

func readPixel(info pixelInfo, row []byte, x int, px []float32, pal color.Palette) {
	switch info.enc {
	case encIndexed:
		idx := int(packedValue(row, x, info.bits))
		c := color.NRGBA{A: 0xff}
		if idx < len(pal) {
			c = color.NRGBAModel.Convert(pal[idx]).(color.NRGBA)
		}
		px[chR] = float32(c.R) / 255
		px[chG] = float32(c.G) / 255
		px[chB] = float32(c.B) / 255
		px[chA] = float32(c.A) / 255

	case encGrayPacked:
		v := float32(packedValue(row, x, info.bits)) / float32(uint32(1)<<info.bits-1)
		px[chR], px[chG], px[chB], px[chA] = v, v, v, 1

	case encUnorm8, encUnorm16, encFixed16, encHalf, encFixed32, encFloat:
		size := componentSize(info.enc)
		base := x * info.components * size
		for c := range 4 {
			slot := info.order[c]
			switch {
			case slot != none:
				off := base + int(slot)*size
				px[c] = readComponent(info.enc, row[off:off+size])
			case c == chA:
				px[c] = 1
			default:
				px[c] = 0
			}
		}

	case enc555, enc565, enc5551:
		v := uint32(binary.LittleEndian.Uint16(row[x*2:]))
		px[chB] = float32(v&31) / 31
		px[chA] = 1
		if info.enc == enc565 {
			px[chG] = float32((v>>5)&63) / 63
			px[chR] = float32((v>>11)&31) / 31
			return
		}
		px[chG] = float32((v>>5)&31) / 31
		px[chR] = float32((v>>10)&31) / 31
		if info.enc == enc5551 {
			px[chA] = float32(v >> 15)
		}

	case encRGBE:
		p := row[x*4 : x*4+4]
		px[chA] = 1
		if p[3] == 0 {
			px[chR], px[chG], px[chB] = 0, 0, 0
			return
		}
		f := float32(math.Ldexp(1, int(p[3])-(128+8)))
		px[chR] = (float32(p[0]) + 0.5) * f
		px[chG] = (float32(p[1]) + 0.5) * f
		px[chB] = (float32(p[2]) + 0.5) * f

	case encBGR101010:
		v := binary.LittleEndian.Uint32(row[x*4:])
		px[chB] = float32(v&1023) / 1023
		px[chG] = float32((v>>10)&1023) / 1023
		px[chR] = float32((v>>20)&1023) / 1023
		px[chA] = 1

	case enc1010102, enc1010102XR:
		v := binary.LittleEndian.Uint32(row[x*4:])
		r, g, b := v&1023, (v>>10)&1023, (v>>20)&1023
		px[chA] = float32(v>>30) / 3
		if info.enc == enc1010102XR {
			px[chR] = (float32(r) - 384) / 510
			px[chG] = (float32(g) - 384) / 510
			px[chB] = (float32(b) - 384) / 510
			return
		}
		px[chR] = float32(r) / 1023
		px[chG] = float32(g) / 1023
		px[chB] = float32(b) / 1023

	case encCMYK8, encCMYK16:
		size := 1
		enc := encUnorm8
		if info.enc == encCMYK16 {
			size, enc = 2, encUnorm16
		}
		base := x * info.components * size
		var ch [5]float32
		ch[4] = 1
		for i := range info.components {
			off := base + i*size
			ch[i] = readComponent(enc, row[off:off+size])
		}
		k := 1 - ch[3]
		px[chR] = (1 - ch[0]) * k
		px[chG] = (1 - ch[1]) * k
		px[chB] = (1 - ch[2]) * k
		px[chA] = ch[4]
	}
}

func writeRow(info pixelInfo, row []byte, in []float32) {
	width := len(in) / 4
	for x := range width {
		px := [4]float32(in[x*4 : x*4+4])
		if info.premul {
			px[chR] *= px[chA]
			px[chG] *= px[chA]
			px[chB] *= px[chA]
		}
		writePixel(info, row, x, px)
	}
}

func writePixel(info pixelInfo, row []byte, x int, px [4]float32) {
	switch info.enc {
	case encGrayPacked:
		setPackedValue(row, x, info.bits, quantize(luma(px[chR], px[chG], px[chB]), 1<<info.bits-1))

	case encUnorm8, encUnorm16, encFixed16, encHalf, encFixed32, encFloat:
		size := componentSize(info.enc)
		base := x * info.components * size
		for slot := range info.components {
			v := float32(1)
			switch {
			case info.gray:
				v = luma(px[chR], px[chG], px[chB])
			default:
				for c := range 4 {
					if int(info.order[c]) == slot {
						v = px[c]
						break
					}
				}
			}
			off := base + slot*size
			writeComponent(info.enc, row[off:off+size], v)
		}

	case enc555, enc565, enc5551:
		var v uint32
		b := quantize(px[chB], 31)
		if info.enc == enc565 {
			v = quantize(px[chR], 31)<<11 | quantize(px[chG], 63)<<5 | b
		} else {
			v = quantize(px[chR], 31)<<10 | quantize(px[chG], 31)<<5 | b
			if info.enc == enc5551 {
				v |= quantize(px[chA], 1) << 15
			}
		}
		binary.LittleEndian.PutUint16(row[x*2:], uint16(v))

	case encRGBE:
		p := row[x*4 : x*4+4]
		m := max(px[chR], px[chG], px[chB])
		if m < 1e-32 {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
			return
		}
		frac, exp := math.Frexp(float64(m))
		scale := frac * 256 / float64(m)
		p[0] = uint8(clampFloat(float64(px[chR])*scale, 0, 255))
		p[1] = uint8(clampFloat(float64(px[chG])*scale, 0, 255))
		p[2] = uint8(clampFloat(float64(px[chB])*scale, 0, 255))
		p[3] = uint8(exp + 128)

	case encBGR101010:
		v := quantize(px[chR], 1023)<<20 | quantize(px[chG], 1023)<<10 | quantize(px[chB], 1023)
		binary.LittleEndian.PutUint32(row[x*4:], v)

	case enc1010102:
		v := quantize(px[chA], 3)<<30 | quantize(px[chB], 1023)<<20 |
			quantize(px[chG], 1023)<<10 | quantize(px[chR], 1023)
		binary.LittleEndian.PutUint32(row[x*4:], v)

	case enc1010102XR:
		xr := func(c float32) uint32 {
			return uint32(math.Round(clampFloat(float64(c)*510+384, 0, 1023)))
		}
		v := quantize(px[chA], 3)<<30 | xr(px[chB])<<20 | xr(px[chG])<<10 | xr(px[chR])
		binary.LittleEndian.PutUint32(row[x*4:], v)

	case encCMYK8, encCMYK16:
		size := 1
		enc := encUnorm8
		if info.enc == encCMYK16 {
			size, enc = 2, encUnorm16
		}
		r := clampFloat32(px[chR])
		g := clampFloat32(px[chG])
		b := clampFloat32(px[chB])
		k := 1 - max(r, g, b)
		var c, m, y float32
		if k < 1 {
			c = (1 - r - k) / (1 - k)
			m = (1 - g - k) / (1 - k)
			y = (1 - b - k) / (1 - k)
		}
		ch := [5]float32{c, m, y, k, px[chA]}
		base := x * info.components * size
		for i := range info.components {
			off := base + i*size
			writeComponent(enc, row[off:off+size], ch[i])
		}
	}
}

func clampFloat32(v float32) float32 {
	return float32(clampFloat(float64(v), 0, 1))
}

// clampFloat clamps a float64 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
