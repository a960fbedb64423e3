// Package codec provides the external bitmap representation used by imgdata
// and a software implementation of the imaging capabilities the conversion
// engine consumes: format conversion, scaling, clipping and pixel copies.
//
// Pixel format identifiers follow the naming of common host imaging codecs
// (bits per pixel, channel order, numeric encoding) so that bitmaps produced
// by a platform decoder can be described without translation.
package codec

// PixelFormat identifies an external pixel encoding.
type PixelFormat uint8

// External pixel formats.
const (
	PixelFormatUnknown PixelFormat = iota

	PixelFormat1bppIndexed
	PixelFormat2bppIndexed
	PixelFormat4bppIndexed
	PixelFormat8bppIndexed

	PixelFormatBlackWhite
	PixelFormat2bppGray
	PixelFormat4bppGray
	PixelFormat8bppGray
	PixelFormat16bppGray
	PixelFormat16bppGrayFixedPoint
	PixelFormat16bppGrayHalf
	PixelFormat32bppGrayFixedPoint
	PixelFormat32bppGrayFloat

	PixelFormat8bppAlpha

	PixelFormat16bppBGR555
	PixelFormat16bppBGR565
	PixelFormat16bppBGRA5551

	PixelFormat24bppBGR
	PixelFormat24bppRGB

	PixelFormat32bppBGR
	PixelFormat32bppBGRA
	PixelFormat32bppPBGRA
	PixelFormat32bppRGBA
	PixelFormat32bppPRGBA
	PixelFormat32bppRGBE
	PixelFormat32bppBGR101010
	PixelFormat32bppRGBA1010102
	PixelFormat32bppRGBA1010102XR

	PixelFormat32bppCMYK
	PixelFormat40bppCMYKAlpha
	PixelFormat64bppCMYK
	PixelFormat80bppCMYKAlpha

	PixelFormat48bppRGB
	PixelFormat48bppBGR
	PixelFormat48bppRGBFixedPoint
	PixelFormat48bppBGRFixedPoint
	PixelFormat48bppRGBHalf

	PixelFormat64bppRGBA
	PixelFormat64bppBGRA
	PixelFormat64bppPRGBA
	PixelFormat64bppPBGRA
	PixelFormat64bppRGBAFixedPoint
	PixelFormat64bppBGRAFixedPoint
	PixelFormat64bppRGBFixedPoint
	PixelFormat64bppRGBAHalf
	PixelFormat64bppRGBHalf

	PixelFormat96bppRGBFixedPoint

	PixelFormat128bppRGBAFloat
	PixelFormat128bppPRGBAFloat
	PixelFormat128bppRGBFloat
	PixelFormat128bppRGBAFixedPoint
	PixelFormat128bppRGBFixedPoint

	pixelFormatCount
)

// encoding describes how a pixel is stored.
type encoding uint8

const (
	encNone encoding = iota
	encIndexed
	encGrayPacked // 1, 2 or 4 bit gray, MSB first
	encUnorm8
	encUnorm16
	encFixed16 // signed 16-bit, 13 fractional bits
	encFixed32 // signed 32-bit, 24 fractional bits
	encHalf
	encFloat
	enc555
	enc565
	enc5551
	encRGBE
	encBGR101010
	enc1010102
	enc1010102XR
	encCMYK8
	encCMYK16
)

// Channel slots used by pixelInfo.order.
const (
	chR = iota
	chG
	chB
	chA
)

// none marks a logical channel that is not stored.
const none = -1

type pixelInfo struct {
	name string
	bits int
	enc  encoding

	// components is the number of stored components for component encodings.
	components int

	// order maps the logical R, G, B, A channels to stored component slots.
	order [4]int8

	gray      bool
	premul    bool
	precision int // bits of precision per channel, 0 for floating point
}

var (
	orderRGBA = [4]int8{0, 1, 2, 3}
	orderBGRA = [4]int8{2, 1, 0, 3}
	orderRGB  = [4]int8{0, 1, 2, none}
	orderBGR  = [4]int8{2, 1, 0, none}
	orderGray = [4]int8{0, 0, 0, none}
	orderA    = [4]int8{none, none, none, 0}
)

var pixelTable = [pixelFormatCount]pixelInfo{
	PixelFormatUnknown: {name: "Unknown"},

	PixelFormat1bppIndexed: {name: "1bppIndexed", bits: 1, enc: encIndexed, precision: 1},
	PixelFormat2bppIndexed: {name: "2bppIndexed", bits: 2, enc: encIndexed, precision: 2},
	PixelFormat4bppIndexed: {name: "4bppIndexed", bits: 4, enc: encIndexed, precision: 4},
	PixelFormat8bppIndexed: {name: "8bppIndexed", bits: 8, enc: encIndexed, precision: 8},

	PixelFormatBlackWhite: {name: "BlackWhite", bits: 1, enc: encGrayPacked, gray: true, precision: 1},
	PixelFormat2bppGray:   {name: "2bppGray", bits: 2, enc: encGrayPacked, gray: true, precision: 2},
	PixelFormat4bppGray:   {name: "4bppGray", bits: 4, enc: encGrayPacked, gray: true, precision: 4},
	PixelFormat8bppGray: {
		name: "8bppGray", bits: 8, enc: encUnorm8, components: 1, order: orderGray, gray: true, precision: 8,
	},
	PixelFormat16bppGray: {
		name: "16bppGray", bits: 16, enc: encUnorm16, components: 1, order: orderGray, gray: true, precision: 16,
	},
	PixelFormat16bppGrayFixedPoint: {
		name: "16bppGrayFixedPoint", bits: 16, enc: encFixed16, components: 1, order: orderGray, gray: true, precision: 13,
	},
	PixelFormat16bppGrayHalf: {
		name: "16bppGrayHalf", bits: 16, enc: encHalf, components: 1, order: orderGray, gray: true,
	},
	PixelFormat32bppGrayFixedPoint: {
		name: "32bppGrayFixedPoint", bits: 32, enc: encFixed32, components: 1, order: orderGray, gray: true, precision: 24,
	},
	PixelFormat32bppGrayFloat: {
		name: "32bppGrayFloat", bits: 32, enc: encFloat, components: 1, order: orderGray, gray: true,
	},

	PixelFormat8bppAlpha: {
		name: "8bppAlpha", bits: 8, enc: encUnorm8, components: 1, order: orderA, precision: 8,
	},

	PixelFormat16bppBGR555:   {name: "16bppBGR555", bits: 16, enc: enc555, precision: 5},
	PixelFormat16bppBGR565:   {name: "16bppBGR565", bits: 16, enc: enc565, precision: 5},
	PixelFormat16bppBGRA5551: {name: "16bppBGRA5551", bits: 16, enc: enc5551, precision: 5},

	PixelFormat24bppBGR: {name: "24bppBGR", bits: 24, enc: encUnorm8, components: 3, order: orderBGR, precision: 8},
	PixelFormat24bppRGB: {name: "24bppRGB", bits: 24, enc: encUnorm8, components: 3, order: orderRGB, precision: 8},

	PixelFormat32bppBGR:  {name: "32bppBGR", bits: 32, enc: encUnorm8, components: 4, order: orderBGR, precision: 8},
	PixelFormat32bppBGRA: {name: "32bppBGRA", bits: 32, enc: encUnorm8, components: 4, order: orderBGRA, precision: 8},
	PixelFormat32bppPBGRA: {
		name: "32bppPBGRA", bits: 32, enc: encUnorm8, components: 4, order: orderBGRA, premul: true, precision: 8,
	},
	PixelFormat32bppRGBA: {name: "32bppRGBA", bits: 32, enc: encUnorm8, components: 4, order: orderRGBA, precision: 8},
	PixelFormat32bppPRGBA: {
		name: "32bppPRGBA", bits: 32, enc: encUnorm8, components: 4, order: orderRGBA, premul: true, precision: 8,
	},
	PixelFormat32bppRGBE:          {name: "32bppRGBE", bits: 32, enc: encRGBE},
	PixelFormat32bppBGR101010:     {name: "32bppBGR101010", bits: 32, enc: encBGR101010, precision: 10},
	PixelFormat32bppRGBA1010102:   {name: "32bppRGBA1010102", bits: 32, enc: enc1010102, precision: 10},
	PixelFormat32bppRGBA1010102XR: {name: "32bppRGBA1010102XR", bits: 32, enc: enc1010102XR, precision: 10},

	PixelFormat32bppCMYK:      {name: "32bppCMYK", bits: 32, enc: encCMYK8, components: 4, precision: 8},
	PixelFormat40bppCMYKAlpha: {name: "40bppCMYKAlpha", bits: 40, enc: encCMYK8, components: 5, precision: 8},
	PixelFormat64bppCMYK:      {name: "64bppCMYK", bits: 64, enc: encCMYK16, components: 4, precision: 16},
	PixelFormat80bppCMYKAlpha: {name: "80bppCMYKAlpha", bits: 80, enc: encCMYK16, components: 5, precision: 16},

	PixelFormat48bppRGB: {name: "48bppRGB", bits: 48, enc: encUnorm16, components: 3, order: orderRGB, precision: 16},
	PixelFormat48bppBGR: {name: "48bppBGR", bits: 48, enc: encUnorm16, components: 3, order: orderBGR, precision: 16},
	PixelFormat48bppRGBFixedPoint: {
		name: "48bppRGBFixedPoint", bits: 48, enc: encFixed16, components: 3, order: orderRGB, precision: 13,
	},
	PixelFormat48bppBGRFixedPoint: {
		name: "48bppBGRFixedPoint", bits: 48, enc: encFixed16, components: 3, order: orderBGR, precision: 13,
	},
	PixelFormat48bppRGBHalf: {name: "48bppRGBHalf", bits: 48, enc: encHalf, components: 3, order: orderRGB},

	PixelFormat64bppRGBA: {name: "64bppRGBA", bits: 64, enc: encUnorm16, components: 4, order: orderRGBA, precision: 16},
	PixelFormat64bppBGRA: {name: "64bppBGRA", bits: 64, enc: encUnorm16, components: 4, order: orderBGRA, precision: 16},
	PixelFormat64bppPRGBA: {
		name: "64bppPRGBA", bits: 64, enc: encUnorm16, components: 4, order: orderRGBA, premul: true, precision: 16,
	},
	PixelFormat64bppPBGRA: {
		name: "64bppPBGRA", bits: 64, enc: encUnorm16, components: 4, order: orderBGRA, premul: true, precision: 16,
	},
	PixelFormat64bppRGBAFixedPoint: {
		name: "64bppRGBAFixedPoint", bits: 64, enc: encFixed16, components: 4, order: orderRGBA, precision: 13,
	},
	PixelFormat64bppBGRAFixedPoint: {
		name: "64bppBGRAFixedPoint", bits: 64, enc: encFixed16, components: 4, order: orderBGRA, precision: 13,
	},
	PixelFormat64bppRGBFixedPoint: {
		name: "64bppRGBFixedPoint", bits: 64, enc: encFixed16, components: 4, order: orderRGB, precision: 13,
	},
	PixelFormat64bppRGBAHalf: {name: "64bppRGBAHalf", bits: 64, enc: encHalf, components: 4, order: orderRGBA},
	PixelFormat64bppRGBHalf:  {name: "64bppRGBHalf", bits: 64, enc: encHalf, components: 4, order: orderRGB},

	PixelFormat96bppRGBFixedPoint: {
		name: "96bppRGBFixedPoint", bits: 96, enc: encFixed32, components: 3, order: orderRGB, precision: 24,
	},

	PixelFormat128bppRGBAFloat: {name: "128bppRGBAFloat", bits: 128, enc: encFloat, components: 4, order: orderRGBA},
	PixelFormat128bppPRGBAFloat: {
		name: "128bppPRGBAFloat", bits: 128, enc: encFloat, components: 4, order: orderRGBA, premul: true,
	},
	PixelFormat128bppRGBFloat: {name: "128bppRGBFloat", bits: 128, enc: encFloat, components: 4, order: orderRGB},
	PixelFormat128bppRGBAFixedPoint: {
		name: "128bppRGBAFixedPoint", bits: 128, enc: encFixed32, components: 4, order: orderRGBA, precision: 24,
	},
	PixelFormat128bppRGBFixedPoint: {
		name: "128bppRGBFixedPoint", bits: 128, enc: encFixed32, components: 4, order: orderRGB, precision: 24,
	},
}

func (pf PixelFormat) info() pixelInfo {
	if pf >= pixelFormatCount {
		return pixelTable[PixelFormatUnknown]
	}
	return pixelTable[pf]
}

// String returns the name of the pixel format.
func (pf PixelFormat) String() string {
	return pf.info().name
}

// IsValid returns true for known, non-Unknown pixel formats.
func (pf PixelFormat) IsValid() bool {
	return pf > PixelFormatUnknown && pf < pixelFormatCount
}

// BitsPerPixel returns the number of bits used by one pixel.
func (pf PixelFormat) BitsPerPixel() int {
	return pf.info().bits
}

// IsIndexed returns true for palette based formats.
func (pf PixelFormat) IsIndexed() bool {
	return pf.info().enc == encIndexed
}

// IsPremultiplied returns true if color channels are stored premultiplied by alpha.
func (pf PixelFormat) IsPremultiplied() bool {
	return pf.info().premul
}

// HasAlpha returns true if the format stores an alpha channel.
func (pf PixelFormat) HasAlpha() bool {
	info := pf.info()
	switch info.enc {
	case encIndexed, enc5551, enc1010102, enc1010102XR:
		return true
	case encCMYK8, encCMYK16:
		return info.components == 5
	}
	return info.components > 0 && info.order[chA] != none
}

// Precision returns the number of bits of precision per channel.
// Floating point formats return 0.
func (pf PixelFormat) Precision() int {
	return pf.info().precision
}

// RowBytes returns the minimum number of bytes for one row of width pixels.
func (pf PixelFormat) RowBytes(width int) int {
	return (width*pf.BitsPerPixel() + 7) / 8
}

// reducesDepth reports whether converting from src to dst loses precision,
// which is when dithering is worthwhile.
func reducesDepth(src, dst PixelFormat) bool {
	dp := dst.Precision()
	if dp == 0 {
		return false
	}
	sp := src.Precision()
	return sp == 0 || dp < sp
}

// PixelFormats returns every valid pixel format in declaration order.
func PixelFormats() []PixelFormat {
	out := make([]PixelFormat, 0, pixelFormatCount-1)
	for pf := PixelFormatUnknown + 1; pf < pixelFormatCount; pf++ {
		out = append(out, pf)
	}
	return out
}
