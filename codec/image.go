package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFileFormat is returned when encoding to an unknown file format.
var ErrUnsupportedFileFormat = errors.New("codec: unsupported file format")

// FileFormat identifies an encoded image container.
type FileFormat uint8

const (
	// FilePNG is the PNG format.
	FilePNG FileFormat = iota
	// FileJPEG is the JPEG format.
	FileJPEG
	// FileGIF is the GIF format.
	FileGIF
	// FileBMP is the Windows bitmap format.
	FileBMP
	// FileTIFF is the TIFF format.
	FileTIFF
)

// String returns the conventional name of the file format.
func (f FileFormat) String() string {
	switch f {
	case FilePNG:
		return "png"
	case FileJPEG:
		return "jpeg"
	case FileGIF:
		return "gif"
	case FileBMP:
		return "bmp"
	case FileTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// FileFormatFromPath picks a file format from a path extension.
func FileFormatFromPath(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FilePNG, nil
	case ".jpg", ".jpeg":
		return FileJPEG, nil
	case ".gif":
		return FileGIF, nil
	case ".bmp":
		return FileBMP, nil
	case ".tif", ".tiff":
		return FileTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFileFormat, filepath.Ext(path))
	}
}

// Decode decodes an image from r, auto-detecting PNG, JPEG, GIF, BMP, TIFF
// and WebP. It returns the bitmap and the detected format name.
func Decode(r io.Reader) (*Bitmap, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("codec: decode: %w", err)
	}
	return FromImage(img), name, nil
}

// Encode writes b to w in the given file format.
func Encode(w io.Writer, b *Bitmap, f FileFormat) error {
	img, err := ToImage(b)
	if err != nil {
		return err
	}

	switch f {
	case FilePNG:
		err = png.Encode(w, img)
	case FileJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FileGIF:
		err = gif.Encode(w, img, nil)
	case FileBMP:
		err = bmp.Encode(w, img)
	case FileTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFileFormat, f)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %v: %w", f, err)
	}
	return nil
}

// FromImage creates a Bitmap from a standard library image.
//
// Common image types keep their native encoding (gray, paletted, 16-bit,
// premultiplied). Everything else becomes 32bppRGBA.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		return copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat32bppRGBA)
	case *image.RGBA:
		return copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat32bppPRGBA)
	case *image.Gray:
		return copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat8bppGray)
	case *image.Alpha:
		return copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat8bppAlpha)
	case *image.Paletted:
		b := copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat8bppIndexed)
		b.Palette = append(color.Palette(nil), src.Palette...)
		return b
	case *image.Gray16:
		b := copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat16bppGray)
		swap16(b.Pix)
		return b
	case *image.NRGBA64:
		b := copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat64bppRGBA)
		swap16(b.Pix)
		return b
	case *image.RGBA64:
		b := copyRows(src.Pix, src.Stride, src.PixOffset(bounds.Min.X, bounds.Min.Y), w, h, PixelFormat64bppPRGBA)
		swap16(b.Pix)
		return b
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Bitmap{Width: w, Height: h, Stride: dst.Stride, Format: PixelFormat32bppRGBA, Pix: dst.Pix}
}

// copyRows copies h rows of w pixels starting at off into a tightly packed bitmap.
func copyRows(pix []byte, stride, off, w, h int, pf PixelFormat) *Bitmap {
	b := &Bitmap{Width: w, Height: h, Stride: pf.RowBytes(w), Format: pf}
	b.Pix = make([]byte, b.Stride*h)
	for y := range h {
		start := off + y*stride
		copy(b.Pix[y*b.Stride:(y+1)*b.Stride], pix[start:start+b.Stride])
	}
	return b
}

// swap16 flips the byte order of every 16-bit word in p.
func swap16(p []byte) {
	for i := 0; i+1 < len(p); i += 2 {
		p[i], p[i+1] = p[i+1], p[i]
	}
}

// ToImage converts a Bitmap to a standard library image.
//
// 8-bit gray, 16-bit gray, 8-bit indexed and the 32/64bpp RGBA formats map
// directly. Other formats are converted through the float working image to
// NRGBA, or NRGBA64 when they carry more than 8 bits per channel.
func ToImage(b *Bitmap) (image.Image, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	r := b.Bounds()

	switch b.Format {
	case PixelFormat32bppRGBA:
		img := image.NewNRGBA(r)
		packRows(img.Pix, img.Stride, b)
		return img, nil
	case PixelFormat32bppPRGBA:
		img := image.NewRGBA(r)
		packRows(img.Pix, img.Stride, b)
		return img, nil
	case PixelFormat8bppGray:
		img := image.NewGray(r)
		packRows(img.Pix, img.Stride, b)
		return img, nil
	case PixelFormat8bppIndexed:
		img := image.NewPaletted(r, b.palette())
		packRows(img.Pix, img.Stride, b)
		return img, nil
	case PixelFormat16bppGray:
		img := image.NewGray16(r)
		packRows(img.Pix, img.Stride, b)
		swap16(img.Pix)
		return img, nil
	case PixelFormat64bppRGBA:
		img := image.NewNRGBA64(r)
		packRows(img.Pix, img.Stride, b)
		swap16(img.Pix)
		return img, nil
	}

	work := defaultScratch.get(b.Width, b.Height)
	defer defaultScratch.put(work)
	decode(b, work)

	if p := b.Format.Precision(); p > 0 && p <= 8 {
		return toNRGBA(work), nil
	}

	img := image.NewNRGBA64(r)
	for y := range b.Height {
		row := work.row(y)
		dst := img.Pix[y*img.Stride:]
		for i, v := range row {
			binary.BigEndian.PutUint16(dst[i*2:], uint16(quantize(v, 65535)))
		}
	}
	return img, nil
}

func packRows(dst []byte, stride int, b *Bitmap) {
	for y := range b.Height {
		copy(dst[y*stride:], b.RowBytes(y))
	}
}
