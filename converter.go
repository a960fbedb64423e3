package imgdata

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/imgdata/catalog"
	"github.com/gogpu/imgdata/codec"
	"github.com/gogpu/imgdata/format"
)

// ImportOptions control how an external bitmap is written into a buffer.
type ImportOptions struct {
	// Dither is applied only when the conversion reduces bit depth.
	Dither codec.DitherMode

	// Filter is used when the bitmap is resampled to the buffer size.
	Filter codec.FilterMode

	// Clip crops a bitmap larger than the buffer to its top-left region
	// instead of resampling. A smaller bitmap is never upscaled when clipping.
	Clip bool
}

// Converter moves pixels between external bitmaps and image buffers.
//
// A Converter holds no mutable state and is safe for concurrent use as long
// as the buffers involved are not shared.
type Converter struct {
	codec  codec.Codec
	logger *slog.Logger
}

// NewConverter creates a converter. Without options it uses codec.Software
// and the package logger.
func NewConverter(opts ...ConverterOption) *Converter {
	o := defaultConverterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Converter{codec: o.codec, logger: o.logger}
}

var defaultConverter = sync.OnceValue(func() *Converter { return NewConverter() })

// Codec returns the codec used by the converter.
func (c *Converter) Codec() codec.Codec {
	return c.codec
}

func (c *Converter) log() *slog.Logger {
	l := c.logger
	if l == nil {
		l = Logger()
	}
	return withComponent(l, "converter", "codec", fmt.Sprintf("%T", c.codec))
}

// Import writes src into dst, converting, clipping or resampling as needed.
//
// The source is converted to the external format of dst's semantic format,
// then clipped or scaled to dst's size, then copied row by row with dst's
// row pitch. A bitmap smaller than dst under Clip fills only the top-left
// region; the remaining bytes are left unchanged.
func (c *Converter) Import(src *codec.Bitmap, dst *ImageBuffer, opts ImportOptions) error {
	if dst == nil || dst.Data() == nil {
		return fmt.Errorf("%w: destination has no data", ErrBufferMismatch)
	}
	if err := src.Validate(); err != nil {
		return fmt.Errorf("imgdata: import: %w", err)
	}

	pf, ok := catalog.ToExternal(dst.Format())
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, dst.Format())
	}

	bmp := src
	if bmp.Format != pf {
		if !c.codec.CanConvert(bmp.Format, pf) {
			return fmt.Errorf("%w: cannot convert %v to %v", ErrUnsupportedFormat, bmp.Format, pf)
		}
		c.log().Debug("converting bitmap", "from", bmp.Format, "to", pf, "dither", opts.Dither)
		converted, err := c.codec.Convert(bmp, pf, opts.Dither, nil)
		if err != nil {
			return fmt.Errorf("imgdata: convert %v to %v: %w", bmp.Format, pf, err)
		}
		bmp = converted
	}

	if bmp.Width != dst.Width() || bmp.Height != dst.Height() {
		var (
			resized *codec.Bitmap
			err     error
		)
		if opts.Clip {
			c.log().Debug("clipping bitmap", "from", bmp.Bounds(), "to", dst.Bounds())
			resized, err = c.codec.Clip(bmp, dst.Bounds())
		} else {
			c.log().Debug("scaling bitmap", "from", bmp.Bounds(), "to", dst.Bounds(), "filter", opts.Filter)
			resized, err = c.codec.Scale(bmp, dst.Width(), dst.Height(), opts.Filter)
		}
		if err != nil {
			return fmt.Errorf("imgdata: resize: %w", err)
		}
		bmp = resized
	}

	if err := c.checkPitch(bmp, dst.Format()); err != nil {
		return err
	}

	if err := c.codec.CopyPixels(bmp, dst.Pitch().RowPitch, dst.Data()); err != nil {
		return fmt.Errorf("imgdata: copy pixels: %w", err)
	}
	return nil
}

// checkPitch verifies the codec and the catalog agree on the byte size of bmp.
func (c *Converter) checkPitch(bmp *codec.Bitmap, f format.Format) error {
	bits := c.codec.BitsPerPixel(bmp.Format)
	row := (bmp.Width*bits + 7) / 8
	got := format.PitchInfo{RowPitch: row, SlicePitch: row * bmp.Height}
	want := f.Pitch(bmp.Width, bmp.Height, format.PitchNone)
	if got.RowPitch == want.RowPitch && got.SlicePitch == want.SlicePitch {
		return nil
	}
	c.log().Error("pitch mismatch",
		"format", f, "pixelFormat", bmp.Format,
		"rowPitch", got.RowPitch, "wantRowPitch", want.RowPitch,
		"slicePitch", got.SlicePitch, "wantSlicePitch", want.SlicePitch)
	return fmt.Errorf("%w: %v as %v: row %d/%d, slice %d/%d", ErrPitchMismatch,
		bmp.Format, f, got.RowPitch, want.RowPitch, got.SlicePitch, want.SlicePitch)
}

// ImportImage writes a standard library image into dst.
func (c *Converter) ImportImage(img image.Image, dst *ImageBuffer, opts ImportOptions) error {
	return c.Import(codec.FromImage(img), dst, opts)
}

// Export returns src as a new 32bppRGBA bitmap, whatever its format.
func (c *Converter) Export(src *ImageBuffer) (*codec.Bitmap, error) {
	if src == nil || src.Data() == nil {
		return nil, fmt.Errorf("%w: source has no data", ErrBufferMismatch)
	}
	pf, ok := catalog.ToExternal(src.Format())
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, src.Format())
	}

	view := src.bitmap(pf)
	if pf == codec.PixelFormat32bppRGBA {
		return view.Clone(), nil
	}
	if !c.codec.CanConvert(pf, codec.PixelFormat32bppRGBA) {
		return nil, fmt.Errorf("%w: cannot convert %v to %v", ErrUnsupportedFormat, pf, codec.PixelFormat32bppRGBA)
	}
	c.log().Debug("exporting buffer", "format", src.Format(), "from", pf)
	out, err := c.codec.Convert(view, codec.PixelFormat32bppRGBA, codec.DitherNone, nil)
	if err != nil {
		return nil, fmt.Errorf("imgdata: export %v: %w", src.Format(), err)
	}
	return out, nil
}

// ExportImage returns src as a standard library image.
func (c *Converter) ExportImage(src *ImageBuffer) (image.Image, error) {
	bmp, err := c.Export(src)
	if err != nil {
		return nil, err
	}
	return codec.ToImage(bmp)
}

// FindBestFormat returns the semantic format that can store pf, and the
// external format pf must be converted to before import.
//
// 96bpp fixed point RGB has no best-fit entry and is widened to 128bpp
// float RGBA.
func (c *Converter) FindBestFormat(pf codec.PixelFormat, flags catalog.Flags) (format.Format, codec.PixelFormat, error) {
	if pf == codec.PixelFormat96bppRGBFixedPoint {
		c.log().Warn("substituting pixel format", "from", pf, "to", codec.PixelFormat128bppRGBAFloat)
		return format.R32G32B32A32Float, codec.PixelFormat128bppRGBAFloat, nil
	}

	f, used, err := catalog.FindBestFit(pf, flags)
	if err != nil {
		return format.Unknown, codec.PixelFormatUnknown, err
	}
	if used != pf {
		c.log().Warn("substituting pixel format", "from", pf, "to", used, "format", f)
	}
	return f, used, nil
}

// CanConvert reports whether image data in src can be converted to dst.
func (c *Converter) CanConvert(src, dst format.Format) bool {
	spf, ok := catalog.ToExternal(src)
	if !ok {
		return false
	}
	dpf, ok := catalog.ToExternal(dst)
	if !ok {
		return false
	}
	return c.codec.CanConvert(spf, dpf)
}

// ConvertFormat returns a copy of data stored in f.
//
// Converting to the current format returns data itself. Formats sharing an
// external format, such as the linear and sRGB variants of RGBA8, are
// reinterpreted without touching the bytes.
func (c *Converter) ConvertFormat(data *ImageData, f format.Format, dither codec.DitherMode) (*ImageData, error) {
	if f == format.Unknown || !f.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, f)
	}
	s := data.Settings()
	if s.Format == f {
		return data, nil
	}

	spf, ok := catalog.ToExternal(s.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, s.Format)
	}
	dpf, ok := catalog.ToExternal(f)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if !c.codec.CanConvert(spf, dpf) {
		return nil, fmt.Errorf("%w: cannot convert %v to %v", ErrUnsupportedFormat, spf, dpf)
	}

	s.Format = f
	out, err := New(s)
	if err != nil {
		return nil, err
	}

	if spf == dpf {
		c.log().Debug("reinterpreting image data", "from", data.Settings().Format, "to", f)
		copy(out.data, data.data)
		return out, nil
	}

	c.log().Debug("converting image data", "from", data.Settings().Format, "to", f, "units", len(out.buffers))
	for i, src := range data.buffers {
		if err := c.Import(src.bitmap(spf), out.buffers[i], ImportOptions{Dither: dither}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Resize returns a copy of data with level 0 sized width x height.
//
// 1D images keep a height of 1 and 3D images keep their depth. The mip count
// is reduced when the new size cannot hold the full chain. With clip set,
// each level is cropped or padded from the top-left instead of resampled.
// Resizing to the current size returns data itself.
func (c *Converter) Resize(data *ImageData, width, height int, clip bool, filter codec.FilterMode) (*ImageData, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s := data.Settings()
	if s.Type == Image1D {
		height = 1
	}
	if s.Width == width && s.Height == height {
		return data, nil
	}

	pf, ok := catalog.ToExternal(s.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, s.Format)
	}

	ns := s
	ns.Width, ns.Height = width, height
	ns.MipCount = min(s.MipCount, MaxMipCount(width, height, s.Depth))
	out, err := New(ns)
	if err != nil {
		return nil, err
	}

	c.log().Debug("resizing image data",
		"from", image.Pt(s.Width, s.Height), "to", image.Pt(width, height),
		"clip", clip, "filter", filter)

	opts := ImportOptions{Filter: filter, Clip: clip}
	for _, dst := range out.buffers {
		index := dst.ArrayIndex()
		if s.Type == Image3D {
			index = dst.SliceIndex()
		}
		src := data.Buffer(dst.MipLevel(), index)
		if src == nil {
			continue
		}
		if err := c.Import(src.bitmap(pf), dst, opts); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GenerateMipmaps returns a copy of data with a mip chain of mipCount levels
// rebuilt from level 0. A mipCount below 1 or above the maximum for the
// image size produces the full chain.
//
// For 3D images each slice of level m is scaled from the level 0 slice at
// the same relative depth.
func (c *Converter) GenerateMipmaps(data *ImageData, mipCount int, filter codec.FilterMode) (*ImageData, error) {
	s := data.Settings()
	if maxMips := MaxMipCount(s.Width, s.Height, s.Depth); mipCount < 1 || mipCount > maxMips {
		mipCount = maxMips
	}

	pf, ok := catalog.ToExternal(s.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, s.Format)
	}

	ns := s
	ns.MipCount = mipCount
	out, err := New(ns)
	if err != nil {
		return nil, err
	}

	c.log().Debug("generating mipmaps", "format", s.Format, "mipCount", mipCount, "filter", filter)

	opts := ImportOptions{Filter: filter}
	for _, dst := range out.buffers {
		var src *ImageBuffer
		if s.Type == Image3D {
			step := s.Depth / dst.Depth()
			src = data.Buffer(0, dst.SliceIndex()*step)
		} else {
			src = data.Buffer(0, dst.ArrayIndex())
		}
		if src == nil {
			continue
		}
		if dst.MipLevel() == 0 {
			if err := src.CopyTo(dst, 0, 0); err != nil {
				return nil, err
			}
			continue
		}
		if err := c.Import(src.bitmap(pf), dst, opts); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FromImages builds image data from standard library images.
//
// Zero width, height, depth or array count in settings is taken from the
// first image and the number of images. An unknown format is resolved with
// FindBestFormat from the first image. When there is one image per unit,
// images are imported in buffer order. Otherwise they fill level 0 of each
// array index (each depth slice for 3D images) and the remaining levels are
// generated.
func (c *Converter) FromImages(images []image.Image, settings Settings, opts ImportOptions) (*ImageData, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images", ErrInvalidSize)
	}
	first := codec.FromImage(images[0])

	s := settings
	if s.Width <= 0 {
		s.Width = first.Width
	}
	if s.Height <= 0 {
		s.Height = first.Height
	}
	if s.Type == Image3D && s.Depth <= 0 {
		s.Depth = len(images)
	}
	if s.Type != Image3D && s.ArrayCount <= 0 && s.MipCount <= 1 {
		s.ArrayCount = len(images)
	}
	if s.Format == format.Unknown {
		f, _, err := c.FindBestFormat(first.Format, 0)
		if err != nil {
			return nil, err
		}
		s.Format = f
	}

	data, err := New(s)
	if err != nil {
		return nil, err
	}
	s = data.Settings()

	if len(images) == len(data.buffers) {
		for i, img := range images {
			if err := c.ImportImage(img, data.buffers[i], opts); err != nil {
				return nil, err
			}
		}
		return data, nil
	}

	count := s.ArrayCount
	if s.Type == Image3D {
		count = s.Depth
	}
	for i := range min(count, len(images)) {
		if err := c.ImportImage(images[i], data.Buffer(0, i), opts); err != nil {
			return nil, err
		}
	}
	if s.MipCount < 2 {
		return data, nil
	}
	return c.GenerateMipmaps(data, s.MipCount, opts.Filter)
}
