package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/imgdata"
	"github.com/gogpu/imgdata/codec"
	"github.com/gogpu/imgdata/format"
)

// NewConvertCmd decodes an image file, stores it in a buffer format and
// writes one unit back out, or the whole image as raw bytes.
func NewConvertCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "convert an image file through a buffer format",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			in, _ := f.GetString("in")
			out, _ := f.GetString("out")
			if in == "" || out == "" {
				return errors.New("both --in and --out are required")
			}

			formatName, _ := f.GetString("format")
			target, err := parseFormat(formatName)
			if err != nil {
				return err
			}
			filterName, _ := f.GetString("filter")
			filter, err := parseFilter(filterName)
			if err != nil {
				return err
			}
			ditherName, _ := f.GetString("dither")
			dither, err := parseDither(ditherName)
			if err != nil {
				return err
			}
			forceRGB, _ := f.GetBool("force-rgb")
			noX2Bias, _ := f.GetBool("no-x2-bias")
			no16BPP, _ := f.GetBool("no-16bpp")
			allowMono, _ := f.GetBool("allow-mono")
			flags := bestFitFlags(forceRGB, noX2Bias, no16BPP, allowMono)

			src, err := readBitmap(in)
			if err != nil {
				return err
			}

			conv := imgdata.NewConverter()
			best, _, err := conv.FindBestFormat(src.Format, flags)
			if err != nil {
				return err
			}
			data, err := imgdata.New(imgdata.Settings{Width: src.Width, Height: src.Height, Format: best})
			if err != nil {
				return err
			}
			if err := conv.Import(src, data.Buffer(0, 0), imgdata.ImportOptions{Dither: dither, Filter: filter}); err != nil {
				return err
			}
			slog.DebugContext(ctx, "imported", "path", in, "pixelFormat", src.Format, "format", best)

			if target != format.Unknown {
				if data, err = conv.ConvertFormat(data, target, dither); err != nil {
					return err
				}
			}
			w, _ := f.GetInt("width")
			h, _ := f.GetInt("height")
			if w > 0 || h > 0 {
				s := data.Settings()
				if w <= 0 {
					w = s.Width
				}
				if h <= 0 {
					h = s.Height
				}
				clip, _ := f.GetBool("clip")
				if data, err = conv.Resize(data, w, h, clip, filter); err != nil {
					return err
				}
			}
			if mips, _ := f.GetInt("mips"); mips != 1 {
				if data, err = conv.GenerateMipmaps(data, mips, filter); err != nil {
					return err
				}
			}

			if raw, _ := f.GetBool("raw"); raw {
				return writeRaw(out, data)
			}
			mip, _ := f.GetInt("mip")
			buf := data.Buffer(mip, 0)
			if buf == nil {
				return fmt.Errorf("mip %d out of range [0, %d)", mip, data.Settings().MipCount)
			}
			bmp, err := conv.Export(buf)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "converted", "in", in, "out", out,
				"format", data.Settings().Format, "size", data.SizeInBytes(), "mips", data.Settings().MipCount)
			return writeBitmap(out, bmp)
		},
	}
	f := cmd.Flags()
	f.StringP("in", "i", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
	f.StringP("out", "o", "", "output image (png, jpeg, gif, bmp, tiff) or raw file")
	f.StringP("format", "f", "", "buffer format, best fit for the input when empty")
	f.IntP("width", "W", 0, "resize to width")
	f.IntP("height", "H", 0, "resize to height")
	f.Bool("clip", false, "crop or pad instead of resampling when resizing")
	f.String("filter", "linear", "resampling filter (point|linear|cubic|fant)")
	f.String("dither", "none", "dithering when reducing depth (none|ordered4x4|ordered8x8|ordered16x16|errordiffusion)")
	f.IntP("mips", "m", 1, "mip count to generate, 0 for the full chain")
	f.Int("mip", 0, "mip level to write")
	f.Bool("raw", false, "write the raw buffer bytes of every unit")
	f.Bool("force-rgb", false, "store BGR inputs as RGBA")
	f.Bool("no-x2-bias", false, "store extended range 10-bit inputs as unbiased 10:10:10:2")
	f.Bool("no-16bpp", false, "store 16-bit packed inputs as RGBA")
	f.Bool("allow-mono", false, "keep 1-bit monochrome inputs instead of 8-bit gray")
	return cmd
}

func readBitmap(path string) (*codec.Bitmap, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	bmp, _, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}
	return bmp, nil
}

func writeBitmap(path string, bmp *codec.Bitmap) error {
	kind, err := codec.FileFormatFromPath(path)
	if err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := codec.Encode(w, bmp, kind); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func writeRaw(path string, data *imgdata.ImageData) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := data.WriteTo(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
