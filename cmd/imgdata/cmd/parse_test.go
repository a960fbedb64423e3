package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/imgdata/catalog"
)

func TestBestFitFlags(t *testing.T) {
	tests := []struct {
		name                                   string
		forceRGB, noX2Bias, no16BPP, allowMono bool
		want                                   catalog.Flags
	}{
		{"none", false, false, false, false, 0},
		{"force rgb", true, false, false, false, catalog.ForceRGB},
		{"no x2 bias", false, true, false, false, catalog.NoX2Bias},
		{"no 16bpp", false, false, true, false, catalog.No16BPP},
		{"allow mono", false, false, false, true, catalog.AllowMono},
		{"all", true, true, true, true, catalog.ForceRGB | catalog.NoX2Bias | catalog.No16BPP | catalog.AllowMono},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestFitFlags(tt.forceRGB, tt.noX2Bias, tt.no16BPP, tt.allowMono))
		})
	}
}

func TestConvert_DitherAndBestFitFlags(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")

	pal := color.Palette{color.NRGBA{A: 255}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 2)
	}
	writePNG(t, in, src)

	_, err := run(t, "convert", "-i", in, "-o", out,
		"--dither", "errordiffusion", "--no-x2-bias", "--allow-mono", "--force-rgb", "--no-16bpp")
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, color.NRGBA{A: 255}, color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBAModel.Convert(img.At(1, 0)))
}

func TestConvert_UnknownDither(t *testing.T) {
	_, err := run(t, "convert", "-i", "a.png", "-o", "b.png", "--dither", "random")
	assert.Error(t, err)
}
