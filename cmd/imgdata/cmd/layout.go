package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/imgdata"
)

type unitRow struct {
	Subresource int `json:"subresource"`
	Mip         int `json:"mip"`
	Array       int `json:"array"`
	Slice       int `json:"slice"`
	Width       int `json:"width"`
	Height      int `json:"height"`
	Offset      int `json:"offset"`
	RowPitch    int `json:"rowPitch"`
	SlicePitch  int `json:"slicePitch"`
}

type layoutReport struct {
	Type        string    `json:"type"`
	Format      string    `json:"format"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Depth       int       `json:"depth"`
	ArrayCount  int       `json:"arrayCount"`
	MipCount    int       `json:"mipCount"`
	SizeInBytes int       `json:"sizeInBytes"`
	Units       []unitRow `json:"units"`
}

// NewLayoutCmd prints the byte layout computed for a set of image settings.
func NewLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "print the byte layout of an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromFlags(cmd)
			if err != nil {
				return err
			}
			l, err := imgdata.ComputeLayout(s)
			if err != nil {
				return err
			}

			ls := l.Settings
			report := layoutReport{
				Type:        ls.Type.String(),
				Format:      ls.Format.String(),
				Width:       ls.Width,
				Height:      ls.Height,
				Depth:       ls.Depth,
				ArrayCount:  ls.ArrayCount,
				MipCount:    ls.MipCount,
				SizeInBytes: l.SizeInBytes,
			}
			for _, u := range l.Units {
				report.Units = append(report.Units, unitRow{
					Subresource: ls.SubresourceIndex(u.MipLevel, u.ArrayIndex),
					Mip:         u.MipLevel,
					Array:       u.ArrayIndex,
					Slice:       u.SliceIndex,
					Width:       u.Width,
					Height:      u.Height,
					Offset:      u.Offset,
					RowPitch:    u.Pitch.RowPitch,
					SlicePitch:  u.Pitch.SlicePitch,
				})
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "%s %s %dx%dx%d arrays=%d mips=%d size=%d\n",
				report.Type, report.Format, report.Width, report.Height, report.Depth,
				report.ArrayCount, report.MipCount, report.SizeInBytes)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "SUB\tMIP\tARRAY\tSLICE\tSIZE\tOFFSET\tROW\tSLICE PITCH\t")
			for _, u := range report.Units {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%dx%d\t%d\t%d\t%d\t\n",
					u.Subresource, u.Mip, u.Array, u.Slice, u.Width, u.Height, u.Offset, u.RowPitch, u.SlicePitch)
			}
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.String("type", "2d", "image type (1d|2d|cube|3d)")
	f.IntP("width", "W", 1, "width in pixels")
	f.IntP("height", "H", 1, "height in pixels")
	f.IntP("depth", "D", 1, "depth in slices (3d only)")
	f.IntP("arrays", "a", 1, "array count")
	f.IntP("mips", "m", 1, "mip count, 0 for the full chain")
	f.StringP("format", "f", "R8G8B8A8Unorm", "buffer format, see 'imgdata formats'")
	f.Bool("json", false, "print JSON")
	return cmd
}

func settingsFromFlags(cmd *cobra.Command) (imgdata.Settings, error) {
	f := cmd.Flags()
	typeName, _ := f.GetString("type")
	formatName, _ := f.GetString("format")

	t, err := parseType(typeName)
	if err != nil {
		return imgdata.Settings{}, err
	}
	bf, err := parseFormat(formatName)
	if err != nil {
		return imgdata.Settings{}, err
	}

	s := imgdata.Settings{Type: t, Format: bf}
	s.Width, _ = f.GetInt("width")
	s.Height, _ = f.GetInt("height")
	s.Depth, _ = f.GetInt("depth")
	s.ArrayCount, _ = f.GetInt("arrays")
	s.MipCount, _ = f.GetInt("mips")
	if s.MipCount == 0 {
		s.MipCount = imgdata.MaxMipCount(s.Width, s.Height, s.Depth)
	}
	return s, nil
}
