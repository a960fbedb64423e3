package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/gogpu/gputypes"
	"github.com/spf13/cobra"

	"github.com/gogpu/imgdata/catalog"
	"github.com/gogpu/imgdata/format"
)

type formatRow struct {
	Name        string `json:"name"`
	BitDepth    int    `json:"bitDepth"`
	Bytes       int    `json:"bytes"`
	Compressed  bool   `json:"compressed,omitempty"`
	SRGB        bool   `json:"srgb,omitempty"`
	PixelFormat string `json:"pixelFormat,omitempty"`
	Texture     string `json:"texture,omitempty"`
}

// NewFormatsCmd lists the semantic formats with their external and GPU
// equivalents.
func NewFormatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "list buffer formats and their mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []formatRow
			for _, f := range format.All() {
				row := formatRow{
					Name:       f.String(),
					BitDepth:   f.BitDepth(),
					Bytes:      f.SizeInBytes(),
					Compressed: f.IsCompressed(),
					SRGB:       f.IsSRGB(),
				}
				if pf, ok := catalog.ToExternal(f); ok {
					row.PixelFormat = pf.String()
				}
				if tf := f.TextureFormat(); tf != gputypes.TextureFormatUndefined {
					row.Texture = tf.String()
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMAT\tBITS\tBYTES\tPIXEL FORMAT\tTEXTURE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", r.Name, r.BitDepth, r.Bytes, dash(r.PixelFormat), dash(r.Texture))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
