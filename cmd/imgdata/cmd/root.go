package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/imgdata"
	"github.com/gogpu/imgdata/internal/logging"
)

// NewRoot returns the imgdata command tree.
func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "imgdata",
		Short:        "image layout and format conversion tool",
		Long:         "imgdata computes GPU image layouts and converts images between buffer formats.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			logFile, _ := cmd.Flags().GetString("log-file")

			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}

			var w io.Writer = cmd.ErrOrStderr()
			if logFile != "" {
				f := logging.File(logFile, logging.DefaultFileOptions)
				cobra.OnFinalize(func() { _ = f.Close() })
				w = f
			}

			logger := logging.Logger(w, logJSON, level)
			slog.SetDefault(logger)
			imgdata.SetLogger(logger)

			if levelErr != nil {
				slog.WarnContext(ctx, "invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(gitsha),
		NewFormatsCmd(),
		NewLayoutCmd(),
		NewConvertCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.Bool("log-json", false, "log as JSON")
	pf.String("log-file", "", "log to a rotating file instead of stderr")
	return cmd
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent)+cmd.Use+":", cmd.Short)
	for _, sub := range cmd.Commands() {
		printCommandTree(w, sub, indent+1)
	}
}

// NewVersionCmd prints the library version and the build's git sha.
func NewVersionCmd(gitsha string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "library version and git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imgdata %s (%s)\n", imgdata.Version, gitsha)
		},
	}
}
