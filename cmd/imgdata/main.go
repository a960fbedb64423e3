// Command imgdata inspects image layouts and converts images between
// buffer formats.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/imgdata/cmd/imgdata/cmd"
	"github.com/gogpu/imgdata/internal/logging"
)

var GitSHA = "NA"

func main() {
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()

	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx, slog.Group("imgdata", slog.String("git", GitSHA)))

	if err := cmd.NewRoot(ctx, GitSHA).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
