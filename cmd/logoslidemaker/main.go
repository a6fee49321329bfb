package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context) int {
	app := cli.New(os.Stderr, cli.LogInfo)
	root := app.RootCommand()

	// The flag is read after parsing, so verbosity is applied in a pre-run
	// that then hands over to the root's own.
	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "log pipeline stages and cache activity")
	inner := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			app.SetVerbose()
		}
		return inner(cmd, args)
	}

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // interrupted, as shells report SIGINT
	default:
		cli.ReportError(os.Stderr, err)
		return 1
	}
}
