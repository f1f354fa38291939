// Command gitwise is the command line client for the GitWise developer
// network.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitwise/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.DefaultAppFactory)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
