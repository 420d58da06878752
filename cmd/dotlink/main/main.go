package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotlink/cmd/dotlink"
)

func main() {
	// Interrupts cancel pending prompts; the session then exits cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := dotlink.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		verbosity, _ := rootCmd.PersistentFlags().GetCount("verbose")
		dotlink.ReportError(os.Stderr, err, verbosity > 0)
		os.Exit(1)
	}
}
