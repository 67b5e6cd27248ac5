package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/sfdelta/cmd/sfdelta"
	"github.com/arthur-debert/sfdelta/pkg/style"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file may carry SFDELTA_ settings and baseline markers
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := sfdelta.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		stop()
		os.Exit(1)
	}
}
