package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/icicle/cmd/icicle"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := icicle.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render("Error:")+" "+errors.UserMessage(err))
		os.Exit(icicle.ExitCode(err))
	}
}
