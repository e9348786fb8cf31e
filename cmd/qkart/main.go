package main

import (
	"context"
	"fmt"
	"os"

	"github.com/niksmo/qkart/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	if err := newRootCmd().ExecuteContext(sigCtx); err != nil {
		fmt.Fprintln(os.Stderr, "qkart:", err)
		closeApp()
		os.Exit(1)
	}
}
