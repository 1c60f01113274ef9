package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"launchpad-api/internal/cli"
	"launchpad-api/internal/client"
	"launchpad-api/internal/config"
	"launchpad-api/internal/session"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	var store *session.FileStore
	if cfg.SessionDir != "" {
		store = session.NewFileStore(cfg.SessionDir)
	} else if store, err = session.DefaultFileStore(); err != nil {
		fmt.Fprintf(os.Stderr, "session store: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := cli.Dispatch(ctx, client.New(cfg.BaseURL, cfg.Timeout, store), os.Args[1:])
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}
