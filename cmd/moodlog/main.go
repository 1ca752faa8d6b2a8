package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/moodlog/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional)")
	route := flag.String("route", "", "initial page, e.g. /login or /lk/notes (optional)")
	pollSeconds := flag.Int("poll", 0, "dashboard refresh interval in seconds (optional, defaults to 10s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Route: *route}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "moodlog: %v\n", err)
		return 1
	}
	return 0
}
