/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/wood/engine"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/input"
	"github.com/spaghettifunk/wood/engine/platform"
	"github.com/spaghettifunk/wood/engine/platform/desktop"
	"github.com/spaghettifunk/wood/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml configuration file")
	headless := flag.Bool("headless", false, "run without a window")
	flag.Parse()

	config := engine.DefaultConfig()
	if *configPath != "" {
		c, err := engine.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("loading configuration: %s", err)
		}
		config = c
	}
	if *headless {
		config.Headless = true
	}

	var opts []engine.Option
	if !config.Headless {
		opts = append(opts, engine.WithHost(func(in *input.State, events *core.EventBus) (platform.Host, error) {
			return desktop.New(in, events)
		}))
	}

	tb := testbed.NewTestGame(config)
	e, err := engine.New(tb.Game, opts...)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// capture sigterm and other system calls, the loop stops at the next frame
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
