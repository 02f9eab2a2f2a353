package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"writings/internal/build"
	"writings/internal/logfields"
	"writings/internal/watch"
)

type BuildCmd struct {
	PathFlags
	Watch bool `short:"w" help:"Rebuild whenever a Markdown file in the content directory changes"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, b.PathFlags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder, err := build.New(cfg, g.Logger, nil)
	if err != nil {
		return err
	}
	if _, err := builder.Run(ctx); err != nil {
		return err
	}
	if !b.Watch {
		return nil
	}

	w := &watch.Watcher{
		Dir:    cfg.Build.ContentDir,
		Delay:  cfg.Build.Debounce,
		Runner: builder,
		Logger: g.Logger,
	}
	err = w.Watch(ctx)
	g.Logger.Info("stopped watching", logfields.Path(cfg.Build.ContentDir))
	return err
}
