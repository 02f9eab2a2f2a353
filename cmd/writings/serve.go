package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"writings/internal/build"
	"writings/internal/metrics"
	"writings/internal/serve"
	"writings/internal/watch"
)

type ServeCmd struct {
	PathFlags
	Addr string `short:"a" help:"Listen address (overrides serve.addr)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, s.PathFlags)
	if err != nil {
		return err
	}
	addr := cfg.Serve.Addr
	if s.Addr != "" {
		addr = s.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.NewRecorder(prom.NewRegistry())
	builder, err := build.New(cfg, g.Logger, rec)
	if err != nil {
		return err
	}
	if _, err := builder.Run(ctx); err != nil {
		return err
	}

	srv := serve.New(cfg.SiteRoot(), rec, g.Logger)
	w := &watch.Watcher{
		Dir:    cfg.Build.ContentDir,
		Delay:  cfg.Build.Debounce,
		Runner: builder,
		Logger: g.Logger,
		OnBuild: func(_ *build.Result, err error) {
			if err == nil {
				srv.Broadcast(serve.ReloadMessage)
			}
		},
	}

	group, groupctx := errgroup.WithContext(ctx)
	group.Go(func() error { return w.Watch(groupctx) })
	group.Go(func() error { return srv.ListenAndServe(groupctx, addr) })
	return group.Wait()
}
