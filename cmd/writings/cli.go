package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"writings/internal/domain/config"
)

type Global struct {
	Logger *slog.Logger
}

type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"site.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"withargs" help:"Build pages and update the index page (default)"`
	List  ListCmd  `cmd:"" help:"Print the listing recorded by the last build"`
	Serve ServeCmd `cmd:"" help:"Build, watch and preview the site with live reload"`
	Init  InitCmd  `cmd:"" help:"Create a starter site"`
}

// AfterApply installs the process logger once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// PathFlags override the configured locations. Values are used as given,
// relative to the working directory.
type PathFlags struct {
	Content string `help:"Content directory (overrides build.content_dir)" type:"path"`
	Output  string `help:"Output directory (overrides build.output_dir)" type:"path"`
	Index   string `help:"Index page (overrides build.index_page)" type:"path"`
}

func (p PathFlags) apply(cfg *config.Config) {
	if p.Content != "" {
		cfg.Build.ContentDir = p.Content
	}
	if p.Output != "" {
		cfg.Build.OutputDir = p.Output
	}
	if p.Index != "" {
		cfg.Build.IndexPage = p.Index
	}
}

func loadConfig(root *CLI, flags PathFlags) (config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", root.Config, err)
	}
	flags.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
