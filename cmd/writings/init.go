package main

import (
	"fmt"

	"writings/internal/assets"
)

type InitCmd struct {
	Dir   string `arg:"" optional:"" default:"." help:"Directory to create the site in" type:"path"`
	Force bool   `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	written, err := assets.Scaffold(i.Dir, i.Force)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Println("created", p)
	}
	g.Logger.Info("site initialized", "dir", i.Dir, "files", len(written))
	return nil
}
