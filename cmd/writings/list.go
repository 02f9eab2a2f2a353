package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"writings/internal/index"
)

type ListCmd struct {
	PathFlags
	Slug string `arg:"" optional:"" help:"Show one entry instead of the whole listing"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, l.PathFlags)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Build.IndexDB); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no listing index at %s, run a build first", cfg.Build.IndexDB)
	}

	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexDB, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open listing index: %w", err)
	}
	defer st.Close()

	if l.Slug != "" {
		return printEntry(os.Stdout, st, l.Slug)
	}
	return printListing(os.Stdout, st)
}

func printEntry(out io.Writer, st *index.Store, slug string) error {
	s, err := st.Get(slug)
	if errors.Is(err, index.ErrNotFound) {
		return fmt.Errorf("%q is not in the listing index", slug)
	}
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "title\t%s\n", s.Title)
	fmt.Fprintf(tw, "date\t%s\n", s.Date)
	fmt.Fprintf(tw, "href\t%s\n", s.Href)
	fmt.Fprintf(tw, "excerpt\t%s\n", s.Excerpt)
	return tw.Flush()
}

func printListing(out io.Writer, st *index.Store) error {
	listing, err := st.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSLUG\tTITLE")
	for _, s := range listing {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Date, s.Slug, s.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stamp, err := st.LastStamp()
	if errors.Is(err, index.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nlast build %s at %s: %d pages from %d sources in %s\n",
		stamp.ID,
		stamp.FinishedAt.Format(time.RFC3339),
		stamp.Pages,
		stamp.Sources,
		stamp.Duration().Round(time.Millisecond),
	)
	return nil
}
