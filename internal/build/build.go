package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"writings/internal/app"
	"writings/internal/assets"
	domainbuild "writings/internal/domain/build"
	"writings/internal/domain/config"
	"writings/internal/domain/content"
	"writings/internal/domain/site"
	"writings/internal/index"
	"writings/internal/ingest"
	"writings/internal/logfields"
	"writings/internal/metrics"
	"writings/internal/render"
	"writings/internal/textutil"
)

var (
	ErrContentDir = errors.New("content directory unavailable")
	ErrIndexPage  = errors.New("index page unavailable")
)

type Builder struct {
	Cfg     config.Config
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	Now     func() time.Time

	md     *render.MarkdownRenderer
	tpl    render.Renderer
	routes *app.RouteBuilder
	chrome render.Chrome
}

// Skip records a content file left out of the build and why.
type Skip struct {
	Path   string
	Reason error
}

type Result struct {
	Stamp   domainbuild.Stamp
	Pages   []site.Route
	Listing content.Listing
	Skipped []Skip
	// IndexUpdated is false when the index page was already current or its
	// markers were missing.
	IndexUpdated bool
}

// New prepares a Builder. The markdown and template renderers are built once
// here and reused by every Run.
func New(cfg config.Config, logger *slog.Logger, rec *metrics.Recorder) (*Builder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	routes, err := app.NewRouteBuilder(cfg)
	if err != nil {
		return nil, err
	}
	tpl, err := render.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &Builder{
		Cfg:     cfg,
		Logger:  logger,
		Metrics: rec,
		Now:     time.Now,
		md: render.NewMarkdownRenderer(render.MarkdownOptions{
			HighlightStyle: cfg.Markdown.HighlightStyle,
			LineNumbers:    cfg.Markdown.LineNumbers,
			HardWraps:      cfg.Markdown.HardWraps,
		}),
		tpl:    tpl,
		routes: routes,
		chrome: render.NewChrome(cfg.Site, cfg.Build, routes.RootRel()),
	}, nil
}

// Run performs one full build. Individual content files that fail to parse or
// validate are skipped; a missing content directory or index page fails the
// whole run with ErrContentDir or ErrIndexPage.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	stamp := domainbuild.NewStamp(b.Now())
	log := b.Logger.With(logfields.BuildID(stamp.ID))

	res, err := b.run(ctx, log, stamp)

	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailed
	case len(res.Pages) == 0 && len(res.Skipped) == 0:
		outcome = metrics.OutcomeEmpty
	}
	b.Metrics.ObserveBuild(b.Now().Sub(stamp.StartedAt), outcome)
	if res != nil {
		b.Metrics.AddPages(len(res.Pages), len(res.Skipped))
	}
	return res, err
}

func (b *Builder) run(ctx context.Context, log *slog.Logger, stamp domainbuild.Stamp) (*Result, error) {
	outDir := b.Cfg.Build.OutputDir
	if err := resetDir(outDir); err != nil {
		return nil, fmt.Errorf("reset output dir %s: %w", outDir, err)
	}

	files, err := ingest.DiscoverSource(b.Cfg.Build.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrContentDir, b.Cfg.Build.ContentDir, err)
	}
	if len(files) == 0 {
		log.Info("no markdown files found", logfields.Path(b.Cfg.Build.ContentDir))
		return &Result{Stamp: stamp}, nil
	}

	res := &Result{Stamp: stamp}
	fp := domainbuild.NewFingerprint()
	seen := make(map[string]string, len(files))
	var items []content.Item

	for _, sf := range files {
		item, route, err := b.buildPage(ctx, sf, fp)
		if err != nil {
			if !errors.Is(err, errSkip) {
				return nil, err
			}
			res.Skipped = append(res.Skipped, Skip{Path: sf.Path, Reason: errors.Unwrap(err)})
			log.Warn("skipping file", logfields.File(sf.Name), logfields.Error(errors.Unwrap(err)))
			continue
		}
		if prev, dup := seen[item.Slug]; dup {
			dupErr := fmt.Errorf("slug %q already used by %s", item.Slug, prev)
			res.Skipped = append(res.Skipped, Skip{Path: sf.Path, Reason: dupErr})
			log.Warn("skipping file", logfields.File(sf.Name), logfields.Error(dupErr))
			continue
		}
		seen[item.Slug] = sf.Name

		if err := writeFile(route.OutPath, item.rendered); err != nil {
			return nil, fmt.Errorf("write page %s: %w", route.OutPath, err)
		}
		log.Info("page written",
			logfields.File(sf.Name),
			logfields.Slug(item.Slug),
			logfields.Path(route.OutPath),
		)
		log.Debug("page route", logfields.Route(route), logfields.Headings(len(item.Headings)))

		items = append(items, item.Item)
		res.Listing = append(res.Listing, item.Summary(route.Href))
	}
	res.Pages = b.routes.BuildPageRoutes(items)

	res.Listing.SortByDateDesc()

	stamp.ContentHash = fp.Sum()
	stamp.Sources = fp.Count()
	stamp.Pages = len(items)
	stamp.FinishedAt = b.Now()
	res.Stamp = stamp

	listing, err := b.persistListing(log, res.Listing, stamp)
	if err != nil {
		return nil, err
	}
	res.Listing = listing

	updated, err := b.updateIndex(ctx, log, listing)
	if err != nil {
		return nil, err
	}
	res.IndexUpdated = updated

	if err := b.ensureScript(log); err != nil {
		return nil, err
	}

	log.Info("build finished",
		logfields.Pages(len(res.Pages)),
		logfields.Skipped(len(res.Skipped)),
		logfields.DurationMS(float64(stamp.Duration().Microseconds())/1000),
	)
	return res, nil
}

var errSkip = errors.New("skip")

type renderedItem struct {
	content.Item
	rendered []byte
}

// buildPage renders one content file. Problems with the file itself come back
// wrapped as errSkip around the cause.
func (b *Builder) buildPage(ctx context.Context, sf ingest.SourceFile, fp *domainbuild.Fingerprint) (renderedItem, site.Route, error) {
	skip := func(err error) (renderedItem, site.Route, error) {
		return renderedItem{}, site.Route{}, skipError{err}
	}

	doc, err := ingest.Load(sf)
	if doc.Raw != nil {
		fp.Add(sf.Name, doc.Raw)
	}
	if err != nil {
		return skip(err)
	}

	item, err := doc.Item()
	if err != nil {
		return skip(err)
	}

	md, err := b.md.Render(doc.Body)
	if err != nil {
		return skip(fmt.Errorf("render markdown: %w", err))
	}
	item.ReadTime = textutil.ReadingTime(string(doc.Body))
	item.Headings = md.Headings

	route := b.routes.PageRoute(item.Slug)
	page, err := b.tpl.RenderPage(ctx, render.PageView{
		Chrome:   b.chrome,
		Title:    item.Title,
		Date:     item.Date,
		ReadTime: item.ReadTime,
		Body:     string(md.HTML),
		Headings: item.Headings,
	})
	if err != nil {
		return skip(fmt.Errorf("render page: %w", err))
	}
	return renderedItem{Item: item, rendered: page}, route, nil
}

type skipError struct{ err error }

func (e skipError) Error() string { return e.err.Error() }
func (e skipError) Unwrap() error { return e.err }
func (e skipError) Is(target error) bool {
	return target == errSkip
}

// persistListing rebuilds the listing index and reads the listing back in
// index order.
func (b *Builder) persistListing(log *slog.Logger, listing content.Listing, stamp domainbuild.Stamp) (content.Listing, error) {
	st, err := index.Open(index.OpenOptions{Path: b.Cfg.Build.IndexDB})
	if err != nil {
		return nil, fmt.Errorf("open listing index: %w", err)
	}
	defer st.Close()

	if err := st.Rebuild(listing, stamp); err != nil {
		return nil, fmt.Errorf("rebuild listing index: %w", err)
	}
	out, err := st.List()
	if err != nil {
		return nil, fmt.Errorf("read listing index: %w", err)
	}
	log.Debug("listing index rebuilt", logfields.Path(st.Path()), logfields.Pages(len(out)))
	return out, nil
}

func (b *Builder) updateIndex(ctx context.Context, log *slog.Logger, listing content.Listing) (bool, error) {
	route := b.routes.IndexRoute()

	info, err := os.Stat(route.OutPath)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIndexPage, err)
	}
	doc, err := os.ReadFile(route.OutPath)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIndexPage, err)
	}

	fragment, err := b.tpl.RenderListing(ctx, render.ListingView{Items: listing})
	if err != nil {
		return false, fmt.Errorf("render listing: %w", err)
	}

	out, err := SpliceBetween(doc, fragment, Markers{
		Start: b.Cfg.Build.StartMarker,
		End:   b.Cfg.Build.EndMarker,
	})
	if err != nil {
		log.Warn("index page not updated",
			logfields.Path(route.OutPath),
			logfields.Error(err),
		)
		return false, nil
	}
	if bytes.Equal(out, doc) {
		return false, nil
	}
	if err := os.WriteFile(route.OutPath, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("%w: %w", ErrIndexPage, err)
	}
	log.Info("index page updated", logfields.Path(route.OutPath))
	return true, nil
}

// ensureScript writes the client runtime next to the index page unless one is
// already there; an existing script is never replaced.
func (b *Builder) ensureScript(log *slog.Logger) error {
	route := b.routes.ScriptRoute()
	if _, err := os.Stat(route.OutPath); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", route.OutPath, err)
	}
	if err := writeFile(route.OutPath, assets.Script()); err != nil {
		return fmt.Errorf("write %s: %w", route.OutPath, err)
	}
	log.Info("client script written", logfields.Path(route.OutPath))
	return nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
