package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mmcdole/malplan/internal/adapter"
	"github.com/mmcdole/malplan/internal/adapter/source"
	"github.com/mmcdole/malplan/internal/adapter/source/mal"
	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/planner"
	"github.com/mmcdole/malplan/internal/search"
	"github.com/mmcdole/malplan/internal/store"
	"github.com/mmcdole/malplan/internal/triage"
	"github.com/mmcdole/malplan/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	cmd, _ := newRootCmd(run)
	if err := execute(context.Background(), cmd, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *cliOptions) error {
	// Load configuration
	loader := adapter.NewLoader("")
	cfg, warnings := loader.Load(opts.ignoreConfig)

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting malplan", "version", Version, "list", opts.list.kind, "sort", opts.sort.dir)
	for _, w := range warnings {
		logger.Warn("config not loaded", "error", w, "path", loader.File())
	}

	user := cfg.User
	if opts.user != "" {
		user = opts.user
	}
	if user == "" {
		return domain.ErrMissingUser
	}

	if opts.save {
		if err := loader.SaveUser(user); err != nil {
			return &domain.FileError{Op: domain.FileOpWrite, Path: loader.File(), Err: err}
		}
		logger.Info("saved user", "user", user, "path", loader.File())
	}

	// Create list provider
	provider, err := source.New(opts.list.kind, mal.Options{
		BaseURL:       cfg.HTTP.BaseURL,
		Timeout:       cfg.HTTP.Timeout,
		RatePerSecond: cfg.HTTP.RatePerSecond,
		Sort:          opts.sort.dir,
	}, logger)
	if err != nil {
		return err
	}

	// Open local storage
	kv, err := store.Open(store.Backend(cfg.Store.Backend), cfg.Store.Dir)
	if err != nil {
		return err
	}
	defer kv.Close()

	// Create triage session
	session := triage.NewSession(tui.NewKeyReader(os.Stdin), os.Stdout, logger)
	session.SetOpener(adapter.NewBrowser(cfg.Browser, logger))
	if filter := search.NewTitleFilter(opts.filter); filter != nil {
		session.SetHighlighter(filter.Highlight)
	}

	svc := planner.NewService(
		provider,
		store.NewCacheStore(kv, logger),
		store.NewLedger(kv, logger),
		session,
		logger,
	)

	popts := planner.Options{
		User:    user,
		Kind:    opts.list.kind,
		Sort:    opts.sort.dir,
		NoCache: opts.noCache,
		Filter:  opts.filter,
	}

	plan, err := interruptible(ctx, func(ctx context.Context) (planner.Plan, error) {
		return tui.Track(ctx, os.Stderr, fmt.Sprintf("Fetching %s's plan-to-read list", user),
			func(onProgress domain.ProgressFunc) (planner.Plan, error) {
				return svc.Load(ctx, popts, onProgress)
			})
	})
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderSource(plan, time.Now()))
	fmt.Println()

	summary, err := svc.Finish(popts, plan)
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderSummary(summary))

	logger.Info("shutting down", "summary", summary.String())
	return nil
}

// interruptible runs fn with a context cancelled by Ctrl-C. The handler is
// removed when fn returns, so an interrupt at a triage prompt ends the
// process as usual.
func interruptible[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return fn(ctx)
}
