package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"wikicli/internal/cli"
	"wikicli/internal/config"
	"wikicli/internal/domain"
	"wikicli/internal/infrastructure/mediawiki"
	"wikicli/internal/infrastructure/storage"
	"wikicli/internal/logging"
	"wikicli/internal/ports"
	"wikicli/internal/render"
	"wikicli/internal/usecase"
)

// Application wires configs to the dispatcher and renderer for one run.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

// New builds a runnable application instance.
func New(cfg config.Config, logger *slog.Logger, out io.Writer) *Application {
	if logger == nil {
		logger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: logger, out: out}
}

// Run performs a single request/response cycle: select the language, fetch,
// render. Fetch failures become rendered outcomes, never returned errors.
func (a *Application) Run(ctx context.Context, opts cli.Options) error {
	httpClient := &http.Client{Timeout: a.cfg.Wikipedia.Timeout()}
	client := mediawiki.New(httpClient, a.cfg.Wikipedia)

	var cache ports.PageCache
	if !a.cfg.Cache.Disabled {
		opened, err := storage.Open(a.cfg.Cache.Path, a.cfg.Cache.TTL(), a.logger.With("component", "cache"))
		if err != nil {
			a.logger.Warn("article cache unavailable", "path", a.cfg.Cache.Path, "error", err)
		} else {
			cache = opened
			defer func() {
				if closeErr := opened.Close(); closeErr != nil {
					a.logger.Warn("close cache", "error", closeErr)
				}
			}()
		}
	}

	dispatcher := usecase.NewDispatcher(usecase.DispatcherDeps{
		Client: client,
		Cache:  cache,
		Logger: a.logger.With("component", "dispatcher"),
	})
	renderer := render.New(a.out)

	// Language selection (and its fallback) completes before any fetch.
	if langOutcome := dispatcher.SelectLanguage(ctx, opts.Lang); langOutcome != nil {
		renderer.Render(*langOutcome)
	}

	var outcome domain.Outcome
	switch {
	case opts.Name != "" && opts.Full:
		outcome = dispatcher.FetchFullContent(ctx, opts.Name)
	case opts.Name != "":
		outcome = dispatcher.FetchSummary(ctx, opts.Name)
	default:
		outcome = dispatcher.FetchSearchResults(ctx, opts.Search)
	}

	renderer.Render(outcome)
	return nil
}
