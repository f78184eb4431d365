package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"wikicli/internal/domain"
	"wikicli/internal/ports"
)

const (
	summarySentences = 5
	searchLimit      = 5
	candidateLimit   = 5

	fallbackLanguage = "en"
)

// DispatcherDeps wires the driven adapters into the dispatcher.
type DispatcherDeps struct {
	Client ports.KnowledgeClient
	Cache  ports.PageCache
	Logger *slog.Logger
}

// Dispatcher forwards user intents to the knowledge client and converts
// every result, including typed client errors, into a domain.Outcome.
// No client error crosses this boundary.
type Dispatcher struct {
	client ports.KnowledgeClient
	cache  ports.PageCache
	logger *slog.Logger
	lang   string
}

// NewDispatcher constructs the dispatch component.
func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		client: deps.Client,
		cache:  deps.Cache,
		logger: logger,
		lang:   fallbackLanguage,
	}
}

// SelectLanguage switches the client to the requested language. On any
// failure it reports an unsupported-language outcome and unconditionally
// falls back to selecting English on the client, in that order. A nil
// result means the language was accepted.
func (d *Dispatcher) SelectLanguage(ctx context.Context, code string) *domain.Outcome {
	err := d.client.SetLanguage(ctx, code)
	if err == nil {
		// Cache keys use the normalized code the client selected.
		d.lang = strings.ToLower(strings.TrimSpace(code))
		return nil
	}

	d.logger.Warn("language selection failed", "code", code, "error", err)

	// The fallback call is mandatory even though the first call failed.
	if fbErr := d.client.SetLanguage(ctx, fallbackLanguage); fbErr != nil {
		d.logger.Error("fallback language selection failed", "error", fbErr)
	}
	d.lang = fallbackLanguage

	return &domain.Outcome{Kind: domain.OutcomeUnsupportedLanguage, Subject: code}
}

// FetchSummary retrieves up to five sentences of summary text for the topic.
func (d *Dispatcher) FetchSummary(ctx context.Context, topic string) domain.Outcome {
	if cached, ok := d.cached(ctx, ports.CacheKindSummary, topic); ok {
		return domain.Outcome{Kind: domain.OutcomeSummary, Subject: topic, Body: cached.Body}
	}

	text, err := d.client.Summary(ctx, topic, summarySentences)
	if err != nil {
		return d.fetchFailure(topic, err)
	}

	d.store(ctx, ports.CacheKindSummary, topic, ports.CachedArticle{Title: topic, Body: text})
	return domain.Outcome{Kind: domain.OutcomeSummary, Subject: topic, Body: text}
}

// FetchFullContent retrieves the whole article body. The outcome carries the
// canonical title the wiki resolved, which may differ from the topic.
func (d *Dispatcher) FetchFullContent(ctx context.Context, topic string) domain.Outcome {
	if cached, ok := d.cached(ctx, ports.CacheKindContent, topic); ok {
		return domain.Outcome{
			Kind:    domain.OutcomeFullContent,
			Subject: topic,
			Title:   cached.Title,
			Body:    cached.Body,
		}
	}

	page, err := d.client.Page(ctx, topic)
	if err != nil {
		return d.fetchFailure(topic, err)
	}

	d.store(ctx, ports.CacheKindContent, topic, ports.CachedArticle{Title: page.Title, Body: page.Content})
	return domain.Outcome{
		Kind:    domain.OutcomeFullContent,
		Subject: topic,
		Title:   page.Title,
		Body:    page.Content,
	}
}

// FetchSearchResults retrieves up to five matching titles. An empty result
// list is a valid outcome, not a failure.
func (d *Dispatcher) FetchSearchResults(ctx context.Context, query string) domain.Outcome {
	titles, err := d.client.Search(ctx, query, searchLimit)
	if err != nil {
		return domain.Outcome{
			Kind:    domain.OutcomeSearchFailure,
			Subject: query,
			Message: err.Error(),
		}
	}

	if len(titles) == 0 {
		return domain.Outcome{Kind: domain.OutcomeEmptySearch, Subject: query}
	}

	return domain.Outcome{Kind: domain.OutcomeSearch, Subject: query, Titles: titles}
}

func (d *Dispatcher) fetchFailure(topic string, err error) domain.Outcome {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return domain.Outcome{Kind: domain.OutcomeNotFound, Subject: topic}
	}

	var ambiguous *domain.DisambiguationError
	if errors.As(err, &ambiguous) {
		candidates := ambiguous.Candidates
		if len(candidates) > candidateLimit {
			candidates = candidates[:candidateLimit]
		}
		return domain.Outcome{Kind: domain.OutcomeAmbiguous, Subject: topic, Titles: candidates}
	}

	return domain.Outcome{Kind: domain.OutcomeFailure, Subject: topic, Message: err.Error()}
}

func (d *Dispatcher) cached(ctx context.Context, kind, topic string) (ports.CachedArticle, bool) {
	if d.cache == nil {
		return ports.CachedArticle{}, false
	}

	article, ok, err := d.cache.Get(ctx, d.lang, kind, topic)
	if err != nil {
		d.logger.Warn("cache read failed", "kind", kind, "topic", topic, "error", err)
		return ports.CachedArticle{}, false
	}
	return article, ok
}

func (d *Dispatcher) store(ctx context.Context, kind, topic string, article ports.CachedArticle) {
	if d.cache == nil {
		return
	}

	if err := d.cache.Put(ctx, d.lang, kind, topic, article); err != nil {
		d.logger.Warn("cache write failed", "kind", kind, "topic", topic, "error", err)
	}
}
