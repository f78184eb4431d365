package domain

import "fmt"

// Page is a resolved Wikipedia article with its canonical title.
type Page struct {
	Title   string
	PageID  int
	Content string
	URL     string
}

// OutcomeKind enumerates the possible results of a single request.
type OutcomeKind string

const (
	OutcomeSummary             OutcomeKind = "summary"
	OutcomeFullContent         OutcomeKind = "full_content"
	OutcomeSearch              OutcomeKind = "search"
	OutcomeNotFound            OutcomeKind = "not_found"
	OutcomeAmbiguous           OutcomeKind = "ambiguous"
	OutcomeEmptySearch         OutcomeKind = "empty_search"
	OutcomeSearchFailure       OutcomeKind = "search_failure"
	OutcomeFailure             OutcomeKind = "failure"
	OutcomeUnsupportedLanguage OutcomeKind = "unsupported_language"
)

// Outcome is the discriminated result of a fetch operation. Exactly one
// invocation produces exactly one Outcome; it is consumed by the renderer
// and discarded.
type Outcome struct {
	Kind OutcomeKind

	// Subject is the topic, query, or language code as the user typed it.
	Subject string

	// Title is the canonical article title, set for full-content success.
	Title string

	// Body holds summary or article text on success.
	Body string

	// Titles holds search results or disambiguation candidates.
	Titles []string

	// Message carries the underlying failure text for error outcomes.
	Message string
}

// NotFoundError signals that no article exists for the requested title.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("page %q not found", e.Title)
}

// DisambiguationError signals that the requested title refers to several
// articles. Candidates lists the alternatives in page order.
type DisambiguationError struct {
	Title      string
	Candidates []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("title %q is ambiguous (%d candidates)", e.Title, len(e.Candidates))
}
