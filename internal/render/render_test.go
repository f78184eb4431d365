package render

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"wikicli/internal/domain"
)

func renderPlain(t *testing.T, o domain.Outcome) string {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	New(&buf).Render(o)
	return buf.String()
}

func TestRenderSummary(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeSummary,
		Subject: "python",
		Body:    "Python is a programming language.",
	})

	assert.Contains(t, out, "✨ Wikipedia Summary for: Python ✨")
	assert.Contains(t, out, "Python is a programming language.")
	assert.Contains(t, out, "==================================================")
}

func TestRenderFullContentUsesResolvedTitle(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeFullContent,
		Subject: "python",
		Title:   "Python (programming language)",
		Body:    "Full body.",
	})

	assert.Contains(t, out, "📚 Full Content for: Python (programming language) 📚")
	assert.Contains(t, out, "Full body.")
}

func TestRenderSearchResults(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeSearch,
		Subject: "science",
		Titles:  []string{"Biology", "Chemistry"},
	})

	assert.Contains(t, out, "🔍 Search results for: Science 🔍")
	assert.Contains(t, out, "--- Biology\n")
	assert.Contains(t, out, "--- Chemistry\n")
}

func TestRenderNotFoundKeepsOriginalName(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeNotFound,
		Subject: "some_page",
	})

	assert.Contains(t, out, "Error: Page 'some_page' not found on Wikipedia.")
}

func TestRenderAmbiguous(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeAmbiguous,
		Subject: "Mercury",
		Titles:  []string{"Mercury (planet)", "Mercury (element)"},
	})

	assert.Contains(t, out, "Disambiguation: 'Mercury' may refer to multiple topics. Please be more specific.")
	assert.Contains(t, out, "Did you mean one of these? Mercury (planet), Mercury (element)")
}

func TestRenderEmptySearch(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeEmptySearch,
		Subject: "askjdhakjh",
	})

	assert.Contains(t, out, "No results found for 'askjdhakjh'.")
}

func TestRenderSearchFailure(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeSearchFailure,
		Subject: "science",
		Message: "upstream exploded",
	})

	assert.Contains(t, out, "An error occurred during search: upstream exploded")
}

func TestRenderUnsupportedLanguage(t *testing.T) {
	out := renderPlain(t, domain.Outcome{
		Kind:    domain.OutcomeUnsupportedLanguage,
		Subject: "xyz",
	})

	assert.Contains(t, out, "Error: The language code 'xyz' is not supported. Using English ('en') instead.")
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Python", Capitalize("python"))
	assert.Equal(t, "Python", Capitalize("PYTHON"))
	assert.Equal(t, "Science", Capitalize("science"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Über", Capitalize("über"))
}
