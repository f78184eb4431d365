package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"wikicli/internal/domain"
)

const rule = "=================================================="

// Renderer maps each outcome variant to its fixed textual template and
// writes it to the given writer. Formatting only; no outcome escapes it.
type Renderer struct {
	out io.Writer

	cyan    *color.Color
	magenta *color.Color
	blue    *color.Color
	red     *color.Color
	yellow  *color.Color
	green   *color.Color
	white   *color.Color
}

// New builds a renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		cyan:    color.New(color.FgCyan),
		magenta: color.New(color.FgMagenta),
		blue:    color.New(color.FgBlue),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		green:   color.New(color.FgGreen),
		white:   color.New(color.FgWhite),
	}
}

// Render writes the template for the outcome. Console output is the only
// side effect.
func (r *Renderer) Render(o domain.Outcome) {
	switch o.Kind {
	case domain.OutcomeSummary:
		r.header(r.cyan, fmt.Sprintf("✨ Wikipedia Summary for: %s ✨", r.yellow.Sprint(Capitalize(o.Subject))))
		r.white.Fprintln(r.out, o.Body)

	case domain.OutcomeFullContent:
		r.header(r.magenta, fmt.Sprintf("📚 Full Content for: %s 📚", r.white.Sprint(o.Title)))
		r.white.Fprintln(r.out, o.Body)

	case domain.OutcomeSearch:
		r.header(r.blue, fmt.Sprintf("🔍 Search results for: %s 🔍", r.white.Sprint(Capitalize(o.Subject))))
		for _, title := range o.Titles {
			r.green.Fprintf(r.out, "--- %s\n", title)
		}

	case domain.OutcomeNotFound:
		fmt.Fprintln(r.out)
		r.red.Fprintf(r.out, "Error: Page '%s' not found on Wikipedia.\n", o.Subject)

	case domain.OutcomeAmbiguous:
		fmt.Fprintln(r.out)
		r.yellow.Fprintf(r.out, "Disambiguation: '%s' may refer to multiple topics. Please be more specific.\n", o.Subject)
		r.yellow.Fprintf(r.out, "Did you mean one of these? %s\n", strings.Join(o.Titles, ", "))

	case domain.OutcomeEmptySearch:
		fmt.Fprintln(r.out)
		r.yellow.Fprintf(r.out, "No results found for '%s'.\n", o.Subject)

	case domain.OutcomeSearchFailure:
		fmt.Fprintln(r.out)
		r.red.Fprintf(r.out, "An error occurred during search: %s\n", o.Message)

	case domain.OutcomeFailure:
		fmt.Fprintln(r.out)
		r.red.Fprintf(r.out, "An error occurred: %s\n", o.Message)

	case domain.OutcomeUnsupportedLanguage:
		fmt.Fprintln(r.out)
		r.red.Fprintf(r.out, "Error: The language code '%s' is not supported. Using English ('en') instead.\n", o.Subject)
	}
}

func (r *Renderer) header(frame *color.Color, title string) {
	fmt.Fprintln(r.out)
	frame.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "  %s\n", frame.Sprint(title))
	frame.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}
