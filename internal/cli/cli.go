package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options holds the validated user intent for one invocation.
type Options struct {
	// Name is the article title for summary or full-content requests.
	Name string

	// Search is the query for search requests. Mutually exclusive with Name.
	Search string

	// Full requests the whole article body instead of a summary.
	Full bool

	// Lang is the wiki language code, "en" by default.
	Lang string
}

// Usage writes the help text.
func Usage(w io.Writer) {
	fmt.Fprint(w, `wikicli - a Wikipedia search and summary tool with colorful output and language support.

Usage:
  wikicli [options]

Options:
  -n, --name string
        Get a summary for a specific topic.
  -s, --search string
        Search for a subject on Wikipedia.
  -f, --full
        Get the full content of the article instead of just a summary.
        Must be used with -n/--name.
  -l, --lang string
        Specify the language code (e.g., 'en', 'es', 'de'). Defaults to 'en'.

Examples:
  wikicli -n 'Python' -l 'en'
  wikicli -n 'Python' --full
  wikicli -s 'science' -l 'es'
`)
}

// Parse processes command-line arguments. It returns the populated Options,
// a boolean indicating if the program should exit cleanly without fetching,
// or an ExitError when the flag constraints are violated.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("wikicli", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() { Usage(output) }

	opts := &Options{}
	flagSet.StringVar(&opts.Name, "n", "", "Get a summary for a specific topic.")
	flagSet.StringVar(&opts.Name, "name", "", "Get a summary for a specific topic.")
	flagSet.StringVar(&opts.Search, "s", "", "Search for a subject on Wikipedia.")
	flagSet.StringVar(&opts.Search, "search", "", "Search for a subject on Wikipedia.")
	flagSet.BoolVar(&opts.Full, "f", false, "Get the full content of the article.")
	flagSet.BoolVar(&opts.Full, "full", false, "Get the full content of the article.")
	flagSet.StringVar(&opts.Lang, "l", "en", "Language code, defaults to 'en'.")
	flagSet.StringVar(&opts.Lang, "lang", "en", "Language code, defaults to 'en'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if opts.Name != "" && opts.Search != "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "the -n/--name and -s/--search flags are mutually exclusive"}
	}

	if opts.Full && opts.Name == "" {
		// Reported on stdout with help text; the process still exits cleanly.
		fmt.Fprintln(output)
		color.New(color.FgRed).Fprintln(output, "Error: The '--full' flag must be used with a topic name using '-n'.")
		Usage(output)
		return nil, true, nil
	}

	if opts.Name == "" && opts.Search == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "one of the -n/--name or -s/--search flags is required"}
	}

	return opts, false, nil
}
