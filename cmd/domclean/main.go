// domclean: Clean untrusted HTML into validated, normalized markup.
//
// Reads HTML from a file or stdin, or fetches it from a URL, runs it
// through the sanitizing parser and writes the result:
//
//	domclean [options] [file]
//	domclean [options] -url https://example.com/article
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	readability "codeberg.org/readeck/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"github.com/editorkit/domparser"
)

// logOut is the writer for informational output.
// In silent mode it is set to io.Discard so only errors reach the user.
var logOut io.Writer = os.Stderr

// cliConfig holds parsed command-line options.
type cliConfig struct {
	output     string
	fetchURL   string
	readable   bool
	ugc        bool
	markdown   bool
	rootBlock  string
	noValidate bool
	timeout    time.Duration
	userAgent  string
	args       []string
}

// readInput returns the raw HTML to process: fetched from -url, read
// from the file argument, or read from stdin.
func readInput(cfg cliConfig) ([]byte, string, error) {
	if cfg.fetchURL != "" {
		body, parsed, err := fetchHTML(cfg.fetchURL, cfg.timeout, cfg.userAgent)
		if err != nil {
			return nil, "", err
		}
		return body, parsed.String(), nil
	}
	if len(cfg.args) == 1 {
		data, err := os.ReadFile(cfg.args[0])
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", cfg.args[0], err)
		}
		return data, "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("reading stdin: %w", err)
	}
	return data, "", nil
}

// run executes the main application logic, returning any error.
func run(cfg cliConfig) error {
	if len(cfg.args) > 1 {
		return fmt.Errorf("at most one input file argument")
	}
	if cfg.fetchURL != "" && len(cfg.args) > 0 {
		return fmt.Errorf("-url and a file argument are mutually exclusive")
	}

	raw, pageURL, err := readInput(cfg)
	if err != nil {
		return err
	}

	htmlStr := string(raw)

	if cfg.readable {
		htmlStr, err = extractArticle(raw, pageURL)
		if err != nil {
			return err
		}
	}

	if cfg.ugc {
		// Pre-clean with a conservative user-generated-content policy
		// before the schema pass.
		htmlStr = bluemonday.UGCPolicy().Sanitize(htmlStr)
	}

	p := domparser.NewParser(domparser.Options{
		Validate:        !cfg.noValidate,
		ForcedRootBlock: cfg.rootBlock,
	}, nil)
	out := domparser.Serialize(p.Parse(htmlStr, nil))

	if cfg.markdown {
		out, err = toMarkdown(out)
		if err != nil {
			return err
		}
		out += "\n"
	}

	if cfg.output != "" {
		if err := os.WriteFile(cfg.output, []byte(out), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		os.Stdout.WriteString(out)
	}
	return nil
}

// extractArticle runs readability extraction and returns the main
// article content as HTML.
func extractArticle(raw []byte, pageURL string) (string, error) {
	if pageURL == "" {
		pageURL = "http://localhost/"
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	article, err := readability.FromReader(bytes.NewReader(raw), u)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	if article.Content == "" {
		return "", fmt.Errorf("readability extracted no content")
	}
	fmt.Fprintf(logOut, "Title: %s\n", article.Title)
	return article.Content, nil
}

func main() {
	output := flag.String("o", "", "Output file (default: stdout)")
	fetchURL := flag.String("url", "", "Fetch input HTML from this URL")
	readable := flag.Bool("readability", false, "Extract the main article before cleaning")
	ugc := flag.Bool("ugc", false, "Apply a strict user-generated-content policy before cleaning")
	markdown := flag.Bool("markdown", false, "Emit Markdown instead of HTML")
	rootBlock := flag.String("root-block", "", "Wrap stray root-level content in this block element (e.g. p)")
	noValidate := flag.Bool("no-validate", false, "Skip schema validation and repair")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP fetch timeout")
	userAgent := flag.String("user-agent", defaultUA, "HTTP User-Agent header")
	silent := flag.Bool("silent", false, "Suppress all output except errors (for pipeline use)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: domclean [options] [file]\n")
		fmt.Fprintf(os.Stderr, "       domclean [options] -url <URL>\n\n")
		fmt.Fprintf(os.Stderr, "Clean untrusted HTML into validated, normalized markup.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *silent {
		logOut = io.Discard
	}

	cfg := cliConfig{
		output:     *output,
		fetchURL:   *fetchURL,
		readable:   *readable,
		ugc:        *ugc,
		markdown:   *markdown,
		rootBlock:  *rootBlock,
		noValidate: *noValidate,
		timeout:    *timeout,
		userAgent:  *userAgent,
		args:       flag.Args(),
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
