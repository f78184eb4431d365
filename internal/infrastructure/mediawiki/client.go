package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"wikicli/internal/config"
	"wikicli/internal/domain"
	"wikicli/internal/ports"
)

const defaultLanguage = "en"

var languageCodeExpr = regexp.MustCompile(`^[a-z][a-z0-9-]{1,11}$`)

// Client queries the MediaWiki action API of a language-specific wiki.
type Client struct {
	client          *http.Client
	userAgent       string
	endpointPattern string
	endpoint        string
	lang            string
}

var _ ports.KnowledgeClient = (*Client)(nil)

// New wires an HTTP client; a nil client gets a 20s-timeout default.
func New(client *http.Client, cfg config.WikipediaConfig) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	pattern := cfg.EndpointPattern
	if pattern == "" {
		pattern = "https://%s.wikipedia.org/w/api.php"
	}
	return &Client{
		client:          client,
		userAgent:       cfg.UserAgent,
		endpointPattern: pattern,
		endpoint:        fmt.Sprintf(pattern, defaultLanguage),
		lang:            defaultLanguage,
	}
}

// Language returns the currently selected language code.
func (c *Client) Language() string {
	return c.lang
}

// SetLanguage probes the wiki for the given code and switches the client to
// it. Any probe failure leaves the previous language selected.
func (c *Client) SetLanguage(ctx context.Context, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if !languageCodeExpr.MatchString(code) {
		return fmt.Errorf("invalid language code %q", code)
	}

	endpoint := fmt.Sprintf(c.endpointPattern, code)
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "siteinfo")
	params.Set("siprop", "general")

	var resp queryResponse
	if err := c.getEndpoint(ctx, endpoint, params, &resp); err != nil {
		return fmt.Errorf("probe language %s: %w", code, err)
	}

	c.endpoint = endpoint
	c.lang = code
	return nil
}

// Summary returns up to the requested number of sentences of plain text for
// the topic, following redirects to the canonical article.
func (c *Client) Summary(ctx context.Context, topic string, sentences int) (string, error) {
	params := extractParams(topic)
	if sentences > 0 {
		params.Set("exsentences", strconv.Itoa(sentences))
	}

	page, err := c.fetchExtract(ctx, topic, params)
	if err != nil {
		return "", err
	}
	return page.Content, nil
}

// Page returns the full article body. The returned title is the canonical
// one the wiki resolved, which may differ from the requested topic.
func (c *Client) Page(ctx context.Context, topic string) (domain.Page, error) {
	params := extractParams(topic)
	params.Set("prop", "extracts|pageprops|info")
	params.Set("inprop", "url")

	return c.fetchExtract(ctx, topic, params)
}

// Search returns up to limit article titles matching the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	if limit > 0 {
		params.Set("srlimit", strconv.Itoa(limit))
	}

	var resp queryResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

func extractParams(topic string) url.Values {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|pageprops")
	params.Set("ppprop", "disambiguation")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", topic)
	return params
}

func (c *Client) fetchExtract(ctx context.Context, topic string, params url.Values) (domain.Page, error) {
	var resp queryResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return domain.Page{}, fmt.Errorf("fetch %q: %w", topic, err)
	}

	if len(resp.Query.Pages) == 0 {
		return domain.Page{}, &domain.NotFoundError{Title: topic}
	}

	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid {
		return domain.Page{}, &domain.NotFoundError{Title: topic}
	}

	if _, ok := page.PageProps["disambiguation"]; ok {
		candidates, err := c.disambiguationCandidates(ctx, page.Title)
		if err != nil {
			return domain.Page{}, fmt.Errorf("resolve disambiguation for %q: %w", topic, err)
		}
		return domain.Page{}, &domain.DisambiguationError{Title: topic, Candidates: candidates}
	}

	return domain.Page{
		Title:   page.Title,
		PageID:  page.PageID,
		Content: page.Extract,
		URL:     page.FullURL,
	}, nil
}

// disambiguationCandidates renders the disambiguation page and collects the
// article links it lists, in page order.
func (c *Client) disambiguationCandidates(ctx context.Context, title string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text")

	var resp parseResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Parse.Text))
	if err != nil {
		return nil, fmt.Errorf("parse disambiguation html: %w", err)
	}

	seen := map[string]struct{}{}
	var candidates []string
	doc.Find("ul li a[title]").Each(func(i int, link *goquery.Selection) {
		candidate, _ := link.Attr("title")
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || candidate == title || strings.Contains(candidate, ":") {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate)
	})

	return candidates, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out apiResponse) error {
	return c.getEndpoint(ctx, c.endpoint, params, out)
}

func (c *Client) getEndpoint(ctx context.Context, endpoint string, params url.Values, out apiResponse) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("wiki returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if apiErr := out.apiError(); apiErr != nil {
		return fmt.Errorf("api error %s: %s", apiErr.Code, apiErr.Info)
	}

	return nil
}

type apiResponse interface {
	apiError() *apiError
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type queryResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages  []pageInfo  `json:"pages"`
		Search []searchHit `json:"search"`
	} `json:"query"`
}

func (r *queryResponse) apiError() *apiError { return r.Error }

type pageInfo struct {
	PageID    int               `json:"pageid"`
	Title     string            `json:"title"`
	Missing   bool              `json:"missing"`
	Invalid   bool              `json:"invalid"`
	Extract   string            `json:"extract"`
	FullURL   string            `json:"fullurl"`
	PageProps map[string]string `json:"pageprops"`
}

type searchHit struct {
	Title string `json:"title"`
}

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
}

func (r *parseResponse) apiError() *apiError { return r.Error }
