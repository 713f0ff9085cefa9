// Package amtsblatt is a client for the amtsblattportal publications API.
// It lists published Baugesuche for the configured cantons and fetches each
// publication's detail XML.
package amtsblatt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// Clock returns the current time (useful for testing the lookback window).
type Clock interface {
	Now() time.Time
}

// Summary is one entry from the paginated list endpoint. Ref points at the
// publication's detail XML.
type Summary struct {
	Ref               string
	PublicationNumber string
	PublicationDate   string
	Title             string
	Canton            string
}

// Client issues the list and detail requests for one run. Failures are not
// retried within a run; recovery is the next scheduled invocation, with the
// lookback window covering the gap.
type Client struct {
	cfg        Config
	httpClient *http.Client
	clock      Clock
	logger     *zap.Logger
}

// NewClient builds a client with its own HTTP client honoring the
// configured timeout.
func NewClient(cfg Config, clock Clock, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		clock:      clock,
		logger:     logger,
	}
}

// ListPublications pages through the list endpoint until a short or empty
// page signals the end. Each call re-queries the remote source; the result
// is one-shot, not restartable.
func (c *Client) ListPublications(ctx context.Context) ([]Summary, error) {
	var out []Summary
	for page := 0; ; page++ {
		batch, err := c.listPage(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		c.logger.Debug("Listed publications page",
			zap.Int("page", page),
			zap.Int("entries", len(batch)))
		if len(batch) < c.cfg.PageSize {
			return out, nil
		}
	}
}

func (c *Client) listPage(ctx context.Context, page int) ([]Summary, error) {
	params := url.Values{}
	params.Set("publicationStates", "PUBLISHED")
	for _, canton := range c.cfg.Cantons {
		params.Add("cantons", canton)
	}
	for _, rubric := range c.cfg.Rubrics {
		params.Add("rubrics", rubric)
	}
	if c.cfg.LookbackDays > 0 {
		start := c.clock.Now().AddDate(0, 0, -c.cfg.LookbackDays)
		params.Set("publicationDate.start", start.Format("2006-01-02"))
	}
	params.Set("pageRequest.page", strconv.Itoa(page))
	params.Set("pageRequest.size", strconv.Itoa(c.cfg.PageSize))

	body, err := c.get(ctx, c.cfg.BaseURL+"/publications/xml?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}
	defer body.Close()

	summaries, err := parseList(body)
	if err != nil {
		return nil, fmt.Errorf("parse list page %d: %w", page, err)
	}
	return summaries, nil
}

// FetchDetail retrieves one publication's detail XML via its ref URL.
func (c *Client) FetchDetail(ctx context.Context, ref string) (string, error) {
	body, err := c.get(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("fetch detail %s: %w", ref, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read detail %s: %w", ref, err)
	}
	return string(data), nil
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// parseList extracts publication summaries from the list XML. Entries
// without a ref cannot be followed and are dropped.
func parseList(r io.Reader) ([]Summary, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	var out []Summary
	for _, pub := range xmlquery.Find(doc, "//publication") {
		ref := strings.TrimSpace(pub.SelectAttr("ref"))
		if ref == "" {
			continue
		}
		s := Summary{Ref: ref}
		if meta := xmlquery.FindOne(pub, "meta"); meta != nil {
			s.PublicationNumber = nodeText(meta, "publicationNumber")
			s.PublicationDate = nodeText(meta, "publicationDate")
			s.Canton = nodeText(meta, "cantons")
			s.Title = titleText(meta)
		}
		out = append(out, s)
	}
	return out, nil
}

// titleText prefers the German title, then English, then the bare element.
func titleText(meta *xmlquery.Node) string {
	title := xmlquery.FindOne(meta, "title")
	if title == nil {
		return ""
	}
	for _, lang := range []string{"de", "en"} {
		if t := nodeText(title, lang); t != "" {
			return t
		}
	}
	return strings.TrimSpace(title.InnerText())
}

func nodeText(node *xmlquery.Node, path string) string {
	child := xmlquery.FindOne(node, path)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.InnerText())
}
