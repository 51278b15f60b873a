package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"worklog/internal/domain"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"

	// maxTextChunk is the API's limit for a single rich text fragment.
	maxTextChunk = 2000
	pageSize     = 100
)

// Client implements ports.Workspace using the Notion REST API.
// The integration token of each call is sent as an OAuth2 bearer token.
type Client struct {
	baseURL string
	version string
	timeout time.Duration
	base    *http.Client // transport for outgoing calls; nil means http.DefaultClient
	log     *slog.Logger
}

func NewClient(baseURL, version string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		timeout: timeout,
		log:     log,
	}
}

// WithHTTPClient sets the client whose transport carries the API calls.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.base = hc
	return c
}

// RetrieveSchema fetches the collection and lists its property names.
// GET /v1/databases/{id}
func (c *Client) RetrieveSchema(ctx context.Context, cfg domain.SyncConfig) (domain.Schema, error) {
	var raw rawDatabase
	if err := c.do(ctx, cfg.APIToken, http.MethodGet, databasePath(cfg.DatabaseID), nil, &raw); err != nil {
		return domain.Schema{}, err
	}
	fields := make([]string, 0, len(raw.Properties))
	for name := range raw.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return domain.Schema{
		ID:     raw.ID,
		Title:  plainText(raw.Title),
		Fields: fields,
	}, nil
}

// CreateRecord adds a page to the collection and returns the page ID.
// POST /v1/pages
func (c *Client) CreateRecord(ctx context.Context, cfg domain.SyncConfig, props map[string]domain.Property) (string, error) {
	body := rawCreatePage{
		Parent:     rawParent{DatabaseID: cfg.DatabaseID},
		Properties: make(map[string]rawProperty, len(props)),
	}
	for name, p := range props {
		rp, err := toRaw(p)
		if err != nil {
			return "", fmt.Errorf("notion: property %q: %w", name, err)
		}
		body.Properties[name] = rp
	}
	var page rawPage
	if err := c.do(ctx, cfg.APIToken, http.MethodPost, "/v1/pages", body, &page); err != nil {
		return "", err
	}
	c.log.Debug("notion page created", slog.String("page_id", page.ID))
	return page.ID, nil
}

// QueryRecords returns the first page of results of a database query.
// POST /v1/databases/{id}/query
func (c *Client) QueryRecords(ctx context.Context, cfg domain.SyncConfig, q domain.Query) ([]domain.Record, error) {
	body := rawQuery{PageSize: pageSize}
	if q.SortField != "" {
		dir := "ascending"
		if q.Descending {
			dir = "descending"
		}
		body.Sorts = []rawSort{{Property: q.SortField, Direction: dir}}
	}
	var resp rawQueryResponse
	if err := c.do(ctx, cfg.APIToken, http.MethodPost, databasePath(cfg.DatabaseID)+"/query", body, &resp); err != nil {
		return nil, err
	}
	if resp.HasMore {
		c.log.Debug("notion query truncated to first page", slog.Int("count", len(resp.Results)))
	}
	out := make([]domain.Record, 0, len(resp.Results))
	for _, page := range resp.Results {
		rec := domain.Record{
			ID:          page.ID,
			CreatedTime: page.CreatedTime,
			Properties:  make(map[string]domain.Property, len(page.Properties)),
		}
		for name, rp := range page.Properties {
			rec.Properties[name] = fromRaw(rp)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, token, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("notion: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode}
		var e rawError
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code, apiErr.Message = e.Code, e.Message
		} else {
			apiErr.Message = string(raw)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: decoding %s response: %w", path, err)
	}
	return nil
}

// httpClient returns a client that authenticates with token as a bearer token.
func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	if c.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = c.timeout
	return hc
}

func databasePath(id string) string {
	return "/v1/databases/" + url.PathEscape(id)
}

// APIError is a non-200 response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: unexpected status %d (%s): %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the API's error codes onto the relay taxonomy.
func (e *APIError) Unwrap() error {
	switch {
	case e.Code == "object_not_found" || (e.Code == "" && e.Status == http.StatusNotFound):
		return domain.ErrNotFound
	case e.Code == "unauthorized" || (e.Code == "" && e.Status == http.StatusUnauthorized):
		return domain.ErrUnauthorized
	}
	return nil
}

var errUnsupportedKind = errors.New("unsupported property kind")

func toRaw(p domain.Property) (rawProperty, error) {
	switch p.Kind {
	case domain.KindTitle:
		return rawProperty{Title: textChunks(p.Text)}, nil
	case domain.KindRichText:
		return rawProperty{RichText: textChunks(p.Text)}, nil
	case domain.KindDate:
		return rawProperty{Date: &rawDate{Start: p.Date}}, nil
	case domain.KindNumber:
		return rawProperty{Number: p.Number}, nil
	}
	return rawProperty{}, fmt.Errorf("%w: %q", errUnsupportedKind, p.Kind)
}

func fromRaw(rp rawProperty) domain.Property {
	p := domain.Property{Kind: domain.PropertyKind(rp.Type)}
	switch p.Kind {
	case domain.KindTitle:
		p.Text = plainText(rp.Title)
	case domain.KindRichText:
		p.Text = plainText(rp.RichText)
	case domain.KindDate:
		if rp.Date != nil {
			p.Date = rp.Date.Start
		}
	case domain.KindNumber:
		p.Number = rp.Number
	}
	return p
}

// textChunks splits s into fragments the API accepts.
func textChunks(s string) []rawRichText {
	runes := []rune(s)
	out := []rawRichText{}
	for len(runes) > 0 {
		n := min(len(runes), maxTextChunk)
		out = append(out, rawRichText{Text: &rawText{Content: string(runes[:n])}})
		runes = runes[n:]
	}
	return out
}

func plainText(parts []rawRichText) string {
	var b strings.Builder
	for _, p := range parts {
		switch {
		case p.PlainText != "":
			b.WriteString(p.PlainText)
		case p.Text != nil:
			b.WriteString(p.Text.Content)
		}
	}
	return b.String()
}
