package lyricsovh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public lyrics.ovh endpoint.
const DefaultBaseURL = "https://api.lyrics.ovh"

const component = "lyricsovh"

// Client defines the interface for interacting with the lyrics.ovh API.
type Client interface {
	Suggest(ctx context.Context, query string) ([]Song, error)
	Lyrics(ctx context.Context, artist, title string) (*LyricsResponse, error)
	Ping(ctx context.Context) error
}

// HTTPClient implements Client over lyrics.ovh's HTTP API.
type HTTPClient struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new HTTPClient. A zero timeout leaves requests bounded
// only by their context.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserAgent:  "lyricsearch/1.0",
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Suggest returns every song the suggest endpoint reports for query.
func (c *HTTPClient) Suggest(ctx context.Context, query string) ([]Song, error) {
	log.Debug().Str("component", component).Str("query", query).Msg("suggest")
	var resp SuggestResponse
	if err := c.getJSON(ctx, "suggest", "/suggest/"+url.PathEscape(query), &resp); err != nil {
		return nil, err
	}
	log.Debug().Str("component", component).Str("query", query).Int("results", len(resp.Data)).Msg("suggest done")
	return resp.Data, nil
}

// Lyrics fetches the lyrics of one song. A body-level error field is returned
// to the caller as part of the response, not as an error.
func (c *HTTPClient) Lyrics(ctx context.Context, artist, title string) (*LyricsResponse, error) {
	log.Debug().Str("component", component).Str("artist", artist).Str("title", title).Msg("lyrics")
	endpoint := "/v1/" + url.PathEscape(artist) + "/" + url.PathEscape(title)
	var resp LyricsResponse
	if err := c.getJSON(ctx, "lyrics", endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping issues a cheap suggest request and reports whether it succeeded.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, "/suggest/test")
	if err != nil {
		return err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return &TransportError{Op: "ping", Code: transportCode(err), Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "ping", StatusCode: resp.StatusCode, Code: statusCode(resp.StatusCode)}
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	resp, err := c.client().Do(req)
	if err != nil {
		log.Warn().Str("component", component).Err(err).Msgf("%s request failed", op)
		return &TransportError{Op: op, Code: transportCode(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		log.Warn().Str("component", component).Int("status", resp.StatusCode).Msgf("%s failed", op)
		return &StatusError{
			Op:            op,
			StatusCode:    resp.StatusCode,
			ServerMessage: serverMessage(body),
			Code:          statusCode(resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "decode " + op + " response", Code: CodeBadResponse, Err: err}
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return req, nil
}

func (c *HTTPClient) client() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// serverMessage extracts a human readable message from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
