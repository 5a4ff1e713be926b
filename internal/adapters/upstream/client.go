// Package upstream is the HTTP client for the score API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/memedash/internal/domain/model"
	"github.com/okian/memedash/pkg/logger"
	"github.com/okian/memedash/pkg/metrics"
)

// Operation names used in errors, logs and metrics.
const (
	OpFetchAll = "fetch_all"
	OpLookup   = "lookup"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 32 << 20
	maxErrorBody   = 512
)

// Client reads scored entities from the score API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

// NewClient creates a client rooted at baseURL, e.g. "http://127.0.0.1:5000/api/v1".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("upstream")
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchAll returns the full score list. The list is all-or-nothing: any
// element that does not decode fails the whole call.
func (c *Client) FetchAll(ctx context.Context) ([]model.ScoredEntity, error) {
	body, err := c.get(ctx, OpFetchAll, "/scores")
	if err != nil {
		return nil, err
	}
	scores, err := decodeScores(body)
	if err != nil {
		return nil, c.fail(ctx, OpFetchAll, err)
	}
	c.log.Debug(ctx, "fetched scores", logger.Int("count", len(scores)))
	return scores, nil
}

// Lookup returns one entity by screen name or tweet id.
func (c *Client) Lookup(ctx context.Context, identifier string) (model.ScoredEntity, error) {
	if strings.TrimSpace(identifier) == "" {
		return model.ScoredEntity{}, &Error{Op: OpLookup, Kind: ErrNotFound, Body: "identifier must not be empty"}
	}
	body, err := c.get(ctx, OpLookup, "/scores/"+url.PathEscape(identifier))
	if err != nil {
		return model.ScoredEntity{}, err
	}
	entity, err := decodeEntity(body)
	if err != nil {
		return model.ScoredEntity{}, c.fail(ctx, OpLookup, err)
	}
	return entity, nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(ctx, op, &Error{Op: op, Kind: ErrNetwork, Err: err})
	}
	metrics.RecordUpstreamThrottleWait(float64(time.Since(waitStart).Microseconds()) / 1000)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.observe(ctx, op, start, &Error{Op: op, Kind: ErrNetwork, Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.observe(ctx, op, start, &Error{Op: op, Kind: ErrNetwork, Status: resp.StatusCode, Err: err})
	}

	switch {
	case op == OpLookup && resp.StatusCode == http.StatusNotFound:
		return nil, c.observe(ctx, op, start, &Error{Op: op, Kind: ErrNotFound, Status: resp.StatusCode, Body: errorMessage(body)})
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, c.observe(ctx, op, start, &Error{Op: op, Kind: ErrServer, Status: resp.StatusCode, Body: truncate(string(bytes.TrimSpace(body)))})
	}

	_ = c.observe(ctx, op, start, nil)
	return body, nil
}

// observe records the call outcome and passes err through.
func (c *Client) observe(ctx context.Context, op string, start time.Time, err error) error {
	metrics.RecordUpstreamRequest(op, Outcome(err), float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		return c.fail(ctx, op, err)
	}
	return nil
}

func (c *Client) fail(ctx context.Context, op string, err error) error {
	var ue *Error
	if errors.As(err, &ue) && ue.Op == "" {
		ue.Op = op
	}
	c.log.Warn(ctx, "upstream call failed", logger.String("op", op), logger.String("outcome", Outcome(err)), logger.Error(err))
	return err
}

// unwrapDocument returns the JSON document held by body. A body that is a
// JSON string literal, or is not JSON at all, is treated as text holding
// the document and must parse as JSON itself.
func unwrapDocument(body []byte) ([]byte, error) {
	doc := bytes.TrimSpace(body)
	if len(doc) > 0 && doc[0] == '"' {
		var s string
		if err := json.Unmarshal(doc, &s); err != nil {
			return nil, &Error{Kind: ErrParse, Err: err}
		}
		doc = bytes.TrimSpace([]byte(s))
	}
	if !json.Valid(doc) {
		var probe any
		err := json.Unmarshal(doc, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &Error{Kind: ErrParse, Err: err}
	}
	return doc, nil
}

func decodeScores(body []byte) ([]model.ScoredEntity, error) {
	doc, err := unwrapDocument(body)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, &Error{Kind: ErrMalformedResponse, Err: err}
	}
	raw, ok := envelope["scores"]
	if !ok {
		return nil, &Error{Kind: ErrMalformedResponse, Err: errors.New("missing scores field")}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		if err == nil {
			err = errors.New("scores is null")
		}
		return nil, &Error{Kind: ErrMalformedResponse, Err: err}
	}

	scores := make([]model.ScoredEntity, 0, len(items))
	for i, item := range items {
		e, err := decodeObject(item)
		if err != nil {
			return nil, &Error{Kind: ErrMalformedResponse, Err: fmt.Errorf("scores[%d]: %w", i, err)}
		}
		scores = append(scores, e)
	}
	return scores, nil
}

func decodeEntity(body []byte) (model.ScoredEntity, error) {
	doc, err := unwrapDocument(body)
	if err != nil {
		return model.ScoredEntity{}, err
	}
	e, err := decodeObject(doc)
	if err != nil {
		return model.ScoredEntity{}, &Error{Kind: ErrMalformedResponse, Err: err}
	}
	return e, nil
}

func decodeObject(raw json.RawMessage) (model.ScoredEntity, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.ScoredEntity{}, errors.New("not an object")
	}
	var e model.ScoredEntity
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return model.ScoredEntity{}, err
	}
	return e, nil
}

// errorMessage extracts {"error": "..."} from body, falling back to the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return truncate(string(bytes.TrimSpace(body)))
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
