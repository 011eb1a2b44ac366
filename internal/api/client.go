package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// AuthHeader carries the bearer token on every authenticated request.
const AuthHeader = "x-auth-token"

// TokenSource supplies the current session token, or "" when no session
// is active. The session store owns the only implementation; the token is
// injected per request instead of living as mutable client state.
type TokenSource func() string

// Cache is the shared collection cache consulted by the resource
// fetchers. List results are stored under their collection name and every
// mutation invalidates the collections it touches, so views re-reading a
// list always go back to server truth.
type Cache interface {
	PutList(collection string, v any) error
	Invalidate(collections ...string) error
}

// Client is the shared HTTP client for the coaching backend. All resource
// fetchers hang off it as typed services.
type Client struct {
	base  string
	http  *http.Client
	token TokenSource
	cache Cache

	Auth        *AuthService
	Users       *UsersService
	Exercises   *ExercisesService
	Templates   *TemplatesService
	Workouts    *WorkoutsService
	Feedback    *FeedbackService
	Evaluations *EvaluationsService
	Notes       *NotesService
	Stats       *StatsService
	Avatars     *AvatarsService
}

type Option func(*Client)

// WithTimeout bounds every request. Zero keeps requests unbounded, which
// matches the reference behavior of leaving a hung call in flight.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthService{c: c}
	c.Users = &UsersService{c: c}
	c.Exercises = &ExercisesService{c: c}
	c.Templates = &TemplatesService{c: c}
	c.Workouts = &WorkoutsService{c: c}
	c.Feedback = &FeedbackService{c: c}
	c.Evaluations = &EvaluationsService{c: c}
	c.Notes = &NotesService{c: c}
	c.Stats = &StatsService{c: c}
	c.Avatars = &AvatarsService{c: c}
	return c
}

// currentToken returns the injected token, or "" without a source.
func (c *Client) currentToken() string {
	if c.token == nil {
		return ""
	}
	return c.token()
}

// do issues a JSON request without requiring a session. Only the public
// auth endpoints (login, claim-account, reset-password) use it directly.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(AuthHeader, token)
	}
	return c.send(req, out)
}

// doAuthed is do with the additional contract that a fetcher must not be
// callable without a session: it fails fast with ErrNoSession before any
// network I/O when no token is held.
func (c *Client) doAuthed(ctx context.Context, method, path string, body, out any) error {
	if c.currentToken() == "" {
		return ErrNoSession
	}
	return c.do(ctx, method, path, body, out)
}

// doMultipart issues an authenticated multipart request. The build
// callback writes the form fields and file parts.
func (c *Client) doMultipart(ctx context.Context, method, path string, build func(*multipart.Writer) error, out any) error {
	if c.currentToken() == "" {
		return ErrNoSession
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := build(form); err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set(AuthHeader, c.currentToken())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// cacheList stores a freshly fetched collection. Caching is best effort;
// a cache failure never fails the fetch.
func (c *Client) cacheList(collection string, v any) {
	if c.cache != nil {
		_ = c.cache.PutList(collection, v)
	}
}

// invalidate drops cached collections after a mutation so the next list
// read goes back to the server.
func (c *Client) invalidate(collections ...string) {
	if c.cache != nil {
		_ = c.cache.Invalidate(collections...)
	}
}
