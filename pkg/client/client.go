// Package client is a typed Go client for the Quezi REST API.
//
// Authentication state lives in an explicit Session. A 401 from the API clears
// that session and surfaces as ErrUnauthorized; the caller decides what to do.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/you/quezi/pkg/pagination"
)

// ErrUnauthorized is wrapped by the *APIError of every 401 response
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	RetryAfter int
	err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quezi api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.err }

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for baseURL. A nil session starts signed out.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

// Login signs in and initialises the session
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}

	c.session.Init(Tokens{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, &out.User)
	return &out.User, nil
}

// Logout ends the server session. The local session is cleared even when the
// request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	return err
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListProfessionals(ctx context.Context, q ProfessionalQuery, page, limit int) (Page[Professional], error) {
	query := pageQuery(page, limit)
	setIf(query, "search", q.Search)
	setIf(query, "city", q.City)
	return list[Professional](ctx, c, "/professionals", query)
}

func (c *Client) ListOrganizations(ctx context.Context, search string, page, limit int) (Page[Organization], error) {
	query := pageQuery(page, limit)
	setIf(query, "search", search)
	return list[Organization](ctx, c, "/organizations", query)
}

func (c *Client) ListReviews(ctx context.Context, professionalID uint, page, limit int) (Page[Review], error) {
	path := fmt.Sprintf("/professionals/%d/reviews", professionalID)
	return list[Review](ctx, c, path, pageQuery(page, limit))
}

func (c *Client) CreateReview(ctx context.Context, in CreateReviewInput) (*Review, error) {
	var review Review
	if _, err := c.do(ctx, http.MethodPost, "/reviews", nil, in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) CreateOrganization(ctx context.Context, in CreateOrganizationInput) (*Organization, error) {
	var org Organization
	if _, err := c.do(ctx, http.MethodPost, "/organizations", nil, in, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func list[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	var items []T
	meta, err := c.do(ctx, http.MethodGet, path, query, nil, &items)
	if err != nil {
		return Page[T]{}, err
	}
	page := Page[T]{Items: items}
	if meta != nil {
		page.Meta = *meta
	}
	return page, nil
}

type envelope struct {
	Data json.RawMessage  `json:"data"`
	Meta *pagination.Meta `json:"meta"`
}

type errorBody struct {
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields"`
	RetryAfter int               `json:"retryAfter"`
}

// do sends one request and decodes the data member of the envelope into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) (*pagination.Meta, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("quezi api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return env.Meta, nil
}

func (c *Client) apiError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}

	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		apiErr.Message = eb.Error
		apiErr.Fields = eb.Fields
		apiErr.RetryAfter = eb.RetryAfter
	}

	if status == http.StatusUnauthorized {
		apiErr.err = ErrUnauthorized
		c.session.Clear()
	}
	return apiErr
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
