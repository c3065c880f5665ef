package rescue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/five82/pawpal/internal/apierror"
)

// Fetcher is the read-only surface of the API used by the UI and poller.
// *Client implements it; tests substitute fakes.
type Fetcher interface {
	SearchAnimals(ctx context.Context, query AnimalQuery) (AnimalPage, error)
	FetchAnimal(ctx context.Context, id int64) (*Animal, error)
	FetchTypes(ctx context.Context) ([]AnimalType, error)
	FetchOrganization(ctx context.Context, id string) (*Organization, error)
	Ping(ctx context.Context) (time.Duration, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL = "https://api.petfinder.com"
	tokenPath      = "/v2/oauth2/token"

	defaultUserAgent      = "pawpal"
	defaultRequestTimeout = 10 * time.Second
	requestIDHeader       = "X-Request-Id"
)

// Options configure a Client.
type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	UserAgent    string
	Timeout      time.Duration
	// Transport overrides the HTTP transport for API and token calls.
	Transport http.RoundTripper
}

// Client talks to the rescue listings API.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	log     *slog.Logger
}

// NewClient builds a Client. Without a client id requests are sent
// unauthenticated, which suits local mirrors and tests.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	plain := &http.Client{Timeout: timeout, Transport: opts.Transport}
	httpClient := plain
	if strings.TrimSpace(opts.ClientID) != "" {
		creds := clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     base.ResolveReference(&url.URL{Path: tokenPath}).String(),
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		// token requests go through the plain client so they share the
		// transport and timeout
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, plain)
		httpClient = creds.Client(tokenCtx)
		httpClient.Timeout = timeout
	}

	r := resty.NewWithClient(httpClient).
		SetBaseURL(base.String()).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{
		baseURL: base,
		http:    r,
		log:     slog.Default().With("component", "rescue"),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// AnimalQuery configures /v2/animals searches. Zero values are omitted.
type AnimalQuery struct {
	Type     string
	Location string
	Distance int
	Sort     string
	Page     int
	Limit    int
	// Status defaults to adoptable on the server.
	Status string
}

func (q AnimalQuery) values() url.Values {
	values := url.Values{}
	if t := strings.TrimSpace(q.Type); t != "" {
		values.Set("type", t)
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		values.Set("location", loc)
		if q.Distance > 0 {
			values.Set("distance", strconv.Itoa(q.Distance))
		}
	}
	if s := strings.TrimSpace(q.Sort); s != "" {
		values.Set("sort", s)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		values.Set("status", s)
	}
	return values
}

// SearchAnimals lists adoptable animals matching query.
func (c *Client) SearchAnimals(ctx context.Context, query AnimalQuery) (AnimalPage, error) {
	if c == nil {
		return AnimalPage{}, fmt.Errorf("client is nil")
	}
	var payload AnimalPage
	if err := c.get(ctx, "/v2/animals", query.values(), &payload); err != nil {
		return AnimalPage{}, err
	}
	return payload, nil
}

// FetchAnimal retrieves a single animal by id.
func (c *Client) FetchAnimal(ctx context.Context, id int64) (*Animal, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("animal id required")
	}
	var payload animalResponse
	if err := c.get(ctx, "/v2/animals/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Animal, nil
}

// FetchTypes retrieves the species catalog.
func (c *Client) FetchTypes(ctx context.Context) ([]AnimalType, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload typesResponse
	if err := c.get(ctx, "/v2/types", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Types, nil
}

// FetchOrganization retrieves a shelter by id.
func (c *Client) FetchOrganization(ctx context.Context, id string) (*Organization, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("organization id required")
	}
	var payload organizationResponse
	if err := c.get(ctx, "/v2/organizations/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Organization, nil
}

// Ping checks reachability with the cheapest authenticated call and reports
// its round-trip time.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	start := time.Now()
	if err := c.get(ctx, "/v2/types", nil, nil); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	requestID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		if apiErr := tokenError(err); apiErr != nil {
			c.log.Warn("token request failed", "path", path, "request_id", requestID, "status", apiErr.StatusCode)
			return apiErr
		}
		c.log.Warn("request failed", "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("execute request: %w", err)
	}

	if resp.StatusCode() >= 400 {
		apiErr := decodeError(resp.StatusCode(), resp.Body())
		c.log.Warn("api error", "path", path, "request_id", requestID, "status", apiErr.StatusCode, "message", apiErr.Message)
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorBody covers both the API's own error shape and RFC 7807 problems.
type errorBody struct {
	Message       string          `json:"message"`
	Title         string          `json:"title"`
	Detail        string          `json:"detail"`
	Errors        json.RawMessage `json:"errors"`
	InvalidParams []struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"invalid-params"`
}

func decodeError(status int, body []byte) *apierror.APIError {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apierror.New("", status, nil)
	}

	message := firstNonEmpty(parsed.Message, parsed.Detail, parsed.Title)

	var fields apierror.FieldErrors
	if len(parsed.Errors) > 0 {
		// a malformed errors member is dropped, the rest of the body still counts
		_ = json.Unmarshal(parsed.Errors, &fields)
	}
	for _, p := range parsed.InvalidParams {
		if p.Path == "" {
			continue
		}
		fields = fields.Add(p.Path, p.Message)
	}
	return apierror.New(message, status, fields)
}

// tokenError maps a failed client-credentials exchange to an APIError so it
// is reported like any other API rejection.
func tokenError(err error) *apierror.APIError {
	var retrieve *oauth2.RetrieveError
	if !errors.As(err, &retrieve) {
		return nil
	}
	status := 0
	if retrieve.Response != nil {
		status = retrieve.Response.StatusCode
	}
	if apiErr := decodeError(status, retrieve.Body); apiErr.Message != apierror.DefaultMessage {
		return apiErr
	}
	message := "authentication failed"
	if retrieve.ErrorDescription != "" {
		message = "authentication failed: " + retrieve.ErrorDescription
	}
	return apierror.New(message, status, nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
