package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/ai-interviewer/internal/config"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/store"
	"github.com/MKhiriev/ai-interviewer/internal/utils"
)

const (
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"

	contentTypeJSON = "application/json"
)

// RequestOptions customise a single [RequestClient.Do] call.
type RequestOptions struct {
	// Body is sent as JSON. A string or []byte is sent verbatim, anything
	// else is marshalled first.
	Body any

	// Headers are set on the request as given. A Content-Type supplied here
	// is never replaced.
	Headers map[string]string

	// PathParams fill the {name} placeholders of the endpoint path.
	PathParams map[string]string

	// RequireBody rejects a 204 with [ErrInvalidResponse] for endpoints
	// whose contract always returns a payload.
	RequireBody bool
}

// RequestClient performs every outbound call of the client.
//
// It reads the bearer credential from the [store.CredentialStore] on each
// call, so a token saved by login is used by the very next request. On 401
// it revokes that token (compare-and-delete: concurrent 401s revoke it once),
// runs the auth-expiry hooks for the revocation and sends the user to the
// login surface unless they are already there. It never retries.
type RequestClient struct {
	client      *utils.HTTPClient
	credentials store.CredentialStore
	navigator   navigation.Navigator
	validate    *validator.Validate
	ids         *utils.RequestIDGenerator
	logger      *logger.Logger

	mu    sync.Mutex
	hooks []func(ctx context.Context)
}

// NewRequestClient builds a [RequestClient] for the backend at
// cfg.HTTPAddress ("host:port" or a full URL).
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewRequestClient(cfg config.ClientAdapter, credentials store.CredentialStore, navigator navigation.Navigator, logger *logger.Logger) (*RequestClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &RequestClient{
		client:      utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		credentials: credentials,
		navigator:   navigator,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		ids:         utils.NewRequestIDGenerator(),
		logger:      logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// OnAuthExpired registers fn to run after a 401 revoked the stored
// credential. Hooks run synchronously, in registration order, on the
// goroutine that received the 401.
func (c *RequestClient) OnAuthExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hooks = append(c.hooks, fn)
}

// Do performs endpoint and decodes a 2xx JSON body into out.
//
// out may be nil when the body is irrelevant. A 204 leaves out untouched,
// unless opts.RequireBody is set.
// When out is non-nil the decoded value (a struct, or a slice of structs) is
// checked against its `validate` tags; a body that fails to decode or
// validate yields [ErrInvalidResponse]. Any other failure is a
// *[RequestError].
func (c *RequestClient) Do(ctx context.Context, endpoint Endpoint, opts RequestOptions, out any) error {
	token := c.currentToken(ctx)
	requestID := c.ids.Generate()

	log := c.logger.With().
		Str("request_id", requestID).
		Str("method", endpoint.Method).
		Str("path", endpoint.Path).
		Logger()

	req := c.client.R().
		SetContext(utils.WithRequestID(ctx, requestID)).
		SetHeader(HeaderRequestID, requestID)

	for name, value := range opts.Headers {
		req.SetHeader(name, value)
	}
	if len(opts.PathParams) > 0 {
		req.SetPathParams(opts.PathParams)
	}
	if token != "" {
		req.SetAuthToken(token)
	}

	if opts.Body != nil {
		body, err := encodeBody(opts.Body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %w", err)
		}
		if req.Header.Get(HeaderContentType) == "" {
			req.SetHeader(HeaderContentType, contentTypeJSON)
		}
		req.SetBody(body)
	}

	started := time.Now()
	resp, err := req.Execute(endpoint.Method, endpoint.Path)
	elapsed := time.Since(started)
	if err != nil {
		log.Err(err).
			Str("func", "RequestClient.Do").
			Dur("duration", elapsed).
			Msg("request failed")
		return newTransportError(err)
	}

	status := resp.StatusCode()
	log.Info().
		Int("status", status).
		Dur("duration", elapsed).
		Msg("request completed")

	switch {
	case status == http.StatusUnauthorized:
		c.handleAuthExpired(ctx, token)
		return mapHTTPError(resp)
	case status == http.StatusNoContent:
		if opts.RequireBody && out != nil {
			log.Error().Str("func", "RequestClient.Do").Msg("no content where a body is required")
			return ErrInvalidResponse
		}
		return nil
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return mapHTTPError(resp)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		log.Err(err).Str("func", "RequestClient.Do").Msg("error decoding response body")
		return ErrInvalidResponse
	}
	if err = c.validateShape(out); err != nil {
		log.Err(err).Str("func", "RequestClient.Do").Msg("response failed shape validation")
		return ErrInvalidResponse
	}

	return nil
}

func (c *RequestClient) currentToken(ctx context.Context) string {
	cred, err := c.credentials.Load(ctx)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return ""
	}
	if err != nil {
		c.logger.Err(err).Str("func", "RequestClient.currentToken").Msg("error loading credential, sending request anonymously")
		return ""
	}
	return cred.Token
}

// handleAuthExpired reacts to a 401 of a call made with token. A token that
// was replaced meanwhile (a newer login) is left alone.
func (c *RequestClient) handleAuthExpired(ctx context.Context, token string) {
	ctx = context.WithoutCancel(ctx)

	revoked := false
	if token != "" {
		var err error
		revoked, err = c.credentials.Revoke(ctx, token)
		if err != nil {
			c.logger.Err(err).Str("func", "RequestClient.handleAuthExpired").Msg("error revoking credential")
		}
	}

	if revoked {
		c.logger.Info().Str("func", "RequestClient.handleAuthExpired").Msg("credential revoked after 401")
		c.runAuthExpiredHooks(ctx)
	}

	if (revoked || token == "") && c.navigator.Current().Surface != navigation.SurfaceLogin {
		c.navigator.Navigate(navigation.Login())
	}
}

func (c *RequestClient) runAuthExpiredHooks(ctx context.Context) {
	c.mu.Lock()
	hooks := make([]func(ctx context.Context), len(c.hooks))
	copy(hooks, c.hooks)
	c.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx)
	}
}

// validateShape runs struct validation on out, or on every element when out
// is a slice or array.
func (c *RequestClient) validateShape(out any) error {
	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return c.validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if err := c.validateShape(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}

	return nil
}

func encodeBody(body any) (string, error) {
	switch v := body.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
