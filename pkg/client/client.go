// Package client is the Go SDK operator front-ends use to talk to the pharmanet API.
// A Client keeps the signed-in session in a single-slot cache: login fills it,
// logout empties it and every authenticated call reads its token from it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/pkg/session"

	"github.com/pkg/errors"
)

// ErrNotSignedIn is returned by authenticated calls when the session cache is empty or expired.
var ErrNotSignedIn = errors.New("client: not signed in")

// Client calls the API on behalf of one signed-in operator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Cache
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSessionCache shares an existing session cache.
func WithSessionCache(cache *session.Cache) Option {
	return func(c *Client) {
		c.sessions = cache
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   session.NewCache(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Session returns the cached session, or nil when signed out.
func (c *Client) Session() *session.Session {
	return c.sessions.Current()
}

// Principal returns the authorization context of the cached session.
func (c *Client) Principal() (entity.Principal, bool) {
	return c.sessions.Principal()
}

// APIError is a non-2xx response. It unwraps to the matching domain error so
// callers can branch with errors.Is.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("pharmanet api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}

	return msg
}

func (e *APIError) Unwrap() error {
	if kind, ok := errorKinds[e.Code]; ok {
		return kind
	}

	return nil
}

//nolint:gochecknoglobals
var errorKinds = map[string]error{
	domainerrors.ErrInvalidCredentials.ErrorCode():     domainerrors.ErrInvalidCredentials,
	domainerrors.ErrNotAuthorizedForRole.ErrorCode():   domainerrors.ErrNotAuthorizedForRole,
	domainerrors.ErrReauthenticationFailed.ErrorCode(): domainerrors.ErrReauthenticationFailed,
	domainerrors.ErrUnauthorized.ErrorCode():           domainerrors.ErrUnauthorized,
	domainerrors.ErrEmailInUse.ErrorCode():             domainerrors.ErrEmailInUse,
	domainerrors.ErrUploadFailed.ErrorCode():           domainerrors.ErrUploadFailed,
	domainerrors.ErrStoreWriteFailed.ErrorCode():       domainerrors.ErrStoreWriteFailed,
	domainerrors.ErrStoreReadFailed.ErrorCode():        domainerrors.ErrStoreReadFailed,
	domainerrors.ErrValidationFailed.ErrorCode():       domainerrors.ErrValidationFailed,
	domainerrors.ErrNotFound.ErrorCode():               domainerrors.ErrNotFound,
	domainerrors.ErrForbidden.ErrorCode():              domainerrors.ErrForbidden,
	domainerrors.ErrInternalError.ErrorCode():          domainerrors.ErrInternalError,
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta *struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

// request describes one API call.
type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	auth        bool
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}

	return bytes.NewReader(data), nil
}

// do sends r and decodes the data member of the envelope into out (when non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return errors.WithStack(err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")

	if r.auth {
		current := c.sessions.Current()
		if current == nil {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+current.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", r.method, r.path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "failed to decode %s %s response", r.method, r.path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "HTTP_ERROR", Message: resp.Status}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			if env.Error.Details != nil {
				apiErr.Details = fmt.Sprint(env.Error.Details)
			}
		}
		if env.Meta != nil {
			apiErr.RequestID = env.Meta.RequestID
		}
		if resp.StatusCode == http.StatusUnauthorized && r.auth {
			c.sessions.Clear()
		}

		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(env.Data, out), "failed to decode response data")
}

// Image is a file attached to a multipart request.
type Image struct {
	FileName string
	Data     []byte
}

// multipartBody encodes fields and an optional file part.
func multipartBody(fields map[string]string, fileField string, image *Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(key, value); err != nil {
			return nil, "", errors.WithStack(err)
		}
	}

	if image != nil {
		part, err := form.CreateFormFile(fileField, image.FileName)
		if err != nil {
			return nil, "", errors.WithStack(err)
		}
		if _, err := part.Write(image.Data); err != nil {
			return nil, "", errors.WithStack(err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, "", errors.WithStack(err)
	}

	return &buf, form.FormDataContentType(), nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
