package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenStore is the durable session token holder consumed by the client.
type TokenStore interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// BaseClient provides JSON request helpers against the remote booking API.
// When the store holds a token it is attached as `Authorization: Token <v>`.
type BaseClient struct {
	baseURL string
	client  HTTPDoer
	tokens  TokenStore
	logger  *zap.Logger
}

// NewBaseClient builds client with API root URL.
func NewBaseClient(baseURL string, client HTTPDoer, tokens TokenStore, logger *zap.Logger) *BaseClient {
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}
}

// IsAuthenticated reports token presence in the store. It says nothing
// about whether the server still accepts that token.
func (c *BaseClient) IsAuthenticated() bool {
	_, ok := c.tokens.Token()
	return ok
}

func (c *BaseClient) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

// do executes an HTTP request and returns the response body on 2xx.
// Non-2xx responses become a *RequestError carrying the server message when
// one is present, else fallback. A 401 on a request that carried a token
// clears the store: the server has rejected the session.
func (c *BaseClient) do(ctx context.Context, method, path string, query url.Values, payload interface{}, headers map[string]string, fallback string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &RequestError{Message: fallback, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return nil, &RequestError{Message: fallback, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	token, hasToken := c.tokens.Token()
	if hasToken {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestError{Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Message: fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && hasToken {
			if clearErr := c.tokens.Clear(); clearErr != nil {
				c.logger.Warn("failed to clear rejected session", zap.Error(clearErr))
			}
		}
		return nil, &RequestError{Status: resp.StatusCode, Message: serverMessage(body, fallback)}
	}
	return body, nil
}

// requireToken guards operations that make no sense anonymously.
func (c *BaseClient) requireToken() error {
	if _, ok := c.tokens.Token(); !ok {
		return ErrAuthRequired
	}
	return nil
}

// serverMessage extracts an error message from a JSON error body.
func serverMessage(body []byte, fallback string) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, msg := range []string{parsed.Message, parsed.Error, parsed.Detail} {
			if strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	return fallback
}

// decodeList accepts both a bare JSON array and a `{"results": [...]}`
// envelope, decoding either into out.
func decodeList(body []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if envelope.Results != nil {
		return json.Unmarshal(envelope.Results, out)
	}
	return json.Unmarshal(trimmed, out)
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
