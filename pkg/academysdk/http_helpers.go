package academysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// jsonBody encodes v for a request body.
func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// doRequest performs an unauthenticated HTTP request. Transport failures come
// back as *NetworkError.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}

	return resp, nil
}

// doAuthRequest performs a bearer request. The token is checked locally
// first so an expired one never leaves the process.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	h["Authorization"] = "Bearer " + token

	return s.client.doRequest(ctx, method, path, body, h)
}

// decodeJSON decodes a 2xx response into target. Any other status is turned
// into a typed error by parseErrorResponse.
func decodeJSON(resp *http.Response, target any, op string) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(op, resp.StatusCode, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// errorBody covers both failure spellings the backend uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// parseErrorResponse maps a non-2xx response to ServerError or
// AuthenticationError when it carries a message, and NetworkError otherwise.
func parseErrorResponse(op string, status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.text() == "" {
		return &NetworkError{Op: op, StatusCode: status}
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &AuthenticationError{Message: eb.text()}
	}
	return &ServerError{StatusCode: status, Message: eb.text()}
}

// asAuthError turns any server-side rejection of a credential into an
// AuthenticationError. Transport failures are left alone.
func asAuthError(err error) error {
	switch e := err.(type) {
	case *ServerError:
		return &AuthenticationError{Message: e.Message}
	default:
		return err
	}
}
