package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func (c *UnauthenticatedClient) endpoint(segments ...string) string {
	return c.baseURL.JoinPath(append([]string{"api", "v2"}, segments...)...).String()
}

func (c *UnauthenticatedClient) pasteEndpoint(id string) (string, error) {
	if id == "" || id == "." || id == ".." {
		return "", &Error{Code: ErrInvalidArgument, Message: fmt.Sprintf("invalid paste id %q", id)}
	}
	return c.endpoint("pastes", url.PathEscape(id)), nil
}

// do sends one request and decodes a successful JSON response into out
// when out is non-nil.
func (c *UnauthenticatedClient) do(ctx context.Context, method, endpoint string, in, out any, edit ...func(*http.Request)) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Code: ErrInvalidArgument, Message: "encoding request", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Code: ErrInvalidArgument, Message: "creating request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for _, fn := range edit {
		fn(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Code: ErrNetwork, Message: "making request", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Code: ErrNetwork, StatusCode: resp.StatusCode, Message: "reading response", Err: err}
	}

	if err := statusError(resp.StatusCode, raw); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Code: ErrMalformed, StatusCode: resp.StatusCode, Body: string(raw), Message: "decoding response", Err: err}
	}
	return nil
}

func statusError(status int, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	body := string(raw)
	switch status {
	case http.StatusNotFound:
		return &Error{Code: ErrNotFound, StatusCode: status, Body: body, Message: "not found"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{Code: ErrUnauthorized, StatusCode: status, Body: body, Message: "modification token rejected"}
	default:
		return &Error{Code: ErrServer, StatusCode: status, Body: body, Message: fmt.Sprintf("unexpected status %d: %s", status, strings.TrimSpace(body))}
	}
}
