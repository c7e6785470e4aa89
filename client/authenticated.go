package client

import (
	"context"
	"net/http"
)

// AuthenticatedClient performs requests that need a paste modification
// token. It is created with UnauthenticatedClient.Authenticate and is safe
// for concurrent use. The token is fixed; authenticate again to use
// another one.
type AuthenticatedClient struct {
	inner UnauthenticatedClient
	token string
}

// Inner returns the underlying unauthenticated client.
func (c *AuthenticatedClient) Inner() *UnauthenticatedClient {
	return &c.inner
}

// UpdatePaste replaces the content of a paste. Metadata keys given in
// metadata are set on the stored metadata; nil metadata leaves the stored
// metadata unchanged. Binds to PATCH /api/v2/pastes/{id}.
func (c *AuthenticatedClient) UpdatePaste(ctx context.Context, id, content string, metadata *Metadata) error {
	endpoint, err := c.inner.pasteEndpoint(id)
	if err != nil {
		return err
	}
	body := &pasteRequest{Content: content, Metadata: metadata}
	return c.inner.do(ctx, http.MethodPatch, endpoint, body, nil, bearer(c.token))
}

// DeletePaste deletes a paste. Binds to DELETE /api/v2/pastes/{id}.
func (c *AuthenticatedClient) DeletePaste(ctx context.Context, id string) error {
	endpoint, err := c.inner.pasteEndpoint(id)
	if err != nil {
		return err
	}
	return c.inner.do(ctx, http.MethodDelete, endpoint, nil, nil, bearer(c.token))
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
