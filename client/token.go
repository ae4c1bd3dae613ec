package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ObtainToken exchanges client credentials for a Graph bearer token with a
// single POST to the tenant's v2.0 token endpoint. There is no retry: any
// failure wraps ErrAuthentication.
func (c *Client) ObtainToken(ctx context.Context, tenant, clientID, clientSecret string) (*Token, error) {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     c.tokenURL(tenant),
		Scopes:       []string{c.scope()},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx, cancel := context.WithTimeout(ctx, c.tokenTimeout)
	defer cancel()
	tr := &tokenTransport{base: c.transport(), client: c}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
		Transport: tr,
		Timeout:   c.tokenTimeout,
	})

	tok, err := cfg.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			apiErr := parseAPIError(retrieveErr.Response.StatusCode, retrieveErr.Body, 0)
			if apiErr.Code == "" {
				apiErr.Code = retrieveErr.ErrorCode
				apiErr.Message = retrieveErr.ErrorDescription
			}
			return nil, fmt.Errorf("%w: %w", ErrAuthentication, apiErr)
		}
		return nil, fmt.Errorf("%w: token request: %w", ErrAuthentication, err)
	}
	// x/oauth2 accepts any 2xx.
	if tr.status != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, &APIError{
			StatusCode: tr.status,
			Message:    "unexpected token endpoint status",
		})
	}

	return &Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}

// tokenTransport stamps the client's User-Agent on requests built by the
// oauth2 package and records the token endpoint's status code.
type tokenTransport struct {
	base   http.RoundTripper
	client *Client
	status int
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	t.client.setCommonHeaders(req)
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.status = resp.StatusCode
	}
	return resp, err
}
