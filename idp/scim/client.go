package scim

import (
	"context"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"
)

// Client provisions users against a SCIM2-compliant identity service
// (WSO2 Asgardeo, Okta and similar) using an OAuth2 client-credentials
// grant.
type Client struct {
	BaseURL     string
	OAuthConfig *clientcredentials.Config
	Client      *http.Client
}

func NewClient(baseURL string, clientID string, clientSecret string, scopes []string) *Client {

	oauthConfig := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/oauth2/token",
		Scopes:       scopes,
	}

	return &Client{
		BaseURL:     baseURL,
		OAuthConfig: oauthConfig,
		Client:      oauthConfig.Client(context.Background()),
	}
}
