package supabase

import (
	"net/http"
	"time"
)

// Client talks to the GoTrue admin API of a hosted Supabase project.
// The service-role key grants full administrative access and must
// never reach the browser.
type Client struct {
	BaseURL        string
	ServiceRoleKey string
	Client         *http.Client
}

// NewClient creates a client for the project's auth endpoint, e.g.
// https://<project>.supabase.co/auth/v1
func NewClient(baseURL string, serviceRoleKey string) *Client {
	return &Client{
		BaseURL:        baseURL,
		ServiceRoleKey: serviceRoleKey,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// authorize sets the service-role credentials on an admin request
func (s *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.ServiceRoleKey)
	req.Header.Set("apikey", s.ServiceRoleKey)
}
