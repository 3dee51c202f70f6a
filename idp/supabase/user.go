package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/UncoreDigital/secure-place-api/idp"
)

type adminUserBody struct {
	ID               string                 `json:"id,omitempty"`
	Email            string                 `json:"email,omitempty"`
	Password         string                 `json:"password,omitempty"`
	EmailConfirm     bool                   `json:"email_confirm,omitempty"`
	EmailConfirmedAt string                 `json:"email_confirmed_at,omitempty"`
	UserMetadata     map[string]interface{} `json:"user_metadata,omitempty"`
}

type adminUserResponse struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	EmailConfirmedAt string                 `json:"email_confirmed_at"`
	UserMetadata     map[string]interface{} `json:"user_metadata"`
}

type adminUserListResponse struct {
	Users []adminUserResponse `json:"users"`
}

func (r *adminUserResponse) toUserInfo() *idp.UserInfo {
	info := &idp.UserInfo{
		ID:             r.ID,
		Email:          r.Email,
		EmailConfirmed: r.EmailConfirmedAt != "",
	}
	if name, ok := r.UserMetadata["full_name"].(string); ok {
		info.DisplayName = name
	}
	return info
}

func (s *Client) CreateUser(ctx context.Context, user *idp.NewUser) (*idp.UserInfo, error) {
	url := fmt.Sprintf("%s/admin/users", s.BaseURL)

	body := adminUserBody{
		Email:        user.Email,
		Password:     user.Password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"full_name": user.DisplayName,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create user, status code: %d, body: %s", res.StatusCode, readErrorBody(res.Body))
	}

	var response adminUserResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toUserInfo(), nil
}

func (s *Client) GetUser(ctx context.Context, userID string) (*idp.UserInfo, error) {
	url := fmt.Sprintf("%s/admin/users/%s", s.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user, status code: %d", res.StatusCode)
	}

	var response adminUserResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toUserInfo(), nil
}

func (s *Client) UpdateUser(ctx context.Context, userID string, update *idp.UserUpdate) (*idp.UserInfo, error) {
	url := fmt.Sprintf("%s/admin/users/%s", s.BaseURL, userID)

	body := adminUserBody{}
	if update.Email != nil {
		body.Email = *update.Email
		// Keep the account usable after an administrative email change
		body.EmailConfirm = true
	}
	if update.DisplayName != nil {
		body.UserMetadata = map[string]interface{}{
			"full_name": *update.DisplayName,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to update user, status code: %d", res.StatusCode)
	}

	var response adminUserResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toUserInfo(), nil
}

func (s *Client) DeleteUser(ctx context.Context, userID string) error {
	url := fmt.Sprintf("%s/admin/users/%s", s.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, "DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.authorize(req)

	res, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete user, status code: %d", res.StatusCode)
	}

	return nil
}

func (s *Client) ListUsers(ctx context.Context) ([]*idp.UserInfo, error) {
	const perPage = 100
	var users []*idp.UserInfo

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/admin/users?page=%s&per_page=%s", s.BaseURL, strconv.Itoa(page), strconv.Itoa(perPage))

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		s.authorize(req)

		res, err := s.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}

		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("failed to list users, status code: %d", res.StatusCode)
		}

		var response adminUserListResponse
		err = json.NewDecoder(res.Body).Decode(&response)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		for i := range response.Users {
			users = append(users, response.Users[i].toUserInfo())
		}

		if len(response.Users) < perPage {
			return users, nil
		}
	}
}

// readErrorBody returns a truncated copy of an error response body for
// diagnostics
func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return string(b)
}
