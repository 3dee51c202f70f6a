package scim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/UncoreDigital/secure-place-api/idp"
)

type userEmail struct {
	Value   string `json:"value"`
	Primary bool   `json:"primary"`
}

type userName struct {
	FamilyName string `json:"familyName,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
}

type userRequestBody struct {
	UserName string      `json:"userName"`
	Password string      `json:"password,omitempty"`
	Emails   []userEmail `json:"emails"`
	Name     userName    `json:"name"`
	Active   bool        `json:"active"`
}

type userResponseBody struct {
	ID       string      `json:"id"`
	UserName string      `json:"userName"`
	Emails   []userEmail `json:"emails"`
	Name     userName    `json:"name"`
	Active   bool        `json:"active"`
}

type userListResponseBody struct {
	TotalResults int                `json:"totalResults"`
	StartIndex   int                `json:"startIndex"`
	ItemsPerPage int                `json:"itemsPerPage"`
	Resources    []userResponseBody `json:"Resources"`
}

func (r *userResponseBody) toUserInfo() *idp.UserInfo {
	info := &idp.UserInfo{
		ID:          r.ID,
		DisplayName: strings.TrimSpace(r.Name.GivenName + " " + r.Name.FamilyName),
		// SCIM has no confirmation step for admin-created accounts
		EmailConfirmed: true,
	}
	if len(r.Emails) > 0 {
		info.Email = r.Emails[0].Value
	}
	return info
}

// splitDisplayName maps a display name onto the SCIM given/family pair
func splitDisplayName(displayName string) userName {
	parts := strings.SplitN(strings.TrimSpace(displayName), " ", 2)
	name := userName{GivenName: parts[0]}
	if len(parts) == 2 {
		name.FamilyName = parts[1]
	}
	return name
}

func (a *Client) CreateUser(ctx context.Context, user *idp.NewUser) (*idp.UserInfo, error) {
	url := fmt.Sprintf("%s/scim2/Users", a.BaseURL)

	body := userRequestBody{
		UserName: fmt.Sprintf("DEFAULT/%s", user.Email),
		Password: user.Password,
		Emails: []userEmail{
			{Value: user.Email, Primary: true},
		},
		Name:   splitDisplayName(user.DisplayName),
		Active: true,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/scim+json")

	res, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create user, status code: %d", res.StatusCode)
	}

	var response userResponseBody
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toUserInfo(), nil
}

func (a *Client) GetUser(ctx context.Context, userID string) (*idp.UserInfo, error) {
	url := fmt.Sprintf("%s/scim2/Users/%s", a.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user, status code: %d", res.StatusCode)
	}

	var response userResponseBody
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toUserInfo(), nil
}

func (a *Client) UpdateUser(ctx context.Context, userID string, update *idp.UserUpdate) (*idp.UserInfo, error) {
	// SCIM PUT replaces the resource, so fetch the current state and
	// apply the partial update over it.
	current, err := a.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user before update: %w", err)
	}

	email := current.Email
	if update.Email != nil {
		email = *update.Email
	}
	displayName := current.DisplayName
	if update.DisplayName != nil {
		displayName = *update.DisplayName
	}

	url := fmt.Sprintf("%s/scim2/Users/%s", a.BaseURL, userID)

	body := userRequestBody{
		UserName: fmt.Sprintf("DEFAULT/%s", email),
		Emails: []userEmail{
			{Value: email, Primary: true},
		},
		Name:   splitDisplayName(displayName),
		Active: true,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/scim+json")

	res, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to update user, status code: %d", res.StatusCode)
	}

	var response userResponseBody
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.toUserInfo(), nil
}

func (a *Client) DeleteUser(ctx context.Context, userID string) error {
	url := fmt.Sprintf("%s/scim2/Users/%s", a.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, "DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	res, err := a.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete user, status code: %d", res.StatusCode)
	}

	return nil
}

func (a *Client) ListUsers(ctx context.Context) ([]*idp.UserInfo, error) {
	const pageSize = 100
	var users []*idp.UserInfo

	for startIndex := 1; ; startIndex += pageSize {
		url := fmt.Sprintf("%s/scim2/Users?startIndex=%d&count=%d", a.BaseURL, startIndex, pageSize)

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		res, err := a.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}

		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("failed to list users, status code: %d", res.StatusCode)
		}

		var response userListResponseBody
		err = json.NewDecoder(res.Body).Decode(&response)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		for i := range response.Resources {
			users = append(users, response.Resources[i].toUserInfo())
		}

		if startIndex+len(response.Resources) > response.TotalResults || len(response.Resources) == 0 {
			return users, nil
		}
	}
}
