package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser_SendsConfirmedAdminCreate(t *testing.T) {
	var gotPath, gotAuth, gotAPIKey string
	var gotBody adminUserBody

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(adminUserResponse{
			ID:               "idp_123",
			Email:            gotBody.Email,
			EmailConfirmedAt: "2025-01-01T00:00:00Z",
			UserMetadata:     gotBody.UserMetadata,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-role-key")

	info, err := client.CreateUser(context.Background(), &idp.NewUser{
		Email:       "john@example.com",
		Password:    "Fixed-Pass1!",
		DisplayName: "John Doe",
	})

	assert.NoError(t, err)
	assert.Equal(t, "POST /admin/users", gotPath)
	assert.Equal(t, "Bearer service-role-key", gotAuth)
	assert.Equal(t, "service-role-key", gotAPIKey)

	// The account is created pre-confirmed so no verification email fires
	assert.True(t, gotBody.EmailConfirm)
	assert.Equal(t, "Fixed-Pass1!", gotBody.Password)
	assert.Equal(t, "John Doe", gotBody.UserMetadata["full_name"])

	assert.Equal(t, "idp_123", info.ID)
	assert.Equal(t, "John Doe", info.DisplayName)
	assert.True(t, info.EmailConfirmed)
}

func TestCreateUser_DuplicateEmailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg":"A user with this email address has already been registered"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-role-key")

	info, err := client.CreateUser(context.Background(), &idp.NewUser{Email: "dup@example.com", Password: "x"})

	assert.Error(t, err)
	assert.Nil(t, info)
	assert.Contains(t, err.Error(), "already been registered")
}

func TestDeleteUser(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-role-key")

	err := client.DeleteUser(context.Background(), "idp_123")

	assert.NoError(t, err)
	assert.Equal(t, "DELETE /admin/users/idp_123", gotPath)
}

func TestDeleteUser_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-role-key")

	err := client.DeleteUser(context.Background(), "idp_123")

	assert.Error(t, err)
}

func TestUpdateUser_EmailChangeStaysConfirmed(t *testing.T) {
	var gotBody adminUserBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(adminUserResponse{ID: "idp_123", Email: gotBody.Email})
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-role-key")

	email := "new@example.com"
	info, err := client.UpdateUser(context.Background(), "idp_123", &idp.UserUpdate{Email: &email})

	assert.NoError(t, err)
	assert.True(t, gotBody.EmailConfirm)
	assert.Equal(t, "new@example.com", info.Email)
}

func TestListUsers_Paginates(t *testing.T) {
	pagesServed := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		page := r.URL.Query().Get("page")

		var users []adminUserResponse
		if page == "1" {
			// A full page forces a second request
			for i := 0; i < 100; i++ {
				users = append(users, adminUserResponse{ID: "idp_page1"})
			}
		} else {
			users = []adminUserResponse{{ID: "idp_last"}}
		}
		json.NewEncoder(w).Encode(adminUserListResponse{Users: users})
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-role-key")

	users, err := client.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, pagesServed)
	assert.Len(t, users, 101)
	assert.Equal(t, "idp_last", users[100].ID)
}
