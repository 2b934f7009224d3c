// ABOUTME: Tests for the gateway client core and user operations
// ABOUTME: Covers credential attachment, error normalization, and decoding

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCreds is a static credential source for tests.
type fakeCreds struct {
	token     string
	sessionID string
}

func (f fakeCreds) Token() string     { return f.token }
func (f fakeCreds) SessionID() string { return f.sessionID }

func TestClient_AttachesCredentials(t *testing.T) {
	var gotAuth string
	var gotCookie *http.Cookie
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCookie, _ = r.Cookie("session_id")
		json.NewEncoder(w).Encode(map[string][]string{"organizations": {"finance"}})
	}))
	defer srv.Close()

	client := New(srv.URL, fakeCreds{token: "tok-123", sessionID: "sess-456"})
	_, err := client.ListOrganizations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	require.NotNil(t, gotCookie)
	assert.Equal(t, "sess-456", gotCookie.Value)
}

func TestClient_NoCredentials(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string][]string{"organizations": nil})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.ListOrganizations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ErrorBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Name already exists"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.CreateUser(context.Background(), CreateUserRequest{Name: "alice"})
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Name already exists", gwErr.Message)
	assert.Nil(t, gwErr.Cause)
}

func TestClient_ErrorStatusFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.ListUsers(context.Background(), "finance")
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "gateway returned status 500", gwErr.Message)
}

func TestClient_NetworkErrorNormalized(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, nil)
	_, err := client.ListOrganizations(context.Background())
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "contacting gateway", gwErr.Message)
	assert.NotNil(t, gwErr.Cause)
}

func TestClient_MalformedPayloadNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.ListUsers(context.Background(), "finance")
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "parsing response", gwErr.Message)
}

func TestListUsers_DecodesRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/users", r.URL.Path)
		assert.Equal(t, "finance", r.URL.Query().Get("organization"))
		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"name": "alice", "password": "pw1", "created_at": "2025-03-01T10:00:00", "modifications": 2},
				{"name": "bob", "password": "pw2", "created_at": "2025-03-02T11:00:00"},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	users, err := client.ListUsers(context.Background(), "finance")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
	assert.Equal(t, 2, users[0].Modifications)
	assert.Equal(t, 0, users[1].Modifications)
}

func TestCreateUser_Requires201(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "finance", req.Organization)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(UserRecord{Name: req.Name})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	created, err := client.CreateUser(context.Background(), CreateUserRequest{
		Name: "carol", Password: "pw", Text: "training", Organization: "finance",
	})
	require.NoError(t, err)
	assert.Equal(t, "carol", created.Name)
}

func TestDeleteUser_ScopedToOrganization(t *testing.T) {
	var gotPath, gotOrg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOrg = r.URL.Query().Get("organization")
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	require.NoError(t, client.DeleteUser(context.Background(), "alice", "finance"))
	assert.Equal(t, "/api/admin/delete-user/alice", gotPath)
	assert.Equal(t, "finance", gotOrg)
}

func TestGetEmbeddingStats_SplitsTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]OrgStats{
			"finance":       {TotalSizeMB: 1.5, TotalEmbeddings: 3},
			"manufacturing": {TotalSizeMB: 2.5, TotalEmbeddings: 5},
			"total":         {TotalSizeMB: 4.0, TotalEmbeddings: 8},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	stats, err := client.GetEmbeddingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Total.TotalEmbeddings)
	assert.NotContains(t, stats.Organizations, "total")
	assert.Equal(t, []string{"finance", "manufacturing"}, stats.OrgNames())
}
