package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigforge/gigmatch/internal/db"
	"github.com/gigforge/gigmatch/internal/types"
)

func TestHandleListUsers_HidesPasswordHash(t *testing.T) {
	s, store := newTestServer(t)
	store.addUser(&db.User{Username: "alice", Email: "a@example.com", PasswordHash: "bcrypt-hash-value"})
	store.addUser(&db.User{Username: "bob", Email: "b@example.com", PasswordHash: "another-hash"})

	w := doRequest(t, s, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []types.User
	decodeJSON(t, w, &users)
	assert.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestHandleGetUser(t *testing.T) {
	s, store := newTestServer(t)
	user := store.addUser(&db.User{Username: "alice", Email: "a@example.com", Skills: []string{"react"}})

	w := doRequest(t, s, http.MethodGet, "/users/"+user.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got types.User
	decodeJSON(t, w, &got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []string{"react"}, got.Skills)
}

func TestHandleGetUser_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/users/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUpdateMe_PartialUpdate(t *testing.T) {
	s, store := newTestServer(t)
	user := store.addUser(&db.User{
		Username: "alice",
		Email:    "a@example.com",
		Bio:      "original bio",
		College:  "original college",
	})

	body := map[string]any{
		"bio":       "new bio",
		"skills":    []string{"react", "solidity"},
		"onboarded": true,
	}
	w := doRequest(t, s, http.MethodPut, "/users/me", authToken(t, s, user.ID), body)
	require.Equal(t, http.StatusOK, w.Code)

	stored := store.users[user.ID]
	assert.Equal(t, "new bio", stored.Bio)
	assert.Equal(t, []string{"react", "solidity"}, stored.Skills)
	assert.True(t, stored.Onboarded)
	// Fields not in the payload are untouched.
	assert.Equal(t, "original college", stored.College)
	assert.Equal(t, "alice", stored.Username)

	var got types.User
	decodeJSON(t, w, &got)
	assert.Equal(t, "new bio", got.Bio)
	assert.True(t, got.Onboarded)
}

func TestHandleUpdateMe_Unauthorized(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodPut, "/users/me", "", map[string]any{"bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleUpdateMe_InvalidBody(t *testing.T) {
	s, store := newTestServer(t)
	user := store.addUser(&db.User{Username: "alice", Email: "a@example.com"})

	w := doRequest(t, s, http.MethodPut, "/users/me", authToken(t, s, user.ID), "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteMe(t *testing.T) {
	s, store := newTestServer(t)
	user := store.addUser(&db.User{Username: "alice", Email: "a@example.com"})
	token := authToken(t, s, user.ID)

	w := doRequest(t, s, http.MethodDelete, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Deleted bool `json:"deleted"`
	}
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Success)
	assert.True(t, resp.Deleted)

	// The account is gone for other handlers too.
	w = doRequest(t, s, http.MethodGet, "/users/"+user.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteMe_AlreadyDeleted(t *testing.T) {
	s, store := newTestServer(t)
	user := store.addUser(&db.User{Username: "alice", Email: "a@example.com"})
	token := authToken(t, s, user.ID)
	delete(store.users, user.ID)

	w := doRequest(t, s, http.MethodDelete, "/users/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteMe_Unauthorized(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodDelete, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
