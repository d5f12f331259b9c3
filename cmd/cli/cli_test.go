package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records the last request and replies with a canned body
type fakeAPI struct {
	method, path, auth string
	body               map[string]string
	status             int
	reply              string
}

func (f *fakeAPI) serve(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.method, f.path, f.auth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		f.body = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&f.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.reply))
	}))
	t.Cleanup(srv.Close)

	prevURL, prevToken, prevOutput := apiURL, authToken, output
	apiURL, authToken, output = srv.URL, "tok", "text"
	t.Cleanup(func() { apiURL, authToken, output = prevURL, prevToken, prevOutput })
}

func TestListFriendRequests(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, reply: `{"success":true,"friendRequests":[{"id":"u-1","name":"Alice","image":null}]}`}
	api.serve(t)

	var out bytes.Buffer
	require.NoError(t, listFriendRequests(&out, "/api/v1/friend-requests", "Pending Friend Requests"))

	assert.Equal(t, http.MethodGet, api.method)
	assert.Equal(t, "/api/v1/friend-requests", api.path)
	assert.Equal(t, "Bearer tok", api.auth)
	assert.Contains(t, out.String(), "Pending Friend Requests (1)")
	assert.Contains(t, out.String(), "u-1")
	assert.Contains(t, out.String(), "Alice")
}

func TestListFriendRequestsEmpty(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, reply: `{"success":true,"friendRequests":[]}`}
	api.serve(t)

	var out bytes.Buffer
	require.NoError(t, listFriendRequests(&out, "/api/v1/friend-requests/outgoing", "Sent Friend Requests"))
	assert.Contains(t, out.String(), "No pending friend requests")
}

func TestSendFriendRequest(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, reply: `{"success":true,"message":"Friend request sent successfully"}`}
	api.serve(t)

	var out bytes.Buffer
	require.NoError(t, sendFriendRequest(&out, "u-2"))
	assert.Equal(t, http.MethodPost, api.method)
	assert.Equal(t, map[string]string{"requestTo": "u-2"}, api.body)
	assert.Equal(t, "✓ Friend request sent successfully\n", out.String())
}

func TestResolveFriendRequest(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, reply: `{"success":true,"message":"Friend request rejected successfully","status":"rejected"}`}
	api.serve(t)

	var out bytes.Buffer
	require.NoError(t, resolveFriendRequest(&out, "u-3", "Rejected"))
	assert.Equal(t, "/api/v1/friend-requests/resolve", api.path)
	assert.Equal(t, map[string]string{"requestBy": "u-3", "status": "Rejected"}, api.body)
	assert.Contains(t, out.String(), "rejected successfully")
}

func TestAPIErrorMessage(t *testing.T) {
	api := &fakeAPI{status: http.StatusBadRequest, reply: `{"success":false,"code":"CONFLICT","message":"Friend request already sent"}`}
	api.serve(t)

	err := sendFriendRequest(&bytes.Buffer{}, "u-2")
	require.Error(t, err)
	assert.Equal(t, "API error: Friend request already sent", err.Error())
}

func TestJSONOutputPassesBodyThrough(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, reply: `{"success":true,"friends":[]}`}
	api.serve(t)
	output = "json"

	var out bytes.Buffer
	require.NoError(t, listFriends(&out))
	assert.JSONEq(t, api.reply, out.String())
}

func TestLoginPrintsToken(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, reply: `{"success":true,"message":"Welcome back Ada","token":"jwt-123"}`}
	api.serve(t)

	var out bytes.Buffer
	require.NoError(t, login(&out, "ada@devfinds.test", "password123"))
	assert.Empty(t, api.auth)
	assert.Contains(t, out.String(), "export DEVFINDS_TOKEN=jwt-123")
}

func TestRequiresToken(t *testing.T) {
	assert.False(t, requiresToken(rootCmd))
	assert.False(t, requiresToken(loginCmd))
	assert.True(t, requiresToken(friendsCmd))
	assert.True(t, requiresToken(sendFriendRequestCmd))
}
