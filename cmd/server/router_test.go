package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/colabnow/internal/cache"
	"github.com/thereayou/colabnow/internal/config"
	"github.com/thereayou/colabnow/internal/database/dbtest"
	"github.com/thereayou/colabnow/internal/validation"
	"github.com/thereayou/colabnow/internal/websocket"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	cfg.ListingsPerPage = 2

	router := gin.New()
	APIEndpoints(router, NewHandlers(cfg, dbtest.New(t), cache.NewMemoryBlacklist(), websocket.NewHub()))
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	e, ok := decode(t, w)["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return e["code"].(string)
}

func (a *testAPI) register(username string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", "", gin.H{
		"username":  username,
		"email":     username + "@example.edu",
		"major":     "CS",
		"password":  "password123",
		"password2": "password123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(a.t, w)["token"].(string)
}

func (a *testAPI) createListing(token, title, tags string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/listings", token, gin.H{
		"title": title,
		"body":  "looking for teammates",
		"tags":  tags,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(a.t, w)["id"].(string)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("alice")

	w := api.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.edu", decode(t, w)["email"])

	w = api.do(http.MethodPost, "/auth/login", "", gin.H{"email": "alice@example.edu", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))

	w = api.do(http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterErrors(t *testing.T) {
	api := newTestAPI(t)
	api.register("alice")

	w := api.do(http.MethodPost, "/auth/register", "", gin.H{
		"username":  "alice",
		"email":     "new@example.edu",
		"password":  "password123",
		"password2": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "USERNAME_TAKEN", errorCode(t, w))

	w = api.do(http.MethodPost, "/auth/register", "", gin.H{
		"username": "bob",
		"email":    "bob-at-example",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

func TestListingLifecycle(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	bob := api.register("bob")

	id := api.createListing(alice, "Web scraper", "#python #web")
	api.createListing(alice, "Classifier", "#python #ml")

	w := api.do(http.MethodGet, "/api/v1/listings?tags=%23python%20%23ml", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	items := page["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Classifier", items[0].(map[string]interface{})["title"])
	assert.Nil(t, page["next_page"])
	assert.Nil(t, page["prev_page"])

	w = api.do(http.MethodGet, "/api/v1/listings?q=scrap", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	w = api.do(http.MethodPost, "/api/v1/listings/"+id+"/join", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	perms := decode(t, w)["permissions"].(map[string]interface{})
	assert.Equal(t, true, perms["is_member"])
	assert.Equal(t, false, perms["can_complete"])

	w = api.do(http.MethodPost, "/api/v1/listings/"+id+"/leave", alice, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "OWNER_CANNOT_LEAVE", errorCode(t, w))

	w = api.do(http.MethodPost, "/api/v1/listings/"+id+"/complete", bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/api/v1/listings/"+id+"/complete", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["is_complete"])

	w = api.do(http.MethodGet, "/api/v1/listings?tags=%23web", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])

	w = api.do(http.MethodGet, "/api/v1/users/bob/memberships", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	w = api.do(http.MethodDelete, "/api/v1/listings/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodDelete, "/api/v1/listings/"+id, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/api/v1/listings/"+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LISTING_NOT_FOUND", errorCode(t, w))

	w = api.do(http.MethodGet, "/api/v1/listings/not-a-uuid", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfilePages(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	for _, title := range []string{"one", "two", "three"} {
		api.createListing(alice, title, "#demo")
	}

	w := api.do(http.MethodGet, "/api/v1/users/alice?page=1&tags=%23DEMO", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "#demo", body["tags"])
	listings := body["listings"].(map[string]interface{})
	assert.Len(t, listings["items"], 2)
	assert.EqualValues(t, 2, listings["next_page"])
	assert.Nil(t, listings["prev_page"])

	w = api.do(http.MethodGet, "/api/v1/users/nobody", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessagingFlow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice")
	bob := api.register("bob")

	for _, body := range []string{"hi", "free tomorrow?"} {
		w := api.do(http.MethodPost, "/api/v1/users/bob/messages", alice, gin.H{"body": body})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := api.do(http.MethodPost, "/api/v1/users/nobody/messages", alice, gin.H{"body": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/v1/messages/unread", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])

	w = api.do(http.MethodGet, "/api/v1/notifications?since=0", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "unread_message_count", events[0]["name"])
	assert.EqualValues(t, 2, events[0]["data"])

	w = api.do(http.MethodGet, "/api/v1/messages", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "free tomorrow?", items[0].(map[string]interface{})["body"])

	w = api.do(http.MethodGet, "/api/v1/messages/unread", bob, nil)
	assert.EqualValues(t, 0, decode(t, w)["count"])

	w = api.do(http.MethodGet, "/api/v1/notifications?since=abc", bob, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
