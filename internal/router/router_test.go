package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/blood-donor-network/internal/config"
	"github.com/iliyamo/blood-donor-network/internal/database"
	"github.com/iliyamo/blood-donor-network/internal/model"
	"github.com/iliyamo/blood-donor-network/internal/repository"
	"github.com/iliyamo/blood-donor-network/internal/session"
)

// client is a browser-like caller: it keeps cookies between requests.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newServer(t *testing.T, staticDir string) *client {
	t.Helper()
	db, d, err := database.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.CreateSchema(context.Background(), db, d,
		repository.SeedAdmin{Username: "admin", Password: "password"}))

	e := New(Deps{
		DB:          db,
		Dialect:     d,
		Sessions:    session.NewMemoryManager(time.Hour),
		Cookies:     session.NewCookieCodec("connect.sid", "integration-secret", false),
		Cache:       config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, Prefix: "test"},
		CORSOrigins: []string{"*"},
		StaticDir:   staticDir,
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) call(method, path, body string) (int, string) {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, string(b)
}

func (c *client) donors(query string) []model.Donor {
	c.t.Helper()
	code, body := c.call(http.MethodGet, "/api/blood-donors"+query, "")
	require.Equal(c.t, http.StatusOK, code)
	var out []model.Donor
	require.NoError(c.t, json.Unmarshal([]byte(body), &out))
	return out
}

func (c *client) register(name, group, location string) {
	c.t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name, "blood_group": group, "phone": "555-0100", "location": location})
	code, resp := c.call(http.MethodPost, "/api/blood-donors", string(body))
	require.Equal(c.t, http.StatusOK, code, resp)
}

func (c *client) login(password string) string {
	c.t.Helper()
	_, body := c.call(http.MethodPost, "/admin/login", `{"username":"admin","password":"`+password+`"}`)
	return body
}

func (c *client) authenticated() bool {
	c.t.Helper()
	_, body := c.call(http.MethodGet, "/api/check-auth", "")
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(c.t, json.Unmarshal([]byte(body), &out))
	return out.Authenticated
}

func TestHealthz(t *testing.T) {
	c := newServer(t, "")
	code, body := c.call(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestListingIsSortedAndFiltered(t *testing.T) {
	c := newServer(t, "")
	c.register("bob", "O+", "Delhi")
	c.register("Alice", "A-", "Dehli")
	c.register("carol", "O+", "Mumbai")

	var names []string
	for _, d := range c.donors("") {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Alice", "bob", "carol"}, names)

	for _, d := range c.donors("?blood_group=O%2B") {
		assert.Equal(t, "O+", d.BloodGroup)
	}
	assert.Len(t, c.donors("?blood_group=O%2B"), 2)

	byLoc := c.donors("?location=DE")
	require.Len(t, byLoc, 2)
	assert.Equal(t, "Alice", byLoc[0].Name)
	assert.Equal(t, "bob", byLoc[1].Name)
}

func TestCreateValidation(t *testing.T) {
	c := newServer(t, "")

	code, body := c.call(http.MethodPost, "/api/blood-donors", `{"name":"Asha","blood_group":"O+","location":"Delhi"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"All fields are required"}`, body)
	assert.Empty(t, c.donors(""))

	c.register("Asha", "O+", "Delhi")
	assert.Len(t, c.donors(""), 1)
}

func TestLoginFlow(t *testing.T) {
	c := newServer(t, "")
	assert.False(t, c.authenticated())

	assert.JSONEq(t, `{"success":false}`, c.login("wrong"))
	assert.False(t, c.authenticated())

	assert.JSONEq(t, `{"success":true}`, c.login("password"))
	assert.True(t, c.authenticated())
}

func TestLoginAlias(t *testing.T) {
	c := newServer(t, "")
	_, body := c.call(http.MethodPost, "/api/login", `{"username":"admin","password":"password"}`)
	assert.JSONEq(t, `{"success":true}`, body)
	assert.True(t, c.authenticated())
}

func TestDeleteRequiresAdmin(t *testing.T) {
	c := newServer(t, "")
	c.register("Asha", "O+", "Delhi")
	id := c.donors("")[0].ID
	path := "/api/blood-donors/" + jsonID(id)

	code, body := c.call(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, body)
	assert.Len(t, c.donors(""), 1)

	// a failed login does not open the gate
	c.login("wrong")
	code, _ = c.call(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestDeleteAsAdmin(t *testing.T) {
	c := newServer(t, "")
	c.register("Asha", "O+", "Delhi")
	id := c.donors("")[0].ID
	c.login("password")

	code, body := c.call(http.MethodDelete, "/api/blood-donors/999", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"success":false,"message":"Donor not found"}`, body)
	assert.Len(t, c.donors(""), 1)

	code, body = c.call(http.MethodDelete, "/api/blood-donors/"+jsonID(id), "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"message":"Deleted successfully"}`, body)
	assert.Empty(t, c.donors(""))
}

func TestLogoutClosesGate(t *testing.T) {
	c := newServer(t, "")
	c.register("Asha", "O+", "Delhi")
	id := c.donors("")[0].ID
	c.login("password")
	require.True(t, c.authenticated())

	code, body := c.call(http.MethodPost, "/api/logout", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Logged out"}`, body)
	assert.False(t, c.authenticated())

	code, _ = c.call(http.MethodDelete, "/api/blood-donors/"+jsonID(id), "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Len(t, c.donors(""), 1)
}

func TestSessionsAreIndependent(t *testing.T) {
	admin := newServer(t, "")
	other := &client{t: t, base: admin.base, http: &http.Client{}}

	admin.login("password")
	assert.True(t, admin.authenticated())
	assert.False(t, other.authenticated())
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>donors</h1>"), 0o644))

	c := newServer(t, dir)
	code, body := c.call(http.MethodGet, "/index.html", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "donors")

	// API routes still win over the static handler
	code, _ = c.call(http.MethodGet, "/api/check-auth", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestMissingStaticDirIsIgnored(t *testing.T) {
	c := newServer(t, filepath.Join(t.TempDir(), "nope"))
	code, _ := c.call(http.MethodGet, "/index.html", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
