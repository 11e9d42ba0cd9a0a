package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"kex/internal/platform/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	f, err := DefaultFixtures()
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	srv, err := New(f, logger.Nop(), Options{BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, client *http.Client, url string, into any) int {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestLearningPathSlicesByLevel(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var basic struct {
		Topic string   `json:"topic"`
		Links []string `json:"links"`
	}
	if code := getJSON(t, ts.Client(), ts.URL+"/learning-path/golang?level=basic", &basic); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if basic.Topic != "Go (programming language)" {
		t.Fatalf("expected canonical topic, got %q", basic.Topic)
	}
	if len(basic.Links) != 6 {
		t.Fatalf("expected 6 links at basic, got %d", len(basic.Links))
	}

	var advanced struct {
		Links []string `json:"links"`
	}
	getJSON(t, ts.Client(), ts.URL+"/learning-path/GO?level=Advanced", &advanced)
	if len(advanced.Links) != 10 {
		t.Fatalf("expected 10 links at advanced, got %d", len(advanced.Links))
	}
	for _, link := range advanced.Links {
		if link == "Go (programming language)" {
			t.Fatalf("learning path must not contain its own topic")
		}
	}
}

func TestLearningPathErrors(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var body struct {
		Error string `json:"error"`
	}
	if code := getJSON(t, ts.Client(), ts.URL+"/learning-path/go?level=expert", &body); code != http.StatusBadRequest || body.Error != "Invalid level." {
		t.Fatalf("unexpected invalid level response %d %q", code, body.Error)
	}
	if code := getJSON(t, ts.Client(), ts.URL+"/summary/Zzzz", &body); code != http.StatusNotFound || body.Error != "Could not resolve topic 'Zzzz'" {
		t.Fatalf("unexpected unknown topic response %d %q", code, body.Error)
	}
	if code := getJSON(t, ts.Client(), ts.URL+"/learning-path/Rob%20Pike", &body); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a topic without links, got %d", code)
	}
}

func TestSummaryFallsBackWhenLevelMissing(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var body struct {
		Summary string `json:"summary"`
	}
	getJSON(t, ts.Client(), ts.URL+"/summary/compiler?level=advanced", &body)
	if !strings.Contains(strings.ToLower(body.Summary), "not available") {
		t.Fatalf("expected a not-available summary, got %q", body.Summary)
	}
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	if code := getJSON(t, client, ts.URL+"/me", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", code)
	}

	post := func(path, body string) int {
		resp, err := client.Post(ts.URL+path, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post %s: %v", path, err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := post("/login", `{"username":"reader","password":"wrong"}`); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", code)
	}
	if code := post("/register", `{"username":"reader","email":"x@y.z","password":"pw"}`); code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate user, got %d", code)
	}
	if code := post("/login", `{"username":"reader","password":"reader"}`); code != http.StatusOK {
		t.Fatalf("login failed with %d", code)
	}
	var me struct {
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if code := getJSON(t, client, ts.URL+"/me", &me); code != http.StatusOK || me.Username != "reader" || me.IsAdmin {
		t.Fatalf("unexpected me %d %+v", code, me)
	}
	if code := getJSON(t, client, ts.URL+"/admin/users", nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", code)
	}
	if code := post("/logout", ``); code != http.StatusOK {
		t.Fatalf("logout failed with %d", code)
	}
	if code := getJSON(t, client, ts.URL+"/me", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", code)
	}
}

func TestParseFixturesRejectsDuplicates(t *testing.T) {
	t.Parallel()
	_, err := ParseFixtures([]byte("topics:\n  - name: Go\n  - name: go\n"))
	if err == nil {
		t.Fatalf("expected duplicate topic error")
	}
}
