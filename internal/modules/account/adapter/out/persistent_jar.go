package out

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"kex/internal/platform/kv"
	"kex/internal/platform/logger"
	"kex/internal/platform/slug"
)

// PersistentJar is a cookie jar whose cookies outlive the process. Cookies
// are saved per host so a login from one CLI call is seen by the next.
type PersistentJar struct {
	mu     sync.Mutex
	jar    *cookiejar.Jar
	store  *kv.Store
	loaded map[string]bool
	log    *logger.Logger
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewPersistentJar(store *kv.Store, log *logger.Logger) (*PersistentJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PersistentJar{jar: jar, store: store, loaded: map[string]bool{}, log: log}, nil
}

var _ http.CookieJar = (*PersistentJar)(nil)

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.loadLocked(u)
	j.jar.SetCookies(u, cookies)
	j.saveLocked(u)
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.loadLocked(u)
	return j.jar.Cookies(u)
}

func hostKey(u *url.URL) string {
	return "cookies-" + slug.Make(u.Host)
}

func hostRoot(u *url.URL) *url.URL {
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
}

func (j *PersistentJar) loadLocked(u *url.URL) {
	key := hostKey(u)
	if j.loaded[key] {
		return
	}
	j.loaded[key] = true
	raw, ok, err := j.store.Get(key)
	if err != nil {
		j.log.Warn("load cookies", "host", u.Host, "error", err)
		return
	}
	if !ok {
		return
	}
	var stored []storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		j.log.Warn("corrupted cookie file", "host", u.Host, "error", err)
		return
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	j.jar.SetCookies(hostRoot(u), cookies)
}

func (j *PersistentJar) saveLocked(u *url.URL) {
	key := hostKey(u)
	current := j.jar.Cookies(hostRoot(u))
	if len(current) == 0 {
		if err := j.store.Delete(key); err != nil {
			j.log.Warn("drop cookies", "host", u.Host, "error", err)
		}
		return
	}
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		j.log.Warn("encode cookies", "host", u.Host, "error", err)
		return
	}
	if err := j.store.Put(key, raw); err != nil {
		j.log.Warn("save cookies", "host", u.Host, "error", err)
	}
}
