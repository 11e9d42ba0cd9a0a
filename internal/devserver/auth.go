package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"kex/internal/platform/id"
)

var (
	errUserExists     = errors.New("user already exists")
	errBadCredentials = errors.New("invalid username or password")
)

type account struct {
	ID       int
	Username string
	Email    string
	Hash     []byte
	Admin    bool
}

// userStore keeps accounts and live sessions in memory.
type userStore struct {
	mu       sync.RWMutex
	cost     int
	users    map[string]*account
	sessions map[string]string
	nextID   int
	ids      id.Generator
}

func newUserStore(cost int, ids id.Generator) *userStore {
	return &userStore{
		cost:     cost,
		users:    map[string]*account{},
		sessions: map[string]string{},
		nextID:   1,
		ids:      ids,
	}
}

func (s *userStore) create(username, email, password string, admin bool) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	key := strings.ToLower(username)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return nil, errUserExists
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, errUserExists
		}
	}
	a := &account{ID: s.nextID, Username: username, Email: email, Hash: hash, Admin: admin}
	s.nextID++
	s.users[key] = a
	return a, nil
}

func (s *userStore) verify(username, password string) (*account, error) {
	s.mu.RLock()
	a, ok := s.users[strings.ToLower(username)]
	s.mu.RUnlock()
	if !ok {
		return nil, errBadCredentials
	}
	if bcrypt.CompareHashAndPassword(a.Hash, []byte(password)) != nil {
		return nil, errBadCredentials
	}
	return a, nil
}

func (s *userStore) startSession(a *account) string {
	token := s.ids.New()
	s.mu.Lock()
	s.sessions[token] = strings.ToLower(a.Username)
	s.mu.Unlock()
	return token
}

func (s *userStore) endSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *userStore) session(token string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	a, ok := s.users[key]
	return a, ok
}

func (s *userStore) list() []account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]account, 0, len(s.users))
	for _, a := range s.users {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
