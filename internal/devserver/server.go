package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"kex/internal/platform/id"
	"kex/internal/platform/logger"
)

const sessionCookie = "session"

var levelLimits = map[string]int{
	"basic":        6,
	"intermediate": 8,
	"advanced":     10,
}

// Server is a local stand-in for the learning-path and auth backend.
type Server struct {
	router  chi.Router
	catalog *catalog
	users   *userStore
	log     *logger.Logger
}

type Options struct {
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	IDs        id.Generator
}

func New(f Fixtures, log *logger.Logger, opts Options) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.IDs == nil {
		opts.IDs = id.UUID{}
	}
	s := &Server{
		catalog: newCatalog(f.Topics),
		users:   newUserStore(opts.BcryptCost, opts.IDs),
		log:     log,
	}
	for _, u := range f.Users {
		if _, err := s.users.create(u.Username, u.Email, u.Password, u.Admin); err != nil {
			return nil, err
		}
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/learning-path/{topic}", s.handleLearningPath)
	r.Get("/summary/{topic}", s.handleSummary)

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)

		r.With(s.requireAdmin).Get("/admin/users", s.handleListUsers)
	})

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseLevel(r *http.Request) (string, bool) {
	level := strings.ToLower(r.URL.Query().Get("level"))
	if level == "" {
		level = "basic"
	}
	_, ok := levelLimits[level]
	return level, ok
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*TopicFixture, string, bool) {
	level, ok := parseLevel(r)
	if !ok {
		jsonError(w, "Invalid level.", http.StatusBadRequest)
		return nil, "", false
	}
	raw := chi.URLParam(r, "topic")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	topic, found := s.catalog.lookup(raw)
	if !found {
		jsonError(w, "Could not resolve topic '"+raw+"'", http.StatusNotFound)
		return nil, "", false
	}
	return topic, level, true
}

func summaryFor(t *TopicFixture, level string) string {
	if text, ok := t.Summaries[level]; ok && text != "" {
		return text
	}
	return "Summary not available at the " + level + " level."
}

func (s *Server) handleLearningPath(w http.ResponseWriter, r *http.Request) {
	topic, level, ok := s.resolve(w, r)
	if !ok {
		return
	}
	links := s.catalog.learningPath(topic, levelLimits[level])
	if len(links) == 0 {
		jsonError(w, "Failed to retrieve learning path for '"+topic.Name+"'", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"topic":   topic.Name,
		"level":   level,
		"summary": summaryFor(topic, level),
		"links":   links,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	topic, level, ok := s.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"topic":   topic.Name,
		"level":   level,
		"summary": summaryFor(topic, level),
	})
}

type authRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		jsonError(w, "Missing fields", http.StatusBadRequest)
		return
	}
	a, err := s.users.create(req.Username, req.Email, req.Password, false)
	if errors.Is(err, errUserExists) {
		jsonError(w, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		jsonError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	s.startSession(w, a)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered and logged in", "user": a.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	a, err := s.users.verify(req.Username, req.Password)
	if err != nil {
		jsonError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	s.startSession(w, a)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful", "user": a.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.users.endSession(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	a := currentAccount(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"username": a.Username,
		"email":    a.Email,
		"is_admin": a.Admin,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	accounts := s.users.list()
	out := make([]map[string]any, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, map[string]any{
			"id":       a.ID,
			"username": a.Username,
			"email":    a.Email,
			"is_admin": a.Admin,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) startSession(w http.ResponseWriter, a *account) {
	token := s.users.startSession(a)
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
