package admin

import (
	"encoding/json"
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
)

// StatusSource is what the status endpoint reports on.
type StatusSource interface {
	Status() agent.Status
}

type Server struct {
	src StatusSource
	log *log.Logger

	// AllowRemote exposes the endpoints beyond loopback.
	AllowRemote bool
}

func NewServer(src StatusSource, logger *log.Logger) *Server {
	return &Server{src: src, log: logger}
}

// Routes returns the admin router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loopbackOnly)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.status)
	})
	return r
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.src.Status())
}

func (s *Server) loopbackOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.AllowRemote && !isLoopbackRemote(r.RemoteAddr) {
			if s.log != nil {
				s.log.Printf("admin: rejected %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
			}
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isLoopbackRemote(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
