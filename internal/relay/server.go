package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"wtime/internal/domain"
	"wtime/internal/logger"
)

// MaxRequestBytes caps a POST /sms body.
const MaxRequestBytes = 64 << 10

// Message is one accepted SMS request.
type Message struct {
	ID         string    `json:"id"`
	To         []string  `json:"to"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Server is an in-memory SMS gateway. It never delivers anything; it keeps
// what it was asked to send so a developer can inspect it.
type Server struct {
	log *logger.Logger
	now func() time.Time

	mu     sync.RWMutex
	outbox []Message
}

// NewServer returns an empty gateway.
func NewServer(log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{log: log.With("component", "smsrelay"), now: time.Now}
}

// Router wires the gateway routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/sms", s.send).Methods(http.MethodPost)
	r.HandleFunc("/sms", s.list).Methods(http.MethodGet)
	r.Use(s.accessLog)
	return r
}

// Outbox returns a copy of the accepted messages, oldest first.
func (s *Server) Outbox() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.outbox))
	for i, m := range s.outbox {
		m.To = slices.Clone(m.To)
		out[i] = m
	}
	return out
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	_, _ = fmt.Fprintln(w, "OK")
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	var req domain.SMSRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	to := slices.DeleteFunc(req.To, func(p string) bool { return strings.TrimSpace(p) == "" })
	if len(to) == 0 || strings.TrimSpace(req.Body) == "" {
		http.Error(w, "to and body are required", http.StatusBadRequest)
		return
	}

	msg := Message{ID: uuid.NewString(), To: to, Body: req.Body, ReceivedAt: s.now().UTC()}
	s.mu.Lock()
	s.outbox = append(s.outbox, msg)
	s.mu.Unlock()

	s.log.Info("sms accepted", "id", msg.ID, "recipients", len(to), "message", req.Body)
	writeJSON(w, http.StatusAccepted, struct {
		ID string `json:"id"`
	}{ID: msg.ID})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Outbox())
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration", s.now().Sub(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
