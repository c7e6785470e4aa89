package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/tombowditch/pasty-go/internal/config"
	"github.com/tombowditch/pasty-go/internal/paste"
	"github.com/tombowditch/pasty-go/internal/ratelimit"
	"github.com/tombowditch/pasty-go/internal/store"
	"github.com/tombowditch/pasty-go/internal/util/randutil"
)

// maxBodySize leaves room for JSON escaping around MaxPayloadSize of content.
const maxBodySize = 2*config.MaxPayloadSize + 64<<10

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	cfg          config.Server
	readLimiter  ratelimit.Limiter
	writeLimiter ratelimit.Limiter
	now          func() time.Time
	newToken     func(n int) (string, error)
}

// Option configures the handler.
type Option func(*Server)

// WithConfig sets the server configuration.
func WithConfig(cfg config.Server) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithLimiters sets the limiters for read and write requests.
func WithLimiters(read, write ratelimit.Limiter) Option {
	return func(s *Server) {
		s.readLimiter = read
		s.writeLimiter = write
	}
}

// NewHandler creates an HTTP handler serving the pasty v2 API.
func NewHandler(s store.Store, opts ...Option) http.Handler {
	srv := &Server{
		store:        s,
		cfg:          config.Default(),
		readLimiter:  ratelimit.Nop{},
		writeLimiter: ratelimit.Nop{},
		now:          time.Now,
		newToken:     randutil.Token,
	}
	for _, opt := range opts {
		opt(srv)
	}

	r := httprouter.New()
	r.GET("/", srv.indexPage)
	r.GET("/raw/:id", srv.rawPaste)
	r.GET("/api/v2/info", srv.info)
	r.POST("/api/v2/pastes", srv.createPaste)
	r.GET("/api/v2/pastes/:id", srv.getPaste)
	r.PATCH("/api/v2/pastes/:id", srv.updatePaste)
	r.DELETE("/api/v2/pastes/:id", srv.deletePaste)

	return r
}

type infoResponse struct {
	ModificationTokens bool   `json:"modificationTokens"`
	PasteLifetime      int64  `json:"pasteLifetime"`
	Reports            bool   `json:"reports"`
	Version            string `json:"version"`
}

type createRequest struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

type updateRequest struct {
	Content  *string        `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) indexPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(`pasty-compatible paste server

api: ` + s.cfg.BaseURL + `api/v2/

example
=======

~> echo "hello" | nc <host> 9999
` + s.cfg.BaseURL + `raw/yourpaste
token: <modification token>

~> pasty --url ` + s.cfg.BaseURL + ` create notes.txt
`))
}

func (s *Server) info(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lifetime := int64(-1)
	if s.cfg.PasteTTL > 0 {
		lifetime = int64(s.cfg.PasteTTL / time.Second)
	}
	writeJSON(w, http.StatusOK, infoResponse{
		ModificationTokens: true,
		PasteLifetime:      lifetime,
		Reports:            false,
		Version:            config.Version,
	})
}

func (s *Server) rawPaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.readLimiter.Allow(s.clientIP(r)) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limit exceeded"))
		return
	}

	p, err := s.load(ps.ByName("id"))
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("not found or expired"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("storage error"))
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(p.Content))
}

func (s *Server) getPaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.readLimiter.Allow(s.clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	p, err := s.load(ps.ByName("id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p.View())
}

func (s *Server) createPaste(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	defer r.Body.Close()

	cip := s.clientIP(r)
	if !s.writeLimiter.Allow(cip) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req createRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validate(w, []byte(req.Content)) {
		return
	}

	token, err := s.newToken(config.TokenLength)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not generate modification token")
		return
	}
	p := &paste.Paste{
		Content:   req.Content,
		Created:   s.now().Unix(),
		Metadata:  req.Metadata,
		TokenHash: paste.HashToken(token),
	}

	// Generate unique identifier and store atomically
	for tried := 0; tried < 10; tried++ {
		p.ID = randutil.RandString(config.IDLength)
		ok, err := s.store.Create(p)
		if err != nil {
			slog.Error("store create failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not store paste")
			return
		}
		if ok {
			slog.Info("created paste via HTTP", "id", p.ID, "remote", cip)
			writeJSON(w, http.StatusCreated, paste.Created{View: p.View(), ModificationToken: token})
			return
		}
		// Collision, try again
		slog.Debug("identifier collision, retrying", "id", p.ID)
	}

	slog.Error("could not generate unique identifier after retries")
	writeError(w, http.StatusInternalServerError, "could not generate identifier")
}

func (s *Server) updatePaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	defer r.Body.Close()

	if !s.writeLimiter.Allow(s.clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	p, ok := s.authorize(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content != nil {
		if !validate(w, []byte(*req.Content)) {
			return
		}
		p.Content = *req.Content
	}
	if len(req.Metadata) > 0 {
		merged := make(map[string]any, len(p.Metadata)+len(req.Metadata))
		for k, v := range p.Metadata {
			merged[k] = v
		}
		// A null value removes the key.
		for k, v := range req.Metadata {
			if v == nil {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		p.Metadata = merged
	}

	if err := s.store.Update(p); err != nil {
		s.storeError(w, err)
		return
	}
	slog.Info("updated paste", "id", p.ID)
	writeJSON(w, http.StatusOK, p.View())
}

func (s *Server) deletePaste(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.writeLimiter.Allow(s.clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	p, ok := s.authorize(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	if err := s.store.Delete(p.ID); err != nil {
		s.storeError(w, err)
		return
	}
	slog.Info("deleted paste", "id", p.ID)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) load(id string) (*paste.Paste, error) {
	p, err := s.store.Get(id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("store get failed", "error", err, "id", id)
	}
	return p, err
}

// authorize loads the paste and checks the bearer token against it.
// It writes the error response itself when it returns false.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, id string) (*paste.Paste, bool) {
	p, err := s.load(id)
	if err != nil {
		s.storeError(w, err)
		return nil, false
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || !p.CheckToken(strings.TrimSpace(token)) {
		writeError(w, http.StatusUnauthorized, "invalid modification token")
		return nil, false
	}
	return p, true
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "paste not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "storage error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too big")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func validate(w http.ResponseWriter, content []byte) bool {
	err := paste.Validate(content)
	if err == nil {
		return true
	}
	var ve *paste.ValidationError
	if errors.As(err, &ve) {
		writeError(w, ve.StatusCode, ve.Message)
	} else {
		writeError(w, http.StatusBadRequest, err.Error())
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

// clientIP extracts the client IP. Forwarding headers are only honoured
// when TrustProxy is set.
func (s *Server) clientIP(r *http.Request) string {
	if s.cfg.TrustProxy {
		// X-Forwarded-For can be comma-separated list: client, proxy1, proxy2
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if idx := strings.Index(xff, ","); idx != -1 {
				return strings.TrimSpace(xff[:idx])
			}
			return strings.TrimSpace(xff)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
