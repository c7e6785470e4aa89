package tcpserver

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/tombowditch/pasty-go/internal/config"
	"github.com/tombowditch/pasty-go/internal/paste"
	"github.com/tombowditch/pasty-go/internal/ratelimit"
	"github.com/tombowditch/pasty-go/internal/store"
	"github.com/tombowditch/pasty-go/internal/util/randutil"
)

// Server accepts pastes piped over plain TCP (netcat) and answers with
// the paste URL and its modification token.
type Server struct {
	store    store.Store
	baseURL  string
	limiter  ratelimit.Limiter
	now      func() time.Time
	newToken func(n int) (string, error)
}

// New creates a new TCP server with the given store. Paste links are
// built from baseURL.
func New(s store.Store, baseURL string, limiter ratelimit.Limiter) *Server {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	return &Server{store: s, baseURL: baseURL, limiter: limiter, now: time.Now, newToken: randutil.Token}
}

// Serve starts listening on the given address and handles connections.
// This function blocks until the listener fails.
func (s *Server) Serve(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(l)
}

func (s *Server) serve(l net.Listener) error {
	defer l.Close()

	slog.Info("tcp server listening", "addr", l.Addr().String())

	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			slog.Error("error accepting connection", "error", err)
			continue
		}
		go s.handleRequest(conn)
	}
}

func (s *Server) handleRequest(conn net.Conn) {
	defer conn.Close()

	msg := make([]byte, 0)
	buf := make([]byte, 1024)
	bytesRead := 0

	// Check rate limit before reading
	cip, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		cip = conn.RemoteAddr().String()
	}
	if !s.limiter.Allow(cip) {
		slog.Warn("rate limit exceeded", "ip", cip)
		conn.Write([]byte("rate limit exceeded\r\n"))
		return
	}

	conn.SetReadDeadline(time.Now().Add(time.Second * 5))

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); err != io.EOF && (!ok || !netErr.Timeout()) {
				slog.Error("read error", "error", err, "ip", cip)
				conn.Write([]byte("read err\r\n"))
				return
			}
			break
		}

		bytesRead += n

		if bytesRead > config.MaxPayloadSize {
			conn.Write([]byte("payload too big\r\n"))
			return
		}

		msg = append(msg, buf[:n]...)

		conn.SetReadDeadline(time.Now().Add(time.Second * 2))
	}

	if err := paste.Validate(msg); err != nil {
		var ve *paste.ValidationError
		if errors.As(err, &ve) {
			conn.Write([]byte(strings.ReplaceAll(ve.Message, "\n", "\r\n") + "\r\n"))
		} else {
			conn.Write([]byte("error\r\n"))
		}
		return
	}

	token, err := s.newToken(config.TokenLength)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		conn.Write([]byte("error\r\n"))
		return
	}
	p := &paste.Paste{
		Content:   string(msg),
		Created:   s.now().Unix(),
		TokenHash: paste.HashToken(token),
	}

	// Generate unique identifier and store atomically
	for tried := 0; tried < 10; tried++ {
		p.ID = randutil.RandString(config.IDLength)
		ok, err := s.store.Create(p)
		if err != nil {
			slog.Error("store create failed", "error", err)
			conn.Write([]byte("error, could not store paste\r\n"))
			return
		}
		if ok {
			slog.Info("created paste via TCP", "id", p.ID, "remote", cip)
			conn.Write([]byte(s.baseURL + "raw/" + p.ID + "\r\ntoken: " + token + "\r\n"))
			return
		}
		// Collision, try again
		slog.Debug("identifier collision, retrying", "id", p.ID)
	}

	slog.Error("could not generate unique identifier after retries")
	conn.Write([]byte("error\r\n"))
}
