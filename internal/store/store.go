package store

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tombowditch/pasty-go/internal/paste"
)

// ErrNotFound is returned when a paste doesn't exist or has expired.
var ErrNotFound = errors.New("paste not found")

// Store defines the interface for paste storage operations.
type Store interface {
	// Get retrieves a paste by ID. Returns ErrNotFound if it doesn't exist.
	Get(id string) (*paste.Paste, error)
	// Create attempts to store a new paste under p.ID.
	// Returns true if created, false if the ID already exists (collision).
	Create(p *paste.Paste) (bool, error)
	// Update overwrites an existing paste, keeping its expiry.
	// Returns ErrNotFound if it doesn't exist.
	Update(p *paste.Paste) error
	// Delete removes a paste. Returns ErrNotFound if it doesn't exist.
	Delete(id string) error
}

// ParseRedisURI parses a Redis URI in the form "host:port" and returns host and port separately.
// This is needed because the rate limiter package takes host and port as separate config fields.
func ParseRedisURI(uri string) (host string, port int) {
	host = "localhost"
	port = 6379

	if uri == "" {
		return
	}

	parts := strings.Split(uri, ":")
	if len(parts) >= 1 && parts[0] != "" {
		host = parts[0]
	}
	if len(parts) >= 2 {
		if p, err := strconv.Atoi(parts[1]); err == nil {
			port = p
		}
	}
	return
}
