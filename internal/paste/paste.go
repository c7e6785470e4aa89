package paste

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/tombowditch/pasty-go/internal/config"
)

// Paste is a stored paste. TokenHash is never sent to clients.
type Paste struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Created   int64          `json:"created"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	TokenHash string         `json:"tokenHash"`
}

// View is the public representation of a paste.
type View struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Created  int64          `json:"created"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Created is the response to a successful create.
type Created struct {
	View
	ModificationToken string `json:"modificationToken"`
}

// View strips the stored token hash.
func (p *Paste) View() View {
	return View{ID: p.ID, Content: p.Content, Created: p.Created, Metadata: p.Metadata}
}

// HashToken returns the hex SHA-256 digest stored in place of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CheckToken reports whether token is the paste's modification token.
func (p *Paste) CheckToken(token string) bool {
	if token == "" || p.TokenHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(p.TokenHash)) == 1
}

// ValidationError holds validation failure details.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks if the paste content is acceptable.
// Returns nil if valid, or a *ValidationError with appropriate status code and message.
func Validate(content []byte) error {
	if len(content) == 0 {
		return &ValidationError{
			StatusCode: http.StatusBadRequest,
			Message:    "missing paste content",
		}
	}

	if len(content) > config.MaxPayloadSize {
		return &ValidationError{
			StatusCode: http.StatusRequestEntityTooLarge,
			Message:    "payload too big",
		}
	}

	s := string(content)
	for _, phrase := range config.BlacklistedPhrases {
		if strings.Contains(s, phrase) {
			return &ValidationError{
				StatusCode: http.StatusForbidden,
				Message:    "blacklisted phrases, antispam system",
			}
		}
	}

	return nil
}
