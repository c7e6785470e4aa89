package paste

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombowditch/pasty-go/internal/config"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		status  int
	}{
		{name: "ok", content: []byte("hello")},
		{name: "empty", content: nil, status: http.StatusBadRequest},
		{name: "too big", content: []byte(strings.Repeat("a", config.MaxPayloadSize+1)), status: http.StatusRequestEntityTooLarge},
		{name: "blacklisted", content: []byte("x " + config.BlacklistedPhrases[0] + " y"), status: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.content)
			if tt.status == 0 {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.status, ve.StatusCode)
		})
	}
}

func TestCheckToken(t *testing.T) {
	p := &Paste{ID: "abc", TokenHash: HashToken("secret")}

	assert.True(t, p.CheckToken("secret"))
	assert.False(t, p.CheckToken("other"))
	assert.False(t, p.CheckToken(""))
	assert.False(t, (&Paste{}).CheckToken("secret"))
}

func TestViewOmitsTokenHash(t *testing.T) {
	p := &Paste{ID: "abc", Content: "hi", Created: 42, TokenHash: HashToken("secret")}
	assert.Equal(t, View{ID: "abc", Content: "hi", Created: 42}, p.View())
}
