package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombowditch/pasty-go/internal/paste"
	"github.com/tombowditch/pasty-go/internal/util/randutil"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	id := "test" + randutil.RandString(8)

	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	p := &paste.Paste{ID: id, Content: "hello", Created: 1700000000, TokenHash: paste.HashToken("tok")}
	ok, err := s.Create(p)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Create(&paste.Paste{ID: id, Content: "collision"})
	require.NoError(t, err)
	assert.False(t, ok, "create must not overwrite an existing id")

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, int64(1700000000), got.Created)
	assert.True(t, got.CheckToken("tok"))

	got.Content = "updated"
	got.Metadata = map[string]any{"lang": "go"}
	require.NoError(t, s.Update(got))

	got, err = s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Content)
	assert.Equal(t, "go", got.Metadata["lang"])

	require.NoError(t, s.Delete(id))
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
	assert.ErrorIs(t, s.Update(&paste.Paste{ID: id}), ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory(time.Hour))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemory(time.Minute)
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	ok, err := s.Create(&paste.Paste{ID: "abc", Content: "hello"})
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(30 * time.Second)
	require.NoError(t, s.Update(&paste.Paste{ID: "abc", Content: "still here"}))

	now = now.Add(31 * time.Second)
	_, err = s.Get("abc")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err = s.Create(&paste.Paste{ID: "abc", Content: "again"})
	require.NoError(t, err)
	assert.True(t, ok, "expired id is free again")
}

func TestRedisStore(t *testing.T) {
	uri := os.Getenv("REDIS_URI")
	if uri == "" {
		t.Skip("REDIS_URI not set")
	}
	s, err := NewRedis(uri, os.Getenv("REDIS_PASSWORD"), 0, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestParseRedisURI(t *testing.T) {
	tests := []struct {
		uri  string
		host string
		port int
	}{
		{"", "localhost", 6379},
		{"redis", "redis", 6379},
		{"redis:6380", "redis", 6380},
		{":6380", "localhost", 6380},
		{"redis:bad", "redis", 6379},
	}
	for _, tt := range tests {
		host, port := ParseRedisURI(tt.uri)
		assert.Equal(t, tt.host, host, tt.uri)
		assert.Equal(t, tt.port, port, tt.uri)
	}
}
