package ratelimit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombowditch/pasty-go/internal/store"
	"github.com/tombowditch/pasty-go/internal/util/randutil"
)

func TestNop(t *testing.T) {
	var l Limiter = Nop{}
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
}

func TestRedis(t *testing.T) {
	uri := os.Getenv("REDIS_URI")
	if uri == "" {
		t.Skip("REDIS_URI not set")
	}
	host, port := store.ParseRedisURI(uri)
	require.NoError(t, Setup(host, port, os.Getenv("REDIS_PASSWORD")))

	l := NewRedis("pasty_test_rl_"+randutil.RandString(8)+"_", time.Hour, 2)
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "keys are limited independently")
}
