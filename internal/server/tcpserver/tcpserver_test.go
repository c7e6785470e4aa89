package tcpserver

import (
	"errors"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombowditch/pasty-go/internal/store"
)

func send(t *testing.T, addr, payload string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	reply, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(reply)
}

func TestHandleRequest(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	st := store.NewMemory(0)
	srv := New(st, "http://paste.test/", nil)
	go srv.serve(l)
	defer l.Close()

	reply := send(t, l.Addr().String(), "hello over tcp")
	lines := strings.Split(strings.TrimSpace(reply), "\r\n")
	require.Len(t, lines, 2, reply)
	require.True(t, strings.HasPrefix(lines[0], "http://paste.test/raw/"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "token: "), lines[1])

	id := strings.TrimPrefix(lines[0], "http://paste.test/raw/")
	p, err := st.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "hello over tcp", p.Content)
	assert.True(t, p.CheckToken(strings.TrimPrefix(lines[1], "token: ")))
}

func TestHandleRequestEmpty(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(store.NewMemory(0), "http://paste.test/", nil)
	go srv.serve(l)
	defer l.Close()

	assert.Equal(t, "missing paste content\r\n", send(t, l.Addr().String(), ""))
}

func TestHandleRequestWithoutToken(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	st := store.NewMemory(0)
	srv := New(st, "http://paste.test/", nil)
	srv.newToken = func(int) (string, error) { return "", errors.New("entropy exhausted") }
	go srv.serve(l)
	defer l.Close()

	assert.Equal(t, "error\r\n", send(t, l.Addr().String(), "hello"))
}
