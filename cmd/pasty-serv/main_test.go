package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	t.Setenv("PASTY_CONFIG", "")

	opts, ok, err := parseOptions([]string{"--config", "/etc/pasty.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/etc/pasty.yaml", opts.Config)

	opts, ok, err = parseOptions(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, opts.Config)
}

func TestParseOptionsEnv(t *testing.T) {
	t.Setenv("PASTY_CONFIG", "/from/env.yaml")

	opts, ok, err := parseOptions(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/from/env.yaml", opts.Config)
}

func TestParseOptionsHelp(t *testing.T) {
	var out bytes.Buffer
	_, ok, err := parseOptions([]string{"--help"}, &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "--config")
}

func TestParseOptionsUnknownFlag(t *testing.T) {
	_, _, err := parseOptions([]string{"--nope"}, &bytes.Buffer{})
	assert.Error(t, err)
}
