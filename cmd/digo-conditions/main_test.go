package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "context.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const servletSnapshot = `
environment:
  type: servlet
types:
  - "*github.com/centraunit/digo/env.GenericWebApplicationContext"
`

func TestEvaluateDefaultSnapshot(t *testing.T) {
	out, err := execute(t, "evaluate")
	require.NoError(t, err)
	assert.Equal(t, "MATCH: web application classes not found\n", out)

	out, err = execute(t, "evaluate", "--web")
	require.NoError(t, err)
	assert.Equal(t, "NO MATCH: web application classes not found\n", out)
}

func TestEvaluateServletSnapshot(t *testing.T) {
	path := writeSnapshot(t, servletSnapshot)

	out, err := execute(t, "evaluate", "--config", path, "--web")
	require.NoError(t, err)
	assert.Equal(t, "MATCH: found web application StandardServletEnvironment\n", out)

	out, err = execute(t, "evaluate", "--config", path, "--not-web")
	require.NoError(t, err)
	assert.Equal(t, "NO MATCH: found web application StandardServletEnvironment\n", out)
}

func TestEvaluateStrict(t *testing.T) {
	path := writeSnapshot(t, servletSnapshot)

	_, err := execute(t, "evaluate", "--config", path, "--strict")
	assert.ErrorIs(t, err, errNoMatch)

	_, err = execute(t, "evaluate", "--config", path, "--web", "--strict")
	assert.NoError(t, err)
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	_, err := execute(t, "evaluate", "--web", "--not-web")
	assert.Error(t, err)

	path := writeSnapshot(t, "environment:\n  type: reactive\n")
	_, err = execute(t, "evaluate", "--config", path)
	assert.ErrorContains(t, err, "unknown environment type")

	_, err = execute(t, "evaluate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
