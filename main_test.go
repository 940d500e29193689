package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	out := t.TempDir()
	t.Setenv("OUT_DIR", out)
	t.Setenv("BUILD_MANIFEST", filepath.Join(t.TempDir(), "build.db"))

	stdout, err := run(t, "build")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 removed")
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "blog", "rss.xml"))

	stdout, err = run(t, "build")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 written")
}

func TestBuildCommandFlagsOverrideEnv(t *testing.T) {
	t.Setenv("OUT_DIR", t.TempDir())
	out := t.TempDir()

	_, err := run(t, "build", "--out", out, "--manifest", "", "-j", "2")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "resume", "index.html"))
}

func TestBuildCommandRejectsUnknownPolicy(t *testing.T) {
	_, err := run(t, "build", "--out", t.TempDir(), "--manifest", "", "--on-broken-links", "explode")
	assert.ErrorContains(t, err, "explode")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("PORT", "http")
	_, err := run(t, "resume", "--markdown")
	assert.ErrorContains(t, err, "PORT must be numeric")
}

func TestResumeCommand(t *testing.T) {
	stdout, err := run(t, "resume", "--markdown")
	require.NoError(t, err)
	assert.Contains(t, stdout, "## Projects")
	assert.Contains(t, stdout, "Security Ticket (Back-End)")
}
