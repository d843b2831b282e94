package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config using a SQLite file inside a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`storage:
  backend: sqlite
  path: %s
log:
  level: debug
  file: %s
auth:
  bcrypt_cost: 4
`, filepath.Join(dir, "dashboard.db"), filepath.Join(dir, "dashboard.log"))
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func runCLI(t *testing.T, config string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-config", config}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestCLIRequiresLogin(t *testing.T) {
	config := writeConfig(t)

	_, stderr, code := runCLI(t, config, "projects")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not logged in")
}

func TestCLIUnknownCommand(t *testing.T) {
	_, stderr, code := runCLI(t, writeConfig(t), "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestCLILoginFailure(t *testing.T) {
	_, stderr, code := runCLI(t, writeConfig(t), "login", "-email", "thehmfpk@gmail.com", "-password", "wrong1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid email or password")
}

func TestCLIValidationFailure(t *testing.T) {
	_, stderr, code := runCLI(t, writeConfig(t), "login", "-email", "someone@yahoo.com", "-password", "password123")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Email must be a valid @gmail.com address")
}

func TestCLIProjectLifecycle(t *testing.T) {
	config := writeConfig(t)

	out, stderr, code := runCLI(t, config, "login", "-email", "huma@gmail.com", "-password", "password123")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Welcome back, Huma")

	out, stderr, code = runCLI(t, config, "add", "-name", "Launch Site", "-status", "in-progress",
		"-progress", "35", "-tags", "Go,SQLite", "-tasks", "Design,Build")
	require.Equal(t, 0, code, stderr)
	id := regexp.MustCompile(`2-project-\d+`).FindString(out)
	require.NotEmpty(t, id, out)

	out, stderr, code = runCLI(t, config, "projects", "-search", "launch")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Launch Site")
	assert.Contains(t, out, "0/2")

	out, stderr, code = runCLI(t, config, "update", id, "-status", "completed")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "100%")

	out, stderr, code = runCLI(t, config, "notifications")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Launch Site status changed to completed")

	_, stderr, code = runCLI(t, config, "read", "all")
	require.Equal(t, 0, code, stderr)

	out, stderr, code = runCLI(t, config, "overview")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "(0 unread)")

	_, stderr, code = runCLI(t, config, "delete", id)
	require.Equal(t, 0, code, stderr)

	_, stderr, code = runCLI(t, config, "show", id)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "project not found")

	_, stderr, code = runCLI(t, config, "logout")
	require.Equal(t, 0, code, stderr)

	_, _, code = runCLI(t, config, "whoami")
	assert.Equal(t, 1, code)
}

func TestCLIBrowseNeedsTerminal(t *testing.T) {
	config := writeConfig(t)

	_, stderr, code := runCLI(t, config, "login", "-email", "huma@gmail.com", "-password", "password123")
	require.Equal(t, 0, code, stderr)

	_, stderr, code = runCLI(t, config, "browse")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "interactive terminal")
}

func TestCLISignupAndProfile(t *testing.T) {
	config := writeConfig(t)

	_, stderr, code := runCLI(t, config, "signup", "-name", "Jane Doe", "-email", "jane@gmail.com",
		"-password", "secret1", "-phone", "+923001234567", "-address", "Karachi")
	require.Equal(t, 0, code, stderr)

	out, stderr, code := runCLI(t, config, "profile", "-bio", "Gopher", "-github", "https://github.com/jane")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Gopher")
	assert.Contains(t, out, "https://github.com/jane")

	out, stderr, code = runCLI(t, config, "profile", "-bio", "", "-github", "")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, out, "Gopher")
	assert.NotContains(t, out, "https://github.com/jane")
	assert.Contains(t, out, "Karachi")

	_, stderr, code = runCLI(t, config, "profile", "-name", "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Name is required")

	_, _, code = runCLI(t, config, "logout")
	require.Equal(t, 0, code)

	_, stderr, code = runCLI(t, config, "signup", "-name", "Jane Doe", "-email", "jane@gmail.com",
		"-password", "secret1", "-phone", "+923001234567", "-address", "Karachi")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "email already exists")
}

func TestCLIDarkMode(t *testing.T) {
	config := writeConfig(t)

	out, _, code := runCLI(t, config, "dark-mode")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Dark mode on")

	out, _, code = runCLI(t, config, "dark-mode", "off")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Dark mode off")
}
