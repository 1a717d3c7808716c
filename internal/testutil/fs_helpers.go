// Package testutil provides test utilities and helpers for li tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SettingsOption adds a block to a settings file built by CreateTempSettings.
type SettingsOption func(*settingsDoc)

type settingsDoc struct {
	top    []string
	blocks []string
}

// WithDesktop enables the desktop notifier.
func WithDesktop() SettingsOption {
	return func(d *settingsDoc) {
		d.blocks = append(d.blocks, "[notifiers.desktop]\n")
	}
}

// WithWebhook enables the webhook notifier.
func WithWebhook(url, secret string) SettingsOption {
	return func(d *settingsDoc) {
		d.blocks = append(d.blocks, fmt.Sprintf("[notifiers.webhook]\nurl = %q\nsecret = %q\n", url, secret))
	}
}

// WithPushbullet enables the Pushbullet notifier.
func WithPushbullet(apiKey string) SettingsOption {
	return func(d *settingsDoc) {
		d.blocks = append(d.blocks, fmt.Sprintf("[notifiers.pushbullet]\napi_key = %q\n", apiKey))
	}
}

// WithTopLevel adds a raw top-level line, e.g. `notify_timeout = "5s"`.
func WithTopLevel(line string) SettingsOption {
	return func(d *settingsDoc) {
		d.top = append(d.top, line)
	}
}

// SettingsTOML renders a settings document. With no notifier options the
// document still has an empty [notifiers] table.
func SettingsTOML(opts ...SettingsOption) string {
	doc := &settingsDoc{}
	for _, opt := range opts {
		opt(doc)
	}

	var b strings.Builder
	for _, line := range doc.top {
		b.WriteString(line + "\n")
	}
	b.WriteString("[notifiers]\n")
	for _, block := range doc.blocks {
		b.WriteString("\n" + block)
	}
	return b.String()
}

// CreateTempSettings writes a config.toml into dir (a new temp dir when
// empty) and returns its path.
func CreateTempSettings(t *testing.T, dir string, opts ...SettingsOption) string {
	t.Helper()

	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, "config.toml")
	WriteFile(t, path, SettingsTOML(opts...))
	return path
}

// WriteScript writes an executable shell script and returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	WriteFile(t, path, "#!/bin/sh\n"+body)
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
	return path
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// ClearSettingsEnv unsets every LI_ variable for the duration of the test so
// the developer's environment cannot override test settings.
// Values are restored by t.Setenv's cleanup.
func ClearSettingsEnv(t *testing.T) {
	t.Helper()

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, "LI_") {
			continue
		}
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
