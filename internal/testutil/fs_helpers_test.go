package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSettingsTOML(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts []SettingsOption
		want []string
	}{
		"empty notifiers": {
			want: []string{"[notifiers]\n"},
		},
		"all channels": {
			opts: []SettingsOption{
				WithDesktop(),
				WithWebhook("http://127.0.0.1:9/hook", "s3cret"),
				WithPushbullet("o.key"),
			},
			want: []string{
				"[notifiers.desktop]\n",
				"[notifiers.webhook]\nurl = \"http://127.0.0.1:9/hook\"\nsecret = \"s3cret\"\n",
				"[notifiers.pushbullet]\napi_key = \"o.key\"\n",
			},
		},
		"top level before tables": {
			opts: []SettingsOption{WithTopLevel(`notify_timeout = "5s"`)},
			want: []string{"notify_timeout = \"5s\"\n[notifiers]\n"},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := SettingsTOML(tc.opts...)
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("settings %q missing %q", got, want)
				}
			}
		})
	}
}

func TestCreateTempSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := CreateTempSettings(t, dir, WithDesktop())

	if path != filepath.Join(dir, "config.toml") {
		t.Errorf("unexpected path %s", path)
	}
	if got := ReadFile(t, path); !strings.Contains(got, "[notifiers.desktop]") {
		t.Errorf("desktop block not written: %q", got)
	}

	if own := CreateTempSettings(t, ""); !FileExists(own) {
		t.Errorf("settings file was not created: %s", own)
	}
}

func TestWriteScript(t *testing.T) {
	t.Parallel()

	path := WriteScript(t, t.TempDir(), "hello.sh", "echo hello\n")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("script was not created: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("script is not executable: %v", info.Mode())
	}
	if got := ReadFile(t, path); got != "#!/bin/sh\necho hello\n" {
		t.Errorf("unexpected script content %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	tests := map[string]struct {
		path    string
		content string
	}{
		"simple file": {
			path:    filepath.Join(tmpDir, "test.txt"),
			content: "test content",
		},
		"nested file": {
			path:    filepath.Join(tmpDir, "nested", "dir", "test.txt"),
			content: "nested content",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			WriteFile(t, tc.path, tc.content)

			if !FileExists(tc.path) {
				t.Errorf("file was not created: %s", tc.path)
			}

			got := ReadFile(t, tc.path)
			if got != tc.content {
				t.Errorf("content mismatch: got %q, want %q", got, tc.content)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")
	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := map[string]struct {
		path string
		want bool
	}{
		"existing file":      {path: existingFile, want: true},
		"non-existing file":  {path: filepath.Join(tmpDir, "nonexistent.txt"), want: false},
		"existing directory": {path: tmpDir, want: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := FileExists(tc.path); got != tc.want {
				t.Errorf("FileExists(%s) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestClearSettingsEnv(t *testing.T) {
	t.Setenv("LI_NOTIFY_TIMEOUT", "5s")
	t.Setenv("LI_NOTIFIERS__WEBHOOK__SECRET", "x")

	ClearSettingsEnv(t)

	for _, key := range []string{"LI_NOTIFY_TIMEOUT", "LI_NOTIFIERS__WEBHOOK__SECRET"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Errorf("%s still set", key)
		}
	}
}
