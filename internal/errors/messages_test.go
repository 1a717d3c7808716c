// Package errors_test tests the prebuilt error messages li shows to users.
// Related: internal/errors/messages.go
// Tags: errors, messages, remediation
package errors

import (
	"fmt"
	"io/fs"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingCommand(t *testing.T) {
	t.Parallel()

	err := MissingCommand()
	assert.Equal(t, Argument, err.Category)
	assert.NotEmpty(t, err.Usage)
	assert.NotEmpty(t, err.Remediation)
}

func TestReceiverSecretMissing(t *testing.T) {
	t.Parallel()

	err := ReceiverSecretMissing()
	assert.Equal(t, Argument, err.Category)
	assert.Len(t, err.Remediation, 2)
}

func TestConfigNotFound(t *testing.T) {
	t.Parallel()

	err := ConfigNotFound([]string{"/home/u/.config/cli-notifier/config.toml", "config.toml"})
	assert.Equal(t, Configuration, err.Category)
	assert.Contains(t, err.Message, "/home/u/.config/cli-notifier/config.toml")
	assert.Contains(t, err.Message, "config.toml")
}

func TestMissingNotifiersSection(t *testing.T) {
	t.Parallel()

	err := MissingNotifiersSection("config.toml")
	assert.Equal(t, Configuration, err.Category)
	assert.Contains(t, err.Message, "[notifiers]")
}

func TestInvalidConfig(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("line 3: expected '='")
	err := InvalidConfig("config.toml", cause)
	assert.Equal(t, Configuration, err.Category)
	assert.ErrorIs(t, err, cause)
}

func TestCommandSpawnFailed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		command      string
		err          error
		wantContains string
	}{
		"not found": {
			command:      "nope",
			err:          &exec.Error{Name: "nope", Err: exec.ErrNotFound},
			wantContains: "command not found: nope",
		},
		"permission": {
			command:      "./script.sh",
			err:          &fs.PathError{Op: "fork/exec", Path: "./script.sh", Err: fs.ErrPermission},
			wantContains: "permission denied: ./script.sh",
		},
		"other": {
			command:      "make",
			err:          fmt.Errorf("resource temporarily unavailable"),
			wantContains: "failed to start",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := CommandSpawnFailed(tt.command, tt.err)
			assert.Equal(t, Prerequisite, got.Category)
			assert.Contains(t, got.Message, tt.wantContains)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
