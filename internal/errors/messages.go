package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// MissingCommand is returned when li is invoked without a command to run.
func MissingCommand() *CLIError {
	return NewArgumentErrorWithUsage(
		"no command provided",
		"li [flags] <command> [args...]",
		"Pass the command to run after li, e.g. `li make build`",
		"Use `--` to separate li flags from the command if it starts with a dash",
	)
}

// ConfigNotFound is returned when no settings file exists in any search location.
func ConfigNotFound(searched []string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("configuration file not found (searched: %s)", strings.Join(searched, ", ")),
		fmt.Sprintf("Create %s with a [notifiers] section", searched[0]),
		"Or pass an explicit file with --config <path>",
	)
}

// ConfigFileMissing is returned when an explicitly requested settings file does not exist.
func ConfigFileMissing(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("configuration file %s does not exist", path),
		"Check the path passed to --config",
	)
}

// MissingNotifiersSection is returned when the settings document has no notifiers table.
func MissingNotifiersSection(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("%s: missing [notifiers] section", path),
		"Add a [notifiers] table with at least one of desktop, webhook or pushbullet",
	)
}

// InvalidConfig wraps a parse or validation failure for the given file.
func InvalidConfig(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration, "invalid configuration",
		fmt.Sprintf("Fix the reported problem in %s", path),
	)
}

// CommandSpawnFailed is returned when the wrapped command could not be started.
func CommandSpawnFailed(name string, err error) *CLIError {
	switch {
	case errors.Is(err, exec.ErrNotFound):
		e := NewPrerequisiteError(
			fmt.Sprintf("command not found: %s", name),
			"Check the command name for typos",
			"Make sure the executable is on your PATH",
		)
		e.Err = err
		return e
	case errors.Is(err, fs.ErrPermission):
		e := NewPrerequisiteError(
			fmt.Sprintf("permission denied: %s", name),
			fmt.Sprintf("Make %s executable (chmod +x)", name),
		)
		e.Err = err
		return e
	default:
		return WrapWithMessage(err, Prerequisite, fmt.Sprintf("failed to start %s", name))
	}
}

// ReceiverSecretMissing is returned when li-receiver is started without a secret.
func ReceiverSecretMissing() *CLIError {
	return NewArgumentError(
		"no webhook secret provided",
		"Pass the secret configured in [notifiers.webhook] with --secret",
		"Or set LI_RECEIVER_SECRET",
	)
}
