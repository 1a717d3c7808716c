package cli

// Exit codes for the li process. The wrapped command's own status is
// reported in the notification, not through li's exit code.
const (
	// ExitSuccess indicates the command ran and notifications were attempted
	ExitSuccess = 0

	// ExitFailure indicates li could not run the command (bad arguments,
	// settings or spawn failure)
	ExitFailure = 1
)

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
