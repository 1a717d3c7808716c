package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err for the terminal with colors.
// Returns "" for a nil error.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	return render(err, red, yellow, cyan)
}

// FormatErrorPlain renders err without ANSI escape codes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return render(err, plain, plain, plain)
}

func render(err *CLIError, heading, label, usage func(a ...interface{}) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", heading(err.Category.String()), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n  %s\n", label("Usage:"), usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", label("To fix this:"))
		for i, step := range err.Remediation {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}
	return b.String()
}

// PrintError writes err to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w. Colors are dropped when NO_COLOR is set or w
// is not a terminal (fatih/color handles both).
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}
	if w != os.Stderr && w != os.Stdout {
		fmt.Fprint(w, FormatErrorPlain(cliErr))
		return
	}
	fmt.Fprint(w, FormatError(cliErr))
}
