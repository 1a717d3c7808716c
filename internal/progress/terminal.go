package progress

import (
	"os"

	"golang.org/x/term"
)

// DetectTerminalCapabilities inspects stderr, where progress is written.
// NO_COLOR disables color and LI_ASCII=1 forces ASCII symbols.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return capabilitiesFor(isTTY, os.Getenv("NO_COLOR") != "", os.Getenv("LI_ASCII") == "1")
}

func capabilitiesFor(isTTY, noColor, forceASCII bool) TerminalCapabilities {
	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // | / - \
	}
}
