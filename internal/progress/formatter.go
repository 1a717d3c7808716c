package progress

import (
	"github.com/fatih/color"
)

func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if !supportsColor {
		return symbols.Checkmark
	}
	c := color.New(color.FgGreen)
	c.EnableColor()
	return c.Sprint(symbols.Checkmark)
}

func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if !supportsColor {
		return symbols.Failure
	}
	c := color.New(color.FgRed)
	c.EnableColor()
	return c.Sprint(symbols.Failure)
}
