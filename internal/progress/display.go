package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// DispatchDisplay shows per-channel notification progress.
// It satisfies notify.Observer.
type DispatchDisplay struct {
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
}

// NewDispatchDisplay creates a display writing to out. Callers only build
// one when out is a terminal.
func NewDispatchDisplay(caps TerminalCapabilities, out io.Writer) *DispatchDisplay {
	return &DispatchDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// ChannelStarted replaces any running spinner with one for name.
func (d *DispatchDisplay) ChannelStarted(name string) {
	d.stopSpinner()
	d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond)
	d.spinner.Writer = d.out
	d.spinner.Suffix = fmt.Sprintf(" Notifying via %s", name)
	d.spinner.Start()
}

// ChannelSucceeded stops the spinner and prints a success line.
func (d *DispatchDisplay) ChannelSucceeded(name string) {
	d.stopSpinner()
	fmt.Fprintf(d.out, "%s %s notified\n", checkmark(d.symbols, d.capabilities.SupportsColor), name)
}

// ChannelFailed stops the spinner and prints the failure.
func (d *DispatchDisplay) ChannelFailed(name string, err error) {
	d.stopSpinner()
	fmt.Fprintf(d.out, "%s %s failed: %v\n", failureMark(d.symbols, d.capabilities.SupportsColor), name, err)
}

func (d *DispatchDisplay) stopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
