// li-receiver - show li webhook notifications on another machine
// Source: https://github.com/cli-notifier/li

package main

import (
	"os"

	"github.com/cli-notifier/li/internal/cli"
)

func main() {
	if err := cli.ExecuteReceiver(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
