// li - run a command, get notified when it finishes
// Source: https://github.com/cli-notifier/li

package main

import (
	"os"

	"github.com/cli-notifier/li/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
