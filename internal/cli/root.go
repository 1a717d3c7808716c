// li - run a command, get notified when it finishes
// Source: https://github.com/cli-notifier/li

// Package cli provides li's Cobra root command. It loads settings, runs the
// wrapped command and dispatches the completion notification.
package cli

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/cli-notifier/li/internal/build"
	"github.com/cli-notifier/li/internal/config"
	apperrors "github.com/cli-notifier/li/internal/errors"
	"github.com/cli-notifier/li/internal/lifecycle"
	"github.com/cli-notifier/li/internal/logger"
	"github.com/cli-notifier/li/internal/notify"
	"github.com/cli-notifier/li/internal/progress"
	"github.com/cli-notifier/li/internal/runner"
	"github.com/spf13/cobra"
)

// environment holds the process resources the root command touches.
// Tests swap streams and discovery paths through it.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// searchPaths overrides settings discovery when non-nil.
	searchPaths []string
	// relaySignals forwards SIGTERM to the child while it runs and absorbs
	// SIGINT, which the terminal already delivers to the child.
	relaySignals bool
	// terminal reports what stderr can render.
	terminal func() progress.TerminalCapabilities
	// listen opens li-receiver's listener.
	listen func(network, addr string) (net.Listener, error)
}

func processEnvironment() environment {
	return environment{
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		relaySignals: true,
		terminal:     progress.DetectTerminalCapabilities,
		listen:       net.Listen,
	}
}

type rootFlags struct {
	configPath    string
	debug         bool
	noProgress    bool
	exampleConfig bool
}

func newRootCmd(env environment) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "li [flags] <command> [args...]",
		Short: "Run a command and get notified when it finishes",
		Long: `li runs a command and, when it finishes, sends a notification through
every channel configured in the [notifiers] section of its settings file:
desktop popups, an authenticated JSON webhook and Pushbullet pushes.

Settings are read from the first file found in:
  $XDG_CONFIG_HOME/cli-notifier/config.toml (default ~/.config/cli-notifier/config.toml)
  ./config.toml

Source: https://github.com/cli-notifier/li`,
		Example: `  # Get notified when the build finishes
  li make build

  # Everything after the command is passed through untouched
  li ls -la /tmp

  # Use "--" when the command itself starts with a dash-prefixed word
  li -d -- ./deploy.sh --prod

  # Print an example settings file
  li --example-config > ~/.config/cli-notifier/config.toml`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.exampleConfig {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
				return err
			}
			return run(cmd, env, flags, args)
		},
	}

	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetVersionTemplate("{{.Version}}")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.Wrap(err, apperrors.Argument, "Run 'li --help' for usage")
	})
	cmd.Version = build.Info()

	// Everything from the first positional argument on belongs to the command.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to settings file (skips discovery)")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Do not show notification progress")
	cmd.Flags().BoolVar(&flags.exampleConfig, "example-config", false, "Print an example settings file and exit")

	return cmd
}

// run is the orchestrator: settings, then the command, then the notification.
// Settings problems abort before the command is spawned. Notification
// failures are logged and do not change li's exit status.
func run(cmd *cobra.Command, env environment, flags rootFlags, command []string) error {
	if len(command) == 0 {
		return apperrors.MissingCommand()
	}

	settings, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath:  flags.configPath,
		SearchPaths: env.searchPaths,
	})
	if err != nil {
		return err
	}

	level := settings.LogLevel
	if flags.debug {
		level = "debug"
	}
	if err := logger.Init(logConfig(env, level, settings)); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to initialize logging",
			"Check log_output in "+settings.Source)
	}
	defer func() { _ = logger.Close() }()
	logger.Debug("settings loaded", "source", settings.Source)

	var opts []notify.ManagerOption
	if settings.ShowProgress && !flags.noProgress {
		if caps := env.terminal(); caps.IsTTY {
			opts = append(opts, notify.WithObserver(progress.NewDispatchDisplay(caps, env.stderr)))
		}
	}
	manager := notify.FromSettings(settings, opts...)
	logger.Debug("notification channels ready", "count", manager.Len())

	_, err = lifecycle.Run(cmd.Context(), manager, command, lifecycle.RunnerExecutor(runner.Options{
		Stdin:        env.stdin,
		Stdout:       env.stdout,
		Stderr:       env.stderr,
		RelaySignals: env.relaySignals,
	}))
	return err
}

// logConfig routes log output to the environment's streams, or to the file
// named by log_output.
func logConfig(env environment, level string, settings config.Settings) logger.Config {
	cfg := logger.Config{Level: level, Format: settings.LogFormat}
	switch strings.ToLower(settings.LogOutput) {
	case "", "stderr":
		cfg.Writer = env.stderr
	case "stdout":
		cfg.Writer = env.stdout
	default:
		cfg.Output = settings.LogOutput
	}
	return cfg
}

// Execute runs the root command against the real process environment and
// prints any error to stderr.
func Execute() error {
	if err := newRootCmd(processEnvironment()).Execute(); err != nil {
		apperrors.PrintError(err)
		return err
	}
	return nil
}
