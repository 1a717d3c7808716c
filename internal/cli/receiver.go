package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cli-notifier/li/internal/build"
	apperrors "github.com/cli-notifier/li/internal/errors"
	"github.com/cli-notifier/li/internal/logger"
	"github.com/cli-notifier/li/internal/notify"
	"github.com/cli-notifier/li/internal/receiver"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// ReceiverSecretEnv supplies the receiver secret when --secret is not given.
const ReceiverSecretEnv = "LI_RECEIVER_SECRET"

type receiverFlags struct {
	addr      string
	secret    string
	debug     bool
	noDesktop bool
}

func newReceiverCmd(env environment) *cobra.Command {
	var flags receiverFlags

	cmd := &cobra.Command{
		Use:   "li-receiver [flags]",
		Short: "Receive li webhook notifications",
		Long: `li-receiver listens for the messages li's webhook channel sends
(POST /webhook with {"text": ...} and a bearer token), prints each one and
shows it as a desktop notification.

Point [notifiers.webhook] url at http://<host>:8000/webhook and use the same
secret on both sides.`,
		Example: `  # Listen on the default port
  LI_RECEIVER_SECRET=s3cret li-receiver

  # Print messages only, on a custom address
  li-receiver --addr 127.0.0.1:9000 --secret s3cret --no-desktop`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, env, flags)
		},
	}

	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetVersionTemplate("{{.Version}}")
	cmd.Version = build.Info()
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.Wrap(err, apperrors.Argument, "Run 'li-receiver --help' for usage")
	})

	cmd.Flags().StringVar(&flags.addr, "addr", receiver.DefaultAddr, "Address to listen on")
	cmd.Flags().StringVar(&flags.secret, "secret", "", "Bearer secret senders must present (default $"+ReceiverSecretEnv+")")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flags.noDesktop, "no-desktop", false, "Print messages without showing desktop notifications")

	return cmd
}

// serve runs the receiver until the command's context ends or the process
// gets SIGINT or SIGTERM.
func serve(cmd *cobra.Command, env environment, flags receiverFlags) error {
	secret := flags.secret
	if secret == "" {
		secret = os.Getenv(ReceiverSecretEnv)
	}
	if secret == "" {
		return apperrors.ReceiverSecretMissing()
	}

	level := "info"
	if flags.debug {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Level: level, Writer: env.stderr}); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to initialize logging")
	}

	opts := receiver.Options{Secret: secret, Out: cmd.OutOrStdout()}
	if !flags.noDesktop {
		opts.Display = notify.NewDesktopChannel()
	}
	gin.SetMode(gin.ReleaseMode)
	srv := receiver.New(opts)

	ln, err := env.listen("tcp", flags.addr)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "failed to listen on "+flags.addr,
			"Pick a free address with --addr")
	}
	logger.Info("receiver listening", "addr", ln.Addr().String(), "desktop", opts.Display != nil)
	fmt.Fprintf(cmd.OutOrStdout(), "li-receiver listening on %s\n", ln.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Serve(ctx, ln); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "receiver stopped")
	}
	return nil
}

// ExecuteReceiver runs li-receiver against the real process environment and
// prints any error to stderr.
func ExecuteReceiver() error {
	if err := newReceiverCmd(processEnvironment()).ExecuteContext(context.Background()); err != nil {
		apperrors.PrintError(err)
		return err
	}
	return nil
}
