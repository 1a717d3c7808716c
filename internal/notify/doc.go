// Package notify sends one completion message to every configured channel.
//
// A Channel is anything that can deliver a text message: a desktop popup, an
// authenticated JSON webhook, or a Pushbullet push. The Manager holds the
// channels built from settings and dispatches to them one at a time, in the
// order they were added.
//
// # Dispatch semantics
//
// SendAll is a short-circuit fan-out. It stops at the first channel that
// fails and returns that failure; channels after it are not called. A
// broken desktop notifier therefore keeps the webhook from firing. Callers
// that want best-effort delivery must not rely on SendAll for it.
//
// # Usage
//
//	mgr := notify.FromSettings(settings)
//	msg := notify.FormatMessage([]string{"make", "build"}, "exit status: 0")
//	if err := mgr.SendAll(ctx, msg); err != nil {
//		logger.Error("failed to send notifications", "error", err)
//	}
package notify
