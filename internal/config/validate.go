package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	gotoml "github.com/pelletier/go-toml/v2"
)

// ValidationError represents a configuration error with file context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// syntaxError turns a parser failure into a ValidationError. TOML decode
// errors carry a row and column; other parsers only give a message.
func syntaxError(filePath string, err error) error {
	var decodeErr *gotoml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return &ValidationError{
			FilePath: filePath,
			Line:     row,
			Column:   col,
			Message:  decodeErr.Error(),
		}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// fieldError reports the first failed validator constraint as a
// ValidationError keyed by the settings path, e.g. notifiers.webhook.url.
func fieldError(filePath string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{
		FilePath: filePath,
		Field:    fieldPath(fe.Namespace()),
		Message:  describeTag(fe),
	}
}

// fieldPath maps a validator namespace (Settings.Notifiers.Webhook.URL) to
// the key users write in the settings file (notifiers.webhook.url).
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = settingsKeys[p]
		if parts[i] == "" {
			parts[i] = strings.ToLower(p)
		}
	}
	return strings.Join(parts, ".")
}

var settingsKeys = map[string]string{
	"Notifiers":     "notifiers",
	"Webhook":       "webhook",
	"Pushbullet":    "pushbullet",
	"URL":           "url",
	"Secret":        "secret",
	"APIKey":        "api_key",
	"NotifyTimeout": "notify_timeout",
	"LogLevel":      "log_level",
	"LogFormat":     "log_format",
	"LogOutput":     "log_output",
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("must be a valid URL, got %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "timeout":
		return fmt.Sprintf("must be 0 (no deadline) or at least %s, got %s", minNotifyTimeout, fe.Value())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// minNotifyTimeout is the shortest per-channel deadline accepted. Anything
// shorter fails every send before a request can leave the machine.
const minNotifyTimeout = time.Millisecond

func validTimeout(fl validator.FieldLevel) bool {
	d := time.Duration(fl.Field().Int())
	return d == 0 || d >= minNotifyTimeout
}
