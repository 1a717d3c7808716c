// Package config loads li settings.
// A single settings file is discovered (user directory, then the working
// directory), parsed by extension, overlaid with LI_ environment variables,
// and validated.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/cli-notifier/li/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. LI_NOTIFY_TIMEOUT.
const EnvPrefix = "LI_"

// Settings is the validated startup configuration.
type Settings struct {
	Notifiers     *Notifiers    `koanf:"notifiers"`
	NotifyTimeout time.Duration `koanf:"notify_timeout" validate:"min=0,timeout"`
	ShowProgress  bool          `koanf:"show_progress"`
	LogLevel      string        `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat     string        `koanf:"log_format" validate:"omitempty,oneof=text json"`
	// LogOutput is stderr, stdout or a file path.
	LogOutput string `koanf:"log_output"`

	// Source is the file the settings were read from.
	Source string `koanf:"-"`
}

// Notifiers lists the optional channel blocks. A nil block means the channel is off.
type Notifiers struct {
	Desktop    *DesktopConfig    `koanf:"desktop"`
	Webhook    *WebhookConfig    `koanf:"webhook"`
	Pushbullet *PushbulletConfig `koanf:"pushbullet"`
}

// DesktopConfig enables desktop notifications. It has no fields.
type DesktopConfig struct{}

// WebhookConfig configures the authenticated JSON webhook.
type WebhookConfig struct {
	URL    string `koanf:"url" validate:"required,url"`
	Secret string `koanf:"secret" validate:"required"`
}

// PushbulletConfig configures the Pushbullet push channel.
type PushbulletConfig struct {
	APIKey string `koanf:"api_key" validate:"required"`
}

// LoadOptions controls where settings come from.
type LoadOptions struct {
	// ConfigPath skips discovery and reads this file. It must exist.
	ConfigPath string
	// SearchPaths overrides the discovery order (tests).
	SearchPaths []string
}

// Load discovers and loads settings using the default search paths.
func Load() (Settings, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads settings from an explicit file or the first existing
// search path. Priority: environment variables > settings file > defaults.
// The first existing file wins; files are never merged with each other.
func LoadWithOptions(opts LoadOptions) (Settings, error) {
	path, err := resolvePath(opts)
	if err != nil {
		return Settings{}, err
	}

	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return Settings{}, apperrors.InvalidConfig(path, syntaxError(path, err))
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return Settings{}, apperrors.InvalidConfig(path, fmt.Errorf("reading environment: %w", err))
	}

	if !k.Exists("notifiers") {
		return Settings{}, apperrors.MissingNotifiersSection(path)
	}
	if err := normalizeTimeout(k); err != nil {
		return Settings{}, apperrors.InvalidConfig(path, err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, apperrors.InvalidConfig(path, err)
	}
	presentBlocks(k, &s)
	s.Source = path

	if err := ValidateSettings(&s); err != nil {
		return Settings{}, apperrors.InvalidConfig(path, err)
	}

	return s, nil
}

func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		if _, err := os.Stat(opts.ConfigPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", apperrors.ConfigFileMissing(opts.ConfigPath)
			}
			return "", apperrors.InvalidConfig(opts.ConfigPath, err)
		}
		return opts.ConfigPath, nil
	}

	paths := opts.SearchPaths
	if len(paths) == 0 {
		paths = SearchPaths()
	}
	path := Discover(paths)
	if path == "" {
		return "", apperrors.ConfigNotFound(paths)
	}
	return path, nil
}

// presentBlocks enables blocks that exist with no content. TOML tables
// decode to empty maps, but YAML `desktop:` and JSON `"desktop": null`
// decode to nil and would otherwise leave the channel off.
func presentBlocks(k *koanf.Koanf, s *Settings) {
	if s.Notifiers == nil {
		s.Notifiers = &Notifiers{}
	}
	n := s.Notifiers
	if n.Desktop == nil && k.Exists("notifiers.desktop") {
		n.Desktop = &DesktopConfig{}
	}
	if n.Webhook == nil && k.Exists("notifiers.webhook") {
		n.Webhook = &WebhookConfig{}
	}
	if n.Pushbullet == nil && k.Exists("notifiers.pushbullet") {
		n.Pushbullet = &PushbulletConfig{}
	}
}

// normalizeTimeout reads a bare number for notify_timeout as seconds, so
// `notify_timeout = 30` means 30s rather than 30ns.
func normalizeTimeout(k *koanf.Koanf) error {
	const key = "notify_timeout"
	if !k.Exists(key) {
		return nil
	}
	raw := strings.TrimSpace(fmt.Sprint(k.Get(key)))
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return fmt.Errorf("notify_timeout: invalid duration %q", raw)
	}
	return k.Set(key, time.Duration(secs*float64(time.Second)).String())
}

// parserFor picks a koanf parser by file extension. Unknown extensions are
// read as TOML, the format of the default settings file.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// envTransform converts environment variable names to config keys.
// Double underscores separate nesting levels:
// LI_NOTIFIERS__WEBHOOK__SECRET -> notifiers.webhook.secret
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// ValidateSettings checks struct constraints on s, including every present
// notifier block. Nil blocks are skipped.
func ValidateSettings(s *Settings) error {
	validate := validator.New()
	if err := validate.RegisterValidation("timeout", validTimeout); err != nil {
		return err
	}
	if err := validate.Struct(s); err != nil {
		return fieldError(s.Source, err)
	}
	return nil
}
