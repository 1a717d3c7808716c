package config

// GetDefaults returns the default values applied beneath the settings file.
// There are no default notifiers: a channel exists only when its block does.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"notify_timeout": "0s",
		"show_progress":  true,
		"log_level":      "warn",
		"log_format":     "text",
		"log_output":     "stderr",
	}
}

// GetDefaultConfigTemplate returns a commented example settings file.
func GetDefaultConfigTemplate() string {
	return `# li configuration
# Looked up in ~/.config/cli-notifier/config.toml, then ./config.toml.

# Per-channel send deadline ("0s" waits as long as the channel needs).
# A bare number is read as seconds.
notify_timeout = "0s"

# Show a spinner on stderr while notifications are sent
show_progress = true

# Logging: debug, info, warn, error / text, json / stderr, stdout or a file path
log_level = "warn"
log_format = "text"
log_output = "stderr"

[notifiers]

# Desktop popup. The empty table is enough to enable it.
[notifiers.desktop]

# Authenticated JSON webhook: POST {"text": "..."} with a bearer token
# [notifiers.webhook]
# url = "https://example.com/webhook"
# secret = "change-me"

# Pushbullet push to all of your devices
# [notifiers.pushbullet]
# api_key = "o.xxxxxxxx"
`
}
