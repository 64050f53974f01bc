package usecase

// ConfigFile describes the on-disk TOML application configuration: the host
// knobs the reconciliation engine itself leaves as implementation details.
type ConfigFile struct {
	Upstream      UpstreamConfig      `toml:"upstream"`
	Cache         CacheConfig         `toml:"cache"`
	UI            UIConfig            `toml:"ui"`
	Logging       LoggingConfig       `toml:"logging"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// UpstreamConfig names the asset repository this project reconciles against.
type UpstreamConfig struct {
	Repo            string `toml:"repo"`
	FreshnessHours  int    `toml:"freshness_hours"`
}

// CacheConfig controls snapshot retention.
type CacheConfig struct {
	Retain int `toml:"retain"`
}

// UIConfig holds presentation preferences for the hosting CLI.
type UIConfig struct {
	Color string `toml:"color"` // "auto", "always", "never"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Dir   string `toml:"dir"`
	Level string `toml:"level"`
}

// NotificationsConfig controls the desktop notification sent when a reload
// finishes.
type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Sound   string `toml:"sound"`
}

// defaultConfigDir is the per-user directory carrying this project's
// application config, mirroring the teacher's XDG-flavored default.
const defaultConfigDir = "~/.config/awesome-copilot-tui"

// DefaultConfigDir returns the default application config directory.
func DefaultConfigDir() string { return defaultConfigDir }

// DefaultConfigFile returns the default TOML configuration.
func DefaultConfigFile() ConfigFile {
	return ConfigFile{
		Upstream: UpstreamConfig{
			Repo:           "github/awesome-copilot",
			FreshnessHours: 12,
		},
		Cache: CacheConfig{
			Retain: 5,
		},
		UI: UIConfig{
			Color: "auto",
		},
		Logging: LoggingConfig{
			Dir:   "~/.local/state/awesome-copilot-tui/logs",
			Level: "info",
		},
		Notifications: NotificationsConfig{
			Enabled: false,
			Sound:   "default",
		},
	}
}
