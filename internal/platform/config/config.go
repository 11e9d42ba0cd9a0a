package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	DataDir  string         `mapstructure:"data_dir"`
	API      APIConfig      `mapstructure:"api"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Explorer ExplorerConfig `mapstructure:"explorer"`
	Log      LogConfig      `mapstructure:"log"`
	Notes    NotesConfig    `mapstructure:"notes"`
	Level    string         `mapstructure:"level"`
}

// APIConfig describes the remote topic and auth backend.
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ExplorerConfig holds the animation/dispatch timings of the explorer.
type ExplorerConfig struct {
	ExitDelay time.Duration `mapstructure:"exit_delay"`
	Debounce  time.Duration `mapstructure:"debounce"`
	EnterHold time.Duration `mapstructure:"enter_hold"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

type NotesConfig struct {
	Dir string `mapstructure:"dir"`
}

// DBPath is the sqlite file shared by the response cache and search history.
func (c Config) DBPath() string { return filepath.Join(c.DataDir, "kex.db") }

// LogPath is where the TUI writes its log since it owns the terminal.
func (c Config) LogPath() string { return filepath.Join(c.DataDir, "kex.log") }

// PrefsPath is the diskv root for theme/level preferences and session cookies.
func (c Config) PrefsPath() string { return filepath.Join(c.DataDir, "prefs") }

// NotesPath is where exported learning-path notes are written.
func (c Config) NotesPath() string {
	if c.Notes.Dir != "" {
		return c.Notes.Dir
	}
	return filepath.Join(c.DataDir, "notes")
}

// Load reads configuration from an optional file and the environment.
// Env overrides use the prefix KEX_, e.g. KEX_API_URL.
func Load(configFile string) (Config, error) {
	v := viper.New()

	home, err := homedir.Dir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	dataDir := filepath.Join(home, ".kex")

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("api.url", "http://localhost:5000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retries", 1)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("explorer.exit_delay", 300*time.Millisecond)
	v.SetDefault("explorer.debounce", 200*time.Millisecond)
	v.SetDefault("explorer.enter_hold", 300*time.Millisecond)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("notes.dir", "")
	v.SetDefault("level", "basic")

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(dataDir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.DataDir, err = homedir.Expand(c.DataDir); err != nil {
		return Config{}, fmt.Errorf("expand data dir: %w", err)
	}
	if c.Notes.Dir, err = homedir.Expand(c.Notes.Dir); err != nil {
		return Config{}, fmt.Errorf("expand notes dir: %w", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir is required")
	}
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("api url is required")
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api retries must be non-negative")
	}
	if c.Explorer.ExitDelay < 0 || c.Explorer.Debounce < 0 || c.Explorer.EnterHold < 0 {
		return fmt.Errorf("explorer timings must be non-negative")
	}
	return nil
}
