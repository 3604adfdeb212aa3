package config

import (
	"os"

	"cardrush-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the card room server
type Config struct {
	loaded bool

	// ListenAddr is the TCP address the game hub listens on
	ListenAddr string `yaml:"listenAddr" envconfig:"listen_addr"`

	// APIAddr is the HTTP address for the status API and websocket gateway
	APIAddr string `yaml:"apiAddr" envconfig:"api_addr"`

	Game struct {
		// DurationSeconds is how long a match may run before it is judged
		DurationSeconds int `yaml:"durationSeconds" envconfig:"duration_seconds"`
	}

	Chat struct {
		// BadWordsPath is the moderation word list, one word per line
		BadWordsPath string `yaml:"badWordsPath" envconfig:"bad_words_path"`

		// MaxWarnings is the number of flagged messages before a mute
		MaxWarnings int `yaml:"maxWarnings" envconfig:"max_warnings"`

		// MuteSeconds is how long a mute lasts
		MuteSeconds int `yaml:"muteSeconds" envconfig:"mute_seconds"`
	}

	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	var c Config
	c.ListenAddr = ":5001"
	c.APIAddr = ":5000"
	c.Game.DurationSeconds = 30
	c.Chat.BadWordsPath = "badwords.txt"
	c.Chat.MaxWarnings = 3
	c.Chat.MuteSeconds = 30

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration: built-in defaults, then the YAML file if
// present, then CARDRUSH_* environment overrides
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CARDRUSH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cardrush", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
