package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	API  APIConfig  `mapstructure:"api"`
	Data DataConfig `mapstructure:"data"`
}

// APIConfig locates the remote coaching backend. The base URL is the
// single source of truth for the server address; nothing else in the
// program may hard-code it.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero means no client-side timeout; a hung request stays
	// in flight until the user gives up, matching the reference behavior.
	Timeout time.Duration `mapstructure:"timeout"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultDataDir returns the local state directory following XDG.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "calibra")
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// api.base_url -> CALIBRA_API_BASE_URL
	viper.SetEnvPrefix("calibra")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("api.base_url", "http://localhost:5000")
	viper.SetDefault("api.timeout", "0s")
	viper.SetDefault("data.dir", DefaultDataDir())

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; env vars and defaults suffice.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
