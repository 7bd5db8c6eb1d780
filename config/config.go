package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"server"`
	Providers struct {
		GeocodeBaseURL string        `mapstructure:"geocodeBaseURL"`
		PlacesBaseURL  string        `mapstructure:"placesBaseURL"`
		APIKeyEnv      string        `mapstructure:"apiKeyEnv"`
		Timeout        time.Duration `mapstructure:"timeout"`
	} `mapstructure:"providers"`
	Engine struct {
		DefaultRadiusMiles   float64       `mapstructure:"defaultRadiusMiles"`
		CacheTTL             time.Duration `mapstructure:"cacheTTL"`
		CacheCleanupInterval time.Duration `mapstructure:"cacheCleanupInterval"`
	} `mapstructure:"engine"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
