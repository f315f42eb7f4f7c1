package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		}
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	}
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Concierge ConciergeConfig `mapstructure:"concierge"`
	Search    SearchConfig    `mapstructure:"search"`
}

// AuthConfig carries JWT verification settings. SecretKey is only ever read
// from the environment so it never lands in a config file.
type AuthConfig struct {
	SecretKey    string `mapstructure:"-"`
	Issuer       string `mapstructure:"issuer"`
	Audience     string `mapstructure:"audience"`
	TravelerRole string `mapstructure:"travelerRole"`
}

// ConciergeConfig selects the itinerary generation mode for the whole process.
// The mode is a deployment decision, never a per-request one.
type ConciergeConfig struct {
	UseGenerative bool   `mapstructure:"useGenerative"`
	Model         string `mapstructure:"model"`
}

type SearchConfig struct {
	APIKey     string        `mapstructure:"-"`
	BaseURL    string        `mapstructure:"baseURL"`
	MaxResults int           `mapstructure:"maxResults"`
	Timeout    time.Duration `mapstructure:"timeout"`
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

	// Secrets come from the environment only.
	config.Auth.SecretKey = os.Getenv("JWT_SECRET")
	config.Search.APIKey = os.Getenv("TAVILY_API_KEY")
	if pw := os.Getenv("POSTGRES_PASSWORD"); pw != "" {
		config.Repositories.Postgres.Password = pw
	}

	if config.Search.MaxResults <= 0 {
		config.Search.MaxResults = 5
	}
	if config.Auth.TravelerRole == "" {
		config.Auth.TravelerRole = "TRAVELER"
	}

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
