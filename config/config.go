package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseDbPath       string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DATABASE_CACHE_PORT"`
	StorageBucket        string `mapstructure:"STORAGE_BUCKET"`
	StorageRegion        string `mapstructure:"STORAGE_REGION"`
	StorageEndpoint      string `mapstructure:"STORAGE_ENDPOINT"`
	SessionTTLMinutes    int    `mapstructure:"SESSION_TTL_MINUTES"`
	FormTTLMinutes       int    `mapstructure:"FORM_TTL_MINUTES"`
	BcryptCost           int    `mapstructure:"BCRYPT_COST"`
	AdminUsername        string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword        string `mapstructure:"ADMIN_PASSWORD"`
	LogJSON              bool   `mapstructure:"LOG_JSON"`
}

func InitConfig() (Config, error) {
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_DB_PATH", "data/roaddogs.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("STORAGE_BUCKET", "rider-documents")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_ENDPOINT", "")
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("FORM_TTL_MINUTES", 120)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("ADMIN_USERNAME", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("LOG_JSON", false)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file is optional, env vars and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
