package util

import (
	"fmt"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	viper.SetDefault("DIRECTORY_PATH", "./data/database.json")
	viper.SetDefault("STATIC_DIR", "./static")
	viper.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("ACQUIRE_TIMEOUT", "60s")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
