package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	UploadDir   string `mapstructure:"UPLOAD_DIR"`
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBPort      string `mapstructure:"DB_PORT"`
}

func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("app") // Name of our config file (without extension)
	viper.SetConfigType("env") // Look for .env extension

	viper.AutomaticEnv() // Read environment variables that match

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using environment variables or defaults.")
		} else {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
