package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Bot struct {
		Prefix string `mapstructure:"prefix" validate:"required"`
	} `mapstructure:"bot"`
	Discord struct {
		Token string `mapstructure:"token" validate:"required"`
	} `mapstructure:"discord"`
	Database struct {
		Driver   string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
		Path     string `mapstructure:"path"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Games struct {
		AnswerTimeout time.Duration `mapstructure:"answer_timeout" validate:"gt=0"`
	} `mapstructure:"games"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var AppConfig Config

var validate = validator.New()

// LoadConfig reads config.yml from path when present and overlays the
// environment. Nested keys map to env vars with dots replaced by
// underscores (database.path -> DATABASE_PATH). The bot token and prefix
// also answer to DISCORD_TOKEN and PREFIX.
func LoadConfig(path string) error {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	_ = v.BindEnv("discord.token", "DISCORD_TOKEN")
	_ = v.BindEnv("bot.prefix", "BOT_PREFIX", "PREFIX")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	AppConfig = cfg
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.prefix", "!")
	v.SetDefault("discord.token", "")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "economy.sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "economy")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("server.port", "")
	v.SetDefault("games.answer_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
}
