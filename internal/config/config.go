// Package config loads application configuration from a YAML file with
// APP_* environment overrides.
package config

import (
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	App struct {
		Env string

		// BusinessName shows up on rendered invoices.
		BusinessName string `mapstructure:"business_name"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN      string
		MaxConns int32 `mapstructure:"max_conns"`
		MinConns int32 `mapstructure:"min_conns"`
	} `mapstructure:"postgres"`

	Log struct {
		Level string
	} `mapstructure:"log"`
}

// Load reads configuration from the given path.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.business_name", "ConsignKeep")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
