package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type APIConfig struct {
	Port        int `mapstructure:"port"`
	MetricsPort int `mapstructure:"metrics_port"`
}

func (config APIConfig) validate() error {

	if config.Port <= 0 {
		return fmt.Errorf("missing variable: api port")
	}

	if config.MetricsPort <= 0 {
		return fmt.Errorf("missing variable: api metrics port")
	}

	if config.Port == config.MetricsPort {
		return fmt.Errorf("api port and metrics port must differ")
	}

	return nil
}

func (config APIConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("api.port", "PORT"); err != nil {
		return err
	}

	return viper.BindEnv("api.metrics_port", "METRICS_PORT")
}
