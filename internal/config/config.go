package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

type GlobalConfig struct {
	Database Database `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Log      Log      `mapstructure:",squash"`
	Trace    Trace    `mapstructure:",squash"`
	Live     Live     `mapstructure:",squash"`
}

var config = &GlobalConfig{}

func init() {
	if err := defaults.Set(config); err != nil {
		fmt.Printf("set default err: %+v", err)
		os.Exit(1)
	}
}

func Global() *GlobalConfig {
	return config
}

// Load overlays environment variables on the defaults in conf.
func Load(conf *GlobalConfig) error {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()
	return v.Unmarshal(conf)
}
