package main

import (
	"errors"
	"fmt"
	"os"
	"travelbook/pkg/config"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "TRAVELBOOK"
	configFileName = ".travelbook"
	configFileType = "yaml"

	cfgKeyEndpoint = "endpoint"
	cfgKeyOutput   = "output"

	outputTable = "table"
	outputJSON  = "json"
)

// loadConfig resolves settings with precedence flag > TRAVELBOOK_* env >
// config file > default. A missing config file is not an error.
func loadConfig(configFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyEndpoint, config.DefaultAPIURL)
	v.SetDefault(cfgKeyOutput, outputTable)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for _, key := range []string{cfgKeyEndpoint, cfgKeyOutput} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	switch output := v.GetString(cfgKeyOutput); output {
	case outputTable, outputJSON:
	default:
		return nil, fmt.Errorf("invalid output %q (valid: %s, %s)", output, outputTable, outputJSON)
	}

	return v, nil
}
