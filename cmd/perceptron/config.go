package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"github.com/YuminosukeSato/perceptron/sklearn/linear_model"
)

// config is the merged view of flags, PERCEPTRON_* environment variables and
// the optional config file, in that order of precedence.
type config struct {
	linear_model.PerceptronConfig `mapstructure:",squash"`

	LogLevel string `mapstructure:"log_level"`
}

// flagKeys maps config keys to the persistent flag names.
var flagKeys = map[string]string{
	"n_iter":      "n-iter",
	"lr":          "lr",
	"intercept":   "intercept",
	"standardize": "standardize",
	"seed":        "seed",
	"log_level":   "log-level",
}

func loadConfig(flags *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("perceptron")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			return nil, errors.Newf("flag %q is not registered", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", name)
		}
	}

	path := ""
	if flag := flags.Lookup("config"); flag != nil {
		path = flag.Value.String()
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("perceptron")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}
