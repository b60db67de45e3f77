package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/perceptron/pkg/log"
	"github.com/YuminosukeSato/perceptron/sklearn/linear_model"
)

// app holds state shared by the subcommands once flags and config are parsed.
type app struct {
	cfg    *config
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := linear_model.DefaultPerceptronConfig()

	root := &cobra.Command{
		Use:          "perceptron",
		Short:        "Train a binary perceptron classifier",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	fs := root.PersistentFlags()
	fs.StringP("config", "c", "", "config file (default ./perceptron.yaml if present)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Int("n-iter", defaults.NIter, "maximum number of passes over the data")
	fs.Float64("lr", defaults.LearningRate, "learning rate")
	fs.Bool("intercept", defaults.FitIntercept, "append a constant-1 intercept column")
	fs.Bool("standardize", defaults.Standardize, "standardize features before training")
	fs.Int64("seed", defaults.RandomState, "seed for weight initialization, negative for time based")

	root.AddCommand(newTrainCmd(a), newDemoCmd(a))
	return root
}

// init loads configuration and installs the loggers. Warnings from the
// trainer go to stderr through zerolog.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := log.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zl := zerolog.New(cmd.ErrOrStderr()).Level(level).
		With().Timestamp().Str("component", "perceptron").Logger()
	log.InstallZerologWarnings(zl)

	a.cfg = cfg
	a.logger = log.GetLogger().With(log.ComponentKey, "cmd")
	return nil
}
