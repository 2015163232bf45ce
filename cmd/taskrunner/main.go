package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/taskrunner/internal/config"
)

const envPrefix = "TASKRUNNER"

func main() {
	cfg, err := config.NewConfigurationWithDefaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := NewRootCommand(cfg)
	root.AddCommand(NewServeCommand(cfg), NewBenchCommand(), NewReportCommand(cfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	var (
		configFile = &cobraflags.StringFlag{
			Name:       "config",
			Usage:      "Optional config file (yaml, json or toml), keys are flag names",
			Persistent: true,
		}
		logFormat = &cobraflags.StringFlag{
			Name:       "log-format",
			Value:      cfg.LogFormat,
			Usage:      "Log format: console or json",
			Persistent: true,
		}
		logLevel = &cobraflags.StringFlag{
			Name:       "log-level",
			Value:      cfg.LogLevel,
			Usage:      "Log level: debug, info, warn or error",
			Persistent: true,
		}
	)

	cmd := &cobra.Command{
		Use:           "taskrunner",
		Short:         "Bounded-concurrency dispatch of work items",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: cobrautil.CommandStack(
			func(_ *cobra.Command, _ []string) error {
				return loadConfigFile(configFile.GetString())
			},
			func(_ *cobra.Command, _ []string) error {
				cfg.WithOptions(
					config.WithLogFormat(logFormat.GetString()),
					config.WithLogLevel(logLevel.GetString()),
				)
				return setupLogging(cfg.LogFormat, cfg.LogLevel)
			},
		),
	}

	cobraflags.Register(cmd, configFile, logFormat, logLevel)
	cobraflags.CobraOnInitialize(envPrefix, cmd)

	return cmd
}

// loadConfigFile merges the config file into viper. Flags set on the command
// line and TASKRUNNER_* variables still win over it.
func loadConfigFile(path string) error {
	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func setupLogging(format, level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var zc zap.Config
	switch format {
	case "json":
		zc = zap.NewProductionConfig()
	default:
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}
