package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeslabs/infrastructure/config"
)

// app holds what PersistentPreRunE resolved for the sub-commands.
type app struct {
	configFile string
	cfg        config.Config
	logger     *slog.Logger
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"addr":            config.KeyAddr,
	"db":              config.KeySQLitePath,
	"api-base-url":    config.KeyAPIBaseURL,
	"public-base-url": config.KeyPublicBaseURL,
	"log-level":       config.KeyLogLevel,
	"log-format":      config.KeyLogFormat,
	"seed-file":       config.KeySeedFile,
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "codeslabs",
		Short:         "Codes-Labs site, admin console and content API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(a.configFile)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if a.cfg, err = config.Load(v); err != nil {
				return err
			}
			a.logger = config.NewLogger(a.cfg, cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./codeslabs.yaml when present)")
	pf.String("db", "", "SQLite database path")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")

	root.AddCommand(newServeCmd(a), newSeedCmd(a))
	return root
}

// bindFlags binds every known flag present on fs; only flags the user set
// override env and file values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
