package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"accident-reconciliation/internal/config"
	"accident-reconciliation/internal/domain"
	"accident-reconciliation/internal/gateway"
	"accident-reconciliation/internal/logging"
	"accident-reconciliation/internal/usecase"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	verbose    bool

	cfg    *config.Config
	logger zerolog.Logger
	schema domain.Schema
	uc     *usecase.ReconciliationUseCase
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:           "reconciler",
		Short:         "Compare SAP and Power BI accident exports",
		Long:          "Reconcile the SAP accident export against the Power BI export by notification number\nand report missing notifications, equipment mismatches and date mismatches.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default .reconciler.yaml in . or $HOME)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (auto, console, json)")
	flags.String("profiles", "", "YAML file with extra category profiles and column names")
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("profiles_file", flags.Lookup("profiles"))

	cmd.AddCommand(
		newCompareCommand(a),
		newServeCommand(a),
		newProfilesCommand(a),
	)
	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	a.logger = logging.New(&logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})
	logging.SetDefault(a.logger)

	profiles, schema, err := config.LoadCatalog(cfg.ProfilesFile)
	if err != nil {
		return err
	}
	a.schema = schema
	a.uc = usecase.NewReconciliationUseCase(
		gateway.NewFileRecordRepository(schema),
		usecase.WithProfiles(profiles),
		usecase.WithSchema(schema),
	)

	a.logger.Debug().
		Str("config_file", cfg.ConfigFile).
		Str("profiles_file", cfg.ProfilesFile).
		Strs("profiles", profiles.Names()).
		Msg("Configuration loaded")
	return nil
}

func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, &a.logger)
}
