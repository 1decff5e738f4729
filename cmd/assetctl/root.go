package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"assetlib/internal/catalog"
	"assetlib/internal/config"
	"assetlib/internal/infrastructure"
	"assetlib/internal/services"
	"assetlib/internal/storage"
)

type rootOptions struct {
	configPath string
	driver     string
	dataDir    string
	sqlitePath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "assetctl",
		Short:         "Search, export and curate the asset library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (defaults to "+config.EnvPrefix+"_CONFIG)")
	flags.StringVar(&opts.driver, "driver", "", "storage driver: memory, file or sqlite")
	flags.StringVar(&opts.dataDir, "data-dir", "", "data directory of the file driver")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "", "database file of the sqlite driver")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging, to stderr unless the config names a log file")

	cmd.AddCommand(
		newSearchCmd(opts),
		newExportCmd(opts),
		newFavoritesCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// library is the service graph the subcommands run against
type library struct {
	store   storage.Store
	catalog *catalog.Catalog
	assets  *services.AssetService
}

func (l *library) Close() error {
	err := l.store.Close()
	infrastructure.CloseLogFile()
	return err
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.driver != "" {
		cfg.Storage.Driver = o.driver
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}
	if o.sqlitePath != "" {
		cfg.Storage.SQLitePath = o.sqlitePath
	}
	return cfg, nil
}

// logger is silent unless --verbose is set. Console output goes to stderr
// so it never mixes with command output.
func (o *rootOptions) logger(cfg *config.Config) (*slog.Logger, error) {
	if !o.verbose {
		return slog.New(slog.DiscardHandler), nil
	}
	logging := cfg.Logging
	logging.Level = "debug"
	if logging.Output == "" || logging.Output == "console" {
		logging.Output = "stderr"
	}
	return infrastructure.InitializeLogger(logging)
}

// open builds the services over the configured store. Changes are written
// through to the store, so they persist for the file and sqlite drivers.
func (o *rootOptions) open(ctx context.Context, cmd *cobra.Command) (*library, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := o.logger(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	paths, err := cfg.GetPaths()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirectories(cfg.Storage.Driver); err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage, paths)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}

	cat, err := catalog.Open(ctx, store, catalog.DefaultSeed())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	logger.DebugContext(ctx, "Library opened",
		slog.String("command", cmd.Name()),
		slog.String("driver", cfg.Storage.Driver))

	kpis := services.NewKpiService(cat.KPIs, nil, logger)
	layouts := services.NewLayoutService(cat.Layouts, nil, logger)
	storyboards := services.NewStoryboardService(cat.Storyboards, nil, logger)

	return &library{
		store:   store,
		catalog: cat,
		assets:  services.NewAssetService(kpis, layouts, storyboards, cat.State, nil, logger),
	}, nil
}
