package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"haircolor-mixer/app"
	"haircolor-mixer/catalog"
	"haircolor-mixer/config"
	"haircolor-mixer/db"
	"haircolor-mixer/logger"
)

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "haircolor",
	Short: "Hair color formula mixer",
	Long: `haircolor blends hair color pigments by ratio into a predicted display color.

It serves the formula mixer HTTP API and offers one-shot blends, quick recipes
and amount splits from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if err := logger.Init(loaded.Logging.Level, loaded.Logging.Format); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./haircolor.yaml)")

	// Catalog flags
	rootCmd.PersistentFlags().String("catalog-source", config.SourceFile, "catalog source (file, http, drive, postgres)")
	rootCmd.PersistentFlags().String("catalog", "data/color-database.json", "catalog file path")
	rootCmd.PersistentFlags().String("catalog-url", "", "catalog URL for the http source")

	// Blend flags
	rootCmd.PersistentFlags().String("resolve", "priority", "pigment resolution (priority, explicit)")
	rootCmd.PersistentFlags().String("brand", "qualucia", "active brand")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	_ = v.BindPFlag("catalog.source", rootCmd.PersistentFlags().Lookup("catalog-source"))
	_ = v.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = v.BindPFlag("catalog.url", rootCmd.PersistentFlags().Lookup("catalog-url"))
	_ = v.BindPFlag("blend.resolve", rootCmd.PersistentFlags().Lookup("resolve"))
	_ = v.BindPFlag("blend.default_brand", rootCmd.PersistentFlags().Lookup("brand"))
	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd, blendCmd, recipesCmd, splitCmd, catalogCmd)
}

// loadCatalog loads the configured catalog synchronously
// A load failure is returned as is so the command exits with status 1
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if cfg.Catalog.Source == config.SourcePostgres {
		if err := db.InitDB(ctx, cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.CloseDB()
	}

	src, err := app.NewCatalogSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.LoadFrom(ctx, src, app.LoadOptions(cfg, src.Name()))
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog loaded", zap.Strings("brands", cat.Brands()))
	return cat, nil
}
