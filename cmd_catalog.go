package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"haircolor-mixer/catalog"
	"haircolor-mixer/db"
	"haircolor-mixer/logger"
	"haircolor-mixer/repository"
	"haircolor-mixer/service"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check the catalog or manage catalog documents stored in PostgreSQL",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the configured catalog and report its contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, b := range cat.BrandSummaries() {
			fmt.Fprintf(out, "%d. %-10s %d pigments\n", b.Priority, b.Name, b.PigmentCount)
		}
		fmt.Fprintf(out, "%d presets, %d quick recipes\n", len(cat.Presets()), len(cat.Recipes()))
		for _, missing := range cat.UnresolvedRecipeIngredients() {
			fmt.Fprintln(out, invalidStyle.Render("unresolved recipe ingredient: "+missing))
		}
		return nil
	},
}

var catalogPushCmd = &cobra.Command{
	Use:   "push FILE",
	Short: "Validate a catalog document and store it under catalog.name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		format := catalog.DetectFormat(args[0], data)
		if _, err := catalog.Load(data, format, catalog.LoadOptions{
			Source:         args[0],
			RequiredBrands: cfg.Catalog.RequiredBrands,
		}); err != nil {
			return err
		}
		if format == catalog.FormatYAML {
			if data, err = catalog.YAMLToJSON(data); err != nil {
				return err
			}
		}

		if err := db.InitDB(cmd.Context(), cfg.Database.URL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.CloseDB()

		if err := repository.NewCatalogRepository(nil).SaveDocument(cmd.Context(), cfg.Catalog.Name, data); err != nil {
			return err
		}
		logger.Info("✅ CatalogPush: document stored", zap.String("name", cfg.Catalog.Name), zap.String("file", args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s as %q\n", args[0], cfg.Catalog.Name)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog documents stored in PostgreSQL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.InitDB(cmd.Context(), cfg.Database.URL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.CloseDB()

		names, err := repository.NewCatalogRepository(nil).ListDocuments(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the catalog document from Google Drive into PostgreSQL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Catalog.DriveFileID == "" || cfg.Google.CredentialsFile == "" {
			return fmt.Errorf("catalog.drive_file_id and google.credentials_file are required")
		}
		driveService, err := service.NewDriveService(cmd.Context(), cfg.Google.CredentialsFile)
		if err != nil {
			return err
		}
		if err := db.InitDB(cmd.Context(), cfg.Database.URL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.CloseDB()

		sync := service.NewSyncService(driveService, repository.NewCatalogRepository(nil),
			catalog.LoadOptions{RequiredBrands: cfg.Catalog.RequiredBrands})
		changed, err := sync.SyncCatalog(cmd.Context(), cfg.Catalog.DriveFileID, cfg.Catalog.Name)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.OutOrStdout(), "stored drive:%s as %q\n", cfg.Catalog.DriveFileID, cfg.Catalog.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%q is up to date\n", cfg.Catalog.Name)
		}
		return nil
	},
}

func init() {
	catalogSyncCmd.Flags().String("drive-file-id", "", "Google Drive file ID (default catalog.drive_file_id)")
	_ = v.BindPFlag("catalog.drive_file_id", catalogSyncCmd.Flags().Lookup("drive-file-id"))
	catalogPushCmd.Flags().String("name", "", "document name (default catalog.name)")
	_ = v.BindPFlag("catalog.name", catalogPushCmd.Flags().Lookup("name"))
	catalogCmd.AddCommand(catalogCheckCmd, catalogPushCmd, catalogListCmd, catalogSyncCmd)
}
