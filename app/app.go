package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"haircolor-mixer/app/controller"
	"haircolor-mixer/app/router"
	"haircolor-mixer/catalog"
	"haircolor-mixer/config"
	"haircolor-mixer/db"
	"haircolor-mixer/llm/gemini"
	"haircolor-mixer/logger"
	"haircolor-mixer/repository"
	"haircolor-mixer/service"
)

// janitorInterval is how often idle formula sessions are expired
const janitorInterval = time.Minute

// App is the wired HTTP application
type App struct {
	Handler  http.Handler
	Catalogs *catalog.Holder
	Formulas *service.FormulaService

	usesDB bool
}

// NewCatalogSource builds the catalog source selected by cfg.Catalog.Source
// The postgres source needs db.InitDB to have run; the drive source opens a Drive client
func NewCatalogSource(ctx context.Context, cfg *config.Config) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.FileSource{Path: cfg.Catalog.Path}, nil
	case config.SourceHTTP:
		return catalog.HTTPSource{URL: cfg.Catalog.URL, Client: &http.Client{Timeout: 30 * time.Second}}, nil
	case config.SourceDrive:
		driveService, err := service.NewDriveService(ctx, cfg.Google.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return catalog.DriveSource{FileID: cfg.Catalog.DriveFileID, Downloader: driveService}, nil
	case config.SourcePostgres:
		return catalog.StoreSource{DocumentName: cfg.Catalog.Name, Store: repository.NewCatalogRepository(nil)}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// LoadOptions converts the catalog configuration to loader options
func LoadOptions(cfg *config.Config, source string) catalog.LoadOptions {
	return catalog.LoadOptions{
		Source:         source,
		RequiredBrands: cfg.Catalog.RequiredBrands,
		BrandPriority:  cfg.Catalog.BrandPriority,
	}
}

// NewRecipeGenerator returns the generator selected by cfg.AI.Provider
func NewRecipeGenerator(cfg *config.Config) service.RecipeGenerator {
	if cfg.AI.Provider == config.ProviderGemini {
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.AI.GeminiAPIKey,
			Model:   cfg.AI.GeminiModel,
			Timeout: cfg.AI.Timeout,
		})
	}
	return &service.MockRecipeGenerator{}
}

// Initialize initializes the application
// The catalog loads in the background; requests made before it is ready answer 503
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Catalogs: catalog.NewHolder()}

	if cfg.Catalog.Source == config.SourcePostgres {
		if err := db.InitDB(ctx, cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.usesDB = true
	}

	src, err := NewCatalogSource(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	catalog.Start(ctx, a.Catalogs, src, LoadOptions(cfg, src.Name()))

	// Initialize services
	resolve := cfg.ResolveMode()
	formulaRepo := repository.NewFormulaRepository()
	a.Formulas = service.NewFormulaService(formulaRepo, a.Catalogs, cfg.Blend.DefaultBrand, resolve)
	advisor := service.NewRecipeAdvisor(NewRecipeGenerator(cfg), a.Catalogs, cfg.AI.Timeout)
	cards := service.NewCardService(cfg.Server.BaseURL, cfg.Render.TemplateDir, cfg.Render.ChromePath)
	swatches := service.NewSwatchService()

	a.Formulas.OnExpire(advisor.Forget)
	go a.Formulas.RunJanitor(ctx, cfg.Server.SessionTTL, janitorInterval)

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(a.Catalogs),
		Blend:   controller.NewBlendController(a.Catalogs, swatches, cfg.Blend.DefaultBrand, resolve),
		Formula: controller.NewFormulaController(a.Formulas, advisor, cards, swatches),
	}

	// Setup routes using standard http router
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = mux

	logger.Info("✓ Application initialized",
		zap.String("catalogSource", src.Name()),
		zap.String("aiProvider", advisor.Provider()),
		zap.String("resolve", string(resolve)))
	return a, nil
}

// Close releases the database connection, if one was opened
func (a *App) Close() {
	if !a.usesDB {
		return
	}
	if err := db.CloseDB(); err != nil {
		logger.Warn("⚠️  Close: failed to close database", zap.Error(err))
	}
}
