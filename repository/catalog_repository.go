package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"haircolor-mixer/db"
	"haircolor-mixer/logger"
)

// CatalogRepository stores catalog documents in the color_catalogs table
type CatalogRepository struct {
	conn *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository
// A nil conn uses the shared db.DB connection
func NewCatalogRepository(conn *sql.DB) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

func (r *CatalogRepository) db() (*sql.DB, error) {
	if r.conn != nil {
		return r.conn, nil
	}
	if db.DB == nil {
		return nil, errors.New("database not initialized")
	}
	return db.DB, nil
}

// GetDocument returns the JSON document stored under name
func (r *CatalogRepository) GetDocument(ctx context.Context, name string) ([]byte, error) {
	logger.Debug("🔍 GetDocument: fetching catalog document", zap.String("name", name))

	conn, err := r.db()
	if err != nil {
		return nil, err
	}

	var document []byte
	query := `SELECT document::text FROM color_catalogs WHERE name = $1`
	err = conn.QueryRowContext(ctx, query, name).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog document %q: %w", name, ErrNotFound)
	}
	if err != nil {
		logger.Error("❌ Error querying catalog document", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to query catalog document: %w", err)
	}

	logger.Debug("✅ GetDocument: document loaded", zap.String("name", name), zap.Int("bytes", len(document)))
	return document, nil
}

// SaveDocument inserts or replaces the document stored under name
// The document must be valid JSON
func (r *CatalogRepository) SaveDocument(ctx context.Context, name string, document []byte) error {
	if !json.Valid(document) {
		return fmt.Errorf("catalog document %q is not valid JSON", name)
	}

	conn, err := r.db()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO color_catalogs (name, document, updated_at)
		VALUES ($1, $2::json, now())
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document, updated_at = now()
	`
	if _, err := conn.ExecContext(ctx, query, name, string(document)); err != nil {
		logger.Error("❌ Error saving catalog document", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("failed to save catalog document: %w", err)
	}

	logger.Info("✅ SaveDocument: catalog document stored", zap.String("name", name))
	return nil
}

// ListDocuments returns the stored document names, most recently updated first
func (r *CatalogRepository) ListDocuments(ctx context.Context) ([]string, error) {
	conn, err := r.db()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `SELECT name FROM color_catalogs ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan catalog document name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog documents: %w", err)
	}
	return names, nil
}
