package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"haircolor-mixer/logger"
)

// DB holds the database connection
var DB *sql.DB

// schema creates the table holding catalog documents
// document is JSON, not JSONB: brand key order is significant
const schema = `
	CREATE TABLE IF NOT EXISTS color_catalogs (
		name       TEXT PRIMARY KEY,
		document   JSON NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// ConnString returns url, or a connection string built from DATABASE_URL / DB_* variables
func ConnString(url string) (string, error) {
	if url != "" {
		return url, nil
	}
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode), nil
}

// InitDB opens the pgx connection, pings it and creates the catalog table
func InitDB(ctx context.Context, url string) error {
	connStr, err := ConnString(url)
	if err != nil {
		return err
	}

	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create color_catalogs table: %w", err)
	}

	logger.Info("✓ Database connection established successfully", zap.String("driver", "pgx"))
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
