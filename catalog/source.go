package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"haircolor-mixer/logger"
)

// MaxDocumentSize caps a fetched catalog document
const MaxDocumentSize = 8 << 20

// Source fetches the raw catalog document
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, Format, error)
}

// DetectFormat picks YAML for .yaml/.yml names, JSON for .json, and sniffs otherwise
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// FileSource reads the document from a local path
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	path := s.Path
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog file: %w", err)
	}
	return data, DetectFormat(path, data), nil
}

// HTTPSource downloads the document with a GET request
type HTTPSource struct {
	URL     string
	Client  *http.Client
	MaxSize int64 // 0 means MaxDocumentSize
}

func (s HTTPSource) Name() string { return "http:" + s.URL }

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}
	limit := s.MaxSize
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog response: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("catalog response exceeds %d bytes", limit)
	}

	name := req.URL.Path
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		name = "document.yaml"
	}
	return data, DetectFormat(name, data), nil
}

// FileDownloader downloads a file by ID (Google Drive)
type FileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// DriveSource reads the document from a Google Drive file
type DriveSource struct {
	FileID     string
	Downloader FileDownloader
}

func (s DriveSource) Name() string { return "drive:" + s.FileID }

func (s DriveSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	data, err := s.Downloader.DownloadFile(ctx, s.FileID)
	if err != nil {
		return nil, "", err
	}
	return data, DetectFormat("", data), nil
}

// DocumentStore returns a stored document by name (PostgreSQL)
type DocumentStore interface {
	GetDocument(ctx context.Context, name string) ([]byte, error)
}

// StoreSource reads the document from a DocumentStore row
type StoreSource struct {
	DocumentName string
	Store        DocumentStore
}

func (s StoreSource) Name() string { return "postgres:" + s.DocumentName }

func (s StoreSource) Fetch(ctx context.Context) ([]byte, Format, error) {
	data, err := s.Store.GetDocument(ctx, s.DocumentName)
	if err != nil {
		return nil, "", err
	}
	return data, DetectFormat("", data), nil
}

// LoadFrom fetches the document from src and parses it
// A fetch failure is reported as a *LoadError like a malformed document
func LoadFrom(ctx context.Context, src Source, opts LoadOptions) (*Catalog, error) {
	if opts.Source == "" {
		opts.Source = src.Name()
	}
	logger.Info("Catalog: fetching document", zap.String("source", opts.Source))

	data, format, err := src.Fetch(ctx)
	if err != nil {
		return nil, loadErr(opts.Source, "source unreachable", err)
	}
	return Load(data, format, opts)
}

// Start loads the catalog in the background and resolves h with the outcome
func Start(ctx context.Context, h *Holder, src Source, opts LoadOptions) {
	go func() {
		cat, err := LoadFrom(ctx, src, opts)
		if err != nil {
			logger.Error("❌ Catalog: load failed", zap.Error(err))
			h.Fail(err)
			return
		}
		h.Set(cat)
	}()
}
