package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
	"haircolor-mixer/repository"
)

// SyncService handles synchronization of catalog documents between Google Drive and PostgreSQL
// Implements SyncServiceInterface
type SyncService struct {
	driveService DriveServiceInterface
	repository   repository.CatalogRepositoryInterface
	options      catalog.LoadOptions
}

// NewSyncService creates a new SyncService
// Documents are validated with opts before they are stored
func NewSyncService(driveService DriveServiceInterface, repo repository.CatalogRepositoryInterface, opts catalog.LoadOptions) *SyncService {
	return &SyncService{
		driveService: driveService,
		repository:   repo,
		options:      opts,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncCatalog downloads the Drive file, validates it as a catalog and upserts it as JSON
// An invalid document is never stored
func (s *SyncService) SyncCatalog(ctx context.Context, fileID, name string) (bool, error) {
	logger.Info("🔄 SyncCatalog: starting", zap.String("fileId", fileID), zap.String("name", name))

	data, err := s.driveService.DownloadFile(ctx, fileID)
	if err != nil {
		return false, fmt.Errorf("failed to download catalog from Drive: %w", err)
	}

	opts := s.options
	opts.Source = "drive:" + fileID
	format := catalog.DetectFormat("", data)
	if _, err := catalog.Load(data, format, opts); err != nil {
		return false, err
	}
	if format == catalog.FormatYAML {
		if data, err = catalog.YAMLToJSON(data); err != nil {
			return false, err
		}
	}

	current, err := s.repository.GetDocument(ctx, name)
	switch {
	case err == nil:
		if bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(data)) {
			logger.Info("⏭️  SyncCatalog: document unchanged", zap.String("name", name))
			return false, nil
		}
	case !errors.Is(err, repository.ErrNotFound):
		return false, fmt.Errorf("failed to read stored catalog: %w", err)
	}

	if err := s.repository.SaveDocument(ctx, name, data); err != nil {
		return false, fmt.Errorf("failed to store catalog: %w", err)
	}
	logger.Info("✅ SyncCatalog: document stored", zap.String("name", name), zap.Int("bytes", len(data)))
	return true, nil
}
