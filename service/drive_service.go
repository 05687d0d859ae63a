package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
)

// maxDriveFileSize caps a downloaded catalog document
const maxDriveFileSize = catalog.MaxDocumentSize

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// DownloadFile downloads the content of a Drive file
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	logger.Info("📥 DownloadFile: downloading from Drive", zap.String("fileId", fileID))

	resp, err := ds.client.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	if len(data) > maxDriveFileSize {
		return nil, fmt.Errorf("drive file %s exceeds %d bytes", fileID, maxDriveFileSize)
	}

	logger.Info("✓ DownloadFile: downloaded", zap.String("fileId", fileID), zap.Int("bytes", len(data)))
	return data, nil
}
