package service

import "context"

// SyncServiceInterface defines the contract for catalog synchronization operations
type SyncServiceInterface interface {
	// SyncCatalog copies a catalog document from Google Drive into PostgreSQL under name.
	// changed is false when the stored document already has identical content.
	SyncCatalog(ctx context.Context, fileID, name string) (changed bool, err error)
}
