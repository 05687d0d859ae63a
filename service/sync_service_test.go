package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haircolor-mixer/catalog"
	"haircolor-mixer/repository"
)

type fakeDrive struct {
	files map[string][]byte
}

func (f fakeDrive) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

type memoryCatalogRepo struct {
	docs  map[string][]byte
	saves int
}

func (m *memoryCatalogRepo) GetDocument(ctx context.Context, name string) ([]byte, error) {
	doc, ok := m.docs[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return doc, nil
}

func (m *memoryCatalogRepo) SaveDocument(ctx context.Context, name string, document []byte) error {
	m.docs[name] = document
	m.saves++
	return nil
}

func (m *memoryCatalogRepo) ListDocuments(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	return names, nil
}

func TestSyncCatalog(t *testing.T) {
	drive := fakeDrive{files: map[string][]byte{
		"good":   []byte(serviceTestDocument),
		"broken": []byte(`{"qualucia": {}}`),
		"yaml":   []byte("qualucia:\n  colors:\n    10GR: {rgb: [184, 160, 137]}\npreset_colors: {}\nquick_recipes: {}\n"),
	}}
	repo := &memoryCatalogRepo{docs: map[string][]byte{}}
	svc := NewSyncService(drive, repo, catalog.LoadOptions{RequiredBrands: []string{"qualucia"}})
	ctx := context.Background()

	changed, err := svc.SyncCatalog(ctx, "good", "default")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, repo.saves)

	changed, err = svc.SyncCatalog(ctx, "good", "default")
	require.NoError(t, err)
	assert.False(t, changed, "identical content is not rewritten")
	assert.Equal(t, 1, repo.saves)

	_, err = svc.SyncCatalog(ctx, "broken", "default")
	assert.ErrorIs(t, err, catalog.ErrCatalogLoad)
	assert.Equal(t, 1, repo.saves)

	_, err = svc.SyncCatalog(ctx, "missing", "default")
	assert.Error(t, err)

	changed, err = svc.SyncCatalog(ctx, "yaml", "from-yaml")
	require.NoError(t, err)
	assert.True(t, changed)
	cat, err := catalog.Load(repo.docs["from-yaml"], catalog.FormatJSON, catalog.LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cat.HasBrand("qualucia"))
}
