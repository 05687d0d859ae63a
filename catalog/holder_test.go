package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_NotReady(t *testing.T) {
	h := NewHolder()

	cat, err := h.Get()
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, ErrCatalogNotReady)
	assert.False(t, h.Ready())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHolder_SetOnce(t *testing.T) {
	first := &Catalog{}
	h := NewHolder()

	assert.True(t, h.Set(first))
	assert.False(t, h.Set(&Catalog{}), "catalog is never reloaded")
	assert.False(t, h.Fail(errors.New("late failure")))

	cat, err := h.Get()
	require.NoError(t, err)
	assert.Same(t, first, cat)
	assert.True(t, h.Ready())
}

func TestHolder_Fail(t *testing.T) {
	h := NewHolder()
	loadErr := &LoadError{Source: "file:x.json", Reason: "missing pigment brand \"blcolor\""}
	h.Fail(loadErr)

	cat, err := h.Get()
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.Contains(t, err.Error(), "blcolor")
	assert.False(t, h.Ready())
}

func TestHolder_SetNilFails(t *testing.T) {
	h := NewHolder()
	assert.True(t, h.Set(nil))

	cat, err := h.Get()
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.Contains(t, err.Error(), "nil catalog")
	assert.False(t, h.Ready())
	assert.False(t, h.Set(&Catalog{}), "holder stays failed")
}

func TestHolder_WaitUnblocksOnSet(t *testing.T) {
	h := NewHolder()
	want := &Catalog{}

	go func() {
		time.Sleep(5 * time.Millisecond)
		h.Set(want)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cat, err := h.Wait(ctx)
	require.NoError(t, err)
	assert.Same(t, want, cat)
}

func TestStart_ResolvesHolder(t *testing.T) {
	h := NewHolder()
	Start(context.Background(), h, stubStore{docs: map[string][]byte{"default": []byte(testDocument)}}.source("default"), LoadOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cat, err := h.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, cat.HasBrand("qualucia"))
}

func (s stubStore) source(name string) Source {
	return StoreSource{DocumentName: name, Store: s}
}
