package service

import (
	"context"
	"math"
	"regexp"
	"testing"

	"basemint-backend/internal/config"
	"basemint-backend/internal/generator"
	"basemint-backend/internal/model"
	"basemint-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cacheSize int) *NFTService {
	t.Helper()
	gen, err := generator.New()
	require.NoError(t, err)

	var store storage.Storage
	if cacheSize > 0 {
		mem, err := storage.NewMemoryStorage(cacheSize)
		require.NoError(t, err)
		store = mem
	}
	svc := NewNFTServiceWith(gen, store)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func testConfig(texture string, cache bool) *config.Config {
	return &config.Config{
		Generator: config.GeneratorConfig{
			TextureMode:    texture,
			ExternalURL:    generator.DefaultExternalURL,
			CollectionName: generator.DefaultCollectionName,
		},
		Cache: config.CacheConfig{Enabled: cache, Size: 8},
	}
}

func TestNewNFTService_CacheOnlyInSeededMode(t *testing.T) {
	seeded, err := NewNFTService(testConfig("seeded", true))
	require.NoError(t, err)
	assert.NotNil(t, seeded.storage)

	random, err := NewNFTService(testConfig("random", true))
	require.NoError(t, err)
	assert.Nil(t, random.storage)
	assert.Equal(t, generator.TextureRandom, random.Generator().TextureMode())

	disabled, err := NewNFTService(testConfig("seeded", false))
	require.NoError(t, err)
	assert.Nil(t, disabled.storage)

	_, err = NewNFTService(testConfig("sparkly", false))
	assert.Error(t, err)
}

func TestGenerate_UsesCache(t *testing.T) {
	svc := newTestService(t, 4)

	first, err := svc.Generate(9)
	require.NoError(t, err)
	second, err := svc.Generate(9)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, svc.storage.Len())
}

func TestGenerate_WithoutCacheStillDeterministic(t *testing.T) {
	svc := newTestService(t, 0)

	first, err := svc.GetNFT(9)
	require.NoError(t, err)
	second, err := svc.GetNFT(9)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(9), first.TokenID)
	assert.Equal(t, first.Image, first.Metadata.Image)
}

func TestGetMetadata(t *testing.T) {
	svc := newTestService(t, 4)

	meta, err := svc.GetMetadata(1)
	require.NoError(t, err)
	assert.Equal(t, "BaseMint Genesis #1", meta.Name)

	for _, id := range []int64{0, -5} {
		_, err := svc.GetMetadata(id)
		assert.ErrorIs(t, err, generator.ErrInvalidInput)
	}
	assert.Equal(t, 1, svc.storage.Len())
}

func TestGetImagePNG(t *testing.T) {
	svc := newTestService(t, 0)

	data, err := svc.GetImagePNG(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestGetPalette(t *testing.T) {
	svc := newTestService(t, 4)
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)

	palette, err := svc.GetPalette(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), palette.TokenID)
	require.NotEmpty(t, palette.Colors)
	assert.LessOrEqual(t, len(palette.Colors), DefaultPaletteSize)
	for _, c := range palette.Colors {
		assert.Regexp(t, hex, c.Hex)
		assert.Greater(t, c.Weight, 0.0)
	}

	three, err := svc.GetPalette(1, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(three.Colors), 3)

	for _, k := range []int{-1, MaxPaletteSize + 1} {
		_, err := svc.GetPalette(1, k)
		assert.ErrorIs(t, err, generator.ErrInvalidInput, "k=%d", k)
	}
	_, err = svc.GetPalette(0, 3)
	assert.ErrorIs(t, err, generator.ErrInvalidInput)
}

func collect(respChan <-chan model.NFTResponse, errChan <-chan error) ([]model.NFTResponse, error) {
	var out []model.NFTResponse
	for resp := range respChan {
		out = append(out, resp)
	}
	return out, <-errChan
}

func TestPreview(t *testing.T) {
	svc := newTestService(t, 8)

	items, err := collect(svc.Preview(context.Background(), 10, 3))
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, int64(10+i), item.TokenID)
		assert.NotEmpty(t, item.Image)
	}
}

func TestPreview_InvalidInput(t *testing.T) {
	svc := newTestService(t, 0)

	tests := []struct {
		start    int64
		quantity int
	}{
		{0, 1},
		{1, 0},
		{1, MaxPreviewQuantity + 1},
		{1, -3},
		{math.MaxInt64, 3},
		{math.MaxInt64 - 1, MaxPreviewQuantity},
	}
	for _, tt := range tests {
		items, err := collect(svc.Preview(context.Background(), tt.start, tt.quantity))
		assert.ErrorIs(t, err, generator.ErrInvalidInput, "%+v", tt)
		assert.Empty(t, items)
	}
}

func TestPreview_Cancelled(t *testing.T) {
	svc := newTestService(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := collect(svc.Preview(ctx, 1, 5))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, items)
}

func TestValidatePreview_WindowEdge(t *testing.T) {
	assert.NoError(t, ValidatePreview(math.MaxInt64, 1))
	assert.NoError(t, ValidatePreview(math.MaxInt64-2, 3))
	assert.NoError(t, ValidatePreview(math.MaxInt64-MaxPreviewQuantity+1, MaxPreviewQuantity))

	assert.ErrorIs(t, ValidatePreview(math.MaxInt64-1, 3), generator.ErrInvalidInput)
	assert.ErrorIs(t, ValidatePreview(math.MaxInt64, 2), generator.ErrInvalidInput)
}
