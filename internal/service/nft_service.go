package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"math"
	"time"

	"basemint-backend/internal/config"
	"basemint-backend/internal/generator"
	"basemint-backend/internal/model"
	"basemint-backend/internal/storage"
	"basemint-backend/pkg/logger"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultPaletteSize = 5
	MaxPaletteSize     = 16
	MaxPreviewQuantity = 5
)

// NFTService 封装生成器，负责缓存、日志以及批量预览
type NFTService struct {
	generator *generator.Generator
	storage   storage.Storage // nil 表示不缓存
}

func NewNFTService(cfg *config.Config) (*NFTService, error) {
	gen, err := generator.New(
		generator.WithTextureMode(generator.TextureMode(cfg.Generator.TextureMode)),
		generator.WithExternalURL(cfg.Generator.ExternalURL),
		generator.WithCollectionName(cfg.Generator.CollectionName),
	)
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}

	var store storage.Storage
	// random 模式下同一 token 每次纹理不同，缓存会冻结第一次的结果
	if cfg.Cache.Enabled && gen.TextureMode() == generator.TextureSeeded {
		mem, err := storage.NewMemoryStorage(cfg.Cache.Size)
		if err != nil {
			return nil, err
		}
		store = mem
	}

	logger.Infof("NFT service ready: texture_mode=%s cache=%t", gen.TextureMode(), store != nil)
	return NewNFTServiceWith(gen, store), nil
}

// NewNFTServiceWith 使用现成的生成器和存储构造服务，store 可为 nil
func NewNFTServiceWith(gen *generator.Generator, store storage.Storage) *NFTService {
	return &NFTService{generator: gen, storage: store}
}

func (s *NFTService) Generator() *generator.Generator {
	return s.generator
}

// Generate 返回 tokenID 的完整生成结果，命中缓存时不重新渲染
func (s *NFTService) Generate(tokenID int64) (*generator.GeneratedNFT, error) {
	if s.storage != nil {
		if nft, err := s.storage.Get(tokenID); err == nil {
			logger.Debugf("cache hit for token %d", tokenID)
			return nft, nil
		}
	}

	start := time.Now()
	nft, err := s.generator.Generate(tokenID)
	if err != nil {
		if !errors.Is(err, generator.ErrInvalidInput) {
			logger.WithFields(logger.Fields{"token_id": tokenID}).Errorf("生成失败: %v", err)
		}
		return nil, err
	}
	logger.WithFields(logger.Fields{
		"token_id":    tokenID,
		"expression":  nft.Traits.Expression.String(),
		"accessories": len(nft.Traits.Accessories()),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	}).Debug("token generated")

	if s.storage != nil {
		if err := s.storage.Put(nft); err != nil {
			logger.Warnf("缓存 token %d 失败: %v", tokenID, err)
		}
	}
	return nft, nil
}

func (s *NFTService) GetMetadata(tokenID int64) (*model.AssetMetadata, error) {
	nft, err := s.Generate(tokenID)
	if err != nil {
		return nil, err
	}
	return nft.Metadata, nil
}

func (s *NFTService) GetNFT(tokenID int64) (*model.NFTResponse, error) {
	nft, err := s.Generate(tokenID)
	if err != nil {
		return nil, err
	}
	return toResponse(nft), nil
}

func (s *NFTService) GetImagePNG(tokenID int64) ([]byte, error) {
	nft, err := s.Generate(tokenID)
	if err != nil {
		return nil, err
	}
	return nft.PNG, nil
}

// GetPalette 提取渲染结果中占比最高的 k 种颜色，k 为 0 时取默认值
func (s *NFTService) GetPalette(tokenID int64, k int) (*model.PaletteResponse, error) {
	if k == 0 {
		k = DefaultPaletteSize
	}
	if k < 1 || k > MaxPaletteSize {
		return nil, fmt.Errorf("%w: palette size %d not in [1,%d]", generator.ErrInvalidInput, k, MaxPaletteSize)
	}

	nft, err := s.Generate(tokenID)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(nft.PNG))
	if err != nil {
		return nil, fmt.Errorf("%w: decode png: %v", generator.ErrEncodingFailure, err)
	}

	found := dominantcolor.FindWeight(img, k)
	colors := make([]model.PaletteColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		colors = append(colors, model.PaletteColor{
			Hex:    col.Clamped().Hex(),
			Weight: c.Weight,
		})
	}
	return &model.PaletteResponse{TokenID: tokenID, Colors: colors}, nil
}

// Preview 依次生成 [start, start+quantity) 的结果并通过通道推送。
// ctx 取消后停止生成；出错时向 errChan 发送错误并结束。
func (s *NFTService) Preview(ctx context.Context, start int64, quantity int) (<-chan model.NFTResponse, <-chan error) {
	respChan := make(chan model.NFTResponse, MaxPreviewQuantity)
	errChan := make(chan error, 1)

	go func() {
		defer close(respChan)
		defer close(errChan)

		if err := ValidatePreview(start, quantity); err != nil {
			errChan <- err
			return
		}

		for i := 0; i < quantity; i++ {
			if err := ctx.Err(); err != nil {
				errChan <- err
				return
			}
			nft, err := s.Generate(start + int64(i))
			if err != nil {
				errChan <- err
				return
			}
			select {
			case respChan <- *toResponse(nft):
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return respChan, errChan
}

// ValidatePreview 校验批量预览参数，与铸造页面的数量限制一致
func ValidatePreview(start int64, quantity int) error {
	if start < 1 {
		return fmt.Errorf("%w: start token id %d", generator.ErrInvalidInput, start)
	}
	if quantity < 1 || quantity > MaxPreviewQuantity {
		return fmt.Errorf("%w: quantity %d not in [1,%d]", generator.ErrInvalidInput, quantity, MaxPreviewQuantity)
	}
	// 窗口的最后一个 id 不能超过 int64 上限
	if start > math.MaxInt64-int64(quantity)+1 {
		return fmt.Errorf("%w: window %d+%d overflows token id range", generator.ErrInvalidInput, start, quantity)
	}
	return nil
}

func (s *NFTService) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

func toResponse(nft *generator.GeneratedNFT) *model.NFTResponse {
	return &model.NFTResponse{
		TokenID:  nft.TokenID,
		Image:    nft.Image,
		Metadata: nft.Metadata,
	}
}
