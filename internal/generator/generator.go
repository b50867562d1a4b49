package generator

import (
	"fmt"

	"basemint-backend/internal/model"

	"github.com/gogpu/gg"
)

// GeneratedNFT 一次生成的完整结果
type GeneratedNFT struct {
	TokenID  int64
	Image    string // data URI
	PNG      []byte
	Traits   TraitRecord
	Metadata *model.AssetMetadata
}

type options struct {
	texture        TextureMode
	externalURL    string
	collectionName string
}

type Option func(*options)

func WithTextureMode(mode TextureMode) Option {
	return func(o *options) {
		o.texture = mode
	}
}

func WithExternalURL(url string) Option {
	return func(o *options) {
		o.externalURL = url
	}
}

func WithCollectionName(name string) Option {
	return func(o *options) {
		o.collectionName = name
	}
}

// Generator is the single entry point of the pipeline. It keeps no state
// between calls; Generate may be called concurrently.
type Generator struct {
	renderer       *Renderer
	texture        TextureMode
	externalURL    string
	collectionName string
}

// New validates the candidate tables once and loads the glyph font.
func New(opts ...Option) (*Generator, error) {
	o := options{
		texture:        TextureSeeded,
		externalURL:    DefaultExternalURL,
		collectionName: DefaultCollectionName,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.texture.Valid() {
		return nil, fmt.Errorf("unknown texture mode %q", o.texture)
	}
	if err := validatePalettes(); err != nil {
		return nil, err
	}

	font, err := loadBoldFont()
	if err != nil {
		return nil, err
	}

	return &Generator{
		renderer:       NewRenderer(font, o.texture),
		texture:        o.texture,
		externalURL:    o.externalURL,
		collectionName: o.collectionName,
	}, nil
}

// TextureMode 返回背景纹理模式；只有 seeded 模式下图像可逐字节复现
func (g *Generator) TextureMode() TextureMode {
	return g.texture
}

// Traits derives the trait record for tokenID without rendering.
func (g *Generator) Traits(tokenID int64) (TraitRecord, error) {
	if tokenID < 1 {
		return TraitRecord{}, fmt.Errorf("%w: %d", ErrInvalidInput, tokenID)
	}
	return SelectTraits(DeriveSeeds(tokenID)), nil
}

// Generate runs seed derivation, trait selection, rendering, encoding and
// metadata assembly in that order. It returns either a complete result or
// an error wrapping ErrInvalidInput, ErrRenderFailure or ErrEncodingFailure.
func (g *Generator) Generate(tokenID int64) (*GeneratedNFT, error) {
	traits, err := g.Traits(tokenID)
	if err != nil {
		return nil, err
	}
	return g.compose(tokenID, traits)
}

func (g *Generator) compose(tokenID int64, traits TraitRecord) (*GeneratedNFT, error) {
	dc := gg.NewContext(CanvasSize, CanvasSize)
	defer dc.Close()
	dc.Clear()

	if err := g.renderer.Render(dc, traits, tokenID); err != nil {
		return nil, err
	}

	encoded, err := Encode(dc)
	if err != nil {
		return nil, err
	}

	return &GeneratedNFT{
		TokenID:  tokenID,
		Image:    encoded.DataURI,
		PNG:      encoded.PNG,
		Traits:   traits,
		Metadata: g.AssembleMetadata(tokenID, traits, encoded.DataURI),
	}, nil
}
