package generator

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(opts...)
	require.NoError(t, err)
	return g
}

type rgb struct{ r, g, b int }

func pixelAt(t *testing.T, data []byte, x, y int) rgb {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, _ := img.At(x, y).RGBA()
	return rgb{int(r >> 8), int(g >> 8), int(b >> 8)}
}

func assertColorNear(t *testing.T, want, got rgb) {
	t.Helper()
	near := func(a, b int) bool { return a-b <= 1 && b-a <= 1 }
	assert.True(t, near(want.r, got.r) && near(want.g, got.g) && near(want.b, got.b),
		"want %v, got %v", want, got)
}

func hexToRGB(t *testing.T, hex string) rgb {
	t.Helper()
	c, err := parseHex(hex)
	require.NoError(t, err)
	return rgb{c.r, c.g, c.b}
}

func TestNew_RejectsUnknownTextureMode(t *testing.T) {
	_, err := New(WithTextureMode("sparkly"))
	assert.Error(t, err)
}

func TestGenerate_InvalidTokenID(t *testing.T) {
	g := newTestGenerator(t)
	for _, id := range []int64{0, -5} {
		res, err := g.Generate(id)
		assert.ErrorIs(t, err, ErrInvalidInput, "token %d", id)
		assert.Nil(t, res)
	}
}

func TestGenerate_TokenOne(t *testing.T) {
	g := newTestGenerator(t)
	res, err := g.Generate(1)
	require.NoError(t, err)

	meta := res.Metadata
	assert.Equal(t, "BaseMint Genesis #1", meta.Name)
	assert.Equal(t, DefaultExternalURL, meta.ExternalURL)
	assert.Equal(t, "#F0F8FF", meta.BackgroundColor)
	assert.Equal(t, res.Image, meta.Image)
	assert.True(t, strings.HasPrefix(meta.Image, "data:image/png;base64,"))
	assert.Nil(t, meta.AnimationURL)
	assert.Nil(t, meta.YoutubeURL)

	var got [][2]string
	for _, a := range meta.Attributes {
		got = append(got, [2]string{a.TraitType, a.Value})
	}
	assert.Equal(t, [][2]string{
		{"Character", "Pikachu"},
		{"Cap", "Base Logo Cap"},
		{"Body Color", "#F4C430"},
		{"Cheek Color", "#FF4D4D"},
		{"Cap Color", "#FFC107"},
		{"Expression", "Cute"},
	}, got)

	img, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err)
	assert.Equal(t, CanvasSize, img.Bounds().Dx())
	assert.Equal(t, CanvasSize, img.Bounds().Dy())
}

func TestGenerate_MetadataJSONShape(t *testing.T) {
	g := newTestGenerator(t)
	res, err := g.Generate(7)
	require.NoError(t, err)

	raw, err := json.Marshal(res.Metadata)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"name", "description", "image", "external_url", "attributes", "background_color", "animation_url", "youtube_url"} {
		assert.Contains(t, decoded, key)
	}
	assert.Nil(t, decoded["animation_url"])
	assert.Nil(t, decoded["youtube_url"])
}

func TestGenerate_ImagePayloadMatchesPNG(t *testing.T) {
	g := newTestGenerator(t)
	res, err := g.Generate(3)
	require.NoError(t, err)

	payload := strings.TrimPrefix(res.Image, "data:"+ImageMIMEType+";base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, res.PNG, decoded)
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	g := newTestGenerator(t)
	first, err := g.Generate(42)
	require.NoError(t, err)
	second, err := g.Generate(42)
	require.NoError(t, err)

	assert.Equal(t, first.Traits, second.Traits)
	assert.Equal(t, first.Metadata.Attributes, second.Metadata.Attributes)
	assert.Equal(t, first.Image, second.Image)

	other, err := g.Generate(43)
	require.NoError(t, err)
	assert.NotEqual(t, first.Image, other.Image)
}

func TestGenerate_RandomTextureKeepsTraits(t *testing.T) {
	g := newTestGenerator(t, WithTextureMode(TextureRandom))
	assert.Equal(t, TextureRandom, g.TextureMode())

	first, err := g.Generate(42)
	require.NoError(t, err)
	second, err := g.Generate(42)
	require.NoError(t, err)

	assert.Equal(t, first.Traits, second.Traits)
	assert.Equal(t, first.Metadata.Attributes, second.Metadata.Attributes)

	// 身体区域不受纹理影响
	body := hexToRGB(t, first.Traits.BodyColor)
	assertColorNear(t, body, pixelAt(t, first.PNG, 230, 200))
	assertColorNear(t, body, pixelAt(t, second.PNG, 230, 200))

	assert.NotEqual(t, first.PNG, second.PNG)
}

func TestGenerate_AccessoriesMatchFlags(t *testing.T) {
	g := newTestGenerator(t)
	for id := int64(1); id <= 120; id++ {
		traits, err := g.Traits(id)
		require.NoError(t, err)

		meta := g.AssembleMetadata(id, traits, "data:image/png;base64,")
		accessories := meta.Accessories()

		assert.Equal(t, traits.HasGlasses, contains(accessories, "Glasses"), "token %d", id)
		assert.Equal(t, traits.HasNecklace, contains(accessories, "Base Logo Necklace"), "token %d", id)
		assert.Equal(t, traits.HasBowtie, contains(accessories, "Bowtie"), "token %d", id)
		assert.Equal(t, traits.HasBandana, contains(accessories, "Bandana"), "token %d", id)

		expr, ok := meta.Attribute(TraitExpression)
		require.True(t, ok)
		assert.Equal(t, traits.Expression.String(), expr)

		bodyColor, ok := meta.Attribute(TraitBodyColor)
		require.True(t, ok)
		assert.Equal(t, traits.BodyColor, bodyColor)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func baseTraits(e Expression) TraitRecord {
	return TraitRecord{
		BackgroundColor: "#FFE4B5",
		BodyColor:       "#FFD700",
		CheekColor:      "#FF69B4",
		CapColor:        "#0052FF",
		Expression:      e,
	}
}

func TestCompose_UnknownExpressionRendersAsHappy(t *testing.T) {
	g := newTestGenerator(t)

	happy, err := g.compose(5, baseTraits(ExpressionHappy))
	require.NoError(t, err)
	unknown, err := g.compose(5, baseTraits(Expression(99)))
	require.NoError(t, err)

	assert.Equal(t, happy.PNG, unknown.PNG)
	expr, ok := unknown.Metadata.Attribute(TraitExpression)
	require.True(t, ok)
	assert.Equal(t, "Happy", expr)
}

func TestCompose_ExpressionChangesEyes(t *testing.T) {
	g := newTestGenerator(t)
	black := rgb{0, 0, 0}
	body := hexToRGB(t, "#FFD700")

	happy, err := g.compose(5, baseTraits(ExpressionHappy))
	require.NoError(t, err)
	wink, err := g.compose(5, baseTraits(ExpressionWink))
	require.NoError(t, err)
	excited, err := g.compose(5, baseTraits(ExpressionExcited))
	require.NoError(t, err)

	// 左眼下沿：happy 为黑色，wink 只有一条横线
	assertColorNear(t, black, pixelAt(t, happy.PNG, 240, 165))
	assertColorNear(t, body, pixelAt(t, wink.PNG, 240, 165))

	// 半径 8 之外、11 之内
	assertColorNear(t, body, pixelAt(t, happy.PNG, 240, 169))
	assertColorNear(t, black, pixelAt(t, excited.PNG, 240, 169))
}

func TestCompose_AccessoryPixels(t *testing.T) {
	g := newTestGenerator(t)

	plain, err := g.compose(5, baseTraits(ExpressionHappy))
	require.NoError(t, err)

	withBandana := baseTraits(ExpressionHappy)
	withBandana.HasBandana = true
	bandana, err := g.compose(5, withBandana)
	require.NoError(t, err)

	assert.NotEqual(t, plain.PNG, bandana.PNG)
	assertColorNear(t, hexToRGB(t, "#D32F2F"), pixelAt(t, bandana.PNG, 256, 262))
}

func TestRender_RejectsWrongSurface(t *testing.T) {
	font, err := loadBoldFont()
	require.NoError(t, err)
	r := NewRenderer(font, TextureSeeded)

	dc := gg.NewContext(100, 100)
	defer dc.Close()
	assert.ErrorIs(t, r.Render(dc, baseTraits(ExpressionHappy), 1), ErrRenderFailure)
	assert.ErrorIs(t, r.Render(nil, baseTraits(ExpressionHappy), 1), ErrRenderFailure)
}

func TestRender_InvalidColorIsRenderFailure(t *testing.T) {
	font, err := loadBoldFont()
	require.NoError(t, err)
	r := NewRenderer(font, TextureSeeded)

	dc := gg.NewContext(CanvasSize, CanvasSize)
	defer dc.Close()
	traits := baseTraits(ExpressionHappy)
	traits.BackgroundColor = "nope"
	assert.ErrorIs(t, r.Render(dc, traits, 1), ErrRenderFailure)
}

func TestEncode(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrEncodingFailure)

	dc := gg.NewContext(CanvasSize, CanvasSize)
	defer dc.Close()
	dc.SetHexColor("#0052FF")
	dc.DrawRectangle(0, 0, CanvasSize, CanvasSize)
	require.NoError(t, dc.Fill())

	first, err := Encode(dc)
	require.NoError(t, err)
	second, err := Encode(dc)
	require.NoError(t, err)
	assert.Equal(t, first.DataURI, second.DataURI)
	assert.Equal(t, DataURI(first.Payload), first.DataURI)
	assertColorNear(t, rgb{0, 0x52, 0xff}, pixelAt(t, first.PNG, 10, 10))
}

func TestGenerate_Concurrent(t *testing.T) {
	g := newTestGenerator(t)

	want := make(map[int64]string)
	for id := int64(1); id <= 6; id++ {
		res, err := g.Generate(id)
		require.NoError(t, err)
		want[id] = res.Image
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	got := make(map[int64]string)
	for id := int64(1); id <= 6; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			res, err := g.Generate(id)
			if err != nil {
				return
			}
			mu.Lock()
			got[id] = res.Image
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	assert.Equal(t, want, got)
}

func TestGenerate_CustomCollection(t *testing.T) {
	g := newTestGenerator(t,
		WithCollectionName("Preview"),
		WithExternalURL("http://localhost:3000"),
	)
	res, err := g.Generate(12)
	require.NoError(t, err)
	assert.Equal(t, "Preview #12", res.Metadata.Name)
	assert.Equal(t, "http://localhost:3000", res.Metadata.ExternalURL)
}
