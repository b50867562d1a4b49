package generator

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// CanvasSize 画布固定为 512x512
const CanvasSize = 512

const (
	highlightCount = 20
	textureStream  = 0x9e3779b97f4a7c15
)

// TextureMode 背景纹理的随机来源
type TextureMode string

const (
	// TextureSeeded 纹理由 token id 播种，图像逐字节可复现
	TextureSeeded TextureMode = "seeded"
	// TextureRandom 每次调用使用进程级随机源，图像在纹理区域不可复现
	TextureRandom TextureMode = "random"
)

func (m TextureMode) Valid() bool {
	return m == TextureSeeded || m == TextureRandom
}

// Renderer paints a trait record onto a surface in a fixed layer order.
// It holds only read-only state and may be shared between goroutines.
type Renderer struct {
	font    *text.FontSource
	texture TextureMode
}

func NewRenderer(font *text.FontSource, texture TextureMode) *Renderer {
	return &Renderer{font: font, texture: texture}
}

type renderJob struct {
	traits  TraitRecord
	tokenID int64
	texture *rand.Rand
}

type layer struct {
	name string
	draw func(c *canvas, job *renderJob)
}

// 图层顺序即绘制顺序，后绘制的覆盖先绘制的
var layers = []layer{
	{"background", drawBackground},
	{"body", drawBody},
	{"face", drawFace},
	{"headwear", drawHeadwear},
	{"accessories", drawAccessories},
	{"watermark", drawWatermark},
}

// Render paints traits onto dc. dc must be a CanvasSize square surface;
// anything else is a precondition violation reported as ErrRenderFailure.
func (r *Renderer) Render(dc *gg.Context, traits TraitRecord, tokenID int64) error {
	if dc == nil || dc.Width() != CanvasSize || dc.Height() != CanvasSize {
		return fmt.Errorf("%w: surface must be %dx%d", ErrRenderFailure, CanvasSize, CanvasSize)
	}
	if r.font == nil {
		return fmt.Errorf("%w: no font loaded", ErrRenderFailure)
	}

	job := &renderJob{
		traits:  traits,
		tokenID: tokenID,
		texture: r.textureSource(tokenID),
	}
	c := &canvas{dc: dc, font: r.font}
	for _, l := range layers {
		l.draw(c, job)
		if c.err != nil {
			return fmt.Errorf("%w: %s layer: %v", ErrRenderFailure, l.name, c.err)
		}
	}
	return nil
}

func (r *Renderer) textureSource(tokenID int64) *rand.Rand {
	if r.texture == TextureRandom {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(tokenID), textureStream))
}

// canvas 包装 gg.Context，记录第一个绘制错误，后续调用照常进行
type canvas struct {
	dc   *gg.Context
	font *text.FontSource
	err  error
}

func (c *canvas) record(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *canvas) fill()   { c.record(c.dc.Fill()) }
func (c *canvas) stroke() { c.record(c.dc.Stroke()) }

func (c *canvas) circle(x, y, r float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.DrawCircle(x, y, r)
	c.fill()
}

func (c *canvas) ellipse(x, y, rx, ry float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.DrawEllipse(x, y, rx, ry)
	c.fill()
}

func (c *canvas) triangle(x1, y1, x2, y2, x3, y3 float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.MoveTo(x1, y1)
	c.dc.LineTo(x2, y2)
	c.dc.LineTo(x3, y3)
	c.dc.ClosePath()
	c.fill()
}

func (c *canvas) line(x1, y1, x2, y2, width float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.SetLineWidth(width)
	c.dc.MoveTo(x1, y1)
	c.dc.LineTo(x2, y2)
	c.stroke()
}

func (c *canvas) ring(x, y, r, width float64, hex string) {
	c.dc.SetHexColor(hex)
	c.dc.SetLineWidth(width)
	c.dc.DrawCircle(x, y, r)
	c.stroke()
}

// label 以基线 y 绘制文字，ax 为水平锚点（0 左，0.5 居中，1 右）
func (c *canvas) label(s string, size, x, y, ax float64) {
	c.dc.SetFont(c.font.Face(size))
	c.dc.DrawStringAnchored(s, x, y, ax, 0)
}

func (c *canvas) colorOrFail(hex string, err error) string {
	c.record(err)
	return hex
}

func drawBackground(c *canvas, job *renderJob) {
	bg := job.traits.BackgroundColor
	light := c.colorOrFail(Lighten(bg, 20))
	if c.err != nil {
		return
	}

	gradient := gg.NewLinearGradientBrush(0, 0, CanvasSize, CanvasSize).
		AddColorStop(0, gg.Hex(bg)).
		AddColorStop(1, gg.Hex(light))
	c.dc.SetFillBrush(gradient)
	c.dc.DrawRectangle(0, 0, CanvasSize, CanvasSize)
	c.fill()

	// 柔和的高光点
	c.dc.SetRGBA(1, 1, 1, 0.1)
	for i := 0; i < highlightCount; i++ {
		x := job.texture.Float64() * CanvasSize
		y := job.texture.Float64() * CanvasSize
		size := job.texture.Float64()*10 + 5
		c.dc.DrawCircle(x, y, size)
		c.fill()
	}
}

func drawBody(c *canvas, job *renderJob) {
	body := job.traits.BodyColor

	c.ellipse(256, 300, 80, 100, body)
	c.circle(256, 180, 70, body)

	// 耳朵与黑色耳尖
	c.triangle(200, 120, 180, 80, 220, 100, body)
	c.triangle(312, 120, 332, 80, 292, 100, body)
	c.triangle(180, 80, 190, 60, 200, 80, "#000000")
	c.triangle(332, 80, 322, 60, 312, 80, "#000000")

	c.ellipse(200, 280, 25, 40, body)
	c.ellipse(312, 280, 25, 40, body)
	c.ellipse(230, 380, 30, 50, body)
	c.ellipse(282, 380, 30, 50, body)

	c.dc.SetHexColor(body)
	c.dc.MoveTo(180, 320)
	c.dc.QuadraticTo(120, 300, 100, 350)
	c.dc.QuadraticTo(80, 400, 120, 420)
	c.dc.QuadraticTo(160, 440, 180, 400)
	c.dc.ClosePath()
	c.fill()

	stripe := tailStripeColor(job.traits.TailPattern)
	for i := 0; i < 3; i++ {
		c.circle(140+float64(i)*15, 380+float64(i)*10, 8, stripe)
	}
}

func drawFace(c *canvas, job *renderJob) {
	drawEyes(c, job.traits.Expression)

	c.triangle(256, 175, 252, 185, 260, 185, "#000000")

	c.dc.SetHexColor("#000000")
	c.dc.SetLineWidth(2)
	c.dc.DrawArc(256, 200, 15, 0, math.Pi)
	c.stroke()

	c.circle(200, 190, 12, job.traits.CheekColor)
	c.circle(312, 190, 12, job.traits.CheekColor)
}

func drawEyes(c *canvas, e Expression) {
	switch e {
	case ExpressionWink:
		c.dc.SetLineCap(gg.LineCapRound)
		c.line(232, 160, 248, 160, 3, "#000000")
		c.dc.SetLineCap(gg.LineCapButt)
		c.circle(272, 160, 8, "#000000")
		c.circle(274, 158, 3, "#FFFFFF")
	case ExpressionExcited:
		c.circle(240, 160, 11, "#000000")
		c.circle(272, 160, 11, "#000000")
		c.circle(243, 157, 4.5, "#FFFFFF")
		c.circle(275, 157, 4.5, "#FFFFFF")
	default:
		c.circle(240, 160, 8, "#000000")
		c.circle(272, 160, 8, "#000000")
		c.circle(242, 158, 3, "#FFFFFF")
		c.circle(274, 158, 3, "#FFFFFF")
	}
}

func drawHeadwear(c *canvas, job *renderJob) {
	capColor := job.traits.CapColor
	brim := c.colorOrFail(Darken(capColor, 20))
	if c.err != nil {
		return
	}

	c.ellipse(256, 130, 75, 20, capColor)
	c.ellipse(256, 100, 60, 30, capColor)

	c.dc.SetHexColor("#FFFFFF")
	c.label("BASE", 24, 256, 140, 0.5)

	c.ellipse(256, 150, 85, 8, brim)
}

func drawWatermark(c *canvas, job *renderJob) {
	c.dc.SetRGBA(0, 0, 0, 0.3)
	c.label(fmt.Sprintf("#%d", job.tokenID), 16, 500, 30, 1)
}
