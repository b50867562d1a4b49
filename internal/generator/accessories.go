package generator

import "math"

// Accessory 可选配饰。集合封闭，按 accessories 中的顺序检查和绘制。
type Accessory struct {
	// Name 写入元数据的 Accessory 属性值
	Name    string
	present func(t TraitRecord) bool
	draw    func(c *canvas)
}

var accessories = []Accessory{
	{
		Name:    "Glasses",
		present: func(t TraitRecord) bool { return t.HasGlasses },
		draw:    drawGlasses,
	},
	{
		Name:    "Base Logo Necklace",
		present: func(t TraitRecord) bool { return t.HasNecklace },
		draw:    drawNecklace,
	},
	{
		Name:    "Bowtie",
		present: func(t TraitRecord) bool { return t.HasBowtie },
		draw:    drawBowtie,
	},
	{
		Name:    "Bandana",
		present: func(t TraitRecord) bool { return t.HasBandana },
		draw:    drawBandana,
	},
}

// Accessories returns the accessories present on t, in check order.
func (t TraitRecord) Accessories() []Accessory {
	var out []Accessory
	for _, a := range accessories {
		if a.present(t) {
			out = append(out, a)
		}
	}
	return out
}

func drawAccessories(c *canvas, job *renderJob) {
	for _, a := range job.traits.Accessories() {
		a.draw(c)
	}
}

func drawGlasses(c *canvas) {
	c.ring(240, 160, 20, 3, "#000000")
	c.ring(272, 160, 20, 3, "#000000")
	c.line(260, 160, 252, 160, 3, "#000000")
	c.line(220, 160, 200, 150, 3, "#000000")
	c.line(292, 160, 312, 150, 3, "#000000")
}

func drawNecklace(c *canvas) {
	c.dc.SetHexColor("#FFD700")
	c.dc.SetLineWidth(2)
	c.dc.DrawArc(256, 250, 30, 0, math.Pi)
	c.stroke()

	c.ellipse(256, 280, 8, 12, "#0052FF")
	c.dc.SetHexColor("#FFFFFF")
	c.label("B", 8, 256, 285, 0.5)
}

func drawBowtie(c *canvas) {
	c.triangle(256, 245, 236, 233, 236, 257, "#E53935")
	c.triangle(256, 245, 276, 233, 276, 257, "#E53935")
	c.circle(256, 245, 4, "#B71C1C")
}

func drawBandana(c *canvas) {
	c.triangle(206, 228, 306, 228, 256, 272, "#D32F2F")
	for _, p := range [][2]float64{{236, 236}, {256, 238}, {276, 236}, {256, 254}} {
		c.circle(p[0], p[1], 2.5, "#FFFFFF")
	}
}
