package advanced

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Padding around the mesh, in pixels
const drawPadding = 40

// DrawPNG renders the mesh to a PNG file for debugging: triangles in dark
// green with cyan outlines, constrained edges in orange and sites as dots.
// scale is pixels per unit.
func (tr *Triangulation) DrawPNG(path string, scale float64) error {
	if err := tr.ready(); err != nil {
		return err
	}
	if tr.realSites == 0 {
		return errors.New("cdt: nothing to draw")
	}
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, p := range tr.realPoints() {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1)
	for _, id := range tr.Triangles() {
		s := tr.triangles[id].Sites
		c.MoveTo(tr.point(s[0])[0], tr.point(s[0])[1])
		c.LineTo(tr.point(s[1])[0], tr.point(s[1])[1])
		c.LineTo(tr.point(s[2])[0], tr.point(s[2])[1])
		c.ClosePath()
		c.SetRGB(0, 0.3, 0)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}

	c.SetLineWidth(3)
	c.SetRGB(1, 0.6, 0)
	for i := range tr.edges {
		edge := &tr.edges[i]
		if !edge.alive || !edge.Constrained {
			continue
		}
		c.MoveTo(tr.point(edge.Upper)[0], tr.point(edge.Upper)[1])
		c.LineTo(tr.point(edge.Lower)[0], tr.point(edge.Lower)[1])
		c.Stroke()
	}

	c.SetRGB(1, 1, 1)
	for _, p := range tr.realPoints() {
		c.DrawCircle(p[0], p[1], 3/scale)
		c.Fill()
	}

	return errors.Wrap(c.SavePNG(path), "cdt: saving png")
}
