package diagram

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mweissbach/gospring/internal/spring"
)

// ExportCharacteristicDiagram writes the load–deflection characteristic
// to an image file (png, svg or pdf by extension): the linear
// characteristic up to the travel limit, the requested load points as
// glyphs colored by status, and a dashed line at the solid/close-out
// limit.
func ExportCharacteristicDiagram(data CharacteristicData, filename string) error {
	res := data.Result
	maxTravel := travelLimit(res)
	if maxTravel <= 0 || res.Rate <= 0 {
		return fmt.Errorf("no characteristic to draw: geometry invalid")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Spring Characteristic (%s)", res.Type)
	if data.Rotational {
		p.X.Label.Text = "Angle (deg)"
		p.Y.Label.Text = "Torque (N-mm)"
	} else {
		p.X.Label.Text = "Deflection (mm)"
		p.Y.Label.Text = "Force (N)"
	}

	// Linear characteristic
	line, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: maxTravel, Y: res.Rate * maxTravel},
	})
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 0, G: 90, B: 181, A: 255}
	p.Add(line)

	// Travel limit marker
	limit, err := plotter.NewLine(plotter.XYs{
		{X: maxTravel, Y: 0},
		{X: maxTravel, Y: res.Rate * maxTravel},
	})
	if err != nil {
		return err
	}
	limit.LineStyle.Width = vg.Points(1.5)
	limit.LineStyle.Color = color.RGBA{R: 220, G: 50, B: 32, A: 255}
	limit.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(limit)

	// Requested load points, grouped by status for coloring
	for _, group := range []struct {
		status spring.Status
		col    color.RGBA
	}{
		{spring.StatusOK, color.RGBA{R: 0, G: 140, B: 0, A: 255}},
		{spring.StatusWarning, color.RGBA{R: 230, G: 160, B: 0, A: 255}},
		{spring.StatusError, color.RGBA{R: 220, G: 50, B: 32, A: 255}},
	} {
		var pts plotter.XYs
		for _, lp := range res.Points {
			if lp.Status == group.status {
				pts = append(pts, plotter.XY{X: lp.Deflection, Y: lp.Load})
			}
		}
		if len(pts) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = group.col
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
	}

	width, height := 6*vg.Inch, 4*vg.Inch
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
