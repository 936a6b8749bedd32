package chart

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"gonum.org/v1/gonum/floats"
)

type rgb struct{ r, g, b int }

var (
	sliceLabels = []string{"Total Wins", "Total Losses", "Total Draws"}
	sliceColors = []rgb{
		{31, 119, 180},
		{255, 127, 14},
		{44, 160, 44},
	}
	// Radial offset of each slice as a fraction of the radius; wins stand out.
	sliceExplode = []float64{0.1, 0, 0}
)

const (
	pageSize     = 127.0 // mm, a 5in square page
	pieRadius    = 34.0
	pieCenterX   = pageSize/2 + 4
	pieCenterY   = pageSize/2 + 4
	shadowOffset = 1.5
	arcStepDeg   = 2.0

	// A lone slice whose sweep rounds to just under 360 still draws as a circle.
	fullCircleDeg = 360 - 1e-9
)

// wedge is one drawn pie slice, angles in degrees counterclockwise from 3 o'clock.
type wedge struct {
	index   int
	value   float64
	percent float64
	start   float64
	end     float64
}

func (w wedge) mid() float64 {
	return (w.start + w.end) / 2
}

// layoutWedges splits 360 degrees across non-zero values, preserving order.
func layoutWedges(values []float64) []wedge {
	total := floats.Sum(values)
	if total <= 0 {
		return nil
	}

	sweeps := make([]float64, len(values))
	floats.ScaleTo(sweeps, 360/total, values)
	ends := make([]float64, len(values))
	floats.CumSum(ends, sweeps)
	percents := make([]float64, len(values))
	floats.ScaleTo(percents, 100/total, values)

	out := make([]wedge, 0, len(values))
	for i, v := range values {
		if v <= 0 {
			continue
		}
		out = append(out, wedge{
			index:   i,
			value:   v,
			percent: percents[i],
			start:   ends[i] - sweeps[i],
			end:     ends[i],
		})
	}
	return out
}

// polar returns the page point at the given angle and distance from (cx, cy).
// Page y grows downward, so the sine term is subtracted.
func polar(cx, cy, dist, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + dist*math.Cos(rad), cy - dist*math.Sin(rad)
}

func wedgePoints(cx, cy, r float64, w wedge) []fpdf.PointType {
	steps := int(math.Ceil((w.end - w.start) / arcStepDeg))
	if steps < 1 {
		steps = 1
	}

	pts := make([]fpdf.PointType, 0, steps+2)
	pts = append(pts, fpdf.PointType{X: cx, Y: cy})
	for i := 0; i <= steps; i++ {
		deg := w.start + (w.end-w.start)*float64(i)/float64(steps)
		x, y := polar(cx, cy, r, deg)
		pts = append(pts, fpdf.PointType{X: x, Y: y})
	}
	return pts
}

func drawWedge(pdf *fpdf.Fpdf, cx, cy, r float64, w wedge) {
	if w.end-w.start >= fullCircleDeg {
		pdf.Circle(cx, cy, r, "FD")
		return
	}
	pdf.Polygon(wedgePoints(cx, cy, r, w), "FD")
}

// drawPie draws the wins/losses/draws pie with shadow, labels and percentages.
func drawPie(pdf *fpdf.Fpdf, tr func(string) string, values []float64) {
	wedges := layoutWedges(values)

	centers := make([][2]float64, len(wedges))
	for i, w := range wedges {
		x, y := polar(pieCenterX, pieCenterY, sliceExplode[w.index]*pieRadius, w.mid())
		centers[i] = [2]float64{x, y}
	}

	pdf.SetLineWidth(0.2)

	pdf.SetAlpha(0.3, "Normal")
	pdf.SetFillColor(60, 60, 60)
	pdf.SetDrawColor(60, 60, 60)
	for i, w := range wedges {
		drawWedge(pdf, centers[i][0]+shadowOffset, centers[i][1]+shadowOffset, pieRadius, w)
	}
	pdf.SetAlpha(1, "Normal")

	pdf.SetDrawColor(255, 255, 255)
	for i, w := range wedges {
		c := sliceColors[w.index]
		pdf.SetFillColor(c.r, c.g, c.b)
		drawWedge(pdf, centers[i][0], centers[i][1], pieRadius, w)
	}

	pdf.SetTextColor(0, 0, 0)
	for i, w := range wedges {
		cx, cy := centers[i][0], centers[i][1]

		pdf.SetFont("Helvetica", "", 8)
		lx, ly := polar(cx, cy, pieRadius*1.1, w.mid())
		label := tr(sliceLabels[w.index])
		if math.Cos(w.mid()*math.Pi/180) < 0 {
			lx -= pdf.GetStringWidth(label)
		}
		_, unit := pdf.GetFontSize()
		pdf.Text(lx, ly+unit/3, label)

		pdf.SetFont("Helvetica", "", 7)
		px, py := polar(cx, cy, pieRadius*0.6, w.mid())
		centeredText(pdf, px, py, fmt.Sprintf("%.1f%%", w.percent))
	}
}

// centeredText writes s centered horizontally and vertically on (x, y).
func centeredText(pdf *fpdf.Fpdf, x, y float64, s string) {
	_, unit := pdf.GetFontSize()
	pdf.Text(x-pdf.GetStringWidth(s)/2, y+unit/3, s)
}
