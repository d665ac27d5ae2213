/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/iand/deathclock/deathclock"
	"github.com/iand/deathclock/logging"
	"github.com/iand/deathclock/model"
)

// ErrNoMarker is returned when the death year of an estimate has no point in
// the distribution being drawn.
var ErrNoMarker = errors.New("death year not in distribution")

// Style controls the appearance of a distribution chart. It is passed to Draw
// on every call; there is no package level style.
type Style struct {
	Width  vg.Length // overall image width
	Height vg.Length // overall image height
	Dpi    int       // number of pixels per inch

	TextColor       color.Color // Color of labels, tick labels and axis lines
	BackgroundColor color.Color // Color of the image and plot backgrounds
	LineColor       color.Color // Color of the distribution line
	LineWidth       vg.Length   // Width of the distribution line
	MarkerColor     color.Color // Color of the point marking the death year
	MarkerRadius    vg.Length   // Radius of the point marking the death year

	ProbabilityLabel string // y axis label of the left panel
	CumulativeLabel  string // y axis label of the right panel
	YearLabel        string // x axis label of both panels

	Padding vg.Length // space around and between the panels
}

// DefaultStyle returns white text on a black background with a pink line and
// a red marker.
func DefaultStyle() Style {
	return Style{
		Width:  10 * vg.Inch,
		Height: 4 * vg.Inch,
		Dpi:    100,

		TextColor:       color.White,
		BackgroundColor: color.Black,
		LineColor:       color.RGBA{R: 0xFF, G: 0xC0, B: 0xCB, A: 0xFF},
		LineWidth:       vg.Points(1.5),
		MarkerColor:     color.RGBA{R: 0xFF, A: 0xFF},
		MarkerRadius:    vg.Points(4),

		ProbabilityLabel: "Probability of death",
		CumulativeLabel:  "Cumulative probability of death",
		YearLabel:        "year",

		Padding: vg.Points(10),
	}
}

// Marker returns the point of d drawn for the given death year.
func Marker(d *deathclock.Distribution, year int) (deathclock.Point, error) {
	p, ok := d.Find(year)
	if !ok {
		return deathclock.Point{}, fmt.Errorf("%w: %d", ErrNoMarker, year)
	}
	return p, nil
}

// Draw renders d as two side by side panels, probability against year and
// cumulative probability against year, with the death year of est marked on
// both. The result is a PNG image. Years in d start at the current year, so
// when the oldest age was drawn its death year has no point and no marker is
// drawn.
func Draw(d *deathclock.Distribution, est *model.Estimate, st Style) ([]byte, error) {
	if d == nil || d.Len() == 0 {
		return nil, deathclock.ErrEmptyDistribution
	}
	if !est.IsCalculated() {
		return nil, fmt.Errorf("%w: no death date drawn", ErrNoMarker)
	}
	mark, err := Marker(d, est.DeathDate.Year())
	hasMark := err == nil
	if !hasMark {
		logging.Warn("drawing chart without marker", "name", est.Name, "death_year", est.DeathDate.Year(), "error", err)
	}

	prob := make(plotter.XYs, d.Len())
	cum := make(plotter.XYs, d.Len())
	for i, p := range d.Points {
		prob[i] = plotter.XY{X: float64(p.Year), Y: p.Probability}
		cum[i] = plotter.XY{X: float64(p.Year), Y: p.Cumulative}
	}

	var probMark, cumMark plotter.XYs
	if hasMark {
		probMark = plotter.XYs{{X: float64(mark.Year), Y: mark.Probability}}
		cumMark = plotter.XYs{{X: float64(mark.Year), Y: mark.Cumulative}}
	}

	left, err := panel(prob, probMark, st.ProbabilityLabel, st)
	if err != nil {
		return nil, fmt.Errorf("probability panel: %w", err)
	}
	right, err := panel(cum, cumMark, st.CumulativeLabel, st)
	if err != nil {
		return nil, fmt.Errorf("cumulative panel: %w", err)
	}

	img := vgimg.NewWith(vgimg.UseWH(st.Width, st.Height), vgimg.UseDPI(st.Dpi), vgimg.UseBackgroundColor(st.BackgroundColor))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      st.Padding,
		PadY:      st.Padding,
		PadTop:    st.Padding,
		PadBottom: st.Padding,
		PadLeft:   st.Padding,
		PadRight:  st.Padding,
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots[0] {
		plots[0][j].Draw(canvases[0][j])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func panel(line plotter.XYs, mark plotter.XYs, label string, st Style) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = st.BackgroundColor
	p.X.Label.Text = st.YearLabel
	p.Y.Label.Text = label
	styleAxis(&p.X, st.TextColor)
	styleAxis(&p.Y, st.TextColor)

	l, err := plotter.NewLine(line)
	if err != nil {
		return nil, err
	}
	l.Color = st.LineColor
	l.Width = st.LineWidth

	p.Add(l)
	if len(mark) == 0 {
		return p, nil
	}

	s, err := plotter.NewScatter(mark)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = st.MarkerColor
	s.GlyphStyle.Radius = st.MarkerRadius
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	return p, nil
}

func styleAxis(a *plot.Axis, c color.Color) {
	a.Color = c
	a.Label.TextStyle.Color = c
	a.Tick.Color = c
	a.Tick.Label.Color = c
}

// DataURI encodes a PNG image as a data URI suitable for embedding in HTML.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
