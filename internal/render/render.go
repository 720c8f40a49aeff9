// Package render draws dashboard figures as PNG images using go-chart.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rewired-gh/launchdash/internal/models"
)

// Size is the pixel size of a rendered chart
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the server defaults
var DefaultSize = Size{Width: 800, Height: 480}

// minXSpan keeps the x axis drawable when the payload range collapses to a point
const minXSpan = 1000.0

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: col,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Pie writes fig as a PNG pie chart. A figure without slices renders a
// placeholder so the page always gets an image.
func Pie(w io.Writer, fig *models.PieFigure, size Size) error {
	if fig == nil {
		return Placeholder(w, size, "No chart for this selection")
	}
	if len(fig.Slices) == 0 {
		return Placeholder(w, size, fig.Title+": no launches")
	}

	values := make([]chart.Value, 0, len(fig.Slices))
	for i, s := range fig.Slices {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", s.Label, s.Value),
			Value: float64(s.Value),
			Style: chart.Style{FillColor: chart.GetDefaultColor(i)},
		})
	}

	pie := chart.PieChart{
		Title:  fig.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// Scatter writes fig as a PNG scatter chart with one series per booster
// version category.
func Scatter(w io.Writer, fig *models.ScatterFigure, size Size) error {
	if len(fig.Points) == 0 {
		return Placeholder(w, size, fig.Title+": no launches in range")
	}

	categories := fig.Categories()
	index := make(map[string]int, len(categories))
	xs := make([][]float64, len(categories))
	ys := make([][]float64, len(categories))
	for i, c := range categories {
		index[c] = i
	}
	for _, p := range fig.Points {
		i := index[p.Color]
		xs[i] = append(xs[i], p.X)
		ys[i] = append(ys[i], float64(p.Y))
	}

	series := make([]chart.Series, 0, len(categories))
	for i, c := range categories {
		name := c
		if name == "" {
			name = "unknown"
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs[i],
			YValues: ys[i],
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}

	lo, hi := xBounds(fig.Range)
	ch := chart.Chart{
		Title:      fig.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Payload Mass (kg)",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 0, 64)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "class",
			Range: &chart.ContinuousRange{Min: -0.5, Max: 1.5},
			Ticks: []chart.Tick{
				{Value: -0.5, Label: ""},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: 1.5, Label: ""},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}

// xBounds widens a degenerate payload range around its midpoint
func xBounds(r models.PayloadRange) (float64, float64) {
	lo, hi := r.Lo, r.Hi
	if hi-lo < minXSpan {
		mid := (lo + hi) / 2
		lo, hi = mid-minXSpan/2, mid+minXSpan/2
	}
	return lo, hi
}

// Placeholder writes a plain PNG carrying a single line of text
func Placeholder(w io.Writer, size Size, text string) error {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 250, G: 250, B: 250, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 80, G: 61, B: 54, A: 255}), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := (size.Width - tw) / 2
	if x < 8 {
		x = 8
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(size.Height / 2)}
	dr.DrawString(text)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return nil
}
