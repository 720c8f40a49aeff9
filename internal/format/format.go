// Package format renders dashboard figures as terminal or Markdown tables.
package format

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rewired-gh/launchdash/internal/models"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// newWriter returns a go-pretty writer styled for m
func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

// render prints the title on its own line above the table.
// go-pretty wraps SetTitle text to the table width, so titles stay outside it.
func render(w table.Writer, m Mode, title string) string {
	if m == Markdown {
		return "**" + title + "**\n\n" + w.RenderMarkdown()
	}
	return title + "\n" + w.Render()
}

// PieTable renders a pie figure as one row per slice with its share of the total.
// A nil figure renders as a one-line notice.
func PieTable(fig *models.PieFigure, m Mode) string {
	if fig == nil {
		return "No pie chart for this selection."
	}

	w := newWriter(m)
	w.AppendHeader(table.Row{"Slice", "Count", "Share"})

	total := fig.Total()
	for _, s := range fig.Slices {
		w.AppendRow(table.Row{s.Label, s.Value, share(s.Value, total)})
	}
	w.AppendFooter(table.Row{"Total", total, share(total, total)})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	return render(w, m, fig.Title)
}

// ScatterTable renders a scatter figure as one row per point
func ScatterTable(fig *models.ScatterFigure, m Mode) string {
	title := fmt.Sprintf("%s [%s, %s] kg", fig.Title, kg(fig.Range.Lo), kg(fig.Range.Hi))

	w := newWriter(m)
	w.AppendHeader(table.Row{"Payload Mass (kg)", "class", "Booster Version Category"})
	for _, p := range fig.Points {
		w.AppendRow(table.Row{kg(p.X), p.Y, p.Color})
	}
	w.AppendFooter(table.Row{"Points", len(fig.Points), ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignCenter, AlignFooter: text.AlignRight},
		{Number: 3, WidthMax: 32},
	})

	return render(w, m, title)
}

// SitesTable renders the site selector options
func SitesTable(options []models.Option, m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Value", "Label"})
	for _, o := range options {
		w.AppendRow(table.Row{o.Value, o.Label})
	}
	return render(w, m, "Launch Sites")
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

func kg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
