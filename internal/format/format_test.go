package format

import (
	"strings"
	"testing"

	"github.com/rewired-gh/launchdash/internal/models"
)

func TestPieTable(t *testing.T) {
	fig := &models.PieFigure{
		Title: "Total Success Launches By Site",
		Slices: []models.Slice{
			{Label: "A", Value: 1},
			{Label: "B", Value: 3},
		},
	}

	out := PieTable(fig, ASCII)
	for _, want := range []string{"Total Success Launches By Site", "A", "B", "25.0%", "75.0%", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestASCIITitleIsNotWrapped(t *testing.T) {
	fig := &models.ScatterFigure{
		Title:  "Correlation between Payload and Success for A Site(s)",
		Range:  models.PayloadRange{Lo: 600, Hi: 10000},
		Points: []models.Point{{X: 800, Y: 0, Color: "v1.1"}},
	}

	out := ScatterTable(fig, ASCII)
	first, _, _ := strings.Cut(out, "\n")
	if want := "Correlation between Payload and Success for A Site(s) [600, 10000] kg"; first != want {
		t.Errorf("expected title line %q, got %q", want, first)
	}
	if !strings.Contains(out, "800") {
		t.Errorf("expected point row in output:\n%s", out)
	}
}

func TestPieTableAbsent(t *testing.T) {
	if out := PieTable(nil, ASCII); !strings.Contains(out, "No pie chart") {
		t.Errorf("unexpected output for absent pie: %q", out)
	}
}

func TestScatterTableMarkdown(t *testing.T) {
	fig := &models.ScatterFigure{
		Title: "Correlation between Payload and Success for A Site(s)",
		Range: models.PayloadRange{Lo: 600, Hi: 10000},
		Points: []models.Point{
			{X: 800, Y: 0, Color: "v1.1"},
		},
	}

	out := ScatterTable(fig, Markdown)
	if !strings.HasPrefix(out, "**Correlation between Payload and Success for A Site(s) [600, 10000] kg**") {
		t.Errorf("expected bold title first, got:\n%s", out)
	}
	if !strings.Contains(out, "| 800 |") {
		t.Errorf("expected a markdown row for the point, got:\n%s", out)
	}
	if !strings.Contains(out, "v1.1") {
		t.Errorf("expected booster category in output, got:\n%s", out)
	}
}

func TestSitesTable(t *testing.T) {
	out := SitesTable([]models.Option{{Label: "All sites", Value: "ALL"}, {Label: "A", Value: "A"}}, ASCII)
	if !strings.Contains(out, "All sites") || !strings.Contains(out, "ALL") {
		t.Errorf("unexpected sites table:\n%s", out)
	}
}

func TestShare(t *testing.T) {
	if got := share(0, 0); got != "-" {
		t.Errorf("share(0, 0) = %q, expected -", got)
	}
	if got := share(1, 3); got != "33.3%" {
		t.Errorf("share(1, 3) = %q, expected 33.3%%", got)
	}
}
