package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sort"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageTitle is the dashboard heading
const PageTitle = "SpaceX Launch Records Dashboard"

type indexData struct {
	Title     string
	Options   []models.Option
	Slider    models.SliderConfig
	Marks     []string
	Selection dashboard.Selection
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	slider := s.dash.Slider()

	ticks := make([]int, 0, len(slider.Marks))
	for v := range slider.Marks {
		ticks = append(ticks, v)
	}
	sort.Ints(ticks)
	marks := make([]string, 0, len(ticks))
	for _, v := range ticks {
		marks = append(marks, slider.Marks[v])
	}

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexData{
		Title:     PageTitle,
		Options:   s.dash.Options(),
		Slider:    slider,
		Marks:     marks,
		Selection: s.dash.DefaultSelection(),
	})
	if err != nil {
		logger.Error("Failed to render index page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
