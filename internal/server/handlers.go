package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
	"github.com/rewired-gh/launchdash/internal/render"
)

// errBadRequest marks selection errors caused by the client
var errBadRequest = errors.New("bad request")

// parseSelection reads site, min and max from the query string.
// A missing site means all sites; missing bounds default to the dataset bounds.
func (s *Server) parseSelection(q url.Values) (dashboard.Selection, error) {
	sel := s.dash.DefaultSelection()

	if q.Has("site") {
		sel.Site = q.Get("site")
	}

	for _, b := range []struct {
		name string
		dst  *float64
	}{
		{"min", &sel.Payload.Lo},
		{"max", &sel.Payload.Hi},
	} {
		raw := q.Get(b.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return sel, fmt.Errorf("%w: invalid %s %q", errBadRequest, b.name, raw)
		}
		*b.dst = v
	}

	if err := sel.Payload.Validate(); err != nil {
		return sel, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return sel, nil
}

// writeJSON encodes v before writing the status so an encoding failure
// still becomes a 500
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errBadRequest) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writePNG buffers the image so a render failure can still become a 500
func writePNG(w http.ResponseWriter, draw func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		logger.Error("Chart rendering failed: %v", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.dash.Store().Len(),
	})
}

type controlsResponse struct {
	Options   []models.Option     `json:"options"`
	Slider    models.SliderConfig `json:"slider"`
	Selection dashboard.Selection `json:"selection"`
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, controlsResponse{
		Options:   s.dash.Options(),
		Slider:    s.dash.Slider(),
		Selection: s.dash.DefaultSelection(),
	})
}

func (s *Server) handlePie(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	fig, ok := s.dash.UpdatePie(sel.Site)
	if !ok {
		logger.Debug("No pie chart for unknown site %q", sel.Site)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.dash.UpdateScatter(sel.Site, sel.Payload))
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	fig, _ := s.dash.UpdatePie(sel.Site)
	writePNG(w, func(buf *bytes.Buffer) error {
		return render.Pie(buf, fig, s.opts.ChartSize)
	})
}

func (s *Server) handleScatterChart(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	fig := s.dash.UpdateScatter(sel.Site, sel.Payload)
	writePNG(w, func(buf *bytes.Buffer) error {
		return render.Scatter(buf, &fig, s.opts.ChartSize)
	})
}
