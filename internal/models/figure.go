package models

// AggregatedCount is the number of records sharing a (site, class) pair.
// It is recomputed on every pie evaluation and never stored.
type AggregatedCount struct {
	LaunchSite   string `json:"launch_site"`
	OutcomeClass int    `json:"class"`
	Count        int    `json:"count"`
}

// Slice is one wedge of a pie figure
type Slice struct {
	Label        string `json:"label"`
	Value        int    `json:"value"`
	LaunchSite   string `json:"launch_site,omitempty"`
	OutcomeClass *int   `json:"class,omitempty"` // set for per-site pies only
}

// PieFigure describes a pie chart handed to the presentation layer
type PieFigure struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

// Total returns the sum of all slice values.
func (f *PieFigure) Total() int {
	total := 0
	for _, s := range f.Slices {
		total += s.Value
	}
	return total
}

// Point is one launch plotted on the payload/outcome scatter
type Point struct {
	X     float64 `json:"x"`     // payload mass (kg)
	Y     int     `json:"y"`     // outcome class
	Color string  `json:"color"` // booster version category
}

// ScatterFigure describes a scatter plot handed to the presentation layer
type ScatterFigure struct {
	Title  string       `json:"title"`
	Site   string       `json:"site"`
	Range  PayloadRange `json:"range"`
	Points []Point      `json:"points"`
}

// Categories returns the distinct colour categories in first-seen order.
func (f *ScatterFigure) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.Points {
		if !seen[p.Color] {
			seen[p.Color] = true
			out = append(out, p.Color)
		}
	}
	return out
}

// Option is one entry of the site selector
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SliderConfig describes the payload range control
type SliderConfig struct {
	Min     float64        `json:"min"`
	Max     float64        `json:"max"`
	Step    float64        `json:"step"`
	Marks   map[int]string `json:"marks"`
	Default PayloadRange   `json:"default"`
}
