// Package dashboard provides the two reactive functions behind the launch dashboard.
//
// The Pie Aggregator groups launches by (site, class) and turns the counts into
// pie slices: successes per site for the all-sites view, or success versus
// failure for a single site. The Scatter Projector filters launches by an
// inclusive payload range and, when the selection names a known site, by site.
//
// Both functions recompute from the immutable dataset store on every call and
// share no intermediate state, so identical inputs always give identical output.
//
// The two functions treat an unrecognised site differently: the pie yields no
// figure at all, while the scatter applies no site filter.
package dashboard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rewired-gh/launchdash/internal/models"
	"github.com/rewired-gh/launchdash/internal/storage"
)

const (
	// AllSites is the selector value meaning "no site filter"
	AllSites = "ALL"
	// AllSitesLabel is the selector label for AllSites
	AllSitesLabel = "All sites"
)

// Payload slider bounds, independent of the dataset
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000
)

// Dashboard evaluates figures against a loaded dataset
type Dashboard struct {
	store *storage.Store
}

// New creates a new Dashboard instance
func New(s *storage.Store) *Dashboard {
	return &Dashboard{store: s}
}

// Store returns the underlying dataset store
func (d *Dashboard) Store() *storage.Store {
	return d.store
}

// Selection is the user-controlled dashboard state
type Selection struct {
	Site    string              `json:"site"`
	Payload models.PayloadRange `json:"payload"`
}

// DefaultSelection returns all sites over the full payload range of the dataset
func (d *Dashboard) DefaultSelection() Selection {
	return Selection{
		Site:    AllSites,
		Payload: d.store.PayloadBounds(),
	}
}

// Options returns the site selector entries: all sites first, then the catalog
func (d *Dashboard) Options() []models.Option {
	sites := d.store.Sites()
	options := make([]models.Option, 0, len(sites)+1)
	options = append(options, models.Option{Label: AllSitesLabel, Value: AllSites})
	for _, site := range sites {
		options = append(options, models.Option{Label: site, Value: site})
	}
	return options
}

// Slider returns the payload range control configuration
func (d *Dashboard) Slider() models.SliderConfig {
	return models.SliderConfig{
		Min:  SliderMin,
		Max:  SliderMax,
		Step: SliderStep,
		Marks: map[int]string{
			0:     "0",
			2500:  "2500",
			5000:  "5000",
			7500:  "7500",
			10000: "10000",
		},
		Default: d.store.PayloadBounds(),
	}
}

// Aggregate groups all launches by (site, class) and counts each group.
// The result is ordered by site, then class descending.
func (d *Dashboard) Aggregate() []models.AggregatedCount {
	type key struct {
		site  string
		class int
	}
	counts := make(map[key]int)
	d.store.Each(func(r *models.LaunchRecord) {
		counts[key{r.LaunchSite, r.OutcomeClass}]++
	})

	out := make([]models.AggregatedCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.AggregatedCount{LaunchSite: k.site, OutcomeClass: k.class, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LaunchSite != out[j].LaunchSite {
			return out[i].LaunchSite < out[j].LaunchSite
		}
		return out[i].OutcomeClass > out[j].OutcomeClass
	})
	return out
}

// UpdatePie computes the pie figure for site.
// For AllSites it returns one slice per site sized by that site's successes;
// sites without a success do not appear. For a known site it returns one
// slice per outcome class present at that site. For any other value it
// returns nil, false.
func (d *Dashboard) UpdatePie(site string) (*models.PieFigure, bool) {
	switch {
	case site == AllSites:
		fig := &models.PieFigure{Title: "Total Success Launches By Site"}
		for _, c := range d.Aggregate() {
			if c.OutcomeClass != models.OutcomeSuccess {
				continue
			}
			fig.Slices = append(fig.Slices, models.Slice{
				Label:      c.LaunchSite,
				Value:      c.Count,
				LaunchSite: c.LaunchSite,
			})
		}
		return fig, true

	case d.store.IsKnownSite(site):
		fig := &models.PieFigure{Title: fmt.Sprintf("Total Success Launches for site %s", site)}
		for _, c := range d.Aggregate() {
			if c.LaunchSite != site {
				continue
			}
			class := c.OutcomeClass
			fig.Slices = append(fig.Slices, models.Slice{
				Label:        strconv.Itoa(class),
				Value:        c.Count,
				LaunchSite:   site,
				OutcomeClass: &class,
			})
		}
		return fig, true

	default:
		return nil, false
	}
}

// UpdateScatter computes the payload/outcome scatter for site within rng.
// Launches outside rng (inclusive) are dropped. The site filter applies only
// when site is in the catalog; AllSites and unknown values keep every site.
func (d *Dashboard) UpdateScatter(site string, rng models.PayloadRange) models.ScatterFigure {
	filterSite := d.store.IsKnownSite(site)

	fig := models.ScatterFigure{
		Title:  fmt.Sprintf("Correlation between Payload and Success for %s Site(s)", site),
		Site:   site,
		Range:  rng,
		Points: []models.Point{},
	}
	d.store.Each(func(r *models.LaunchRecord) {
		if !rng.Contains(r.PayloadMassKg) {
			return
		}
		if filterSite && r.LaunchSite != site {
			return
		}
		fig.Points = append(fig.Points, models.Point{
			X:     r.PayloadMassKg,
			Y:     r.OutcomeClass,
			Color: r.BoosterVersionCategory,
		})
	})
	return fig
}

// Figures is the output of one full evaluation
type Figures struct {
	Selection Selection            `json:"selection"`
	Pie       *models.PieFigure    `json:"pie"` // nil when the site is unknown
	Scatter   models.ScatterFigure `json:"scatter"`
}

// Evaluate recomputes both figures for sel
func (d *Dashboard) Evaluate(sel Selection) (Figures, error) {
	if err := sel.Payload.Validate(); err != nil {
		return Figures{}, err
	}
	pie, _ := d.UpdatePie(sel.Site)
	return Figures{
		Selection: sel,
		Pie:       pie,
		Scatter:   d.UpdateScatter(sel.Site, sel.Payload),
	}, nil
}
