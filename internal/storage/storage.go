// Package storage provides the read-only launch dataset store.
// The dataset is loaded exactly once at startup from a delimited file, a SQLite
// database or an HTTP(S) URL, and is never mutated afterwards, so concurrent
// readers need no locking.
//
// The store also owns the site catalog: the sorted set of distinct launch sites
// used to populate the site selector and to decide whether a selection names a
// known site.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rewired-gh/launchdash/internal/models"
)

// Required dataset column names
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// RequiredColumns lists the columns every dataset source must provide
var RequiredColumns = []string{ColumnLaunchSite, ColumnPayloadMass, ColumnClass, ColumnBoosterCategory}

var (
	// ErrMissingColumn is returned when a dataset lacks one of RequiredColumns.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset is returned when a dataset has no rows.
	ErrEmptyDataset = errors.New("dataset has no records")
)

// Source describes where the dataset is loaded from
type Source struct {
	Path           string
	Delimiter      rune
	Table          string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelayBase time.Duration
}

// Store holds the immutable launch dataset and its site catalog
type Store struct {
	records    []models.LaunchRecord
	sites      []string
	siteSet    map[string]bool
	minPayload float64
	maxPayload float64
}

// Load reads the dataset described by src and builds a Store.
// Any failure here is a startup failure: missing source, missing column,
// unparsable value or empty dataset.
func Load(ctx context.Context, src Source) (*Store, error) {
	var (
		records []models.LaunchRecord
		err     error
	)

	switch Kind(src.Path) {
	case KindRemote:
		records, err = loadRemote(ctx, src)
	case KindSQLite:
		records, err = loadSQLite(ctx, src.Path, src.Table)
	default:
		records, err = loadDelimitedFile(src.Path, src.Delimiter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", src.Path, err)
	}

	return New(records)
}

// SourceKind identifies how a dataset path is read
type SourceKind int

const (
	KindDelimited SourceKind = iota
	KindSQLite
	KindRemote
)

// Kind classifies a dataset path by scheme and extension
func Kind(path string) SourceKind {
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return KindRemote
	}
	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	}
	return KindDelimited
}

// New builds a Store from already-parsed records
func New(records []models.LaunchRecord) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	s := &Store{
		records:    make([]models.LaunchRecord, len(records)),
		siteSet:    make(map[string]bool),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}
	copy(s.records, records)

	for i := range s.records {
		r := &s.records[i]
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i+1, err)
		}
		if !s.siteSet[r.LaunchSite] {
			s.siteSet[r.LaunchSite] = true
			s.sites = append(s.sites, r.LaunchSite)
		}
		if r.PayloadMassKg < s.minPayload {
			s.minPayload = r.PayloadMassKg
		}
		if r.PayloadMassKg > s.maxPayload {
			s.maxPayload = r.PayloadMassKg
		}
	}

	// Sorted for a deterministic selector order
	sort.Strings(s.sites)

	return s, nil
}

// Records returns a copy of all launch records in dataset order
func (s *Store) Records() []models.LaunchRecord {
	out := make([]models.LaunchRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Each calls fn for every record in dataset order without copying the table.
// fn must not retain the pointer.
func (s *Store) Each(fn func(r *models.LaunchRecord)) {
	for i := range s.records {
		fn(&s.records[i])
	}
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}

// MinPayload returns the smallest payload mass in the dataset
func (s *Store) MinPayload() float64 {
	return s.minPayload
}

// MaxPayload returns the largest payload mass in the dataset
func (s *Store) MaxPayload() float64 {
	return s.maxPayload
}

// PayloadBounds returns [MinPayload, MaxPayload]
func (s *Store) PayloadBounds() models.PayloadRange {
	return models.PayloadRange{Lo: s.minPayload, Hi: s.maxPayload}
}

// Sites returns the distinct launch sites, sorted
func (s *Store) Sites() []string {
	out := make([]string, len(s.sites))
	copy(out, s.sites)
	return out
}

// IsKnownSite reports whether site is a member of the site catalog
func (s *Store) IsKnownSite(site string) bool {
	return s.siteSet[site]
}
