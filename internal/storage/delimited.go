package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rewired-gh/launchdash/internal/models"
)

func loadDelimitedFile(path string, delimiter rune) ([]models.LaunchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parseDelimited(f, delimiter)
}

// parseDelimited reads a header row followed by data rows. Columns are matched
// by header name; columns other than RequiredColumns are ignored.
func parseDelimited(r io.Reader, delimiter rune) ([]models.LaunchRecord, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s (file has no header)", ErrMissingColumn, ColumnLaunchSite)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []models.LaunchRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(
			row[index[ColumnLaunchSite]],
			row[index[ColumnPayloadMass]],
			row[index[ColumnClass]],
			row[index[ColumnBoosterCategory]],
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(site, payload, class, booster string) (models.LaunchRecord, error) {
	mass, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return models.LaunchRecord{}, fmt.Errorf("invalid %s %q: %w", ColumnPayloadMass, payload, err)
	}

	outcome, err := parseClass(class)
	if err != nil {
		return models.LaunchRecord{}, err
	}

	return models.LaunchRecord{
		LaunchSite:             strings.TrimSpace(site),
		PayloadMassKg:          mass,
		OutcomeClass:           outcome,
		BoosterVersionCategory: strings.TrimSpace(booster),
	}, nil
}

// parseClass accepts integral spellings such as "1" and "1.0"
func parseClass(value string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", ColumnClass, value, err)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("invalid %s %q: not an integer", ColumnClass, value)
	}
	return int(f), nil
}
