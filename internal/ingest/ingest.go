// Package ingest reads raw incident rows, validates the header, coerces
// field types, and splits the input into accepted records and rejects.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cambsdata/crimescope/internal/model"
)

// Row is one raw CSV row in the police data layout.
type Row struct {
	CrimeID   string `csv:"Crime ID"`
	Month     string `csv:"Month"`
	CrimeType string `csv:"Crime type"`
	Location  string `csv:"Location"`
	LSOAName  string `csv:"LSOA name"`
	Latitude  string `csv:"Latitude"`
	Longitude string `csv:"Longitude"`
	Outcome   string `csv:"Last outcome category"`
}

// Reject is a row excluded from all downstream aggregation.
type Reject struct {
	Line   int    `json:"line"`
	Row    Row    `json:"row"`
	Reason string `json:"reason"`
}

// requiredColumns must all be present in the header. A missing column is a
// configuration error, reported before any row is processed.
var requiredColumns = []string{
	"Crime ID",
	"Month",
	"Crime type",
	"Location",
	"LSOA name",
	"Latitude",
	"Longitude",
	"Last outcome category",
}

// ErrMissingColumn is returned when the input header lacks a required column.
var ErrMissingColumn = eris.New("ingest: missing required column")

// Ingest decodes all rows from r. Rows with a wrong field count or an
// unparseable month are rejected outright; rows with unparseable
// coordinates are admitted with nil coordinates so downstream consumers
// decide exclusion per dimension.
func Ingest(r io.Reader) ([]model.CrimeRecord, []Reject, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if err == io.EOF {
			return nil, nil, eris.Wrap(ErrMissingColumn, "ingest: empty input, no header")
		}
		return nil, nil, eris.Wrap(err, "ingest: read header")
	}

	if err := validateHeader(dec.Header()); err != nil {
		return nil, nil, err
	}

	var (
		records []model.CrimeRecord
		rejects []Reject
		line    = 1 // header is line 1
	)
	for {
		var row Row
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		line++
		if errors.Is(err, csvutil.ErrFieldCount) {
			// A short or long record is a bad row, not a bad file.
			rejects = append(rejects, Reject{Line: line, Reason: "malformed row"})
			continue
		}
		if err != nil {
			return nil, nil, eris.Wrapf(err, "ingest: decode row %d", line)
		}

		month, ok := model.ParseMonth(strings.TrimSpace(row.Month))
		if !ok {
			rejects = append(rejects, Reject{Line: line, Row: row, Reason: "unparseable date"})
			continue
		}

		records = append(records, model.CrimeRecord{
			ID:        strings.TrimSpace(row.CrimeID),
			Month:     month,
			CrimeType: strings.TrimSpace(row.CrimeType),
			Location:  strings.TrimSpace(row.Location),
			AreaName:  strings.TrimSpace(row.LSOAName),
			Latitude:  parseCoordinate(row.Latitude),
			Longitude: parseCoordinate(row.Longitude),
			Outcome:   strings.TrimSpace(row.Outcome),
		})
	}

	zap.L().Info("ingest: complete",
		zap.Int("accepted", len(records)),
		zap.Int("rejected", len(rejects)),
	)
	return records, rejects, nil
}

// IngestFile opens path and ingests it.
func IngestFile(path string) ([]model.CrimeRecord, []Reject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()
	return Ingest(f)
}

func validateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return eris.Wrapf(ErrMissingColumn, "ingest: header lacks %q", col)
		}
	}
	return nil
}

// parseCoordinate returns nil for absent or malformed values rather than
// zero, which is a valid coordinate.
func parseCoordinate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
