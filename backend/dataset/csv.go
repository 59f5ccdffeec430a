// ABOUTME: CSV rainfall source reading dist/station/value/date rows
// ABOUTME: Headers are case-insensitive; unparsable rows are dropped and counted

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

// ErrMissingColumns means a CSV header lacks a required column.
var ErrMissingColumns = errors.New("csv is missing required columns")

var columnAliases = map[string][]string{
	"district": {"dist", "district"},
	"station":  {"station", "subdistrict", "sub_district"},
	"value":    {"value", "rainfall", "rainfall_mm"},
	"date":     {"date"},
	"year":     {"year"},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01",
	"2006",
}

type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Load(ctx context.Context) ([]models.Observation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening rainfall csv: %w", err)
	}
	defer f.Close()

	observations, dropped, err := ParseCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	if dropped > 0 {
		slog.Warn("Dropped unparsable rainfall rows", "path", s.path, "dropped", dropped)
	}
	return observations, nil
}

// ParseCSV reads observations from r. The year comes from the date column,
// or from a year column when there is no date column. It returns the
// number of rows skipped for a bad value or date.
func ParseCSV(ctx context.Context, r io.Reader) ([]models.Observation, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	cols := resolveColumns(header)

	for _, required := range []string{"district", "station", "value"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("%w: no %s column in %v", ErrMissingColumns, required, header)
		}
	}
	_, hasDate := cols["date"]
	_, hasYear := cols["year"]
	if !hasDate && !hasYear {
		return nil, 0, fmt.Errorf("%w: no date or year column in %v", ErrMissingColumns, header)
	}

	var (
		observations []models.Observation
		dropped      int
		line         int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading row: %w", err)
		}
		line++
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		value, okValue := parseValue(field(record, cols, "value"))
		year, okYear := rowYear(record, cols, hasDate)
		if !okValue || !okYear {
			dropped++
			continue
		}
		observations = append(observations, models.Observation{
			District: field(record, cols, "district"),
			Station:  field(record, cols, "station"),
			Year:     year,
			Value:    value,
		})
	}
	return observations, dropped, nil
}

// parseValue rejects NaN and infinities along with unparsable text.
func parseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func resolveColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	cols := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[canonical] = i
				break
			}
		}
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func rowYear(record []string, cols map[string]int, hasDate bool) (int, bool) {
	if hasDate {
		return parseYear(field(record, cols, "date"))
	}
	year, err := strconv.Atoi(field(record, cols, "year"))
	return year, err == nil
}

func parseYear(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}
