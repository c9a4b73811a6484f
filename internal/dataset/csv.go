package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Parse reads a CSV table with a header row into a Dataset.
// A column is numeric when every non-empty cell parses as a float; empty
// numeric cells are kept as missing values. country, continent, year and
// pop are required, and year must hold whole numbers.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = h
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = Column{Name: h, Kind: inferKind(rows, i)}
	}

	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		pos[h] = i
	}
	for _, required := range []string{ColCountry, ColContinent, ColYear, ColPopulation} {
		if _, ok := pos[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	for _, numeric := range []string{ColYear, ColPopulation} {
		if columns[pos[numeric]].Kind != KindNumeric {
			return nil, fmt.Errorf("%w: column %s is not numeric", ErrMalformedRow, numeric)
		}
	}

	records := make([]Record, 0, len(rows))
	for n, row := range rows {
		rec := Record{
			Country:   strings.TrimSpace(row[pos[ColCountry]]),
			Continent: strings.TrimSpace(row[pos[ColContinent]]),
			Values:    make(map[string]float64),
		}
		for i, col := range columns {
			if col.Kind != KindNumeric {
				continue
			}
			rec.Values[col.Name] = parseCell(row[i])
		}

		year := rec.Values[ColYear]
		if math.IsNaN(year) || year != math.Trunc(year) {
			// header is line 1
			return nil, fmt.Errorf("%w: line %d: year %q", ErrMalformedRow, n+2, row[pos[ColYear]])
		}
		rec.Year = int(year)

		records = append(records, rec)
	}

	return newDataset(columns, records), nil
}

func inferKind(rows [][]string, col int) Kind {
	seen := false
	for _, row := range rows {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return KindText
		}
		seen = true
	}
	if !seen {
		return KindText
	}
	return KindNumeric
}

func parseCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
