package dataset

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	f, err := os.Open("testdata/gapminder_sample.csv")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Parse(f)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return ds
}

func TestParse_Sample(t *testing.T) {
	ds := loadSample(t)

	if ds.Len() != 11 {
		t.Fatalf("expected 11 records, got %d", ds.Len())
	}

	wantKinds := map[string]Kind{
		"country":   KindText,
		"continent": KindText,
		"year":      KindNumeric,
		"lifeExp":   KindNumeric,
		"pop":       KindNumeric,
		"gdpPercap": KindNumeric,
	}
	for name, kind := range wantKinds {
		col, ok := ds.Column(name)
		if !ok {
			t.Errorf("column %s missing", name)
			continue
		}
		if col.Kind != kind {
			t.Errorf("column %s: expected %s, got %s", name, kind, col.Kind)
		}
	}

	first := ds.records[0]
	if first.Country != "Canada" || first.Continent != "Americas" || first.Year != 2002 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Population() != 31902268 {
		t.Errorf("expected pop 31902268, got %v", first.Population())
	}
	if v, ok := first.Value("year"); !ok || v != 2002 {
		t.Errorf("expected year value 2002, got %v (%v)", v, ok)
	}
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	in := "country,year,pop\nCanada,2002,1\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "continent") {
		t.Errorf("error should name the column: %v", err)
	}
}

func TestParse_FractionalYear(t *testing.T) {
	in := "country,continent,year,pop\nCanada,Americas,2002.5,1\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestParse_NonNumericPopulation(t *testing.T) {
	in := "country,continent,year,pop\nCanada,Americas,2002,lots\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "country,continent,year,pop\n"} {
		if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrEmpty) {
			t.Errorf("Parse(%q): expected ErrEmpty, got %v", in, err)
		}
	}
}

func TestParse_RaggedRow(t *testing.T) {
	in := "country,continent,year,pop\nCanada,Americas,2002\n"
	if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestParse_MissingNumericCell(t *testing.T) {
	in := "country,continent,year,pop,lifeExp\nCanada,Americas,2002,10,\nPeru,Americas,2002,5,70\n"
	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !ds.IsNumeric("lifeExp") {
		t.Fatal("lifeExp should stay numeric with an empty cell")
	}
	if _, ok := ds.records[0].Value("lifeExp"); ok {
		t.Error("empty cell should be reported as missing")
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	in := "\ufeffcountry,continent,year,pop\nCanada,Americas,2002,10\n"
	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := ds.Column("country"); !ok {
		t.Error("BOM should be stripped from the first header")
	}
}

func TestDataset_Filters(t *testing.T) {
	ds := loadSample(t)

	rows := ds.ByYear(2002)
	if len(rows) != 5 {
		t.Errorf("expected 5 rows for 2002, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Year != 2002 {
			t.Errorf("unexpected year %d", r.Year)
		}
	}

	rows = ds.ByCountries([]string{"Canada", "Brazil"})
	if len(rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(rows))
	}

	if rows := ds.ByCountries(nil); len(rows) != 0 {
		t.Errorf("empty selection should match nothing, got %d", len(rows))
	}
	if rows := ds.ByYear(1800); len(rows) != 0 {
		t.Errorf("unknown year should match nothing, got %d", len(rows))
	}
}

func TestDataset_FilterDoesNotAlias(t *testing.T) {
	ds := loadSample(t)
	rows := ds.ByYear(2007)
	rows[0].Country = "Mutated"
	if ds.records[1].Country != "Canada" {
		t.Error("filtered slice must not alias the dataset")
	}
}
