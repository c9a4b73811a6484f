package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func TestDeriveOptions(t *testing.T) {
	ds := loadSample(t)
	opts := DeriveOptions(ds)

	if want := []string{"year", "lifeExp", "pop", "gdpPercap"}; !reflect.DeepEqual(opts.NumericColumns, want) {
		t.Errorf("numeric columns: expected %v, got %v", want, opts.NumericColumns)
	}
	if want := []string{"lifeExp", "pop", "gdpPercap"}; !reflect.DeepEqual(opts.NonYearColumns, want) {
		t.Errorf("non-year columns: expected %v, got %v", want, opts.NonYearColumns)
	}
	if want := []string{"Canada", "Germany", "Japan", "Nigeria", "Australia", "Brazil"}; !reflect.DeepEqual(opts.Countries, want) {
		t.Errorf("countries: expected %v, got %v", want, opts.Countries)
	}
	if want := []int{2002, 2007}; !reflect.DeepEqual(opts.Years, want) {
		t.Errorf("years: expected %v, got %v", want, opts.Years)
	}
}

func TestDeriveOptions_FirstSeenOrder(t *testing.T) {
	in := "country,continent,year,pop\nPeru,Americas,2007,1\nChad,Africa,1952,2\nPeru,Americas,1952,3\n"
	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	opts := DeriveOptions(ds)
	if want := []string{"Peru", "Chad"}; !reflect.DeepEqual(opts.Countries, want) {
		t.Errorf("expected %v, got %v", want, opts.Countries)
	}
	if want := []int{2007, 1952}; !reflect.DeepEqual(opts.Years, want) {
		t.Errorf("expected %v, got %v", want, opts.Years)
	}
	if !opts.HasCountry("Chad") || opts.HasCountry("Narnia") {
		t.Error("HasCountry mismatch")
	}
	if !opts.HasYear(1952) || opts.HasYear(1800) {
		t.Error("HasYear mismatch")
	}
}
