package chart

import (
	"fmt"
	"strings"
)

// Labels holds the human-readable text for one locale
type Labels struct {
	Locale string `json:"locale" yaml:"locale"`

	Population string `json:"population" yaml:"population"`
	Country    string `json:"country" yaml:"country"`
	Continent  string `json:"continent" yaml:"continent"`

	// format strings taking the year
	BubbleTitle    string `json:"bubbleTitle" yaml:"bubble_title"`
	TopTitle       string `json:"topTitle" yaml:"top_title"`
	ContinentTitle string `json:"continentTitle" yaml:"continent_title"`

	ChooseCountry string `json:"chooseCountry" yaml:"choose_country"`
	ChooseMetric  string `json:"chooseMetric" yaml:"choose_metric"`
	LineHeading   string `json:"lineHeading" yaml:"line_heading"`
	ChooseX       string `json:"chooseX" yaml:"choose_x"`
	ChooseY       string `json:"chooseY" yaml:"choose_y"`
	ChooseSize    string `json:"chooseSize" yaml:"choose_size"`
	ChooseYear    string `json:"chooseYear" yaml:"choose_year"`
}

var catalog = map[string]Labels{
	"ru": {
		Locale:         "ru",
		Population:     "Население",
		Country:        "Страна",
		Continent:      "Континент",
		BubbleTitle:    "Пузырковая диаграмма для %d года",
		TopTitle:       "Tоп 15 стран по населению в %d",
		ContinentTitle: "Население по континентам в %d",
		ChooseCountry:  "Выберите страну",
		ChooseMetric:   "Выберите метрику",
		LineHeading:    "Линейный график",
		ChooseX:        "Выберите метрику X",
		ChooseY:        "Выберите метрику Y",
		ChooseSize:     "Выберите метрику, отвечающую за размер пузырьков",
		ChooseYear:     "Выберите год",
	},
	"en": {
		Locale:         "en",
		Population:     "Population",
		Country:        "Country",
		Continent:      "Continent",
		BubbleTitle:    "Bubble chart for %d",
		TopTitle:       "Top 15 countries by population in %d",
		ContinentTitle: "Population by continent in %d",
		ChooseCountry:  "Choose countries",
		ChooseMetric:   "Choose a metric",
		LineHeading:    "Line chart",
		ChooseX:        "Choose the X metric",
		ChooseY:        "Choose the Y metric",
		ChooseSize:     "Choose the bubble size metric",
		ChooseYear:     "Choose a year",
	},
}

// LabelsFor returns the catalog entry for a locale
func LabelsFor(locale string) (Labels, error) {
	l, ok := catalog[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return Labels{}, fmt.Errorf("unsupported locale %q (want one of: ru, en)", locale)
	}
	return l, nil
}
