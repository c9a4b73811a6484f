package view

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Selection is the current value of each dropdown, keyed by widget id.
// Single-select dropdowns hold one value.
type Selection map[string][]string

// Clone returns a deep copy
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Set replaces the value of one widget
func (s Selection) Set(id string, values ...string) {
	s[id] = append([]string(nil), values...)
}

// Many returns every value of a widget
func (s Selection) Many(id string) []string {
	return s[id]
}

// One returns the single value of a widget
func (s Selection) One(id string) (string, error) {
	v := s[id]
	if len(v) != 1 {
		return "", fmt.Errorf("%s: expected exactly one value, got %d", id, len(v))
	}
	return v[0], nil
}

// Int returns the single value of a widget as an integer
func (s Selection) Int(id string) (int, error) {
	v, err := s.One(id)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", id, v)
	}
	return n, nil
}

// Merge overlays the widgets present in q on a copy of s.
// Values are not split on commas: country names such as "Korea, Rep." contain them.
func (s Selection) Merge(q url.Values) Selection {
	out := s.Clone()
	for id, raw := range q {
		if _, known := s[id]; !known {
			continue
		}
		var values []string
		for _, r := range raw {
			if r = strings.TrimSpace(r); r != "" {
				values = append(values, r)
			}
		}
		out[id] = values
	}
	return out
}

// Query encodes the selection for a URL. An empty widget is sent as a single
// empty value so that Merge clears it instead of keeping the default.
func (s Selection) Query() url.Values {
	q := make(url.Values, len(s))
	for id, v := range s {
		if len(v) == 0 {
			q[id] = []string{""}
			continue
		}
		q[id] = append([]string(nil), v...)
	}
	return q
}
