package entity

import (
	"fmt"
	"math"
	"strconv"
)

// Property is one custom name/value pair attached to a map object.
type Property struct {
	Name  string
	Type  string
	Value any
}

// Properties is a typed lookup of resolved custom properties.
type Properties map[string]any

// PropertyError describes a property entry that could not be resolved.
type PropertyError struct {
	Index  int
	Name   string
	Reason string
}

func (e *PropertyError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("property #%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("property #%d %q: %s", e.Index, e.Name, e.Reason)
}

// ResolveProperties builds a Properties map from raw entries.
// Entries with a missing name or value are skipped and reported; later
// entries with the same name override earlier ones.
func ResolveProperties(raw []Property) (Properties, []error) {
	props := make(Properties, len(raw))
	var errs []error
	for i, p := range raw {
		if p.Name == "" {
			errs = append(errs, &PropertyError{Index: i, Reason: "missing name"})
			continue
		}
		if p.Value == nil {
			errs = append(errs, &PropertyError{Index: i, Name: p.Name, Reason: "missing value"})
			continue
		}
		props[p.Name] = p.Value
	}
	return props, errs
}

// Has reports whether a property is set.
func (p Properties) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String returns the property as a string, or def when absent or not a string.
func (p Properties) String(name, def string) string {
	switch v := p[name].(type) {
	case string:
		if v == "" {
			return def
		}
		return v
	default:
		return def
	}
}

// Float returns the property as a float64. Numeric strings are accepted.
func (p Properties) Float(name string, def float64) float64 {
	switch v := p[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// Int returns the property as an int, rounding floats to the nearest integer.
func (p Properties) Int(name string, def int) int {
	switch v := p[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(math.Round(v))
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// Bool returns the property as a bool.
func (p Properties) Bool(name string, def bool) bool {
	switch v := p[name].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}
