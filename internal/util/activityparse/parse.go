// Package activityparse turns the generation service's raw text into ordered,
// strongly-typed activity records.
//
// The generation service is not bound to any schema, so every structural
// mismatch is a hard failure of the whole parse: a caller either gets every
// record or none of them.
package activityparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"github.com/tripmates/itinerary-backend/internal/constant"
)

// Record is one activity as proposed by the generation service.
type Record struct {
	Date              string
	Name              string
	Description       string
	Type              string
	ActivityOrder     int
	TimeOfDay         string
	SuggestedDuration string
	Location          string
	Latitude          null.Float
	Longitude         null.Float
}

// Error describes why raw generation output was rejected.
// Index is -1 when the failure concerns the document as a whole.
type Error struct {
	Index  int
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return "activityparse: " + e.Reason
	}
	if e.Field == "" {
		return fmt.Sprintf("activityparse: record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("activityparse: record %d: field %q: %s", e.Index, e.Field, e.Reason)
}

// Parse decodes raw into records, preserving input order.
func Parse(raw string) ([]*Record, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &Error{Index: -1, Reason: "empty input"}
	}
	if !gjson.Valid(raw) {
		return nil, &Error{Index: -1, Reason: "input is not valid JSON"}
	}

	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		return nil, &Error{Index: -1, Reason: fmt.Sprintf("expected a sequence of activities, got %s", kind(doc))}
	}

	elements := doc.Array()
	records := make([]*Record, 0, len(elements))
	for i, el := range elements {
		record, err := parseRecord(i, el)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRecord(i int, el gjson.Result) (*Record, error) {
	if !el.IsObject() {
		return nil, &Error{Index: i, Reason: fmt.Sprintf("expected an object, got %s", kind(el))}
	}

	date, err := requireString(i, el, "date")
	if err != nil {
		return nil, err
	}
	name, err := requireString(i, el, "name")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, &Error{Index: i, Field: "name", Reason: "must not be blank"}
	}

	order, err := parseOrder(i, el.Get("activity_order"))
	if err != nil {
		return nil, err
	}

	lat, err := parseCoordinate(i, el, "latitude")
	if err != nil {
		return nil, err
	}
	lng, err := parseCoordinate(i, el, "longitude")
	if err != nil {
		return nil, err
	}

	r := &Record{
		Date:          TruncateDate(date),
		Name:          name,
		ActivityOrder: order,
		Latitude:      lat,
		Longitude:     lng,
	}
	for _, f := range []struct {
		name string
		dest *string
	}{
		{"description", &r.Description},
		{"type", &r.Type},
		{"time_of_day", &r.TimeOfDay},
		{"suggested_duration", &r.SuggestedDuration},
		{"location", &r.Location},
	} {
		if *f.dest, err = optionalString(i, el, f.name); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// TruncateDate keeps the calendar date part of an ISO-8601-like timestamp.
// Values without a time separator are returned unchanged.
func TruncateDate(date string) string {
	d, _, _ := strings.Cut(date, constant.ActivityDateSeparator)
	return d
}

func parseOrder(i int, v gjson.Result) (int, error) {
	var (
		order float64
		err   error
	)
	switch v.Type {
	case gjson.Number:
		order = v.Num
	case gjson.String:
		order, err = strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, &Error{Index: i, Field: "activity_order", Reason: fmt.Sprintf("%q is not a number", v.Str)}
		}
	default:
		return 0, &Error{Index: i, Field: "activity_order", Reason: fmt.Sprintf("expected a number, got %s", kind(v))}
	}

	if math.IsNaN(order) || math.IsInf(order, 0) || order != math.Trunc(order) {
		return 0, &Error{Index: i, Field: "activity_order", Reason: fmt.Sprintf("%v is not an integer", order)}
	}
	if order < 0 || order > math.MaxInt32 {
		return 0, &Error{Index: i, Field: "activity_order", Reason: fmt.Sprintf("%v is out of range", order)}
	}
	return int(order), nil
}

func parseCoordinate(i int, el gjson.Result, field string) (null.Float, error) {
	v := el.Get(field)
	switch v.Type {
	case gjson.Null:
		return null.Float{}, nil
	case gjson.Number:
		return null.FloatFrom(v.Num), nil
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return null.Float{}, &Error{Index: i, Field: field, Reason: fmt.Sprintf("%q is not a number", v.Str)}
		}
		// ParseFloat accepts "NaN" and "Inf", which cannot be encoded back to JSON
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return null.Float{}, &Error{Index: i, Field: field, Reason: fmt.Sprintf("%q is not a finite number", v.Str)}
		}
		return null.FloatFrom(f), nil
	default:
		return null.Float{}, &Error{Index: i, Field: field, Reason: fmt.Sprintf("expected a number or null, got %s", kind(v))}
	}
}

func requireString(i int, el gjson.Result, field string) (string, error) {
	v := el.Get(field)
	if !v.Exists() {
		return "", &Error{Index: i, Field: field, Reason: "missing"}
	}
	if v.Type != gjson.String {
		return "", &Error{Index: i, Field: field, Reason: fmt.Sprintf("expected a string, got %s", kind(v))}
	}
	return v.Str, nil
}

func optionalString(i int, el gjson.Result, field string) (string, error) {
	v := el.Get(field)
	switch v.Type {
	case gjson.Null:
		return "", nil
	case gjson.String:
		return v.Str, nil
	case gjson.Number:
		// durations such as "suggested_duration": 2 come back as bare numbers
		return v.Raw, nil
	default:
		return "", &Error{Index: i, Field: field, Reason: fmt.Sprintf("expected a string, got %s", kind(v))}
	}
}

func kind(v gjson.Result) string {
	switch {
	case !v.Exists():
		return "nothing"
	case v.IsArray():
		return "an array"
	case v.IsObject():
		return "an object"
	}
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "a boolean"
	case gjson.Number:
		return "a number"
	case gjson.String:
		return "a string"
	}
	return "an unknown value"
}
