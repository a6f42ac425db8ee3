package activityparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoActivities = `[
	{
		"date": "2024-05-01T09:00:00Z",
		"name": "Museum",
		"description": "National museum visit",
		"type": "culture",
		"activity_order": "0",
		"time_of_day": "morning",
		"suggested_duration": "2 hours",
		"location": "Tokyo National Museum",
		"latitude": 35.7188,
		"longitude": 139.7765
	},
	{
		"date": "2024-05-01",
		"name": "Dinner",
		"description": "Izakaya dinner",
		"type": "food",
		"activity_order": 1,
		"time_of_day": "evening",
		"suggested_duration": 1.5,
		"location": "Shinjuku",
		"latitude": null
	}
]`

func TestParseValid(t *testing.T) {
	records, err := Parse(twoActivities)
	require.NoError(t, err)
	require.Len(t, records, 2)

	museum := records[0]
	assert.Equal(t, "2024-05-01", museum.Date)
	assert.Equal(t, "Museum", museum.Name)
	assert.Equal(t, "culture", museum.Type)
	assert.Equal(t, 0, museum.ActivityOrder)
	assert.Equal(t, "2 hours", museum.SuggestedDuration)
	assert.True(t, museum.Latitude.Valid)
	assert.InDelta(t, 35.7188, museum.Latitude.Float64, 1e-9)
	assert.InDelta(t, 139.7765, museum.Longitude.Float64, 1e-9)

	dinner := records[1]
	assert.Equal(t, "2024-05-01", dinner.Date)
	assert.Equal(t, 1, dinner.ActivityOrder)
	assert.Equal(t, "1.5", dinner.SuggestedDuration)
	assert.False(t, dinner.Latitude.Valid)
	assert.False(t, dinner.Longitude.Valid)
}

func TestParsePreservesInputOrder(t *testing.T) {
	records, err := Parse(`[
		{"date": "2024-05-02", "name": "Second", "activity_order": 5},
		{"date": "2024-05-01", "name": "First", "activity_order": 1}
	]`)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Second", records[0].Name)
	assert.Equal(t, 5, records[0].ActivityOrder)
	assert.Equal(t, "First", records[1].Name)
}

func TestParseEmptySequence(t *testing.T) {
	records, err := Parse(`[]`)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		index int
		field string
	}{
		{"empty", "   ", -1, ""},
		{"invalid json", `[{"name": "Museum"`, -1, ""},
		{"single object is not a sequence", `{"date": "2024-05-01", "name": "Museum", "activity_order": 0}`, -1, ""},
		{"string scalar", `"[]"`, -1, ""},
		{"element not an object", `[1, 2]`, 0, ""},
		{"non numeric order", `[{"date": "2024-05-01", "name": "Museum", "activity_order": "first"}]`, 0, "activity_order"},
		{"fractional order", `[{"date": "2024-05-01", "name": "Museum", "activity_order": 1.5}]`, 0, "activity_order"},
		{"negative order", `[{"date": "2024-05-01", "name": "Museum", "activity_order": -1}]`, 0, "activity_order"},
		{"missing order", `[{"date": "2024-05-01", "name": "Museum"}]`, 0, "activity_order"},
		{"missing date", `[{"name": "Museum", "activity_order": 0}]`, 0, "date"},
		{"numeric date", `[{"date": 20240501, "name": "Museum", "activity_order": 0}]`, 0, "date"},
		{"blank name", `[{"date": "2024-05-01", "name": " ", "activity_order": 0}]`, 0, "name"},
		{"bad latitude", `[{"date": "2024-05-01", "name": "Museum", "activity_order": 0, "latitude": "north"}]`, 0, "latitude"},
		{"object longitude", `[{"date": "2024-05-01", "name": "Museum", "activity_order": 0, "longitude": {}}]`, 0, "longitude"},
		{"NaN latitude", `[{"date": "2024-05-01", "name": "Museum", "activity_order": 0, "latitude": "NaN"}]`, 0, "latitude"},
		{"infinite longitude", `[{"date": "2024-05-01", "name": "Museum", "activity_order": 0, "longitude": "Infinity"}]`, 0, "longitude"},
		{"negative infinite latitude", `[{"date": "2024-05-01", "name": "Museum", "activity_order": 0, "latitude": "-Inf"}]`, 0, "latitude"},
		{
			"second record fails the whole parse",
			`[{"date": "2024-05-01", "name": "Museum", "activity_order": 0}, {"date": "2024-05-01", "name": "Dinner", "activity_order": "x"}]`,
			1, "activity_order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.raw)
			assert.Nil(t, records)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.index, perr.Index)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestParseCoercesNumericStrings(t *testing.T) {
	records, err := Parse(`[{"date": "2024-05-01", "name": "Museum", "activity_order": " 3 ", "latitude": "35.5", "longitude": "-0.25"}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].ActivityOrder)
	assert.InDelta(t, 35.5, records[0].Latitude.Float64, 1e-9)
	assert.InDelta(t, -0.25, records[0].Longitude.Float64, 1e-9)
}

func TestTruncateDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", TruncateDate("2024-05-01T10:00:00.000Z"))
	assert.Equal(t, "2024-05-01", TruncateDate("2024-05-01"))
	assert.Equal(t, "May 1st", TruncateDate("May 1st"))
	assert.Equal(t, "", TruncateDate("T10:00"))
}
