package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const agentOutput = `{
	"output": {
		"flights": [
			{
				"airline": "Aurora Air",
				"departure": {"airport": "TXL", "time": "08:15", "date": "2025-06-01"},
				"arrival": {"airport": "LIS", "time": "11:05", "date": "2025-06-01"},
				"estimated_price": "$520"
			},
			{
				"airline": "Budget Wings",
				"departure": {"airport": "TXL", "time": "06:00", "date": "2025-06-01"},
				"arrival": {"airport": "LIS", "time": "09:10", "date": "2025-06-01"},
				"estimated_price": "310"
			}
		],
		"hotels": [
			{
				"name": "Casa do Rio",
				"star_rating": 4,
				"price_per_night": "mid-range",
				"coordinates": {"lat": 38.7223, "long": -9.1393}
			}
		],
		"daily_highlights": [
			{"day": "1", "place": "Alfama", "restaurant": {"name": "Taberna Velha", "specialty": "Bacalhau"}},
			{"day": "2", "place": "Belém", "restaurant": {"name": "Pastéis de Belém", "specialty": "Pastel de nata"}}
		]
	}
}`

func normalizeForm() TripFormData {
	return TripFormData{
		StartDate:       "2025-06-01",
		Days:            5,
		CurrentLocation: "Berlin",
		Destination:     "Lisbon",
		Budget:          "mid-range",
		Preferences:     "food, history",
	}
}

func TestNormalizeResponse_Object(t *testing.T) {
	it, err := NormalizeResponse([]byte(agentOutput), normalizeForm())
	require.NoError(t, err)

	assert.Len(t, it.Flights, 2)
	// First element is the primary option; order preserved as received.
	assert.Equal(t, "Aurora Air", it.Flights[0].Airline)
	assert.Equal(t, "Budget Wings", it.Flights[1].Airline)
	assert.Len(t, it.Hotels, 1)
	assert.Len(t, it.DailyHighlights, 2)

	// Derived fields come from the form, not the backend.
	assert.Equal(t, "2025-06-01", it.StartDate)
	assert.Equal(t, "2025-06-05", it.EndDate)
	assert.Equal(t, "Lisbon", it.Destination)
}

func TestNormalizeResponse_ArrayWrappedEquivalence(t *testing.T) {
	form := normalizeForm()

	plain, err := NormalizeResponse([]byte(agentOutput), form)
	require.NoError(t, err)

	wrapped, err := NormalizeResponse([]byte("["+agentOutput+"]"), form)
	require.NoError(t, err)

	assert.Equal(t, plain, wrapped)
}

func TestNormalizeResponse_ExtraArrayElementsDiscarded(t *testing.T) {
	body := "[" + agentOutput + `, {"output": null}, "garbage"]`
	it, err := NormalizeResponse([]byte(body), normalizeForm())
	require.NoError(t, err)
	assert.Equal(t, "Aurora Air", it.Flights[0].Airline)
}

func TestNormalizeResponse_StringEncodedPayload(t *testing.T) {
	encoded, err := json.Marshal(agentOutput)
	require.NoError(t, err)

	it, err := NormalizeResponse(encoded, normalizeForm())
	require.NoError(t, err)
	assert.Equal(t, "Casa do Rio", it.Hotels[0].Name)
}

func TestNormalizeResponse_BackendDestinationDiscarded(t *testing.T) {
	body := `{"destination": "Porto", "output": ` + extractOutput(t) + `}`
	it, err := NormalizeResponse([]byte(body), normalizeForm())
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", it.Destination)
}

func extractOutput(t *testing.T) string {
	t.Helper()
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(agentOutput), &doc))
	return string(doc["output"])
}

func TestNormalizeResponse_Idempotent(t *testing.T) {
	form := normalizeForm()
	first, err := NormalizeResponse([]byte(agentOutput), form)
	require.NoError(t, err)
	second, err := NormalizeResponse([]byte(agentOutput), form)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeResponse_EndDateSingleDay(t *testing.T) {
	form := normalizeForm()
	form.Days = 1
	it, err := NormalizeResponse([]byte(agentOutput), form)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", it.EndDate)
}

func TestNormalizeResponse_EndDateCrossesMonth(t *testing.T) {
	form := normalizeForm()
	form.StartDate = "2025-06-29"
	form.Days = 4
	it, err := NormalizeResponse([]byte(agentOutput), form)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-02", it.EndDate)
}

func TestNormalizeResponse_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason string
	}{
		{
			name:       "not JSON at all",
			body:       `<html>502 Bad Gateway</html>`,
			wantReason: ReasonUndecodable,
		},
		{
			name:       "string that is not JSON",
			body:       `"plain text, not an object"`,
			wantReason: ReasonUndecodable,
		},
		{
			name:       "empty array",
			body:       `[]`,
			wantReason: ReasonMissingOutput,
		},
		{
			name:       "no output field",
			body:       `{"result": {}}`,
			wantReason: ReasonMissingOutput,
		},
		{
			name:       "null output",
			body:       `{"output": null}`,
			wantReason: ReasonMissingOutput,
		},
		{
			name:       "top-level scalar",
			body:       `42`,
			wantReason: ReasonMissingOutput,
		},
		{
			name:       "empty flights",
			body:       `{"output": {"flights": [], "hotels": [{"name": "H"}], "daily_highlights": [{"day": "1"}]}}`,
			wantReason: ReasonNoFlights,
		},
		{
			name:       "missing hotels",
			body:       `{"output": {"flights": [{"airline": "A"}], "daily_highlights": [{"day": "1"}]}}`,
			wantReason: ReasonNoHotels,
		},
		{
			name:       "empty daily highlights",
			body:       `{"output": {"flights": [{"airline": "A"}], "hotels": [{"name": "H"}], "daily_highlights": []}}`,
			wantReason: ReasonNoDailyHighlights,
		},
		{
			name:       "wrong-typed flights",
			body:       `{"output": {"flights": "none", "hotels": [{"name": "H"}], "daily_highlights": [{"day": "1"}]}}`,
			wantReason: ReasonNoFlights,
		},
		{
			name:       "null flights",
			body:       `{"output": {"flights": null, "hotels": [{"name": "H"}], "daily_highlights": [{"day": "1"}]}}`,
			wantReason: ReasonNoFlights,
		},
		{
			name:       "wrong-typed hotels",
			body:       `{"output": {"flights": [{"airline": "A"}], "hotels": {"name": "H"}, "daily_highlights": [{"day": "1"}]}}`,
			wantReason: ReasonNoHotels,
		},
		{
			name:       "wrong-typed daily highlights",
			body:       `{"output": {"flights": [{"airline": "A"}], "hotels": [{"name": "H"}], "daily_highlights": 3}}`,
			wantReason: ReasonNoDailyHighlights,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NormalizeResponse([]byte(tt.body), normalizeForm())
			assert.Nil(t, it)
			var merr *MalformedResponseError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.wantReason, merr.Reason)
		})
	}
}
