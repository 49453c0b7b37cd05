package services

import (
	"encoding/json"
	"time"
)

// tripOutput is the wire shape of the agent's "output" field. The
// collections stay raw so each can fail with its own reason: a missing,
// empty or wrong-typed field all report the same field-specific error.
type tripOutput struct {
	Flights         json.RawMessage `json:"flights"`
	Hotels          json.RawMessage `json:"hotels"`
	DailyHighlights json.RawMessage `json:"daily_highlights"`
}

func decodeCollection[T any](raw json.RawMessage, reason string) ([]T, error) {
	var items []T
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || len(items) == 0 {
		return nil, &MalformedResponseError{Reason: reason}
	}
	return items, nil
}

// NormalizeResponse coerces a raw agent payload into the canonical
// TripItinerary. The agent is loose about shape: the body may be a JSON
// object, a JSON-encoded string, or a one-element array wrapping the object.
// Extra array elements are silently discarded (first element wins). The
// original form is authoritative for start_date, end_date and destination —
// whatever the agent claims for those fields is dropped.
//
// The transformation is pure and synchronous: no retries, no side effects
// beyond the returned MalformedResponseError.
func NormalizeResponse(raw []byte, form TripFormData) (*TripItinerary, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &MalformedResponseError{Reason: ReasonUndecodable}
	}

	// Double-encoded payload: the body itself is a JSON string.
	if s, ok := doc.(string); ok {
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, &MalformedResponseError{Reason: ReasonUndecodable}
		}
	}

	if arr, ok := doc.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, &MalformedResponseError{Reason: ReasonMissingOutput}
		}
		doc = arr[0]
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, &MalformedResponseError{Reason: ReasonMissingOutput}
	}
	rawOutput, ok := obj["output"]
	if !ok || rawOutput == nil {
		return nil, &MalformedResponseError{Reason: ReasonMissingOutput}
	}

	encoded, err := json.Marshal(rawOutput)
	if err != nil {
		return nil, &MalformedResponseError{Reason: ReasonUndecodable}
	}
	var out tripOutput
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, &MalformedResponseError{Reason: ReasonUndecodable}
	}

	flights, err := decodeCollection[FlightOption](out.Flights, ReasonNoFlights)
	if err != nil {
		return nil, err
	}
	hotels, err := decodeCollection[HotelOption](out.Hotels, ReasonNoHotels)
	if err != nil {
		return nil, err
	}
	highlights, err := decodeCollection[DailyHighlight](out.DailyHighlights, ReasonNoDailyHighlights)
	if err != nil {
		return nil, err
	}

	return &TripItinerary{
		Flights:         flights,
		Hotels:          hotels,
		DailyHighlights: highlights,
		StartDate:       form.StartDate,
		EndDate:         tripEndDate(form.StartDate, form.Days),
		Destination:     form.Destination,
	}, nil
}

// tripEndDate is start + (days - 1) in calendar days. An unparseable start
// date falls back to the start date itself; validation upstream guarantees
// parseability on the normal path.
func tripEndDate(startDate string, days int) string {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return startDate
	}
	return start.AddDate(0, 0, days-1).Format("2006-01-02")
}
