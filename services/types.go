package services

// ─── Trip planning types ─────────────────────────────────────────────────────

// TripFormData is the user's planning request. It is treated as immutable
// once submitted; derived itinerary fields are copied from it rather than
// trusted from the backend.
type TripFormData struct {
	StartDate       string `json:"start_date"`
	Days            int    `json:"days"`
	CurrentLocation string `json:"current_location"`
	Destination     string `json:"destination"`
	Budget          string `json:"budget"` // "budget" | "mid-range" | "luxury"
	Preferences     string `json:"preferences"`
}

type FlightEndpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"` // 24h HH:MM
	Date    string `json:"date"` // YYYY-MM-DD
}

type FlightOption struct {
	Airline        string         `json:"airline"`
	Departure      FlightEndpoint `json:"departure"`
	Arrival        FlightEndpoint `json:"arrival"`
	EstimatedPrice string         `json:"estimated_price"` // may be "$520" or "520"
}

type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type HotelOption struct {
	Name          string      `json:"name"`
	StarRating    float64     `json:"star_rating"`
	PricePerNight string      `json:"price_per_night"` // may be the literal "mid-range"
	Coordinates   Coordinates `json:"coordinates"`
}

type Restaurant struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type DailyHighlight struct {
	Day        string     `json:"day"`
	Place      string     `json:"place"`
	Restaurant Restaurant `json:"restaurant"`
}

// TripItinerary is the canonical record produced by NormalizeResponse.
// The first element of Flights and Hotels is the recommended option;
// ordering is preserved exactly as received. StartDate, EndDate and
// Destination come from the form, never from the backend.
type TripItinerary struct {
	Flights         []FlightOption   `json:"flights"`
	Hotels          []HotelOption    `json:"hotels"`
	DailyHighlights []DailyHighlight `json:"daily_highlights"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	Destination     string           `json:"destination"`
}
