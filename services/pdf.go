package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFData carries everything the itinerary document needs: the canonical
// record plus form-sourced context the record does not repeat.
type PDFData struct {
	TravelerName  string
	Origin        string
	Days          int
	Budget        string
	Itinerary     *TripItinerary
	EstimatedCost float64
}

// GeneratePDFBytes renders a normalized itinerary to a PDF and returns raw
// bytes (stored in PostgreSQL, no filesystem needed).
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	it := data.Itinerary
	if it == nil {
		return nil, fmt.Errorf("no itinerary to render")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Roamly", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Powered Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4,
		"This is NOT a booking confirmation. Prices are AI-generated estimates and subject to change. Verify with providers before booking.",
		"", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	name := data.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	row("Traveler", name)
	row("Route", fmt.Sprintf("%s → %s", data.Origin, it.Destination))
	row("Start", FormatDate(it.StartDate))
	row("End", FormatDate(it.EndDate))
	row("Duration", fmt.Sprintf("%d day(s)", data.Days))
	row("Budget", BudgetLabel(data.Budget))
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Recommended Flight ────────────────────────────────────
	flight := it.Flights[0]
	sectionHeader("Recommended Flight")
	row("Airline", flight.Airline)
	row("Departure", fmt.Sprintf("%s · %s · %s",
		flight.Departure.Airport, FormatDate(flight.Departure.Date), FormatTime(flight.Departure.Time)))
	row("Arrival", fmt.Sprintf("%s · %s · %s",
		flight.Arrival.Airport, FormatDate(flight.Arrival.Date), FormatTime(flight.Arrival.Time)))
	if dur := FlightDuration(flight.Departure.Time, flight.Arrival.Time); dur != "" {
		row("Duration", dur)
	}
	row("Price", FormatCurrency(flight.EstimatedPrice))
	pdf.Ln(4)

	// ── Recommended Hotel ─────────────────────────────────────
	hotel := it.Hotels[0]
	sectionHeader("Recommended Hotel")
	row("Hotel", hotel.Name)
	row("Rating", StarRating(hotel.StarRating))
	row("Nightly", HotelPriceDisplay(hotel.PricePerNight))
	row("Location", fmt.Sprintf("%.4f, %.4f", hotel.Coordinates.Lat, hotel.Coordinates.Long))
	pdf.Ln(4)

	// ── Daily Highlights ──────────────────────────────────────
	sectionHeader("Daily Highlights")
	for _, h := range it.DailyHighlights {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(170, 6, fmt.Sprintf("%s day — %s", DayOrdinalString(h.Day), h.Place), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(170, 5, fmt.Sprintf("Dine at %s — %s", h.Restaurant.Name, Truncate(h.Restaurant.Specialty, 80)), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	pdf.Ln(3)

	// ── Cost Estimate ─────────────────────────────────────────
	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.0f", data.EstimatedCost), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Roamly AI Travel Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
