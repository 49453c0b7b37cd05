package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultNightlyRate is charged when a hotel reports the "mid-range"
// placeholder instead of a numeric nightly price.
const DefaultNightlyRate = 150.0

// DefaultFoodBudget is the per-day food estimate used when no override is
// configured.
const DefaultFoodBudget = 30.0

var (
	nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)
	firstDigit = regexp.MustCompile(`\d+`)

	usd = message.NewPrinter(language.AmericanEnglish)
)

// FormatDate renders a YYYY-MM-DD date as a long English form, e.g.
// "Monday, June 2, 2025". Unparseable input is returned unchanged rather
// than guessed at.
func FormatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}

// FormatTime converts 24-hour "HH:MM" to "H:MM AM/PM". No timezone handling;
// input is assumed local wall-clock. Unparseable input is returned unchanged.
func FormatTime(t string) string {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return t
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, parts[1], ampm)
}

// FormatCurrency renders a price string as localized USD. Strings that
// already carry a currency marker are trusted and passed through unchanged;
// strings whose numeric content cannot be parsed are returned as-is.
func FormatCurrency(amount string) string {
	if strings.ContainsAny(amount, "$€₹") || strings.Contains(amount, "BDT") {
		return amount
	}
	n, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(amount, ""), 64)
	if err != nil {
		return amount
	}
	return usd.Sprintf("$%.2f", n)
}

// StarRating renders a rating out of five as filled and empty star glyphs.
// Strings are scanned for their first embedded number; a string with no
// digits defaults to 5 (lenient by policy, not an error).
func StarRating(rating interface{}) string {
	var n int
	switch v := rating.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		if m := firstDigit.FindString(v); m != "" {
			n, _ = strconv.Atoi(m)
		} else {
			n = 5
		}
	default:
		n = 5
	}
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// HotelPriceDisplay substitutes the backend's "mid-range" placeholder with a
// concrete default display string.
func HotelPriceDisplay(pricePerNight string) string {
	if pricePerNight == "mid-range" {
		return "$150/night"
	}
	return pricePerNight
}

// CalculateTripCost estimates the total trip cost: the primary flight's
// price, plus the primary hotel's nightly rate times the day count, plus a
// per-day food budget. Prices are parsed leniently; a flight price that
// cannot be parsed contributes 0, and the "mid-range" hotel placeholder
// contributes DefaultNightlyRate. This is an estimate with no precision or
// currency-conversion guarantees.
func CalculateTripCost(flights []FlightOption, hotels []HotelOption, days int, dailyFoodBudget float64) float64 {
	var flightCost float64
	if len(flights) > 0 {
		flightCost = parsePrice(flights[0].EstimatedPrice)
	}

	nightly := DefaultNightlyRate
	if len(hotels) > 0 && hotels[0].PricePerNight != "mid-range" {
		nightly = parsePrice(hotels[0].PricePerNight)
	}

	return flightCost + nightly*float64(days) + dailyFoodBudget*float64(days)
}

// parsePrice strips everything non-numeric and parses the remainder,
// returning 0 when nothing parseable is left.
func parsePrice(s string) float64 {
	n, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(s, ""), 64)
	if err != nil {
		return 0
	}
	return n
}

// DayOrdinal renders an integer as its English ordinal label ("1st", "2nd",
// "11th", "21st"). Teens always take "th".
func DayOrdinal(day int) string {
	return strconv.Itoa(day) + ordinalSuffix(day)
}

// DayOrdinalString is DayOrdinal for the textual day identifiers carried by
// daily highlights. Input without a leading number is returned unchanged.
func DayOrdinalString(day string) string {
	m := firstDigit.FindString(day)
	if m == "" {
		return day
	}
	n, _ := strconv.Atoi(m)
	return DayOrdinal(n)
}

func ordinalSuffix(n int) string {
	if v := n % 100; v >= 11 && v <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// FlightDuration computes "7h 30m" from departure and arrival wall-clock
// times, wrapping past midnight for next-day arrivals. Returns "" when
// either time is unparseable.
func FlightDuration(departure, arrival string) string {
	dep, err1 := parseClock(departure)
	arr, err2 := parseClock(arrival)
	if err1 != nil || err2 != nil {
		return ""
	}
	minutes := arr - dep
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func parseClock(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// BudgetLabel maps a budget tier to its display form.
func BudgetLabel(budget string) string {
	switch budget {
	case "budget":
		return "Budget-Friendly"
	case "mid-range":
		return "Mid-Range"
	case "luxury":
		return "Luxury Experience"
	}
	return budget
}

// Truncate trims text to maxLength runes with a trailing ellipsis.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
