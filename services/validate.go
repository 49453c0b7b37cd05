package services

import (
	"strings"
	"time"
)

// ValidateTripForm checks every rule independently and accumulates all
// violations, so the UI can show a complete list instead of one error at a
// time. It never contacts the network and never panics.
func ValidateTripForm(form TripFormData) (bool, []string) {
	var errs []string

	if form.StartDate == "" {
		errs = append(errs, "Start date is required")
	} else if start, err := time.ParseInLocation("2006-01-02", form.StartDate, time.Local); err != nil {
		errs = append(errs, "Start date must be in YYYY-MM-DD format")
	} else {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		// Same-day start is allowed.
		if start.Before(today) {
			errs = append(errs, "Start date cannot be in the past")
		}
	}

	if form.Days < 1 {
		errs = append(errs, "Trip duration must be at least 1 day")
	} else if form.Days > 30 {
		errs = append(errs, "Trip duration cannot exceed 30 days")
	}

	if strings.TrimSpace(form.CurrentLocation) == "" {
		errs = append(errs, "Current location is required")
	}

	if strings.TrimSpace(form.Destination) == "" {
		errs = append(errs, "Destination is required")
	}

	if form.Budget == "" {
		errs = append(errs, "Budget preference is required")
	}

	if strings.TrimSpace(form.Preferences) == "" {
		errs = append(errs, "Travel preferences are required")
	}

	return len(errs) == 0, errs
}
