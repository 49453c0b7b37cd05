package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validForm() TripFormData {
	return TripFormData{
		StartDate:       futureDate(7),
		Days:            5,
		CurrentLocation: "Berlin",
		Destination:     "Lisbon",
		Budget:          "mid-range",
		Preferences:     "food, museums, coastline",
	}
}

func TestValidateTripForm_Valid(t *testing.T) {
	ok, errs := ValidateTripForm(validForm())
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateTripForm_SameDayStartAllowed(t *testing.T) {
	form := validForm()
	form.StartDate = time.Now().Format("2006-01-02")
	ok, errs := ValidateTripForm(form)
	assert.True(t, ok, "same-day start should be allowed, got: %v", errs)
}

func TestValidateTripForm_SingleRuleViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TripFormData)
		wantErr string
	}{
		{
			name:    "missing start date",
			mutate:  func(f *TripFormData) { f.StartDate = "" },
			wantErr: "Start date is required",
		},
		{
			name:    "unparseable start date",
			mutate:  func(f *TripFormData) { f.StartDate = "June 1st" },
			wantErr: "Start date must be in YYYY-MM-DD format",
		},
		{
			name:    "start date in the past",
			mutate:  func(f *TripFormData) { f.StartDate = futureDate(-1) },
			wantErr: "Start date cannot be in the past",
		},
		{
			name:    "zero days",
			mutate:  func(f *TripFormData) { f.Days = 0 },
			wantErr: "Trip duration must be at least 1 day",
		},
		{
			name:    "too many days",
			mutate:  func(f *TripFormData) { f.Days = 31 },
			wantErr: "Trip duration cannot exceed 30 days",
		},
		{
			name:    "whitespace current location",
			mutate:  func(f *TripFormData) { f.CurrentLocation = "   " },
			wantErr: "Current location is required",
		},
		{
			name:    "empty destination",
			mutate:  func(f *TripFormData) { f.Destination = "" },
			wantErr: "Destination is required",
		},
		{
			name:    "missing budget",
			mutate:  func(f *TripFormData) { f.Budget = "" },
			wantErr: "Budget preference is required",
		},
		{
			name:    "whitespace preferences",
			mutate:  func(f *TripFormData) { f.Preferences = "  " },
			wantErr: "Travel preferences are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			ok, errs := ValidateTripForm(form)
			assert.False(t, ok)
			assert.Equal(t, []string{tt.wantErr}, errs)
		})
	}
}

func TestValidateTripForm_AccumulatesAllErrors(t *testing.T) {
	ok, errs := ValidateTripForm(TripFormData{})
	assert.False(t, ok)
	// Every rule is violated by the zero form: start date, days, location,
	// destination, budget, preferences.
	assert.Len(t, errs, 6)
}

func TestValidateTripForm_BoundaryDays(t *testing.T) {
	form := validForm()

	form.Days = 1
	ok, _ := ValidateTripForm(form)
	assert.True(t, ok)

	form.Days = 30
	ok, _ = ValidateTripForm(form)
	assert.True(t, ok)
}
