package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// SessionState tracks one planning cycle through its lifecycle.
type SessionState string

const (
	StateIdle        SessionState = "idle"
	StateValidating  SessionState = "validating"
	StateSubmitting  SessionState = "submitting"
	StateNormalizing SessionState = "normalizing"
	StateSuccess     SessionState = "success"
	StateFailed      SessionState = "failed"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission on the same session has not finished. Concurrent resubmission
// is treated as caller error and rejected, not queued.
var ErrSubmissionInFlight = errors.New("a trip submission is already in progress")

// PlanningSession coordinates one validate → submit → normalize cycle and
// holds the resulting itinerary until the next cycle or an explicit reset.
// The itinerary slot is replaced wholesale on success, never mutated.
type PlanningSession struct {
	planner *PlannerClient
	log     *zap.Logger

	mu               sync.Mutex
	inFlight         bool
	state            SessionState
	itinerary        *TripItinerary
	validationErrors []string
	err              error
}

func NewPlanningSession(planner *PlannerClient, log *zap.Logger) *PlanningSession {
	return &PlanningSession{
		planner: planner,
		log:     log,
		state:   StateIdle,
	}
}

// Submit runs a full planning cycle. Validation failure never reaches the
// network. Exactly one submission may be in flight per session; a second
// concurrent call fails fast with ErrSubmissionInFlight.
func (s *PlanningSession) Submit(ctx context.Context, form TripFormData) (*TripItinerary, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.inFlight = true
	s.state = StateValidating
	s.itinerary = nil
	s.validationErrors = nil
	s.err = nil
	s.mu.Unlock()

	itinerary, err := s.run(ctx, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.state = StateFailed
		s.err = err
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.validationErrors = verr.Errors
		}
		return nil, err
	}
	s.state = StateSuccess
	s.itinerary = itinerary
	return itinerary, nil
}

func (s *PlanningSession) run(ctx context.Context, form TripFormData) (*TripItinerary, error) {
	if ok, errs := ValidateTripForm(form); !ok {
		s.log.Info("trip form rejected", zap.Strings("errors", errs))
		return nil, &ValidationError{Errors: errs}
	}

	s.setState(StateSubmitting)
	raw, err := s.planner.Plan(ctx, form)
	if err != nil {
		return nil, err
	}

	s.setState(StateNormalizing)
	itinerary, err := NormalizeResponse(raw, form)
	if err != nil {
		s.log.Warn("agent response failed normalization", zap.Error(err))
		return nil, err
	}

	s.log.Info("trip itinerary ready",
		zap.String("destination", itinerary.Destination),
		zap.Int("highlights", len(itinerary.DailyHighlights)))
	return itinerary, nil
}

// Reset returns the session to idle unconditionally, discarding the held
// itinerary and any errors. Used when the user plans another trip.
func (s *PlanningSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.itinerary = nil
	s.validationErrors = nil
	s.err = nil
}

func (s *PlanningSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Itinerary returns the current canonical record, or nil outside a
// successful cycle.
func (s *PlanningSession) Itinerary() *TripItinerary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itinerary
}

func (s *PlanningSession) ValidationErrors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validationErrors
}

func (s *PlanningSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *PlanningSession) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
