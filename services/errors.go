package services

import (
	"fmt"
	"strings"
)

// Malformed-response reasons, one per structural expectation, so callers can
// report precisely which part of the payload was missing.
const (
	ReasonUndecodable       = "undecodable"
	ReasonMissingOutput     = "missing output"
	ReasonNoFlights         = "no flights"
	ReasonNoHotels          = "no hotels"
	ReasonNoDailyHighlights = "no daily highlights"
)

// ValidationError carries every violated form rule at once so the caller can
// show the complete list.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid trip form: " + strings.Join(e.Errors, "; ")
}

// ConnectivityError means no response was received from the planning agent
// (connection refused, DNS failure, or transport timeout).
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach the planning service — check that the agent endpoint is up: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response from the planning agent.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("planning service error (%d): %s", e.Status, e.Message)
}

// MalformedResponseError means transport succeeded but the payload could not
// be coerced into a TripItinerary.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	switch e.Reason {
	case ReasonUndecodable:
		return "invalid JSON response from the planning service"
	case ReasonMissingOutput:
		return "response from the planning service has no output"
	case ReasonNoFlights:
		return "no flight options found in response"
	case ReasonNoHotels:
		return "no hotel options found in response"
	case ReasonNoDailyHighlights:
		return "no daily itinerary found in response"
	}
	return "malformed response from the planning service: " + e.Reason
}
