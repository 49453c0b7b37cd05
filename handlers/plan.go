package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"roamly/database"
	"roamly/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanResponse struct {
	PlanID        string                  `json:"plan_id"`
	ItineraryID   string                  `json:"itinerary_id"`
	Itinerary     *services.TripItinerary `json:"itinerary"`
	EstimatedCost float64                 `json:"estimated_cost"`
}

// PlanHandler runs one full planning cycle: validate the form, submit it to
// the AI agent, normalize the response, persist the result. Each request
// gets its own session, so the single-flight policy applies per request.
func PlanHandler(planner *services.PlannerClient, foodBudget float64, log *zap.Logger) gin.HandlerFunc {
	if foodBudget <= 0 {
		foodBudget = services.DefaultFoodBudget
	}

	return func(c *gin.Context) {
		var form services.TripFormData
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		session := services.NewPlanningSession(planner, log)
		itinerary, err := session.Submit(c.Request.Context(), form)
		if err != nil {
			status, body := planError(err)
			c.JSON(status, body)
			return
		}

		cost := services.CalculateTripCost(itinerary.Flights, itinerary.Hotels, form.Days, foodBudget)

		planID := uuid.New().String()
		if err := database.SavePlan(&database.Plan{
			ID:              planID,
			StartDate:       form.StartDate,
			Days:            form.Days,
			CurrentLocation: form.CurrentLocation,
			Destination:     form.Destination,
			Budget:          form.Budget,
			Preferences:     form.Preferences,
		}); err != nil {
			log.Error("failed to save plan", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
			return
		}

		itineraryJSON, err := json.Marshal(itinerary)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode itinerary"})
			return
		}

		itineraryID := uuid.New().String()
		if err := database.SaveItinerary(&database.Itinerary{
			ID:            itineraryID,
			PlanID:        planID,
			ItineraryJSON: string(itineraryJSON),
			EstimatedCost: cost,
		}); err != nil {
			log.Error("failed to save itinerary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save itinerary"})
			return
		}

		c.JSON(http.StatusOK, PlanResponse{
			PlanID:        planID,
			ItineraryID:   itineraryID,
			Itinerary:     itinerary,
			EstimatedCost: cost,
		})
	}
}

// planError maps the planning error taxonomy onto HTTP responses. Validation
// problems are the caller's fault; everything past the network boundary is
// reported as a bad gateway since the agent, not this service, misbehaved.
func planError(err error) (int, gin.H) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, gin.H{
			"error":             "Trip form failed validation",
			"validation_errors": verr.Errors,
		}
	}

	if errors.Is(err, services.ErrSubmissionInFlight) {
		return http.StatusConflict, gin.H{"error": err.Error()}
	}

	var cerr *services.ConnectivityError
	if errors.As(err, &cerr) {
		return http.StatusBadGateway, gin.H{"error": cerr.Error()}
	}

	var serr *services.ServerError
	if errors.As(err, &serr) {
		return http.StatusBadGateway, gin.H{"error": serr.Error()}
	}

	var merr *services.MalformedResponseError
	if errors.As(err, &merr) {
		return http.StatusBadGateway, gin.H{"error": merr.Error()}
	}

	return http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred while planning your trip"}
}
