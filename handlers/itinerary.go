package handlers

import (
	"encoding/json"
	"net/http"

	"roamly/database"
	"roamly/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetItineraryHandler returns a stored canonical itinerary with its cost
// estimate.
func GetItineraryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		record, err := database.GetItinerary(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}

		var itinerary services.TripItinerary
		if err := json.Unmarshal([]byte(record.ItineraryJSON), &itinerary); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored itinerary"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"itinerary_id":   record.ID,
			"plan_id":        record.PlanID,
			"itinerary":      itinerary,
			"estimated_cost": record.EstimatedCost,
		})
	}
}

// GetPlanItineraryHandler returns the most recent itinerary generated for a
// plan, for callers that kept the plan id from the planning cycle.
func GetPlanItineraryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID := c.Param("id")

		record, err := database.GetItineraryByPlanID(planID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No itinerary found for this plan"})
			return
		}

		var itinerary services.TripItinerary
		if err := json.Unmarshal([]byte(record.ItineraryJSON), &itinerary); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored itinerary"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"itinerary_id":   record.ID,
			"plan_id":        record.PlanID,
			"itinerary":      itinerary,
			"estimated_cost": record.EstimatedCost,
		})
	}
}

type GeneratePDFRequest struct {
	TravelerName string `json:"traveler_name"`
}

type GeneratePDFResponse struct {
	ItineraryID string `json:"itinerary_id"`
	PDFURL      string `json:"pdf_url"`
	Message     string `json:"message"`
}

// GeneratePDFHandler renders a stored itinerary to PDF and attaches the
// bytes to the itinerary record (no filesystem — stored in PostgreSQL).
func GeneratePDFHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req GeneratePDFRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
				return
			}
		}

		record, err := database.GetItinerary(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}

		plan, err := database.GetPlan(record.PlanID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found for itinerary"})
			return
		}

		var itinerary services.TripItinerary
		if err := json.Unmarshal([]byte(record.ItineraryJSON), &itinerary); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored itinerary"})
			return
		}

		pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
			TravelerName:  req.TravelerName,
			Origin:        plan.CurrentLocation,
			Days:          plan.Days,
			Budget:        plan.Budget,
			Itinerary:     &itinerary,
			EstimatedCost: record.EstimatedCost,
		})
		if err != nil {
			log.Error("PDF generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}

		if err := database.UpdateItineraryPDF(id, pdfBytes, req.TravelerName); err != nil {
			log.Error("failed to save generated PDF", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generated PDF"})
			return
		}

		log.Info("PDF generated", zap.String("itinerary_id", id), zap.Int("bytes", len(pdfBytes)))

		c.JSON(http.StatusOK, GeneratePDFResponse{
			ItineraryID: id,
			PDFURL:      "/api/download/" + id,
			Message:     "PDF generated successfully",
		})
	}
}
