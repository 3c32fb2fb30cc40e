package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eco_rewards/model"
	"github.com/eco_rewards/repository"
	"github.com/eco_rewards/service"
)

// TripHandler carries the supporting surface around the core: profiles,
// trips, and itinerary proposal/acceptance.
type TripHandler struct {
	profiles    *repository.ProfileRepository
	trips       *repository.TripRepository
	itineraries *repository.ItineraryRepository
	svc         *service.TripService
}

func NewTripHandler(profiles *repository.ProfileRepository, trips *repository.TripRepository,
	itineraries *repository.ItineraryRepository, svc *service.TripService) *TripHandler {
	return &TripHandler{
		profiles:    profiles,
		trips:       trips,
		itineraries: itineraries,
		svc:         svc,
	}
}

// POST /api/users
func (h *TripHandler) CreateProfile(c *gin.Context) {
	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile := model.Profile{
		ID:          uuid.NewString(),
		DisplayName: req.DisplayName,
	}
	if err := h.profiles.Create(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GET /api/users/:id
func (h *TripHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, service.ErrProfileNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// POST /api/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req struct {
		UserID      string `json:"userId" binding:"required"`
		Destination string `json:"destination"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := h.svc.CreateTrip(c.Request.Context(), req.UserID, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GET /api/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.trips.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, service.ErrTripNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/itineraries
func (h *TripHandler) ProposeItinerary(c *gin.Context) {
	var req struct {
		GuideID           *string `json:"guideId"`
		CarbonFootprintKg float64 `json:"carbonFootprintKg" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	itinerary, err := h.svc.ProposeItinerary(c.Request.Context(), c.Param("id"), req.GuideID, req.CarbonFootprintKg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itinerary)
}

// POST /api/itineraries/:id/accept
func (h *TripHandler) AcceptItinerary(c *gin.Context) {
	itinerary, err := h.svc.AcceptItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

// GET /api/trips/:id/itineraries
func (h *TripHandler) ListItineraries(c *gin.Context) {
	itineraries, err := h.itineraries.ListByTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(itineraries), "itineraries": itineraries})
}
