package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eco_rewards/service"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// conflicts 409, not-found 404, preconditions 422, chain unavailability 503.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrAddressAlreadyBound),
		errors.Is(err, service.ErrAlreadySettled):
		status = http.StatusConflict
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrTripNotFound),
		errors.Is(err, service.ErrItineraryNotFound),
		errors.Is(err, service.ErrItineraryNotForTrip):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTripNotActive):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidAddress):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrChainUnreachable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
