package handler

import (
	"net/http"
	"time"

	"transio/internal/middleware"
	"transio/internal/service"
	"transio/pkg/pagination"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	tripService service.TripService
}

func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

func (h *TripHandler) RegisterRoutes(router *gin.RouterGroup) {
	trips := router.Group("/api/curse")
	trips.Use(middleware.RequireAuth())
	{
		trips.GET("", h.ListTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:id", h.GetTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.PATCH("/:id/status", h.UpdateStatus)
		trips.DELETE("/:id", h.DeleteTrip)
	}
}

// ListTrips returns paginated trips with optional filters
// @Summary      List trips
// @Tags         curse
// @Security     BearerAuth
// @Produce      json
// @Param        page       query  int     false  "Page number (default: 1)"
// @Param        limit      query  int     false  "Items per page (default: 20)"
// @Param        status     query  string  false  "Filter by status"
// @Param        soferId    query  string  false  "Filter by driver"
// @Param        vehiculId  query  string  false  "Filter by vehicle"
// @Param        partenerId query  string  false  "Filter by partner"
// @Param        bursa      query  string  false  "Filter by freight exchange"
// @Param        search     query  string  false  "Search load/unload company or address"
// @Param        from       query  string  false  "Created from (RFC 3339)"
// @Param        to         query  string  false  "Created until (RFC 3339)"
// @Success      200  {object}  response.Response
// @Router       /api/curse [get]
func (h *TripHandler) ListTrips(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.TripListFilter{
		Status:    c.Query("status"),
		SoferID:   c.Query("soferId"),
		VehiculID: c.Query("vehiculId"),
		PartnerID: c.Query("partenerId"),
		Bursa:     c.Query("bursa"),
		Search:    c.Query("search"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.FromDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.ToDate = &t
		}
	}

	trips, total, err := h.tripService.ListTrips(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, trips, params.Page, params.Limit, total))
}

// CreateTrip creates a new trip with its load/unload points
// @Summary      Create trip
// @Tags         curse
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTripRequest  true  "Trip payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curse [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req service.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, trip))
}

// GetTrip returns one trip with points and references
// @Summary      Get trip
// @Tags         curse
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Trip ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/curse/{id} [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, trip))
}

// UpdateTrip updates trip fields and optionally replaces its points
// @Summary      Update trip
// @Tags         curse
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Trip ID"
// @Param        payload  body  service.UpdateTripRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curse/{id} [put]
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req service.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, trip))
}

// UpdateStatus advances the trip lifecycle
// @Summary      Update trip status
// @Tags         curse
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                           true  "Trip ID"
// @Param        payload  body  service.UpdateTripStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/curse/{id}/status [patch]
func (h *TripHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	trip, err := h.tripService.UpdateStatus(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, trip))
}

// DeleteTrip soft-deletes a trip
// @Summary      Delete trip
// @Tags         curse
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Trip ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/curse/{id} [delete]
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
