package handler

import (
	"net/http"

	"transio/internal/middleware"
	"transio/internal/service"
	"transio/pkg/pagination"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService service.VehicleService
}

func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	vehicles := router.Group("/api/vehicule")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
		vehicles.GET("/:id/reparatii", h.ListRepairs)
		vehicles.POST("/:id/reparatii", h.AddRepair)
	}
}

// ListVehicles returns paginated vehicles with optional status/search filter
// @Summary      List vehicles
// @Tags         vehicule
// @Security     BearerAuth
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page (default: 20)"
// @Param        status  query  string  false  "Filter by status"
// @Param        search  query  string  false  "Search by plate, make, model"
// @Success      200  {object}  response.Response
// @Router       /api/vehicule [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	params := pagination.Parse(c)

	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), c.Query("status"), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, vehicles, params.Page, params.Limit, total))
}

// CreateVehicle creates a new vehicle
// @Summary      Create vehicle
// @Tags         vehicule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateVehicleRequest  true  "Vehicle payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/vehicule [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req service.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vehicle))
}

// GetVehicle returns one vehicle with repair history
// @Summary      Get vehicle
// @Tags         vehicule
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vehicule/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// UpdateVehicle updates an existing vehicle
// @Summary      Update vehicle
// @Tags         vehicule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Vehicle ID"
// @Param        payload  body  service.UpdateVehicleRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/vehicule/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req service.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// DeleteVehicle soft-deletes a vehicle
// @Summary      Delete vehicle
// @Tags         vehicule
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vehicule/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ListRepairs returns the vehicle's repair history, newest first
// @Summary      List repairs
// @Tags         vehicule
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/vehicule/{id}/reparatii [get]
func (h *VehicleHandler) ListRepairs(c *gin.Context) {
	repairs, err := h.vehicleService.ListRepairs(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, repairs))
}

// AddRepair records a repair on the vehicle
// @Summary      Add repair
// @Tags         vehicule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Vehicle ID"
// @Param        payload  body  service.CreateRepairRequest  true  "Repair payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/vehicule/{id}/reparatii [post]
func (h *VehicleHandler) AddRepair(c *gin.Context) {
	var req service.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.AddRepair(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vehicle))
}
