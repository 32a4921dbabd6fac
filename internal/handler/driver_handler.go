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

type DriverHandler struct {
	driverService service.DriverService
}

func NewDriverHandler(driverService service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

func (h *DriverHandler) RegisterRoutes(router *gin.RouterGroup) {
	drivers := router.Group("/api/soferi")
	drivers.Use(middleware.RequireAuth())
	{
		drivers.GET("", h.ListDrivers)
		drivers.POST("", h.CreateDriver)
		drivers.GET("/:id", h.GetDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)
		drivers.POST("/:id/iesire-ro", h.MarkExit)
		drivers.POST("/:id/intrare-ro", h.MarkEntry)
		drivers.POST("/:id/plati-salariu", h.AddSalaryPayment)
	}
}

// locationEventRequest carries an optional explicit timestamp for a border
// crossing; the server time is used when absent.
type locationEventRequest struct {
	Data *time.Time `json:"data"`
}

// ListDrivers returns paginated drivers with optional status/search filter
// @Summary      List drivers
// @Tags         soferi
// @Security     BearerAuth
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page (default: 20)"
// @Param        status  query  string  false  "Filter by status"
// @Param        search  query  string  false  "Search by name, phone, email"
// @Success      200  {object}  response.Response
// @Router       /api/soferi [get]
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	params := pagination.Parse(c)

	drivers, total, err := h.driverService.ListDrivers(c.Request.Context(), c.Query("status"), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, drivers, params.Page, params.Limit, total))
}

// CreateDriver creates a new driver
// @Summary      Create driver
// @Tags         soferi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateDriverRequest  true  "Driver payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/soferi [post]
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req service.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, driver))
}

// GetDriver returns one driver with salary history and documents
// @Summary      Get driver
// @Tags         soferi
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Driver ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/soferi/{id} [get]
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, driver))
}

// UpdateDriver updates an existing driver
// @Summary      Update driver
// @Tags         soferi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Driver ID"
// @Param        payload  body  service.UpdateDriverRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/soferi/{id} [put]
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req service.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, driver))
}

// DeleteDriver soft-deletes a driver
// @Summary      Delete driver
// @Tags         soferi
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Driver ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/soferi/{id} [delete]
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	if err := h.driverService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// MarkExit records the driver leaving Romania
// @Summary      Mark exit from RO
// @Tags         soferi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Driver ID"
// @Param        payload  body  locationEventRequest  false "Optional crossing timestamp"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/soferi/{id}/iesire-ro [post]
func (h *DriverHandler) MarkExit(c *gin.Context) {
	var req locationEventRequest
	_ = c.ShouldBindJSON(&req)

	at := time.Time{}
	if req.Data != nil {
		at = *req.Data
	}
	driver, err := h.driverService.MarkExitRO(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, driver))
}

// MarkEntry records the driver returning to Romania
// @Summary      Mark entry into RO
// @Tags         soferi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Driver ID"
// @Param        payload  body  locationEventRequest  false "Optional crossing timestamp"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/soferi/{id}/intrare-ro [post]
func (h *DriverHandler) MarkEntry(c *gin.Context) {
	var req locationEventRequest
	_ = c.ShouldBindJSON(&req)

	at := time.Time{}
	if req.Data != nil {
		at = *req.Data
	}
	driver, err := h.driverService.MarkEntryRO(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, driver))
}

// AddSalaryPayment records a salary payment on the driver
// @Summary      Add salary payment
// @Tags         soferi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Driver ID"
// @Param        payload  body  service.SalaryPaymentRequest  true  "Payment payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/soferi/{id}/plati-salariu [post]
func (h *DriverHandler) AddSalaryPayment(c *gin.Context) {
	var req service.SalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	driver, err := h.driverService.AddSalaryPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, driver))
}
