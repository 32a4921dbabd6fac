package handler

import (
	"fmt"
	"net/http"

	"transio/internal/middleware"
	"transio/internal/model"
	"transio/internal/service"
	"transio/pkg/pagination"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService  service.InvoiceService
	settingsService service.SettingsService
}

func NewInvoiceHandler(invoiceService service.InvoiceService, settingsService service.SettingsService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, settingsService: settingsService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/facturi")
	invoices.Use(middleware.RequireAuth())
	{
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.GET("/statistici", h.Statistics)
		invoices.GET("/curse-disponibile", h.AvailableTrips)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.PATCH("/:id/status", h.UpdateStatus)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.GET("/:id/export", h.ExportPDF)
		// Older clients download the PDF under /pdf.
		invoices.GET("/:id/pdf", h.ExportPDF)
	}
}

type updateInvoiceStatusRequest struct {
	Status model.InvoiceStatus `json:"status" binding:"required"`
}

// ListInvoices returns paginated invoices with optional filters
// @Summary      List invoices
// @Tags         facturi
// @Security     BearerAuth
// @Produce      json
// @Param        page     query  int     false  "Page number (default: 1)"
// @Param        limit    query  int     false  "Items per page (default: 20)"
// @Param        status   query  string  false  "Filter by status"
// @Param        numar    query  string  false  "Filter by invoice number"
// @Param        cursaId  query  string  false  "Filter by trip"
// @Success      200  {object}  response.Response
// @Router       /api/facturi [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.InvoiceListFilter{
		Status: c.Query("status"),
		Numar:  c.Query("numar"),
		Cursa:  c.Query("cursaId"),
	}
	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	// Payment states change often enough that stale lists mislead the UI.
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, invoices, params.Page, params.Limit, total))
}

// CreateInvoice creates a new invoice, generating its number when absent
// @Summary      Create invoice
// @Tags         facturi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateInvoiceRequest  true  "Invoice payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/facturi [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// Statistics returns the invoice rollup shown above the list
// @Summary      Invoice statistics
// @Tags         facturi
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/facturi/statistici [get]
func (h *InvoiceHandler) Statistics(c *gin.Context) {
	stats, err := h.invoiceService.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// AvailableTrips lists finished trips that have no invoice yet
// @Summary      Trips available for invoicing
// @Tags         facturi
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/facturi/curse-disponibile [get]
func (h *InvoiceHandler) AvailableTrips(c *gin.Context) {
	trips, err := h.invoiceService.AvailableTrips(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, trips))
}

// GetInvoice returns one invoice
// @Summary      Get invoice
// @Tags         facturi
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/facturi/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// UpdateInvoice updates an editable invoice
// @Summary      Update invoice
// @Tags         facturi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Invoice ID"
// @Param        payload  body  service.UpdateInvoiceRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/facturi/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// UpdateStatus advances the invoice lifecycle
// @Summary      Update invoice status
// @Tags         facturi
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Invoice ID"
// @Param        payload  body  updateInvoiceStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/facturi/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req updateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// DeleteInvoice soft-deletes an invoice
// @Summary      Delete invoice
// @Tags         facturi
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/facturi/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ExportPDF streams the invoice as a printable PDF
// @Summary      Export invoice PDF
// @Tags         facturi
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /api/facturi/{id}/export [get]
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	company, err := h.settingsService.GetCompany(c.Request.Context())
	if err != nil {
		company = nil
	}

	pdf, err := service.RenderInvoicePDF(invoice, company)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="factura_%s.pdf"`, invoice.Numar))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
