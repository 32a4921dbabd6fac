package handler

import (
	"net/http"

	"transio/internal/middleware"
	"transio/internal/service"
	"transio/pkg/pagination"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type PartnerHandler struct {
	partnerService service.PartnerService
}

func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

func (h *PartnerHandler) RegisterRoutes(router *gin.RouterGroup) {
	partners := router.Group("/api/parteneri")
	partners.Use(middleware.RequireAuth())
	{
		partners.GET("", h.ListPartners)
		partners.POST("", h.CreatePartner)
		partners.GET("/:id", h.GetPartner)
		partners.PUT("/:id", h.UpdatePartner)
		partners.DELETE("/:id", h.DeletePartner)
	}
}

// ListPartners returns paginated partners with optional filters
// @Summary      List partners
// @Tags         parteneri
// @Security     BearerAuth
// @Produce      json
// @Param        page    query  int     false  "Page number (default: 1)"
// @Param        limit   query  int     false  "Items per page (default: 20)"
// @Param        status  query  string  false  "Filter by status"
// @Param        bursa   query  string  false  "Filter by freight exchange source"
// @Param        search  query  string  false  "Search by company name, CUI, contact"
// @Success      200  {object}  response.Response
// @Router       /api/parteneri [get]
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	params := pagination.Parse(c)

	partners, total, err := h.partnerService.ListPartners(c.Request.Context(), c.Query("status"), c.Query("bursa"), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, partners, params.Page, params.Limit, total))
}

// CreatePartner creates a new partner
// @Summary      Create partner
// @Tags         parteneri
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePartnerRequest  true  "Partner payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/parteneri [post]
func (h *PartnerHandler) CreatePartner(c *gin.Context) {
	var req service.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, partner))
}

// GetPartner returns one partner with contracts
// @Summary      Get partner
// @Tags         parteneri
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Partner ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/parteneri/{id} [get]
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	partner, err := h.partnerService.GetPartner(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, partner))
}

// UpdatePartner updates an existing partner
// @Summary      Update partner
// @Tags         parteneri
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Partner ID"
// @Param        payload  body  service.UpdatePartnerRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/parteneri/{id} [put]
func (h *PartnerHandler) UpdatePartner(c *gin.Context) {
	var req service.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, partner))
}

// DeletePartner soft-deletes a partner
// @Summary      Delete partner
// @Tags         parteneri
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Partner ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/parteneri/{id} [delete]
func (h *PartnerHandler) DeletePartner(c *gin.Context) {
	if err := h.partnerService.DeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
