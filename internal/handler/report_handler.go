package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"transio/internal/middleware"
	"transio/internal/service"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/rapoarte")
	reports.Use(middleware.RequireAuth())
	{
		reports.GET("/venit-lunar", h.MonthlyRevenue)
		reports.GET("/performanta-soferi", h.DriverPerformance)
		reports.GET("/costuri-reparatii", h.RepairCosts)
		reports.GET("/datorii-parteneri", h.PartnerDebts)
		reports.GET("/:tip/export", h.Export)
	}
}

func reportParams(c *gin.Context) service.ReportParams {
	params := service.ReportParams{}
	if y := c.Query("an"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			params.Year = parsed
		}
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			params.FromDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			params.ToDate = &t
		}
	}
	return params
}

// MonthlyRevenue breaks revenue, trips and km down per month of a year
// @Summary      Monthly revenue report
// @Tags         rapoarte
// @Security     BearerAuth
// @Produce      json
// @Param        an  query  int  false  "Year (default: current)"
// @Success      200  {object}  response.Response
// @Router       /api/rapoarte/venit-lunar [get]
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	params := reportParams(c)
	if params.Year == 0 {
		params.Year = time.Now().Year()
	}

	rows, err := h.reportService.MonthlyRevenue(c.Request.Context(), params.Year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// DriverPerformance aggregates trips, km and revenue per driver
// @Summary      Driver performance report
// @Tags         rapoarte
// @Security     BearerAuth
// @Produce      json
// @Param        from  query  string  false  "From date (YYYY-MM-DD)"
// @Param        to    query  string  false  "To date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response
// @Router       /api/rapoarte/performanta-soferi [get]
func (h *ReportHandler) DriverPerformance(c *gin.Context) {
	rows, err := h.reportService.DriverPerformance(c.Request.Context(), reportParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// RepairCosts aggregates repair count and cost per vehicle
// @Summary      Repair cost report
// @Tags         rapoarte
// @Security     BearerAuth
// @Produce      json
// @Param        from  query  string  false  "From date (YYYY-MM-DD)"
// @Param        to    query  string  false  "To date (YYYY-MM-DD)"
// @Success      200  {object}  response.Response
// @Router       /api/rapoarte/costuri-reparatii [get]
func (h *ReportHandler) RepairCosts(c *gin.Context) {
	rows, err := h.reportService.RepairCosts(c.Request.Context(), reportParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// PartnerDebts aggregates unpaid invoices per partner
// @Summary      Partner debt report
// @Tags         rapoarte
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/rapoarte/datorii-parteneri [get]
func (h *ReportHandler) PartnerDebts(c *gin.Context) {
	rows, err := h.reportService.PartnerDebts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// Export streams a report as a CSV or XLSX download
// @Summary      Export report
// @Tags         rapoarte
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        tip     path   string  true   "Report type"
// @Param        format  query  string  false  "csv (default) or xlsx"
// @Param        an      query  int     false  "Year, for venit-lunar"
// @Param        from    query  string  false  "From date (YYYY-MM-DD)"
// @Param        to      query  string  false  "To date (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /api/rapoarte/{tip}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	file, err := h.reportService.Export(c.Request.Context(), c.Param("tip"), c.Query("format"), reportParams(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
