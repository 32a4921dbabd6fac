package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"transio/internal/middleware"
	"transio/internal/model"
	"transio/internal/service"
	"transio/pkg/pagination"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
	userService     service.UserService
}

func NewSettingsHandler(settingsService service.SettingsService, userService service.UserService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, userService: userService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/setari")
	{
		settings.GET("/firma", middleware.RequireAuth(), h.GetCompany)
		settings.PUT("/firma", middleware.RequireAdmin(), h.UpdateCompany)

		settings.GET("/utilizatori", middleware.RequireAdmin(), h.ListUsers)
		settings.POST("/utilizatori", middleware.RequireAdmin(), h.CreateUser)
		settings.PUT("/utilizatori/:id", middleware.RequireAdmin(), h.UpdateUser)
		settings.DELETE("/utilizatori/:id", middleware.RequireAdmin(), h.DeleteUser)

		settings.POST("/schimba-parola", middleware.RequireAuth(), h.ChangePassword)

		settings.GET("/backup", middleware.RequireAdmin(), h.Backup)
		settings.POST("/restore", middleware.RequireAdmin(), h.Restore)
	}
}

// GetCompany returns the firma profile
// @Summary      Get company profile
// @Tags         setari
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/setari/firma [get]
func (h *SettingsHandler) GetCompany(c *gin.Context) {
	company, err := h.settingsService.GetCompany(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// UpdateCompany saves the firma profile
// @Summary      Update company profile
// @Tags         setari
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.UpdateCompanyRequest  true  "Company payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/setari/firma [put]
func (h *SettingsHandler) UpdateCompany(c *gin.Context) {
	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	company, err := h.settingsService.UpdateCompany(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, company))
}

// ListUsers returns paginated application accounts
// @Summary      List users
// @Tags         setari
// @Security     BearerAuth
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/setari/utilizatori [get]
func (h *SettingsHandler) ListUsers(c *gin.Context) {
	params := pagination.Parse(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, users, params.Page, params.Limit, total))
}

// CreateUser creates an application account
// @Summary      Create user
// @Tags         setari
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateUserRequest  true  "User payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/setari/utilizatori [post]
func (h *SettingsHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, user))
}

// UpdateUser updates an application account
// @Summary      Update user
// @Tags         setari
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "User ID"
// @Param        payload  body  service.UpdateUserRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/setari/utilizatori/{id} [put]
func (h *SettingsHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// DeleteUser removes an application account
// @Summary      Delete user
// @Tags         setari
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/setari/utilizatori/{id} [delete]
func (h *SettingsHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ChangePassword lets the authenticated user replace their own password
// @Summary      Change password
// @Tags         setari
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ChangePasswordRequest  true  "Password change payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/setari/schimba-parola [post]
func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), c.GetString("userID"), req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"changed": true}))
}

// Backup streams a JSON snapshot of the whole domain dataset
// @Summary      Download backup
// @Tags         setari
// @Security     BearerAuth
// @Produce      json
// @Success      200  {file}    binary
// @Failure      500  {object}  response.Response
// @Router       /api/setari/backup [get]
func (h *SettingsHandler) Backup(c *gin.Context) {
	backup, err := h.settingsService.Backup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("transio_backup_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(http.StatusOK, backup)
}

// Restore replaces the domain dataset with an uploaded snapshot
// @Summary      Restore backup
// @Tags         setari
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.Backup  true  "Backup snapshot"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/setari/restore [post]
func (h *SettingsHandler) Restore(c *gin.Context) {
	var backup model.Backup
	decoder := json.NewDecoder(c.Request.Body)
	if err := decoder.Decode(&backup); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid backup payload: "+err.Error()))
		return
	}

	if err := h.settingsService.Restore(c.Request.Context(), c.GetString("userID"), &backup); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"restored": true}))
}
