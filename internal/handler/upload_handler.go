package handler

import (
	"net/http"

	"transio/internal/middleware"
	"transio/internal/model"
	"transio/internal/service"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	documentService service.DocumentService
}

func NewUploadHandler(documentService service.DocumentService) *UploadHandler {
	return &UploadHandler{documentService: documentService}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	uploads := router.Group("/api/uploads")
	uploads.Use(middleware.RequireAuth())
	{
		uploads.POST("/documents", h.uploadSingle(model.DocCategoryDocument))
		uploads.POST("/documents/multiple", h.uploadMultiple(model.DocCategoryDocument))
		uploads.POST("/contracts", h.uploadSingle(model.DocCategoryContract))
		uploads.POST("/contracts/multiple", h.uploadMultiple(model.DocCategoryContract))
	}

	documents := router.Group("/api/documents")
	documents.Use(middleware.RequireAuth())
	{
		documents.GET("/:id/download", h.Download)
		documents.POST("/:id/attach", h.Attach)
		documents.DELETE("/:id", h.Delete)
	}
}

type attachRequest struct {
	OwnerType string `json:"ownerType" binding:"required"`
	OwnerID   string `json:"ownerId" binding:"required"`
}

// UploadDocument stores a single file
// @Summary      Upload file
// @Tags         uploads
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File, max 30 MB"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/uploads/documents [post]
func (h *UploadHandler) uploadSingle(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "No file in request"))
			return
		}

		doc, err := h.documentService.Store(c.Request.Context(), category, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
	}
}

// UploadMultiple stores up to 10 files in one request
// @Summary      Upload files
// @Tags         uploads
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Files, max 10 per request"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/uploads/documents/multiple [post]
func (h *UploadHandler) uploadMultiple(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid multipart request"))
			return
		}

		docs, err := h.documentService.StoreBatch(c.Request.Context(), category, form.File["files"])
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusCreated, response.Success(http.StatusCreated, docs))
	}
}

// Download streams the stored file with its original filename
// @Summary      Download document
// @Tags         documents
// @Security     BearerAuth
// @Produce      octet-stream
// @Param        id  path  string  true  "Document ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /api/documents/{id}/download [get]
func (h *UploadHandler) Download(c *gin.Context) {
	doc, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.Header("Content-Type", doc.MimeType)
	c.FileAttachment(doc.Path, doc.NumeFisier)
}

// Attach binds an uploaded document to a trip, driver, partner or invoice
// @Summary      Attach document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string         true  "Document ID"
// @Param        payload  body  attachRequest  true  "Owner binding"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/documents/{id}/attach [post]
func (h *UploadHandler) Attach(c *gin.Context) {
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.documentService.Attach(c.Request.Context(), c.Param("id"), req.OwnerType, req.OwnerID); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"attached": true}))
}

// Delete removes the document row and its file
// @Summary      Delete document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/documents/{id} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
