package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-api/internal/service"
)

// UploadHandler обрабатывает загрузку файлов
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler создает новый обработчик загрузки
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage принимает ровно один файл под полем "image" и сохраняет его
// POST /upload-image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required: " + err.Error()})
		return
	}

	url, err := h.uploadService.SaveImage(file)
	if err != nil {
		log.Printf("[UploadHandler] Ошибка сохранения файла: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
