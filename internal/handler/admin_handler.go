package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-api/internal/service"
)

// AdminHandler обрабатывает bootstrap-запросы администрирования
type AdminHandler struct {
	identityService *service.IdentityService
}

// NewAdminHandler создает новый обработчик администрирования
func NewAdminHandler(identityService *service.IdentityService) *AdminHandler {
	return &AdminHandler{identityService: identityService}
}

// Bootstrap получает токен у identity-провайдера и регистрирует
// демо-пользователя, описанного в конфигурации.
// Ошибка внешнего вызова возвращается клиенту как есть
// GET /admin
func (h *AdminHandler) Bootstrap(c *gin.Context) {
	if err := h.identityService.RegisterDemoUser(c.Request.Context()); err != nil {
		log.Printf("[AdminHandler] Ошибка регистрации демо-пользователя: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Demo user registered successfully"})
}
