package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey - ключ, под которым идентификатор запроса хранится в контексте Gin
const RequestIDKey = "request_id"

// RequestID присваивает каждому запросу уникальный идентификатор.
// Если клиент прислал X-Request-ID, используется он, иначе генерируется новый.
// Идентификатор возвращается в одноименном заголовке ответа
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
