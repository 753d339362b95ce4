package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-api/internal/pkg/errors"
	"github.com/yourusername/exam-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// AnswerOptionRequest представляет один вариант ответа в запросе
type AnswerOptionRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Title         string                `json:"title" binding:"required"`
	Content       string                `json:"content" binding:"required"`
	Answer        []AnswerOptionRequest `json:"answer" binding:"required,len=4,dive"`
	CorrectAnswer string                `json:"correctAnswer" binding:"required"`
}

// CreateQuestion обрабатывает запрос на создание вопроса.
// answer обязан содержать ровно 4 варианта с непустыми name и content,
// иначе 400 без записи в базу
// POST /question
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Преобразуем данные в формат entity
	answer := make(entity.AnswerOptions, 0, len(req.Answer))
	for _, opt := range req.Answer {
		answer = append(answer, entity.AnswerOption{Name: opt.Name, Content: opt.Content})
	}

	question := &entity.Question{
		Title:         req.Title,
		Content:       req.Content,
		Answer:        answer,
		CorrectAnswer: req.CorrectAnswer,
	}

	if err := h.questionService.CreateQuestion(question); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	// Возвращаем созданный вопрос вместе с присвоенным ID
	c.JSON(http.StatusCreated, question)
}

// handleQuestionError обрабатывает ошибки от сервиса вопросов
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
