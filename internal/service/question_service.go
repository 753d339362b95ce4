package service

import (
	"fmt"
	"log"

	"github.com/yourusername/exam-api/internal/domain/entity"
	"github.com/yourusername/exam-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-api/internal/pkg/errors"
)

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// CreateQuestion валидирует структуру ответа и создает вопрос.
// При нарушении инварианта (не 4 варианта, пустые name/content) ничего не
// пишет в базу. correctAnswer принимается как есть, без сверки с вариантами
func (s *QuestionService) CreateQuestion(question *entity.Question) error {
	if err := question.Answer.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.questionRepo.Create(question); err != nil {
		log.Printf("[QuestionService] Ошибка при создании вопроса: %v", err)
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}
