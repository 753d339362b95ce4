package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/exam-api/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос одной атомарной записью
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}
