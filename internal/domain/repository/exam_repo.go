package repository

import (
	"github.com/yourusername/exam-api/internal/domain/entity"
)

// ExamRepository определяет методы для работы с экзаменами
type ExamRepository interface {
	Create(exam *entity.Exam) error
	GetByID(id uint) (*entity.Exam, error)
	// SearchIDs возвращает ID экзаменов, у которых name, description или venue
	// содержит искомый текст (регистронезависимо, логическое OR)
	SearchIDs(search string) ([]uint, error)
	// ListByIDs возвращает страницу экзаменов с ограничением по набору ID и total count.
	// ids == nil означает "все экзамены" (без ограничения по ID).
	ListByIDs(ids []uint, limit, offset int) ([]entity.Exam, int64, error)
	// FindAllByIDs возвращает все экзамены из набора ID без пагинации.
	// ids == nil означает "все экзамены".
	FindAllByIDs(ids []uint) ([]entity.Exam, error)
	Delete(id uint) error
	CreateBatch(exams []entity.Exam) error
}
