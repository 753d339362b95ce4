package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourusername/exam-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-api/internal/pkg/errors"
)

// ExamRepo реализует repository.ExamRepository
type ExamRepo struct {
	db *gorm.DB
}

// NewExamRepo создает новый репозиторий экзаменов
func NewExamRepo(db *gorm.DB) *ExamRepo {
	return &ExamRepo{db: db}
}

// Create создает новый экзамен
func (r *ExamRepo) Create(exam *entity.Exam) error {
	if err := r.db.Create(exam).Error; err != nil {
		// Нарушения ограничений целостности (класс 23xxx) трактуем как ошибку входных данных
		if isIntegrityViolation(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return err
	}
	return nil
}

// CreateBatch создает пакет экзаменов одной транзакцией
func (r *ExamRepo) CreateBatch(exams []entity.Exam) error {
	if len(exams) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&exams).Error
	})
}

// GetByID возвращает экзамен по ID
func (r *ExamRepo) GetByID(id uint) (*entity.Exam, error) {
	var exam entity.Exam
	err := r.db.First(&exam, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &exam, nil
}

// SearchIDs возвращает ID экзаменов, у которых name, description или venue
// содержит search как регистронезависимую подстроку
func (r *ExamRepo) SearchIDs(search string) ([]uint, error) {
	var ids []uint
	pattern := "%" + search + "%"
	err := r.db.Model(&entity.Exam{}).
		Where("name ILIKE ? OR description ILIKE ? OR venue ILIKE ?", pattern, pattern, pattern).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListByIDs возвращает страницу экзаменов и total count.
// ids == nil означает выборку по всей таблице
func (r *ExamRepo) ListByIDs(ids []uint, limit, offset int) ([]entity.Exam, int64, error) {
	var exams []entity.Exam
	var total int64

	query := r.db.Model(&entity.Exam{})
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}

	// Сначала total count, затем страница - порядок стабильный (id ASC)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("id").Find(&exams).Error
	if err != nil {
		return nil, 0, err
	}

	return exams, total, nil
}

// FindAllByIDs возвращает все экзамены из набора ID без пагинации
func (r *ExamRepo) FindAllByIDs(ids []uint) ([]entity.Exam, error) {
	var exams []entity.Exam
	query := r.db
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}
	err := query.Order("id").Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

// Delete удаляет экзамен по ID.
// Возвращает apperrors.ErrNotFound, если записи не существовало
func (r *ExamRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Exam{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// isIntegrityViolation проверяет Postgres integrity constraint violation (класс 23)
func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23")
}
