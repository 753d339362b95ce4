package service

import (
	"fmt"
	"time"

	"github.com/yourusername/exam-api/internal/domain/entity"
	"github.com/yourusername/exam-api/internal/domain/repository"
)

// ExamService предоставляет методы для работы с экзаменами
type ExamService struct {
	examRepo repository.ExamRepository
}

// NewExamService создает новый сервис экзаменов
func NewExamService(examRepo repository.ExamRepository) *ExamService {
	return &ExamService{examRepo: examRepo}
}

// ExamPage представляет страницу экзаменов с метаданными пагинации
type ExamPage struct {
	Items        []entity.Exam
	TotalRecords int64
	TotalPages   int64
	CurrentPage  int
}

// CreateExam создает новый экзамен
func (s *ExamService) CreateExam(name, description, venue string, examTime time.Time, duration int) (*entity.Exam, error) {
	exam := &entity.Exam{
		Name:        name,
		Description: description,
		Venue:       venue,
		Time:        examTime,
		Duration:    duration,
	}

	if err := s.examRepo.Create(exam); err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	return exam, nil
}

// resolveFilter превращает свободный текст фильтра в набор ID экзаменов.
// Пустой фильтр -> nil (выборка по всей таблице).
// Нет совпадений -> сентинельный набор {0}, который гарантированно не
// удовлетворяется ни одной записью: потребитель получает пустой результат,
// а не ошибку.
//
// Резолв и повторная выборка - два отдельных чтения без общего снапшота:
// записи, вставленные или удаленные между ними, могут дать устаревшую
// страницу. Это принятое окно несогласованности.
func (s *ExamService) resolveFilter(filter string) ([]uint, error) {
	if filter == "" {
		return nil, nil
	}

	ids, err := s.examRepo.SearchIDs(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve filter: %w", err)
	}

	if len(ids) == 0 {
		// ID 0 никогда не выдается базой (sequence стартует с 1)
		return []uint{0}, nil
	}

	return ids, nil
}

// ListExams возвращает страницу экзаменов, прошедших фильтр, с метаданными.
// page и limit уже нормализованы вызывающей стороной (>= 1)
func (s *ExamService) ListExams(page, limit int, filter string) (*ExamPage, error) {
	ids, err := s.resolveFilter(filter)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	exams, total, err := s.examRepo.ListByIDs(ids, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &ExamPage{
		Items:        exams,
		TotalRecords: total,
		TotalPages:   totalPages,
		CurrentPage:  page,
	}, nil
}

// ExportExams возвращает ВСЕ экзамены, прошедшие фильтр, без пагинации.
// CSV и XLSX экспорт используют один и тот же резолвер фильтра, что и
// JSON-листинг
func (s *ExamService) ExportExams(filter string) ([]entity.Exam, error) {
	ids, err := s.resolveFilter(filter)
	if err != nil {
		return nil, err
	}

	exams, err := s.examRepo.FindAllByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to export exams: %w", err)
	}

	return exams, nil
}

// DeleteExam удаляет экзамен по ID
func (s *ExamService) DeleteExam(id uint) error {
	return s.examRepo.Delete(id)
}
