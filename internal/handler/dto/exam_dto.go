package dto

import (
	"github.com/yourusername/exam-api/internal/domain/entity"
)

// ExamListMeta представляет метаданные пагинации листинга экзаменов
type ExamListMeta struct {
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// ExamListResponse представляет страницу экзаменов в формате для ответа клиенту
type ExamListResponse struct {
	Items []entity.Exam `json:"items"`
	Meta  ExamListMeta  `json:"meta"`
}

// NewExamListResponse создает DTO для пагинированного листинга экзаменов
func NewExamListResponse(items []entity.Exam, totalRecords, totalPages int64, currentPage int) *ExamListResponse {
	// Пустая страница сериализуется как [], а не null
	if items == nil {
		items = []entity.Exam{}
	}
	return &ExamListResponse{
		Items: items,
		Meta: ExamListMeta{
			TotalRecords: totalRecords,
			TotalPages:   totalPages,
			CurrentPage:  currentPage,
		},
	}
}
