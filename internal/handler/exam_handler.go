package handler

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/exam-api/internal/handler/dto"
	apperrors "github.com/yourusername/exam-api/internal/pkg/errors"
	"github.com/yourusername/exam-api/internal/service"
)

// Значения пагинации по умолчанию. Невалидные или неположительные
// page/limit приводятся к ним, а не отклоняются
const (
	defaultPage  = 1
	defaultLimit = 10
)

// ExamHandler обрабатывает запросы, связанные с экзаменами
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler создает новый обработчик экзаменов
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// CreateExamRequest представляет запрос на создание экзамена
type CreateExamRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	Time        time.Time `json:"time" binding:"required"`
	Duration    int       `json:"duration" binding:"required,min=1"` // Минуты
}

// CreateExam обрабатывает запрос на создание экзамена
// POST /exams
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exam, err := h.examService.CreateExam(req.Name, req.Description, req.Venue, req.Time, req.Duration)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exam)
}

// ListExams возвращает список экзаменов с пагинацией и фильтрацией
// GET /exams?page&limit&filter
func (h *ExamHandler) ListExams(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := c.Query("filter")

	result, err := h.examService.ListExams(page, limit, filter)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewExamListResponse(result.Items, result.TotalRecords, result.TotalPages, result.CurrentPage))
}

// DeleteExam удаляет экзамен по ID
// DELETE /exam/:id
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	examID := c.MustGet("examID").(uint) // Получаем из контекста

	if err := h.examService.DeleteExam(examID); err != nil {
		h.handleExamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exam deleted successfully"})
}

// ExportExcel экспортирует все экзамены, прошедшие фильтр, в XLSX
// GET /export/exams?filter
func (h *ExamHandler) ExportExcel(c *gin.Context) {
	exams, err := h.examService.ExportExams(c.Query("filter"))
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="exams.xlsx"`)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Exams"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ExamHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Фиксированные ширины колонок: ID, Name, Description, Venue
	sw.SetColWidth(1, 1, 10)
	sw.SetColWidth(2, 2, 30)
	sw.SetColWidth(3, 3, 50)
	sw.SetColWidth(4, 4, 30)

	// Заголовки
	headers := []interface{}{"ID", "Name", "Description", "Venue"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ExamHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, exam := range exams {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // Начинаем с 2 строки (1 - заголовки)
		row := []interface{}{exam.ID, sanitizeForExcel(exam.Name), sanitizeForExcel(exam.Description), sanitizeForExcel(exam.Venue)}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ExamHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ExamHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ExamHandler] Ошибка записи Excel в response: %v", err)
	}
}

// ExportCSV экспортирует все экзамены, прошедшие фильтр, в CSV
// GET /export/exams/csv?filter
func (h *ExamHandler) ExportCSV(c *gin.Context) {
	exams, err := h.examService.ExportExams(c.Query("filter"))
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="exams.csv"`)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"ID", "Name", "Description", "Venue"})

	// Данные
	for _, exam := range exams {
		writer.Write([]string{
			strconv.FormatUint(uint64(exam.ID), 10),
			sanitizeForExcel(exam.Name),
			sanitizeForExcel(exam.Description),
			sanitizeForExcel(exam.Venue),
		})
	}
}

// parsePagination извлекает page и limit из query-параметров.
// Нечисловые и неположительные значения приводятся к значениям по умолчанию
func parsePagination(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", strconv.Itoa(defaultPage))
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	return page, limit
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleExamError обрабатывает ошибки от сервисов экзаменов и отправляет соответствующий HTTP ответ
func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ExamHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
