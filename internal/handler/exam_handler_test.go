package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/exam-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-api/internal/pkg/errors"
	"github.com/yourusername/exam-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// mockExamRepo - мок репозитория экзаменов для handler-тестов
type mockExamRepo struct {
	mock.Mock
}

func (m *mockExamRepo) Create(exam *entity.Exam) error {
	args := m.Called(exam)
	return args.Error(0)
}

func (m *mockExamRepo) GetByID(id uint) (*entity.Exam, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Exam), args.Error(1)
}

func (m *mockExamRepo) SearchIDs(search string) ([]uint, error) {
	args := m.Called(search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockExamRepo) ListByIDs(ids []uint, limit, offset int) ([]entity.Exam, int64, error) {
	args := m.Called(ids, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Exam), args.Get(1).(int64), args.Error(2)
}

func (m *mockExamRepo) FindAllByIDs(ids []uint) ([]entity.Exam, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Exam), args.Error(1)
}

func (m *mockExamRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockExamRepo) CreateBatch(exams []entity.Exam) error {
	args := m.Called(exams)
	return args.Error(0)
}

// ============================================================================
// Pagination parsing
// ============================================================================

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults when absent", query: "", wantPage: 1, wantLimit: 10},
		{name: "valid values", query: "page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "non-numeric page", query: "page=abc&limit=5", wantPage: 1, wantLimit: 5},
		{name: "non-numeric limit", query: "page=2&limit=xyz", wantPage: 2, wantLimit: 10},
		{name: "zero values", query: "page=0&limit=0", wantPage: 1, wantLimit: 10},
		{name: "negative values", query: "page=-1&limit=-10", wantPage: 1, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestGinContext("GET", "/exams?"+tt.query, nil)

			page, limit := parsePagination(c)

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

// ============================================================================
// Formula injection guard
// ============================================================================

func TestSanitizeForExcel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ujian Matematik", "Ujian Matematik"},
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+1234", "'+1234"},
		{"-hello", "'-hello"},
		{"@cmd", "'@cmd"},
		{"\tfoo", "'\tfoo"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeForExcel(tt.in), "input: %q", tt.in)
	}
}

// ============================================================================
// ListExams — handler + реальный сервис поверх мок-репозитория
// ============================================================================

func TestListExams_ResponseShape(t *testing.T) {
	// Arrange
	repo := new(mockExamRepo)
	repo.On("ListByIDs", []uint(nil), 10, 0).Return([]entity.Exam{
		{ID: 1, Name: "SPM Percubaan", Venue: "Dewan Sri Melati"},
		{ID: 2, Name: "Ujian Akhir", Venue: "Bilik 204"},
	}, int64(2), nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("GET", "/exams", nil)

	// Act
	handler.ListExams(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)

	items, ok := resp["items"].([]interface{})
	require.True(t, ok, "items должен быть массивом")
	assert.Len(t, items, 2)

	meta, ok := resp["meta"].(map[string]interface{})
	require.True(t, ok, "meta должна присутствовать")
	assert.Equal(t, float64(2), meta["totalRecords"])
	assert.Equal(t, float64(1), meta["totalPages"])
	assert.Equal(t, float64(1), meta["currentPage"])
	repo.AssertExpectations(t)
}

func TestListExams_EmptyItemsIsArray(t *testing.T) {
	// Arrange: репозиторий возвращает nil slice
	repo := new(mockExamRepo)
	repo.On("ListByIDs", []uint(nil), 10, 0).Return(nil, int64(0), nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("GET", "/exams", nil)

	// Act
	handler.ListExams(c)

	// Assert: items сериализуется как [], а не null
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestListExams_FilterPassedToSearch(t *testing.T) {
	// Arrange
	repo := new(mockExamRepo)
	repo.On("SearchIDs", "melati").Return([]uint{4, 9}, nil)
	repo.On("ListByIDs", []uint{4, 9}, 10, 0).Return([]entity.Exam{{ID: 4}, {ID: 9}}, int64(2), nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("GET", "/exams?filter=melati", nil)

	// Act
	handler.ListExams(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

// ============================================================================
// CreateExam — request validation
// ============================================================================

func TestCreateExam_ValidationErrors(t *testing.T) {
	handler := &ExamHandler{} // nil service — handler возвращает 400 до вызова сервиса

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "empty body", body: nil},
		{
			name: "missing name",
			body: map[string]interface{}{"description": "d", "venue": "v", "time": "2026-11-02T09:00:00Z", "duration": 90},
		},
		{
			name: "zero duration",
			body: map[string]interface{}{"name": "n", "description": "d", "venue": "v", "time": "2026-11-02T09:00:00Z", "duration": 0},
		},
		{
			name: "invalid time format",
			body: map[string]interface{}{"name": "n", "description": "d", "venue": "v", "time": "tomorrow", "duration": 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/exams", tt.body)
			handler.CreateExam(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateExam_Success(t *testing.T) {
	// Arrange
	repo := new(mockExamRepo)
	repo.On("Create", mock.MatchedBy(func(e *entity.Exam) bool {
		return e.Name == "SPM Percubaan" && e.Duration == 120
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Exam).ID = 42
	}).Return(nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("POST", "/exams", map[string]interface{}{
		"name":        "SPM Percubaan",
		"description": "Peperiksaan percubaan",
		"venue":       "Dewan Sri Melati",
		"time":        time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC),
		"duration":    120,
	})

	// Act
	handler.CreateExam(c)

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, float64(42), resp["id"])
	repo.AssertExpectations(t)
}

// ============================================================================
// DeleteExam
// ============================================================================

func TestDeleteExam_NotFound(t *testing.T) {
	// Arrange
	repo := new(mockExamRepo)
	repo.On("Delete", uint(99)).Return(apperrors.ErrNotFound)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("DELETE", "/exam/99", nil)
	c.Set("examID", uint(99)) // Middleware кладет распарсенный ID в контекст

	// Act
	handler.DeleteExam(c)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteExam_Success(t *testing.T) {
	// Arrange
	repo := new(mockExamRepo)
	repo.On("Delete", uint(7)).Return(nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("DELETE", "/exam/7", nil)
	c.Set("examID", uint(7))

	// Act
	handler.DeleteExam(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["message"], "deleted")
	repo.AssertExpectations(t)
}

// ============================================================================
// CSV export
// ============================================================================

func TestExportCSV(t *testing.T) {
	// Arrange: одна запись с потенциальной формулой в названии
	repo := new(mockExamRepo)
	repo.On("FindAllByIDs", []uint(nil)).Return([]entity.Exam{
		{ID: 1, Name: "=SUM(A1)", Description: "Ujian, dengan koma", Venue: "Dewan"},
	}, nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("GET", "/export/exams/csv", nil)

	// Act
	handler.ExportCSV(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="exams.csv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "CSV должен начинаться с UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(string(body[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Name,Description,Venue", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "'=SUM(A1)", "формула должна быть экранирована")
	assert.Contains(t, lines[1], `"Ujian, dengan koma"`, "запятая в поле должна быть взята в кавычки")
}

// ============================================================================
// XLSX export
// ============================================================================

func TestExportExcel_Headers(t *testing.T) {
	// Arrange
	repo := new(mockExamRepo)
	repo.On("FindAllByIDs", []uint(nil)).Return([]entity.Exam{
		{ID: 1, Name: "SPM Percubaan", Description: "Ujian", Venue: "Dewan"},
	}, nil)

	handler := NewExamHandler(service.NewExamService(repo))
	c, w := newTestGinContext("GET", "/export/exams", nil)

	// Act
	handler.ExportExcel(c)

	// Assert: содержимое проверяем только по заголовкам и сигнатуре ZIP
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="exams.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "XLSX — это ZIP-архив")
}
