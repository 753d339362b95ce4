package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() AnswerOptions {
	return AnswerOptions{
		{Name: "A", Content: "Kuala Lumpur"},
		{Name: "B", Content: "Putrajaya"},
		{Name: "C", Content: "Johor Bahru"},
		{Name: "D", Content: "Ipoh"},
	}
}

func TestAnswerOptions_Validate_Valid(t *testing.T) {
	// Arrange
	opts := validOptions()

	// Act & Assert
	assert.NoError(t, opts.Validate(), "4 корректных варианта должны проходить валидацию")
}

func TestAnswerOptions_Validate_WrongCount(t *testing.T) {
	testCases := []struct {
		name string
		opts AnswerOptions
	}{
		{"3 варианта", validOptions()[:3]},
		{"5 вариантов", append(validOptions(), AnswerOption{Name: "E", Content: "Melaka"})},
		{"пустой массив", AnswerOptions{}},
		{"nil", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.opts.Validate(), "валидация должна требовать ровно 4 варианта")
		})
	}
}

func TestAnswerOptions_Validate_EmptyFields(t *testing.T) {
	// Arrange: один вариант без content
	opts := validOptions()
	opts[2].Content = ""

	// Act & Assert
	assert.Error(t, opts.Validate(), "пустой content должен быть ошибкой")

	// Arrange: один вариант без name
	opts = validOptions()
	opts[0].Name = ""

	// Act & Assert
	assert.Error(t, opts.Validate(), "пустой name должен быть ошибкой")
}

// Тесты для AnswerOptions (JSONB сериализация)

func TestAnswerOptions_Scan_ValidJSON(t *testing.T) {
	// Arrange
	jsonBytes := []byte(`[{"name":"A","content":"Satu"},{"name":"B","content":"Dua"}]`)
	var opts AnswerOptions

	// Act
	err := opts.Scan(jsonBytes)

	// Assert
	require.NoError(t, err, "Scan не должен возвращать ошибку для валидного JSON")
	require.Len(t, opts, 2)
	assert.Equal(t, "A", opts[0].Name)
	assert.Equal(t, "Satu", opts[0].Content)
	assert.Equal(t, "B", opts[1].Name)
}

func TestAnswerOptions_Scan_NullValue(t *testing.T) {
	var opts AnswerOptions

	err := opts.Scan(nil)

	require.NoError(t, err, "Scan не должен возвращать ошибку для nil")
	assert.Len(t, opts, 0, "Для nil должен вернуться пустой массив")
}

func TestAnswerOptions_Scan_InvalidType(t *testing.T) {
	var opts AnswerOptions

	err := opts.Scan("not a byte slice")

	assert.Error(t, err, "Scan должен возвращать ошибку для неподдерживаемого типа")
}

func TestAnswerOptions_Value_NonEmpty(t *testing.T) {
	// Arrange
	opts := AnswerOptions{{Name: "A", Content: "Satu"}}

	// Act
	val, err := opts.Value()

	// Assert
	require.NoError(t, err)
	bytes, ok := val.([]byte)
	require.True(t, ok, "Value должен возвращать []byte")
	assert.Equal(t, `[{"name":"A","content":"Satu"}]`, string(bytes))
}

func TestAnswerOptions_Value_Empty(t *testing.T) {
	var opts AnswerOptions

	val, err := opts.Value()

	require.NoError(t, err)
	bytes, ok := val.([]byte)
	require.True(t, ok)
	assert.Equal(t, "[]", string(bytes), "nil должен сериализоваться в []")
}

func TestQuestion_TableName(t *testing.T) {
	assert.Equal(t, "questions", Question{}.TableName())
}

func TestExam_TableName(t *testing.T) {
	assert.Equal(t, "exams", Exam{}.TableName())
}
