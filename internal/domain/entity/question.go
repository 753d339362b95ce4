package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RequiredAnswerCount - количество вариантов ответа, которое обязан содержать вопрос
const RequiredAnswerCount = 4

// AnswerOption представляет один вариант ответа на вопрос
type AnswerOption struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// AnswerOptions - пользовательский тип для работы с JSONB
type AnswerOptions []AnswerOption

// Scan реализует интерфейс sql.Scanner для AnswerOptions
// Используется GORM для чтения JSONB данных из базы
func (o *AnswerOptions) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = AnswerOptions{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = AnswerOptions{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для AnswerOptions
// Используется GORM для записи AnswerOptions в JSONB в базе
func (o AnswerOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Validate проверяет структурный инвариант: ровно 4 варианта,
// у каждого непустые name и content
func (o AnswerOptions) Validate() error {
	if len(o) != RequiredAnswerCount {
		return fmt.Errorf("answer must contain exactly %d options, got %d", RequiredAnswerCount, len(o))
	}
	for i, opt := range o {
		if opt.Name == "" {
			return fmt.Errorf("answer option #%d: name is required", i+1)
		}
		if opt.Content == "" {
			return fmt.Errorf("answer option #%d: content is required", i+1)
		}
	}
	return nil
}

// Question представляет вопрос с вариантами ответа
// correctAnswer намеренно не сверяется со списком вариантов - свободный текст
type Question struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Title         string        `gorm:"size:500;not null" json:"title"`
	Content       string        `gorm:"type:text;not null" json:"content"`
	Answer        AnswerOptions `gorm:"type:jsonb;not null" json:"answer"`
	CorrectAnswer string        `gorm:"size:500;not null" json:"correctAnswer"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}
