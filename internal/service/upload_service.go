package service

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadService сохраняет загруженные файлы на диск
type UploadService struct {
	uploadDir string // директория для загрузки файлов
	baseURL   string // базовый URL, по которому раздается uploadDir
}

// NewUploadService создает новый сервис загрузки файлов
func NewUploadService(uploadDir, baseURL string) *UploadService {
	// Создаем директорию для загрузки, если не существует
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Printf("[UploadService] WARNING: не удалось создать директорию %s: %v", uploadDir, err)
	}
	return &UploadService{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// SaveImage сохраняет файл под устойчивым к коллизиям именем
// (исходное имя + наносекундная метка времени + исходное расширение)
// и возвращает URL для доступа к нему.
// Тип и размер файла намеренно не проверяются
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)

	filename := fmt.Sprintf("%s_%d%s", base, time.Now().UnixNano(), ext)
	filePath := filepath.Join(s.uploadDir, filename)

	// Открываем исходный файл
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("не удалось открыть загруженный файл: %w", err)
	}
	defer src.Close()

	// Создаем целевой файл
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("не удалось создать файл: %w", err)
	}
	defer dst.Close()

	// Копируем содержимое синхронно - отвечаем только после записи на диск
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath) // Удаляем частично записанный файл
		return "", fmt.Errorf("не удалось сохранить файл: %w", err)
	}

	url := s.baseURL + "/uploads/" + filename
	log.Printf("[UploadService] Сохранен файл %s (%d байт)", filename, file.Size)
	return url, nil
}
