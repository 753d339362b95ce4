package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/exam-api/internal/config"
	"github.com/yourusername/exam-api/internal/domain/entity"
	pgRepo "github.com/yourusername/exam-api/internal/repository/postgres"
	"github.com/yourusername/exam-api/pkg/database"
)

// Массовое наполнение таблицы exams демонстрационными данными.
// Запускается вручную: go run ./cmd/seed
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	const count = 30
	exams := make([]entity.Exam, 0, count)
	base := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	for i := 1; i <= count; i++ {
		exams = append(exams, entity.Exam{
			Name:        fmt.Sprintf("Exam-%d", i),
			Description: fmt.Sprintf("Demonstration exam number %d", i),
			Venue:       fmt.Sprintf("Venue-%d", i),
			Time:        base.Add(time.Duration(i) * 24 * time.Hour),
			Duration:    90,
		})
	}

	examRepo := pgRepo.NewExamRepo(db)
	if err := examRepo.CreateBatch(exams); err != nil {
		log.Fatalf("Failed to seed exams: %v", err)
	}

	log.Printf("Успешно добавлено %d экзаменов", count)
}
