package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-api/internal/config"
	"github.com/yourusername/exam-api/internal/handler"
	"github.com/yourusername/exam-api/internal/middleware"
	pgRepo "github.com/yourusername/exam-api/internal/repository/postgres"
	"github.com/yourusername/exam-api/internal/service"
	"github.com/yourusername/exam-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	// Хранилище - единственный владелец данных: обработчики не держат
	// состояния между запросами, каждый запрос перечитывает базу
	examRepo := pgRepo.NewExamRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)

	// Инициализируем сервисы
	examService := service.NewExamService(examRepo)
	questionService := service.NewQuestionService(questionRepo)
	uploadService := service.NewUploadService(cfg.Upload.Dir, cfg.Upload.BaseURL)
	identityService := service.NewIdentityService(cfg.Identity)

	// Инициализируем обработчики
	examHandler := handler.NewExamHandler(examService)
	questionHandler := handler.NewQuestionHandler(questionService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	adminHandler := handler.NewAdminHandler(identityService)
	pdfHandler := handler.NewPDFHandler()

	// Инициализируем роутер Gin
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статическая раздача загруженных файлов
	router.Static("/uploads", cfg.Upload.Dir)

	// Маршруты API. Пути сохранены в точности ради совместимости
	// с существующими клиентами (включая несимметричный /exam/:id)
	router.GET("/exams", examHandler.ListExams)
	router.POST("/exams", examHandler.CreateExam)
	router.GET("/export/exams", examHandler.ExportExcel)
	router.GET("/export/exams/csv", examHandler.ExportCSV)
	router.DELETE("/exam/:id", middleware.ExtractUintParam("id", "examID"), examHandler.DeleteExam)
	router.POST("/upload-image", uploadHandler.UploadImage)
	router.GET("/admin", adminHandler.Bootstrap)
	router.POST("/question", questionHandler.CreateQuestion)
	router.GET("/generatepdf", pdfHandler.Generate)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
