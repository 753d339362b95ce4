package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Identity IdentityConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// UploadConfig содержит настройки загрузки файлов
type UploadConfig struct {
	// Dir: директория на диске, куда сохраняются загруженные файлы
	Dir string `mapstructure:"dir"`
	// BaseURL: внешний базовый URL сервера, из него строятся ссылки на файлы
	BaseURL string `mapstructure:"base_url"`
}

// IdentityDemoUser описывает демо-пользователя, регистрируемого через admin API.
// Значения задаются конфигурацией, а не зашиваются в код
type IdentityDemoUser struct {
	Username  string `mapstructure:"username"`
	Email     string `mapstructure:"email"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
	Password  string `mapstructure:"password"`
}

// IdentityConfig содержит настройки интеграции с identity-провайдером
type IdentityConfig struct {
	// TokenURL: endpoint выдачи токена (password grant)
	TokenURL string `mapstructure:"token_url"`
	// UsersURL: admin endpoint создания пользователей
	UsersURL string           `mapstructure:"users_url"`
	ClientID string           `mapstructure:"client_id"`
	Username string           `mapstructure:"username"`
	Password string           `mapstructure:"password"`
	Demo     IdentityDemoUser `mapstructure:"demo"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 30)
	vip.SetDefault("upload.dir", "./uploads")
	vip.SetDefault("upload.base_url", "http://localhost:8080")

	// 2. Привязываем переменные окружения ЯВНО
	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Upload
	vip.BindEnv("upload.dir", "UPLOAD_DIR")
	vip.BindEnv("upload.base_url", "UPLOAD_BASE_URL")

	// Привязка для секции Identity
	// Секреты приходят только из окружения, в файле конфигурации их быть не должно
	vip.BindEnv("identity.token_url", "IDENTITY_TOKEN_URL")
	vip.BindEnv("identity.users_url", "IDENTITY_USERS_URL")
	vip.BindEnv("identity.client_id", "IDENTITY_CLIENT_ID")
	vip.BindEnv("identity.username", "IDENTITY_USERNAME")
	vip.BindEnv("identity.password", "IDENTITY_PASSWORD")
	vip.BindEnv("identity.demo.username", "IDENTITY_DEMO_USERNAME")
	vip.BindEnv("identity.demo.email", "IDENTITY_DEMO_EMAIL")
	vip.BindEnv("identity.demo.first_name", "IDENTITY_DEMO_FIRST_NAME")
	vip.BindEnv("identity.demo.last_name", "IDENTITY_DEMO_LAST_NAME")
	vip.BindEnv("identity.demo.password", "IDENTITY_DEMO_PASSWORD")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// 3. Устанавливаем путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// 4. Пытаемся прочитать файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 5. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database User: %s", cfg.Database.User)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Upload Dir: %s", cfg.Upload.Dir)
		log.Printf("Upload Base URL: %s", cfg.Upload.BaseURL)
		log.Printf("Identity Token URL: %s", cfg.Identity.TokenURL)
		log.Printf("Identity Password Set: %t", cfg.Identity.Password != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	// 7. Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}

	return &cfg, nil
}
