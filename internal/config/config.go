// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env         string `yaml:"env" env-default:"local"`
	Storage     `yaml:"storage"`
	HTTPServer  `yaml:"http_server"`
	JWTToken    `yaml:"jwttoken"`
	AdminUser   `yaml:"admin_user"`
	FeaturedIDs []int `yaml:"featured_ids"`
}

// Storage структура с путями к JSON-документам хранилища
type Storage struct {
	UsersFile string `yaml:"users_file" env:"USERS_FILE" env-default:"users.json"`
	BooksFile string `yaml:"books_file" env:"BOOKS_FILE" env-default:"books.json"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"168h"`
}

// AdminUser структура учётной записи администратора, создаваемой при
// первом запуске с пустым документом пользователей
type AdminUser struct {
	Username string `yaml:"username" env-default:"admin"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"admin123"`
	Email    string `yaml:"email" env-default:"admin@school509.ru"`
	FullName string `yaml:"full_name" env-default:"Администратор Библиотеки"`
	Grade    string `yaml:"grade" env-default:"11"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH,
// и завершает процесс при любой ошибке загрузки
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if len(cfg.FeaturedIDs) == 0 {
		cfg.FeaturedIDs = []int{5, 26, 14}
	}
	return &cfg
}
