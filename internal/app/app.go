// Package app собирает приложение библиотеки: хранилища, каталог,
// сервисы, маршруты и HTTP-сервер с мягкой остановкой.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/clawcat502/library/internal/catalog"
	"github.com/clawcat502/library/internal/config"
	jwtlib "github.com/clawcat502/library/internal/lib/jwt"
	"github.com/clawcat502/library/internal/lib/password"
	authservice "github.com/clawcat502/library/internal/services/auth"
	libservice "github.com/clawcat502/library/internal/services/library"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// App — собранное приложение библиотеки.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New создает приложение: инициализирует хранилища (с созданием файлов
// и учётной записи администратора при первом запуске), каталог с
// миграцией поля available, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	users, err := userstore.New(cfg.UsersFile, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	adminHash, err := password.GetHash(cfg.AdminUser.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := users.SeedAdmin(ctx, cfg.AdminUser.Username, adminHash,
		cfg.AdminUser.Email, cfg.AdminUser.FullName, cfg.AdminUser.Grade); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	books, err := catalog.New(cfg.BooksFile, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(users, jwtMaker, logger)
	libraryService := libservice.NewLibraryService(users, books, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, libraryService, books)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его мягко по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
