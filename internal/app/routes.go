// Package app предоставляет маршруты для приложения библиотеки.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/clawcat502/library/internal/catalog"
	"github.com/clawcat502/library/internal/config"
	"github.com/clawcat502/library/internal/http/handlers/auth/login"
	"github.com/clawcat502/library/internal/http/handlers/auth/register"
	"github.com/clawcat502/library/internal/http/handlers/catalog/featured"
	cataloglist "github.com/clawcat502/library/internal/http/handlers/catalog/list"
	catalogread "github.com/clawcat502/library/internal/http/handlers/catalog/read"
	"github.com/clawcat502/library/internal/http/handlers/catalog/search"
	"github.com/clawcat502/library/internal/http/handlers/catalog/status"
	"github.com/clawcat502/library/internal/http/handlers/catalog/themes"
	"github.com/clawcat502/library/internal/http/handlers/library/clearhistory"
	"github.com/clawcat502/library/internal/http/handlers/library/favoriteadd"
	"github.com/clawcat502/library/internal/http/handlers/library/favoriteremove"
	"github.com/clawcat502/library/internal/http/handlers/library/togglereading"
	"github.com/clawcat502/library/internal/http/handlers/profile/notifications"
	profileread "github.com/clawcat502/library/internal/http/handlers/profile/read"
	profileremove "github.com/clawcat502/library/internal/http/handlers/profile/remove"
	profileupdate "github.com/clawcat502/library/internal/http/handlers/profile/update"
	"github.com/clawcat502/library/internal/http/middlewarectx"
	authservice "github.com/clawcat502/library/internal/services/auth"
	libservice "github.com/clawcat502/library/internal/services/library"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService, libraryService *libservice.LibraryService,
	books *catalog.Catalog) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		r.Get("/books", cataloglist.New(logger, books).ServeHTTP)
		r.Get("/books/featured", featured.New(logger, books, cfg.FeaturedIDs).ServeHTTP)
		r.Get("/books/themes", themes.New(logger, books).ServeHTTP)
		r.Get("/books/search", search.New(logger, books).ServeHTTP)
		r.Get("/books/{id}", catalogread.New(logger, books).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Post("/library/favorites/{id}", favoriteadd.New(logger, libraryService).ServeHTTP)
			r.Delete("/library/favorites/{id}", favoriteremove.New(logger, libraryService).ServeHTTP)
			r.Post("/library/reading/{id}", togglereading.New(logger, libraryService).ServeHTTP)
			r.Post("/library/history/clear", clearhistory.New(logger, libraryService).ServeHTTP)
			r.Get("/profile", profileread.New(logger, libraryService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, libraryService).ServeHTTP)
			r.Put("/profile/notifications", notifications.New(logger, libraryService).ServeHTTP)
			r.Delete("/profile", profileremove.New(logger, libraryService).ServeHTTP)

			// Админская группа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(cfg.AdminUser.Username, logger))
				r.Post("/books/{id}/status", status.New(logger, books).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
