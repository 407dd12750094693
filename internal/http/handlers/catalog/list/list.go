// Package list реализует HTTP-обработчик каталога книг с фильтрами
// поиска и темы.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/models"
)

// Catalog описывает доступ к каталогу книг.
type Catalog interface {
	Filter(query, theme string) []models.Book
	ListThemes() []string
}

// Handler обрабатывает запросы списка книг каталога.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
}

// New создает новый Handler с переданными логгером и каталогом.
func New(log *slog.Logger, catalog Catalog) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Каталог книг
// @Description Возвращает книги каталога с необязательными фильтрами по подстроке (название или автор) и теме, а также список всех тем.
// @Tags Catalog
// @Produce  json
// @Param search query string false "Подстрока поиска по названию или автору"
// @Param theme query string false "Фильтр по теме"
// @Success 200 {object} map[string]any "Книги и темы"
// @Router /books [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	search := r.URL.Query().Get("search")
	theme := r.URL.Query().Get("theme")

	books := h.catalog.Filter(search, theme)
	log.Info("catalog filtered",
		slog.String("search", search),
		slog.String("theme", theme),
		slog.Int("count", len(books)))

	render.JSON(w, r, response.OKWithData(map[string]any{
		"books":  books,
		"themes": h.catalog.ListThemes(),
	}))
}
