// Package search реализует API быстрого поиска книг для подсказок ввода.
//
// Возвращает не более пяти совпадений; пустой запрос дает пустой список.
package search

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/models"
)

// maxResults ограничивает размер ответа быстрого поиска.
const maxResults = 5

// Catalog описывает доступ к каталогу книг.
type Catalog interface {
	Search(query string) []models.Book
}

// Handler обрабатывает запросы быстрого поиска.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
}

// New создает новый Handler с переданными логгером и каталогом.
func New(log *slog.Logger, catalog Catalog) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Быстрый поиск книг
// @Description Ищет книги по подстроке названия или автора без учета регистра. Возвращает не более пяти результатов.
// @Tags Catalog
// @Produce  json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} map[string]any "Результаты поиска"
// @Router /books/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("q")

	books := h.catalog.Search(query)
	if len(books) > maxResults {
		books = books[:maxResults]
	}

	results := make([]models.SearchResult, 0, len(books))
	for _, b := range books {
		results = append(results, models.SearchResult{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Available: b.Available,
		})
	}
	log.Info("quick search", slog.String("query", query), slog.Int("count", len(results)))

	render.JSON(w, r, response.OKWithData(map[string]any{"results": results}))
}
