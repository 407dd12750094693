// Package featured реализует HTTP-обработчик рекомендованных книг
// главной страницы.
package featured

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
	Featured(ids []int) []models.Book
	Len() int
}

// Handler обрабатывает запросы рекомендованных книг.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
	ids     []int // Идентификаторы рекомендованных книг из конфигурации
}

// New создает новый Handler с переданными логгером, каталогом и
// списком рекомендованных идентификаторов.
func New(log *slog.Logger, catalog Catalog, ids []int) *Handler {
	return &Handler{log: log, catalog: catalog, ids: ids}
}

// ServeHTTP godoc
// @Summary Рекомендованные книги
// @Description Возвращает рекомендованные книги и общий размер каталога. Если рекомендаций меньше трех, список добивается первыми книгами каталога.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Рекомендованные книги"
// @Router /books/featured [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.featured"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	books := h.catalog.Featured(h.ids)
	log.Info("featured books selected", slog.Int("count", len(books)))

	render.JSON(w, r, response.OKWithData(map[string]any{
		"books":       books,
		"total_books": h.catalog.Len(),
	}))
}
