// Package themes реализует HTTP-обработчик списка тем каталога.
package themes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/response"
)

// Catalog описывает доступ к каталогу книг.
type Catalog interface {
	ListThemes() []string
}

// Handler обрабатывает запросы списка тем.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
}

// New создает новый Handler с переданными логгером и каталогом.
func New(log *slog.Logger, catalog Catalog) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Темы каталога
// @Description Возвращает отсортированное объединение тем всех книг.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Список тем"
// @Router /books/themes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.themes"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	themes := h.catalog.ListThemes()
	log.Info("listed themes", slog.Int("count", len(themes)))

	render.JSON(w, r, response.OKWithData(map[string]any{"themes": themes}))
}
