// Package read реализует HTTP-обработчик детальной информации о книге.
package read

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/models"
)

// Catalog описывает доступ к каталогу книг.
type Catalog interface {
	FindByID(id int) (models.Book, bool)
}

// Handler обрабатывает запросы одной книги каталога.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
}

// New создает новый Handler с переданными логгером и каталогом.
func New(log *slog.Logger, catalog Catalog) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Книга по идентификатору
// @Description Возвращает запись книги каталога.
// @Tags Catalog
// @Produce  json
// @Param id path int true "Идентификатор книги"
// @Success 200 {object} map[string]any "Книга"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Router /books/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	book, ok := h.catalog.FindByID(id)
	if !ok {
		log.Error("book not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("book not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{"book": book}))
}
