// Package status реализует HTTP-обработчик переключения доступности книги.
//
// Конечная точка доступна только администратору: маршрут защищается
// middlewarectx.AdminOnlyMiddleware.
package status

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/catalog"
	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/lib/sl"
	"github.com/clawcat502/library/internal/models"
)

// Catalog описывает мутацию доступности книги в каталоге.
type Catalog interface {
	ToggleAvailability(id int) (models.Book, error)
}

// Handler обрабатывает запросы смены статуса книги.
type Handler struct {
	log     *slog.Logger
	catalog Catalog
}

// New создает новый Handler с переданными логгером и каталогом.
func New(log *slog.Logger, catalog Catalog) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Переключить доступность книги
// @Description Меняет статус книги между "доступна" и "на руках". Только для администратора.
// @Tags Catalog
// @Produce  json
// @Param id path int true "Идентификатор книги"
// @Success 200 {object} map[string]any "Обновлённая книга"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 403 {object} response.ErrorResponse "Доступно только администратору"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить каталог"
// @Router /books/{id}/status [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.status"
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

	book, err := h.catalog.ToggleAvailability(id)
	if err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			log.Error("book not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		log.Error("failed to toggle availability", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update book status"))
		return
	}

	log.Info("book status toggled", slog.Int("id", id), slog.Bool("available", book.Available))
	render.JSON(w, r, response.OKWithData(map[string]any{"book": book}))
}
