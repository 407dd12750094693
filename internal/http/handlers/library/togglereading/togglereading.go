// Package togglereading реализует HTTP-обработчик переключения статуса
// чтения книги.
//
// Если книга читается — чтение завершается и книга попадает в историю;
// иначе начинается новое чтение. Книга обязана существовать в каталоге.
package togglereading

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/catalog"
	"github.com/clawcat502/library/internal/http/middlewarectx"
	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/lib/sl"
	"github.com/clawcat502/library/internal/models"
	libservice "github.com/clawcat502/library/internal/services/library"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// Service описывает интерфейс бизнес-логики читательского кабинета.
type Service interface {
	ToggleReading(ctx context.Context, username string, bookID int) (libservice.ReadingEvent, models.Book, error)
}

// Handler обрабатывает запросы переключения статуса чтения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переключить статус чтения
// @Description Начинает чтение книги или завершает его, перенося книгу в историю с датой завершения.
// @Tags Library
// @Produce  json
// @Param id path int true "Идентификатор книги"
// @Success 200 {object} map[string]any "Событие перехода и книга"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить изменения"
// @Router /library/reading/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.library.togglereading"
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

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	event, book, err := h.service.ToggleReading(r.Context(), username, id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBookNotFound):
			log.Error("book not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
		case errors.Is(err, userstore.ErrUserNotFound):
			log.Error("user not found", slog.String("username", username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to toggle reading", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save"))
		}
		return
	}

	status := "reading"
	if event == libservice.ReadingFinished {
		status = "finished"
	}
	log.Info("reading toggled", slog.String("username", username),
		slog.Int("book_id", id), slog.String("status", status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": status,
		"book":   book,
	}))
}
