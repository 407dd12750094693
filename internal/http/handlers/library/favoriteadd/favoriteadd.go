// Package favoriteadd реализует HTTP-обработчик добавления книги в избранное.
//
// Повторное добавление той же книги — не ошибка: обработчик сообщает,
// что книга уже была в избранном.
package favoriteadd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/middlewarectx"
	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/lib/sl"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	AddFavorite(ctx context.Context, username string, bookID int) (bool, error)
}

// Handler обрабатывает запросы добавления в избранное.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Добавить книгу в избранное
// @Description Добавляет книгу в избранное текущего пользователя. Повторное добавление сообщается в поле added.
// @Tags Library
// @Produce  json
// @Param id path int true "Идентификатор книги"
// @Success 200 {object} map[string]any "Результат добавления"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить изменения"
// @Router /library/favorites/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.library.favoriteadd"
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

	added, err := h.service.AddFavorite(r.Context(), username, id)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			log.Error("user not found", slog.String("username", username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to add favorite", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save"))
		return
	}

	message := "book added to favorites"
	if !added {
		message = "book is already in favorites"
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"added":   added,
		"message": message,
	}))
}
