// Package clearhistory реализует HTTP-обработчик очистки истории чтения.
//
// Операция разрушительная: требуется дословная фраза подтверждения,
// иначе история остаётся без изменений.
package clearhistory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/clawcat502/library/internal/http/middlewarectx"
	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/lib/sl"
	libservice "github.com/clawcat502/library/internal/services/library"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// Request — тело запроса очистки истории.
type Request struct {
	Confirmation string `json:"confirmation" validate:"required"`
}

// Service описывает интерфейс бизнес-логики читательского кабинета.
type Service interface {
	ClearHistory(ctx context.Context, username, confirmation string) error
}

// Handler обрабатывает запросы очистки истории чтения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Очистить историю чтения
// @Description Очищает историю чтения и даты завершения после дословного подтверждения.
// @Tags Library
// @Accept  json
// @Produce  json
// @Param request body Request true "Фраза подтверждения"
// @Success 200 {object} map[string]any "История очищена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверное подтверждение"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить изменения"
// @Router /library/history/clear [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.library.clearhistory"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.ClearHistory(r.Context(), username, req.Confirmation); err != nil {
		switch {
		case errors.Is(err, libservice.ErrInvalidConfirmation):
			log.Error("invalid confirmation phrase", slog.String("username", username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid confirmation phrase, history was not cleared"))
		case errors.Is(err, userstore.ErrUserNotFound):
			log.Error("user not found", slog.String("username", username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to clear history", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save"))
		}
		return
	}

	log.Info("reading history cleared", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "reading history cleared",
	}))
}
