// Package notifications реализует HTTP-обработчик настроек уведомлений.
//
// Настройки заменяются целиком с семантикой чекбоксов: флаг,
// отсутствующий в запросе, декодируется в false.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/middlewarectx"
	"github.com/clawcat502/library/internal/http/response"
	"github.com/clawcat502/library/internal/lib/sl"
	"github.com/clawcat502/library/internal/models"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// Request — тело запроса с флагами уведомлений.
type Request struct {
	NewBooks        bool `json:"new_books"`
	ReturnReminders bool `json:"return_reminders"`
	Recommendations bool `json:"recommendations"`
}

// Service описывает интерфейс бизнес-логики читательского кабинета.
type Service interface {
	UpdateNotifications(ctx context.Context, username string, n models.Notifications) error
}

// Handler обрабатывает запросы настроек уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновить настройки уведомлений
// @Description Заменяет три флага уведомлений целиком. Отсутствующий флаг означает false.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body Request true "Флаги уведомлений"
// @Success 200 {object} map[string]any "Настройки обновлены"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить изменения"
// @Router /profile/notifications [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.notifications"
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

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	n := models.Notifications{
		NewBooks:        req.NewBooks,
		ReturnReminders: req.ReturnReminders,
		Recommendations: req.Recommendations,
	}
	if err := h.service.UpdateNotifications(r.Context(), username, n); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			log.Error("user not found", slog.String("username", username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save"))
		return
	}

	log.Info("notifications updated", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"notifications": n,
	}))
}
