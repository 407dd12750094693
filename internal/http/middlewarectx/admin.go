package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clawcat502/library/internal/http/response"
)

// AdminOnlyMiddleware пропускает запрос дальше только когда имя
// пользователя в контексте совпадает с именем администратора.
// Остальным возвращает HTTP 403 Forbidden.
func AdminOnlyMiddleware(adminUsername string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminOnlyMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			username, ok := r.Context().Value(User).(string)
			if !ok || username != adminUsername {
				log.Error("admin-only endpoint requested by non-admin",
					slog.String("username", username))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
