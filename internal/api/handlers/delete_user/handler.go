package delete_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgNotFound         = "пользователь не найден"
	msgAdminUndeletable = "администратора удалить нельзя"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("DELETE /users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor, userID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /users/{id} - Access denied: user=%s", actor.Name)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("DELETE /users/{id} - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAdminUndeletable):
			h.logger.Warn("DELETE /users/{id} - Attempt to delete admin: user_id=%d, by=%s", userID, actor.Name)
			handlers.RespondConflict(w, msgAdminUndeletable)

		default:
			h.logger.Error("DELETE /users/{id} - Failed to delete user: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted successfully: user_id=%d, admin=%s", userID, actor.Name)
	w.WriteHeader(http.StatusNoContent)
}
