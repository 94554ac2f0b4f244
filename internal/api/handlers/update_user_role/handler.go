package update_user_role

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "пользователь не найден"
	msgInvalidRole        = "роль должна быть user или admin"
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

// Handle PATCH /api/v1/users/{userId}/role
// Body: {"role": "user|admin"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("PATCH /users/{id}/role - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateUserRole(r.Context(), actor, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /users/{id}/role - Access denied: user=%s", actor.Name)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /users/{id}/role - Invalid role: %q", req.Role)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id}/role - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /users/{id}/role - Failed to update role: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/{id}/role - Role updated successfully: user_id=%d, role=%s, admin=%s", userID, user.Role, actor.Name)
	handlers.RespondJSON(w, http.StatusOK, user)
}
