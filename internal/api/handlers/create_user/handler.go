package create_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "укажите имя, корректный email и роль user или admin"
	msgUserExists         = "пользователь с таким именем уже существует"
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

// Handle POST /api/v1/users
// Body: {"name": "...", "email": "...", "role": "user|admin", "department": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.CreateUser(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /users - Access denied: user=%s", actor.Name)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrUserExists):
			h.logger.Warn("POST /users - User already exists: name=%s", req.Name)
			handlers.RespondConflict(w, msgUserExists)

		default:
			h.logger.Error("POST /users - Failed to create user: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users - User created successfully: user_id=%d, role=%s, admin=%s", user.ID, user.Role, actor.Name)
	handlers.RespondJSON(w, http.StatusCreated, user)
}
