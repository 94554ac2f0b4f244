package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
	createBooking "github.com/m04kA/SMC-HallBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgFacilityNotFound   = "зал не найден"
	msgDateInPast         = "дата не может быть в прошлом"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого времени"
	msgInvalidCount       = "количество участников должно быть положительным"
	msgOverCapacity       = "количество участников превышает вместимость зала"
	msgSlotClash          = "выбранное время уже занято"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	response, err := h.useCase.Execute(r.Context(), actor, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrFacilityNotFound), errors.Is(err, bookings.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility=%s", req.Facility)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, bookings.ErrInvalidCount):
			handlers.RespondBadRequest(w, msgInvalidCount)

		case errors.Is(err, bookings.ErrOverCapacity):
			h.logger.Warn("POST /bookings - Over capacity: facility=%s, attendees=%d", req.Facility, req.ExpectedAttendees)
			handlers.RespondBadRequest(w, msgOverCapacity)

		case errors.Is(err, bookings.ErrSlotClash):
			h.logger.Warn("POST /bookings - Slot clash: facility=%s, date=%s, time=%s-%s",
				req.Facility, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotClash)

		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user=%s, error=%v", actor.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user=%s", response.ID, actor.Name)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
