package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/conflict"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HallBooking/internal/store"
)

// Submit создает новую заявку от имени actor.
// Заявка на слот, уже занятый booked-бронированием, отклоняется сразу.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, booking domain.Booking) (*models.BookingResponse, error) {
	s.logger.Info("Submit: user=%s requests %s on %s %s-%s",
		actor.Name, booking.Facility, booking.Date, booking.StartTime, booking.EndTime)

	if strings.TrimSpace(actor.Name) == "" {
		s.logger.Warn("Submit: anonymous actor")
		return nil, fmt.Errorf("%w: Submit - anonymous actor", ErrAccessDenied)
	}
	booking.RequestedBy = actor.Name

	event, err := s.commit(ctx, string(lifecycle.EventSubmitted), func(draft *store.Store) (lifecycle.Event, error) {
		if clash := conflict.FindClash(booking, draft.All()); clash != nil {
			s.logger.Warn("Submit: slot taken by booking id=%d", clash.ID)
			return lifecycle.Event{}, fmt.Errorf("%w: slot taken by booking id=%d", lifecycle.ErrSlotClash, clash.ID)
		}
		return s.manager.Submit(draft, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submit: successfully created booking id=%d", event.After.ID)
	return models.FromDomainBooking(&event.After), nil
}

// Approve одобряет заявку, опционально переназначая зал. Только для администратора
func (s *Service) Approve(ctx context.Context, actor domain.Actor, id int64, newFacility domain.FacilityID) (*models.BookingResponse, error) {
	return s.transition(ctx, actor, id, lifecycle.Approve{NewFacility: newFacility})
}

// Reject отклоняет заявку с причиной. Только для администратора
func (s *Service) Reject(ctx context.Context, actor domain.Actor, id int64, reason string) (*models.BookingResponse, error) {
	return s.transition(ctx, actor, id, lifecycle.Reject{Reason: reason})
}

// Reopen возвращает отклоненную заявку на рассмотрение. Только для администратора
func (s *Service) Reopen(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	return s.transition(ctx, actor, id, lifecycle.Reopen{})
}

// Reassign переносит подтвержденное бронирование в другой зал. Только для администратора.
// Пересечения на новом зале не проверяются, для этого есть CheckClash.
func (s *Service) Reassign(ctx context.Context, actor domain.Actor, id int64, newFacility domain.FacilityID) (*models.BookingResponse, error) {
	return s.transition(ctx, actor, id, lifecycle.Reassign{NewFacility: newFacility})
}

// Cancel отменяет подтвержденное бронирование.
// Заявитель получает системную заметку об отмене, администратор нет.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%s", id, actor.Name)

	event, err := s.commit(ctx, string(lifecycle.EventCancelled), func(draft *store.Store) (lifecycle.Event, error) {
		current, err := find(draft, id)
		if err != nil {
			return lifecycle.Event{}, err
		}
		if err := requireOwnerOrAdmin(actor, &current); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%d", actor.Name, id)
			return lifecycle.Event{}, err
		}

		// Администратор, отменяющий собственную заявку, отменяет ее как администратор
		byRequester := !actor.IsAdmin()
		return s.manager.Apply(draft, current.Date, id, lifecycle.Cancel{ByRequester: byRequester})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(&event.After), nil
}

// UpdateStatus выбирает переход по запрошенному статусу и применяет его
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by user=%s", id, req.Status, actor.Name)

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if status == domain.StatusCancelled {
		return s.Cancel(ctx, actor, id)
	}

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%s", actor.Name)
		return nil, err
	}

	s.mu.RLock()
	current, err := find(s.store, id)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("UpdateStatus: booking id=%d not found", id)
		return nil, err
	}

	t, err := lifecycle.TransitionFor(current.Status, status, lifecycle.Options{
		NewFacility: domain.FacilityID(strings.TrimSpace(req.Facility)),
		Reason:      req.Reason,
	})
	if err != nil {
		s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
		return nil, translateError("UpdateStatus", err)
	}

	return s.transition(ctx, actor, id, t)
}

// EditDetails меняет содержательные поля заявки в статусе pending
func (s *Service) EditDetails(ctx context.Context, actor domain.Actor, id int64, req *models.EditBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("EditDetails: booking id=%d by user=%s", id, actor.Name)

	event, err := s.commit(ctx, string(lifecycle.EventEdited), func(draft *store.Store) (lifecycle.Event, error) {
		current, err := find(draft, id)
		if err != nil {
			return lifecycle.Event{}, err
		}
		if err := requireOwnerOrAdmin(actor, &current); err != nil {
			s.logger.Warn("EditDetails: access denied for user=%s to booking id=%d", actor.Name, id)
			return lifecycle.Event{}, err
		}
		return s.manager.EditDetails(draft, current.Date, id, req.ToDomainEdit())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("EditDetails: successfully updated booking id=%d", id)
	return models.FromDomainBooking(&event.After), nil
}

// UpdateAdminNote заменяет заметку администратора. Допустимо в любом статусе
func (s *Service) UpdateAdminNote(ctx context.Context, actor domain.Actor, id int64, note string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateAdminNote: booking id=%d by user=%s", id, actor.Name)

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("UpdateAdminNote: access denied for user=%s", actor.Name)
		return nil, err
	}

	event, err := s.commit(ctx, string(lifecycle.EventNoteUpdated), func(draft *store.Store) (lifecycle.Event, error) {
		current, err := find(draft, id)
		if err != nil {
			return lifecycle.Event{}, err
		}
		return s.manager.UpdateAdminNote(draft, current.Date, id, note)
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(&event.After), nil
}

// transition применяет административный переход
func (s *Service) transition(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	t lifecycle.Transition,
) (*models.BookingResponse, error) {
	op := string(t.Kind())
	s.logger.Info("%s: booking id=%d by user=%s", op, id, actor.Name)

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("%s: access denied for user=%s", op, actor.Name)
		return nil, err
	}

	event, err := s.commit(ctx, op, func(draft *store.Store) (lifecycle.Event, error) {
		current, err := find(draft, id)
		if err != nil {
			return lifecycle.Event{}, err
		}
		return s.manager.Apply(draft, current.Date, id, t)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d is now %s in %s", op, id, event.After.Status, event.After.Facility)
	return models.FromDomainBooking(&event.After), nil
}
