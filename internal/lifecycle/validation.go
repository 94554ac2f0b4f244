package lifecycle

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// validateSubmission проверяет обязательные поля новой заявки
func validateSubmission(b *domain.Booking) error {
	if err := b.Slot().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	required := []struct {
		field string
		value string
	}{
		{"requestedBy", b.RequestedBy},
		{"email", b.Email},
		{"designation", b.Designation},
		{"department", b.Department},
		{"title", b.Title},
		{"purpose", b.Purpose},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidBooking, r.field)
		}
	}

	if len(b.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidBooking, domain.MaxTitleLength)
	}

	// Для гостевой лекции нужны и имя гостя, и сведения о нем
	if b.IsGuestLecture() {
		if strings.TrimSpace(b.GuestName) == "" {
			return fmt.Errorf("%w: guestName is required for a guest lecture", ErrInvalidBooking)
		}
		if strings.TrimSpace(b.GuestDetails) == "" {
			return fmt.Errorf("%w: guestDetails is required for a guest lecture", ErrInvalidBooking)
		}
	}

	return nil
}

// validateEdit проверяет изменяемые поля
func validateEdit(edit domain.ContentEdit) error {
	if edit.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidBooking)
	}
	if edit.Title != nil && strings.TrimSpace(*edit.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidBooking)
	}
	if edit.Title != nil && len(*edit.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidBooking, domain.MaxTitleLength)
	}
	if edit.Purpose != nil && strings.TrimSpace(*edit.Purpose) == "" {
		return fmt.Errorf("%w: purpose cannot be empty", ErrInvalidBooking)
	}
	return nil
}
