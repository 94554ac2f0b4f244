// Package capacity проверяет количество участников против вместимости зала.
// Вызывается при создании и редактировании заявки, но не при одобрении:
// переназначение зала администратором не перепроверяет вместимость.
package capacity

import (
	"fmt"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// Validator проверяет вместимость по каталогу залов
type Validator struct {
	catalog         *domain.Catalog
	defaultCapacity int
}

// NewValidator создает валидатор. defaultCapacity используется для залов без
// объявленной вместимости или отсутствующих в каталоге
func NewValidator(catalog *domain.Catalog, defaultCapacity int) *Validator {
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultFacilityCapacity
	}
	return &Validator{
		catalog:         catalog,
		defaultCapacity: defaultCapacity,
	}
}

// CapacityOf возвращает вместимость зала
func (v *Validator) CapacityOf(facility domain.FacilityID) int {
	f, ok := v.catalog.Get(facility)
	if !ok || f.Capacity <= 0 {
		return v.defaultCapacity
	}
	return f.Capacity
}

// Validate проверяет expectedAttendees для зала
func (v *Validator) Validate(expectedAttendees int, facility domain.FacilityID) error {
	if expectedAttendees <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, expectedAttendees)
	}

	capacity := v.CapacityOf(facility)
	if expectedAttendees > capacity {
		return fmt.Errorf("%w: %d > %d for %s", ErrOverCapacity, expectedAttendees, capacity, facility)
	}

	return nil
}
