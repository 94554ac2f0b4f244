package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidDateKey возвращается при некорректном формате даты
	ErrInvalidDateKey = errors.New("invalid date key format")
)

// DateKey календарная дата "YYYY-MM-DD" без часового пояса.
// Используется как непрозрачный ключ: даты сравниваются только на равенство.
type DateKey string

// NewDateKey создает DateKey из time.Time
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

// ParseDateKey принимает "YYYY-MM-DD" или RFC3339 timestamp и отбрасывает время
func ParseDateKey(s string) (DateKey, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDateKey(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDateKey(t.UTC()), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
}

// Validate проверяет формат "YYYY-MM-DD"
func (d DateKey) Validate() error {
	if _, err := time.Parse(dateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateKey, string(d))
	}
	return nil
}

// Time возвращает дату как полночь UTC
func (d DateKey) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(d))
	}
	return t, nil
}

// Month возвращает ключ месяца "YYYY-MM"
func (d DateKey) Month() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

func (d DateKey) String() string {
	return string(d)
}

// Value реализует driver.Valuer
func (d DateKey) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan реализует sql.Scanner. lib/pq отдает колонку date как time.Time
func (d *DateKey) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateKey(v)
	case string:
		*d = DateKey(v)
	case []byte:
		*d = DateKey(v)
	case nil:
		*d = ""
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateKey, src)
	}
	return nil
}
