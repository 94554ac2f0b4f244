package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/psqlbuilder"
)

// columns порядок колонок совпадает с порядком в scanBooking и values
var columns = []string{
	"id",
	"facility",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"requested_by",
	"email",
	"phone",
	"designation",
	"department",
	"title",
	"purpose",
	"expected_attendees",
	"additional_requirements",
	"thumbnail_url",
	"is_invite_only",
	"guest_name",
	"guest_details",
	"admin_notes",
	"rejection_reason",
	"original_facility",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Хранилище в памяти загружается из него при старте и пишет в него каждое изменение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LoadAll возвращает все бронирования в порядке идентификаторов
func (r *Repository) LoadAll(ctx context.Context) ([]domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: LoadAll - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LoadAll - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Save вставляет бронирование или перезаписывает существующее с тем же id.
// Идентификатор назначает хранилище в памяти, поэтому он обязателен.
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) error {
	if booking == nil || booking.ID <= 0 {
		return fmt.Errorf("%w: Save - booking id is required", ErrInvalidBooking)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(columns...).
		Values(values(booking)...).
		Suffix(upsertSuffix()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

func values(b *domain.Booking) []interface{} {
	return []interface{}{
		b.ID,
		string(b.Facility),
		b.Date,
		b.StartTime,
		b.EndTime,
		string(b.Status),
		b.RequestedBy,
		b.Email,
		b.Phone,
		b.Designation,
		b.Department,
		b.Title,
		b.Purpose,
		b.ExpectedAttendees,
		b.AdditionalRequirements,
		b.ThumbnailURL,
		b.IsInviteOnly,
		b.GuestName,
		b.GuestDetails,
		b.AdminNotes,
		b.RejectionReason,
		string(b.OriginalFacility),
		b.CreatedAt,
		b.UpdatedAt,
	}
}

// upsertSuffix ON CONFLICT обновляет все колонки, кроме id и created_at
func upsertSuffix() string {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func scanBooking(rows *sql.Rows) (domain.Booking, error) {
	var booking domain.Booking
	var facility, status, originalFacility string
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&booking.ID,
		&facility,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&status,
		&booking.RequestedBy,
		&booking.Email,
		&booking.Phone,
		&booking.Designation,
		&booking.Department,
		&booking.Title,
		&booking.Purpose,
		&booking.ExpectedAttendees,
		&booking.AdditionalRequirements,
		&booking.ThumbnailURL,
		&booking.IsInviteOnly,
		&booking.GuestName,
		&booking.GuestDetails,
		&booking.AdminNotes,
		&booking.RejectionReason,
		&originalFacility,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}

	booking.Facility = domain.FacilityID(facility)
	booking.Status = domain.BookingStatus(status)
	booking.OriginalFacility = domain.FacilityID(originalFacility)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}
