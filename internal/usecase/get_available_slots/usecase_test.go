package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticBookings []domain.Booking

func (s staticBookings) BookingsOn(ctx context.Context, date types.DateKey) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range s {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out
}

func newUseCase(now time.Time, bookings ...domain.Booking) *UseCase {
	catalog := domain.NewCatalog([]domain.Facility{{ID: "Hall A", Capacity: 200}})
	cfg := Config{
		DayStart:                "09:00",
		DayEnd:                  "13:00",
		SlotDurationMinutes:     60,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 30,
	}
	return NewUseCase(staticBookings(bookings), catalog, cfg, nopLogger{}).
		WithTimeProvider(fixedClock{now: now})
}

func booked(id int64, start, end string, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:        id,
		Facility:  "Hall A",
		Date:      "2025-03-01",
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)

	uc := newUseCase(now,
		booked(1, "10:30", "11:00", domain.StatusBooked),
		booked(2, "12:00", "13:00", domain.StatusPending),
	)

	resp, err := uc.Execute(ctx, &Request{Facility: "Hall A", Date: "2025-03-01"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	require.NotNil(t, resp.Slots[1].HeldBy)
	assert.Equal(t, int64(1), *resp.Slots[1].HeldBy)
	assert.True(t, resp.Slots[2].Available)
	assert.True(t, resp.Slots[3].Available, "pending bookings do not hold slots")
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[3].EndTime)
}

func TestUseCase_Today(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 45, 0, 0, time.UTC)
	uc := newUseCase(now)

	resp, err := uc.Execute(context.Background(), &Request{Facility: "Hall A", Date: "2025-03-01"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[0].StartTime)
}

func TestUseCase_Errors(t *testing.T) {
	now := time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)
	uc := newUseCase(now)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "missing facility", req: Request{Date: "2025-03-01"}, wantErr: ErrInvalidInput},
		{name: "bad date", req: Request{Facility: "Hall A", Date: "03/01/2025"}, wantErr: ErrInvalidInput},
		{name: "unknown facility", req: Request{Facility: "Roof", Date: "2025-03-01"}, wantErr: ErrFacilityNotFound},
		{name: "past date", req: Request{Facility: "Hall A", Date: "2025-02-19"}, wantErr: ErrInvalidDate},
		{name: "too far ahead", req: Request{Facility: "Hall A", Date: "2025-04-01"}, wantErr: ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := uc.Execute(context.Background(), &req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
