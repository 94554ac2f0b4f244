package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/store"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

func b(id int64, facility domain.FacilityID, date, start, end string, status domain.BookingStatus, by string) domain.Booking {
	return domain.Booking{
		ID:          id,
		Facility:    facility,
		Date:        types.DateKey(date),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Status:      status,
		RequestedBy: by,
		Department:  "Physics",
		Title:       "t",
	}
}

func fixture(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Load([]domain.Booking{
		b(1, "Hall A", "2025-03-01", "14:00", "15:00", domain.StatusBooked, "Alice"),
		b(2, "Hall A", "2025-03-01", "09:00", "10:00", domain.StatusBooked, "Bob"),
		b(3, "Hall B", "2025-03-02", "10:00", "11:00", domain.StatusPending, "Alice"),
		b(4, "Hall A", "2025-04-10", "10:00", "11:00", domain.StatusCancelled, "Carol"),
		b(5, "Hall B", "2025-03-01", "10:00", "11:00", domain.StatusRejected, "Alice"),
	})
	require.NoError(t, err)
	return s
}

func TestFlattenByUser(t *testing.T) {
	s := fixture(t)
	before := s.Version()

	flat := Flatten(s)
	require.Len(t, flat, 5)

	alice := ByUser(flat, "Alice")
	require.Len(t, alice, 3)
	for _, got := range alice {
		assert.Equal(t, "Alice", got.RequestedBy)
		want, err := s.Find(got.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Empty(t, ByUser(flat, "alice"))
	assert.Equal(t, before, s.Version())
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(Flatten(fixture(t)))

	assert.Equal(t, map[domain.BookingStatus]int{
		domain.StatusPending:   1,
		domain.StatusBooked:    2,
		domain.StatusRejected:  1,
		domain.StatusCancelled: 1,
	}, counts)

	empty := StatusCounts(nil)
	assert.Len(t, empty, 4)
	assert.Zero(t, empty[domain.StatusBooked])
}

func TestByFacilityPerDay(t *testing.T) {
	schedule := ByFacilityPerDay(Flatten(fixture(t)), "2025-03-01")

	require.Len(t, schedule, 1)
	hallA := schedule["Hall A"]
	require.Len(t, hallA, 2)
	assert.Equal(t, int64(2), hallA[0].ID)
	assert.Equal(t, int64(1), hallA[1].ID)
}

func TestBookedPerFacility(t *testing.T) {
	got := BookedPerFacility(Flatten(fixture(t)))
	assert.Equal(t, map[domain.FacilityID]int{"Hall A": 2}, got)
}

func TestGroupings(t *testing.T) {
	flat := Flatten(fixture(t))
	flat[0].Department = ""

	assert.Equal(t, map[string]int{"2025-03": 4, "2025-04": 1}, GroupByMonth(flat))
	assert.Equal(t, map[string]int{"Physics": 4, domain.UnknownDepartment: 1}, GroupByDepartment(flat))
}

func TestUpcomingPublic(t *testing.T) {
	flat := []domain.Booking{
		b(1, "Hall A", "2025-03-05", "14:00", "15:00", domain.StatusBooked, "Alice"),
		b(2, "Hall A", "2025-03-01", "09:00", "10:00", domain.StatusBooked, "Bob"),
		b(3, "Hall B", "2025-03-05", "10:00", "11:00", domain.StatusBooked, "Alice"),
		b(4, "Hall A", "2025-02-28", "10:00", "11:00", domain.StatusBooked, "Carol"),
		b(5, "Hall B", "2025-03-06", "10:00", "11:00", domain.StatusPending, "Alice"),
		b(6, "Hall B", "2025-03-07", "10:00", "11:00", domain.StatusBooked, "Alice"),
	}
	flat[5].IsInviteOnly = true

	got := UpcomingPublic(flat, "2025-03-01")
	ids := make([]int64, 0, len(got))
	for _, g := range got {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids)
	assert.Equal(t, int64(1), flat[0].ID)
}

func TestPaginate(t *testing.T) {
	flat := make([]domain.Booking, 0, 20)
	for i := int64(1); i <= 20; i++ {
		flat = append(flat, b(i, "Hall A", "2025-03-01", "10:00", "11:00", domain.StatusPending, "Alice"))
	}

	tests := []struct {
		name      string
		page      int
		limit     int
		wantLen   int
		wantFirst int64
	}{
		{name: "first page", page: 1, limit: 8, wantLen: 8, wantFirst: 1},
		{name: "last partial page", page: 3, limit: 8, wantLen: 4, wantFirst: 17},
		{name: "past the end", page: 4, limit: 8, wantLen: 0},
		{name: "defaults", page: 0, limit: 0, wantLen: domain.DefaultPageSize, wantFirst: 1},
		{name: "max int page", page: math.MaxInt64, limit: 8, wantLen: 0},
		{name: "max int page and limit", page: math.MaxInt64, limit: math.MaxInt64, wantLen: 0},
		{name: "max int limit", page: 1, limit: math.MaxInt64, wantLen: 20, wantFirst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total := Paginate(flat, tt.page, tt.limit)
			assert.Equal(t, 20, total)
			require.Len(t, page, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page[0].ID)
			}
		})
	}
}
