package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_LoadAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).
		AddRow(
			int64(1), "Seminar Hall", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "09:00:00", "11:00:00", "booked",
			"Alice", "alice@uni.edu", "555", "Professor", "Physics",
			"Quantum talk", "Lecture", 80, "",
			"", false, "", "",
			"", "", "Lecture Hall 1",
			created, created,
		).
		AddRow(
			int64(2), "VIP Lounge", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), "14:00", "15:00", "pending",
			"Bob", "bob@uni.edu", "", "", "",
			"Guest", "Visit", 10, "Coffee",
			"https://img/x.png", true, "Dr. Who", "Time lord",
			"note", "", "",
			created, nil,
		)

	mock.ExpectQuery(`SELECT id, facility, booking_date, .* FROM bookings ORDER BY id ASC`).WillReturnRows(rows)

	bookings, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	first := bookings[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, domain.FacilityID("Seminar Hall"), first.Facility)
	assert.Equal(t, "2025-03-10", first.Date.String())
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "11:00", first.EndTime.String())
	assert.Equal(t, domain.StatusBooked, first.Status)
	assert.Equal(t, domain.FacilityID("Lecture Hall 1"), first.OriginalFacility)
	assert.Equal(t, created, first.CreatedAt)

	second := bookings[1]
	assert.True(t, second.IsInviteOnly)
	assert.Equal(t, "Dr. Who", second.GuestName)
	assert.True(t, second.UpdatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LoadAll_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .* FROM bookings`).WillReturnError(errors.New("connection refused"))

	_, err := repo.LoadAll(context.Background())
	require.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_LoadAll_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .* FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.LoadAll(context.Background())
	require.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := &domain.Booking{
		ID:        7,
		Facility:  "Seminar Hall",
		Date:      "2025-03-10",
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    domain.StatusPending,
	}

	mock.ExpectExec(`INSERT INTO bookings \(id,facility,.*\) VALUES \(\$1,\$2,.*\) ON CONFLICT \(id\) DO UPDATE SET facility = EXCLUDED.facility, .*updated_at = EXCLUDED.updated_at`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), b))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_Errors(t *testing.T) {
	repo, mock := newMockRepo(t)

	err := repo.Save(context.Background(), &domain.Booking{})
	require.ErrorIs(t, err, ErrInvalidBooking)

	mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(errors.New("duplicate"))
	err = repo.Save(context.Background(), &domain.Booking{ID: 1})
	require.ErrorIs(t, err, ErrExecQuery)
}

func TestUpsertSuffix_KeepsCreatedAt(t *testing.T) {
	suffix := upsertSuffix()
	assert.NotContains(t, suffix, "created_at")
	assert.NotContains(t, suffix, "id = EXCLUDED.id")
	assert.Contains(t, suffix, "status = EXCLUDED.status")
}
