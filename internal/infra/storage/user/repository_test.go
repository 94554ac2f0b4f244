package user

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT id, name, email, role, department FROM users ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "department"}).
			AddRow(1, "Admin", "admin@uni.edu", "admin", "Administration").
			AddRow(2, "Alice", "alice@uni.edu", "user", "Physics"))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin())
	assert.Equal(t, domain.User{ID: 2, Name: "Alice", Email: "alice@uni.edu", Role: domain.RoleUser, Department: "Physics"}, users[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "department"}).
						AddRow(2, "Alice", "alice@uni.edu", "user", "Physics"))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
					WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "department"}))
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM users`).WillReturnError(errors.New("timeout"))
			},
			wantErr: ErrScanRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			u, err := repo.GetByID(context.Background(), 2)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Alice", u.Name)
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestRepository_Create(t *testing.T) {
	newUser := &domain.User{Name: "Carol", Email: "carol@uni.edu", Role: domain.RoleUser, Department: "Chemistry"}

	tests := []struct {
		name    string
		user    *domain.User
		setup   func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "created",
			user: newUser,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(name,email,role,department\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id`).
					WithArgs("Carol", "carol@uni.edu", "user", "Chemistry").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			wantID: 7,
		},
		{
			name: "duplicate name",
			user: newUser,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
			},
			wantErr: ErrUserExists,
		},
		{
			name: "db error",
			user: newUser,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("connection reset"))
			},
			wantErr: ErrExecQuery,
		},
		{
			name:    "empty name",
			user:    &domain.User{Email: "x@uni.edu"},
			setup:   func(mock sqlmock.Sqlmock) {},
			wantErr: ErrInvalidUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			id, err := repo.Create(context.Background(), tt.user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing or admin", affected: 0, wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(`DELETE FROM users WHERE id = \$1 AND role <> \$2`).
				WithArgs(int64(5), "admin").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), 5)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateRole(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2`).
		WithArgs("admin", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2`).
		WithArgs("user", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateRole(context.Background(), 2, domain.RoleAdmin))
	require.ErrorIs(t, repo.UpdateRole(context.Background(), 99, domain.RoleUser), ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateProfile(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE users SET email = \$1, department = \$2 WHERE id = \$3`).
		WithArgs("alice@physics.uni.edu", "Physics", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users`).
		WillReturnError(errors.New("timeout"))

	err := repo.UpdateProfile(context.Background(), &domain.User{ID: 2, Email: "alice@physics.uni.edu", Department: "Physics"})
	require.NoError(t, err)

	err = repo.UpdateProfile(context.Background(), &domain.User{ID: 2})
	require.ErrorIs(t, err, ErrExecQuery)

	err = repo.UpdateProfile(context.Background(), &domain.User{})
	require.ErrorIs(t, err, ErrInvalidUser)
	require.NoError(t, mock.ExpectationsWereMet())
}
