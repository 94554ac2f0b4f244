package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// Repository каталог пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает всех пользователей, отсортированных по id
func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := psqlbuilder.Select("id", "name", "email", "role", "department").
		From("users").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Department); err != nil {
			return nil, fmt.Errorf("%w: List - scan user: %v", ErrScanRow, err)
		}
		u.Role = domain.Role(role)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query, args, err := psqlbuilder.Select("id", "name", "email", "role", "department").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	var role string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &role, &u.Department)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}
	u.Role = domain.Role(role)

	return &u, nil
}

// Count возвращает количество пользователей
func (r *Repository) Count(ctx context.Context) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("users").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Create добавляет пользователя и возвращает присвоенный id
func (r *Repository) Create(ctx context.Context, u *domain.User) (int64, error) {
	if u == nil || u.Name == "" {
		return 0, fmt.Errorf("%w: Create - empty user", ErrInvalidUser)
	}

	query, args, err := psqlbuilder.Insert("users").
		Columns("name", "email", "role", "department").
		Values(u.Name, u.Email, string(u.Role), u.Department).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: Create - name=%s", ErrUserExists, u.Name)
		}
		return 0, fmt.Errorf("%w: Create - execute query: %v", ErrExecQuery, err)
	}

	return id, nil
}

// Delete удаляет пользователя. Администраторов удалить нельзя:
// для них, как и для отсутствующего id, возвращается ErrUserNotFound.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("users").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"role": string(domain.RoleAdmin)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "Delete", query, args)
}

// UpdateRole меняет роль пользователя
func (r *Repository) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	query, args, err := psqlbuilder.Update("users").
		Set("role", string(role)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRole - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateRole", query, args)
}

// UpdateProfile обновляет контактные данные пользователя (email, department)
func (r *Repository) UpdateProfile(ctx context.Context, u *domain.User) error {
	if u == nil || u.ID <= 0 {
		return fmt.Errorf("%w: UpdateProfile - missing id", ErrInvalidUser)
	}

	query, args, err := psqlbuilder.Update("users").
		Set("email", u.Email).
		Set("department", u.Department).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateProfile", query, args)
}

// execOne выполняет запрос, который должен затронуть ровно одну строку
func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
