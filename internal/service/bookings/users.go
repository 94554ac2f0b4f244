package bookings

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-HallBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

// Users каталог пользователей для администратора
func (s *Service) Users(ctx context.Context, actor domain.Actor) (*models.UserListResponse, error) {
	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("Users: access denied for user=%s", actor.Name)
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("Users: failed to list users: %v", err)
		return nil, fmt.Errorf("%w: Users - user repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUsers(users), nil
}

// CreateUser добавляет пользователя в каталог. Только для администратора
func (s *Service) CreateUser(ctx context.Context, actor domain.Actor, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.logger.Info("CreateUser: admin=%s, name=%s", actor.Name, req.Name)

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("CreateUser: access denied for user=%s", actor.Name)
		return nil, err
	}

	u, err := newUser(req)
	if err != nil {
		s.logger.Warn("CreateUser: validation failed: %v", err)
		return nil, err
	}

	id, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			s.logger.Warn("CreateUser: name=%s already taken", u.Name)
			return nil, fmt.Errorf("%w: name=%s", ErrUserExists, u.Name)
		}
		s.logger.Error("CreateUser: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateUser - user repository error: %v", ErrInternal, err)
	}
	u.ID = id

	s.logger.Info("CreateUser: created user id=%d, role=%s", id, u.Role)
	return models.FromDomainUser(u), nil
}

// DeleteUser удаляет пользователя. Администраторов удалить нельзя
func (s *Service) DeleteUser(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteUser: admin=%s, user id=%d", actor.Name, id)

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("DeleteUser: access denied for user=%s", actor.Name)
		return err
	}

	u, err := s.getUser(ctx, "DeleteUser", id)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		s.logger.Warn("DeleteUser: user id=%d is an admin", id)
		return fmt.Errorf("%w: user id=%d", ErrAdminUndeletable, id)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
		}
		s.logger.Error("DeleteUser: repository error: %v", err)
		return fmt.Errorf("%w: DeleteUser - user repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteUser: deleted user id=%d", id)
	return nil
}

// UpdateUserRole меняет роль пользователя. Только для администратора
func (s *Service) UpdateUserRole(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateRoleRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateUserRole: admin=%s, user id=%d, role=%s", actor.Name, id, req.Role)

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("UpdateUserRole: access denied for user=%s", actor.Name)
		return nil, err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	u, err := s.getUser(ctx, "UpdateUserRole", id)
	if err != nil {
		return nil, err
	}
	if u.Role == role {
		return models.FromDomainUser(u), nil
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
		}
		s.logger.Error("UpdateUserRole: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateUserRole - user repository error: %v", ErrInternal, err)
	}
	u.Role = role

	s.logger.Info("UpdateUserRole: user id=%d is now %s", id, role)
	return models.FromDomainUser(u), nil
}

// UpdateProfile обновляет контактные данные текущего пользователя.
// Имя не меняется: по нему бронирования привязаны к заявителю.
func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateProfile: user id=%d", actor.UserID)

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}

	u, err := s.getUser(ctx, "UpdateProfile", actor.UserID)
	if err != nil {
		return nil, err
	}
	u.Email = email
	u.Department = strings.TrimSpace(req.Department)

	if err := s.userRepo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, u.ID)
		}
		s.logger.Error("UpdateProfile: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateProfile - user repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUser(u), nil
}

func (s *Service) getUser(ctx context.Context, op string, id int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - user repository error: %v", ErrInternal, op, err)
	}
	return u, nil
}

func newUser(req *models.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}

	role := domain.RoleUser
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
		}
		role = parsed
	}

	return &domain.User{
		Name:       name,
		Email:      email,
		Role:       role,
		Department: strings.TrimSpace(req.Department),
	}, nil
}
