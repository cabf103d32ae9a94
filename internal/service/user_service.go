package service

import (
	"context"

	"accessdesk/internal/models"
	"accessdesk/internal/repository"
	"accessdesk/internal/validation"
)

// UserService provides account listing and updates.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a UserService bound to the given repository.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUserInput carries a partial account update. Empty fields are left
// unchanged.
type UpdateUserInput struct {
	ActorID   uint
	ActorRole models.Role
	TargetID  uint
	FirstName string
	LastName  string
	Email     string
	Role      models.Role
}

// UpdateUser applies a partial update to an account. Anyone may update their
// own profile fields; admins may update anyone. Role changes are admin-only.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	isAdmin := in.ActorRole == models.RoleAdmin
	if in.ActorID != in.TargetID && !isAdmin {
		return nil, models.NewForbiddenError("Admin access required")
	}
	if in.Role != "" && !isAdmin {
		return nil, models.NewForbiddenError("Only admin can change user roles")
	}
	if in.Role != "" && !in.Role.Valid() {
		return nil, models.NewValidationError("role must be one of: employee, manager, admin")
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		if err := validation.ValidateName("first name", in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		if err := validation.ValidateName("last name", in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = in.LastName
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.Role != "" {
		user.Role = in.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
