package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
)

// CreateUserInput is the body of POST /users.
type CreateUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"max=120"`
	Photo string `json:"photo" validate:"omitempty,url"`
}

// CreateUserResult answers a sign-in registration.
type CreateUserResult struct {
	repositories.InsertResult
	Message string `json:"-"`
}

// UserService manages marketplace accounts.
type UserService struct {
	users repositories.UserRepository
	now   func() time.Time
}

func NewUserService(users repositories.UserRepository, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, now: now}
}

// Register stores the caller's account on first sign-in. A second call for
// the same email leaves the stored record untouched.
func (s *UserService) Register(ctx context.Context, caller string, in CreateUserInput) (CreateUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != caller {
		return CreateUserResult{}, fail(ErrForbidden, "You can only register your own account")
	}

	now := s.now().UTC()
	u := &models.User{
		Email:         email,
		Name:          in.Name,
		Photo:         in.Photo,
		Role:          models.RoleUser,
		AccountStatus: models.AccountAvailable,
		CreatedAt:     now,
		LastLogin:     now,
	}
	res, err := s.users.InsertIfAbsent(ctx, u)
	if err != nil {
		return CreateUserResult{}, storeErr("register user", err)
	}
	out := CreateUserResult{InsertResult: res, Message: "User created"}
	if !res.Created {
		out.Message = "User already exists"
	}
	return out, nil
}

// TouchLogin refreshes the caller's lastLogin.
func (s *UserService) TouchLogin(ctx context.Context, caller string) (repositories.UpdateResult, error) {
	res, err := s.users.TouchLastLogin(ctx, caller, s.now().UTC())
	if err != nil {
		return res, storeErr("touch last login", err)
	}
	return res, nil
}

// Role returns the stored role of email, or "" when no user exists.
func (s *UserService) Role(ctx context.Context, email string) (string, error) {
	role, _, err := s.RoleOf(ctx, email)
	return role, err
}

// RoleOf implements rbac.RoleLookup.
func (s *UserService) RoleOf(ctx context.Context, email string) (string, bool, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr("find user", err)
	}
	return u.Role, true, nil
}

// Me returns the caller's own record.
func (s *UserService) Me(ctx context.Context, caller string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, caller)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fail(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return u, nil
}

// NonAdmins lists every user whose role is not admin.
func (s *UserService) NonAdmins(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx, repositories.UserFilter{RoleNot: models.RoleAdmin})
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

// AvailableDecorators lists decorators that can take new assignments.
func (s *UserService) AvailableDecorators(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx, repositories.UserFilter{
		Role:          models.RoleDecorator,
		AccountStatus: models.AccountAvailable,
	})
	if err != nil {
		return nil, storeErr("list decorators", err)
	}
	return users, nil
}

func (s *UserService) SetAccountStatus(ctx context.Context, id, status string) (repositories.UpdateResult, error) {
	res, err := s.users.SetAccountStatus(ctx, id, status)
	if err != nil {
		return res, storeErr("set account status", err)
	}
	return res, nil
}

func (s *UserService) SetRole(ctx context.Context, id, role string) (repositories.UpdateResult, error) {
	res, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return res, storeErr("set role", err)
	}
	return res, nil
}

// PromoteByEmail sets a role without going through the HTTP guard. Used by
// the user:role command to bootstrap the first admin.
func (s *UserService) PromoteByEmail(ctx context.Context, email, role string) (repositories.UpdateResult, error) {
	res, err := s.users.SetRoleByEmail(ctx, strings.ToLower(email), role)
	if err != nil {
		return res, storeErr("set role", err)
	}
	if res.Matched == 0 {
		return res, fail(ErrNotFound, "User not found")
	}
	return res, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	res, err := s.users.Delete(ctx, id)
	if err != nil {
		return res, storeErr("delete user", err)
	}
	return res, nil
}
