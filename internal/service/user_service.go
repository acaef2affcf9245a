package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/password"
)

// ── user errors ──

var (
	ErrUserNotFound     = pkgerrors.New(pkgerrors.KindNotFound, 20003, "User not found")
	ErrCINTaken         = pkgerrors.New(pkgerrors.KindConflict, 20004, "cin already exists")
	ErrEmailTaken       = pkgerrors.New(pkgerrors.KindConflict, 20005, "email already exists")
	ErrEmptyPassword    = pkgerrors.New(pkgerrors.KindValidation, 20006, "Password cannot be empty")
	ErrIdentityRequired = pkgerrors.New(pkgerrors.KindValidation, 20009,
		"first_name, last_name, email and cin are required when user_id is not provided")
)

// UserService account management
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id int) (*dto.UserResponse, error)
	List(ctx context.Context, q *dto.PageQuery) ([]dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	hasher *password.Hasher
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, hasher *password.Hasher, logger *zap.Logger) UserService {
	return &userService{repo: repo, hasher: hasher, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := createAccount(ctx, s.repo, s.hasher, identity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CIN:       req.CIN,
		Password:  req.Password,
	}, req.Role)
	if err != nil {
		if !isBusiness(err) {
			s.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get user", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, q *dto.PageQuery) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx, toPage(*q))
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

// ── accounts ──

// identity fields needed to open an account.
type identity struct {
	FirstName string
	LastName  string
	Email     string
	CIN       string
	Password  string
}

func (id identity) complete() bool {
	return strings.TrimSpace(id.FirstName) != "" &&
		strings.TrimSpace(id.LastName) != "" &&
		strings.TrimSpace(id.Email) != "" &&
		strings.TrimSpace(id.CIN) != ""
}

// createAccount checks CIN then email uniqueness and stores a bcrypt hash of
// the password, or of the CIN when no password is given.
func createAccount(ctx context.Context, repo *repository.Repository, hasher *password.Hasher, id identity, role string) (*model.User, error) {
	if _, err := repo.User.GetByCIN(ctx, id.CIN); err == nil {
		return nil, ErrCINTaken.Messagef("User with CIN %s already exists", id.CIN)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := repo.User.GetByEmail(ctx, id.Email); err == nil {
		return nil, ErrEmailTaken.Messagef("User with email %s already exists", id.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plain := id.Password
	if strings.TrimSpace(plain) == "" {
		plain = id.CIN
	}
	hash, err := hasher.Hash(plain)
	if err != nil {
		if errors.Is(err, password.ErrEmpty) {
			return nil, ErrEmptyPassword
		}
		return nil, err
	}

	user := &model.User{
		Email:        id.Email,
		PasswordHash: hash,
		FirstName:    id.FirstName,
		LastName:     id.LastName,
		Role:         role,
		CIN:          id.CIN,
		IsActive:     true,
	}
	if err := repo.User.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// resolveAccount returns the existing user named by userID, or opens a new one.
func resolveAccount(ctx context.Context, repo *repository.Repository, hasher *password.Hasher, userID *int, id identity, role string) (*model.User, error) {
	if userID != nil {
		user, err := repo.User.GetByID(ctx, *userID)
		if err := checkRef(err, "User", *userID); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !id.complete() {
		return nil, ErrIdentityRequired
	}
	return createAccount(ctx, repo, hasher, id, role)
}

// applyIdentity updates the user's names and email, rejecting an email owned by someone else.
func applyIdentity(ctx context.Context, repo *repository.Repository, user *model.User, first, last, email *string) (bool, error) {
	changed := false
	if first != nil && *first != user.FirstName {
		user.FirstName = *first
		changed = true
	}
	if last != nil && *last != user.LastName {
		user.LastName = *last
		changed = true
	}
	if email != nil && *email != user.Email {
		other, err := repo.User.GetByEmail(ctx, *email)
		if err == nil && other.ID != user.ID {
			return false, ErrEmailTaken.Messagef("User with email %s already exists", *email)
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		user.Email = *email
		changed = true
	}
	return changed, nil
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		CIN:        u.CIN,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
