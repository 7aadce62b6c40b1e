package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"profilehub/internal/auth"
	"profilehub/internal/domain"
	"profilehub/internal/repository"
)

// RegisterInput carries the credentials and initial profile fields for a
// new account.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Occupation string
	Gender     string
	Address    string
	Phone      string
	Status     string
	Battery    int
	Remote     bool
	Signal     int
}

// UserService owns the credential workflow: registration and login, both
// ending in a signed session token.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type userService struct {
	users      repository.UserRepository
	tokens     *auth.TokenIssuer
	bcryptCost int
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenIssuer, bcryptCost int) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return "", validationError("email is required")
	}
	if input.Password == "" {
		return "", validationError("password is required")
	}

	// duplicate check up front; the unique constraint backstops the race
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", conflictError("email exists")
	} else if !isNotFound(err) {
		return "", storeError("check existing email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return "", storeError("hash password", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Occupation:   input.Occupation,
		Gender:       input.Gender,
		Address:      input.Address,
		Phone:        input.Phone,
		Status:       input.Status,
		Battery:      input.Battery,
		Remote:       input.Remote,
		Signal:       input.Signal,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return "", conflictError("email exists")
		}
		return "", storeError("create user", err)
	}

	token, err := s.tokens.Sign(user.Email, id)
	if err != nil {
		return "", storeError("issue token", err)
	}
	return token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", validationError("email is required")
	}
	if password == "" {
		return "", validationError("password is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", notFoundError("account not found")
		}
		return "", storeError("lookup account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", authError("password mismatch with email: " + email)
		}
		return "", storeError("compare password", err)
	}

	token, err := s.tokens.Sign(user.Email, user.ID)
	if err != nil {
		return "", storeError("issue token", err)
	}
	return token, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
