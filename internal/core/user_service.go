package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the identity collaborator: credential checks and user
// provisioning. The core only consumes the LoginResult shape it returns.
type UserService interface {
	// Authenticate verifies credentials and returns the login shape plus the
	// derived role. Fails with a not-found kind for unknown users and a
	// validation kind for a bad password.
	Authenticate(ctx context.Context, email, password string) (*LoginResult, Role, error)

	// Register creates a user with a bcrypt password hash.
	Register(ctx context.Context, email, fullName, designation, password string) (*User, error)
}

type userService struct {
	users UserStore
}

// NewUserService constructs a UserService over the given store.
func NewUserService(users UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*LoginResult, Role, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", validationErrorf("invalid credentials")
		}
		return nil, "", err
	}
	login := u.Login()
	return &login, RoleFromDesignation(u.Designation), nil
}

func (s *userService) Register(ctx context.Context, email, fullName, designation, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || fullName == "" {
		return nil, validationErrorf("email and full name are required")
	}
	if len(password) < 8 {
		return nil, validationErrorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		Designation:  designation,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.PutUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
