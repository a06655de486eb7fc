package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned on login with an unknown email or
	// a wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingFields is returned when a registration omits a required
	// field.
	ErrMissingFields = errors.New("name, email and password are required")
)

// bcryptCost matches the work factor the stored hashes were created with.
const bcryptCost = 10

// TokenIssuer issues a signed token for an authenticated subject.
type TokenIssuer interface {
	Issue(subjectID uuid.UUID) (string, error)
}

type Service struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewService(users UserRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt password hash and returns the user
// together with a freshly issued token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Login verifies the password against the stored hash and returns the user
// and a new token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// GetUser looks up a user by ID.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ResolveSubject implements auth.SubjectResolver: it confirms that the
// token subject still maps to a stored user.
func (s *Service) ResolveSubject(ctx context.Context, id uuid.UUID) error {
	_, err := s.users.GetByID(ctx, id)
	return err
}
