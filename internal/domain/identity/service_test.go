package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
	failing error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, u *User) error {
	if m.failing != nil {
		return m.failing
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	u.ID = uuid.New()
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

type staticIssuer struct{}

func (staticIssuer) Issue(subjectID uuid.UUID) (string, error) {
	return "token-" + subjectID.String(), nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})

	u, token, err := svc.Register(context.Background(), "Asha", "Asha@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if u.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "s3cret" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewService(newMockUserRepo(), staticIssuer{})

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@b.com", "pw"},
		{"A", "", "pw"},
		{"A", "a@b.com", ""},
	} {
		if _, _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Register(%q, %q, %q) = %v, want ErrMissingFields", tc.name, tc.email, tc.password, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})

	if _, _, err := svc.Register(context.Background(), "A", "dup@example.com", "pw"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "B", "dup@example.com", "pw"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})

	reg, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	u, token, err := svc.Login(context.Background(), "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if u.ID != reg.ID {
		t.Errorf("Login returned user %s, want %s", u.ID, reg.ID)
	}
	if token == "" {
		t.Error("expected a token")
	}
}

func TestLoginRejections(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})
	if _, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, tc := range []struct{ name, email, password string }{
		{"unknown email", "nobody@example.com", "s3cret"},
		{"wrong password", "asha@example.com", "wrong"},
		{"empty password", "asha@example.com", ""},
	} {
		if _, _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: Login = %v, want ErrInvalidCredentials", tc.name, err)
		}
	}
}

func TestResolveSubject(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})

	u, _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.ResolveSubject(context.Background(), u.ID); err != nil {
		t.Errorf("ResolveSubject(existing) = %v", err)
	}
	if err := svc.ResolveSubject(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveSubject(missing) = %v, want ErrNotFound", err)
	}
}
