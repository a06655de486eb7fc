package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

// UserIDKey is the request-context key under which the guard stores the
// verified subject's user ID.
const UserIDKey contextKey = "user_id"

// SubjectResolver checks that a token subject still maps to a stored user.
// It is implemented by the identity service; the narrow interface keeps this
// package free of a dependency on the identity domain.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, id uuid.UUID) error
}

// Verifier verifies a bearer token and returns the embedded subject ID.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Middleware returns the access guard: it extracts a bearer token from the
// Authorization header, verifies it, resolves the subject against the
// credential store, and attaches the user ID to the request context. Every
// failure is a 401; the guard has no other side effects.
func Middleware(verifier Verifier, resolver SubjectResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			subjectID, err := verifier.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			if err := resolver.ResolveSubject(c.Request().Context(), subjectID); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, user not found")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, subjectID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// CurrentUserID returns the verified user ID the guard attached to the
// request context, or uuid.Nil when the request is unauthenticated.
func CurrentUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}
