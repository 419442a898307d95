/* auth.go
 * Contains the bearer token middleware. Tokens are HS256 JWTs whose subject is the user id and whose role claim
 * is either user or admin
 * Authors: Zachary Bower
 */

package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arena-bot/api/shared"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

// Claims is the token payload
type Claims struct {
	Role shared.Role `json:"role"`
	Name string      `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{secret: secret}
}

// Issue signs a token for user valid for ttl
func (a *Authenticator) Issue(user shared.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		Name: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify parses and validates a token
// Preconditions: Receives the raw token string
// Postconditions: Returns the user the token was issued to, or ErrUnauthenticated
func (a *Authenticator) Verify(raw string) (shared.User, error) {
	if len(a.secret) == 0 {
		return shared.User{}, shared.ErrUnauthenticated
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || claims.Subject == "" {
		return shared.User{}, shared.ErrUnauthenticated
	}

	role := claims.Role
	if role != shared.RoleAdmin {
		role = shared.RoleUser
	}
	return shared.User{UserID: claims.Subject, Username: claims.Name, Role: role}, nil
}

// Authenticate rejects requests without a valid bearer token and stores the caller in the request context
func (s *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, r, shared.ErrUnauthenticated)
			return
		}

		user, err := s.auth.Verify(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects authenticated callers that are not admins
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, r, shared.ErrUnauthenticated)
			return
		}
		if !user.IsAdmin() {
			writeError(w, r, shared.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the caller stored by Authenticate
func UserFromContext(ctx context.Context) (shared.User, bool) {
	user, ok := ctx.Value(userContextKey).(shared.User)
	return user, ok
}
