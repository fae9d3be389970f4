package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
)

// Claims are the bearer token claims issued by the account service.
// The user id travels in "id"; "sub" is accepted as a fallback.
type Claims struct {
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// userID returns the id claim, or the subject when id is empty.
func (c *Claims) userID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// parseToken verifies an HS256 token and returns the caller identity.
func parseToken(secret []byte, raw string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	}
	if !token.Valid || claims.userID() == "" {
		return domain.Identity{}, fmt.Errorf("%w: token has no user id", domain.ErrAuthInvalid)
	}
	return domain.Identity{UserID: claims.userID(), Email: claims.Email}, nil
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// authenticate requires a valid bearer token when secret is set and puts
// the caller identity in the request context. An empty secret lets every
// request through as the internal caller.
func authenticate(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, r, domain.ErrAuthRequired)
				return
			}
			identity, err := parseToken(key, raw)
			if err != nil {
				writeStatus(w, r, http.StatusUnauthorized, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFrom returns the authenticated caller, or the zero identity.
func identityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey).(domain.Identity)
	return id
}
