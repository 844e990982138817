package http

import (
	"strings"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// Claims are the token claims issued by the identity provider. Subject is
// the user id.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// NewAuthMiddleware validates an HS256 bearer token and stores the caller's
// domain.Identity in the request locals.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "missing Authorization header")
		}
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "empty token")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return errorJSON(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		if expectedIssuer != "" && claims.Issuer != expectedIssuer {
			return errorJSON(c, fiber.StatusUnauthorized, "invalid token issuer")
		}
		id := domain.Identity{UserID: claims.Subject, DisplayName: claims.Name}
		if !id.Valid() {
			return errorJSON(c, fiber.StatusUnauthorized, "token has no subject")
		}
		c.Locals(identityKey, id)
		return c.Next()
	}
}

func identity(c *fiber.Ctx) domain.Identity {
	id, _ := c.Locals(identityKey).(domain.Identity)
	return id
}

// SignToken issues a token the middleware accepts. Used by the CLI and
// tests; production tokens come from the identity provider.
func SignToken(secret, issuer string, id domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: id.DisplayName,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
