package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/google/uuid"       // uuid parses the token subject
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// PrincipalKey is the context key under which JWTAuth stores the
// authenticated user's id as a uuid.UUID.
const PrincipalKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context under
// PrincipalKey. The provided secret must match the one used when issuing
// tokens. Authentication runs strictly before any authorization check:
// an absent, malformed or unverifiable credential always produces a 401
// here and the request never reaches a capability check or a handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the Authorization header. A valid header starts with
			// "Bearer " followed by the JWT; anything else is an
			// authentication failure, never a permission failure.
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no authorization header provided"})
			}
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token format"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token using the HS256 signing method and our
			// secret. The callback supplies the signing key and rejects
			// tokens signed with a different algorithm.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sub, _ := claims["sub"].(string)
			userID, err := uuid.Parse(sub)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Store the subject for downstream middleware and handlers.
			c.Set(PrincipalKey, userID)
			return next(c)
		}
	}
}

// PrincipalID extracts the authenticated user's id stored by JWTAuth.
// The boolean is false when the request was not authenticated.
func PrincipalID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(PrincipalKey).(uuid.UUID)
	return id, ok
}
