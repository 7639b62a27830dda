package middleware // middleware contains reusable HTTP middleware functions

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"stockroom/internal/logger"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/utils"
)

// UserContextKey is the echo.Context key under which BearerAuth stores the
// authenticated user for downstream handlers.
const UserContextKey = "user"

// BearerAuth returns an Echo middleware that validates the bearer token on
// protected routes and injects the resolved user into the request context.
//
// A request is rejected with 401 {"error":"Unauthorized"} when the
// Authorization header is missing, the token does not decode, the token is
// older than ttl, or the decoded username no longer resolves to a user.
// Expired and malformed tokens are deliberately not distinguished to the
// caller.
func BearerAuth(users *repository.UserRepo, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			username, issuedAt, err := utils.DecodeToken(raw)
			if err != nil {
				return unauthorized(c)
			}
			if time.Since(issuedAt) > ttl {
				return unauthorized(c)
			}

			user, err := users.GetByUsername(c.Request().Context(), username)
			if err != nil {
				if err != sql.ErrNoRows {
					// A store failure during lookup still denies the request,
					// but is worth surfacing in the logs.
					logger.FromContext(c.Request().Context()).Error().
						Err(err).Str("username", username).
						Msg("auth gate user lookup failed")
				}
				return unauthorized(c)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by BearerAuth, if any.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(UserContextKey).(model.User)
	return u, ok
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
}
