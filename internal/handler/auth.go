package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"stockroom/internal/logger"
	"stockroom/internal/repository"
	"stockroom/internal/utils"
)

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
	Users *repository.UserRepo
}

func NewAuthHandler(users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Users: users}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type loginResp struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login exchanges username+password for a bearer token. Unknown users and
// wrong passwords both answer 401 without distinguishing which failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password are required"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password are required"})
	}

	u, err := h.Users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg("login: user lookup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token: utils.IssueToken(u.Username),
		User:  loginUser{ID: u.ID, Username: u.Username},
	})
}
