package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prosetii/club-roster/internal/config"
	"github.com/prosetii/club-roster/internal/model"
	"github.com/prosetii/club-roster/internal/queue"
	"github.com/prosetii/club-roster/internal/repository"
	queue_publisher "github.com/prosetii/club-roster/internal/service"
	"github.com/prosetii/club-roster/internal/utils"
)

// minPasswordLen is the minimum accepted password length for registration,
// admin-created accounts and password changes.
const minPasswordLen = 6

const dbTimeout = 5 * time.Second

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"` // student | admin, defaults to student
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Register: create a user record and report its id. Unlike login, this does
// not issue a token; the front end logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password are required"})
	}
	if len(req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 6 characters long"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleStudent {
		role = model.RoleStudent
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	uid, err := h.Users.Create(ctx, &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        strings.TrimSpace(req.Email),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	// Best effort: registration succeeds even when the broker is down.
	_ = queue_publisher.PublishMemberRegistered(ctx, queue.MemberRegisteredEvent{
		UserID:       uid,
		Username:     req.Username,
		Role:         role,
		RegisteredAt: time.Now().UTC(),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"userId":  uid,
	})
}

// Login: verify credentials and return a signed access token. Unknown
// username, inactive account and wrong password all answer the same 401 so
// the response does not reveal which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	if err := h.Users.UpdateLastLogin(ctx, u.ID); err != nil {
		// Login still succeeds; the stamp is informational.
		c.Logger().Warnf("update last_login for user %d: %v", u.ID, err)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, u.Role, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   access.Token,
		"user":    userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
	})
}

// Verify: protected echo of the claims the gate attached. Reaching this
// handler means the token already passed signature and expiry checks.
func (h *AuthHandler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"valid": true,
		"user": userPart{
			ID:       currentUserID(c),
			Username: currentUsername(c),
			Role:     currentRole(c),
		},
	})
}

// Logout: tokens are stateless, so there is nothing to revoke server-side.
// The front end drops its stored token on this response.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

// ----- context helpers -----

func currentUserID(c echo.Context) uint64 {
	id, _ := c.Get("user_id").(uint64)
	return id
}

func currentUsername(c echo.Context) string {
	s, _ := c.Get("username").(string)
	return s
}

func currentRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}
