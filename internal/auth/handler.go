package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

type Handler struct {
	Store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{Store: s}
}

type RegisterRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Location      string `json:"location"`
	Avatar        string `json:"avatar"`
	StatusMessage string `json:"status_message"`
}

type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

type SessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// POST /api/register
func (h *Handler) Register(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and a valid email are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	role := models.RoleBuyer
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		// Admin is never self-assignable; registration downgrades it.
		if parsed == models.RoleAdmin {
			parsed = models.RoleBuyer
		}
		role = parsed
	}

	ctx := c.Request().Context()

	if _, err := h.Store.GetUserByUsername(ctx, req.Username); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already exists"})
	} else if !errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if _, err := h.Store.GetUserByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
	} else if !errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}

	user, err := h.Store.CreateUser(ctx, models.User{
		Username:      req.Username,
		Email:         req.Email,
		Password:      string(hashed),
		Name:          name,
		Role:          role,
		Status:        models.StatusActive,
		StatusMessage: req.StatusMessage,
		Avatar:        req.Avatar,
		Location:      req.Location,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}

	token, err := GenerateToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}
	return c.JSON(http.StatusCreated, SessionResponse{User: user, Token: token})
}

// POST /api/login — accepts username or email in the username field.
func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	var (
		user models.User
		err  error
	)
	if strings.Contains(req.Username, "@") {
		user, err = h.Store.GetUserByEmail(ctx, req.Username)
	} else {
		user, err = h.Store.GetUserByUsername(ctx, req.Username)
	}
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := GenerateToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}
	return c.JSON(http.StatusOK, SessionResponse{User: user, Token: token})
}

// POST /api/logout — bearer tokens are stateless; the client discards its
// copy. Kept for API symmetry with the session-based original.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// GET /api/user — the authenticated actor's own record.
func (h *Handler) Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	user, err := h.Store.GetUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, user)
}
