package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
	"github.com/VitalCareServices/clinic-scheduler/internal/middleware"
	ucAuth "github.com/VitalCareServices/clinic-scheduler/internal/usecase/auth"
	"github.com/VitalCareServices/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	registerUC *ucAuth.RegisterUser
	loginUC    *ucAuth.Login
	refreshUC  *ucAuth.Refresh
}

func NewAuthHandler(
	registerUC *ucAuth.RegisterUser,
	loginUC *ucAuth.Login,
	refreshUC *ucAuth.Refresh,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid registration data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	user, err := h.registerUC.Execute(c.Request.Context(), ucAuth.RegisterInput{
		Email:    email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid login data.")
		return
	}

	tokens, err := h.loginUC.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid refresh data.")
		return
	}

	accessToken, err := h.refreshUC.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Me echoes the verified claim back to the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    c.MustGet(middleware.ContextUserID),
			"email": c.MustGet(middleware.ContextUserEmail),
			"role":  c.MustGet(middleware.ContextUserRole),
		},
	})
}
