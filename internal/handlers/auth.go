package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-videoshop/auth"
	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/validation"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	codeEmailTaken         = "email_taken"
	codeInvalidCredentials = "invalid_credentials"
	minPasswordLength      = 8
)

type AuthHandler struct {
	db     *gorm.DB
	signer *auth.Signer
}

func NewAuthHandler(db *gorm.DB, signer *auth.Signer) *AuthHandler {
	return &AuthHandler{db: db, signer: signer}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	v := validation.Struct(&req)
	validation.MinLength("password", req.Password, minPasswordLength, v)
	if !v.Empty() {
		invalid(c, v)
		return
	}

	ctx := c.Request.Context()
	var n int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&n).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	if n > 0 {
		httpx.JSONError(c, http.StatusConflict, codeEmailTaken, nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(c, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	user := models.User{Email: req.Email, Name: strings.TrimSpace(req.Name), Password: string(hashed)}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		httpx.StoreError(c, err)
		return
	}
	httpx.JSON(c, http.StatusCreated, gin.H{"message": "user registered", "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if v := validation.Struct(&req); !v.Empty() {
		invalid(c, v)
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(c, http.StatusUnauthorized, codeInvalidCredentials, nil)
		return
	}
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httpx.JSONError(c, http.StatusUnauthorized, codeInvalidCredentials, nil)
		return
	}

	token, exp, err := h.signer.Issue(user.ID, user.Email)
	if err != nil {
		httpx.JSONError(c, http.StatusInternalServerError, httpx.CodeInternal, nil)
		return
	}
	httpx.JSON(c, http.StatusOK, LoginResponse{Message: "login successful", Token: token, ExpiresAt: exp, User: user})
}

// Me returns the caller's account. It must run behind auth.RequireAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		httpx.JSONError(c, http.StatusUnauthorized, httpx.CodeMissingToken, nil)
		return
	}
	var user models.User
	err := h.db.WithContext(c.Request.Context()).First(&user, uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(c, http.StatusForbidden, httpx.CodeInvalidToken, nil)
		return
	}
	if err != nil {
		httpx.StoreError(c, err)
		return
	}
	// a token is bound to the account it was issued for, not only its id
	if email := auth.EmailFromContext(c.Request.Context()); !strings.EqualFold(email, user.Email) {
		httpx.JSONError(c, http.StatusForbidden, httpx.CodeInvalidToken, nil)
		return
	}
	httpx.JSON(c, http.StatusOK, user)
}
