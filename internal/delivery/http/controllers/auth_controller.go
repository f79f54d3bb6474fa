package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Username == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /login.
type LoginResponse struct {
	Token    string `json:"token"`
	UserRole string `json:"userRole"`
}

// RegisterRequest is the request body for POST /register.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	UserRole   string `json:"user_role"`
	Department string `json:"department"`
	FullName   string `json:"fullname"`
	MailID     string `json:"mailid"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if r.Username == "" {
		errs = append(errs, "username is required")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if r.UserRole == "" {
		errs = append(errs, "user_role is required")
	}
	if r.Department == "" {
		errs = append(errs, "department is required")
	}
	if r.FullName == "" {
		errs = append(errs, "fullname is required")
	}
	if r.MailID == "" {
		errs = append(errs, "mailid is required")
	} else if _, err := mail.ParseAddress(r.MailID); err != nil {
		errs = append(errs, "mailid must be a valid email address")
	}
	return errs
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in a publisher
// @Description Verifies the credentials and returns a signed bearer token together with the publisher's role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains token and userRole"
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 401 {object} helpers.APIResponse "error.code: WRONG_PASSWORD"
// @Failure 404 {object} helpers.APIResponse "error.code: USER_NOT_FOUND"
// @Failure 500 {object} helpers.APIResponse "error.code: TOKEN_SIGN_ERROR or UNEXPECTED_ERROR"
// @Router /login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, role, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeUserNotFound, "user not found")
		case errors.Is(err, domain.ErrWrongPassword):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeWrongPassword, "wrong password")
		case errors.Is(err, domain.ErrTokenSign):
			c.Logger.ErrorContext(r.Context(), "token signing failed", "username", req.Username, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeTokenSign, "failed to sign token")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to log in")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, UserRole: role})
}

// Register godoc
// @Summary Register a publisher
// @Description Creates a publisher account. Usernames are unique; the password is stored hashed. A welcome email is sent best-effort.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New account"
// @Success 201 {object} helpers.APIResponse "data contains the created publisher"
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	publisher, err := c.Service.Register(r.Context(), domain.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.UserRole,
		Department: req.Department,
		FullName:   req.FullName,
		MailID:     req.MailID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "username already taken")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to register")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, publisher)
}
