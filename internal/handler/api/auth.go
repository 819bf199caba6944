package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/tlind/bookmarket/internal/domain"
	"github.com/tlind/bookmarket/internal/middleware"
)

// AuthHandler serves account and session endpoints.
type AuthHandler struct {
	users         domain.UserService
	validate      *validator.Validate
	secureCookies bool
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users domain.UserService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		users:         users,
		validate:      validator.New(),
		secureCookies: secureCookies,
	}
}

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// signupRequest carries the signup form fields. Field order matters:
// validation failures are reported one at a time, first field first.
type signupRequest struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	AccountType     string `validate:"required,oneof=buyer seller"`
	Terms           bool   `validate:"required"`
}

func signupValidationMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		if fe.Field() == "Terms" {
			return "Please accept the terms and conditions"
		}
		return "Please fill in all fields"
	}
	switch fe.Field() {
	case "Email":
		return "Please enter a valid email address"
	case "Password":
		return "Password must be at least 8 characters long"
	case "ConfirmPassword":
		return "Passwords do not match"
	case "AccountType":
		return "Invalid account type selected"
	}
	return "Please fill in all fields"
}

// Signup handles POST /api/signup: validates the form, creates the
// account, and opens a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, r, domain.Invalid("auth.signup", "Invalid form data"))
		return
	}

	req := signupRequest{
		FirstName:       r.PostFormValue("firstName"),
		LastName:        r.PostFormValue("lastName"),
		Email:           r.PostFormValue("email"),
		Phone:           r.PostFormValue("phone"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		AccountType:     r.PostFormValue("accountType"),
		Terms:           r.PostFormValue("terms") != "",
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			Error(w, r, domain.Invalid("auth.signup", signupValidationMessage(verrs[0])))
			return
		}
		Error(w, r, domain.Invalid("auth.signup", "Please fill in all fields"))
		return
	}

	if !phonePattern.MatchString(req.Phone) {
		Error(w, r, domain.Invalid("auth.signup", "Please enter a valid phone number"))
		return
	}

	user, err := h.users.Register(r.Context(), domain.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      domain.UserRole(req.AccountType),
	})
	if err != nil {
		Error(w, r, err)
		return
	}

	token, err := h.users.CreateSession(r.Context(), user.ID)
	if err != nil {
		Error(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, token, h.secureCookies)

	OK(w, http.StatusCreated, "Account created successfully", map[string]any{
		"user_id":   user.ID,
		"name":      user.DisplayName(),
		"email":     user.Email,
		"user_type": user.Role,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, r, domain.Invalid("auth.login", "Invalid form data"))
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if email == "" || password == "" {
		Error(w, r, domain.Invalid("auth.login", "Please fill in all fields"))
		return
	}
	if h.validate.Var(email, "email") != nil {
		Error(w, r, domain.Invalid("auth.login", "Please enter a valid email address"))
		return
	}

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		Error(w, r, err)
		return
	}

	token, err := h.users.CreateSession(r.Context(), user.ID)
	if err != nil {
		Error(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, token, h.secureCookies)

	OK(w, http.StatusOK, "Login successful", map[string]any{
		"user_id":   user.ID,
		"name":      user.DisplayName(),
		"email":     user.Email,
		"user_type": user.Role,
	})
}

// Logout handles POST /api/logout. Deleting an unknown session is fine;
// the cookie gets cleared either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.users.DeleteSession(r.Context(), cookie.Value); err != nil {
			Error(w, r, err)
			return
		}
	}

	middleware.ClearSessionCookie(w, h.secureCookies)
	OK(w, http.StatusOK, "Logged out successfully", nil)
}
