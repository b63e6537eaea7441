package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chaosdating/chaos-dating/internal/delivery/http/middleware"
	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/infrastructure/storage"
	"github.com/chaosdating/chaos-dating/internal/usecase/auth"
	"github.com/chaosdating/chaos-dating/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authUseCase    *auth.AuthUseCase
	profileUseCase *profile.ProfileUseCase
	pictures       *storage.PictureStore
	log            zerolog.Logger
}

func NewAuthHandler(
	authUseCase *auth.AuthUseCase,
	profileUseCase *profile.ProfileUseCase,
	pictures *storage.PictureStore,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase:    authUseCase,
		profileUseCase: profileUseCase,
		pictures:       pictures,
		log:            log,
	}
}

// RegisterForm handles GET /register/
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	if _, loggedIn := c.Get("user_id"); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.renderRegister(c, &auth.RegisterRequest{}, nil)
}

// Register handles POST /register/. Account and profile fields validate
// together; nothing persists unless everything does.
func (h *AuthHandler) Register(c *gin.Context) {
	if _, loggedIn := c.Get("user_id"); loggedIn {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req auth.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderRegister(c, &req, formErrors(err))
		return
	}

	var picturePath *string
	if file, err := c.FormFile("profile_pic"); err == nil && file != nil {
		name, err := h.pictures.Save(file)
		if err != nil {
			h.renderRegister(c, &req, map[string]string{"profile_pic": "The picture could not be stored."})
			return
		}
		picturePath = &name
	}

	result, err := h.authUseCase.Register(c.Request.Context(), &req, picturePath)
	if err != nil {
		var fieldErr *domain.FieldError
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			h.renderRegister(c, &req, map[string]string{"username": "This username is already taken."})
		case errors.As(err, &fieldErr):
			h.renderRegister(c, &req, map[string]string{fieldErr.Field: "Choose one of the offered values."})
		default:
			h.log.Error().Err(err).Msg("registration failed")
			h.renderRegister(c, &req, map[string]string{"form": "Registration failed, please try again."})
		}
		return
	}

	setSessionCookie(c, result.Token, result.ExpiresAt)
	c.Redirect(http.StatusFound, "/edit-profile/")
}

func (h *AuthHandler) renderRegister(c *gin.Context, form *auth.RegisterRequest, errs map[string]string) {
	options, err := h.profileUseCase.FormOptions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("loading form options")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	data := pageData(c, "Register")
	data["Form"] = form
	data["Errors"] = errs
	data["Options"] = options
	data["SelectedGender"], _ = strconv.Atoi(form.Gender)
	data["SelectedPronoun"], _ = strconv.Atoi(form.Pronoun)
	data["SelectedWishes"] = selectedSet(form.WishIDs)
	c.HTML(http.StatusOK, "register", data)
}

// LoginForm handles GET /login/
func (h *AuthHandler) LoginForm(c *gin.Context) {
	data := pageData(c, "Log in")
	data["Form"] = &auth.LoginRequest{}
	c.HTML(http.StatusOK, "login", data)
}

// Login handles POST /login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		data := pageData(c, "Log in")
		data["Form"] = &req
		data["Errors"] = formErrors(err)
		c.HTML(http.StatusOK, "login", data)
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		msg := "Login failed, please try again."
		if errors.Is(err, domain.ErrInvalidCredentials) {
			msg = "Invalid username or password."
		} else {
			h.log.Error().Err(err).Msg("login failed")
		}
		data := pageData(c, "Log in")
		data["Form"] = &req
		data["Errors"] = map[string]string{"form": msg}
		c.HTML(http.StatusOK, "login", data)
		return
	}

	setSessionCookie(c, result.Token, result.ExpiresAt)
	c.Redirect(http.StatusFound, safeNext(c, "/"))
}

// Logout handles GET /logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
			h.log.Error().Err(err).Msg("logout failed")
		}
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// PasswordChangeForm handles GET /password-change/
func (h *AuthHandler) PasswordChangeForm(c *gin.Context) {
	data := pageData(c, "Change Password")
	c.HTML(http.StatusOK, "password_change", data)
}

// PasswordChange handles POST /password-change/
func (h *AuthHandler) PasswordChange(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req auth.PasswordChangeRequest
	if err := c.ShouldBind(&req); err != nil {
		data := pageData(c, "Change Password")
		data["Errors"] = formErrors(err)
		c.HTML(http.StatusOK, "password_change", data)
		return
	}

	err := h.authUseCase.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword1)
	if err != nil {
		errs := map[string]string{"form": "Changing the password failed, please try again."}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			errs = map[string]string{"current_password": "Your current password was entered incorrectly."}
		} else {
			h.log.Error().Err(err).Msg("password change failed")
		}
		data := pageData(c, "Change Password")
		data["Errors"] = errs
		c.HTML(http.StatusOK, "password_change", data)
		return
	}

	data := pageData(c, "Change Password")
	data["Saved"] = true
	c.HTML(http.StatusOK, "password_change", data)
}

func selectedSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
