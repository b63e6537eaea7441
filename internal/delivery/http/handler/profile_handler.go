package handler

import (
	"errors"
	"net/http"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/infrastructure/storage"
	"github.com/chaosdating/chaos-dating/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	pictures       *storage.PictureStore
	log            zerolog.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, pictures *storage.PictureStore, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		pictures:       pictures,
		log:            log,
	}
}

// EditForm handles GET /edit-profile/
func (h *ProfileHandler) EditForm(c *gin.Context) {
	username := c.GetString("username")
	view, err := h.profileUseCase.ViewByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			notFound(c)
			return
		}
		h.log.Error().Err(err).Msg("loading own profile")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	form := &profile.EditProfileRequest{Age: view.Age}
	if view.GenderName != nil {
		form.Gender = *view.GenderName
	}
	if view.PronounName != nil {
		form.Pronoun = *view.PronounName
	}
	for _, wish := range view.Wishes {
		form.WishIDs = append(form.WishIDs, wish.ID)
	}

	h.renderEdit(c, form, nil, false)
}

// Edit handles POST /edit-profile/. Gender and pronoun values are resolved
// before the rest of the submission, creating lookup rows from free text.
func (h *ProfileHandler) Edit(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req profile.EditProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderEdit(c, &req, formErrors(err), false)
		return
	}

	var picturePath *string
	if file, err := c.FormFile("profile_pic"); err == nil && file != nil {
		name, err := h.pictures.Save(file)
		if err != nil {
			h.renderEdit(c, &req, map[string]string{"profile_pic": "The picture could not be stored."}, false)
			return
		}
		picturePath = &name
	}

	_, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, &req, picturePath)
	if err != nil {
		var fieldErr *domain.FieldError
		if errors.As(err, &fieldErr) {
			h.renderEdit(c, &req, map[string]string{fieldErr.Field: "Enter a valid value."}, false)
			return
		}
		h.log.Error().Err(err).Msg("profile update failed")
		h.renderEdit(c, &req, map[string]string{"form": "Saving the profile failed, please try again."}, false)
		return
	}

	h.renderEdit(c, &req, nil, true)
}

func (h *ProfileHandler) renderEdit(c *gin.Context, form *profile.EditProfileRequest, errs map[string]string, saved bool) {
	options, err := h.profileUseCase.FormOptions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("loading form options")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	data := pageData(c, "Edit Profile")
	data["Form"] = form
	data["Errors"] = errs
	data["Options"] = options
	data["SelectedWishes"] = selectedSet(form.WishIDs)
	data["Saved"] = saved
	c.HTML(http.StatusOK, "edit_profile", data)
}

// View handles GET /users/:username
func (h *ProfileHandler) View(c *gin.Context) {
	username := c.Param("username")

	view, err := h.profileUseCase.ViewByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			notFound(c)
			return
		}
		h.log.Error().Err(err).Msg("loading profile")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	data := pageData(c, view.Username)
	data["Profile"] = view
	c.HTML(http.StatusOK, "profile", data)
}
