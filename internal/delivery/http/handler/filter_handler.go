package handler

import (
	"net/http"

	"github.com/chaosdating/chaos-dating/internal/usecase/filter"
	"github.com/chaosdating/chaos-dating/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type FilterHandler struct {
	filterUseCase  *filter.FilterUseCase
	profileUseCase *profile.ProfileUseCase
	log            zerolog.Logger
}

func NewFilterHandler(filterUseCase *filter.FilterUseCase, profileUseCase *profile.ProfileUseCase, log zerolog.Logger) *FilterHandler {
	return &FilterHandler{
		filterUseCase:  filterUseCase,
		profileUseCase: profileUseCase,
		log:            log,
	}
}

// Page handles GET|POST /filter/: the full filter page with results.
func (h *FilterHandler) Page(c *gin.Context) {
	var req filter.FilterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderPage(c, &filter.FilterRequest{}, formErrors(err), nil)
		return
	}

	views, err := h.filterUseCase.Search(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("profile search failed")
		h.renderPage(c, &req, map[string]string{"form": "Searching failed, please try again."}, nil)
		return
	}

	h.renderPage(c, &req, nil, views)
}

func (h *FilterHandler) renderPage(c *gin.Context, form *filter.FilterRequest, errs map[string]string, views interface{}) {
	options, err := h.profileUseCase.FormOptions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("loading form options")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	data := pageData(c, "Browse Profiles")
	data["Form"] = form
	data["Errors"] = errs
	data["Options"] = options
	data["SelectedGenders"] = selectedSet(form.Genders)
	data["SelectedWishes"] = selectedSet(form.Wishes)
	data["Profiles"] = views
	c.HTML(http.StatusOK, "filter", data)
}

// Fragment handles /rest/filter/: the listing fragment only, for partial
// page refresh. Anything but a POST gets an empty body.
func (h *FilterHandler) Fragment(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Status(http.StatusOK)
		return
	}

	var req filter.FilterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	views, err := h.filterUseCase.Search(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("profile search failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "profile_list", gin.H{"Profiles": views})
}
