package handler

import (
	"net/http"

	"github.com/chaosdating/chaos-dating/internal/usecase/filter"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type PagesHandler struct {
	filterUseCase *filter.FilterUseCase
	log           zerolog.Logger
}

func NewPagesHandler(filterUseCase *filter.FilterUseCase, log zerolog.Logger) *PagesHandler {
	return &PagesHandler{filterUseCase: filterUseCase, log: log}
}

// Index handles GET /: the landing page for visitors, the home listing
// for logged-in users.
func (h *PagesHandler) Index(c *gin.Context) {
	if _, loggedIn := c.Get("user_id"); !loggedIn {
		c.HTML(http.StatusOK, "landing", pageData(c, siteTitle))
		return
	}

	views, err := h.filterUseCase.Search(c.Request.Context(), &filter.FilterRequest{})
	if err != nil {
		h.log.Error().Err(err).Msg("loading home listing")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	data := pageData(c, "Home")
	data["Profiles"] = views
	c.HTML(http.StatusOK, "home", data)
}

// Legal handles GET /legal-notice/
func (h *PagesHandler) Legal(c *gin.Context) {
	c.HTML(http.StatusOK, "legal", pageData(c, "Legal Notice"))
}

// Privacy handles GET /privacy/
func (h *PagesHandler) Privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy", pageData(c, "Privacy"))
}
