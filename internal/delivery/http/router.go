package http

import (
	"github.com/chaosdating/chaos-dating/internal/delivery/http/handler"
	"github.com/chaosdating/chaos-dating/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Router struct {
	pagesHandler   *handler.PagesHandler
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	filterHandler  *handler.FilterHandler
	authMiddleware *middleware.AuthMiddleware
	mediaDir       string
	log            zerolog.Logger
}

func NewRouter(
	pagesHandler *handler.PagesHandler,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	filterHandler *handler.FilterHandler,
	authMiddleware *middleware.AuthMiddleware,
	mediaDir string,
	log zerolog.Logger,
) *Router {
	return &Router{
		pagesHandler:   pagesHandler,
		authHandler:    authHandler,
		profileHandler: profileHandler,
		filterHandler:  filterHandler,
		authMiddleware: authMiddleware,
		mediaDir:       mediaDir,
		log:            log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(r.log), gin.Recovery())
	router.SetHTMLTemplate(Templates())

	// Uploaded profile pictures
	router.Static("/media", r.mediaDir)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Public routes; the index adapts to a present session.
	public := router.Group("", r.authMiddleware.OptionalAuth())
	{
		public.GET("/", r.pagesHandler.Index)
		public.GET("/legal-notice/", r.pagesHandler.Legal)
		public.GET("/privacy/", r.pagesHandler.Privacy)

		public.GET("/register/", r.authHandler.RegisterForm)
		public.POST("/register/", r.authHandler.Register)
		public.GET("/login/", r.authHandler.LoginForm)
		public.POST("/login/", r.authHandler.Login)
		public.GET("/logout/", r.authHandler.Logout)
	}

	// Protected routes
	protected := router.Group("", r.authMiddleware.RequireAuth())
	{
		protected.GET("/edit-profile/", r.profileHandler.EditForm)
		protected.POST("/edit-profile/", r.profileHandler.Edit)
		protected.GET("/users/:username", r.profileHandler.View)
		protected.GET("/filter/", r.filterHandler.Page)
		protected.POST("/filter/", r.filterHandler.Page)
		protected.Any("/rest/filter/", r.filterHandler.Fragment)
		protected.GET("/password-change/", r.authHandler.PasswordChangeForm)
		protected.POST("/password-change/", r.authHandler.PasswordChange)
	}

	return router
}
