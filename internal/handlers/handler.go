package handlers

import (
	"travelfy/internal/logger"
	"travelfy/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Redirect rules for page navigation, evaluated before any page renders.
	router.Use(h.routeGuard)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Page placeholders guarded by the redirect middleware
	h.registerPageRoutes(router)

	// Per-session post feed over WebSocket — same port
	router.GET("/ws", h.wsFeed)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", h.logIn)
		auth.POST("/logout", h.logOut)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		h.registerPostRoutes(api)
		h.registerProfileRoutes(api)
	}
}

func (h *Handler) registerPostRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	{
		posts.GET("", h.listPosts)
		// Body example: {"title":"Lisbon","date":"2025-06-01T00:00:00Z","content":"...","status":"published"}
		posts.POST("", h.savePost)
		posts.GET("/:id", h.getPost)
		posts.DELETE("/:id", h.deletePost)
		posts.POST("/:id/pin", h.togglePin)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/:username/bio", h.getUserBio)
		users.PUT("/:username/bio", h.updateUserBio)
	}
}
