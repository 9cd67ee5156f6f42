package http

import (
	"html/template"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookworld/internal/auth"
	"github.com/mrlokans/bookworld/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Load HTML templates for the admin surface
	if cfg.TemplatesPath != "" {
		if tmpl, err := template.ParseGlob(cfg.TemplatesPath + "/*.html"); err == nil {
			router.SetHTMLTemplate(tmpl)
		} else {
			log.Printf("Failed to parse templates from %s: %v", cfg.TemplatesPath, err)
		}
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Register auth routes if auth service is available
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController, err := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath, cfg.AuthConfig)
		if err == nil {
			authController.RegisterRoutes(router)
		} else {
			log.Printf("Failed to set up auth controller, auth routes disabled: %v", err)
		}
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Catalog)
	authorsController := NewAuthorsController(cfg.Catalog)
	genresController := NewGenresController(cfg.Catalog)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	router.GET("/api/books", booksController.GetAllBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.POST("/api/books", booksController.CreateBook)
	router.PUT("/api/books/:id", booksController.UpdateBook)
	router.DELETE("/api/books/:id", booksController.DeleteBook)
	router.GET("/api/books/:id/:relatedId", booksController.ListBooksByRelation)

	// Authors API endpoints
	router.GET("/api/authors", authorsController.GetAllAuthors)
	router.GET("/api/authors/:id", authorsController.GetAuthor)
	router.POST("/api/authors", authorsController.CreateAuthor)
	router.PUT("/api/authors/:id", authorsController.UpdateAuthor)
	router.DELETE("/api/authors/:id", authorsController.DeleteAuthor)

	// Genres API endpoints
	router.GET("/api/genres", genresController.GetAllGenres)
	router.GET("/api/genres/:id", genresController.GetGenre)
	router.POST("/api/genres", genresController.CreateGenre)
	router.PUT("/api/genres/:id", genresController.UpdateGenre)
	router.DELETE("/api/genres/:id", genresController.DeleteGenre)
	router.GET("/api/genres/:id/:relatedId", genresController.ListGenresByBook)

	// Admin UI, gated behind the admin role when auth is enabled
	adminController := NewAdminController(cfg.Catalog, cfg.Catalog)
	adminGroup := router.Group("/admin")
	if cfg.AuthMiddleware != nil {
		adminGroup.Use(cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin))
	}
	adminController.RegisterRoutes(adminGroup)

	// The root redirects into the admin book list
	router.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/admin/books")
	})

	return router
}
