package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/auth"
	"github.com/colorra-dev/colorra/internal/handlers"
	"github.com/colorra-dev/colorra/internal/middleware"
	"github.com/colorra-dev/colorra/internal/storage"
)

func New(h *handlers.Handler, authManager *auth.Manager, conn *gorm.DB, authLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded files are served straight from disk when stored locally.
	if local, ok := h.Store.(*storage.LocalFileStorage); ok {
		r.Static("/uploads", local.GetDir())
	}

	requireAuth := middleware.Auth(authManager, conn)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		authGroup := api.Group("/auth", authLimiter.Handler())
		{
			authGroup.POST("/signup", h.Signup)
			authGroup.POST("/signin", h.Signin)
		}

		passwordReset := api.Group("/password-reset", authLimiter.Handler())
		{
			passwordReset.POST("/request", h.RequestPasswordReset)
			passwordReset.POST("/reset", h.ResetPassword)
		}

		palettes := api.Group("/palettes", requireAuth)
		{
			palettes.GET("", h.ListPalettes)
			palettes.POST("", h.CreatePalette)
			palettes.GET("/:id", h.GetPalette)
			palettes.PUT("/:id", h.UpdatePalette)
			palettes.PATCH("/:id/favorite", h.ToggleFavorite)
			palettes.DELETE("/:id", h.DeletePalette)
		}

		search := api.Group("/search", requireAuth)
		{
			search.GET("/palettes", h.SearchPalettes)
			search.GET("/colors/suggestions", h.ColorSuggestions)
			search.GET("/colors/popular", h.PopularColors)
		}

		collections := api.Group("/collections", requireAuth)
		{
			collections.POST("", h.CreateCollection)
			collections.GET("", h.ListCollections)
			collections.POST("/palette", h.AddPaletteToCollection)
			collections.DELETE("/:id/palette/:paletteId", h.RemovePaletteFromCollection)
			collections.DELETE("/:id", h.DeleteCollection)
		}

		sharing := api.Group("/sharing", requireAuth)
		{
			sharing.POST("/share", h.SharePalette)
			sharing.GET("/received", h.ListReceivedShares)
			sharing.GET("/sent", h.ListSentShares)
			sharing.DELETE("/:shareId", h.RemoveShare)
		}

		profile := api.Group("/profile", requireAuth)
		{
			profile.GET("", h.GetProfile)
			profile.PUT("", h.UpdateProfile)
			profile.PUT("/password", h.ChangePassword)
			profile.POST("/avatar", h.UploadAvatar)
		}

		upload := api.Group("/upload", requireAuth)
		{
			upload.POST("/image", h.UploadImage)
			upload.GET("/images", h.ListImages)
			upload.DELETE("/image/:filename", h.DeleteImage)
		}
	}

	return r
}
