package api

import (
	"github.com/gin-gonic/gin"
	"github.com/hungrybaby/recipes-api/backend/internal/service"
	"gorm.io/gorm"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB) {
	SetupAPI(router, db, service.NewRecipeService(db))
}

// SetupAPI wires the handlers around an existing recipe service.
func SetupAPI(router *gin.Engine, db *gorm.DB, recipeService service.IRecipeService) {
	// Landing page and health check live outside the versioned prefix
	router.GET("/", Index)
	router.GET("/health", NewHealthHandler(db).HealthCheck)

	v1 := router.Group("/api/v1")
	{
		recipeHandler := NewRecipeHandler(recipeService)
		recipeHandler.RegisterRoutes(v1)
	}
}
