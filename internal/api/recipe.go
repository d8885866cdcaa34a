package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hungrybaby/recipes-api/backend/internal/service"
)

// RecipeHandler serves the read-only recipe endpoints
type RecipeHandler struct {
	recipeService service.IRecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes registers the recipe routes. Static segments take priority
// over :slug, so /recipe/random never resolves to a recipe slugged "random".
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/all", h.ListRecipes)

	recipes := router.Group("/recipe")
	{
		recipes.GET("/random", h.RandomRecipe)
		recipes.GET("/tag/:tag", h.RecipesByTag)
		recipes.GET("/primary_tag/:primary_tag", h.RecipesByPrimaryTag)
		recipes.GET("/search/:search_text/:meal_type", h.SearchRecipes)
		recipes.GET("/search/primary/:search_text/:primary_tag", h.SearchRecipesInPrimaryTag)
		recipes.GET("/:slug", h.GetRecipe)
	}

	router.GET("/verify/tag/:tag", h.VerifyTag)
}

// ListRecipes handles GET /recipes/all
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not fetch all the recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// RandomRecipe handles GET /recipe/random. An empty catalogue yields {}.
func (h *RecipeHandler) RandomRecipe(c *gin.Context) {
	recipe, err := h.recipeService.RandomRecipe(c.Request.Context())
	if errors.Is(err, service.ErrNoActiveRecipes) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	if err != nil {
		respondError(c, err, "Could not fetch a random recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetRecipe handles GET /recipe/:slug. A miss is {} with 200, not a 404.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	if err != nil {
		respondError(c, err, "Could not fetch recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// RecipesByTag handles GET /recipe/tag/:tag
func (h *RecipeHandler) RecipesByTag(c *gin.Context) {
	recipes, err := h.recipeService.RecipesByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondError(c, err, "Could not fetch recipe from tag")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// RecipesByPrimaryTag handles GET /recipe/primary_tag/:primary_tag
func (h *RecipeHandler) RecipesByPrimaryTag(c *gin.Context) {
	recipes, err := h.recipeService.RecipesByPrimaryTag(c.Request.Context(), c.Param("primary_tag"))
	if err != nil {
		respondError(c, err, "Could not fetch recipe from primary tag")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SearchRecipes handles GET /recipe/search/:search_text/:meal_type
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), c.Param("search_text"), c.Param("meal_type"))
	if err != nil {
		respondError(c, err, "Could not search recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SearchRecipesInPrimaryTag handles GET /recipe/search/primary/:search_text/:primary_tag
func (h *RecipeHandler) SearchRecipesInPrimaryTag(c *gin.Context) {
	recipes, err := h.recipeService.SearchRecipesInPrimaryTag(c.Request.Context(), c.Param("search_text"), c.Param("primary_tag"))
	if err != nil {
		respondError(c, err, "Could not search recipes in primary tag")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// VerifyTag handles GET /verify/tag/:tag. The body is a bare integer.
func (h *RecipeHandler) VerifyTag(c *gin.Context) {
	count, err := h.recipeService.VerifyTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondError(c, err, "Could not verify tag")
		return
	}
	c.JSON(http.StatusOK, count)
}

// respondError logs the cause and answers with a generic 500.
func respondError(c *gin.Context, err error, detail string) {
	slog.ErrorContext(c.Request.Context(), detail,
		"error", err,
		"route", c.FullPath(),
		"path", c.Request.URL.Path,
	)
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: detail})
}
