package service

import (
	"context"

	"github.com/hungrybaby/recipes-api/backend/internal/types"
)

// IRecipeService defines the interface for recipe read operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]types.RecipeSummary, error)
	RandomRecipe(ctx context.Context) (*types.RecipeSummary, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*types.RecipeDetail, error)
	RecipesByTag(ctx context.Context, tag string) ([]types.RecipeTag, error)
	RecipesByPrimaryTag(ctx context.Context, primaryTag string) ([]types.RecipeTag, error)
	VerifyTag(ctx context.Context, tag string) (int64, error)
	SearchRecipes(ctx context.Context, searchText, mealType string) ([]types.RecipeTag, error)
	SearchRecipesInPrimaryTag(ctx context.Context, searchText, primaryTag string) ([]types.RecipeTag, error)
}

// IImageService uploads featured images and returns their public URL
type IImageService interface {
	UploadFeaturedImage(ctx context.Context, slug, path string) (string, error)
}

var (
	_ IRecipeService = (*RecipeService)(nil)
	_ IImageService  = (*ImageService)(nil)
)
