package mocks

import (
	"context"

	"github.com/hungrybaby/recipes-api/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]types.RecipeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// RandomRecipe mocks the RandomRecipe method
func (m *MockRecipeService) RandomRecipe(ctx context.Context) (*types.RecipeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeSummary), args.Error(1)
}

// GetRecipeBySlug mocks the GetRecipeBySlug method
func (m *MockRecipeService) GetRecipeBySlug(ctx context.Context, slug string) (*types.RecipeDetail, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// RecipesByTag mocks the RecipesByTag method
func (m *MockRecipeService) RecipesByTag(ctx context.Context, tag string) ([]types.RecipeTag, error) {
	args := m.Called(ctx, tag)
	return tagRows(args)
}

// RecipesByPrimaryTag mocks the RecipesByPrimaryTag method
func (m *MockRecipeService) RecipesByPrimaryTag(ctx context.Context, primaryTag string) ([]types.RecipeTag, error) {
	args := m.Called(ctx, primaryTag)
	return tagRows(args)
}

// VerifyTag mocks the VerifyTag method
func (m *MockRecipeService) VerifyTag(ctx context.Context, tag string) (int64, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(int64), args.Error(1)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, searchText, mealType string) ([]types.RecipeTag, error) {
	args := m.Called(ctx, searchText, mealType)
	return tagRows(args)
}

// SearchRecipesInPrimaryTag mocks the SearchRecipesInPrimaryTag method
func (m *MockRecipeService) SearchRecipesInPrimaryTag(ctx context.Context, searchText, primaryTag string) ([]types.RecipeTag, error) {
	args := m.Called(ctx, searchText, primaryTag)
	return tagRows(args)
}

func tagRows(args mock.Arguments) ([]types.RecipeTag, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeTag), args.Error(1)
}
