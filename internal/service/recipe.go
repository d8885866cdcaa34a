package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hungrybaby/recipes-api/backend/internal/models"
	"github.com/hungrybaby/recipes-api/backend/internal/types"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// newestFirst is the listing order shared by every endpoint.
const newestFirst = "recipes.date_created DESC, recipes.title ASC, recipes.slug ASC"

const tagColumns = "recipes.title, recipes.slug, recipes.featured_image, recipes.excerpt, " +
	"recipe_content.recipe_id, recipe_content.tags"

// RecipeService handles recipe read operations
type RecipeService struct {
	db *gorm.DB
	// intn picks the random recipe index; replaced in tests.
	intn func(n int) int
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{
		db:   db,
		intn: rand.Intn,
	}
}

// ListRecipes returns every active recipe, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]types.RecipeSummary, error) {
	recipes := []types.RecipeSummary{}
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("recipes.title, recipes.excerpt, recipes.featured_image, recipes.slug").
		Where("recipes.active_recipe = ?", true).
		Order(newestFirst).
		Scan(&recipes).Error
	if err != nil {
		return nil, dataAccess("list recipes", err)
	}
	if recipes == nil {
		recipes = []types.RecipeSummary{}
	}
	return recipes, nil
}

// RandomRecipe picks one active recipe uniformly at random.
func (s *RecipeService) RandomRecipe(ctx context.Context) (*types.RecipeSummary, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNoActiveRecipes
	}
	return &recipes[s.intn(len(recipes))], nil
}

// GetRecipeBySlug assembles the full view of the active recipe with the given slug.
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slug string) (*types.RecipeDetail, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Select("id, title, excerpt, slug, featured_image, date_created, author, primary_tag").
		Where("slug = ? AND active_recipe = ?", slug, true).
		Take(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, dataAccess("get recipe", err)
	}

	var (
		faqs    []types.FAQ
		content models.RecipeContent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Model(&models.FAQ{}).
			Select("question, answer").
			Where("recipe_id = ?", recipe.ID).
			Order("id").
			Scan(&faqs).Error
		if err != nil {
			return dataAccess("get recipe faqs", err)
		}
		return nil
	})
	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Where("recipe_id = ?", recipe.ID).
			Take(&content).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dataAccess("get recipe content", fmt.Errorf("%w: %s", ErrMissingContent, recipe.Slug))
		}
		if err != nil {
			return dataAccess("get recipe content", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newRecipeDetail(&recipe, &content, faqs), nil
}

// RecipesByTag returns active recipes whose tags contain tag as a
// case-insensitive substring. "all" matches every active recipe.
func (s *RecipeService) RecipesByTag(ctx context.Context, tag string) ([]types.RecipeTag, error) {
	return s.findTagRows(ctx, "recipes by tag", withTag(tag))
}

// RecipesByPrimaryTag returns active recipes whose primary tag equals the
// lower-cased input.
func (s *RecipeService) RecipesByPrimaryTag(ctx context.Context, primaryTag string) ([]types.RecipeTag, error) {
	return s.findTagRows(ctx, "recipes by primary tag", withPrimaryTag(primaryTag))
}

// VerifyTag counts recipes, active or not, whose primary tag is exactly tag.
func (s *RecipeService) VerifyTag(ctx context.Context, tag string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("primary_tag = ?", tag).
		Count(&count).Error
	if err != nil {
		return 0, dataAccess("verify tag", err)
	}
	return count, nil
}

// SearchRecipes matches ingredients against searchText as a prefix query,
// restricted to recipes tagged with mealType. A sentinel search text
// ("%", "all" or blank) only browses by meal type.
func (s *RecipeService) SearchRecipes(ctx context.Context, searchText, mealType string) ([]types.RecipeTag, error) {
	return s.findTagRows(ctx, "search recipes", withTag(mealType), s.withIngredients(searchText))
}

// SearchRecipesInPrimaryTag is SearchRecipes filtered by exact primary tag.
func (s *RecipeService) SearchRecipesInPrimaryTag(ctx context.Context, searchText, primaryTag string) ([]types.RecipeTag, error) {
	return s.findTagRows(ctx, "search recipes in primary tag", withPrimaryTag(primaryTag), s.withIngredients(searchText))
}

type scope func(*gorm.DB) *gorm.DB

func (s *RecipeService) findTagRows(ctx context.Context, op string, scopes ...scope) ([]types.RecipeTag, error) {
	q := s.db.WithContext(ctx).
		Table("recipes").
		Select(tagColumns).
		Joins("JOIN recipe_content ON recipe_content.recipe_id = recipes.id").
		Where("recipes.active_recipe = ?", true)
	for _, apply := range scopes {
		q = apply(q)
	}

	var rows []tagRow
	if err := q.Order(newestFirst).Scan(&rows).Error; err != nil {
		return nil, dataAccess(op, err)
	}
	return toRecipeTags(rows), nil
}

func withTag(tag string) scope {
	return func(q *gorm.DB) *gorm.DB {
		if isMatchAll(tag) {
			return q
		}
		pattern := "%" + escapeLike(strings.ToLower(tag)) + "%"
		return q.Where(`LOWER(recipe_content.tags) LIKE ? ESCAPE '\'`, pattern)
	}
}

func withPrimaryTag(primaryTag string) scope {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("recipes.primary_tag = ?", strings.ToLower(primaryTag))
	}
}

// withIngredients adds the full-text ingredient predicate. postgres uses the
// trigger-maintained tsvector; sqlite approximates it by requiring each token
// to prefix a word of the ingredient list.
func (s *RecipeService) withIngredients(searchText string) scope {
	return func(q *gorm.DB) *gorm.DB {
		if isBrowseSentinel(searchText) {
			return q
		}
		if s.db.Dialector.Name() == "postgres" {
			query := BuildPrefixQuery(searchText)
			if query == "" {
				return q
			}
			return q.Where("recipe_content.ingredients_token @@ to_tsquery('english', ?)", query)
		}
		for _, tok := range searchTokens(searchText) {
			q = q.Where("(' ' || LOWER(REPLACE(recipe_content.ingredients, ',', ' '))) LIKE ?", "% "+tok+"%")
		}
		return q
	}
}
