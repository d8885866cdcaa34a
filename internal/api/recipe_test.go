package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hungrybaby/recipes-api/backend/internal/mocks"
	"github.com/hungrybaby/recipes-api/backend/internal/service"
	"github.com/hungrybaby/recipes-api/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errBoom = fmt.Errorf("%w: list recipes: connection reset", service.ErrDataAccess)

func setupRecipeTestRouter(t *testing.T) (*gin.Engine, *mocks.MockRecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockService := new(mocks.MockRecipeService)
	t.Cleanup(func() { mockService.AssertExpectations(t) })

	router := gin.New()
	NewRecipeHandler(mockService).RegisterRoutes(router.Group("/api/v1"))
	return router, mockService
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListRecipes(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("ListRecipes", mock.Anything).Return([]types.RecipeSummary{
		{Title: "Pancakes", Excerpt: "Fluffy", FeaturedImage: "https://img/p.jpg", Slug: "pancakes"},
	}, nil)

	w := doGet(router, "/api/v1/recipes/all")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"title":"Pancakes","excerpt":"Fluffy","featured_image":"https://img/p.jpg","slug":"pancakes"}]`, w.Body.String())
}

func TestListRecipesEmpty(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("ListRecipes", mock.Anything).Return([]types.RecipeSummary{}, nil)

	w := doGet(router, "/api/v1/recipes/all")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestEndpointErrorsUseDetailEnvelope(t *testing.T) {
	tests := []struct {
		path   string
		method string
		args   []interface{}
		detail string
	}{
		{"/api/v1/recipes/all", "ListRecipes", nil, "Could not fetch all the recipes"},
		{"/api/v1/recipe/random", "RandomRecipe", nil, "Could not fetch a random recipe"},
		{"/api/v1/recipe/pancakes", "GetRecipeBySlug", []interface{}{"pancakes"}, "Could not fetch recipe"},
		{"/api/v1/recipe/tag/quick", "RecipesByTag", []interface{}{"quick"}, "Could not fetch recipe from tag"},
		{"/api/v1/recipe/primary_tag/lunch", "RecipesByPrimaryTag", []interface{}{"lunch"}, "Could not fetch recipe from primary tag"},
		{"/api/v1/recipe/search/egg/all", "SearchRecipes", []interface{}{"egg", "all"}, "Could not search recipes"},
		{"/api/v1/recipe/search/primary/egg/lunch", "SearchRecipesInPrimaryTag", []interface{}{"egg", "lunch"}, "Could not search recipes in primary tag"},
		{"/api/v1/verify/tag/lunch", "VerifyTag", []interface{}{"lunch"}, "Could not verify tag"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			router, svc := setupRecipeTestRouter(t)
			args := append([]interface{}{mock.Anything}, tt.args...)
			if tt.method == "VerifyTag" {
				svc.On(tt.method, args...).Return(int64(0), errBoom)
			} else {
				svc.On(tt.method, args...).Return(nil, errBoom)
			}

			w := doGet(router, tt.path)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.detail), w.Body.String())
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestRandomRecipe(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("RandomRecipe", mock.Anything).Return(&types.RecipeSummary{Title: "Pancakes", Slug: "pancakes"}, nil)

	w := doGet(router, "/api/v1/recipe/random")

	assert.Equal(t, http.StatusOK, w.Code)
	var got types.RecipeSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "pancakes", got.Slug)
	svc.AssertNotCalled(t, "GetRecipeBySlug", mock.Anything, "random")
}

func TestRandomRecipeEmptyCatalogue(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("RandomRecipe", mock.Anything).Return(nil, service.ErrNoActiveRecipes)

	w := doGet(router, "/api/v1/recipe/random")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestGetRecipe(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	id := uuid.New()
	svc.On("GetRecipeBySlug", mock.Anything, "pancakes").Return(&types.RecipeDetail{
		ID:               id,
		Title:            "Pancakes",
		Slug:             "pancakes",
		DatePublished:    "2024-03-01",
		PrimaryTag:       "Breakfast",
		PrepTime:         5,
		CookTime:         10,
		TotalTime:        15,
		Ingredients:      []string{"egg", "milk", "flour"},
		Procedure:        []string{},
		Notes:            []string{},
		Tags:             []string{"breakfast", "quick"},
		NutritionalValue: json.RawMessage(`{"calories":220}`),
		FAQs:             []types.FAQ{{Question: "Freeze?", Answer: "Yes"}},
	}, nil)

	w := doGet(router, "/api/v1/recipe/pancakes")

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, id.String(), got["id"])
	assert.Equal(t, float64(15), got["total_time"])
	assert.Equal(t, "Breakfast", got["primary_tag"])
	assert.Equal(t, "2024-03-01", got["date_published"])
	assert.Equal(t, []interface{}{"egg", "milk", "flour"}, got["ingredients"])
	assert.Equal(t, map[string]interface{}{"calories": float64(220)}, got["nutritional_value"])
	assert.Equal(t, []interface{}{}, got["procedure"])
	assert.Len(t, got["faqs"], 1)
}

func TestGetRecipeNotFoundIsEmptyObject(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("GetRecipeBySlug", mock.Anything, "missing").Return(nil, service.ErrRecipeNotFound)

	w := doGet(router, "/api/v1/recipe/missing")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestRecipesByTag(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	id := uuid.New()
	svc.On("RecipesByTag", mock.Anything, "quick").Return([]types.RecipeTag{
		{Title: "Pancakes", Slug: "pancakes", FeaturedImage: "https://img/p.jpg", Excerpt: "Fluffy", RecipeID: id, Tags: []string{"breakfast", "quick"}},
	}, nil)

	w := doGet(router, "/api/v1/recipe/tag/quick")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{
		"title": "Pancakes",
		"slug": "pancakes",
		"featured_image": "https://img/p.jpg",
		"excerpt": "Fluffy",
		"recipe_id": %q,
		"tags": ["breakfast", "quick"]
	}]`, id), w.Body.String())
}

func TestRecipesByPrimaryTagPassesRawParam(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("RecipesByPrimaryTag", mock.Anything, "Main Course").Return([]types.RecipeTag{}, nil)

	w := doGet(router, "/api/v1/recipe/primary_tag/Main%20Course")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearchRoutes(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("SearchRecipes", mock.Anything, "%", "breakfast").Return([]types.RecipeTag{}, nil).Once()
	svc.On("SearchRecipes", mock.Anything, "egg milk", "all").Return([]types.RecipeTag{}, nil).Once()
	svc.On("SearchRecipesInPrimaryTag", mock.Anything, "egg", "breakfast").Return([]types.RecipeTag{}, nil).Once()

	for _, path := range []string{
		"/api/v1/recipe/search/%25/breakfast",
		"/api/v1/recipe/search/egg%20milk/all",
		"/api/v1/recipe/search/primary/egg/breakfast",
	} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestVerifyTagReturnsBareInteger(t *testing.T) {
	router, svc := setupRecipeTestRouter(t)
	svc.On("VerifyTag", mock.Anything, "breakfast").Return(int64(3), nil)

	w := doGet(router, "/api/v1/verify/tag/breakfast")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Body.String())
}

func TestRespondErrorRecordsCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/recipes/all", nil)

	respondError(c, errBoom, "Could not fetch all the recipes")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.True(t, errors.Is(c.Errors[0].Err, service.ErrDataAccess))
}
