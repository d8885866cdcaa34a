package types

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RecipeSummary is the lightweight listing record.
type RecipeSummary struct {
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featured_image"`
	Slug          string `json:"slug"`
}

// RecipeTag is a recipe row returned by the tag, primary tag and search endpoints.
type RecipeTag struct {
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	FeaturedImage string    `json:"featured_image"`
	Excerpt       string    `json:"excerpt"`
	RecipeID      uuid.UUID `json:"recipe_id"`
	Tags          []string  `json:"tags"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RecipeDetail is the fully assembled view of one recipe.
type RecipeDetail struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	Excerpt          string          `json:"excerpt"`
	Slug             string          `json:"slug"`
	FeaturedImage    string          `json:"featured_image"`
	DatePublished    string          `json:"date_published"`
	Author           string          `json:"author"`
	PrimaryTag       string          `json:"primary_tag"`
	PrepTime         int             `json:"prep_time"`
	CookTime         int             `json:"cook_time"`
	TotalTime        int             `json:"total_time"`
	Ingredients      []string        `json:"ingredients"`
	Procedure        []string        `json:"procedure"`
	Notes            []string        `json:"notes"`
	Tags             []string        `json:"tags"`
	NutritionalValue json.RawMessage `json:"nutritional_value"`
	PluggedProducts  string          `json:"plugged_products"`
	FAQs             []FAQ           `json:"faqs"`
}

// DateLayout is the wire format of date_published.
const DateLayout = "2006-01-02"
