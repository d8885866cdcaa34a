package testhelpers

import (
	"testing"
	"time"

	"github.com/hungrybaby/recipes-api/backend/internal/models"
	"gorm.io/gorm"
)

// RecipeFixture describes a recipe row plus its content and FAQs.
type RecipeFixture struct {
	Slug        string
	Title       string
	Author      string
	PrimaryTag  string
	Active      bool
	DateCreated time.Time

	PrepTime         int
	CookTime         int
	Ingredients      string
	Procedure        string
	Tags             string
	Notes            string
	NutritionalValue string
	// NoContent skips the content row entirely.
	NoContent bool

	FAQs []models.FAQ
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// InsertRecipe writes the fixture and returns the stored recipe.
func InsertRecipe(t *testing.T, db *gorm.DB, f RecipeFixture) *models.Recipe {
	t.Helper()

	title := f.Title
	if title == "" {
		title = f.Slug
	}
	recipe := &models.Recipe{
		Title:         title,
		Excerpt:       "About " + title,
		FeaturedImage: "https://images.example.com/" + f.Slug + ".jpg",
		Slug:          f.Slug,
		Author:        f.Author,
		PrimaryTag:    f.PrimaryTag,
		DateCreated:   f.DateCreated,
		ActiveRecipe:  f.Active,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to insert recipe %s: %v", f.Slug, err)
	}

	if !f.NoContent {
		content := &models.RecipeContent{
			RecipeID:    recipe.ID,
			PrepTime:    f.PrepTime,
			CookTime:    f.CookTime,
			Ingredients: f.Ingredients,
			Procedure:   f.Procedure,
			Tags:        f.Tags,
			Notes:       f.Notes,
		}
		if f.NutritionalValue != "" {
			content.NutritionalValue = models.JSONB(f.NutritionalValue)
		}
		if err := db.Create(content).Error; err != nil {
			t.Fatalf("failed to insert content for %s: %v", f.Slug, err)
		}
	}

	for i := range f.FAQs {
		faq := f.FAQs[i]
		faq.RecipeID = recipe.ID
		if err := db.Create(&faq).Error; err != nil {
			t.Fatalf("failed to insert faq for %s: %v", f.Slug, err)
		}
	}

	return recipe
}
