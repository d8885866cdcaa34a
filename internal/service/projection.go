package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hungrybaby/recipes-api/backend/internal/models"
	"github.com/hungrybaby/recipes-api/backend/internal/types"
)

// Delimiters of the packed content fields.
const (
	ListDelimiter = "," // ingredients, tags
	StepDelimiter = "|" // procedure, notes
)

// SplitPacked splits a packed field into its items. Items are trimmed and
// empty items dropped; the result is never nil.
func SplitPacked(packed, sep string) []string {
	items := []string{}
	for _, part := range strings.Split(packed, sep) {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinPacked is the inverse of SplitPacked. An item containing the delimiter
// cannot round-trip and is rejected.
func JoinPacked(items []string, sep string) (string, error) {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, sep) {
			return "", fmt.Errorf("item %q contains delimiter %q", item, sep)
		}
		kept = append(kept, item)
	}
	return strings.Join(kept, sep), nil
}

// TitleCase upper-cases the first letter of every word. Caser values carry
// state, so a new one is built per call.
func TitleCase(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return cases.Title(language.English).String(s)
}

func newRecipeDetail(recipe *models.Recipe, content *models.RecipeContent, faqs []types.FAQ) *types.RecipeDetail {
	if faqs == nil {
		faqs = []types.FAQ{}
	}
	return &types.RecipeDetail{
		ID:               recipe.ID,
		Title:            recipe.Title,
		Excerpt:          recipe.Excerpt,
		Slug:             recipe.Slug,
		FeaturedImage:    recipe.FeaturedImage,
		DatePublished:    recipe.DateCreated.Format(types.DateLayout),
		Author:           recipe.Author,
		PrimaryTag:       TitleCase(recipe.PrimaryTag),
		PrepTime:         content.PrepTime,
		CookTime:         content.CookTime,
		TotalTime:        content.PrepTime + content.CookTime,
		Ingredients:      SplitPacked(content.Ingredients, ListDelimiter),
		Procedure:        SplitPacked(content.Procedure, StepDelimiter),
		Notes:            SplitPacked(content.Notes, StepDelimiter),
		Tags:             SplitPacked(content.Tags, ListDelimiter),
		NutritionalValue: []byte(content.NutritionalValue),
		PluggedProducts:  content.PluggedProducts,
		FAQs:             faqs,
	}
}

// tagRow is the joined recipe/content row behind the tag-shaped endpoints.
type tagRow struct {
	Title         string
	Slug          string
	FeaturedImage string
	Excerpt       string
	RecipeID      uuid.UUID
	Tags          string
}

func toRecipeTags(rows []tagRow) []types.RecipeTag {
	out := make([]types.RecipeTag, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.RecipeTag{
			Title:         r.Title,
			Slug:          r.Slug,
			FeaturedImage: r.FeaturedImage,
			Excerpt:       r.Excerpt,
			RecipeID:      r.RecipeID,
			Tags:          SplitPacked(r.Tags, ListDelimiter),
		})
	}
	return out
}
