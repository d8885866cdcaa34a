package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hungrybaby/recipes-api/backend/internal/models"
	"github.com/hungrybaby/recipes-api/backend/internal/types"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedFile is the YAML fixture format accepted by the seeding tool.
type SeedFile struct {
	Recipes      []SeedRecipe      `yaml:"recipes"`
	ProductPlugs []SeedProductPlug `yaml:"product_plugs"`
}

type SeedRecipe struct {
	Title         string      `yaml:"title"`
	Excerpt       string      `yaml:"excerpt"`
	FeaturedImage string      `yaml:"featured_image"`
	Slug          string      `yaml:"slug"`
	Author        string      `yaml:"author"`
	PrimaryTag    string      `yaml:"primary_tag"`
	DateCreated   string      `yaml:"date_created"`
	Active        bool        `yaml:"active"`
	Content       SeedContent `yaml:"content"`
	FAQs          []types.FAQ `yaml:"faqs"`
}

type SeedContent struct {
	PrepTime         int            `yaml:"prep_time"`
	CookTime         int            `yaml:"cook_time"`
	Ingredients      []string       `yaml:"ingredients"`
	Procedure        []string       `yaml:"procedure"`
	Tags             []string       `yaml:"tags"`
	Notes            []string       `yaml:"notes"`
	NutritionalValue map[string]any `yaml:"nutritional_value"`
	PluggedProducts  string         `yaml:"plugged_products"`
}

type SeedProductPlug struct {
	Category     string `yaml:"category"`
	ProductName  string `yaml:"product_name"`
	ProductURL   string `yaml:"product_url"`
	ProductImage string `yaml:"product_image"`
}

// SeedResult counts what a seeding run wrote.
type SeedResult struct {
	Created      int
	Updated      int
	ProductPlugs int
}

// LoadSeedFile parses a YAML fixture. Unknown keys are rejected.
func LoadSeedFile(path string) (*SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file SeedFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &file, nil
}

// SeedService writes fixture recipes into the store. It is the only write
// path and keeps exactly one content row per recipe.
type SeedService struct {
	db     *gorm.DB
	images IImageService
}

// NewSeedService creates a SeedService. images may be nil, in which case
// featured images are stored as given.
func NewSeedService(db *gorm.DB, images IImageService) *SeedService {
	return &SeedService{db: db, images: images}
}

// Seed upserts every recipe (by slug) and product plug (by name) in file.
// Relative featured image paths are resolved against baseDir.
func (s *SeedService) Seed(ctx context.Context, file *SeedFile, baseDir string) (*SeedResult, error) {
	result := &SeedResult{}

	for i := range file.Recipes {
		created, err := s.UpsertRecipe(ctx, &file.Recipes[i], baseDir)
		if err != nil {
			return result, err
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	for _, plug := range file.ProductPlugs {
		if err := s.upsertProductPlug(ctx, plug); err != nil {
			return result, err
		}
		result.ProductPlugs++
	}

	return result, nil
}

// UpsertRecipe writes one recipe with its content and FAQs in a single
// transaction. It reports whether the recipe was newly created.
func (s *SeedService) UpsertRecipe(ctx context.Context, in *SeedRecipe, baseDir string) (bool, error) {
	recipe, content, err := buildRecipe(in)
	if err != nil {
		return false, fmt.Errorf("recipe %q: %w", in.Slug, err)
	}

	if recipe.FeaturedImage, err = s.resolveImage(ctx, in.Slug, in.FeaturedImage, baseDir); err != nil {
		return false, fmt.Errorf("recipe %q: %w", in.Slug, err)
	}

	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Recipe
		err := tx.Where("slug = ?", recipe.Slug).Order("date_created DESC").Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			if err := tx.Create(recipe).Error; err != nil {
				return fmt.Errorf("failed to create recipe: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up recipe: %w", err)
		default:
			recipe.ID = existing.ID
			if recipe.DateCreated.IsZero() {
				recipe.DateCreated = existing.DateCreated
			}
			today := models.Today()
			recipe.DateUpdated = &today
			if err := tx.Save(recipe).Error; err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
		}

		content.RecipeID = recipe.ID
		if err := upsertContent(tx, content); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.FAQ{}).Error; err != nil {
			return fmt.Errorf("failed to clear faqs: %w", err)
		}
		for _, f := range in.FAQs {
			faq := models.FAQ{RecipeID: recipe.ID, Question: f.Question, Answer: f.Answer}
			if err := tx.Create(&faq).Error; err != nil {
				return fmt.Errorf("failed to create faq: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("recipe %q: %w", in.Slug, err)
	}

	slog.Debug("seeded recipe", "slug", recipe.Slug, "created", created, "faqs", len(in.FAQs))
	return created, nil
}

// upsertContent replaces the single content row of a recipe. Finding more
// than one row means the store is already inconsistent.
func upsertContent(tx *gorm.DB, content *models.RecipeContent) error {
	var existing []models.RecipeContent
	if err := tx.Select("id").Where("recipe_id = ?", content.RecipeID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to look up content: %w", err)
	}

	switch len(existing) {
	case 0:
		if err := tx.Create(content).Error; err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}
	case 1:
		content.ID = existing[0].ID
		if err := tx.Save(content).Error; err != nil {
			return fmt.Errorf("failed to update content: %w", err)
		}
	default:
		return fmt.Errorf("recipe %s has %d content rows, expected one", content.RecipeID, len(existing))
	}
	return nil
}

func (s *SeedService) upsertProductPlug(ctx context.Context, in SeedProductPlug) error {
	if strings.TrimSpace(in.ProductName) == "" {
		return errors.New("product plug without product_name")
	}
	plug := models.ProductPlug{
		Category:     in.Category,
		ProductName:  in.ProductName,
		ProductURL:   in.ProductURL,
		ProductImage: in.ProductImage,
	}

	db := s.db.WithContext(ctx)
	var existing models.ProductPlug
	err := db.Where("product_name = ?", in.ProductName).Take(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&plug).Error
	case err != nil:
		return fmt.Errorf("failed to look up product plug: %w", err)
	default:
		plug.ID = existing.ID
		return db.Save(&plug).Error
	}
}

// resolveImage uploads a local featured image when an uploader is configured.
// URLs are kept as-is.
func (s *SeedService) resolveImage(ctx context.Context, slug, image, baseDir string) (string, error) {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image, nil
	}
	if s.images == nil {
		slog.Warn("featured image is a local path but no uploader is configured", "slug", slug, "image", image)
		return image, nil
	}
	path := image
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return s.images.UploadFeaturedImage(ctx, slug, path)
}

func buildRecipe(in *SeedRecipe) (*models.Recipe, *models.RecipeContent, error) {
	if strings.TrimSpace(in.Slug) == "" {
		return nil, nil, errors.New("slug is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, nil, errors.New("title is required")
	}

	recipe := &models.Recipe{
		Title:         in.Title,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Slug:          strings.TrimSpace(in.Slug),
		Author:        in.Author,
		PrimaryTag:    strings.ToLower(strings.TrimSpace(in.PrimaryTag)),
		ActiveRecipe:  in.Active,
	}
	if in.DateCreated != "" {
		d, err := time.Parse(types.DateLayout, in.DateCreated)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_created: %w", err)
		}
		recipe.DateCreated = d
	}

	c := in.Content
	content := &models.RecipeContent{
		PrepTime:        c.PrepTime,
		CookTime:        c.CookTime,
		PluggedProducts: c.PluggedProducts,
	}
	packed := []struct {
		dst   *string
		items []string
		sep   string
		field string
	}{
		{&content.Ingredients, c.Ingredients, ListDelimiter, "ingredients"},
		{&content.Procedure, c.Procedure, StepDelimiter, "procedure"},
		{&content.Tags, c.Tags, ListDelimiter, "tags"},
		{&content.Notes, c.Notes, StepDelimiter, "notes"},
	}
	for _, p := range packed {
		v, err := JoinPacked(p.items, p.sep)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p.field, err)
		}
		*p.dst = v
	}

	if c.NutritionalValue != nil {
		raw, err := json.Marshal(c.NutritionalValue)
		if err != nil {
			return nil, nil, fmt.Errorf("nutritional_value: %w", err)
		}
		content.NutritionalValue = raw
	}

	return recipe, content, nil
}
