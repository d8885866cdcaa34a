package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB is a raw JSON document stored as-is in a jsonb column
type JSONB []byte

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
	return nil
}

// MarshalJSON emits the stored document verbatim.
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON keeps the raw document.
func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// Recipe is the published (or draft) metadata of a single recipe.
// Only rows with ActiveRecipe set are visible through the API.
type Recipe struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:250;not null" json:"title"`
	Excerpt       string     `gorm:"size:500;not null" json:"excerpt"`
	FeaturedImage string     `gorm:"size:250;not null" json:"featured_image"`
	Slug          string     `gorm:"size:300;not null;index" json:"slug"`
	Author        string     `gorm:"size:50;not null;default:''" json:"author"`
	PrimaryTag    string     `gorm:"size:50;not null;default:'';index" json:"primary_tag"`
	DateCreated   time.Time  `gorm:"type:date;not null" json:"date_created"`
	DateUpdated   *time.Time `gorm:"type:date" json:"date_updated,omitempty"`
	ActiveRecipe  bool       `gorm:"not null;default:false" json:"active_recipe"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the id and creation date when the caller left them empty.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.DateCreated.IsZero() {
		r.DateCreated = Today()
	}
	return nil
}

// RecipeContent holds the structured body of a recipe. List-like fields are
// packed into delimited strings: ingredients and tags on ",", procedure and
// notes on "|". There is exactly one content row per recipe.
//
// On postgres the table also carries an ingredients_token tsvector column
// maintained by a trigger (see migrations). It is only ever referenced from
// search predicates, so it has no field here.
type RecipeContent struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"recipe_id"`
	Recipe           *Recipe   `gorm:"foreignKey:RecipeID" json:"-"`
	PrepTime         int       `gorm:"not null" json:"prep_time"`
	CookTime         int       `gorm:"not null" json:"cook_time"`
	Ingredients      string    `gorm:"size:5000;not null" json:"ingredients"`
	Procedure        string    `gorm:"size:10000;not null" json:"procedure"`
	Tags             string    `gorm:"size:1000;not null" json:"tags"`
	Notes            string    `gorm:"size:1000;not null;default:''" json:"notes"`
	NutritionalValue JSONB     `gorm:"type:jsonb" json:"nutritional_value"`
	PluggedProducts  string    `gorm:"size:50;not null;default:''" json:"plugged_products"`
}

func (RecipeContent) TableName() string {
	return "recipe_content"
}

// FAQ is a question/answer pair attached to a recipe.
type FAQ struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID" json:"-"`
	Question string    `gorm:"size:500;not null" json:"question"`
	Answer   string    `gorm:"size:2000;not null" json:"answer"`
}

func (FAQ) TableName() string {
	return "faqs"
}

// ProductPlug is a promotable product. Recipes reference plugs loosely through
// RecipeContent.PluggedProducts; plugs are never joined into recipe responses.
type ProductPlug struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Category     string `gorm:"size:100" json:"category"`
	ProductName  string `gorm:"size:100" json:"product_name"`
	ProductURL   string `gorm:"size:500" json:"product_url"`
	ProductImage string `gorm:"size:500" json:"product_image"`
}

func (ProductPlug) TableName() string {
	return "productplugs"
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Recipe{},
		&RecipeContent{},
		&FAQ{},
		&ProductPlug{},
	}
}

// Today returns the current UTC date at midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
