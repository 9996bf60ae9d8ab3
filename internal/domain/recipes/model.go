package recipes

import (
	"time"

	"recipe-app-go/internal/domain/catalog"
)

type Recipe struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	AuthorID    string    `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"size:40;not null"`
	Image       string    `gorm:"type:text"`
	Text        string    `gorm:"not null"`
	CookingTime int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is the association row linking a recipe to an
// ingredient with a quantity. Position preserves the order lines were
// submitted in.
type RecipeIngredient struct {
	RecipeID     string `gorm:"type:uuid;primaryKey"`
	IngredientID string `gorm:"type:uuid;primaryKey"`
	Amount       int    `gorm:"not null"`
	Position     int    `gorm:"not null"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeTag struct {
	RecipeID string `gorm:"type:uuid;primaryKey"`
	TagID    string `gorm:"type:uuid;primaryKey"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// RecipeRow is a recipe as read back for a viewer: the stored row plus
// the per-viewer existence flags computed by the repository.
type RecipeRow struct {
	Recipe
	IsFavorited      bool `gorm:"column:is_favorited"`
	IsInShoppingCart bool `gorm:"column:is_in_shopping_cart"`
}

// Author is the short author representation embedded in recipe reads.
type Author struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
}

// IngredientLine is one rendered line of a recipe's ingredient list.
type IngredientLine struct {
	IngredientID    string
	Name            string
	MeasurementUnit string
	Amount          int
	Position        int
}

// RecipeDetails is the fully assembled read model.
type RecipeDetails struct {
	Recipe
	Author           Author
	Tags             []catalog.Tag
	Ingredients      []IngredientLine
	IsFavorited      bool
	IsInShoppingCart bool
}

type LineInput struct {
	IngredientID string
	Amount       int
}

type CreateRecipeInput struct {
	AuthorID    string
	Name        string
	Text        string
	CookingTime int
	TagIDs      []string
	Ingredients []LineInput
	Image       string
}

type UpdateRecipeInput struct {
	RecipeID    string
	RequesterID string
	Name        string
	Text        string
	CookingTime int
	TagIDs      []string
	Ingredients []LineInput
	Image       string
	ImageSet    bool
}

type ListFilter struct {
	TagSlugs         []string
	OnlyFavorited    bool
	OnlyInCart       bool
	AuthorID         string
	Limit            int
	Offset           int
}
