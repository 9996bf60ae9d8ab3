package shoppinglist

import (
	"context"

	shoppinglistdomain "recipe-app-go/internal/domain/shoppinglist"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCart(ctx context.Context, userID string) ([]shoppinglistdomain.CartRecipe, error) {
	var recipeRows []struct {
		RecipeID string `gorm:"column:recipe_id"`
		Name     string `gorm:"column:name"`
		Author   string `gorm:"column:author"`
	}

	if err := r.db.WithContext(ctx).
		Table("shopping_cart_items").
		Select("shopping_cart_items.recipe_id, recipes.name, profiles.username AS author").
		Joins("JOIN recipes ON recipes.id = shopping_cart_items.recipe_id").
		Joins("JOIN profiles ON profiles.user_id = recipes.author_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Order("shopping_cart_items.created_at, shopping_cart_items.recipe_id").
		Find(&recipeRows).Error; err != nil {
		return nil, err
	}

	if len(recipeRows) == 0 {
		return nil, nil
	}

	recipeIDs := make([]string, 0, len(recipeRows))
	for _, row := range recipeRows {
		recipeIDs = append(recipeIDs, row.RecipeID)
	}

	var lineRows []struct {
		RecipeID        string `gorm:"column:recipe_id"`
		Name            string `gorm:"column:name"`
		MeasurementUnit string `gorm:"column:measurement_unit"`
		Amount          int    `gorm:"column:amount"`
	}

	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.recipe_id, ingredients.name, ingredients.measurement_unit, recipe_ingredients.amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", recipeIDs).
		Order("recipe_ingredients.recipe_id, recipe_ingredients.position").
		Find(&lineRows).Error; err != nil {
		return nil, err
	}

	linesByRecipe := make(map[string][]shoppinglistdomain.Line, len(recipeIDs))
	for _, row := range lineRows {
		linesByRecipe[row.RecipeID] = append(linesByRecipe[row.RecipeID], shoppinglistdomain.Line{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	cart := make([]shoppinglistdomain.CartRecipe, 0, len(recipeRows))
	for _, row := range recipeRows {
		cart = append(cart, shoppinglistdomain.CartRecipe{
			RecipeID: row.RecipeID,
			Name:     row.Name,
			Author:   row.Author,
			Lines:    linesByRecipe[row.RecipeID],
		})
	}
	return cart, nil
}
