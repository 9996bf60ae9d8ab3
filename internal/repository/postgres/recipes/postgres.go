package recipes

import (
	"context"
	"errors"

	catalogdomain "recipe-app-go/internal/domain/catalog"
	recipesdomain "recipe-app-go/internal/domain/recipes"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(recipesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CountTagsByIDs(ctx context.Context, tagIDs []string) (int64, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalogdomain.Tag{}).
		Where("id IN ?", tagIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountIngredientsByIDs(ctx context.Context, ingredientIDs []string) (int64, error) {
	if len(ingredientIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalogdomain.Ingredient{}).
		Where("id IN ?", ingredientIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountRecipesByAuthorAndName(ctx context.Context, authorID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&recipesdomain.Recipe{}).
		Where("author_id = ? AND lower(name) = lower(?)", authorID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateRecipe inserts the recipe header. The service checks the
// per-author name before inserting; the unique constraint backstops a
// concurrent insert between that check and this one.
func (r *PostgresRepository) CreateRecipe(ctx context.Context, recipe *recipesdomain.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return recipesdomain.ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetRecipeByID(ctx context.Context, recipeID string) (*recipesdomain.Recipe, error) {
	var recipe recipesdomain.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipesdomain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *PostgresRepository) GetRecipeWithFlags(ctx context.Context, viewerID, recipeID string) (*recipesdomain.RecipeRow, error) {
	query := withViewerFlags(r.db.WithContext(ctx).Model(&recipesdomain.Recipe{}), viewerID).
		Where("recipes.id = ?", recipeID)

	var row recipesdomain.RecipeRow
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipesdomain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PostgresRepository) UpdateRecipe(ctx context.Context, recipe *recipesdomain.Recipe) error {
	return r.db.WithContext(ctx).
		Model(&recipesdomain.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}).Error
}

func (r *PostgresRepository) DeleteRecipe(ctx context.Context, recipeID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&recipesdomain.Recipe{}, "id = ?", recipeID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListRecipes(ctx context.Context, viewerID string, filter recipesdomain.ListFilter) ([]recipesdomain.RecipeRow, int64, error) {
	query := r.db.WithContext(ctx).Model(&recipesdomain.Recipe{})

	joined := false
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		joined = true
	}
	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	// An anonymous viewer has no favorites or cart, so these filters
	// can only yield an empty page. The empty string must not reach the
	// uuid column bind: postgres rejects the cast.
	if (filter.OnlyFavorited || filter.OnlyInCart) && viewerID == "" {
		return []recipesdomain.RecipeRow{}, 0, nil
	}
	if filter.OnlyFavorited {
		query = query.Where(
			"EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)",
			viewerID,
		)
	}
	if filter.OnlyInCart {
		query = query.Where(
			"EXISTS (SELECT 1 FROM shopping_cart_items WHERE shopping_cart_items.recipe_id = recipes.id AND shopping_cart_items.user_id = ?)",
			viewerID,
		)
	}

	countQuery := query.Session(&gorm.Session{})
	if joined {
		countQuery = countQuery.Distinct("recipes.id")
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = withViewerFlags(query, viewerID)
	if joined {
		query = query.Distinct()
	}

	query = query.Order("recipes.created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []recipesdomain.RecipeRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *PostgresRepository) ReplaceRecipeTags(ctx context.Context, recipeID string, tagIDs []string) error {
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&recipesdomain.RecipeTag{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]recipesdomain.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, recipesdomain.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *PostgresRepository) ReplaceRecipeIngredients(ctx context.Context, recipeID string, lines []recipesdomain.LineInput) error {
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&recipesdomain.RecipeIngredient{}).Error; err != nil {
		return err
	}

	if len(lines) == 0 {
		return nil
	}

	rows := make([]recipesdomain.RecipeIngredient, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, recipesdomain.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
			Position:     i,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PostgresRepository) GetTagsByRecipeIDs(ctx context.Context, recipeIDs []string) (map[string][]catalogdomain.Tag, error) {
	result := make(map[string][]catalogdomain.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RecipeID string `gorm:"column:recipe_id"`
		ID       string `gorm:"column:id"`
		Name     string `gorm:"column:name"`
		Color    string `gorm:"column:color"`
		Slug     string `gorm:"column:slug"`
	}

	if err := r.db.WithContext(ctx).
		Table("recipe_tags").
		Select("recipe_tags.recipe_id, tags.id, tags.name, tags.color, tags.slug").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("recipe_tags.recipe_id IN ?", recipeIDs).
		Order("recipe_tags.recipe_id, tags.name").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], catalogdomain.Tag{
			ID:    row.ID,
			Name:  row.Name,
			Color: row.Color,
			Slug:  row.Slug,
		})
	}
	return result, nil
}

func (r *PostgresRepository) GetLinesByRecipeIDs(ctx context.Context, recipeIDs []string) (map[string][]recipesdomain.IngredientLine, error) {
	result := make(map[string][]recipesdomain.IngredientLine, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RecipeID        string `gorm:"column:recipe_id"`
		IngredientID    string `gorm:"column:ingredient_id"`
		Name            string `gorm:"column:name"`
		MeasurementUnit string `gorm:"column:measurement_unit"`
		Amount          int    `gorm:"column:amount"`
		Position        int    `gorm:"column:position"`
	}

	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.recipe_id, recipe_ingredients.ingredient_id, ingredients.name, ingredients.measurement_unit, recipe_ingredients.amount, recipe_ingredients.position").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", recipeIDs).
		Order("recipe_ingredients.recipe_id, recipe_ingredients.position").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], recipesdomain.IngredientLine{
			IngredientID:    row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
			Position:        row.Position,
		})
	}
	return result, nil
}

func (r *PostgresRepository) GetAuthorsByIDs(ctx context.Context, authorIDs []string) (map[string]recipesdomain.Author, error) {
	result := make(map[string]recipesdomain.Author, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		UserID    string `gorm:"column:user_id"`
		Email     string `gorm:"column:email"`
		Username  string `gorm:"column:username"`
		FirstName string `gorm:"column:first_name"`
		LastName  string `gorm:"column:last_name"`
	}

	if err := r.db.WithContext(ctx).
		Table("profiles").
		Where("user_id IN ?", authorIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.UserID] = recipesdomain.Author{
			ID:        row.UserID,
			Email:     row.Email,
			Username:  row.Username,
			FirstName: row.FirstName,
			LastName:  row.LastName,
		}
	}
	return result, nil
}

// withViewerFlags selects the recipe row plus the per-viewer existence
// flags. Anonymous viewers get constant false, computed in SQL so both
// cases share one scan path.
func withViewerFlags(query *gorm.DB, viewerID string) *gorm.DB {
	if viewerID == "" {
		return query.Select("recipes.*, FALSE AS is_favorited, FALSE AS is_in_shopping_cart")
	}
	return query.Select(
		"recipes.*, "+
			"EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
			"EXISTS (SELECT 1 FROM shopping_cart_items WHERE shopping_cart_items.recipe_id = recipes.id AND shopping_cart_items.user_id = ?) AS is_in_shopping_cart",
		viewerID, viewerID,
	)
}
