package catalog

import (
	"context"
	"errors"

	catalogdomain "recipe-app-go/internal/domain/catalog"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListIngredients(ctx context.Context, filter catalogdomain.ListIngredientsFilter) ([]catalogdomain.Ingredient, error) {
	query := r.db.WithContext(ctx).Model(&catalogdomain.Ingredient{})
	if filter.NamePrefix != "" {
		query = query.Where("name ILIKE ?", escapeLike(filter.NamePrefix)+"%")
	}

	var ingredients []catalogdomain.Ingredient
	if err := query.Order("name asc, measurement_unit asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *PostgresRepository) GetIngredientByID(ctx context.Context, id string) (*catalogdomain.Ingredient, error) {
	var ingredient catalogdomain.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *PostgresRepository) GetOrCreateIngredient(ctx context.Context, ingredient *catalogdomain.Ingredient) (bool, error) {
	var existing catalogdomain.Ingredient
	result := r.db.WithContext(ctx).
		Where(catalogdomain.Ingredient{Name: ingredient.Name, MeasurementUnit: ingredient.MeasurementUnit}).
		Attrs(catalogdomain.Ingredient{ID: ingredient.ID}).
		FirstOrCreate(&existing)
	if result.Error != nil {
		return false, result.Error
	}
	*ingredient = existing
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListTags(ctx context.Context) ([]catalogdomain.Tag, error) {
	var tags []catalogdomain.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresRepository) GetTagByID(ctx context.Context, id string) (*catalogdomain.Tag, error) {
	var tag catalogdomain.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *PostgresRepository) GetOrCreateTag(ctx context.Context, tag *catalogdomain.Tag) (bool, error) {
	var existing catalogdomain.Tag
	result := r.db.WithContext(ctx).
		Where(catalogdomain.Tag{Name: tag.Name, Color: tag.Color, Slug: tag.Slug}).
		Attrs(catalogdomain.Tag{ID: tag.ID}).
		FirstOrCreate(&existing)
	if result.Error != nil {
		return false, result.Error
	}
	*tag = existing
	return result.RowsAffected > 0, nil
}

func escapeLike(value string) string {
	escaped := make([]rune, 0, len(value))
	for _, r := range value {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}
