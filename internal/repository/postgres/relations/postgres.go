package relations

import (
	"context"
	"errors"

	relationsdomain "recipe-app-go/internal/domain/relations"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(relationsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetRecipeShort(ctx context.Context, recipeID string) (*relationsdomain.RecipeShort, error) {
	var short relationsdomain.RecipeShort
	if err := r.db.WithContext(ctx).
		Table("recipes").
		Select("id, name, image, cooking_time").
		Where("id = ?", recipeID).
		Take(&short).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, relationsdomain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &short, nil
}

func (r *PostgresRepository) GetAuthorShort(ctx context.Context, userID string) (*relationsdomain.AuthorShort, error) {
	var short relationsdomain.AuthorShort
	if err := r.db.WithContext(ctx).
		Table("profiles").
		Select("user_id AS id, email, first_name, last_name").
		Where("user_id = ?", userID).
		Take(&short).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, relationsdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &short, nil
}

func (r *PostgresRepository) FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&relationsdomain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateFavorite(ctx context.Context, favorite *relationsdomain.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return relationsdomain.ErrAlreadyFavorite
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&relationsdomain.Favorite{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CartItemExists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&relationsdomain.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateCartItem(ctx context.Context, item *relationsdomain.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return relationsdomain.ErrAlreadyInCart
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) DeleteCartItem(ctx context.Context, userID, recipeID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&relationsdomain.CartItem{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) FollowExists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&relationsdomain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateFollow(ctx context.Context, follow *relationsdomain.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return relationsdomain.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) DeleteFollow(ctx context.Context, userID, authorID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&relationsdomain.Follow{})
	return result.RowsAffected > 0, result.Error
}
