package user

import (
	"context"
	"errors"

	userdomain "recipe-app-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertProfile(ctx context.Context, profile *userdomain.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "email", "first_name", "last_name", "avatar_url", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*userdomain.Profile, error) {
	var profile userdomain.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) FollowExists(ctx context.Context, followerID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("follows").
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListFollowedAuthors(ctx context.Context, followerID string, limit, offset int) ([]userdomain.Profile, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&userdomain.Profile{}).
		Joins("JOIN follows ON follows.author_id = profiles.user_id").
		Where("follows.user_id = ?", followerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Order("follows.created_at, profiles.user_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var profiles []userdomain.Profile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *PostgresRepository) GetRecipeShortsByAuthorIDs(ctx context.Context, authorIDs []string) (map[string][]userdomain.RecipeShort, error) {
	result := make(map[string][]userdomain.RecipeShort, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		AuthorID    string `gorm:"column:author_id"`
		ID          string `gorm:"column:id"`
		Name        string `gorm:"column:name"`
		Image       string `gorm:"column:image"`
		CookingTime int    `gorm:"column:cooking_time"`
	}

	if err := r.db.WithContext(ctx).
		Table("recipes").
		Select("author_id, id, name, image, cooking_time").
		Where("author_id IN ?", authorIDs).
		Order("author_id, created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.AuthorID] = append(result[row.AuthorID], userdomain.RecipeShort{
			ID:          row.ID,
			Name:        row.Name,
			Image:       row.Image,
			CookingTime: row.CookingTime,
		})
	}
	return result, nil
}
