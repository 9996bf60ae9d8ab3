package user

import "context"

type Repository interface {
	UpsertProfile(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, userID string) (*Profile, error)
	FollowExists(ctx context.Context, followerID, authorID string) (bool, error)
	ListFollowedAuthors(ctx context.Context, followerID string, limit, offset int) ([]Profile, int64, error)
	GetRecipeShortsByAuthorIDs(ctx context.Context, authorIDs []string) (map[string][]RecipeShort, error)
}
