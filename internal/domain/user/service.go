package user

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) UpsertProfile(ctx context.Context, userID, email, username, firstName, lastName, avatarURL string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	profile := Profile{
		UserID:    userID,
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

// GetProfile returns a profile with the viewer's subscription flag.
// An anonymous viewer (empty viewerID) never sees a true flag.
func (s *Service) GetProfile(ctx context.Context, viewerID, userID string) (*ProfileView, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := ProfileView{Profile: *profile}
	if viewerID != "" && viewerID != userID {
		subscribed, err := s.repo.FollowExists(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		view.IsSubscribed = subscribed
	}
	return &view, nil
}

// Subscriptions lists the authors the user follows, each with their
// recipes embedded. recipesLimit < 0 means no cap on embedded recipes.
func (s *Service) Subscriptions(ctx context.Context, userID string, recipesLimit, limit, offset int) ([]Subscription, int64, error) {
	authors, total, err := s.repo.ListFollowedAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(authors) == 0 {
		return []Subscription{}, total, nil
	}

	authorIDs := make([]string, 0, len(authors))
	for _, author := range authors {
		authorIDs = append(authorIDs, author.UserID)
	}

	recipesByAuthor, err := s.repo.GetRecipeShortsByAuthorIDs(ctx, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	subscriptions := make([]Subscription, 0, len(authors))
	for _, author := range authors {
		recipes := recipesByAuthor[author.UserID]
		count := int64(len(recipes))
		if recipesLimit >= 0 && len(recipes) > recipesLimit {
			recipes = recipes[:recipesLimit]
		}
		if recipes == nil {
			recipes = []RecipeShort{}
		}
		subscriptions = append(subscriptions, Subscription{
			Profile:      author,
			Recipes:      recipes,
			RecipesCount: count,
		})
	}
	return subscriptions, total, nil
}
