package catalog

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository, cache Cache, cacheTTL time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *Service) ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	filter := ListIngredientsFilter{NamePrefix: strings.TrimSpace(namePrefix)}
	if filter.NamePrefix != "" {
		return s.repo.ListIngredients(ctx, filter)
	}

	if ingredients, ok := s.cache.GetIngredients(ctx); ok {
		return ingredients, nil
	}

	ingredients, err := s.repo.ListIngredients(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.cache.SetIngredients(ctx, ingredients, s.cacheTTL)
	return ingredients, nil
}

func (s *Service) GetIngredient(ctx context.Context, id string) (*Ingredient, error) {
	return s.repo.GetIngredientByID(ctx, id)
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	if tags, ok := s.cache.GetTags(ctx); ok {
		return tags, nil
	}

	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetTags(ctx, tags, s.cacheTTL)
	return tags, nil
}

func (s *Service) GetTag(ctx context.Context, id string) (*Tag, error) {
	return s.repo.GetTagByID(ctx, id)
}
