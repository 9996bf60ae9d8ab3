package catalog

import (
	"context"
	"time"
)

// Cache holds the full tag and ingredient listings. Both are small,
// rarely-changing reference data, so one key per listing with a TTL is
// enough. The ingredient entry covers the unfiltered listing only;
// prefix searches always hit the database.
type Cache interface {
	GetTags(ctx context.Context) ([]Tag, bool)
	SetTags(ctx context.Context, tags []Tag, ttl time.Duration)
	GetIngredients(ctx context.Context) ([]Ingredient, bool)
	SetIngredients(ctx context.Context, ingredients []Ingredient, ttl time.Duration)
}

type noopCache struct{}

func (noopCache) GetTags(context.Context) ([]Tag, bool)                       { return nil, false }
func (noopCache) SetTags(context.Context, []Tag, time.Duration)               {}
func (noopCache) GetIngredients(context.Context) ([]Ingredient, bool)         { return nil, false }
func (noopCache) SetIngredients(context.Context, []Ingredient, time.Duration) {}
