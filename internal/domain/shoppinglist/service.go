package shoppinglist

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Build renders the user's shopping list document. The format is a
// compatibility contract: a header, then one block per cart recipe
// listing that recipe's own ingredient lines. Identical ingredients
// from different recipes are NOT merged in the rendered text; an empty
// cart yields the header alone.
func (s *Service) Build(ctx context.Context, userID string) (string, error) {
	cart, err := s.repo.ListCart(ctx, userID)
	if err != nil {
		return "", err
	}
	return Render(cart), nil
}

func Render(cart []CartRecipe) string {
	var b strings.Builder
	b.WriteString("Список покупок:\n")
	b.WriteString("\n")
	for _, recipe := range cart {
		fmt.Fprintf(&b, "Рецепт %s от %s:\n", recipe.Name, recipe.Author)
		for _, line := range recipe.Lines {
			fmt.Fprintf(&b, "%s - %d %s\n", line.Name, line.Amount, line.MeasurementUnit)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Aggregate sums amounts over the whole cart keyed by (ingredient name,
// measurement unit), in first-seen order. The rendered document keeps
// the per-recipe grouping; this is for callers that want totals.
func Aggregate(cart []CartRecipe) []SummaryLine {
	type key struct {
		name string
		unit string
	}

	index := make(map[key]int)
	totals := make([]SummaryLine, 0)
	for _, recipe := range cart {
		for _, line := range recipe.Lines {
			k := key{name: line.Name, unit: line.MeasurementUnit}
			if i, ok := index[k]; ok {
				totals[i].Amount += line.Amount
				continue
			}
			index[k] = len(totals)
			totals = append(totals, SummaryLine{
				Name:            line.Name,
				MeasurementUnit: line.MeasurementUnit,
				Amount:          line.Amount,
			})
		}
	}
	return totals
}
