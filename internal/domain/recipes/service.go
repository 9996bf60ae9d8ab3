package recipes

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	minNameLen     = 2
	maxNameLen     = 40
	minTextLen     = 10
	minCookingTime = 1
	maxCookingTime = 1440
	minAmount      = 1
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists the recipe header, its ingredient association rows
// and its tag set inside one transaction. No partial recipe is ever
// visible: any failed step rolls back the whole write.
func (s *Service) Create(ctx context.Context, input CreateRecipeInput) (*RecipeDetails, error) {
	name := strings.TrimSpace(input.Name)
	text := strings.TrimSpace(input.Text)
	if err := validateFields(name, text, input.CookingTime); err != nil {
		return nil, err
	}

	tagIDs, err := checkTagIDs(input.TagIDs)
	if err != nil {
		return nil, err
	}
	lines, err := checkLines(input.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := Recipe{
		ID:          uuid.NewString(),
		AuthorID:    input.AuthorID,
		Name:        name,
		Image:       input.Image,
		Text:        text,
		CookingTime: input.CookingTime,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := checkReferences(ctx, tx, tagIDs, lines); err != nil {
			return err
		}

		taken, err := tx.CountRecipesByAuthorAndName(ctx, recipe.AuthorID, recipe.Name, "")
		if err != nil {
			return err
		}
		if taken > 0 {
			return ErrNameTaken
		}

		if err := tx.CreateRecipe(ctx, &recipe); err != nil {
			return err
		}
		if err := tx.ReplaceRecipeIngredients(ctx, recipe.ID, lines); err != nil {
			return err
		}
		return tx.ReplaceRecipeTags(ctx, recipe.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, input.AuthorID, recipe.ID)
}

// Update replaces the tag set and the ingredient lines wholesale: old
// association rows are deleted and the submitted ones inserted, so the
// payload must always carry the complete desired sets.
func (s *Service) Update(ctx context.Context, input UpdateRecipeInput) (*RecipeDetails, error) {
	name := strings.TrimSpace(input.Name)
	text := strings.TrimSpace(input.Text)
	if err := validateFields(name, text, input.CookingTime); err != nil {
		return nil, err
	}

	tagIDs, err := checkTagIDs(input.TagIDs)
	if err != nil {
		return nil, err
	}
	lines, err := checkLines(input.Ingredients)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		recipe, err := tx.GetRecipeByID(ctx, input.RecipeID)
		if err != nil {
			return err
		}
		if recipe.AuthorID != input.RequesterID {
			return ErrNotOwner
		}

		if err := checkReferences(ctx, tx, tagIDs, lines); err != nil {
			return err
		}

		taken, err := tx.CountRecipesByAuthorAndName(ctx, recipe.AuthorID, name, recipe.ID)
		if err != nil {
			return err
		}
		if taken > 0 {
			return ErrNameTaken
		}

		recipe.Name = name
		recipe.Text = text
		recipe.CookingTime = input.CookingTime
		if input.ImageSet {
			recipe.Image = input.Image
		}

		if err := tx.UpdateRecipe(ctx, recipe); err != nil {
			return err
		}
		if err := tx.ReplaceRecipeIngredients(ctx, recipe.ID, lines); err != nil {
			return err
		}
		return tx.ReplaceRecipeTags(ctx, recipe.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, input.RequesterID, input.RecipeID)
}

func (s *Service) Delete(ctx context.Context, requesterID, recipeID string) error {
	recipe, err := s.repo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != requesterID {
		return ErrNotOwner
	}

	deleted, err := s.repo.DeleteRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecipeNotFound
	}
	return nil
}

// Get returns one recipe with viewer flags. viewerID may be empty for
// an anonymous viewer; both flags are then false.
func (s *Service) Get(ctx context.Context, viewerID, recipeID string) (*RecipeDetails, error) {
	row, err := s.repo.GetRecipeWithFlags(ctx, viewerID, recipeID)
	if err != nil {
		return nil, err
	}

	details, err := s.assemble(ctx, []RecipeRow{*row})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// List returns recipes newest-first with viewer flags applied.
func (s *Service) List(ctx context.Context, viewerID string, filter ListFilter) ([]RecipeDetails, int64, error) {
	// An anonymous viewer has no favorites or cart, so these filters
	// can only produce an empty page.
	if viewerID == "" && (filter.OnlyFavorited || filter.OnlyInCart) {
		return []RecipeDetails{}, 0, nil
	}

	rows, total, err := s.repo.ListRecipes(ctx, viewerID, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return []RecipeDetails{}, total, nil
	}

	details, err := s.assemble(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *Service) assemble(ctx context.Context, rows []RecipeRow) ([]RecipeDetails, error) {
	recipeIDs := make([]string, 0, len(rows))
	authorSet := make(map[string]struct{}, len(rows))
	authorIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		recipeIDs = append(recipeIDs, row.ID)
		if _, ok := authorSet[row.AuthorID]; !ok {
			authorSet[row.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, row.AuthorID)
		}
	}

	tagsByRecipe, err := s.repo.GetTagsByRecipeIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	linesByRecipe, err := s.repo.GetLinesByRecipeIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.repo.GetAuthorsByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	details := make([]RecipeDetails, 0, len(rows))
	for _, row := range rows {
		details = append(details, RecipeDetails{
			Recipe:           row.Recipe,
			Author:           authors[row.AuthorID],
			Tags:             tagsByRecipe[row.ID],
			Ingredients:      linesByRecipe[row.ID],
			IsFavorited:      row.IsFavorited,
			IsInShoppingCart: row.IsInShoppingCart,
		})
	}
	return details, nil
}

func validateFields(name, text string, cookingTime int) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < minNameLen {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at least %d characters", minNameLen)}
	}
	if nameLen > maxNameLen {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", maxNameLen)}
	}
	if utf8.RuneCountInString(text) < minTextLen {
		return &ValidationError{Field: "text", Message: fmt.Sprintf("must be at least %d characters", minTextLen)}
	}
	if cookingTime < minCookingTime {
		return &ValidationError{Field: "cooking_time", Message: fmt.Sprintf("must be at least %d", minCookingTime)}
	}
	if cookingTime > maxCookingTime {
		return &ValidationError{Field: "cooking_time", Message: fmt.Sprintf("must be at most %d", maxCookingTime)}
	}
	return nil
}

func checkTagIDs(tagIDs []string) ([]string, error) {
	result := make([]string, 0, len(tagIDs))
	seen := make(map[string]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		id := strings.TrimSpace(tagID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return nil, ErrDuplicateTag
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	if len(result) == 0 {
		return nil, &ValidationError{Field: "tags", Message: "at least one tag is required"}
	}
	return result, nil
}

func checkLines(lines []LineInput) ([]LineInput, error) {
	result := make([]LineInput, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line.IngredientID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return nil, ErrDuplicateIngredient
		}
		seen[id] = struct{}{}
		if line.Amount < minAmount {
			return nil, &ValidationError{Field: "ingredients", Message: fmt.Sprintf("amount must be at least %d", minAmount)}
		}
		result = append(result, LineInput{IngredientID: id, Amount: line.Amount})
	}
	if len(result) == 0 {
		return nil, &ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}
	return result, nil
}

func checkReferences(ctx context.Context, tx Repository, tagIDs []string, lines []LineInput) error {
	tagCount, err := tx.CountTagsByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if tagCount != int64(len(tagIDs)) {
		return ErrTagNotFound
	}

	ingredientIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		ingredientIDs = append(ingredientIDs, line.IngredientID)
	}
	ingredientCount, err := tx.CountIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return err
	}
	if ingredientCount != int64(len(ingredientIDs)) {
		return ErrIngredientNotFound
	}
	return nil
}
