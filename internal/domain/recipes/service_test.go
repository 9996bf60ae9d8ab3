package recipes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"recipe-app-go/internal/domain/catalog"
)

const (
	authorID  = "aaaaaaaa-0000-0000-0000-000000000001"
	otherID   = "aaaaaaaa-0000-0000-0000-000000000002"
	tagID1    = "11111111-1111-1111-1111-111111111111"
	tagID2    = "22222222-2222-2222-2222-222222222222"
	flourID   = "33333333-3333-3333-3333-333333333333"
	eggID     = "44444444-4444-4444-4444-444444444444"
	unknownID = "99999999-9999-9999-9999-999999999999"
)

type fakeRecipesRepo struct {
	recipes     map[string]*Recipe
	tags        map[string]catalog.Tag
	ingredients map[string]catalog.Ingredient
	recipeTags  map[string][]string
	recipeLines map[string][]LineInput
	authors     map[string]Author
	favorites   map[string]map[string]bool
	cart        map[string]map[string]bool
	listCalls   int
}

func newFakeRecipesRepo() *fakeRecipesRepo {
	repo := &fakeRecipesRepo{
		recipes:     make(map[string]*Recipe),
		tags:        make(map[string]catalog.Tag),
		ingredients: make(map[string]catalog.Ingredient),
		recipeTags:  make(map[string][]string),
		recipeLines: make(map[string][]LineInput),
		authors:     make(map[string]Author),
		favorites:   make(map[string]map[string]bool),
		cart:        make(map[string]map[string]bool),
	}

	repo.tags[tagID1] = catalog.Tag{ID: tagID1, Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"}
	repo.tags[tagID2] = catalog.Tag{ID: tagID2, Name: "Обед", Color: "#49B64E", Slug: "lunch"}
	repo.ingredients[flourID] = catalog.Ingredient{ID: flourID, Name: "Flour", MeasurementUnit: "g"}
	repo.ingredients[eggID] = catalog.Ingredient{ID: eggID, Name: "Egg", MeasurementUnit: "pcs"}
	repo.authors[authorID] = Author{ID: authorID, Username: "u1", Email: "u1@example.com"}
	repo.authors[otherID] = Author{ID: otherID, Username: "u2", Email: "u2@example.com"}

	return repo
}

func (r *fakeRecipesRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeRecipesRepo) CountTagsByIDs(_ context.Context, tagIDs []string) (int64, error) {
	var count int64
	for _, id := range tagIDs {
		if _, ok := r.tags[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeRecipesRepo) CountIngredientsByIDs(_ context.Context, ingredientIDs []string) (int64, error) {
	var count int64
	for _, id := range ingredientIDs {
		if _, ok := r.ingredients[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeRecipesRepo) CountRecipesByAuthorAndName(_ context.Context, author, name, excludeID string) (int64, error) {
	var count int64
	for _, recipe := range r.recipes {
		if recipe.ID == excludeID {
			continue
		}
		if recipe.AuthorID == author && strings.EqualFold(recipe.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *fakeRecipesRepo) CreateRecipe(_ context.Context, recipe *Recipe) error {
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *fakeRecipesRepo) GetRecipeByID(_ context.Context, recipeID string) (*Recipe, error) {
	recipe, ok := r.recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	copied := *recipe
	return &copied, nil
}

func (r *fakeRecipesRepo) GetRecipeWithFlags(_ context.Context, viewerID, recipeID string) (*RecipeRow, error) {
	recipe, ok := r.recipes[recipeID]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	row := RecipeRow{Recipe: *recipe}
	if viewerID != "" {
		row.IsFavorited = r.favorites[viewerID][recipeID]
		row.IsInShoppingCart = r.cart[viewerID][recipeID]
	}
	return &row, nil
}

func (r *fakeRecipesRepo) UpdateRecipe(_ context.Context, recipe *Recipe) error {
	stored, ok := r.recipes[recipe.ID]
	if !ok {
		return ErrRecipeNotFound
	}
	stored.Name = recipe.Name
	stored.Image = recipe.Image
	stored.Text = recipe.Text
	stored.CookingTime = recipe.CookingTime
	return nil
}

func (r *fakeRecipesRepo) DeleteRecipe(_ context.Context, recipeID string) (bool, error) {
	if _, ok := r.recipes[recipeID]; !ok {
		return false, nil
	}
	delete(r.recipes, recipeID)
	delete(r.recipeTags, recipeID)
	delete(r.recipeLines, recipeID)
	return true, nil
}

func (r *fakeRecipesRepo) ListRecipes(_ context.Context, viewerID string, filter ListFilter) ([]RecipeRow, int64, error) {
	r.listCalls++
	rows := make([]RecipeRow, 0)
	for _, recipe := range r.recipes {
		if filter.AuthorID != "" && recipe.AuthorID != filter.AuthorID {
			continue
		}
		if len(filter.TagSlugs) > 0 && !r.hasAnyTagSlug(recipe.ID, filter.TagSlugs) {
			continue
		}
		if filter.OnlyFavorited && !r.favorites[viewerID][recipe.ID] {
			continue
		}
		if filter.OnlyInCart && !r.cart[viewerID][recipe.ID] {
			continue
		}
		row := RecipeRow{Recipe: *recipe}
		if viewerID != "" {
			row.IsFavorited = r.favorites[viewerID][recipe.ID]
			row.IsInShoppingCart = r.cart[viewerID][recipe.ID]
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	total := int64(len(rows))
	if filter.Offset > 0 {
		if filter.Offset >= len(rows) {
			return []RecipeRow{}, total, nil
		}
		rows = rows[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(rows) {
		rows = rows[:filter.Limit]
	}
	return rows, total, nil
}

func (r *fakeRecipesRepo) hasAnyTagSlug(recipeID string, slugs []string) bool {
	for _, tagID := range r.recipeTags[recipeID] {
		for _, slug := range slugs {
			if r.tags[tagID].Slug == slug {
				return true
			}
		}
	}
	return false
}

func (r *fakeRecipesRepo) ReplaceRecipeTags(_ context.Context, recipeID string, tagIDs []string) error {
	r.recipeTags[recipeID] = append([]string(nil), tagIDs...)
	return nil
}

func (r *fakeRecipesRepo) ReplaceRecipeIngredients(_ context.Context, recipeID string, lines []LineInput) error {
	r.recipeLines[recipeID] = append([]LineInput(nil), lines...)
	return nil
}

func (r *fakeRecipesRepo) GetTagsByRecipeIDs(_ context.Context, recipeIDs []string) (map[string][]catalog.Tag, error) {
	result := make(map[string][]catalog.Tag)
	for _, recipeID := range recipeIDs {
		for _, tagID := range r.recipeTags[recipeID] {
			result[recipeID] = append(result[recipeID], r.tags[tagID])
		}
	}
	return result, nil
}

func (r *fakeRecipesRepo) GetLinesByRecipeIDs(_ context.Context, recipeIDs []string) (map[string][]IngredientLine, error) {
	result := make(map[string][]IngredientLine)
	for _, recipeID := range recipeIDs {
		for position, line := range r.recipeLines[recipeID] {
			ingredient := r.ingredients[line.IngredientID]
			result[recipeID] = append(result[recipeID], IngredientLine{
				IngredientID:    line.IngredientID,
				Name:            ingredient.Name,
				MeasurementUnit: ingredient.MeasurementUnit,
				Amount:          line.Amount,
				Position:        position,
			})
		}
	}
	return result, nil
}

func (r *fakeRecipesRepo) GetAuthorsByIDs(_ context.Context, authorIDs []string) (map[string]Author, error) {
	result := make(map[string]Author)
	for _, id := range authorIDs {
		if author, ok := r.authors[id]; ok {
			result[id] = author
		}
	}
	return result, nil
}

func validCreateInput() CreateRecipeInput {
	return CreateRecipeInput{
		AuthorID:    authorID,
		Name:        "Pancakes",
		Text:        "Mix everything and fry on both sides.",
		CookingTime: 20,
		TagIDs:      []string{tagID1, tagID2},
		Ingredients: []LineInput{
			{IngredientID: flourID, Amount: 200},
			{IngredientID: eggID, Amount: 2},
		},
		Image: "/media/pancakes.png",
	}
}

func TestCreateRecipeRoundtrip(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	details, err := service.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if details.Name != "Pancakes" || details.CookingTime != 20 {
		t.Errorf("unexpected header: %+v", details.Recipe)
	}
	if details.Author.Username != "u1" {
		t.Errorf("got author %q, want u1", details.Author.Username)
	}
	if len(details.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(details.Tags))
	}
	if len(details.Ingredients) != 2 {
		t.Fatalf("got %d ingredient lines, want 2", len(details.Ingredients))
	}
	if details.Ingredients[0].Name != "Flour" || details.Ingredients[0].Amount != 200 {
		t.Errorf("first line out of order: %+v", details.Ingredients[0])
	}
	if details.Ingredients[1].Name != "Egg" || details.Ingredients[1].Amount != 2 {
		t.Errorf("second line out of order: %+v", details.Ingredients[1])
	}
	if details.IsFavorited || details.IsInShoppingCart {
		t.Errorf("fresh recipe should have false flags")
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	cases := []struct {
		name   string
		mutate func(*CreateRecipeInput)
		field  string
	}{
		{name: "name too short", mutate: func(in *CreateRecipeInput) { in.Name = "X" }, field: "name"},
		{name: "name too long", mutate: func(in *CreateRecipeInput) { in.Name = strings.Repeat("x", 41) }, field: "name"},
		{name: "text too short", mutate: func(in *CreateRecipeInput) { in.Text = "short" }, field: "text"},
		{name: "cooking time zero", mutate: func(in *CreateRecipeInput) { in.CookingTime = 0 }, field: "cooking_time"},
		{name: "cooking time too long", mutate: func(in *CreateRecipeInput) { in.CookingTime = 1441 }, field: "cooking_time"},
		{name: "no tags", mutate: func(in *CreateRecipeInput) { in.TagIDs = nil }, field: "tags"},
		{name: "no ingredients", mutate: func(in *CreateRecipeInput) { in.Ingredients = nil }, field: "ingredients"},
		{name: "zero amount", mutate: func(in *CreateRecipeInput) {
			in.Ingredients = []LineInput{{IngredientID: flourID, Amount: 0}}
		}, field: "ingredients"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)

			_, err := service.Create(context.Background(), input)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if validation.Field != tc.field {
				t.Errorf("got field %q, want %q", validation.Field, tc.field)
			}
		})
	}
}

func TestCreateRecipeDuplicateAndUnknownReferences(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	input := validCreateInput()
	input.TagIDs = []string{tagID1, tagID1}
	if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrDuplicateTag) {
		t.Errorf("duplicate tag: got %v", err)
	}

	input = validCreateInput()
	input.Ingredients = []LineInput{
		{IngredientID: flourID, Amount: 100},
		{IngredientID: flourID, Amount: 300},
	}
	if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrDuplicateIngredient) {
		t.Errorf("duplicate ingredient with differing amounts: got %v", err)
	}

	input = validCreateInput()
	input.TagIDs = []string{tagID1, unknownID}
	if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("unknown tag: got %v", err)
	}

	input = validCreateInput()
	input.Ingredients = []LineInput{{IngredientID: unknownID, Amount: 5}}
	if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrIngredientNotFound) {
		t.Errorf("unknown ingredient: got %v", err)
	}

	if len(repo.recipes) != 0 {
		t.Errorf("failed creates must not persist recipes, found %d", len(repo.recipes))
	}
}

func TestCreateRecipeNameTakenPerAuthor(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	if _, err := service.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	if _, err := service.Create(context.Background(), validCreateInput()); !errors.Is(err, ErrNameTaken) {
		t.Errorf("same author, same name: got %v", err)
	}

	input := validCreateInput()
	input.AuthorID = otherID
	if _, err := service.Create(context.Background(), input); err != nil {
		t.Errorf("other author may reuse the name: %v", err)
	}
}

func TestUpdateRecipeReplacesAssociations(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(context.Background(), UpdateRecipeInput{
		RecipeID:    created.ID,
		RequesterID: authorID,
		Name:        "Thin pancakes",
		Text:        "Mix everything, rest the batter, fry.",
		CookingTime: 30,
		TagIDs:      []string{tagID2},
		Ingredients: []LineInput{{IngredientID: eggID, Amount: 3}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Thin pancakes" || updated.CookingTime != 30 {
		t.Errorf("header not updated: %+v", updated.Recipe)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != tagID2 {
		t.Errorf("old tag set must be replaced, got %+v", updated.Tags)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].IngredientID != eggID {
		t.Errorf("old lines must be replaced, got %+v", updated.Ingredients)
	}
	if updated.Image != created.Image {
		t.Errorf("image must survive an update without a new image")
	}
}

func TestUpdateRecipeOwnership(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = service.Update(context.Background(), UpdateRecipeInput{
		RecipeID:    created.ID,
		RequesterID: otherID,
		Name:        "Stolen pancakes",
		Text:        "Mix everything and fry on both sides.",
		CookingTime: 20,
		TagIDs:      []string{tagID1},
		Ingredients: []LineInput{{IngredientID: flourID, Amount: 100}},
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("got %v, want ErrNotOwner", err)
	}

	if err := service.Delete(context.Background(), otherID, created.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("delete by non-owner: got %v, want ErrNotOwner", err)
	}

	if err := service.Delete(context.Background(), authorID, created.ID); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
	if err := service.Delete(context.Background(), authorID, created.ID); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("second delete: got %v, want ErrRecipeNotFound", err)
	}
}

func TestGetRecipeViewerFlags(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.favorites[otherID] = map[string]bool{created.ID: true}

	anonymous, err := service.Get(context.Background(), "", created.ID)
	if err != nil {
		t.Fatalf("anonymous get: %v", err)
	}
	if anonymous.IsFavorited || anonymous.IsInShoppingCart {
		t.Errorf("anonymous viewer must see false flags")
	}

	viewer, err := service.Get(context.Background(), otherID, created.ID)
	if err != nil {
		t.Fatalf("viewer get: %v", err)
	}
	if !viewer.IsFavorited {
		t.Errorf("favoriting viewer must see is_favorited true")
	}

	if _, err := service.Get(context.Background(), "", unknownID); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestListRecipesFilters(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	first, err := service.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create first: %v", err)
	}

	input := validCreateInput()
	input.AuthorID = otherID
	input.Name = "Soup"
	input.TagIDs = []string{tagID2}
	second, err := service.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	repo.cart[authorID] = map[string]bool{second.ID: true}

	all, total, err := service.List(context.Background(), "", ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("got %d/%d recipes, want 2/2", len(all), total)
	}

	byAuthor, _, err := service.List(context.Background(), "", ListFilter{AuthorID: otherID, Limit: 10})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].ID != second.ID {
		t.Errorf("author filter failed: %+v", byAuthor)
	}

	bySlug, _, err := service.List(context.Background(), "", ListFilter{TagSlugs: []string{"breakfast"}, Limit: 10})
	if err != nil {
		t.Fatalf("list by slug: %v", err)
	}
	if len(bySlug) != 1 || bySlug[0].ID != first.ID {
		t.Errorf("tag slug filter failed: %+v", bySlug)
	}

	inCart, _, err := service.List(context.Background(), authorID, ListFilter{OnlyInCart: true, Limit: 10})
	if err != nil {
		t.Fatalf("list in cart: %v", err)
	}
	if len(inCart) != 1 || inCart[0].ID != second.ID || !inCart[0].IsInShoppingCart {
		t.Errorf("cart filter failed: %+v", inCart)
	}
}

func TestListRecipesAnonymousPersonalFiltersAreEmpty(t *testing.T) {
	repo := newFakeRecipesRepo()
	service := NewService(repo)

	if _, err := service.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	calls := repo.listCalls

	for _, filter := range []ListFilter{
		{OnlyFavorited: true, Limit: 10},
		{OnlyInCart: true, Limit: 10},
	} {
		details, total, err := service.List(context.Background(), "", filter)
		if err != nil {
			t.Fatalf("list %+v: %v", filter, err)
		}
		if len(details) != 0 || total != 0 {
			t.Errorf("got %d/%d recipes for %+v, want empty page", len(details), total, filter)
		}
	}
	if repo.listCalls != calls {
		t.Errorf("anonymous personal filter queried the repository")
	}
}
