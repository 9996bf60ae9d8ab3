//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"recipe-app-go/internal/blobstore"
	"recipe-app-go/internal/config"
	"recipe-app-go/internal/db"
	catalogdomain "recipe-app-go/internal/domain/catalog"
	recipesdomain "recipe-app-go/internal/domain/recipes"
	relationsdomain "recipe-app-go/internal/domain/relations"
	shoppinglistdomain "recipe-app-go/internal/domain/shoppinglist"
	userdomain "recipe-app-go/internal/domain/user"
	catalogpg "recipe-app-go/internal/repository/postgres/catalog"
	recipespg "recipe-app-go/internal/repository/postgres/recipes"
	relationspg "recipe-app-go/internal/repository/postgres/relations"
	shoppinglistpg "recipe-app-go/internal/repository/postgres/shoppinglist"
	userpg "recipe-app-go/internal/repository/postgres/user"
	"recipe-app-go/internal/transport/httpserver"
	"recipe-app-go/internal/transport/httpserver/handler"
	"recipe-app-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const jwtSecret = "e2e-test-secret"

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	tags   []catalogdomain.Tag
	flour  catalogdomain.Ingredient
	egg    catalogdomain.Ingredient
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, 0, "text")
	cfg := config.Config{
		DB:    config.DBConfig{DSN: dsn},
		Auth:  config.AuthConfig{JWTSecret: jwtSecret},
		Media: config.MediaConfig{Dir: t.TempDir(), BaseURL: "/media"},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	catalogRepo := catalogpg.NewPostgres(dbConn)
	env := &testEnv{db: dbConn}
	env.seedCatalog(t, catalogRepo)

	userService := userdomain.NewService(userpg.NewPostgres(dbConn))
	blobs, err := blobstore.NewLocalStore(cfg.Media.Dir, cfg.Media.BaseURL)
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	handlers := handler.New(
		catalogdomain.NewService(catalogRepo, nil, 0),
		recipesdomain.NewService(recipespg.NewPostgres(dbConn)),
		relationsdomain.NewService(relationspg.NewPostgres(dbConn)),
		shoppinglistdomain.NewService(shoppinglistpg.NewPostgres(dbConn)),
		userService,
		blobs,
		log,
	)

	router := httpserver.NewRouter(cfg, handlers, userService, prometheus.NewRegistry(), log)
	env.server = httptest.NewServer(router)
	return env
}

func (e *testEnv) seedCatalog(t *testing.T, repo catalogdomain.Repository) {
	t.Helper()
	ctx := context.Background()

	for _, tag := range []catalogdomain.Tag{
		{ID: uuid.NewString(), Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{ID: uuid.NewString(), Name: "Обед", Color: "#49B64E", Slug: "lunch"},
	} {
		stored := tag
		if _, err := repo.GetOrCreateTag(ctx, &stored); err != nil {
			t.Fatalf("seed tag: %v", err)
		}
		e.tags = append(e.tags, stored)
	}

	e.flour = catalogdomain.Ingredient{ID: uuid.NewString(), Name: "Flour", MeasurementUnit: "g"}
	if _, err := repo.GetOrCreateIngredient(ctx, &e.flour); err != nil {
		t.Fatalf("seed flour: %v", err)
	}
	e.egg = catalogdomain.Ingredient{ID: uuid.NewString(), Name: "Egg", MeasurementUnit: "pcs"}
	if _, err := repo.GetOrCreateIngredient(ctx, &e.egg); err != nil {
		t.Fatalf("seed egg: %v", err)
	}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.Exec(`
		TRUNCATE follows, shopping_cart_items, favorites, recipe_tags,
		recipe_ingredients, recipes, tags, ingredients, profiles CASCADE;
	`).Error
}

func mintToken(t *testing.T, userID, email, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"email":    email,
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, method, url, token string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				t.Fatalf("decode %s %s (%d): %v: %s", method, url, resp.StatusCode, err, raw)
			}
		}
	}
	return resp.StatusCode
}

// Tiny valid 1x1 PNG.
const pngDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestRecipeLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	author := mintToken(t, uuid.NewString(), "author@example.com", "author")
	viewerID := uuid.NewString()
	viewer := mintToken(t, viewerID, "viewer@example.com", "viewer")

	// Both tokens touch the API once so profiles exist.
	var authorMe, viewerMe struct {
		ID string `json:"id"`
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", author, nil, &authorMe); status != http.StatusOK {
		t.Fatalf("auth/me author: %d", status)
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", viewer, nil, &viewerMe); status != http.StatusOK {
		t.Fatalf("auth/me viewer: %d", status)
	}
	authorID := authorMe.ID

	createBody := map[string]interface{}{
		"name":         "Pancakes",
		"text":         "Mix everything and fry on both sides.",
		"cooking_time": 20,
		"tags":         []string{env.tags[0].ID},
		"ingredients": []map[string]interface{}{
			{"id": env.flour.ID, "amount": 200},
			{"id": env.egg.ID, "amount": 2},
		},
		"image": pngDataURI,
	}

	var created struct {
		ID          string `json:"id"`
		Image       string `json:"image"`
		Ingredients []struct {
			Name   string `json:"name"`
			Amount int    `json:"amount"`
		} `json:"ingredients"`
	}
	if status := doJSON(t, http.MethodPost, env.server.URL+"/api/recipes", author, createBody, &created); status != http.StatusCreated {
		t.Fatalf("create recipe: %d", status)
	}
	if created.ID == "" || !strings.HasPrefix(created.Image, "/media/") {
		t.Fatalf("unexpected create response: %+v", created)
	}
	if len(created.Ingredients) != 2 || created.Ingredients[0].Name != "Flour" {
		t.Fatalf("ingredient lines mismatch: %+v", created.Ingredients)
	}

	// Anonymous listing sees the recipe with false flags.
	var listing struct {
		Items []struct {
			ID          string `json:"id"`
			IsFavorited bool   `json:"is_favorited"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/recipes?tags=breakfast", "", nil, &listing); status != http.StatusOK {
		t.Fatalf("list recipes: %d", status)
	}
	if listing.Total != 1 || len(listing.Items) != 1 || listing.Items[0].IsFavorited {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	// Personalized filters without a token are an empty page, not an
	// error.
	var anonymousFavorites struct {
		Total int64 `json:"total"`
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/recipes?is_favorited=1", "", nil, &anonymousFavorites); status != http.StatusOK {
		t.Fatalf("anonymous favorited filter: %d", status)
	}
	if anonymousFavorites.Total != 0 {
		t.Fatalf("anonymous favorited filter total: %d", anonymousFavorites.Total)
	}

	// Malformed ids read as unknown ones.
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/recipes/notauuid", "", nil, nil); status != http.StatusNotFound {
		t.Fatalf("malformed recipe id: %d", status)
	}

	// Favorite and cart from the viewer.
	var short map[string]interface{}
	if status := doJSON(t, http.MethodPost, env.server.URL+"/api/recipes/"+created.ID+"/favorite", viewer, nil, &short); status != http.StatusCreated {
		t.Fatalf("favorite: %d", status)
	}
	if status := doJSON(t, http.MethodPost, env.server.URL+"/api/recipes/"+created.ID+"/favorite", viewer, nil, nil); status != http.StatusBadRequest {
		t.Fatalf("double favorite should 400, got %d", status)
	}
	if status := doJSON(t, http.MethodPost, env.server.URL+"/api/recipes/"+created.ID+"/shopping_cart", viewer, nil, nil); status != http.StatusCreated {
		t.Fatalf("add to cart: %d", status)
	}

	var flagged struct {
		IsFavorited      bool `json:"is_favorited"`
		IsInShoppingCart bool `json:"is_in_shopping_cart"`
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/recipes/"+created.ID, viewer, nil, &flagged); status != http.StatusOK {
		t.Fatalf("get recipe: %d", status)
	}
	if !flagged.IsFavorited || !flagged.IsInShoppingCart {
		t.Fatalf("viewer flags not set: %+v", flagged)
	}

	// Shopping list download.
	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/recipes/download_shopping_cart", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	document, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download status: %d", resp.StatusCode)
	}
	if !strings.Contains(string(document), "Рецепт Pancakes от author:\nFlour - 200 g\nEgg - 2 pcs\n") {
		t.Fatalf("shopping list document mismatch: %q", document)
	}

	// Subscriptions.
	if status := doJSON(t, http.MethodPost, env.server.URL+"/api/users/"+authorID+"/subscribe", viewer, nil, nil); status != http.StatusCreated {
		t.Fatalf("subscribe: %d", status)
	}
	if status := doJSON(t, http.MethodPost, env.server.URL+"/api/users/"+viewerID+"/subscribe", viewer, nil, nil); status != http.StatusBadRequest {
		t.Fatalf("self subscribe should 400, got %d", status)
	}

	var subscriptions struct {
		Items []struct {
			Username     string `json:"username"`
			RecipesCount int64  `json:"recipes_count"`
		} `json:"items"`
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/users/subscriptions", viewer, nil, &subscriptions); status != http.StatusOK {
		t.Fatalf("subscriptions: %d", status)
	}
	if len(subscriptions.Items) != 1 || subscriptions.Items[0].Username != "author" || subscriptions.Items[0].RecipesCount != 1 {
		t.Fatalf("unexpected subscriptions: %+v", subscriptions)
	}

	// Only the owner may delete.
	if status := doJSON(t, http.MethodDelete, env.server.URL+"/api/recipes/"+created.ID, viewer, nil, nil); status != http.StatusForbidden {
		t.Fatalf("delete by viewer should 403, got %d", status)
	}
	if status := doJSON(t, http.MethodDelete, env.server.URL+"/api/recipes/"+created.ID, author, nil, nil); status != http.StatusNoContent {
		t.Fatalf("delete by author: %d", status)
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/recipes/"+created.ID, "", nil, nil); status != http.StatusNotFound {
		t.Fatalf("deleted recipe should 404, got %d", status)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", "", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("missing token: %d", status)
	}
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/auth/me", "not-a-jwt", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", status)
	}

	// Public reads stay open.
	if status := doJSON(t, http.MethodGet, env.server.URL+"/api/tags", "", nil, nil); status != http.StatusOK {
		t.Fatalf("anonymous tags: %d", status)
	}
}
