package handler

import (
	catalogdomain "recipe-app-go/internal/domain/catalog"
	recipesdomain "recipe-app-go/internal/domain/recipes"
	relationsdomain "recipe-app-go/internal/domain/relations"
	shoppinglistdomain "recipe-app-go/internal/domain/shoppinglist"
	userdomain "recipe-app-go/internal/domain/user"
	"recipe-app-go/pkg/logger"
)

// BlobStore persists uploaded recipe images and returns their public
// URLs.
type BlobStore interface {
	SaveDataURI(dataURI string) (string, error)
	Remove(fileURL string) error
}

type Handlers struct {
	Catalog      *catalogdomain.Service
	Recipes      *recipesdomain.Service
	Relations    *relationsdomain.Service
	ShoppingList *shoppinglistdomain.Service
	Users        *userdomain.Service

	blobs BlobStore
	log   logger.Logger
}

func New(
	catalog *catalogdomain.Service,
	recipes *recipesdomain.Service,
	relations *relationsdomain.Service,
	shoppingList *shoppinglistdomain.Service,
	users *userdomain.Service,
	blobs BlobStore,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Catalog:      catalog,
		Recipes:      recipes,
		Relations:    relations,
		ShoppingList: shoppingList,
		Users:        users,
		blobs:        blobs,
		log:          log,
	}
}
