package relations

import "time"

type Favorite struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	RecipeID  string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type CartItem struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	RecipeID  string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CartItem) TableName() string {
	return "shopping_cart_items"
}

type Follow struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	AuthorID  string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Follow) TableName() string {
	return "follows"
}

// RecipeShort is the abbreviated recipe representation returned when a
// recipe is favorited or added to the cart.
type RecipeShort struct {
	ID          string
	Name        string
	Image       string
	CookingTime int
}

// AuthorShort is the abbreviated author representation returned on
// subscribe.
type AuthorShort struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}
