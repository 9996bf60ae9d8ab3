package user

import "time"

type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	AvatarURL *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileView is a profile as seen by a viewer.
type ProfileView struct {
	Profile
	IsSubscribed bool
}

type RecipeShort struct {
	ID          string
	Name        string
	Image       string
	CookingTime int
}

// Subscription is one followed author with an embedded, possibly
// capped, slice of their recipes.
type Subscription struct {
	Profile
	Recipes      []RecipeShort
	RecipesCount int64
}
