package catalog

// Ingredient is reference data: a name plus the unit amounts are
// measured in. The same name may appear with several units; the
// (name, measurement_unit) pair is unique.
type Ingredient struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Name            string `gorm:"not null;index"`
	MeasurementUnit string `gorm:"not null"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Tag is immutable reference data; name, color and slug are each unique.
type Tag struct {
	ID    string `gorm:"type:uuid;primaryKey"`
	Name  string `gorm:"not null;uniqueIndex"`
	Color string `gorm:"size:7;not null;uniqueIndex"`
	Slug  string `gorm:"not null;uniqueIndex"`
}

func (Tag) TableName() string {
	return "tags"
}

type ListIngredientsFilter struct {
	NamePrefix string
}
