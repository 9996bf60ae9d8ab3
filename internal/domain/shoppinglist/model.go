package shoppinglist

// FileName is the download filename for the rendered document.
const FileName = "shopping-list.txt"

// Line is one ingredient line of a cart recipe.
type Line struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// CartRecipe is a recipe in the user's cart with its ingredient lines
// in association order.
type CartRecipe struct {
	RecipeID string
	Name     string
	Author   string
	Lines    []Line
}

// SummaryLine is a derived total: amounts summed over every cart recipe
// for one (ingredient name, measurement unit) pair. It is computed on
// demand and never persisted.
type SummaryLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}
