package core

// Category 食材分類結果。值由上游模型決定，管線一律原樣傳遞，
// 不強制限於下列常數
type Category string

const (
	CategoryVegan      Category = "vegan"
	CategoryVegetarian Category = "vegetarian"
	CategoryRegular    Category = "regular"
)

// KnownCategories 僅供 CLI 提示用
var KnownCategories = []Category{CategoryVegan, CategoryVegetarian, CategoryRegular}

// ClassifyPromptTemplate 食材名稱逐字替換，不做跳脫
const ClassifyPromptTemplate = "Classify the ingredient '%s' as vegan, vegetarian, or regular. Respond in JSON format."
