package entity

import "time"

// RecipeModel is the persisted categorical regressor of the recipe
// estimator: a product-name encoding plus the fitted parameter vectors,
// both stored as JSON. A single current row is kept; training replaces it.
type RecipeModel struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CategoriesJSON string    `json:"-" gorm:"type:text;not null"`
	ValuesJSON     string    `json:"-" gorm:"type:text;not null"`
	ProductCount   int       `json:"product_count" gorm:"not null"`
	TrainScore     float64   `json:"train_score"`
	TestScore      float64   `json:"test_score"`
	TrainedAt      time.Time `json:"trained_at"`
}

func (RecipeModel) TableName() string {
	return "recipe_models"
}
