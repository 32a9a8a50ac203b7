package mealgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"diet-planner/internal/models"
)

func newUUID() string {
	return uuid.NewString()
}

// GenerateMealRecommendation composes a protein, a carbohydrate and a
// vegetable for the meal type, all at full portion.
func (g *Generator) GenerateMealRecommendation(p *models.UserProfile, mealType models.Slot) (*models.MealRecommendation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !mealType.Valid() {
		return nil, fmt.Errorf("unknown meal type %q", mealType)
	}

	picks := make(map[models.Category]models.FoodItem, len(models.Categories))
	for _, category := range models.Categories {
		item, err := g.SelectFood(p, category, mealType)
		if err != nil {
			return nil, err
		}
		picks[category] = item
	}
	protein := picks[models.Protein]
	carb := picks[models.Carbohydrate]
	veggie := picks[models.Vegetable]

	now := g.now()
	rec := &models.MealRecommendation{
		ID:           g.newID(),
		ProfileID:    p.ID,
		Name:         mealName(protein, carb, veggie),
		ImageQuery:   imageQuery(protein, carb, veggie),
		MealType:     mealType,
		Protein:      models.NewMealComponent(protein, models.FullPortion),
		Carbohydrate: models.NewMealComponent(carb, models.FullPortion),
		Vegetable:    models.NewMealComponent(veggie, models.FullPortion),
		Reasons:      Explain(p, protein, carb, veggie),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	Recompute(rec)
	return rec, nil
}

func mealName(protein, carb, veggie models.FoodItem) string {
	return fmt.Sprintf("%s with %s and %s", protein.Name, strings.ToLower(carb.Name), strings.ToLower(veggie.Name))
}

func imageQuery(protein, carb, veggie models.FoodItem) string {
	return strings.ToLower(fmt.Sprintf("%s %s %s healthy plate", protein.Name, carb.Name, veggie.Name))
}
