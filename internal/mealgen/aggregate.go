package mealgen

import (
	"fmt"
	"math"

	"diet-planner/internal/models"
)

// Totals are multiplier-weighted sums, rounded once at the end.
type Totals struct {
	Carbs    float64 `json:"carbs"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// Aggregate sums the components. Carbs and calories follow the reference
// formula; protein and fat are scaled by the same multiplier.
func Aggregate(components ...models.MealComponent) Totals {
	var carbs, calories, protein, fat float64
	for _, c := range components {
		m := float64(c.PortionMultiplier)
		carbs += c.Carbs * m
		calories += c.Calories * m
		protein += c.Protein * m
		fat += c.Fat * m
	}
	return Totals{
		Carbs:    math.Round(carbs),
		Calories: math.Round(calories),
		Protein:  math.Round(protein),
		Fat:      math.Round(fat),
	}
}

// Recompute refreshes the totals of a recommendation from its components.
func Recompute(r *models.MealRecommendation) {
	t := Aggregate(r.Components()...)
	r.TotalCarbs = t.Carbs
	r.TotalCalories = t.Calories
	r.TotalProtein = t.Protein
	r.TotalFat = t.Fat
}

// ReplaceComponent puts c in the category slot and recomputes the totals.
func ReplaceComponent(r *models.MealRecommendation, category models.Category, c models.MealComponent) error {
	if !c.PortionMultiplier.Valid() {
		return fmt.Errorf("portion multiplier %g must be one of 0.5, 0.75, 1", float64(c.PortionMultiplier))
	}
	slot, err := r.Component(category)
	if err != nil {
		return err
	}
	*slot = c
	Recompute(r)
	return nil
}

// SetPortion changes the multiplier of one component and recomputes the
// totals.
func SetPortion(r *models.MealRecommendation, category models.Category, m models.PortionMultiplier) error {
	if !m.Valid() {
		return fmt.Errorf("portion multiplier %g must be one of 0.5, 0.75, 1", float64(m))
	}
	slot, err := r.Component(category)
	if err != nil {
		return err
	}
	slot.PortionMultiplier = m
	Recompute(r)
	return nil
}
