package mealgen

import (
	"fmt"
	"math"

	"diet-planner/internal/models"
)

const maxSubstitutions = 3

// Portion percentages offered for daily-plan meals.
var dailyPortions = []int{50, 75, 100}

// GenerateDailyMeals picks one dish per slot, breakfast to dinner.
func (g *Generator) GenerateDailyMeals(p *models.UserProfile) ([]models.Meal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	meals := make([]models.Meal, 0, len(models.Slots))
	for _, slot := range models.Slots {
		dishes := g.dishes(p, slot)
		if len(dishes) == 0 {
			return nil, noCandidates(p, "", slot)
		}
		d := dishes[g.intn(len(dishes))]
		meals = append(meals, newMeal(string(slot), slot, d, p))
	}
	return meals, nil
}

// GenerateSubstitutions lists up to three other dishes for the slot of the
// current meal, in catalog order.
func (g *Generator) GenerateSubstitutions(current models.Meal, p *models.UserProfile) ([]models.Meal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !current.Type.Valid() {
		return nil, fmt.Errorf("unknown meal type %q", current.Type)
	}

	var out []models.Meal
	for _, d := range g.dishes(p, current.Type) {
		if d.Name == current.Name {
			continue
		}
		id := fmt.Sprintf("%s-sub-%d", current.Type, len(out))
		out = append(out, newMeal(id, current.Type, d, p))
		if len(out) == maxSubstitutions {
			break
		}
	}
	return out, nil
}

// AdjustMealPortion sets the portion percentage of a daily-plan meal and
// rescales its carbs from the base value.
func AdjustMealPortion(m models.Meal, percent int) (models.Meal, error) {
	valid := false
	for _, v := range dailyPortions {
		if v == percent {
			valid = true
			break
		}
	}
	if !valid {
		return m, fmt.Errorf("portion %d%% must be one of 50, 75, 100", percent)
	}
	m.Portion = percent
	m.Carbs = math.Round(m.BaseCarbs * float64(percent) / 100)
	return m, nil
}

func (g *Generator) dishes(p *models.UserProfile, slot models.Slot) []models.Dish {
	allergies := p.AllergyTerms()
	var out []models.Dish
	for _, d := range g.catalog.DishesFor(slot, p.DietType) {
		if !triggersAllergy(d.Name, d.Allergens, allergies) {
			out = append(out, d)
		}
	}
	return out
}

func newMeal(id string, slot models.Slot, d models.Dish, p *models.UserProfile) models.Meal {
	return models.Meal{
		ID:          id,
		Type:        slot,
		Name:        d.Name,
		Portions:    d.Portions,
		Carbs:       d.Carbs,
		BaseCarbs:   d.Carbs,
		Portion:     100,
		LowGlycemic: d.LowGlycemic,
		LowSodium:   d.LowSodium,
		HighFiber:   d.HighFiber,
		Reasons:     dishReasons(d, p),
	}
}
