package mealgen

import (
	"errors"
	"fmt"

	"diet-planner/internal/models"
)

const maxSubstitutes = 3

var ErrNotAnOption = errors.New("not an option")

// SubstitutesFor returns up to three alternatives for the current item of
// a category, in random order. An empty result is not an error.
func (g *Generator) SubstitutesFor(current models.MealComponent, p *models.UserProfile, category models.Category, slot models.Slot) ([]models.Substitute, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	candidates, err := g.candidates(p, category, slot)
	if err != nil {
		return nil, err
	}

	pool := make([]models.FoodItem, 0, len(candidates))
	for _, item := range candidates {
		if item.Name != current.Name {
			pool = append(pool, item)
		}
	}
	shuffle(g.intn, pool)
	if len(pool) > maxSubstitutes {
		pool = pool[:maxSubstitutes]
	}

	subs := make([]models.Substitute, 0, len(pool))
	for _, item := range pool {
		subs = append(subs, toSubstitute(item))
	}
	return subs, nil
}

func toSubstitute(item models.FoodItem) models.Substitute {
	reason := substituteDefault
	if item.GlycemicIndex == models.LowGI {
		reason = substituteLowGI
	}
	return models.Substitute{
		Name:          item.Name,
		Portion:       item.Portion,
		Calories:      item.Calories,
		Carbs:         item.Carbs,
		Protein:       item.Protein,
		Fat:           item.Fat,
		Reason:        reason,
		GlycemicIndex: item.GlycemicIndex,
	}
}

// GenerateSubstitutes is SubstitutesFor for a component of a recommendation
// of the given meal type.
func (g *Generator) GenerateSubstitutes(component models.MealComponent, p *models.UserProfile, category models.Category, mealType models.Slot) ([]models.Substitute, error) {
	return g.SubstitutesFor(component, p, category, mealType)
}

// SubstituteByName resolves a substitute the user picked from an earlier
// list. The name must still pass the profile filters and must differ from
// the current item.
func (g *Generator) SubstituteByName(current models.MealComponent, p *models.UserProfile, category models.Category, slot models.Slot, name string) (models.Substitute, error) {
	if err := p.Validate(); err != nil {
		return models.Substitute{}, err
	}
	if name == current.Name {
		return models.Substitute{}, fmt.Errorf("%q is already the %s of this meal: %w", name, category, ErrNotAnOption)
	}
	candidates, err := g.candidates(p, category, slot)
	if err != nil {
		return models.Substitute{}, err
	}
	for _, item := range candidates {
		if item.Name == name {
			return toSubstitute(item), nil
		}
	}
	return models.Substitute{}, fmt.Errorf("%q is not a %s option for this profile: %w", name, category, ErrNotAnOption)
}
