package mealgen

import (
	"fmt"
	"strings"

	"diet-planner/internal/models"
)

// SelectFood picks one item of the category for the slot, uniformly at
// random among the items that pass the profile filters.
func (g *Generator) SelectFood(p *models.UserProfile, category models.Category, slot models.Slot) (models.FoodItem, error) {
	if err := p.Validate(); err != nil {
		return models.FoodItem{}, err
	}
	candidates, err := g.candidates(p, category, slot)
	if err != nil {
		return models.FoodItem{}, err
	}
	if len(candidates) == 0 {
		return models.FoodItem{}, noCandidates(p, category, slot)
	}
	return candidates[g.intn(len(candidates))], nil
}

// candidates returns the items of a category that pass every filter, in
// catalog order. The profile is assumed valid.
func (g *Generator) candidates(p *models.UserProfile, category models.Category, slot models.Slot) ([]models.FoodItem, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if slot != "" && !slot.Valid() {
		return nil, fmt.Errorf("unknown meal type %q", slot)
	}
	allergies := p.AllergyTerms()

	var out []models.FoodItem
	for _, item := range g.catalog.Items(category) {
		if matches(item, p, slot, allergies) {
			out = append(out, item)
		}
	}
	return out, nil
}

func matches(item models.FoodItem, p *models.UserProfile, slot models.Slot, allergies []string) bool {
	if item.Season != models.All && item.Season != string(p.Season) {
		return false
	}
	if item.Goal != "" && item.Goal != models.All && item.Goal != string(p.PrimaryGoal) {
		return false
	}
	if p.DietType == models.Vegetarian && item.Diet == string(models.Omnivore) {
		return false
	}
	if slot != "" && len(item.Slots) > 0 && !containsSlot(item.Slots, slot) {
		return false
	}
	return !triggersAllergy(item.Name, item.Allergens, allergies)
}

// triggersAllergy is a case-insensitive substring match of every allergy
// against the name and the allergen tags.
func triggersAllergy(name string, allergens []string, allergies []string) bool {
	if len(allergies) == 0 {
		return false
	}
	name = strings.ToLower(name)
	for _, a := range allergies {
		if strings.Contains(name, a) {
			return true
		}
		for _, tag := range allergens {
			if strings.Contains(strings.ToLower(tag), a) {
				return true
			}
		}
	}
	return false
}

func containsSlot(slots []models.Slot, s models.Slot) bool {
	for _, v := range slots {
		if v == s {
			return true
		}
	}
	return false
}
