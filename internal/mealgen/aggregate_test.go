package mealgen

import (
	"math"
	"testing"

	"diet-planner/internal/models"
)

func component(name string, carbs, calories, protein, fat float64, m models.PortionMultiplier) models.MealComponent {
	return models.MealComponent{Name: name, Carbs: carbs, Calories: calories, Protein: protein, Fat: fat, PortionMultiplier: m}
}

func TestAggregate_RoundsOnceAtTheEnd(t *testing.T) {
	got := Aggregate(
		component("oats", 45, 150, 5, 2.5, models.HalfPortion),
		component("rice", 30, 111, 4, 1.8, models.ThreeQuarterPortion),
		component("broccoli", 11, 41, 3.7, 0.6, models.FullPortion),
	)
	// 22.5 + 22.5 + 11; rounding each term first would give 57.
	if got.Carbs != 56 {
		t.Fatalf("expected carbs=56 got %v", got.Carbs)
	}
	// 75 + 83.25 + 41
	if got.Calories != 199 {
		t.Fatalf("expected calories=199 got %v", got.Calories)
	}
	if got.Protein != 9 {
		t.Fatalf("expected protein=9 got %v", got.Protein)
	}
}

func TestAggregate_MatchesWeightedSumForEveryMultiplier(t *testing.T) {
	multipliers := []models.PortionMultiplier{models.HalfPortion, models.ThreeQuarterPortion, models.FullPortion}
	carbs := []float64{27, 14.5, 6.8}
	for _, a := range multipliers {
		for _, b := range multipliers {
			for _, c := range multipliers {
				got := Aggregate(
					component("a", carbs[0], 100, 0, 0, a),
					component("b", carbs[1], 100, 0, 0, b),
					component("c", carbs[2], 100, 0, 0, c),
				)
				want := math.Round(carbs[0]*float64(a) + carbs[1]*float64(b) + carbs[2]*float64(c))
				if got.Carbs != want {
					t.Fatalf("multipliers %v/%v/%v: expected %v got %v", a, b, c, want, got.Carbs)
				}
			}
		}
	}
}

func TestReplaceComponentAndSetPortion_Recompute(t *testing.T) {
	r := &models.MealRecommendation{
		Protein:      component("chicken", 0, 248, 46, 5.4, models.FullPortion),
		Carbohydrate: component("quinoa", 20, 111, 4, 1.8, models.FullPortion),
		Vegetable:    component("broccoli", 11, 55, 3.7, 0.6, models.FullPortion),
	}
	Recompute(r)
	if r.TotalCarbs != 31 || r.TotalCalories != 414 {
		t.Fatalf("unexpected totals %v/%v", r.TotalCarbs, r.TotalCalories)
	}

	if err := SetPortion(r, models.Carbohydrate, models.HalfPortion); err != nil {
		t.Fatalf("set portion: %v", err)
	}
	if r.TotalCarbs != 21 {
		t.Fatalf("expected carbs=21 after halving quinoa, got %v", r.TotalCarbs)
	}

	rice := component("rice", 22, 108, 2.5, 0.9, models.HalfPortion)
	if err := ReplaceComponent(r, models.Carbohydrate, rice); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if r.Carbohydrate.Name != "rice" || r.TotalCarbs != 22 {
		t.Fatalf("expected rice with carbs=22, got %q/%v", r.Carbohydrate.Name, r.TotalCarbs)
	}

	if err := SetPortion(r, models.Vegetable, 0.6); err == nil {
		t.Fatalf("expected error for multiplier 0.6")
	}
	if err := SetPortion(r, "dessert", models.FullPortion); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	bad := rice
	bad.PortionMultiplier = 2
	if err := ReplaceComponent(r, models.Carbohydrate, bad); err == nil {
		t.Fatalf("expected error for multiplier 2")
	}
}
