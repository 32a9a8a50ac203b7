package mealgen

import (
	"errors"
	"testing"

	"diet-planner/internal/catalog"
	"diet-planner/internal/models"
)

func TestSubstitutesFor_ExcludesCurrentAndCaps(t *testing.T) {
	p := profile(models.Omnivore, models.GlucoseControl, models.NonWinter, models.Beginner)
	current := models.MealComponent{Name: "Grilled chicken breast", PortionMultiplier: models.FullPortion}

	for idx := 0; idx < 5; idx++ {
		g := newTestGenerator(t, WithIntn(pickEach(idx)))
		subs, err := g.SubstitutesFor(current, p, models.Protein, models.Lunch)
		if err != nil {
			t.Fatalf("substitutes: %v", err)
		}
		if len(subs) != maxSubstitutes {
			t.Fatalf("expected %d substitutes got %d", maxSubstitutes, len(subs))
		}
		seen := map[string]bool{}
		for _, s := range subs {
			if s.Name == current.Name {
				t.Fatalf("current item offered as its own substitute")
			}
			if seen[s.Name] {
				t.Fatalf("duplicate substitute %q", s.Name)
			}
			seen[s.Name] = true
			if s.Reason != substituteLowGI {
				t.Fatalf("expected low-gi reason for %q, got %q", s.Name, s.Reason)
			}
		}
	}
}

func TestSubstitutesFor_FewerThanThreeAndGenericReason(t *testing.T) {
	g := newTestGenerator(t)
	p := profile(models.Omnivore, models.GlucoseControl, models.NonWinter, models.Beginner)
	current := models.MealComponent{Name: "Quinoa", PortionMultiplier: models.HalfPortion}

	subs, err := g.GenerateSubstitutes(current, p, models.Carbohydrate, models.Lunch)
	if err != nil {
		t.Fatalf("substitutes: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 substitutes got %d: %+v", len(subs), subs)
	}
	for _, s := range subs {
		if s.Reason != substituteDefault {
			t.Fatalf("expected generic reason for %q, got %q", s.Name, s.Reason)
		}
		c := s.ToComponent(current.PortionMultiplier)
		if c.PortionMultiplier != models.HalfPortion || c.Name != s.Name {
			t.Fatalf("substitute did not keep the current portion: %+v", c)
		}
	}
}

func TestSubstitutesFor_NoAlternativesIsNotAnError(t *testing.T) {
	cat, err := catalog.Parse([]byte(singleItemCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	g := New(cat, WithIntn(first))
	p := profile(models.Vegetarian, models.WeightLoss, models.Winter, models.Beginner)

	subs, err := g.SubstitutesFor(models.MealComponent{Name: "Peanut tofu"}, p, models.Protein, models.Dinner)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if subs == nil || len(subs) != 0 {
		t.Fatalf("expected an empty list, got %#v", subs)
	}
}

func TestSubstitutesFor_InvalidProfile(t *testing.T) {
	g := newTestGenerator(t)
	p := profile(models.Omnivore, "keto", models.Winter, models.Beginner)
	_, err := g.SubstitutesFor(models.MealComponent{}, p, models.Protein, models.Dinner)
	if !errors.Is(err, models.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestSubstituteByName(t *testing.T) {
	g := newTestGenerator(t)
	p := profile(models.Vegetarian, models.GlucoseControl, models.Winter, models.Beginner)
	current := models.MealComponent{Name: "Quinoa", PortionMultiplier: models.ThreeQuarterPortion}

	s, err := g.SubstituteByName(current, p, models.Carbohydrate, models.Dinner, "Pearl barley")
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}
	if s.Reason != substituteLowGI || s.Carbs != 22 {
		t.Fatalf("unexpected substitute %+v", s)
	}

	for _, name := range []string{"Quinoa", "Corn tortillas", "Whole wheat pasta", "Chocolate cake"} {
		if _, err := g.SubstituteByName(current, p, models.Carbohydrate, models.Dinner, name); !errors.Is(err, ErrNotAnOption) {
			t.Fatalf("%s: expected ErrNotAnOption, got %v", name, err)
		}
	}
}
