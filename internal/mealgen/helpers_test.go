package mealgen

import (
	"testing"
	"time"

	"diet-planner/internal/catalog"
	"diet-planner/internal/models"
)

func first(int) int { return 0 }

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return cat
}

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	base := []Option{
		WithIntn(first),
		WithIDFunc(func() string { return "rec-1" }),
		WithClock(func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }),
	}
	return New(defaultCatalog(t), append(base, opts...)...)
}

func profile(diet models.DietType, goal models.Goal, season models.Season, level models.ExperienceLevel) *models.UserProfile {
	return &models.UserProfile{
		DietType:        diet,
		PrimaryGoal:     goal,
		Season:          season,
		ExperienceLevel: level,
	}
}

// allProfiles enumerates every valid combination of the filtering fields.
func allProfiles() []*models.UserProfile {
	var out []*models.UserProfile
	for _, d := range []models.DietType{models.Omnivore, models.Vegetarian} {
		for _, g := range []models.Goal{models.GlucoseControl, models.WeightLoss} {
			for _, s := range []models.Season{models.Winter, models.NonWinter} {
				for _, l := range []models.ExperienceLevel{models.Beginner, models.Intermediate, models.Advanced} {
					out = append(out, profile(d, g, s, l))
				}
			}
		}
	}
	return out
}

// pickEach returns an Intn that always answers idx, clamped to the range.
func pickEach(idx int) Intn {
	return func(n int) int {
		if idx >= n {
			return n - 1
		}
		return idx
	}
}
