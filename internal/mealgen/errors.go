package mealgen

import (
	"errors"
	"fmt"
	"strings"

	"diet-planner/internal/models"
)

var ErrNoCandidates = errors.New("no candidates")

// NoCandidatesError is returned when the profile filters remove every item
// of a category (or every dish of a slot).
type NoCandidatesError struct {
	Category  models.Category
	Slot      models.Slot
	Diet      models.DietType
	Season    models.Season
	Goal      models.Goal
	Allergies []string
}

func (e *NoCandidatesError) Error() string {
	var b strings.Builder
	b.WriteString("no candidates")
	if e.Category != "" {
		fmt.Fprintf(&b, " for %s", e.Category)
	}
	if e.Slot != "" {
		fmt.Fprintf(&b, " at %s", e.Slot)
	}
	fmt.Fprintf(&b, " (diet=%s season=%s goal=%s", e.Diet, e.Season, e.Goal)
	if len(e.Allergies) > 0 {
		fmt.Fprintf(&b, " allergies=%s", strings.Join(e.Allergies, ","))
	}
	b.WriteString(")")
	return b.String()
}

func (e *NoCandidatesError) Is(target error) bool {
	return target == ErrNoCandidates
}

func noCandidates(p *models.UserProfile, category models.Category, slot models.Slot) error {
	return &NoCandidatesError{
		Category:  category,
		Slot:      slot,
		Diet:      p.DietType,
		Season:    p.Season,
		Goal:      p.PrimaryGoal,
		Allergies: p.AllergyTerms(),
	}
}
