// internal/models/profile.go
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type DietType string

const (
	Omnivore   DietType = "omnivore"
	Vegetarian DietType = "vegetarian"
)

type Goal string

const (
	GlucoseControl Goal = "glucose-control"
	WeightLoss     Goal = "weight-loss"
)

type Season string

const (
	Winter    Season = "winter"
	NonWinter Season = "non-winter"
)

type ExperienceLevel string

const (
	Beginner     ExperienceLevel = "beginner"
	Intermediate ExperienceLevel = "intermediate"
	Advanced     ExperienceLevel = "advanced"
)

// UserProfile is the health profile collected by the onboarding form.
// Only the diet, goal, season, experience, hypertension and allergy
// fields drive meal selection; the rest is carried for display.
type UserProfile struct {
	ID              string          `json:"id,omitempty"`
	Age             int             `json:"age,omitempty"`
	Weight          float64         `json:"weight,omitempty"` // kg
	Height          float64         `json:"height,omitempty"` // cm
	BMI             float64         `json:"bmi,omitempty"`
	RecentGlucose   float64         `json:"recent_glucose,omitempty"`
	HbA1c           float64         `json:"hba1c,omitempty"`
	Season          Season          `json:"season"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	PrimaryGoal     Goal            `json:"primary_goal"`
	Allergies       []string        `json:"allergies"`
	DietType        DietType        `json:"diet_type"`
	HasHypertension bool            `json:"has_hypertension"`
	DailyCarbsGoal  float64         `json:"daily_carbs_goal,omitempty"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at,omitempty"`
}

// ErrInvalidProfile matches every *InvalidProfileError through errors.Is.
var ErrInvalidProfile = errors.New("invalid profile")

// InvalidProfileError reports a profile field outside its enumeration.
type InvalidProfileError struct {
	Field string
	Value string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s %q is not recognized", e.Field, e.Value)
}

func (e *InvalidProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}

// Validate fails fast on the first field that is outside its declared
// enumeration. Empty values count as invalid: nothing is defaulted.
func (p *UserProfile) Validate() error {
	switch p.DietType {
	case Omnivore, Vegetarian:
	default:
		return &InvalidProfileError{Field: "diet_type", Value: string(p.DietType)}
	}
	switch p.PrimaryGoal {
	case GlucoseControl, WeightLoss:
	default:
		return &InvalidProfileError{Field: "primary_goal", Value: string(p.PrimaryGoal)}
	}
	switch p.Season {
	case Winter, NonWinter:
	default:
		return &InvalidProfileError{Field: "season", Value: string(p.Season)}
	}
	switch p.ExperienceLevel {
	case Beginner, Intermediate, Advanced:
	default:
		return &InvalidProfileError{Field: "experience_level", Value: string(p.ExperienceLevel)}
	}
	if p.DailyCarbsGoal < 0 {
		return &InvalidProfileError{Field: "daily_carbs_goal", Value: fmt.Sprintf("%g", p.DailyCarbsGoal)}
	}
	return nil
}

// AllergyTerms returns the trimmed, lower-cased, non-blank allergies.
func (p *UserProfile) AllergyTerms() []string {
	terms := make([]string, 0, len(p.Allergies))
	for _, a := range p.Allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			terms = append(terms, a)
		}
	}
	return terms
}
