// internal/models/meal.go
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

type Category string

const (
	Protein      Category = "protein"
	Carbohydrate Category = "carbohydrate"
	Vegetable    Category = "vegetable"
)

// Categories lists the building blocks of a composed meal in display order.
var Categories = []Category{Protein, Carbohydrate, Vegetable}

func (c Category) Valid() bool {
	return c == Protein || c == Carbohydrate || c == Vegetable
}

type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
)

var Slots = []Slot{Breakfast, Lunch, Dinner}

func (s Slot) Valid() bool {
	return s == Breakfast || s == Lunch || s == Dinner
}

type GlycemicIndex string

const (
	LowGI    GlycemicIndex = "low"
	MediumGI GlycemicIndex = "medium"
	HighGI   GlycemicIndex = "high"
)

// Applicability tag shared by season, goal and diet filters.
const All = "all"

// FoodItem is a read-only catalog entry.
type FoodItem struct {
	Name          string        `json:"name" yaml:"name"`
	Portion       string        `json:"portion" yaml:"portion"`
	Calories      float64       `json:"calories" yaml:"calories"`
	Carbs         float64       `json:"carbs" yaml:"carbs"`
	Protein       float64       `json:"protein" yaml:"protein"`
	Fat           float64       `json:"fat" yaml:"fat"`
	GlycemicIndex GlycemicIndex `json:"glycemic_index" yaml:"glycemic_index"`
	Season        string        `json:"season" yaml:"season"` // all | winter | non-winter
	Goal          string        `json:"goal" yaml:"goal"`     // all | glucose-control | weight-loss
	Diet          string        `json:"diet" yaml:"diet"`     // all | omnivore
	Slots         []Slot        `json:"slots,omitempty" yaml:"slots,omitempty"`
	Allergens     []string      `json:"allergens,omitempty" yaml:"allergens,omitempty"`
}

// PortionMultiplier is one of exactly three serving sizes.
type PortionMultiplier float64

const (
	HalfPortion         PortionMultiplier = 0.5
	ThreeQuarterPortion PortionMultiplier = 0.75
	FullPortion         PortionMultiplier = 1
)

func (m PortionMultiplier) Valid() bool {
	return m == HalfPortion || m == ThreeQuarterPortion || m == FullPortion
}

func ParsePortionMultiplier(v float64) (PortionMultiplier, error) {
	m := PortionMultiplier(v)
	if !m.Valid() {
		return 0, fmt.Errorf("portion multiplier %g must be one of 0.5, 0.75, 1", v)
	}
	return m, nil
}

// MealComponent is a catalog item placed in a meal at a given portion.
// Nutrition fields hold the reference (unscaled) values.
type MealComponent struct {
	Name              string            `json:"name"`
	Portion           string            `json:"portion"`
	Calories          float64           `json:"calories"`
	Carbs             float64           `json:"carbs"`
	Protein           float64           `json:"protein"`
	Fat               float64           `json:"fat"`
	GlycemicIndex     GlycemicIndex     `json:"glycemic_index,omitempty"`
	PortionMultiplier PortionMultiplier `json:"portion_multiplier"`
}

func NewMealComponent(item FoodItem, m PortionMultiplier) MealComponent {
	return MealComponent{
		Name:              item.Name,
		Portion:           item.Portion,
		Calories:          item.Calories,
		Carbs:             item.Carbs,
		Protein:           item.Protein,
		Fat:               item.Fat,
		GlycemicIndex:     item.GlycemicIndex,
		PortionMultiplier: m,
	}
}

var leadingAmount = regexp.MustCompile(`^(\d+\.?\d*)(\s*.*)$`)

// ScaledPortion rescales the leading quantity of the portion text,
// e.g. "150g chicken breast" at 0.5 becomes "75g chicken breast".
// Texts without a leading number are returned unchanged.
func (c MealComponent) ScaledPortion() string {
	if c.PortionMultiplier == FullPortion {
		return c.Portion
	}
	match := leadingAmount.FindStringSubmatch(c.Portion)
	if match == nil {
		return c.Portion
	}
	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return c.Portion
	}
	scaled := amount * float64(c.PortionMultiplier)
	return strconv.FormatFloat(scaled, 'f', -1, 64) + match[2]
}

// ScaledCarbs is the per-component figure shown next to the portion picker.
func (c MealComponent) ScaledCarbs() int {
	return int(math.Round(c.Carbs * float64(c.PortionMultiplier)))
}

// MealRecommendation is one composed meal: a protein, a carbohydrate and
// a vegetable, with reasons and totals derived from them.
type MealRecommendation struct {
	ID            string        `json:"id"`
	ProfileID     string        `json:"profile_id,omitempty"`
	Name          string        `json:"name"`
	ImageQuery    string        `json:"image_query"`
	MealType      Slot          `json:"meal_type"`
	Protein       MealComponent `json:"protein"`
	Carbohydrate  MealComponent `json:"carbohydrate"`
	Vegetable     MealComponent `json:"vegetable"`
	Reasons       []string      `json:"reasons"`
	TotalCarbs    float64       `json:"total_carbs"`
	TotalCalories float64       `json:"total_calories"`
	TotalProtein  float64       `json:"total_protein"`
	TotalFat      float64       `json:"total_fat"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Component returns a pointer to the component occupying the category.
func (r *MealRecommendation) Component(c Category) (*MealComponent, error) {
	switch c {
	case Protein:
		return &r.Protein, nil
	case Carbohydrate:
		return &r.Carbohydrate, nil
	case Vegetable:
		return &r.Vegetable, nil
	}
	return nil, fmt.Errorf("unknown category %q", c)
}

func (r *MealRecommendation) Components() []MealComponent {
	return []MealComponent{r.Protein, r.Carbohydrate, r.Vegetable}
}

// Substitute is a candidate replacement offered for one component.
type Substitute struct {
	Name     string  `json:"name"`
	Portion  string  `json:"portion"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Reason   string  `json:"reason"`

	GlycemicIndex GlycemicIndex `json:"glycemic_index,omitempty"`
}

// ToComponent adapts the substitute to the slot it replaces, keeping the
// portion the user already picked.
func (s Substitute) ToComponent(m PortionMultiplier) MealComponent {
	return MealComponent{
		Name:              s.Name,
		Portion:           s.Portion,
		Calories:          s.Calories,
		Carbs:             s.Carbs,
		Protein:           s.Protein,
		Fat:               s.Fat,
		GlycemicIndex:     s.GlycemicIndex,
		PortionMultiplier: m,
	}
}

// Dish is a daily-plan catalog entry: one whole dish for a slot.
type Dish struct {
	Name        string   `json:"name" yaml:"name"`
	Portions    string   `json:"portions" yaml:"portions"`
	Carbs       float64  `json:"carbs" yaml:"carbs"`
	LowGlycemic bool     `json:"low_glycemic" yaml:"low_glycemic"`
	LowSodium   bool     `json:"low_sodium" yaml:"low_sodium"`
	HighFiber   bool     `json:"high_fiber" yaml:"high_fiber"`
	Allergens   []string `json:"allergens,omitempty" yaml:"allergens,omitempty"`
}

// Meal is one entry of a daily plan. Portion is a percentage (50, 75, 100)
// and Carbs always equals round(BaseCarbs * Portion / 100).
type Meal struct {
	ID          string   `json:"id"`
	Type        Slot     `json:"type"`
	Name        string   `json:"name"`
	Portions    string   `json:"portions"`
	Carbs       float64  `json:"carbs"`
	BaseCarbs   float64  `json:"base_carbs"`
	Portion     int      `json:"portion"`
	LowGlycemic bool     `json:"low_glycemic"`
	LowSodium   bool     `json:"low_sodium"`
	HighFiber   bool     `json:"high_fiber"`
	Reasons     []string `json:"reasons"`
}

// DailyPlan groups the three meals generated together for a profile.
type DailyPlan struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Meals     []Meal    `json:"meals"`
	CreatedAt time.Time `json:"created_at"`
}
