package mealgen

import "diet-planner/internal/models"

const maxReasons = 4

// Fiber is approximated from the vegetable's protein grams.
const fiberProteinThreshold = 3

const (
	reasonLowGlycemic   = "Low glycemic index carbohydrate for steadier glucose"
	reasonSeasonal      = "Seasonal winter ingredient"
	reasonGlucoseGoal   = "Balanced to support blood glucose control"
	reasonWeightGoal    = "Portion-controlled for weight loss"
	reasonVegetarian    = "Fully vegetarian meal"
	reasonFiber         = "Good source of fiber"
	substituteLowGI     = "Low glycemic index"
	substituteDefault   = "Healthy option"
	dishLowGlycemic     = "Low glycemic index for glucose control"
	dishLowSodium       = "Low in sodium, suited to hypertension"
	dishHighFiber       = "High in fiber for better digestion"
	dishModerateCalorie = "Moderate in calories for weight loss"
	dishSlowCarbs       = "Slow-absorbing carbohydrates"
)

var experienceLabels = map[models.ExperienceLevel]string{
	models.Beginner:     "for beginners",
	models.Intermediate: "intermediate level",
	models.Advanced:     "advanced level",
}

// Explain returns the justification lines for a composed meal in priority
// order, truncated to four entries. The protein does not contribute any
// line today.
func Explain(p *models.UserProfile, protein, carb, veggie models.FoodItem) []string {
	reasons := make([]string, 0, 6)
	if carb.GlycemicIndex == models.LowGI {
		reasons = append(reasons, reasonLowGlycemic)
	}
	if p.Season == models.Winter && carb.Season == string(models.Winter) {
		reasons = append(reasons, reasonSeasonal)
	}
	if label, ok := experienceLabels[p.ExperienceLevel]; ok {
		reasons = append(reasons, label)
	}
	switch p.PrimaryGoal {
	case models.GlucoseControl:
		reasons = append(reasons, reasonGlucoseGoal)
	case models.WeightLoss:
		reasons = append(reasons, reasonWeightGoal)
	}
	if p.DietType == models.Vegetarian {
		reasons = append(reasons, reasonVegetarian)
	}
	if veggie.Protein >= fiberProteinThreshold {
		reasons = append(reasons, reasonFiber)
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

func dishReasons(d models.Dish, p *models.UserProfile) []string {
	var reasons []string
	if d.LowGlycemic {
		reasons = append(reasons, dishLowGlycemic)
	}
	if d.LowSodium && p.HasHypertension {
		reasons = append(reasons, dishLowSodium)
	}
	if d.HighFiber {
		reasons = append(reasons, dishHighFiber)
	}
	if p.PrimaryGoal == models.WeightLoss && d.Carbs < 40 {
		reasons = append(reasons, dishModerateCalorie)
	}
	if p.PrimaryGoal == models.GlucoseControl {
		reasons = append(reasons, dishSlowCarbs)
	}
	return reasons
}
