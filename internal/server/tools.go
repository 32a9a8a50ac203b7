// internal/server/tools.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"diet-planner/internal/mealgen"
	"diet-planner/internal/models"
	"diet-planner/internal/storage"
)

var errInvalidParams = errors.New("invalid parameters")

type SaveProfileParams struct {
	Profile models.UserProfile `json:"profile" description:"Full user profile; id is assigned when empty"`
}

type ProfileParams struct {
	ProfileID string `json:"profile_id" description:"Profile identifier"`
}

type GenerateMealParams struct {
	ProfileID string      `json:"profile_id" description:"Profile identifier"`
	MealType  models.Slot `json:"meal_type,omitempty" description:"breakfast, lunch or dinner (defaults to lunch)"`
}

type GetRecommendationsParams struct {
	ProfileID string      `json:"profile_id" description:"Profile identifier"`
	MealType  models.Slot `json:"meal_type,omitempty" description:"Only this meal type"`
	Limit     int         `json:"limit,omitempty" description:"Maximum number of recommendations to return"`
}

type SubstitutesParams struct {
	RecommendationID string          `json:"recommendation_id" description:"Recommendation to change"`
	Category         models.Category `json:"category" description:"protein, carbohydrate or vegetable"`
}

type ApplySubstituteParams struct {
	RecommendationID string          `json:"recommendation_id" description:"Recommendation to change"`
	Category         models.Category `json:"category" description:"protein, carbohydrate or vegetable"`
	Name             string          `json:"name" description:"Name of the substitute to apply"`
}

type AdjustPortionParams struct {
	RecommendationID string          `json:"recommendation_id" description:"Recommendation to change"`
	Category         models.Category `json:"category" description:"protein, carbohydrate or vegetable"`
	Multiplier       float64         `json:"multiplier" description:"0.5, 0.75 or 1"`
}

type SubstitutionsParams struct {
	ProfileID string      `json:"profile_id" description:"Profile identifier"`
	Meal      models.Meal `json:"meal" description:"Daily-plan meal to replace"`
}

type AdjustMealPortionParams struct {
	Meal    models.Meal `json:"meal" description:"Daily-plan meal"`
	Percent int         `json:"percent" description:"50, 75 or 100"`
}

type CalculateBMIParams struct {
	WeightKg float64 `json:"weight_kg" description:"Weight in kilograms"`
	HeightCm float64 `json:"height_cm" description:"Height in centimeters"`
}

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

var toolDescriptions = map[string]string{
	"save_profile":                 "Create or update a user health profile",
	"get_profile":                  "Fetch a stored profile",
	"generate_meal_recommendation": "Compose a protein, carbohydrate and vegetable meal for a profile",
	"get_recommendations":          "List stored meal recommendations for a profile",
	"generate_substitutes":         "Offer up to three alternatives for one component of a meal",
	"apply_substitute":             "Replace one component of a meal and recompute its totals",
	"adjust_portion":               "Change the portion of one component and recompute totals",
	"generate_daily_meals":         "Plan breakfast, lunch and dinner for a profile",
	"get_daily_plan":               "Fetch the latest daily plan of a profile",
	"generate_substitutions":       "Offer alternative dishes for a daily-plan meal",
	"adjust_meal_portion":          "Scale a daily-plan meal to 50, 75 or 100 percent",
	"calculate_bmi":                "Body mass index from weight and height",
}

// extractParams converts the request arguments into target.
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", errInvalidParams, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

func invalidParams(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidParams, fmt.Sprintf(format, args...))
}

// handleSaveProfile validates the profile, derives its BMI and stores it.
func (s *MealPlanServer) handleSaveProfile(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SaveProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	p := params.Profile
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID == "" {
		p.ID = uuid.NewString()
	} else {
		existing, err := s.storage.GetProfile(p.ID)
		switch {
		case err == nil:
			p.CreatedAt = existing.CreatedAt
		case !errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
	}
	if p.Weight > 0 && p.Height > 0 {
		p.BMI = mealgen.CalculateBMI(p.Weight, p.Height)
	}

	if err := s.storage.SaveProfile(&p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	s.log.Info("profile saved", "profile_id", p.ID, "diet", p.DietType, "goal", p.PrimaryGoal)

	return s.createJSONResponse(p)
}

func (s *MealPlanServer) handleGetProfile(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	p, err := s.profileFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(p)
}

// handleGenerateMeal generates a new recommendation (also used to
// regenerate) and stores it.
func (s *MealPlanServer) handleGenerateMeal(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GenerateMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.MealType == "" {
		params.MealType = models.Lunch
	}
	if !params.MealType.Valid() {
		return nil, invalidParams("unknown meal type %q", params.MealType)
	}

	p, err := s.loadProfile(params.ProfileID)
	if err != nil {
		return nil, err
	}

	rec, err := s.generator.GenerateMealRecommendation(p, params.MealType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meal: %w", err)
	}

	if err := s.storage.SaveRecommendation(rec); err != nil {
		return nil, fmt.Errorf("failed to save recommendation: %w", err)
	}

	return s.createJSONResponse(rec)
}

func (s *MealPlanServer) handleGetRecommendations(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetRecommendationsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ProfileID == "" {
		return nil, invalidParams("profile_id is required")
	}

	// Set defaults
	if params.Limit <= 0 {
		params.Limit = 20
	}

	recs, err := s.storage.GetRecommendations(params.ProfileID, params.MealType, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recommendations: %w", err)
	}

	return s.createJSONResponse(recs)
}

func (s *MealPlanServer) handleGenerateSubstitutes(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SubstitutesParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	rec, p, err := s.loadRecommendation(params.RecommendationID)
	if err != nil {
		return nil, err
	}
	current, err := rec.Component(params.Category)
	if err != nil {
		return nil, invalidParams("%v", err)
	}

	subs, err := s.generator.GenerateSubstitutes(*current, p, params.Category, rec.MealType)
	if err != nil {
		return nil, fmt.Errorf("failed to find substitutes: %w", err)
	}

	return s.createJSONResponse(subs)
}

// handleApplySubstitute swaps a component for a named substitute, keeping
// the portion the user picked, and recomputes the totals.
func (s *MealPlanServer) handleApplySubstitute(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ApplySubstituteParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, invalidParams("name is required")
	}

	rec, p, err := s.loadRecommendation(params.RecommendationID)
	if err != nil {
		return nil, err
	}
	current, err := rec.Component(params.Category)
	if err != nil {
		return nil, invalidParams("%v", err)
	}

	sub, err := s.generator.SubstituteByName(*current, p, params.Category, rec.MealType, params.Name)
	if err != nil {
		return nil, err
	}
	if err := mealgen.ReplaceComponent(rec, params.Category, sub.ToComponent(current.PortionMultiplier)); err != nil {
		return nil, err
	}

	return s.saveUpdated(rec)
}

func (s *MealPlanServer) handleAdjustPortion(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AdjustPortionParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	m, err := models.ParsePortionMultiplier(params.Multiplier)
	if err != nil {
		return nil, invalidParams("%v", err)
	}

	rec, _, err := s.loadRecommendation(params.RecommendationID)
	if err != nil {
		return nil, err
	}
	if err := mealgen.SetPortion(rec, params.Category, m); err != nil {
		return nil, invalidParams("%v", err)
	}

	return s.saveUpdated(rec)
}

func (s *MealPlanServer) handleGenerateDailyMeals(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	p, err := s.profileFromRequest(req)
	if err != nil {
		return nil, err
	}

	meals, err := s.generator.GenerateDailyMeals(p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate daily meals: %w", err)
	}

	plan := &models.DailyPlan{
		ID:        uuid.NewString(),
		ProfileID: p.ID,
		Meals:     meals,
		CreatedAt: s.now(),
	}
	if err := s.storage.SaveDailyPlan(plan); err != nil {
		return nil, fmt.Errorf("failed to save daily plan: %w", err)
	}

	return s.createJSONResponse(plan)
}

func (s *MealPlanServer) handleGetDailyPlan(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ProfileID == "" {
		return nil, invalidParams("profile_id is required")
	}

	plan, err := s.storage.GetLatestDailyPlan(params.ProfileID)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(plan)
}

func (s *MealPlanServer) handleGenerateSubstitutions(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SubstitutionsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	p, err := s.loadProfile(params.ProfileID)
	if err != nil {
		return nil, err
	}

	meals, err := s.generator.GenerateSubstitutions(params.Meal, p)
	if err != nil {
		return nil, invalidParams("%v", err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}

	return s.createJSONResponse(meals)
}

func (s *MealPlanServer) handleAdjustMealPortion(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AdjustMealPortionParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	meal, err := mealgen.AdjustMealPortion(params.Meal, params.Percent)
	if err != nil {
		return nil, invalidParams("%v", err)
	}
	return s.createJSONResponse(meal)
}

func (s *MealPlanServer) handleCalculateBMI(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CalculateBMIParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.WeightKg <= 0 || params.HeightCm <= 0 {
		return nil, invalidParams("weight_kg and height_cm must be positive")
	}

	bmi := mealgen.CalculateBMI(params.WeightKg, params.HeightCm)
	return s.createJSONResponse(BMIResult{BMI: bmi, Category: mealgen.BMICategory(bmi)})
}

func (s *MealPlanServer) profileFromRequest(req *protocol.CallToolRequest) (*models.UserProfile, error) {
	var params ProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	return s.loadProfile(params.ProfileID)
}

func (s *MealPlanServer) loadProfile(id string) (*models.UserProfile, error) {
	if id == "" {
		return nil, invalidParams("profile_id is required")
	}
	p, err := s.storage.GetProfile(id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// loadRecommendation returns a stored recommendation and its profile.
func (s *MealPlanServer) loadRecommendation(id string) (*models.MealRecommendation, *models.UserProfile, error) {
	if id == "" {
		return nil, nil, invalidParams("recommendation_id is required")
	}
	rec, err := s.storage.GetRecommendation(id)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.loadProfile(rec.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	return rec, p, nil
}

func (s *MealPlanServer) saveUpdated(rec *models.MealRecommendation) (*protocol.CallToolResult, error) {
	rec.UpdatedAt = s.now()
	if err := s.storage.SaveRecommendation(rec); err != nil {
		return nil, fmt.Errorf("failed to save recommendation: %w", err)
	}
	return s.createJSONResponse(rec)
}

func (s *MealPlanServer) registerTools() {
	s.tools = map[string]func(*protocol.CallToolRequest) (*protocol.CallToolResult, error){
		"save_profile":                 s.handleSaveProfile,
		"get_profile":                  s.handleGetProfile,
		"generate_meal_recommendation": s.handleGenerateMeal,
		"get_recommendations":          s.handleGetRecommendations,
		"generate_substitutes":         s.handleGenerateSubstitutes,
		"apply_substitute":             s.handleApplySubstitute,
		"adjust_portion":               s.handleAdjustPortion,
		"generate_daily_meals":         s.handleGenerateDailyMeals,
		"get_daily_plan":               s.handleGetDailyPlan,
		"generate_substitutions":       s.handleGenerateSubstitutions,
		"adjust_meal_portion":          s.handleAdjustMealPortion,
		"calculate_bmi":                s.handleCalculateBMI,
	}
}
