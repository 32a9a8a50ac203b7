package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diet-planner/internal/models"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	for _, category := range models.Categories {
		if len(c.Items(category)) == 0 {
			t.Fatalf("expected items for %s", category)
		}
	}
	for _, slot := range models.Slots {
		for _, diet := range []models.DietType{models.Omnivore, models.Vegetarian} {
			if len(c.DishesFor(slot, diet)) < 2 {
				t.Fatalf("expected dishes for %s/%s", slot, diet)
			}
		}
	}
	again, _ := Default()
	if again != c {
		t.Fatalf("expected the embedded catalog to be parsed once")
	}
}

func TestDefault_VegetarianItemsCarryNoMeat(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	meat := []string{"chicken", "turkey", "beef", "salmon", "fish", "shrimp"}
	for _, item := range c.Items(models.Protein) {
		if item.Diet != models.All {
			continue
		}
		name := strings.ToLower(item.Name)
		for _, m := range meat {
			if strings.Contains(name, m) {
				t.Fatalf("%q is tagged vegetarian-safe", item.Name)
			}
		}
	}
}

func TestParse_RejectsBadTags(t *testing.T) {
	tests := map[string]string{
		"season": "season: autumn",
		"goal":   "goal: bulking",
		"diet":   "diet: vegetarian",
		"gi":     "glycemic_index: none",
		"slot":   "slots: [brunch]",
	}
	base := map[string]string{
		"season":         "season: all",
		"goal":           "goal: all",
		"diet":           "diet: all",
		"glycemic_index": "glycemic_index: low",
	}
	for name, override := range tests {
		fields := []string{"name: Tofu", "portion: 100g", "calories: 1", "carbs: 1", "protein: 1", "fat: 1"}
		key := strings.SplitN(override, ":", 2)[0]
		for k, v := range base {
			if k != key {
				fields = append(fields, v)
			}
		}
		fields = append(fields, override)
		doc := "components:\n  protein:\n    - " + strings.Join(fields, "\n      ") + "\n"
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	doc := "components:\n  protein:\n    - name: Tofu\n      colour: white\n"
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	doc = "components:\n  fruit: []\n"
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
components:
  vegetable:
    - name: Kale
      portion: 1 cup kale
      calories: 33
      carbs: 6
      protein: 2.9
      fat: 0.6
      glycemic_index: low
      season: winter
      goal: all
      diet: all
dishes:
  dinner:
    vegetarian:
      - name: Kale soup
        portions: 2 cups
        carbs: 20
        low_glycemic: true
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.Items(models.Vegetable); len(got) != 1 || got[0].Name != "Kale" {
		t.Fatalf("unexpected vegetables %+v", got)
	}
	if got := c.DishesFor(models.Dinner, models.Vegetarian); len(got) != 1 || !got[0].LowGlycemic {
		t.Fatalf("unexpected dishes %+v", got)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
