// internal/catalog/catalog.go
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"diet-planner/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the static food table. It is built once and never written
// afterwards, so it is safe to share between goroutines without locking.
type Catalog struct {
	Components map[models.Category][]models.FoodItem             `yaml:"components"`
	Dishes     map[models.Slot]map[models.DietType][]models.Dish `yaml:"dishes"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// Load reads a catalog from a YAML file, replacing the embedded one.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Items returns the candidates of a category. The slice is shared; callers
// must not modify it.
func (c *Catalog) Items(category models.Category) []models.FoodItem {
	return c.Components[category]
}

// DishesFor returns the daily-plan dishes for a slot and diet.
func (c *Catalog) DishesFor(slot models.Slot, diet models.DietType) []models.Dish {
	return c.Dishes[slot][diet]
}

func (c *Catalog) validate() error {
	for category, items := range c.Components {
		if !category.Valid() {
			return fmt.Errorf("unknown category %q", category)
		}
		for _, item := range items {
			if err := validateItem(item); err != nil {
				return fmt.Errorf("%s %q: %w", category, item.Name, err)
			}
		}
	}
	for slot, byDiet := range c.Dishes {
		if !slot.Valid() {
			return fmt.Errorf("unknown slot %q", slot)
		}
		for diet, dishes := range byDiet {
			if diet != models.Omnivore && diet != models.Vegetarian {
				return fmt.Errorf("%s: unknown diet %q", slot, diet)
			}
			for _, d := range dishes {
				if d.Name == "" {
					return fmt.Errorf("%s/%s: dish without a name", slot, diet)
				}
				if d.Carbs < 0 {
					return fmt.Errorf("%s/%s %q: negative carbs", slot, diet, d.Name)
				}
			}
		}
	}
	return nil
}

func validateItem(item models.FoodItem) error {
	if item.Name == "" {
		return fmt.Errorf("missing name")
	}
	if item.Calories < 0 || item.Carbs < 0 || item.Protein < 0 || item.Fat < 0 {
		return fmt.Errorf("negative nutrition value")
	}
	switch item.GlycemicIndex {
	case models.LowGI, models.MediumGI, models.HighGI:
	default:
		return fmt.Errorf("unknown glycemic index %q", item.GlycemicIndex)
	}
	switch item.Season {
	case models.All, string(models.Winter), string(models.NonWinter):
	default:
		return fmt.Errorf("unknown season tag %q", item.Season)
	}
	switch item.Goal {
	case models.All, string(models.GlucoseControl), string(models.WeightLoss):
	default:
		return fmt.Errorf("unknown goal tag %q", item.Goal)
	}
	switch item.Diet {
	case models.All, string(models.Omnivore):
	default:
		return fmt.Errorf("unknown diet tag %q", item.Diet)
	}
	for _, s := range item.Slots {
		if !s.Valid() {
			return fmt.Errorf("unknown slot %q", s)
		}
	}
	return nil
}
