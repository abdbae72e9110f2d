package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// LoadPlan reads a YAML seeding plan. Keys missing from the file keep their
// default values; an empty path returns the default plan.
//
//	days: 30
//	categories: [Groceries, Utilities]
//	min_amount: 10
//	max_amount: 200
//	periods: [week, month]
func LoadPlan(path string) (models.Plan, error) {
	plan := models.DefaultPlan()
	if path == "" {
		return plan, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Plan{}, fmt.Errorf("read plan %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return models.Plan{}, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return models.Plan{}, fmt.Errorf("plan %s: %w", path, err)
	}
	return plan, nil
}
