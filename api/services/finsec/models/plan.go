package models

import (
	"errors"
	"fmt"
)

// Plan describes what a run seeds and which analytics windows it checks.
type Plan struct {
	Days       int      `yaml:"days" json:"days"`
	Categories []string `yaml:"categories" json:"categories"`
	MinAmount  int      `yaml:"min_amount" json:"min_amount"`
	MaxAmount  int      `yaml:"max_amount" json:"max_amount"`
	Periods    []Period `yaml:"periods" json:"periods"`
}

// DefaultPlan seeds one bill per day for the trailing 60 days and checks week, month and year.
func DefaultPlan() Plan {
	return Plan{
		Days:       60,
		Categories: append([]string(nil), DefaultCategories...),
		MinAmount:  10,
		MaxAmount:  200,
		Periods:    append([]Period(nil), DefaultPeriods...),
	}
}

// Validate checks the plan can drive a run.
func (p Plan) Validate() error {
	if p.Days <= 0 {
		return fmt.Errorf("plan days must be positive, got %d", p.Days)
	}
	if len(p.Categories) == 0 {
		return errors.New("plan needs at least one category")
	}
	if p.MinAmount <= 0 || p.MinAmount > p.MaxAmount {
		return fmt.Errorf("plan amount range [%d, %d] is invalid", p.MinAmount, p.MaxAmount)
	}
	if len(p.Periods) == 0 {
		return errors.New("plan needs at least one period")
	}
	seen := make(map[Period]bool, len(p.Periods))
	for _, period := range p.Periods {
		if !period.Valid() {
			return fmt.Errorf("unknown analytics period %q", period)
		}
		if seen[period] {
			return fmt.Errorf("duplicate analytics period %q", period)
		}
		seen[period] = true
	}
	return nil
}
