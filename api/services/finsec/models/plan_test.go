package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()
	require.NoError(t, p.Validate())
	assert.Equal(t, 60, p.Days)
	assert.Equal(t, 10, p.MinAmount)
	assert.Equal(t, 200, p.MaxAmount)
	assert.ElementsMatch(t, []string{"Groceries", "Utilities", "Entertainment", "Transportation"}, p.Categories)
	assert.Equal(t, []Period{PeriodWeek, PeriodMonth, PeriodYear}, p.Periods)

	// Defaults must not alias the package-level slices.
	p.Categories[0] = "changed"
	assert.Equal(t, CategoryGroceries, DefaultCategories[0])
}

func TestPlanValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Plan){
		"zero days":        func(p *Plan) { p.Days = 0 },
		"no categories":    func(p *Plan) { p.Categories = nil },
		"inverted amounts": func(p *Plan) { p.MinAmount, p.MaxAmount = 50, 10 },
		"zero min":         func(p *Plan) { p.MinAmount = 0 },
		"no periods":       func(p *Plan) { p.Periods = nil },
		"unknown period":   func(p *Plan) { p.Periods = []Period{"day"} },
		"duplicate period": func(p *Plan) { p.Periods = []Period{PeriodWeek, PeriodWeek} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultPlan()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
