/*
planning.go - Kitchen headcount and cost projection

PURPOSE:
  The whole point of the lead window is that the kitchen knows its numbers
  in advance. The planner turns registrations plus special (bulk)
  registrations into a per-day, per-meal headcount, and prices it against
  the published menu cost.

PRECISION:
  Money math uses decimal.Decimal throughout. Headcounts are integers, but
  the moment a cost multiplies in, floats would drift across a month of
  line items.

SEE ALSO:
  - rancho/registration.go: The records being counted
  - api/handlers.go: The report endpoint
*/
package menu

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erancho/mess-engine/rancho"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// MealCount is the planned and confirmed headcount for one meal on one day.
type MealCount struct {
	Registered int
	Special    int
	Attended   int
}

// Total is the number of plates the kitchen should plan for.
func (c MealCount) Total() int { return c.Registered + c.Special }

// DayPlan is the planning row for one calendar date.
type DayPlan struct {
	Date   rancho.Date
	Lunch  MealCount
	Dinner MealCount

	// ProjectedCost is Total plates × menu cost; zero when no menu or no
	// cost is published for the date.
	ProjectedCost decimal.Decimal
}

// Report is the headcount projection over a date range, one row per day,
// in ascending date order. Weekends appear with zero counts when nothing
// is registered; special events can land on any day.
type Report struct {
	From rancho.Date
	To   rancho.Date
	Days []DayPlan

	TotalPlates int
	TotalCost   decimal.Decimal
}

// =============================================================================
// PLANNER
// =============================================================================

// Planner assembles the headcount report from the three stores.
type Planner struct {
	Registrations rancho.RegistrationStore
	Specials      rancho.SpecialStore
	Menus         MenuStore
}

// Headcount builds the report for [from, to] inclusive.
func (p *Planner) Headcount(ctx context.Context, from, to rancho.Date) (*Report, error) {
	report := &Report{From: from, To: to, TotalCost: decimal.Zero}

	specials, err := p.Specials.ListSpecialRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	specialByDate := make(map[string][]rancho.SpecialRegistration)
	for _, s := range specials {
		key := s.Date.String()
		specialByDate[key] = append(specialByDate[key], s)
	}

	for day := from; day.BeforeOrEqual(to); day = day.AddDays(1) {
		plan := DayPlan{Date: day, ProjectedCost: decimal.Zero}

		regs, err := p.Registrations.ListRegistrationsByDate(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, r := range regs {
			if r.Lunch {
				plan.Lunch.Registered++
			}
			if r.Dinner {
				plan.Dinner.Registered++
			}
			if r.LunchAttended {
				plan.Lunch.Attended++
			}
			if r.DinnerAttended {
				plan.Dinner.Attended++
			}
		}

		for _, s := range specialByDate[day.String()] {
			if s.Meal == rancho.MealLunch {
				plan.Lunch.Special += s.Quantity
			} else {
				plan.Dinner.Special += s.Quantity
			}
		}

		plates := plan.Lunch.Total() + plan.Dinner.Total()
		if plates > 0 {
			m, err := p.Menus.GetMenu(ctx, day)
			if err != nil {
				return nil, err
			}
			if m != nil && m.CostPerMeal.IsPositive() {
				plan.ProjectedCost = m.CostPerMeal.Mul(decimal.NewFromInt(int64(plates)))
			}
		}

		report.Days = append(report.Days, plan)
		report.TotalPlates += plates
		report.TotalCost = report.TotalCost.Add(plan.ProjectedCost)
	}

	return report, nil
}
