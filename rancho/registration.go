/*
registration.go - Meal registration records and the toggle flow

PURPOSE:
  A registration is the (member, date) record holding two independent meal
  flags (lunch, dinner) plus two attendance flags set later at the gate.
  Toggling a flag is the only mutation the calendar UI performs, and every
  toggle goes through the eligibility engine first.

CONSISTENCY:
  Records are keyed per (member, date), so different people never contend.
  Two sessions of the same person are last-write-wins with no version
  check; the workload is one human pacing their own meals.

EMPTY RECORDS:
  A record with all four flags false is deleted rather than stored. The
  registry then only holds dates that mean something, which keeps the
  headcount queries honest.

SEE ALSO:
  - eligibility.go: The decision that gates the toggle
  - gate/: Attendance confirmation at meal pickup
*/
package rancho

import (
	"context"
	"strings"
)

// =============================================================================
// MEALS
// =============================================================================

// Meal identifies which of the two daily meals a flag refers to.
type Meal string

const (
	MealLunch  Meal = "lunch"
	MealDinner Meal = "dinner"
)

// ParseMeal accepts the canonical identifiers plus the legacy spellings
// that appear in imported data ("almoco", "jantar").
func ParseMeal(s string) (Meal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lunch", "almoco", "almoço":
		return MealLunch, nil
	case "dinner", "jantar":
		return MealDinner, nil
	default:
		return "", ErrUnknownMeal
	}
}

// =============================================================================
// REGISTRATION RECORD
// =============================================================================

// Registration is the persisted state for one member on one date.
type Registration struct {
	MemberCPF string
	Date      Date

	// Requested meals, flipped by the calendar toggle.
	Lunch  bool
	Dinner bool

	// Attendance confirmations, set by the gate flow, never by the toggle.
	LunchAttended  bool
	DinnerAttended bool
}

// Requested reports whether the given meal is registered.
func (r Registration) Requested(meal Meal) bool {
	if meal == MealLunch {
		return r.Lunch
	}
	return r.Dinner
}

// Attended reports whether attendance was confirmed for the meal.
func (r Registration) Attended(meal Meal) bool {
	if meal == MealLunch {
		return r.LunchAttended
	}
	return r.DinnerAttended
}

// Empty reports whether the record carries no information at all.
func (r Registration) Empty() bool {
	return !r.Lunch && !r.Dinner && !r.LunchAttended && !r.DinnerAttended
}

// RegistrationStore is the persistence boundary for registrations.
// Get returns nil (not an error) when no record exists for the key.
type RegistrationStore interface {
	GetRegistration(ctx context.Context, cpf string, date Date) (*Registration, error)
	PutRegistration(ctx context.Context, reg Registration) error
	DeleteRegistration(ctx context.Context, cpf string, date Date) error
	ListRegistrationsByDate(ctx context.Context, date Date) ([]Registration, error)
	ListRegistrationsByMember(ctx context.Context, cpf string, from, to Date) ([]Registration, error)
}

// =============================================================================
// REGISTRATION SERVICE - Engine-guarded toggle
// =============================================================================

// RegistrationService wires the engine, the block registry, and the
// registration store into the toggle flow the calendar calls.
type RegistrationService struct {
	Engine        Engine
	Blocks        BlockRegistry
	Registrations RegistrationStore
	Clock         Clock
}

// Decide runs the engine for one date on behalf of a requester, fetching
// the block record first. This is what the calendar view calls per day.
func (s *RegistrationService) Decide(ctx context.Context, date Date, req Requester) (Decision, error) {
	block, err := s.Blocks.GetBlock(ctx, date)
	if err != nil {
		return Decision{}, err
	}
	return s.Engine.Decide(s.Clock.Today(), date, req, block), nil
}

// Toggle flips the meal flag for (cpf, date) if the engine permits it.
// On denial it returns a *NotPermittedError wrapping the decision; the
// record is untouched. A record left with nothing set is deleted.
func (s *RegistrationService) Toggle(ctx context.Context, cpf string, date Date, meal Meal, req Requester) (*Registration, error) {
	decision, err := s.Decide(ctx, date, req)
	if err != nil {
		return nil, err
	}
	if !decision.Permitted() {
		return nil, &NotPermittedError{Date: date, Decision: decision}
	}

	reg, err := s.Registrations.GetRegistration(ctx, cpf, date)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = &Registration{MemberCPF: cpf, Date: date}
	}

	switch meal {
	case MealLunch:
		reg.Lunch = !reg.Lunch
	case MealDinner:
		reg.Dinner = !reg.Dinner
	default:
		return nil, ErrUnknownMeal
	}

	if reg.Empty() {
		if err := s.Registrations.DeleteRegistration(ctx, cpf, date); err != nil {
			return nil, err
		}
		return reg, nil
	}

	if err := s.Registrations.PutRegistration(ctx, *reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// =============================================================================
// SPECIAL REGISTRATIONS - Bulk headcount without individual records
// =============================================================================

// SpecialRegistration covers groups without individual accounts (visiting
// troops, a course passing through). Quantity adds directly to the
// headcount for the date.
type SpecialRegistration struct {
	ID           string
	Date         Date
	Meal         Meal
	Quantity     int
	Reason       string
	RegisteredBy string
}

// SpecialStore is the persistence boundary for special registrations.
type SpecialStore interface {
	PutSpecial(ctx context.Context, s SpecialRegistration) error
	DeleteSpecial(ctx context.Context, id string) error
	ListSpecialByDate(ctx context.Context, date Date) ([]SpecialRegistration, error)
	ListSpecialRange(ctx context.Context, from, to Date) ([]SpecialRegistration, error)
}

// ValidateSpecial applies the mutation rules: at least one head, and a
// reason the kitchen can read back later.
func ValidateSpecial(s SpecialRegistration) error {
	if strings.TrimSpace(s.Reason) == "" {
		return ErrEmptyReason
	}
	if s.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if s.Meal != MealLunch && s.Meal != MealDinner {
		return ErrUnknownMeal
	}
	return nil
}
