// Package menu holds what the kitchen publishes: the daily menu, notices to
// the troops, and the headcount planning report the lead window exists for.
package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erancho/mess-engine/rancho"
)

// =============================================================================
// DAILY MENU
// =============================================================================

// Menu is the published menu for one date. CostPerMeal feeds the planning
// report; zero means cost is not tracked for that day.
type Menu struct {
	Date        rancho.Date
	Lunch       string
	Dinner      string
	CostPerMeal decimal.Decimal
}

// MenuStore is the persistence boundary for menus, keyed by date.
// Get returns nil (not an error) when no menu is published for the date.
type MenuStore interface {
	GetMenu(ctx context.Context, date rancho.Date) (*Menu, error)
	PutMenu(ctx context.Context, m Menu) error
	DeleteMenu(ctx context.Context, date rancho.Date) error
	ListMenus(ctx context.Context, from, to rancho.Date) ([]Menu, error)
}

var (
	// ErrEmptyMenu is returned when neither meal has a description.
	ErrEmptyMenu = errors.New("menu requires at least one meal description")

	// ErrNegativeCost is returned for a negative per-meal cost.
	ErrNegativeCost = errors.New("cost per meal cannot be negative")
)

// ValidateMenu applies the publication rules.
func ValidateMenu(m Menu) error {
	if strings.TrimSpace(m.Lunch) == "" && strings.TrimSpace(m.Dinner) == "" {
		return ErrEmptyMenu
	}
	if m.CostPerMeal.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}
