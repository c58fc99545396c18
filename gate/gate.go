/*
Package gate validates meal pickup against registrations.

PURPOSE:
  The serving-line scanner reads a CPF off a badge QR code and asks one
  question: feed this person this meal today, yes or no? The gate answers,
  and on a yes it records the attendance confirmation on the registration
  record.

WALK-INS:
  Someone present but not registered still gets fed (refusing plates at
  the hatch is not a thing), but the admission is flagged so the monitors
  see who is eating outside the plan. This mirrors the original
  "liberado na hora" marker on the presence dashboard.

SCOPE:
  QR rendering and camera scanning are presentation concerns and live in
  the clients. The gate only sees the decoded CPF.

SEE ALSO:
  - rancho/registration.go: Attendance flags on the registration record
  - roster: Member lookup and active check
*/
package gate

import (
	"context"

	"github.com/erancho/mess-engine/rancho"
	"github.com/erancho/mess-engine/roster"
)

// =============================================================================
// SCAN RESULT
// =============================================================================

type ScanStatus string

const (
	// Admitted: registered for the meal, attendance confirmed.
	Admitted ScanStatus = "admitted"

	// AdmittedWalkIn: not registered but fed anyway; flagged for the
	// presence dashboard.
	AdmittedWalkIn ScanStatus = "admitted_walk_in"

	// AlreadyConfirmed: the badge was scanned twice for the same meal.
	AlreadyConfirmed ScanStatus = "already_confirmed"

	// DeniedUnknown: CPF not on the roster.
	DeniedUnknown ScanStatus = "denied_unknown"

	// DeniedInactive: member exists but is deactivated.
	DeniedInactive ScanStatus = "denied_inactive"
)

func (s ScanStatus) Admit() bool {
	return s == Admitted || s == AdmittedWalkIn
}

// ScanResult is what the scanner UI renders after a badge read.
type ScanResult struct {
	Status  ScanStatus
	WarName string
	Date    rancho.Date
	Meal    rancho.Meal
}

// =============================================================================
// GATE SERVICE
// =============================================================================

// Service answers scans and manual presence confirmations.
type Service struct {
	Members       *roster.Service
	Registrations rancho.RegistrationStore
	Clock         rancho.Clock
}

// Scan processes one badge read for today's given meal.
func (s *Service) Scan(ctx context.Context, cpf string, meal rancho.Meal) (*ScanResult, error) {
	today := s.Clock.Today()
	result := &ScanResult{Date: today, Meal: meal}

	member, err := s.Members.Store.GetMemberByCPF(ctx, roster.NormalizeCPF(cpf))
	if err != nil {
		return nil, err
	}
	if member == nil {
		result.Status = DeniedUnknown
		return result, nil
	}
	result.WarName = member.WarName
	if !member.Active {
		result.Status = DeniedInactive
		return result, nil
	}

	reg, err := s.Registrations.GetRegistration(ctx, member.CPF, today)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = &rancho.Registration{MemberCPF: member.CPF, Date: today}
	}

	if reg.Attended(meal) {
		result.Status = AlreadyConfirmed
		return result, nil
	}

	if reg.Requested(meal) {
		result.Status = Admitted
	} else {
		result.Status = AdmittedWalkIn
	}

	setAttended(reg, meal)
	if err := s.Registrations.PutRegistration(ctx, *reg); err != nil {
		return nil, err
	}
	return result, nil
}

// Confirm is the manual presence flow from the dashboard: mark attendance
// for an existing registration without the walk-in path. Missing records
// are an error here because the monitor is ticking off a listed name.
func (s *Service) Confirm(ctx context.Context, cpf string, date rancho.Date, meal rancho.Meal) error {
	reg, err := s.Registrations.GetRegistration(ctx, roster.NormalizeCPF(cpf), date)
	if err != nil {
		return err
	}
	if reg == nil {
		return rancho.ErrRegistrationNotFound
	}
	setAttended(reg, meal)
	return s.Registrations.PutRegistration(ctx, *reg)
}

func setAttended(reg *rancho.Registration, meal rancho.Meal) {
	if meal == rancho.MealLunch {
		reg.LunchAttended = true
	} else {
		reg.DinnerAttended = true
	}
}
