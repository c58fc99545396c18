/*
Package rancho implements the meal-registration rule engine for a mess hall.

PURPOSE:
  Decides, for any (requester, date, meal) triple, whether flipping a
  registration on or off is permitted right now. The rules combine
  business-day lead windows, an optional maximum planning horizon,
  per-day administrative blocks, and role-based overrides.

KEY CONCEPTS:
  - Date:         Calendar-day value type, ISO YYYY-MM-DD keys (calendar.go)
  - Window:       Lead/max business-day configuration (this file)
  - Engine:       The pure eligibility decision function (this file)
  - BlockRecord:  Administrative per-day lockout with a reason (blocks.go)
  - Registration: The (member, date) meal flags the decision guards (registration.go)

DESIGN PRINCIPLES:
  1. Purity: Decide performs no I/O. Callers fetch the block record and
     inject the clock; the engine only computes.
  2. Ordered rules: the first matching rule wins. The order is a contract,
     because it determines which reason the user sees and because role
     overrides must be evaluated before the generic window checks.
  3. Denials carry reasons: there is no silent lockout. Every denied date
     maps to a reason the UI can render.

USAGE:
  engine := rancho.Engine{Window: rancho.DefaultWindow()}
  d := engine.Decide(clock.Today(), date, requester, block)
  if d.Permitted() {
      // flip the registration flag and persist
  }

SEE ALSO:
  - blocks.go: Block registry and administrative block mutations
  - registration.go: Applying decisions to registration records
*/
package rancho

import "fmt"

// =============================================================================
// ROLES & REQUESTER
// =============================================================================

// Role is the requester's privilege level. Monitors (mess "fiscal") and local
// administrators follow the ordinary window rules when registering; their
// extra privileges live at the API layer (blocking days, editing menus).
// Only the global administrator overrides the window inside the engine.
type Role string

const (
	RoleOrdinary    Role = "ordinary"
	RoleMonitor     Role = "monitor"
	RoleLocalAdmin  Role = "local_admin"
	RoleGlobalAdmin Role = "global_admin"
)

// Requester is the identity context the engine sees. It is deliberately
// shapeless beyond these two fields: the roster package owns member records
// and resolves them down to this.
type Requester struct {
	Role Role

	// Bypass marks a designated account exempt from every schedule rule
	// except explicit administrative blocks. Resolved from configuration by
	// the identity provider, never from identifiers inside the engine.
	Bypass bool
}

// =============================================================================
// REGISTRATION WINDOW
// =============================================================================

// Window configures how far ahead a registration must and may be made,
// counted in business days strictly after today.
type Window struct {
	// MinLeadBusinessDays is the minimum advance notice. The kitchen plans
	// procurement and headcount off this horizon.
	MinLeadBusinessDays int

	// MaxLeadBusinessDays caps speculative far-future registrations,
	// counted in business days past the minimum date. Nil means unbounded.
	MaxLeadBusinessDays *int
}

// DefaultWindow is the deployed configuration: five business days of notice,
// twenty business days of planning horizon.
func DefaultWindow() Window {
	max := 20
	return Window{MinLeadBusinessDays: 5, MaxLeadBusinessDays: &max}
}

// Bounds holds the resolved edges of the window for a given day.
type Bounds struct {
	// MinDate is the earliest date an ordinary requester may act on.
	MinDate Date

	// MaxDate is the latest such date; nil when the window is unbounded.
	MaxDate *Date
}

// Resolve computes the window bounds for today. MinDate is today advanced by
// the minimum lead; MaxDate extends from MinDate by the configured maximum.
func (w Window) Resolve(today Date) Bounds {
	b := Bounds{MinDate: today.AddBusinessDays(w.MinLeadBusinessDays)}
	if w.MaxLeadBusinessDays != nil {
		max := b.MinDate.AddBusinessDays(*w.MaxLeadBusinessDays)
		b.MaxDate = &max
	}
	return b
}

// =============================================================================
// DECISION
// =============================================================================

type Outcome string

const (
	// OutcomePermitted allows the toggle.
	OutcomePermitted Outcome = "permitted"

	// OutcomeDenied forbids the toggle for the carried reason.
	OutcomeDenied Outcome = "denied"

	// OutcomeNotApplicable marks a day with no meal service (weekends).
	// The UI renders these dimmed with no controls rather than locked,
	// so this is distinct from a denial.
	OutcomeNotApplicable Outcome = "not_applicable"
)

// DenialReason explains a denied (or not-applicable) decision.
type DenialReason string

const (
	ReasonNone              DenialReason = "NONE"
	ReasonPastDate          DenialReason = "PAST_DATE"
	ReasonOutsideLeadWindow DenialReason = "OUTSIDE_LEAD_WINDOW"
	ReasonOutsideMaxWindow  DenialReason = "OUTSIDE_MAX_WINDOW"
	ReasonBlocked           DenialReason = "ADMINISTRATIVELY_BLOCKED"
	ReasonNotServiceDay     DenialReason = "NOT_A_SERVICE_DAY"
)

// Decision is the engine's verdict for one (requester, date) pair.
// It is computed, never persisted.
type Decision struct {
	Outcome Outcome
	Reason  DenialReason

	// Block is the administrative block that produced a
	// ADMINISTRATIVELY_BLOCKED denial, so the UI can show its reason.
	Block *BlockRecord
}

func (d Decision) Permitted() bool { return d.Outcome == OutcomePermitted }

// Message renders the human-readable denial text shown next to a locked day.
func (d Decision) Message(w Window) string {
	switch d.Reason {
	case ReasonPastDate:
		return "date has already passed"
	case ReasonOutsideLeadWindow:
		return messageForLead(w.MinLeadBusinessDays)
	case ReasonOutsideMaxWindow:
		return "beyond the planning horizon"
	case ReasonBlocked:
		if d.Block != nil {
			return "blocked: " + d.Block.Reason
		}
		return "blocked"
	case ReasonNotServiceDay:
		return "no meal service on weekends"
	default:
		return ""
	}
}

func messageForLead(days int) string {
	return fmt.Sprintf("outside the %d-business-day window", days)
}

// =============================================================================
// ELIGIBILITY ENGINE
// =============================================================================

// Engine is the pure eligibility decision function. It holds only the window
// configuration; today, the requester, and the block record are injected per
// call, so the same engine value serves every request.
type Engine struct {
	Window Window
}

// Decide evaluates the rules in contract order; the first matching rule
// wins. Preconditions: dates are well-formed calendar days (parsing is the
// caller's problem) and block, when non-nil, is the record for date.
//
// Rule order:
//  1. Bypass accounts pass everything except an explicit block. Blocks are
//     authoritative even for bypass: the kitchen physically closed is not
//     something a test account should schedule against.
//  2. Past dates are immutable for everyone.
//  3. Global admins may act from today forward, but explicit blocks still
//     hold. (A historical variant let them through; that variant is
//     intentionally not implemented. See DESIGN.md.)
//  4. Blocks deny everyone else.
//  5. Weekends carry no meal service: not applicable, not denied.
//  6. Dates before the minimum lead are too soon.
//  7. Dates past the maximum horizon (when configured) are too far.
//  8. Otherwise permitted.
func (e Engine) Decide(today, date Date, req Requester, block *BlockRecord) Decision {
	if req.Bypass {
		if block != nil {
			return Decision{Outcome: OutcomeDenied, Reason: ReasonBlocked, Block: block}
		}
		return Decision{Outcome: OutcomePermitted, Reason: ReasonNone}
	}

	if date.Before(today) {
		return Decision{Outcome: OutcomeDenied, Reason: ReasonPastDate}
	}

	if req.Role == RoleGlobalAdmin {
		if block != nil {
			return Decision{Outcome: OutcomeDenied, Reason: ReasonBlocked, Block: block}
		}
		return Decision{Outcome: OutcomePermitted, Reason: ReasonNone}
	}

	if block != nil {
		return Decision{Outcome: OutcomeDenied, Reason: ReasonBlocked, Block: block}
	}

	if !date.IsBusinessDay() {
		return Decision{Outcome: OutcomeNotApplicable, Reason: ReasonNotServiceDay}
	}

	bounds := e.Window.Resolve(today)
	if date.Before(bounds.MinDate) {
		return Decision{Outcome: OutcomeDenied, Reason: ReasonOutsideLeadWindow}
	}
	if bounds.MaxDate != nil && date.After(*bounds.MaxDate) {
		return Decision{Outcome: OutcomeDenied, Reason: ReasonOutsideMaxWindow}
	}

	return Decision{Outcome: OutcomePermitted, Reason: ReasonNone}
}
