package rancho_test

import (
	"testing"

	"github.com/erancho/mess-engine/rancho"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// today is always Monday June 3 2024 in these tests. With the default
// window the earliest ordinary date is Monday June 10 (5 business days out)
// and the latest is Monday July 8 (20 more).
var today = rancho.MustParseDate("2024-06-03")

func defaultEngine() rancho.Engine {
	return rancho.Engine{Window: rancho.DefaultWindow()}
}

func ordinary() rancho.Requester {
	return rancho.Requester{Role: rancho.RoleOrdinary}
}

func blockFor(date rancho.Date) *rancho.BlockRecord {
	return &rancho.BlockRecord{Date: date, Reason: "field exercise", CreatedBy: "admin"}
}

func assertDecision(t *testing.T, d rancho.Decision, outcome rancho.Outcome, reason rancho.DenialReason) {
	t.Helper()
	if d.Outcome != outcome {
		t.Errorf("expected outcome %s, got %s", outcome, d.Outcome)
	}
	if d.Reason != reason {
		t.Errorf("expected reason %s, got %s", reason, d.Reason)
	}
}

// =============================================================================
// WINDOW RESOLUTION TESTS
// =============================================================================

func TestWindowResolve_DefaultBounds(t *testing.T) {
	// GIVEN: The default 5/20 window on Monday June 3
	// WHEN: Resolving bounds
	// THEN: Min is June 10, max is July 8

	bounds := rancho.DefaultWindow().Resolve(today)

	if bounds.MinDate.String() != "2024-06-10" {
		t.Errorf("expected min 2024-06-10, got %s", bounds.MinDate)
	}
	if bounds.MaxDate == nil {
		t.Fatal("expected bounded max date")
	}
	if bounds.MaxDate.String() != "2024-07-08" {
		t.Errorf("expected max 2024-07-08, got %s", bounds.MaxDate)
	}
}

func TestWindowResolve_UnboundedMax(t *testing.T) {
	// GIVEN: A window with no maximum configured
	// WHEN: Resolving bounds
	// THEN: MaxDate is nil and far-future dates are permitted

	w := rancho.Window{MinLeadBusinessDays: 5}
	bounds := w.Resolve(today)
	if bounds.MaxDate != nil {
		t.Errorf("expected nil max date, got %s", bounds.MaxDate)
	}

	engine := rancho.Engine{Window: w}
	d := engine.Decide(today, rancho.MustParseDate("2025-06-03"), ordinary(), nil)
	assertDecision(t, d, rancho.OutcomePermitted, rancho.ReasonNone)
}

// =============================================================================
// DECISION ORDER TESTS
// =============================================================================

func TestDecide_OrdinaryInsideWindow_Permitted(t *testing.T) {
	// GIVEN: An ordinary member and a weekday inside the window
	// WHEN: Deciding
	// THEN: Permitted with no reason

	d := defaultEngine().Decide(today, rancho.MustParseDate("2024-06-12"), ordinary(), nil)
	assertDecision(t, d, rancho.OutcomePermitted, rancho.ReasonNone)
}

func TestDecide_WindowEdges_Inclusive(t *testing.T) {
	// GIVEN: The exact min (June 10) and max (July 8) dates
	// WHEN: Deciding for an ordinary member
	// THEN: Both edges are permitted

	engine := defaultEngine()
	for _, date := range []string{"2024-06-10", "2024-07-08"} {
		d := engine.Decide(today, rancho.MustParseDate(date), ordinary(), nil)
		if !d.Permitted() {
			t.Errorf("%s: expected edge date permitted, got %s/%s", date, d.Outcome, d.Reason)
		}
	}
}

func TestDecide_PastDate_DeniedForEveryone(t *testing.T) {
	// GIVEN: Yesterday
	// WHEN: Deciding for every role
	// THEN: Denied PAST_DATE; the past is immutable even for global admins

	yesterday := today.AddDays(-1)
	roles := []rancho.Role{
		rancho.RoleOrdinary, rancho.RoleMonitor,
		rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin,
	}
	for _, role := range roles {
		d := defaultEngine().Decide(today, yesterday, rancho.Requester{Role: role}, nil)
		assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonPastDate)
	}
}

func TestDecide_TooSoon_OutsideLeadWindow(t *testing.T) {
	// GIVEN: Tomorrow (a weekday, but before the minimum lead)
	// WHEN: Deciding for an ordinary member
	// THEN: Denied OUTSIDE_LEAD_WINDOW

	d := defaultEngine().Decide(today, today.AddDays(1), ordinary(), nil)
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonOutsideLeadWindow)
}

func TestDecide_Today_OutsideLeadWindow(t *testing.T) {
	d := defaultEngine().Decide(today, today, ordinary(), nil)
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonOutsideLeadWindow)
}

func TestDecide_TooFar_OutsideMaxWindow(t *testing.T) {
	// GIVEN: The weekday after the maximum date (July 9)
	// WHEN: Deciding for an ordinary member
	// THEN: Denied OUTSIDE_MAX_WINDOW

	d := defaultEngine().Decide(today, rancho.MustParseDate("2024-07-09"), ordinary(), nil)
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonOutsideMaxWindow)
}

func TestDecide_Weekend_NotApplicable(t *testing.T) {
	// GIVEN: A Saturday inside the window
	// WHEN: Deciding for an ordinary member
	// THEN: Not applicable (no service), distinct from a denial

	d := defaultEngine().Decide(today, rancho.MustParseDate("2024-06-15"), ordinary(), nil)
	assertDecision(t, d, rancho.OutcomeNotApplicable, rancho.ReasonNotServiceDay)
	if d.Permitted() {
		t.Error("not-applicable must not be permitted")
	}
}

func TestDecide_BlockedDate_DeniedWithRecord(t *testing.T) {
	// GIVEN: A weekday inside the window with an administrative block
	// WHEN: Deciding for an ordinary member
	// THEN: Denied ADMINISTRATIVELY_BLOCKED carrying the block record

	date := rancho.MustParseDate("2024-06-12")
	block := blockFor(date)

	d := defaultEngine().Decide(today, date, ordinary(), block)
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonBlocked)
	if d.Block == nil || d.Block.Reason != "field exercise" {
		t.Errorf("expected decision to carry the block record, got %+v", d.Block)
	}
}

func TestDecide_BlockBeatsWindowReasons(t *testing.T) {
	// GIVEN: A blocked date that is also outside the lead window
	// WHEN: Deciding
	// THEN: The block reason wins; the user sees why the day is closed

	date := today.AddDays(1)
	d := defaultEngine().Decide(today, date, ordinary(), blockFor(date))
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonBlocked)
}

// =============================================================================
// ROLE OVERRIDE TESTS
// =============================================================================

func TestDecide_GlobalAdmin_IgnoresWindow(t *testing.T) {
	// GIVEN: A global admin
	// WHEN: Deciding for today, tomorrow, a weekend, and past the horizon
	// THEN: All permitted; the window does not apply

	admin := rancho.Requester{Role: rancho.RoleGlobalAdmin}
	dates := []rancho.Date{
		today,
		today.AddDays(1),
		rancho.MustParseDate("2024-06-15"), // Saturday
		rancho.MustParseDate("2024-08-01"), // beyond max
	}
	for _, date := range dates {
		d := defaultEngine().Decide(today, date, admin, nil)
		if !d.Permitted() {
			t.Errorf("%s: expected permitted for global admin, got %s/%s", date, d.Outcome, d.Reason)
		}
	}
}

func TestDecide_GlobalAdmin_StillBlocked(t *testing.T) {
	// GIVEN: A global admin and a blocked date
	// WHEN: Deciding
	// THEN: Denied; blocks hold for everyone

	date := rancho.MustParseDate("2024-06-12")
	admin := rancho.Requester{Role: rancho.RoleGlobalAdmin}

	d := defaultEngine().Decide(today, date, admin, blockFor(date))
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonBlocked)
}

func TestDecide_MonitorAndLocalAdmin_FollowOrdinaryRules(t *testing.T) {
	// GIVEN: A monitor and a local admin
	// WHEN: Deciding for tomorrow (inside the lead time)
	// THEN: Denied like any ordinary member

	for _, role := range []rancho.Role{rancho.RoleMonitor, rancho.RoleLocalAdmin} {
		d := defaultEngine().Decide(today, today.AddDays(1), rancho.Requester{Role: role}, nil)
		assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonOutsideLeadWindow)
	}
}

func TestDecide_Bypass_OverridesEverythingButBlocks(t *testing.T) {
	// GIVEN: A bypass account
	// WHEN: Deciding for past dates, weekends, and out-of-window dates
	// THEN: All permitted

	bypass := rancho.Requester{Role: rancho.RoleOrdinary, Bypass: true}
	dates := []rancho.Date{
		today.AddDays(-30),
		rancho.MustParseDate("2024-06-15"), // Saturday
		rancho.MustParseDate("2024-12-25"), // far future
	}
	for _, date := range dates {
		d := defaultEngine().Decide(today, date, bypass, nil)
		if !d.Permitted() {
			t.Errorf("%s: expected permitted for bypass, got %s/%s", date, d.Outcome, d.Reason)
		}
	}
}

func TestDecide_Bypass_RespectsBlocks(t *testing.T) {
	// GIVEN: A bypass account and a blocked date
	// WHEN: Deciding
	// THEN: Denied; a physically closed kitchen beats every override

	date := rancho.MustParseDate("2024-06-12")
	bypass := rancho.Requester{Role: rancho.RoleOrdinary, Bypass: true}

	d := defaultEngine().Decide(today, date, bypass, blockFor(date))
	assertDecision(t, d, rancho.OutcomeDenied, rancho.ReasonBlocked)
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

func TestDecisionMessage_UsesConfiguredLead(t *testing.T) {
	w := rancho.Window{MinLeadBusinessDays: 3}
	d := rancho.Engine{Window: w}.Decide(today, today.AddDays(1), ordinary(), nil)

	want := "outside the 3-business-day window"
	if got := d.Message(w); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDecisionMessage_BlockIncludesReason(t *testing.T) {
	date := rancho.MustParseDate("2024-06-12")
	d := defaultEngine().Decide(today, date, ordinary(), blockFor(date))

	want := "blocked: field exercise"
	if got := d.Message(rancho.DefaultWindow()); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
