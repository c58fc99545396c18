package rancho_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erancho/mess-engine/rancho"
	"github.com/erancho/mess-engine/rancho/store"
)

const testCPF = "12345678901"

// inWindow is a weekday inside the default window relative to today (Mon
// June 3): min June 10, max July 8.
var inWindow = rancho.MustParseDate("2024-06-12")

func newRegistrationService() (*rancho.RegistrationService, *store.Memory) {
	mem := store.NewMemory()
	svc := &rancho.RegistrationService{
		Engine:        rancho.Engine{Window: rancho.DefaultWindow()},
		Blocks:        mem,
		Registrations: mem,
		Clock:         rancho.FixedClock{Day: today},
	}
	return svc, mem
}

// =============================================================================
// TOGGLE TESTS
// =============================================================================

func TestToggle_OnThenOff(t *testing.T) {
	// GIVEN: No registration for an in-window date
	// WHEN: Toggling lunch on, then off again
	// THEN: The flag flips, and the emptied record is deleted

	svc, mem := newRegistrationService()
	ctx := context.Background()

	reg, err := svc.Toggle(ctx, testCPF, inWindow, rancho.MealLunch, ordinary())
	require.NoError(t, err)
	assert.True(t, reg.Lunch)
	assert.False(t, reg.Dinner)

	reg, err = svc.Toggle(ctx, testCPF, inWindow, rancho.MealLunch, ordinary())
	require.NoError(t, err)
	assert.False(t, reg.Lunch)

	stored, err := mem.GetRegistration(ctx, testCPF, inWindow)
	require.NoError(t, err)
	assert.Nil(t, stored, "empty record should be deleted, not stored")
}

func TestToggle_MealsAreIndependent(t *testing.T) {
	// GIVEN: Lunch toggled on
	// WHEN: Toggling dinner on and lunch off
	// THEN: Dinner survives; the record still exists

	svc, mem := newRegistrationService()
	ctx := context.Background()

	_, err := svc.Toggle(ctx, testCPF, inWindow, rancho.MealLunch, ordinary())
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, testCPF, inWindow, rancho.MealDinner, ordinary())
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, testCPF, inWindow, rancho.MealLunch, ordinary())
	require.NoError(t, err)

	stored, err := mem.GetRegistration(ctx, testCPF, inWindow)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Lunch)
	assert.True(t, stored.Dinner)
}

func TestToggle_Denied_ReturnsNotPermittedError(t *testing.T) {
	// GIVEN: A date inside the lead time (tomorrow)
	// WHEN: An ordinary member toggles
	// THEN: *NotPermittedError carrying the decision; nothing is stored

	svc, mem := newRegistrationService()
	ctx := context.Background()
	tomorrow := today.AddDays(1)

	_, err := svc.Toggle(ctx, testCPF, tomorrow, rancho.MealLunch, ordinary())
	require.Error(t, err)

	var denied *rancho.NotPermittedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, rancho.ReasonOutsideLeadWindow, denied.Decision.Reason)
	assert.ErrorIs(t, err, rancho.ErrNotPermitted)

	stored, err := mem.GetRegistration(ctx, testCPF, tomorrow)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestToggle_BlockedDate_Denied(t *testing.T) {
	svc, mem := newRegistrationService()
	ctx := context.Background()

	require.NoError(t, mem.PutBlock(ctx, rancho.BlockRecord{
		Date: inWindow, Reason: "field exercise",
	}))

	_, err := svc.Toggle(ctx, testCPF, inWindow, rancho.MealLunch, ordinary())
	var denied *rancho.NotPermittedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, rancho.ReasonBlocked, denied.Decision.Reason)
	require.NotNil(t, denied.Decision.Block)
	assert.Equal(t, "field exercise", denied.Decision.Block.Reason)
}

func TestToggle_GlobalAdmin_CanActToday(t *testing.T) {
	svc, _ := newRegistrationService()
	admin := rancho.Requester{Role: rancho.RoleGlobalAdmin}

	reg, err := svc.Toggle(context.Background(), testCPF, today, rancho.MealDinner, admin)
	require.NoError(t, err)
	assert.True(t, reg.Dinner)
}

func TestToggle_PreservesAttendanceFlags(t *testing.T) {
	// GIVEN: A record with lunch attended (set by the gate)
	// WHEN: Toggling dinner
	// THEN: The attendance flag survives the write

	svc, mem := newRegistrationService()
	ctx := context.Background()

	require.NoError(t, mem.PutRegistration(ctx, rancho.Registration{
		MemberCPF: testCPF, Date: inWindow, Lunch: true, LunchAttended: true,
	}))

	reg, err := svc.Toggle(ctx, testCPF, inWindow, rancho.MealDinner, ordinary())
	require.NoError(t, err)
	assert.True(t, reg.LunchAttended)
	assert.True(t, reg.Dinner)
}

// =============================================================================
// DECIDE TESTS
// =============================================================================

func TestDecide_FetchesBlockFromRegistry(t *testing.T) {
	// GIVEN: A block stored in the registry
	// WHEN: Deciding through the service
	// THEN: The engine sees it without the caller passing it in

	svc, mem := newRegistrationService()
	ctx := context.Background()

	require.NoError(t, mem.PutBlock(ctx, rancho.BlockRecord{Date: inWindow, Reason: "holiday"}))

	decision, err := svc.Decide(ctx, inWindow, ordinary())
	require.NoError(t, err)
	assert.Equal(t, rancho.ReasonBlocked, decision.Reason)
}

// =============================================================================
// MEAL PARSING & SPECIAL VALIDATION
// =============================================================================

func TestParseMeal_AcceptsLegacySpellings(t *testing.T) {
	cases := map[string]rancho.Meal{
		"lunch":  rancho.MealLunch,
		"almoco": rancho.MealLunch,
		"almoço": rancho.MealLunch,
		"LUNCH":  rancho.MealLunch,
		"dinner": rancho.MealDinner,
		"jantar": rancho.MealDinner,
	}
	for input, want := range cases {
		got, err := rancho.ParseMeal(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := rancho.ParseMeal("breakfast")
	assert.ErrorIs(t, err, rancho.ErrUnknownMeal)
}

func TestValidateSpecial(t *testing.T) {
	valid := rancho.SpecialRegistration{
		Date: inWindow, Meal: rancho.MealLunch, Quantity: 40, Reason: "visiting platoon",
	}
	assert.NoError(t, rancho.ValidateSpecial(valid))

	noReason := valid
	noReason.Reason = "  "
	assert.ErrorIs(t, rancho.ValidateSpecial(noReason), rancho.ErrEmptyReason)

	zeroHeads := valid
	zeroHeads.Quantity = 0
	assert.ErrorIs(t, rancho.ValidateSpecial(zeroHeads), rancho.ErrInvalidQuantity)

	badMeal := valid
	badMeal.Meal = "supper"
	assert.ErrorIs(t, rancho.ValidateSpecial(badMeal), rancho.ErrUnknownMeal)
}
