package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMutator tracks a member's role set in memory and can be told to
// fail specific roles.
type fakeMutator struct {
	roles  map[string]bool
	failOn map[string]error
}

func newFakeMutator(held ...string) *fakeMutator {
	mutator := &fakeMutator{
		roles:  make(map[string]bool),
		failOn: make(map[string]error),
	}
	for _, roleID := range held {
		mutator.roles[roleID] = true
	}
	return mutator
}

func (mutator *fakeMutator) AddRole(guildID, userID, roleID string) error {
	if err := mutator.failOn[roleID]; err != nil {
		return err
	}
	mutator.roles[roleID] = true
	return nil
}

func (mutator *fakeMutator) RemoveRole(guildID, userID, roleID string) error {
	if err := mutator.failOn[roleID]; err != nil {
		return err
	}
	delete(mutator.roles, roleID)
	return nil
}

func (mutator *fakeMutator) held() []string {
	var held []string
	for roleID := range mutator.roles {
		held = append(held, roleID)
	}
	return held
}

func TestBuildSyncPlan(t *testing.T) {
	// Member holds R1 and a role outside the menu; they ask for R2+R3.
	memberRoles := []string{"R1", "outside"}
	menuRoles := []string{"R1", "R2", "R3"}
	desired := []string{"R2", "R3"}

	plan := BuildSyncPlan(memberRoles, menuRoles, desired)

	assert.Equal(t, []string{"R2", "R3"}, plan.Add)
	assert.Equal(t, []string{"R1"}, plan.Remove)
}

func TestBuildSyncPlanIgnoresNonMenuRoles(t *testing.T) {
	plan := BuildSyncPlan(
		[]string{"outside-1", "outside-2"},
		[]string{"R1"},
		[]string{"R1"},
	)

	assert.Equal(t, []string{"R1"}, plan.Add)
	assert.Empty(t, plan.Remove)
}

func TestSyncEndsWithDesiredRoles(t *testing.T) {
	mutator := newFakeMutator("R1", "outside")
	menuRoles := []string{"R1", "R2", "R3"}

	plan := BuildSyncPlan(mutator.held(), menuRoles, []string{"R2", "R3"})
	result := ApplySyncPlan(mutator, "guild", "member", plan)

	assert.Empty(t, result.Failures())
	assert.ElementsMatch(t, []string{"R2", "R3", "outside"}, mutator.held())
}

func TestSyncIsIdempotent(t *testing.T) {
	mutator := newFakeMutator("R1")
	menuRoles := []string{"R1", "R2", "R3"}
	desired := []string{"R2", "R3"}

	first := BuildSyncPlan(mutator.held(), menuRoles, desired)
	ApplySyncPlan(mutator, "guild", "member", first)

	second := BuildSyncPlan(mutator.held(), menuRoles, desired)
	assert.True(t, second.Empty(), "second pass should be a no-op")
}

func TestSyncIsolatesPerRoleFailures(t *testing.T) {
	mutator := newFakeMutator("R1")
	mutator.failOn["R2"] = errors.New("missing permission")
	menuRoles := []string{"R1", "R2", "R3"}

	plan := BuildSyncPlan(mutator.held(), menuRoles, []string{"R2", "R3"})
	result := ApplySyncPlan(mutator, "guild", "member", plan)

	failures := result.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "R2", failures[0].RoleID)

	// The failing role must not stop the rest of the pass.
	assert.ElementsMatch(t, []string{"R3"}, mutator.held())
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	mutator := newFakeMutator()

	added, err := Toggle(mutator, "guild", "member", "R5", mutator.held())
	require.NoError(t, err)
	assert.True(t, added)
	assert.ElementsMatch(t, []string{"R5"}, mutator.held())

	added, err = Toggle(mutator, "guild", "member", "R5", mutator.held())
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, mutator.held())
}

func TestToggleTouchesOnlyTheOneRole(t *testing.T) {
	mutator := newFakeMutator("R1", "R2")

	added, err := Toggle(mutator, "guild", "member", "R3", mutator.held())
	require.NoError(t, err)
	assert.True(t, added)
	assert.ElementsMatch(t, []string{"R1", "R2", "R3"}, mutator.held())
}

func TestSyncSummaryReportsFailures(t *testing.T) {
	plan := SyncPlan{Add: []string{"R1", "R2"}}
	result := SyncResult{
		Added: []RoleOutcome{
			{RoleID: "R1"},
			{RoleID: "R2", Err: errors.New("missing permission")},
		},
	}

	summary := syncSummary(plan, result)
	assert.Contains(t, summary, "1 added")
	assert.Contains(t, summary, "<@&R2>")
}

func TestSyncSummaryNoOp(t *testing.T) {
	summary := syncSummary(SyncPlan{}, SyncResult{})
	assert.Equal(t, "Your roles are already up to date.", summary)
}
