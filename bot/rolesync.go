package bot

import (
	"errors"
	"fmt"
	"strings"

	"rolemenu/dal"
	"rolemenu/discordutils"

	"github.com/bwmarrin/discordgo"
	"github.com/gookit/event"
)

// SyncPlan is the set of role mutations that brings a member's menu
// roles in line with their desired selection. Roles outside the menu
// are never part of a plan.
type SyncPlan struct {
	Add    []string
	Remove []string
}

// Empty returns true if the plan contains no mutations.
func (plan SyncPlan) Empty() bool {
	return len(plan.Add) == 0 && len(plan.Remove) == 0
}

// BuildSyncPlan computes the symmetric difference between the roles a
// member holds and the roles they selected, restricted to the menu's
// role set. The plan converges in a single pass: no mutation depends on
// the outcome of another.
func BuildSyncPlan(memberRoles, menuRoles, desired []string) SyncPlan {
	held := make(map[string]bool, len(memberRoles))
	for _, roleID := range memberRoles {
		held[roleID] = true
	}

	wanted := make(map[string]bool, len(desired))
	for _, roleID := range desired {
		wanted[roleID] = true
	}

	var plan SyncPlan
	for _, roleID := range menuRoles {
		switch {
		case wanted[roleID] && !held[roleID]:
			plan.Add = append(plan.Add, roleID)
		case !wanted[roleID] && held[roleID]:
			plan.Remove = append(plan.Remove, roleID)
		}
	}
	return plan
}

// RoleOutcome records the result of a single role mutation.
type RoleOutcome struct {
	RoleID string
	Err    error
}

// SyncResult enumerates which mutations of a sync pass succeeded and
// which failed.
type SyncResult struct {
	Added   []RoleOutcome
	Removed []RoleOutcome
}

// Failures returns the outcomes that carry an error.
func (result SyncResult) Failures() []RoleOutcome {
	var failed []RoleOutcome
	for _, outcome := range append(result.Added, result.Removed...) {
		if outcome.Err != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// ApplySyncPlan runs every mutation in the plan against the given
// member. A failing role never stops the rest of the pass.
func ApplySyncPlan(
	mutator discordutils.RoleMutator,
	guildID string,
	memberID string,
	plan SyncPlan,
) SyncResult {
	var result SyncResult

	for _, roleID := range plan.Add {
		result.Added = append(result.Added, RoleOutcome{
			RoleID: roleID,
			Err:    mutator.AddRole(guildID, memberID, roleID),
		})
	}
	for _, roleID := range plan.Remove {
		result.Removed = append(result.Removed, RoleOutcome{
			RoleID: roleID,
			Err:    mutator.RemoveRole(guildID, memberID, roleID),
		})
	}

	return result
}

// Toggle flips a single role's membership for a member: removed if they
// hold it, granted if they don't. No other role is touched. Returns
// true if the role was granted.
func Toggle(
	mutator discordutils.RoleMutator,
	guildID string,
	memberID string,
	roleID string,
	memberRoles []string,
) (bool, error) {
	if discordutils.MemberHasRole(memberRoles, roleID) {
		return false, mutator.RemoveRole(guildID, memberID, roleID)
	}
	return true, mutator.AddRole(guildID, memberID, roleID)
}

// memberLockKey scopes both runtime entry points to the same lock, so a
// toggle and a sync racing on one member serialize against each other.
func memberLockKey(guildID, memberID string) string {
	return guildID + "/" + memberID
}

// ToggleRequested handles a single role button press on a published
// menu.
func (bot *Bot) ToggleRequested(i *discordgo.InteractionCreate, roleID string) {
	memberID := i.Member.User.ID
	memberKey := memberLockKey(i.GuildID, memberID)
	bot.memberLocks.Lock(memberKey)
	defer bot.memberLocks.Unlock(memberKey)

	added, err := Toggle(bot.mutator, i.GuildID, memberID, roleID, i.Member.Roles)
	if err != nil {
		bot.log.Error().
			Err(err).
			Str("guild", i.GuildID).
			Str("member", memberID).
			Str("role", roleID).
			Msg("Failed to toggle role")
		bot.responder.RespondEphemeral(
			i.Interaction,
			fmt.Sprintf("I couldn't update %v for you: %v", roleMention(roleID), err),
		)
		return
	}

	reply := fmt.Sprintf("Removed %v from your roles.", roleMention(roleID))
	if added {
		reply = fmt.Sprintf("Added %v to your roles.", roleMention(roleID))
	}
	bot.responder.RespondEphemeral(i.Interaction, reply)
}

// MenuUsed handles a published dropdown submission: the member's menu
// roles are reconciled against their selection in one pass.
func (bot *Bot) MenuUsed(i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	menuID := strings.TrimPrefix(data.CustomID, menuUsePrefix)
	memberID := i.Member.User.ID

	menu, err := bot.store.Get(menuID)
	if errors.Is(err, dal.ErrMenuNotFound) {
		bot.menuNotFound(i, menuID)
		return
	}
	if err != nil {
		bot.log.Error().Err(err).Str("menu", menuID).Msg("Failed to load menu")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't load that menu. Try again in a moment.",
		)
		return
	}

	memberKey := memberLockKey(i.GuildID, memberID)
	bot.memberLocks.Lock(memberKey)
	defer bot.memberLocks.Unlock(memberKey)

	plan := BuildSyncPlan(i.Member.Roles, menu.Roles, data.Values)
	result := ApplySyncPlan(bot.mutator, i.GuildID, memberID, plan)

	for _, outcome := range result.Failures() {
		bot.log.Error().
			Err(outcome.Err).
			Str("guild", i.GuildID).
			Str("member", memberID).
			Str("role", outcome.RoleID).
			Msg("Failed to sync role")
	}

	bot.events.MustFire(EventRolesSynced, event.M{
		"guild":   i.GuildID,
		"menu":    menuID,
		"member":  memberID,
		"added":   len(plan.Add),
		"removed": len(plan.Remove),
	})

	bot.responder.RespondEphemeral(i.Interaction, syncSummary(plan, result))
}

func syncSummary(plan SyncPlan, result SyncResult) string {
	if plan.Empty() {
		return "Your roles are already up to date."
	}

	var succeededAdd, succeededRemove int
	for _, outcome := range result.Added {
		if outcome.Err == nil {
			succeededAdd++
		}
	}
	for _, outcome := range result.Removed {
		if outcome.Err == nil {
			succeededRemove++
		}
	}

	summary := fmt.Sprintf(
		"Updated your roles: %v added, %v removed.",
		succeededAdd,
		succeededRemove,
	)

	failures := result.Failures()
	if len(failures) > 0 {
		mentions := make([]string, len(failures))
		for j, outcome := range failures {
			mentions[j] = roleMention(outcome.RoleID)
		}
		summary += fmt.Sprintf(
			"\nI couldn't update: %v. An admin may need to check my permissions.",
			strings.Join(mentions, ", "),
		)
	}

	return summary
}

func roleMention(roleID string) string {
	return fmt.Sprintf("<@&%v>", roleID)
}
