package team

import "strings"

// DeriveStatus recomputes recruiting vs full from the current membership.
// It is a pure function: closed, voting and disbanded teams keep their
// status, as does a team with no leader (mid-election). A team is full when
// every role slot in LookingForRoles is covered by a distinct member, or
// when the member count hits MaxMembers.
func DeriveStatus(t *Team, members []TeamMember) string {
	switch t.Status {
	case StatusClosed, StatusVoting, StatusDisbanded:
		return t.Status
	}
	if t.LeaderID == nil {
		return t.Status
	}
	if t.MaxMembers > 0 && len(members) >= t.MaxMembers {
		return StatusFull
	}
	if openSlots(t, members) == 0 {
		return StatusFull
	}
	return StatusRecruiting
}

// openSlots counts role slots in LookingForRoles not yet covered by a
// member. LookingForRoles is a multiset: two "backend" entries mean two
// backend slots.
func openSlots(t *Team, members []TeamMember) int {
	need := make(map[string]int, len(t.LookingForRoles))
	for _, r := range t.LookingForRoles {
		need[normalizeRole(r)]++
	}
	for _, m := range members {
		r := normalizeRole(m.Role)
		if need[r] > 0 {
			need[r]--
		}
	}
	open := 0
	for _, n := range need {
		open += n
	}
	return open
}

// roleHasOpening reports whether one more member with the given role fits:
// the team must be under capacity and the role must have an uncovered slot.
func roleHasOpening(t *Team, members []TeamMember, role string) bool {
	if t.MaxMembers > 0 && len(members) >= t.MaxMembers {
		return false
	}
	want := normalizeRole(role)
	need := 0
	for _, r := range t.LookingForRoles {
		if normalizeRole(r) == want {
			need++
		}
	}
	if need == 0 {
		return false
	}
	filled := 0
	for _, m := range members {
		if normalizeRole(m.Role) == want {
			filled++
		}
	}
	return filled < need
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
