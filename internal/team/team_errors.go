package team

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by the team service. Controllers translate them
// to HTTP statuses with HTTPStatus; callers hitting a conflict error should
// refresh state rather than retry.
var (
	// Not found
	ErrTeamNotFound    = errors.New("team not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRequestNotFound = errors.New("join request not found")

	// Validation
	ErrDuplicateTeamName   = errors.New("team name already exists")
	ErrTeamNotRecruiting   = errors.New("team is not recruiting")
	ErrInvalidMemberBounds = errors.New("min members cannot exceed max members")
	ErrAlreadyMember       = errors.New("profile already belongs to a team")
	ErrAlreadyRequested    = errors.New("a pending join request for this team already exists")
	ErrNotMember           = errors.New("profile is not a member of this team")
	ErrCannotRemoveSelf    = errors.New("leader cannot remove themselves; use leave instead")
	ErrTeamNotClosed       = errors.New("team is not closed")
	ErrTeamDisbanded       = errors.New("team is disbanded")

	// Authorization
	ErrNotTeamLeader   = errors.New("only the team leader can do this")
	ErrNotRequestOwner = errors.New("only the request owner can do this")

	// Race / conflict (benign: another actor won, refresh and continue)
	ErrRequestAlreadyResolved  = errors.New("join request is already resolved")
	ErrRoleNoLongerOpen        = errors.New("the requested role is no longer open")
	ErrElectionAlreadyResolved = errors.New("election is already resolved")

	// Election
	ErrNoActiveElection     = errors.New("no active election for this team")
	ErrVoterNotEligible     = errors.New("voter is not a member of this team")
	ErrCandidateNotEligible = errors.New("candidate is not a member of this team")
	ErrSelfVote             = errors.New("cannot vote for yourself")
	ErrElectionStillOpen    = errors.New("election window has not closed yet")
	ErrNoCandidates         = errors.New("no candidates remain")
)

// HTTPStatus maps a service error to the status code its category carries.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTeamNotFound),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrNoActiveElection):
		return http.StatusNotFound
	case errors.Is(err, ErrNotTeamLeader),
		errors.Is(err, ErrNotRequestOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrRequestAlreadyResolved),
		errors.Is(err, ErrRoleNoLongerOpen),
		errors.Is(err, ErrElectionAlreadyResolved),
		errors.Is(err, ErrDuplicateTeamName),
		errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrAlreadyRequested),
		errors.Is(err, ErrElectionStillOpen):
		return http.StatusConflict
	case errors.Is(err, ErrTeamNotRecruiting),
		errors.Is(err, ErrInvalidMemberBounds),
		errors.Is(err, ErrNotMember),
		errors.Is(err, ErrCannotRemoveSelf),
		errors.Is(err, ErrTeamNotClosed),
		errors.Is(err, ErrTeamDisbanded),
		errors.Is(err, ErrVoterNotEligible),
		errors.Is(err, ErrCandidateNotEligible),
		errors.Is(err, ErrSelfVote),
		errors.Is(err, ErrNoCandidates):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
