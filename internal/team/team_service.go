package team

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/internal/event"
	"github.com/hackmatehq/hackmate/internal/models"
)

// DefaultVotingWindow is how long a leader election stays open.
const DefaultVotingWindow = 5 * time.Minute

// TeamService owns all team lifecycle rules: join-request arbitration,
// status derivation, and the leader succession protocol. Every multi-record
// transition runs inside a single repository transaction; the presentation
// layer only calls in and renders the result.
type TeamService struct {
	repo         TeamRepository
	events       event.Emitter
	votingWindow time.Duration
}

func NewTeamService(repo TeamRepository, events event.Emitter, votingWindow time.Duration) *TeamService {
	if votingWindow <= 0 {
		votingWindow = DefaultVotingWindow
	}
	return &TeamService{repo: repo, events: events, votingWindow: votingWindow}
}

func (s *TeamService) emit(e event.Event) {
	if s.events != nil {
		s.events.Emit(e)
	}
}

// --- Team creation and editing ---

// CreateTeam creates a team with the caller as leader and first member.
func (s *TeamService) CreateTeam(leaderID uint, req CreateTeamRequest) (*Team, error) {
	exists, err := s.repo.ProfileExists(leaderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProfileNotFound
	}

	membership, err := s.repo.GetMembershipByProfileID(leaderID)
	if err != nil {
		return nil, err
	}
	if membership != nil {
		return nil, ErrAlreadyMember
	}

	existing, err := s.repo.GetTeamByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateTeamName
	}

	minMembers, maxMembers := req.MinMembers, req.MaxMembers
	if minMembers == 0 {
		minMembers = 2
	}
	if maxMembers == 0 {
		maxMembers = 6
	}
	if minMembers > maxMembers {
		return nil, ErrInvalidMemberBounds
	}

	t := Team{
		Name:            req.Name,
		Description:     req.Description,
		Status:          StatusRecruiting,
		LeaderID:        &leaderID,
		LookingForRoles: models.StringSlice(req.LookingForRoles),
		TechStack:       models.StringSlice(req.TechStack),
		MinMembers:      minMembers,
		MaxMembers:      maxMembers,
	}

	err = s.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.CreateTeam(&t); err != nil {
			return err
		}
		leader := TeamMember{
			TeamID:    t.ID,
			ProfileID: leaderID,
			Role:      req.LeaderRole,
			JoinedAt:  time.Now(),
		}
		if err := repo.AddMember(&leader); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return err
		}
		t.Status = DeriveStatus(&t, []TeamMember{leader})
		return repo.UpdateTeam(&t)
	})
	if err != nil {
		return nil, err
	}

	s.emit(event.New(event.TypeTeamChanged, t.ID, leaderID, "team created"))
	return &t, nil
}

// UpdateTeam lets the leader edit description, wanted roles, tech stack and
// member bounds. Status is re-derived because changing the wanted roles can
// flip recruiting/full.
func (s *TeamService) UpdateTeam(teamID, leaderID uint, req UpdateTeamRequest) (*Team, error) {
	var t *Team
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		var err error
		t, err = s.loadTeamForLeader(repo, teamID, leaderID)
		if err != nil {
			return err
		}

		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.LookingForRoles != nil {
			t.LookingForRoles = models.StringSlice(req.LookingForRoles)
		}
		if req.TechStack != nil {
			t.TechStack = models.StringSlice(req.TechStack)
		}
		if req.MinMembers != nil {
			t.MinMembers = *req.MinMembers
		}
		if req.MaxMembers != nil {
			t.MaxMembers = *req.MaxMembers
		}
		if t.MinMembers > t.MaxMembers {
			return ErrInvalidMemberBounds
		}

		members, err := repo.GetMembers(teamID)
		if err != nil {
			return err
		}
		t.Status = DeriveStatus(t, members)
		return repo.UpdateTeam(t)
	})
	if err != nil {
		return nil, err
	}

	s.emit(event.New(event.TypeTeamChanged, teamID, leaderID, "team updated"))
	return t, nil
}

// CloseRecruiting manually stops recruiting.
func (s *TeamService) CloseRecruiting(teamID, leaderID uint) (*Team, error) {
	var t *Team
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		var err error
		t, err = s.loadTeamForLeader(repo, teamID, leaderID)
		if err != nil {
			return err
		}
		if t.Status != StatusRecruiting && t.Status != StatusFull {
			return ErrTeamNotRecruiting
		}
		t.Status = StatusClosed
		return repo.UpdateTeam(t)
	})
	if err != nil {
		return nil, err
	}

	s.emit(event.New(event.TypeTeamChanged, teamID, leaderID, "recruiting closed"))
	return t, nil
}

// ReopenRecruiting re-derives recruiting/full for a closed team.
func (s *TeamService) ReopenRecruiting(teamID, leaderID uint) (*Team, error) {
	var t *Team
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		var err error
		t, err = s.loadTeamForLeader(repo, teamID, leaderID)
		if err != nil {
			return err
		}
		if t.Status != StatusClosed {
			return ErrTeamNotClosed
		}
		members, err := repo.GetMembers(teamID)
		if err != nil {
			return err
		}
		t.Status = StatusRecruiting
		t.Status = DeriveStatus(t, members)
		return repo.UpdateTeam(t)
	})
	if err != nil {
		return nil, err
	}

	s.emit(event.New(event.TypeTeamChanged, teamID, leaderID, "recruiting reopened"))
	return t, nil
}

// --- Membership arbitration ---

// SubmitJoinRequest files a pending request to fill a role on a team.
func (s *TeamService) SubmitJoinRequest(profileID, teamID uint, role, message string) (*JoinRequest, error) {
	var req *JoinRequest
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		exists, err := repo.ProfileExists(profileID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProfileNotFound
		}

		t, err := repo.GetTeamByID(teamID)
		if err != nil {
			return err
		}
		if t == nil || t.Status == StatusDisbanded {
			return ErrTeamNotFound
		}
		if t.Status != StatusRecruiting {
			return ErrTeamNotRecruiting
		}

		membership, err := repo.GetMembershipByProfileID(profileID)
		if err != nil {
			return err
		}
		if membership != nil {
			return ErrAlreadyMember
		}

		pending, err := repo.GetPendingJoinRequest(teamID, profileID)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrAlreadyRequested
		}

		req = &JoinRequest{
			TeamID:    teamID,
			ProfileID: profileID,
			Role:      role,
			Message:   message,
			Status:    RequestPending,
		}
		return repo.CreateJoinRequest(req)
	})
	if err != nil {
		return nil, err
	}

	s.emit(event.New(event.TypeJoinRequest, teamID, profileID, "join request submitted"))
	return req, nil
}

// RespondToRequest lets the leader accept or reject a pending request.
// Acceptance re-validates membership and the role opening, but reads alone
// cannot arbitrate under concurrency: the unique index on memberships stops
// a profile landing on two teams, and the team row update is conditional on
// the updated_at value read at the start, so two accepts racing for the last
// slot cannot both land. Every accept writes the team row, which is what
// invalidates the other transaction's snapshot. A request that lost a
// capacity check stays pending for the leader to reject explicitly.
func (s *TeamService) RespondToRequest(requestID, leaderID uint, accept bool, responseMessage string) (*JoinRequest, error) {
	var req *JoinRequest
	var teamID uint
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		var err error
		req, err = repo.GetJoinRequestByID(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrRequestNotFound
		}
		teamID = req.TeamID

		t, err := repo.GetTeamByID(req.TeamID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTeamNotFound
		}
		if t.LeaderID == nil || *t.LeaderID != leaderID {
			return ErrNotTeamLeader
		}
		if req.Status != RequestPending {
			return ErrRequestAlreadyResolved
		}
		seenAt := t.UpdatedAt

		if !accept {
			ok, err := repo.ResolveJoinRequest(req.ID, RequestRejected, responseMessage)
			if err != nil {
				return err
			}
			if !ok {
				return ErrRequestAlreadyResolved
			}
			req.Status = RequestRejected
			req.ResponseMessage = responseMessage
			return nil
		}

		// Accept path: the requester may have joined another team while this
		// request sat pending.
		membership, err := repo.GetMembershipByProfileID(req.ProfileID)
		if err != nil {
			return err
		}
		if membership != nil {
			return ErrAlreadyMember
		}

		members, err := repo.GetMembers(t.ID)
		if err != nil {
			return err
		}
		if !roleHasOpening(t, members, req.Role) {
			return ErrRoleNoLongerOpen
		}

		ok, err := repo.ResolveJoinRequest(req.ID, RequestAccepted, responseMessage)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRequestAlreadyResolved
		}
		req.Status = RequestAccepted
		req.ResponseMessage = responseMessage

		newMember := TeamMember{
			TeamID:    t.ID,
			ProfileID: req.ProfileID,
			Role:      req.Role,
			JoinedAt:  time.Now(),
		}
		if err := repo.AddMember(&newMember); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return err
		}

		members = append(members, newMember)
		t.Status = DeriveStatus(t, members)
		ok, err = repo.UpdateTeamGuarded(t, seenAt)
		if err != nil {
			return err
		}
		if !ok {
			// The team row moved since we read it. Roll everything back and
			// leave the request pending.
			return ErrRoleNoLongerOpen
		}
		return nil
	})
	if err != nil {
		return req, err
	}

	if accept {
		s.emit(event.New(event.TypeMembershipChanged, teamID, req.ProfileID, "join request accepted"))
	} else {
		s.emit(event.New(event.TypeJoinRequest, teamID, req.ProfileID, "join request rejected"))
	}
	return req, nil
}

// WithdrawRequest lets the requester cancel their own pending request.
func (s *TeamService) WithdrawRequest(profileID, requestID uint) (*JoinRequest, error) {
	var req *JoinRequest
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		var err error
		req, err = repo.GetJoinRequestByID(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrRequestNotFound
		}
		if req.ProfileID != profileID {
			return ErrNotRequestOwner
		}
		if req.Status != RequestPending {
			return ErrRequestAlreadyResolved
		}
		ok, err := repo.ResolveJoinRequest(req.ID, RequestWithdrawn, "")
		if err != nil {
			return err
		}
		if !ok {
			return ErrRequestAlreadyResolved
		}
		req.Status = RequestWithdrawn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(event.New(event.TypeJoinRequest, req.TeamID, profileID, "join request withdrawn"))
	return req, nil
}

// RemoveMember lets the leader remove another member. The freed role slot
// reopens recruiting when the team was full.
func (s *TeamService) RemoveMember(teamID, leaderID, memberProfileID uint) error {
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		t, err := s.loadTeamForLeader(repo, teamID, leaderID)
		if err != nil {
			return err
		}
		if memberProfileID == leaderID {
			return ErrCannotRemoveSelf
		}

		member, err := repo.GetMember(teamID, memberProfileID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrNotMember
		}

		if err := repo.DeleteMember(teamID, memberProfileID); err != nil {
			return err
		}

		members, err := repo.GetMembers(teamID)
		if err != nil {
			return err
		}
		t.Status = DeriveStatus(t, members)
		return repo.UpdateTeam(t)
	})
	if err != nil {
		return err
	}

	s.emit(event.New(event.TypeMembershipChanged, teamID, memberProfileID, "member removed"))
	return nil
}

// --- Leader succession ---

// LeaveTeam removes the caller from their team. When the leader leaves,
// leadership transfers: auto-promotion if exactly one member remains, a
// timed election if two or more remain, disbandment if none. The whole
// transition is one transaction so the team can never end up with a removed
// membership but a stale leader reference.
func (s *TeamService) LeaveTeam(profileID, teamID uint) (*LeaveResult, error) {
	var result *LeaveResult
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		t, err := repo.GetTeamByID(teamID)
		if err != nil {
			return err
		}
		if t == nil || t.Status == StatusDisbanded {
			return ErrTeamNotFound
		}

		member, err := repo.GetMember(teamID, profileID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrNotMember
		}

		isLeader := t.LeaderID != nil && *t.LeaderID == profileID

		if err := repo.DeleteMember(teamID, profileID); err != nil {
			return err
		}
		members, err := repo.GetMembers(teamID)
		if err != nil {
			return err
		}

		if !isLeader {
			if len(members) == 0 {
				// Last member of a leaderless (mid-election) team.
				if err := s.disband(repo, t); err != nil {
					return err
				}
				result = &LeaveResult{Action: ActionTeamDisbanded}
				return nil
			}
			if t.Status == StatusVoting {
				return s.memberLeftDuringVote(repo, t, profileID, members, &result)
			}
			t.Status = DeriveStatus(t, members)
			if err := repo.UpdateTeam(t); err != nil {
				return err
			}
			result = &LeaveResult{Action: ActionMemberLeft}
			return nil
		}

		// Leader departure.
		t.LeaderID = nil

		switch len(members) {
		case 0:
			if err := s.disband(repo, t); err != nil {
				return err
			}
			result = &LeaveResult{Action: ActionTeamDisbanded}
			return nil
		case 1:
			newLeader := members[0].ProfileID
			t.LeaderID = &newLeader
			t.Status = StatusRecruiting
			t.Status = DeriveStatus(t, members)
			if err := repo.UpdateTeam(t); err != nil {
				return err
			}
			result = &LeaveResult{
				Action:       ActionLeadershipTransfer,
				VotingResult: &VotingResult{Action: VotingAutoPromoted, NewLeaderID: &newLeader},
			}
			return nil
		default:
			round, err := s.openElection(repo, t)
			if err != nil {
				return err
			}
			result = &LeaveResult{
				Action: ActionLeadershipTransfer,
				VotingResult: &VotingResult{
					Action:   VotingStarted,
					RoundID:  round.ID,
					ClosesAt: &round.ClosesAt,
				},
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	switch result.Action {
	case ActionTeamDisbanded:
		s.emit(event.New(event.TypeTeamDisbanded, teamID, profileID, "team disbanded"))
	case ActionLeadershipTransfer:
		if result.VotingResult.Action == VotingStarted {
			s.emit(event.New(event.TypeVotingStarted, teamID, profileID, "leader left, voting started"))
		} else {
			s.emit(event.New(event.TypeMembershipChanged, teamID, profileID, "leader left, successor auto-promoted"))
		}
	default:
		s.emit(event.New(event.TypeMembershipChanged, teamID, profileID, "member left"))
	}
	return result, nil
}

// memberLeftDuringVote adjusts an active election after a non-leader member
// departs: their own vote and any votes cast for them are removed. If that
// leaves a single candidate, the election short-circuits to promotion.
func (s *TeamService) memberLeftDuringVote(repo TeamRepository, t *Team, profileID uint, members []TeamMember, result **LeaveResult) error {
	round, err := repo.GetActiveRound(t.ID)
	if err != nil {
		return err
	}
	if round != nil {
		if err := repo.DeleteVotesInvolving(round.ID, profileID); err != nil {
			return err
		}
		if len(members) == 1 {
			winner := members[0].ProfileID
			ok, err := repo.ResolveRound(round.ID, RoundCompleted, &winner)
			if err != nil {
				return err
			}
			if ok {
				t.LeaderID = &winner
				t.Status = StatusRecruiting
				t.VotingOpenedAt = nil
				t.VotingClosesAt = nil
				t.Status = DeriveStatus(t, members)
				if err := repo.UpdateTeam(t); err != nil {
					return err
				}
			}
		}
	}
	*result = &LeaveResult{Action: ActionMemberLeft}
	return nil
}

// openElection opens a timed voting round for a leaderless team. Callers
// have already established that two or more candidates remain.
func (s *TeamService) openElection(repo TeamRepository, t *Team) (*VotingRound, error) {
	latest, err := repo.GetLatestRound(t.ID)
	if err != nil {
		return nil, err
	}
	number := 1
	if latest != nil {
		number = latest.Round + 1
	}

	now := time.Now()
	closes := now.Add(s.votingWindow)
	round := VotingRound{
		TeamID:   t.ID,
		Round:    number,
		OpenedAt: now,
		ClosesAt: closes,
		Status:   RoundActive,
	}
	if err := repo.CreateVotingRound(&round); err != nil {
		return nil, err
	}

	t.Status = StatusVoting
	t.VotingOpenedAt = &now
	t.VotingClosesAt = &closes
	if err := repo.UpdateTeam(t); err != nil {
		return nil, err
	}
	return &round, nil
}

// disband is the terminal transition: no members, no leader, no open
// requests, no active round.
func (s *TeamService) disband(repo TeamRepository, t *Team) error {
	if round, err := repo.GetActiveRound(t.ID); err != nil {
		return err
	} else if round != nil {
		if _, err := repo.ResolveRound(round.ID, RoundFailed, nil); err != nil {
			return err
		}
	}
	if err := repo.RejectPendingRequestsForTeam(t.ID, "team disbanded"); err != nil {
		return err
	}
	t.LeaderID = nil
	t.Status = StatusDisbanded
	t.VotingOpenedAt = nil
	t.VotingClosesAt = nil
	return repo.UpdateTeam(t)
}

// --- Leader election ---

// CastVote records or replaces the voter's choice in the team's active
// election. Re-casting before the window closes is a legitimate re-vote.
func (s *TeamService) CastVote(voterID, teamID, candidateID uint) error {
	var roundID uint
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		t, err := repo.GetTeamByID(teamID)
		if err != nil {
			return err
		}
		if t == nil || t.Status == StatusDisbanded {
			return ErrTeamNotFound
		}

		round, err := repo.GetActiveRound(teamID)
		if err != nil {
			return err
		}
		if round == nil || time.Now().After(round.ClosesAt) {
			return ErrNoActiveElection
		}
		roundID = round.ID

		voter, err := repo.GetMember(teamID, voterID)
		if err != nil {
			return err
		}
		if voter == nil {
			return ErrVoterNotEligible
		}
		candidate, err := repo.GetMember(teamID, candidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return ErrCandidateNotEligible
		}
		if voterID == candidateID {
			return ErrSelfVote
		}

		return repo.UpsertVote(&Vote{
			RoundID:     round.ID,
			VoterID:     voterID,
			CandidateID: candidateID,
		})
	})
	if err != nil {
		return err
	}

	e := event.New(event.TypeVoteCast, teamID, voterID, "vote cast")
	e.RoundID = roundID
	s.emit(e)
	return nil
}

// Tally counts votes per candidate, sorted by count descending with ties
// ordered by candidate id ascending. Percentages are of votes cast, not of
// eligible voters.
func Tally(votes []Vote) []TallyEntry {
	counts := make(map[uint]int)
	for _, v := range votes {
		counts[v.CandidateID]++
	}

	entries := make([]TallyEntry, 0, len(counts))
	total := len(votes)
	for candidate, count := range counts {
		entry := TallyEntry{CandidateID: candidate, Count: count}
		if total > 0 {
			entry.Percent = float64(count) / float64(total) * 100
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].CandidateID < entries[j].CandidateID
	})
	return entries
}

// GetVotingState returns the active round with its live tally.
func (s *TeamService) GetVotingState(teamID uint) (*VotingState, error) {
	round, err := s.repo.GetActiveRound(teamID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrNoActiveElection
	}
	votes, err := s.repo.GetVotesByRound(round.ID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.GetMembers(teamID)
	if err != nil {
		return nil, err
	}
	return &VotingState{
		Round:      *round,
		Tally:      Tally(votes),
		TotalVotes: len(votes),
		Eligible:   len(members),
	}, nil
}

// CloseElection resolves the team's latest voting round. It is safe to call
// repeatedly and concurrently: resolution is a conditional update on the
// active round, so the first caller wins and everyone else observes the
// settled outcome. Before the deadline it only closes on full consensus
// (every remaining member has voted); at or after the deadline, zero votes
// fail the round and disband the team, otherwise the plurality candidate
// wins with ties broken deterministically by lowest candidate id.
func (s *TeamService) CloseElection(teamID uint) (*CloseResult, error) {
	var result *CloseResult
	err := s.repo.WithTransaction(func(repo TeamRepository) error {
		t, err := repo.GetTeamByID(teamID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTeamNotFound
		}

		round, err := repo.GetLatestRound(teamID)
		if err != nil {
			return err
		}
		if round == nil {
			return ErrNoActiveElection
		}
		if round.Status != RoundActive {
			result = &CloseResult{RoundID: round.ID, Status: round.Status, WinnerID: round.WinnerID}
			return nil
		}

		members, err := repo.GetMembers(teamID)
		if err != nil {
			return err
		}
		votes, err := repo.GetVotesByRound(round.ID)
		if err != nil {
			return err
		}

		if time.Now().Before(round.ClosesAt) && len(votes) < len(members) {
			return ErrElectionStillOpen
		}

		if len(votes) == 0 {
			ok, err := repo.ResolveRound(round.ID, RoundFailed, nil)
			if err != nil {
				return err
			}
			if !ok {
				return s.settledResult(repo, round.ID, &result)
			}
			if err := s.disband(repo, t); err != nil {
				return err
			}
			result = &CloseResult{RoundID: round.ID, Status: RoundFailed}
			return nil
		}

		winner := Tally(votes)[0].CandidateID
		ok, err := repo.ResolveRound(round.ID, RoundCompleted, &winner)
		if err != nil {
			return err
		}
		if !ok {
			return s.settledResult(repo, round.ID, &result)
		}

		t.LeaderID = &winner
		t.Status = StatusRecruiting
		t.VotingOpenedAt = nil
		t.VotingClosesAt = nil
		t.Status = DeriveStatus(t, members)
		if err := repo.UpdateTeam(t); err != nil {
			return err
		}
		result = &CloseResult{RoundID: round.ID, Status: RoundCompleted, WinnerID: &winner}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e := event.New(event.TypeVotingResolved, teamID, 0, "election "+result.Status)
	e.RoundID = result.RoundID
	s.emit(e)
	return result, nil
}

// settledResult reloads a round another caller resolved first and reports
// its terminal outcome instead of an error.
func (s *TeamService) settledResult(repo TeamRepository, roundID uint, result **CloseResult) error {
	settled, err := repo.GetRoundByID(roundID)
	if err != nil {
		return err
	}
	if settled == nil {
		return ErrNoActiveElection
	}
	*result = &CloseResult{RoundID: settled.ID, Status: settled.Status, WinnerID: settled.WinnerID}
	return nil
}

// loadTeamForLeader fetches a live team and checks the caller leads it.
func (s *TeamService) loadTeamForLeader(repo TeamRepository, teamID, leaderID uint) (*Team, error) {
	t, err := repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Status == StatusDisbanded {
		return nil, ErrTeamNotFound
	}
	if t.LeaderID == nil || *t.LeaderID != leaderID {
		return nil, ErrNotTeamLeader
	}
	return t, nil
}
