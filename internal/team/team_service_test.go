package team

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hackmatehq/hackmate/internal/profile"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&profile.Profile{},
		&Team{}, &TeamMember{}, &JoinRequest{}, &VotingRound{}, &Vote{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	p := profile.Profile{
		DisplayName: name,
		Email:       name + "@example.com",
		Status:      profile.StatusAvailable,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create test profile %q: %v", name, err)
	}
	return p.ID
}

func newTestService(t *testing.T, db *gorm.DB) (*TeamService, TeamRepository) {
	t.Helper()
	repo := NewTeamRepository(db)
	return NewTeamService(repo, nil, 5*time.Minute), repo
}

// createTestTeam creates a team led by leaderID plus extra members, one per
// role in memberRoles, returning the team and the member profile ids.
func createTestTeam(t *testing.T, db *gorm.DB, service *TeamService, leaderID uint, memberRoles ...string) (*Team, []uint) {
	t.Helper()

	// One backend slot for the leader plus a spare so the team is still
	// recruiting once everyone named in memberRoles has joined.
	roles := append([]string{}, memberRoles...)
	created, err := service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            fmt.Sprintf("team-%d", leaderID),
		LeaderRole:      "backend",
		LookingForRoles: append(roles, "backend", "backend"),
		MaxMembers:      8,
	})
	if err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}

	memberIDs := make([]uint, 0, len(memberRoles))
	for i, role := range memberRoles {
		id := createTestProfile(t, db, fmt.Sprintf("member-%d-%d", leaderID, i))
		req, err := service.SubmitJoinRequest(id, created.ID, role, "")
		if err != nil {
			t.Fatalf("Failed to submit join request: %v", err)
		}
		if _, err := service.RespondToRequest(req.ID, leaderID, true, ""); err != nil {
			t.Fatalf("Failed to accept join request: %v", err)
		}
		memberIDs = append(memberIDs, id)
	}
	return created, memberIDs
}

func reloadTeam(t *testing.T, repo TeamRepository, teamID uint) *Team {
	t.Helper()
	reloaded, err := repo.GetTeamByID(teamID)
	if err != nil {
		t.Fatalf("Failed to reload team: %v", err)
	}
	if reloaded == nil {
		t.Fatal("Team disappeared")
	}
	return reloaded
}

func TestCreateTeam(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")

	created, err := service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            "night-owls",
		LeaderRole:      "backend",
		LookingForRoles: []string{"frontend", "design"},
		TechStack:       []string{"go", "react"},
	})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}
	if created.Status != StatusRecruiting {
		t.Errorf("expected status recruiting, got %q", created.Status)
	}
	if created.LeaderID == nil || *created.LeaderID != leaderID {
		t.Error("leader not set on created team")
	}

	members, err := repo.GetMembers(created.ID)
	if err != nil {
		t.Fatalf("GetMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].ProfileID != leaderID {
		t.Errorf("expected the leader as sole member, got %v", members)
	}

	// Names are unique.
	otherID := createTestProfile(t, db, "bob")
	_, err = service.CreateTeam(otherID, CreateTeamRequest{
		Name:            "night-owls",
		LeaderRole:      "frontend",
		LookingForRoles: []string{"backend"},
	})
	if !errors.Is(err, ErrDuplicateTeamName) {
		t.Errorf("expected ErrDuplicateTeamName, got %v", err)
	}

	// One team per profile.
	_, err = service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            "second-team",
		LeaderRole:      "backend",
		LookingForRoles: []string{"frontend"},
	})
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestJoinRequestLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID)

	joinerID := createTestProfile(t, db, "bob")

	req, err := service.SubmitJoinRequest(joinerID, team.ID, "backend", "let me in")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	if req.Status != RequestPending {
		t.Errorf("expected pending, got %q", req.Status)
	}

	// Only one pending request per team.
	if _, err := service.SubmitJoinRequest(joinerID, team.ID, "backend", ""); !errors.Is(err, ErrAlreadyRequested) {
		t.Errorf("expected ErrAlreadyRequested, got %v", err)
	}

	// Withdrawal frees the slot for a new request.
	withdrawn, err := service.WithdrawRequest(joinerID, req.ID)
	if err != nil {
		t.Fatalf("WithdrawRequest failed: %v", err)
	}
	if withdrawn.Status != RequestWithdrawn {
		t.Errorf("expected withdrawn, got %q", withdrawn.Status)
	}
	if _, err := service.WithdrawRequest(joinerID, req.ID); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Errorf("expected ErrRequestAlreadyResolved on double withdraw, got %v", err)
	}

	req2, err := service.SubmitJoinRequest(joinerID, team.ID, "backend", "second try")
	if err != nil {
		t.Fatalf("resubmission after withdrawal failed: %v", err)
	}

	// Only the owner may withdraw.
	strangerID := createTestProfile(t, db, "mallory")
	if _, err := service.WithdrawRequest(strangerID, req2.ID); !errors.Is(err, ErrNotRequestOwner) {
		t.Errorf("expected ErrNotRequestOwner, got %v", err)
	}

	// Only the leader may respond.
	if _, err := service.RespondToRequest(req2.ID, strangerID, true, ""); !errors.Is(err, ErrNotTeamLeader) {
		t.Errorf("expected ErrNotTeamLeader, got %v", err)
	}

	accepted, err := service.RespondToRequest(req2.ID, leaderID, true, "welcome")
	if err != nil {
		t.Fatalf("RespondToRequest failed: %v", err)
	}
	if accepted.Status != RequestAccepted {
		t.Errorf("expected accepted, got %q", accepted.Status)
	}
	member, err := repo.GetMember(team.ID, joinerID)
	if err != nil || member == nil {
		t.Fatalf("expected membership after acceptance, got member=%v err=%v", member, err)
	}

	// Members cannot file requests anywhere.
	other, _ := createTestTeam(t, db, service, createTestProfile(t, db, "carol"))
	if _, err := service.SubmitJoinRequest(joinerID, other.ID, "backend", ""); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestRespondToRequestIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID)

	joinerID := createTestProfile(t, db, "bob")
	req, err := service.SubmitJoinRequest(joinerID, team.ID, "backend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}

	if _, err := service.RespondToRequest(req.ID, leaderID, false, "no room"); err != nil {
		t.Fatalf("first reject failed: %v", err)
	}
	if _, err := service.RespondToRequest(req.ID, leaderID, false, ""); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Errorf("expected ErrRequestAlreadyResolved on second reject, got %v", err)
	}
	if _, err := service.RespondToRequest(req.ID, leaderID, true, ""); !errors.Is(err, ErrRequestAlreadyResolved) {
		t.Errorf("expected ErrRequestAlreadyResolved on accept after reject, got %v", err)
	}
}

func TestAcceptRaceLoserStaysPending(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")

	// One frontend slot, two contenders.
	team, err := service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            "one-slot",
		LeaderRole:      "backend",
		LookingForRoles: []string{"frontend"},
		MaxMembers:      6,
	})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}

	firstID := createTestProfile(t, db, "bob")
	secondID := createTestProfile(t, db, "carol")
	firstReq, err := service.SubmitJoinRequest(firstID, team.ID, "frontend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	secondReq, err := service.SubmitJoinRequest(secondID, team.ID, "frontend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}

	if _, err := service.RespondToRequest(firstReq.ID, leaderID, true, ""); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if reloadTeam(t, repo, team.ID).Status != StatusFull {
		t.Error("expected team full after the slot filled")
	}

	// The second accept loses the slot but the request is not consumed.
	if _, err := service.RespondToRequest(secondReq.ID, leaderID, true, ""); !errors.Is(err, ErrRoleNoLongerOpen) {
		t.Fatalf("expected ErrRoleNoLongerOpen, got %v", err)
	}
	stored, err := repo.GetJoinRequestByID(secondReq.ID)
	if err != nil {
		t.Fatalf("GetJoinRequestByID failed: %v", err)
	}
	if stored.Status != RequestPending {
		t.Errorf("losing request should stay pending, got %q", stored.Status)
	}

	// The leader can still reject it explicitly.
	rejected, err := service.RespondToRequest(secondReq.ID, leaderID, false, "slot filled")
	if err != nil {
		t.Fatalf("explicit reject failed: %v", err)
	}
	if rejected.Status != RequestRejected {
		t.Errorf("expected rejected, got %q", rejected.Status)
	}
}

func TestSubmitJoinRequestValidation(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID)

	joinerID := createTestProfile(t, db, "bob")

	if _, err := service.SubmitJoinRequest(joinerID, 9999, "backend", ""); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
	if _, err := service.SubmitJoinRequest(9999, team.ID, "backend", ""); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}

	if _, err := service.CloseRecruiting(team.ID, leaderID); err != nil {
		t.Fatalf("CloseRecruiting failed: %v", err)
	}
	if _, err := service.SubmitJoinRequest(joinerID, team.ID, "backend", ""); !errors.Is(err, ErrTeamNotRecruiting) {
		t.Errorf("expected ErrTeamNotRecruiting on closed team, got %v", err)
	}

	reopened, err := service.ReopenRecruiting(team.ID, leaderID)
	if err != nil {
		t.Fatalf("ReopenRecruiting failed: %v", err)
	}
	if reopened.Status != StatusRecruiting {
		t.Errorf("expected recruiting after reopen, got %q", reopened.Status)
	}
	if _, err := service.ReopenRecruiting(team.ID, leaderID); !errors.Is(err, ErrTeamNotClosed) {
		t.Errorf("expected ErrTeamNotClosed, got %v", err)
	}
}

func TestRemoveMemberReopensRecruiting(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")

	team, err := service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            "tight-crew",
		LeaderRole:      "backend",
		LookingForRoles: []string{"frontend"},
		MaxMembers:      2,
	})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}

	memberID := createTestProfile(t, db, "bob")
	req, err := service.SubmitJoinRequest(memberID, team.ID, "frontend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	if _, err := service.RespondToRequest(req.ID, leaderID, true, ""); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if reloadTeam(t, repo, team.ID).Status != StatusFull {
		t.Fatal("team should be full")
	}

	if err := service.RemoveMember(team.ID, leaderID, leaderID); !errors.Is(err, ErrCannotRemoveSelf) {
		t.Errorf("expected ErrCannotRemoveSelf, got %v", err)
	}
	if err := service.RemoveMember(team.ID, memberID, leaderID); !errors.Is(err, ErrNotTeamLeader) {
		t.Errorf("expected ErrNotTeamLeader, got %v", err)
	}

	if err := service.RemoveMember(team.ID, leaderID, memberID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if got := reloadTeam(t, repo, team.ID).Status; got != StatusRecruiting {
		t.Errorf("expected recruiting after removal, got %q", got)
	}
	if err := service.RemoveMember(team.ID, leaderID, memberID); !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember on double removal, got %v", err)
	}
}

func TestLeaderLeavesSoloTeamDisbands(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID)

	// A pending request should get swept up in the disbandment.
	joinerID := createTestProfile(t, db, "bob")
	req, err := service.SubmitJoinRequest(joinerID, team.ID, "backend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}

	result, err := service.LeaveTeam(leaderID, team.ID)
	if err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	if result.Action != ActionTeamDisbanded {
		t.Errorf("expected team_disbanded, got %q", result.Action)
	}

	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.Status != StatusDisbanded {
		t.Errorf("expected disbanded, got %q", reloaded.Status)
	}
	if reloaded.LeaderID != nil {
		t.Error("disbanded team should have no leader")
	}

	stored, err := repo.GetJoinRequestByID(req.ID)
	if err != nil {
		t.Fatalf("GetJoinRequestByID failed: %v", err)
	}
	if stored.Status != RequestRejected {
		t.Errorf("pending request should be rejected at disbandment, got %q", stored.Status)
	}
}

func TestLeaderLeavesAutoPromotesSoleSurvivor(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, memberIDs := createTestTeam(t, db, service, leaderID, "frontend")

	result, err := service.LeaveTeam(leaderID, team.ID)
	if err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	if result.Action != ActionLeadershipTransfer {
		t.Fatalf("expected leadership_transfer, got %q", result.Action)
	}
	if result.VotingResult == nil || result.VotingResult.Action != VotingAutoPromoted {
		t.Fatalf("expected auto_promoted, got %+v", result.VotingResult)
	}
	if *result.VotingResult.NewLeaderID != memberIDs[0] {
		t.Errorf("expected %d promoted, got %d", memberIDs[0], *result.VotingResult.NewLeaderID)
	}

	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.LeaderID == nil || *reloaded.LeaderID != memberIDs[0] {
		t.Error("promotion not persisted")
	}
	if reloaded.Status != StatusRecruiting {
		t.Errorf("expected recruiting after promotion, got %q", reloaded.Status)
	}
}

func TestLeaderLeavesStartsElection(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID, "frontend", "design")

	result, err := service.LeaveTeam(leaderID, team.ID)
	if err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	if result.Action != ActionLeadershipTransfer || result.VotingResult.Action != VotingStarted {
		t.Fatalf("expected voting_started, got %+v", result)
	}

	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.Status != StatusVoting {
		t.Errorf("expected voting, got %q", reloaded.Status)
	}
	if reloaded.LeaderID != nil {
		t.Error("team should be leaderless during the election")
	}

	round, err := repo.GetActiveRound(team.ID)
	if err != nil || round == nil {
		t.Fatalf("expected an active round, got round=%v err=%v", round, err)
	}
	window := round.ClosesAt.Sub(round.OpenedAt)
	if window < 4*time.Minute || window > 6*time.Minute {
		t.Errorf("expected a five minute window, got %v", window)
	}
}

func TestCastVoteRules(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, memberIDs := createTestTeam(t, db, service, leaderID, "frontend", "design")

	// No election yet.
	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[1]); !errors.Is(err, ErrNoActiveElection) {
		t.Errorf("expected ErrNoActiveElection, got %v", err)
	}

	if _, err := service.LeaveTeam(leaderID, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}

	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[0]); !errors.Is(err, ErrSelfVote) {
		t.Errorf("expected ErrSelfVote, got %v", err)
	}
	if err := service.CastVote(leaderID, team.ID, memberIDs[0]); !errors.Is(err, ErrVoterNotEligible) {
		t.Errorf("the departed leader cannot vote, got %v", err)
	}
	if err := service.CastVote(memberIDs[0], team.ID, leaderID); !errors.Is(err, ErrCandidateNotEligible) {
		t.Errorf("the departed leader cannot be voted for, got %v", err)
	}

	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[1]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	// Re-voting replaces the earlier ballot.
	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[1]); err != nil {
		t.Fatalf("re-vote failed: %v", err)
	}
	state, err := service.GetVotingState(team.ID)
	if err != nil {
		t.Fatalf("GetVotingState failed: %v", err)
	}
	if state.TotalVotes != 1 {
		t.Errorf("expected one ballot after re-vote, got %d", state.TotalVotes)
	}
	if state.Eligible != 2 {
		t.Errorf("expected two eligible voters, got %d", state.Eligible)
	}
	if len(state.Tally) != 1 || state.Tally[0].CandidateID != memberIDs[1] {
		t.Errorf("unexpected tally: %+v", state.Tally)
	}
}

func TestCloseElectionEarlyNeedsConsensus(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, memberIDs := createTestTeam(t, db, service, leaderID, "frontend", "design")

	if _, err := service.LeaveTeam(leaderID, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}

	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[1]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := service.CloseElection(team.ID); !errors.Is(err, ErrElectionStillOpen) {
		t.Errorf("expected ErrElectionStillOpen with a ballot outstanding, got %v", err)
	}

	if err := service.CastVote(memberIDs[1], team.ID, memberIDs[0]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	// 1-1 tie: the lower candidate id wins deterministically.
	result, err := service.CloseElection(team.ID)
	if err != nil {
		t.Fatalf("CloseElection failed: %v", err)
	}
	if result.Status != RoundCompleted {
		t.Fatalf("expected completed, got %q", result.Status)
	}
	expected := memberIDs[0]
	if memberIDs[1] < expected {
		expected = memberIDs[1]
	}
	if result.WinnerID == nil || *result.WinnerID != expected {
		t.Errorf("expected winner %d, got %v", expected, result.WinnerID)
	}

	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.LeaderID == nil || *reloaded.LeaderID != expected {
		t.Error("winner not installed as leader")
	}
	if reloaded.Status == StatusVoting {
		t.Error("team should have left voting status")
	}
	if reloaded.VotingOpenedAt != nil || reloaded.VotingClosesAt != nil {
		t.Error("voting timestamps should be cleared")
	}

	// Closing again reports the same outcome instead of failing.
	again, err := service.CloseElection(team.ID)
	if err != nil {
		t.Fatalf("second CloseElection failed: %v", err)
	}
	if again.RoundID != result.RoundID || *again.WinnerID != *result.WinnerID {
		t.Errorf("expected identical outcome, got %+v then %+v", result, again)
	}
}

func expireActiveRound(t *testing.T, db *gorm.DB, teamID uint) {
	t.Helper()
	err := db.Model(&VotingRound{}).
		Where("team_id = ? AND status = ?", teamID, RoundActive).
		Update("closes_at", time.Now().Add(-time.Minute)).Error
	if err != nil {
		t.Fatalf("Failed to expire round: %v", err)
	}
}

func TestCloseElectionAfterDeadline(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, memberIDs := createTestTeam(t, db, service, leaderID, "frontend", "design", "mobile")

	if _, err := service.LeaveTeam(leaderID, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[2]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	expireActiveRound(t, db, team.ID)

	// After the deadline a partial turnout still resolves.
	result, err := service.CloseElection(team.ID)
	if err != nil {
		t.Fatalf("CloseElection failed: %v", err)
	}
	if result.Status != RoundCompleted || result.WinnerID == nil || *result.WinnerID != memberIDs[2] {
		t.Errorf("expected candidate %d to win, got %+v", memberIDs[2], result)
	}
	if got := reloadTeam(t, repo, team.ID).LeaderID; got == nil || *got != memberIDs[2] {
		t.Error("winner not installed as leader")
	}
}

func TestCloseElectionTimeoutWithoutVotesDisbands(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID, "frontend", "design")

	if _, err := service.LeaveTeam(leaderID, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	expireActiveRound(t, db, team.ID)

	result, err := service.CloseElection(team.ID)
	if err != nil {
		t.Fatalf("CloseElection failed: %v", err)
	}
	if result.Status != RoundFailed {
		t.Errorf("expected failed, got %q", result.Status)
	}
	if result.WinnerID != nil {
		t.Error("failed round has no winner")
	}

	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.Status != StatusDisbanded {
		t.Errorf("expected disbanded, got %q", reloaded.Status)
	}

	// Idempotent after failure too.
	again, err := service.CloseElection(team.ID)
	if err != nil {
		t.Fatalf("second CloseElection failed: %v", err)
	}
	if again.Status != RoundFailed || again.RoundID != result.RoundID {
		t.Errorf("expected the same failed outcome, got %+v", again)
	}
}

func TestVoterLeavingMidElection(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, memberIDs := createTestTeam(t, db, service, leaderID, "frontend", "design", "mobile")

	if _, err := service.LeaveTeam(leaderID, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	round, err := repo.GetActiveRound(team.ID)
	if err != nil || round == nil {
		t.Fatalf("expected an active round, got %v err=%v", round, err)
	}

	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[1]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if err := service.CastVote(memberIDs[2], team.ID, memberIDs[1]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	// memberIDs[0] leaves: their own ballot vanishes, the unrelated one stays.
	result, err := service.LeaveTeam(memberIDs[0], team.ID)
	if err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	if result.Action != ActionMemberLeft {
		t.Errorf("expected member_left, got %q", result.Action)
	}

	votes, err := repo.GetVotesByRound(round.ID)
	if err != nil {
		t.Fatalf("GetVotesByRound failed: %v", err)
	}
	if len(votes) != 1 || votes[0].CandidateID != memberIDs[1] {
		t.Errorf("expected only the surviving ballot, got %+v", votes)
	}

	// Two candidates remain so the election stays open.
	if got := reloadTeam(t, repo, team.ID).Status; got != StatusVoting {
		t.Errorf("expected voting, got %q", got)
	}

	// A second departure leaves one candidate, who is promoted outright.
	if _, err := service.LeaveTeam(memberIDs[1], team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.LeaderID == nil || *reloaded.LeaderID != memberIDs[2] {
		t.Errorf("expected %d promoted as the last candidate, got %v", memberIDs[2], reloaded.LeaderID)
	}
	if reloaded.Status == StatusVoting {
		t.Error("election should have resolved")
	}
	settled, err := repo.GetRoundByID(round.ID)
	if err != nil {
		t.Fatalf("GetRoundByID failed: %v", err)
	}
	if settled.Status != RoundCompleted || settled.WinnerID == nil || *settled.WinnerID != memberIDs[2] {
		t.Errorf("round should record the promotion, got %+v", settled)
	}
}

func TestLeadershipTransfersInSequence(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, memberIDs := createTestTeam(t, db, service, leaderID, "frontend", "design")

	if _, err := service.LeaveTeam(leaderID, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	first, err := repo.GetActiveRound(team.ID)
	if err != nil || first == nil {
		t.Fatalf("expected active round, got %v err=%v", first, err)
	}
	if first.Round != 1 {
		t.Errorf("expected round 1, got %d", first.Round)
	}

	// Resolve round 1 by consensus, then have the new leader leave too.
	if err := service.CastVote(memberIDs[0], team.ID, memberIDs[1]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if err := service.CastVote(memberIDs[1], team.ID, memberIDs[0]); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	result, err := service.CloseElection(team.ID)
	if err != nil {
		t.Fatalf("CloseElection failed: %v", err)
	}
	newLeader := *result.WinnerID

	if _, err := service.LeaveTeam(newLeader, team.ID); err != nil {
		t.Fatalf("LeaveTeam failed: %v", err)
	}
	// Only one member remains, so this is an auto-promotion, not a round.
	reloaded := reloadTeam(t, repo, team.ID)
	if reloaded.LeaderID == nil || *reloaded.LeaderID == newLeader {
		t.Errorf("expected the remaining member promoted, got %v", reloaded.LeaderID)
	}
}

func TestGetVotingStateWithoutElection(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID)

	if _, err := service.GetVotingState(team.ID); !errors.Is(err, ErrNoActiveElection) {
		t.Errorf("expected ErrNoActiveElection, got %v", err)
	}
	if _, err := service.CloseElection(team.ID); !errors.Is(err, ErrNoActiveElection) {
		t.Errorf("expected ErrNoActiveElection when no round ever ran, got %v", err)
	}
}

func TestUpdateTeamRederivesStatus(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")

	team, err := service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            "shapeshifters",
		LeaderRole:      "backend",
		LookingForRoles: []string{"backend"},
		MaxMembers:      6,
	})
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}
	// The leader covers the only wanted role, so the team starts full.
	if team.Status != StatusFull {
		t.Fatalf("expected full, got %q", team.Status)
	}

	updated, err := service.UpdateTeam(team.ID, leaderID, UpdateTeamRequest{
		LookingForRoles: []string{"backend", "frontend"},
	})
	if err != nil {
		t.Fatalf("UpdateTeam failed: %v", err)
	}
	if updated.Status != StatusRecruiting {
		t.Errorf("expected recruiting after widening the roles, got %q", updated.Status)
	}
	if got := reloadTeam(t, repo, team.ID).Status; got != StatusRecruiting {
		t.Errorf("expected persisted recruiting, got %q", got)
	}

	if _, err := service.UpdateTeam(team.ID, leaderID, UpdateTeamRequest{
		LookingForRoles: []string{"backend"},
	}); err != nil {
		t.Fatalf("UpdateTeam failed: %v", err)
	}
	if got := reloadTeam(t, repo, team.ID).Status; got != StatusFull {
		t.Errorf("expected full after narrowing the roles, got %q", got)
	}
}

func TestMembershipUniqueAcrossTeams(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)

	teamA, _ := createTestTeam(t, db, service, createTestProfile(t, db, "alice"))
	teamB, _ := createTestTeam(t, db, service, createTestProfile(t, db, "bob"))
	leaderA := *teamA.LeaderID

	joiner := createTestProfile(t, db, "carol")
	reqA, err := service.SubmitJoinRequest(joiner, teamA.ID, "backend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}
	reqB, err := service.SubmitJoinRequest(joiner, teamB.ID, "backend", "")
	if err != nil {
		t.Fatalf("SubmitJoinRequest failed: %v", err)
	}

	if _, err := service.RespondToRequest(reqA.ID, leaderA, true, ""); err != nil {
		t.Fatalf("RespondToRequest failed: %v", err)
	}

	// Accepting the second request must fail now that carol is placed.
	if _, err := service.RespondToRequest(reqB.ID, *teamB.LeaderID, true, ""); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}

	// The schema backstop: even a write that skips the service checks cannot
	// give carol a second membership.
	err = repo.AddMember(&TeamMember{TeamID: teamB.ID, ProfileID: joiner, Role: "backend", JoinedAt: time.Now()})
	if err == nil {
		t.Fatal("expected the unique index to reject a second membership")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected a duplicated key error, got %v", err)
	}

	members, err := repo.GetMembers(teamB.ID)
	if err != nil {
		t.Fatalf("GetMembers failed: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("expected team B to keep only its leader, got %d members", len(members))
	}
}

func TestUpdateTeamGuarded(t *testing.T) {
	db := setupTestDB(t)
	service, repo := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")
	team, _ := createTestTeam(t, db, service, leaderID)

	fresh := reloadTeam(t, repo, team.ID)
	seenAt := fresh.UpdatedAt

	fresh.Status = StatusClosed
	ok, err := repo.UpdateTeamGuarded(fresh, seenAt)
	if err != nil {
		t.Fatalf("UpdateTeamGuarded failed: %v", err)
	}
	if !ok {
		t.Fatal("expected the guarded update to land on an untouched row")
	}
	if got := reloadTeam(t, repo, team.ID).Status; got != StatusClosed {
		t.Fatalf("expected persisted closed, got %q", got)
	}

	// The first write bumped updated_at, so the same snapshot is stale now.
	fresh.Status = StatusRecruiting
	ok, err = repo.UpdateTeamGuarded(fresh, seenAt)
	if err != nil {
		t.Fatalf("UpdateTeamGuarded failed: %v", err)
	}
	if ok {
		t.Fatal("expected the guarded update to miss a stale snapshot")
	}
	if got := reloadTeam(t, repo, team.ID).Status; got != StatusClosed {
		t.Errorf("expected status to stay closed, got %q", got)
	}
}

func TestMemberBoundsValidation(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newTestService(t, db)
	leaderID := createTestProfile(t, db, "alice")

	_, err := service.CreateTeam(leaderID, CreateTeamRequest{
		Name:            "bounds",
		LeaderRole:      "backend",
		LookingForRoles: []string{"frontend"},
		MinMembers:      6,
		MaxMembers:      2,
	})
	if !errors.Is(err, ErrInvalidMemberBounds) {
		t.Fatalf("expected ErrInvalidMemberBounds, got %v", err)
	}
	if got := HTTPStatus(ErrInvalidMemberBounds); got != http.StatusBadRequest {
		t.Errorf("expected 400 for member bounds, got %d", got)
	}

	team, _ := createTestTeam(t, db, service, leaderID)
	tooMany := 20
	if _, err := service.UpdateTeam(team.ID, leaderID, UpdateTeamRequest{
		MinMembers: &tooMany,
	}); !errors.Is(err, ErrInvalidMemberBounds) {
		t.Errorf("expected ErrInvalidMemberBounds on update, got %v", err)
	}
}
