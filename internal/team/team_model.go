// team/model.go
package team

import (
	"time"

	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/internal/models"
)

// Team statuses. recruiting/full are derived from membership; closed is a
// manual leader decision; voting means a leader election is in progress;
// disbanded is terminal.
const (
	StatusRecruiting = "recruiting"
	StatusFull       = "full"
	StatusClosed     = "closed"
	StatusVoting     = "voting"
	StatusDisbanded  = "disbanded"
)

// Join request statuses. pending is the only non-terminal state.
const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestWithdrawn = "withdrawn"
)

// Voting round statuses.
const (
	RoundActive    = "active"
	RoundCompleted = "completed"
	RoundFailed    = "failed"
)

// Actions reported by LeaveTeam.
const (
	ActionMemberLeft         = "member_left"
	ActionTeamDisbanded      = "team_disbanded"
	ActionLeadershipTransfer = "leadership_transfer"
)

// Sub-actions reported inside a leadership transfer.
const (
	VotingAutoPromoted = "auto_promoted"
	VotingStarted      = "voting_started"
)

// Team is a hackathon team. LeaderID is null only while an election is in
// progress or after the team disbanded.
type Team struct {
	gorm.Model
	Name            string             `gorm:"uniqueIndex;not null" json:"name"`
	Description     string             `json:"description"`
	Status          string             `gorm:"default:'recruiting';index" json:"status"`
	LeaderID        *uint              `gorm:"index" json:"leader_id"`
	LookingForRoles models.StringSlice `gorm:"type:json" json:"looking_for_roles"`
	TechStack       models.StringSlice `gorm:"type:json" json:"tech_stack"`
	MinMembers      int                `gorm:"default:2" json:"min_members"`
	MaxMembers      int                `gorm:"default:6" json:"max_members"`
	VotingOpenedAt  *time.Time         `json:"voting_opened_at,omitempty"`
	VotingClosesAt  *time.Time         `json:"voting_closes_at,omitempty"`
}

// TeamMember links a profile to its team. A profile holds at most one
// membership at a time; the unique index on profile_id enforces that at the
// schema level, so concurrent inserts cannot slip past the validation reads.
// Membership rows are hard-deleted on leave/removal, which keeps the index
// honest.
type TeamMember struct {
	gorm.Model
	TeamID    uint      `gorm:"index" json:"team_id"`
	ProfileID uint      `gorm:"uniqueIndex:idx_team_members_profile" json:"profile_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// JoinRequest is a profile asking to fill a role on a team. At most one
// pending request per (profile, team); terminal requests are never mutated.
type JoinRequest struct {
	gorm.Model
	TeamID          uint   `gorm:"index" json:"team_id"`
	ProfileID       uint   `gorm:"index" json:"profile_id"`
	Role            string `json:"role"`
	Message         string `json:"message"`
	ResponseMessage string `json:"response_message,omitempty"`
	Status          string `gorm:"default:'pending';index" json:"status"`
}

// VotingRound is one timed leader election for a team. At most one active
// round per team; Round increments so a team can vote again after a failure.
type VotingRound struct {
	gorm.Model
	TeamID   uint      `gorm:"index" json:"team_id"`
	Round    int       `gorm:"default:1" json:"round"`
	OpenedAt time.Time `json:"opened_at"`
	ClosesAt time.Time `json:"closes_at"`
	Status   string    `gorm:"default:'active';index" json:"status"`
	WinnerID *uint     `json:"winner_id,omitempty"`
}

// Vote is one voter's current choice in a round. Re-casting replaces the
// prior row rather than adding a second one.
type Vote struct {
	gorm.Model
	RoundID     uint `gorm:"index;uniqueIndex:idx_round_voter" json:"round_id"`
	VoterID     uint `gorm:"uniqueIndex:idx_round_voter" json:"voter_id"`
	CandidateID uint `gorm:"index" json:"candidate_id"`
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name            string   `json:"name" binding:"required,min=3,max=100"`
	Description     string   `json:"description" binding:"max=1000"`
	LeaderRole      string   `json:"leader_role" binding:"required,max=50"`
	LookingForRoles []string `json:"looking_for_roles" binding:"required,min=1"`
	TechStack       []string `json:"tech_stack"`
	MinMembers      int      `json:"min_members" binding:"omitempty,gte=1"`
	MaxMembers      int      `json:"max_members" binding:"omitempty,gte=1"`
}

type UpdateTeamRequest struct {
	Description     *string  `json:"description" binding:"omitempty,max=1000"`
	LookingForRoles []string `json:"looking_for_roles"`
	TechStack       []string `json:"tech_stack"`
	MinMembers      *int     `json:"min_members" binding:"omitempty,gte=1"`
	MaxMembers      *int     `json:"max_members" binding:"omitempty,gte=1"`
}

type SubmitJoinRequest struct {
	Role    string `json:"role" binding:"required,max=50"`
	Message string `json:"message" binding:"max=500"`
}

type RespondJoinRequest struct {
	Accept          bool   `json:"accept"`
	ResponseMessage string `json:"response_message" binding:"max=500"`
}

type CastVoteRequest struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

// --- Service results ---

// VotingResult describes how leadership was (or is being) transferred.
type VotingResult struct {
	Action      string     `json:"action"` // auto_promoted | voting_started
	NewLeaderID *uint      `json:"new_leader_id,omitempty"`
	RoundID     uint       `json:"round_id,omitempty"`
	ClosesAt    *time.Time `json:"closes_at,omitempty"`
}

// LeaveResult is the outcome of a LeaveTeam call.
type LeaveResult struct {
	Action       string        `json:"action"` // member_left | team_disbanded | leadership_transfer
	VotingResult *VotingResult `json:"voting_result,omitempty"`
}

// CloseResult is the (idempotent) outcome of closing an election.
type CloseResult struct {
	RoundID  uint   `json:"round_id"`
	Status   string `json:"status"` // completed | failed
	WinnerID *uint  `json:"winner_id,omitempty"`
}

// TallyEntry is one candidate's standing in a round.
type TallyEntry struct {
	CandidateID uint    `json:"candidate_id"`
	Count       int     `json:"count"`
	Percent     float64 `json:"percent"`
}

// VotingState is the live view of a team's active election.
type VotingState struct {
	Round      VotingRound  `json:"round"`
	Tally      []TallyEntry `json:"tally"`
	TotalVotes int          `json:"total_votes"`
	Eligible   int          `json:"eligible_voters"`
}
