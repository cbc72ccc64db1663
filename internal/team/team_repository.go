package team

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	// Team operations
	CreateTeam(t *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamByName(name string) (*Team, error)
	GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error)
	UpdateTeam(t *Team) error
	UpdateTeamGuarded(t *Team, seenAt time.Time) (bool, error)
	GetTeamByMemberProfileID(profileID uint) (*Team, error)

	// Profile existence (foreign side of memberships and requests)
	ProfileExists(profileID uint) (bool, error)

	// TeamMember operations
	AddMember(m *TeamMember) error
	GetMember(teamID, profileID uint) (*TeamMember, error)
	GetMembers(teamID uint) ([]TeamMember, error)
	GetMembershipByProfileID(profileID uint) (*TeamMember, error)
	DeleteMember(teamID, profileID uint) error

	// JoinRequest operations
	CreateJoinRequest(r *JoinRequest) error
	GetJoinRequestByID(id uint) (*JoinRequest, error)
	GetPendingJoinRequest(teamID, profileID uint) (*JoinRequest, error)
	GetJoinRequestsByTeamID(teamID uint, status string, page, limit int) ([]JoinRequest, int64, error)
	GetJoinRequestsByProfileID(profileID uint, status string, page, limit int) ([]JoinRequest, int64, error)
	// ResolveJoinRequest conditionally moves a pending request to a terminal
	// status. Returns false when the request was no longer pending, which
	// means another actor won the race.
	ResolveJoinRequest(id uint, toStatus, responseMessage string) (bool, error)
	RejectPendingRequestsForTeam(teamID uint, responseMessage string) error

	// VotingRound operations
	CreateVotingRound(r *VotingRound) error
	GetActiveRound(teamID uint) (*VotingRound, error)
	GetLatestRound(teamID uint) (*VotingRound, error)
	GetRoundByID(id uint) (*VotingRound, error)
	// ResolveRound conditionally moves an active round to completed/failed.
	// Returns false when the round was already terminal (first closer wins).
	ResolveRound(id uint, toStatus string, winnerID *uint) (bool, error)

	// Vote operations
	UpsertVote(v *Vote) error
	GetVotesByRound(roundID uint) ([]Vote, error)
	DeleteVotesInvolving(roundID, profileID uint) error

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team operations ---

func (r *teamRepository) CreateTeam(t *Team) error {
	return r.db.Create(t).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetTeamByName(name string) (*Team, error) {
	var t Team
	if err := r.db.Where("name = ?", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).Where("status <> ?", StatusDisbanded)

	if status, ok := filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if name, ok := filters["name"]; ok {
		query = query.Where("name LIKE ?", "%"+name.(string)+"%")
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(t *Team) error {
	return r.db.Save(t).Error
}

// UpdateTeamGuarded persists the team's status only while the row still
// carries the updated_at value the caller read. Zero rows affected means
// another transaction wrote the team in between; the caller decides whether
// to retry or back out.
func (r *teamRepository) UpdateTeamGuarded(t *Team, seenAt time.Time) (bool, error) {
	result := r.db.Model(&Team{}).
		Where("id = ? AND updated_at = ?", t.ID, seenAt).
		Updates(map[string]interface{}{"status": t.Status})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *teamRepository) GetTeamByMemberProfileID(profileID uint) (*Team, error) {
	var t Team
	err := r.db.Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.profile_id = ? AND team_members.deleted_at IS NULL", profileID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) ProfileExists(profileID uint) (bool, error) {
	var count int64
	err := r.db.Table("profiles").
		Where("id = ? AND deleted_at IS NULL", profileID).
		Count(&count).Error
	return count > 0, err
}

// --- TeamMember operations ---

func (r *teamRepository) AddMember(m *TeamMember) error {
	return r.db.Create(m).Error
}

func (r *teamRepository) GetMember(teamID, profileID uint) (*TeamMember, error) {
	var m TeamMember
	if err := r.db.Where("team_id = ? AND profile_id = ?", teamID, profileID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *teamRepository) GetMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.Where("team_id = ?", teamID).Order("joined_at asc, id asc").Find(&members).Error
	return members, err
}

func (r *teamRepository) GetMembershipByProfileID(profileID uint) (*TeamMember, error) {
	var m TeamMember
	if err := r.db.Where("profile_id = ?", profileID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *teamRepository) DeleteMember(teamID, profileID uint) error {
	return r.db.Unscoped().
		Where("team_id = ? AND profile_id = ?", teamID, profileID).
		Delete(&TeamMember{}).Error
}

// --- JoinRequest operations ---

func (r *teamRepository) CreateJoinRequest(req *JoinRequest) error {
	return r.db.Create(req).Error
}

func (r *teamRepository) GetJoinRequestByID(id uint) (*JoinRequest, error) {
	var req JoinRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *teamRepository) GetPendingJoinRequest(teamID, profileID uint) (*JoinRequest, error) {
	var req JoinRequest
	err := r.db.Where("team_id = ? AND profile_id = ? AND status = ?", teamID, profileID, RequestPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *teamRepository) GetJoinRequestsByTeamID(teamID uint, status string, page, limit int) ([]JoinRequest, int64, error) {
	var requests []JoinRequest
	var total int64
	query := r.db.Model(&JoinRequest{}).Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *teamRepository) GetJoinRequestsByProfileID(profileID uint, status string, page, limit int) ([]JoinRequest, int64, error) {
	var requests []JoinRequest
	var total int64
	query := r.db.Model(&JoinRequest{}).Where("profile_id = ?", profileID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *teamRepository) ResolveJoinRequest(id uint, toStatus, responseMessage string) (bool, error) {
	res := r.db.Model(&JoinRequest{}).
		Where("id = ? AND status = ?", id, RequestPending).
		Updates(map[string]interface{}{
			"status":           toStatus,
			"response_message": responseMessage,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *teamRepository) RejectPendingRequestsForTeam(teamID uint, responseMessage string) error {
	return r.db.Model(&JoinRequest{}).
		Where("team_id = ? AND status = ?", teamID, RequestPending).
		Updates(map[string]interface{}{
			"status":           RequestRejected,
			"response_message": responseMessage,
		}).Error
}

// --- VotingRound operations ---

func (r *teamRepository) CreateVotingRound(round *VotingRound) error {
	return r.db.Create(round).Error
}

func (r *teamRepository) GetActiveRound(teamID uint) (*VotingRound, error) {
	var round VotingRound
	err := r.db.Where("team_id = ? AND status = ?", teamID, RoundActive).First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}

func (r *teamRepository) GetLatestRound(teamID uint) (*VotingRound, error) {
	var round VotingRound
	err := r.db.Where("team_id = ?", teamID).Order("round desc").First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}

func (r *teamRepository) GetRoundByID(id uint) (*VotingRound, error) {
	var round VotingRound
	if err := r.db.First(&round, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}

func (r *teamRepository) ResolveRound(id uint, toStatus string, winnerID *uint) (bool, error) {
	res := r.db.Model(&VotingRound{}).
		Where("id = ? AND status = ?", id, RoundActive).
		Updates(map[string]interface{}{
			"status":    toStatus,
			"winner_id": winnerID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --- Vote operations ---

func (r *teamRepository) UpsertVote(v *Vote) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "round_id"}, {Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"candidate_id", "updated_at"}),
	}).Create(v).Error
}

func (r *teamRepository) GetVotesByRound(roundID uint) ([]Vote, error) {
	var votes []Vote
	err := r.db.Where("round_id = ?", roundID).Find(&votes).Error
	return votes, err
}

func (r *teamRepository) DeleteVotesInvolving(roundID, profileID uint) error {
	return r.db.Unscoped().
		Where("round_id = ? AND (voter_id = ? OR candidate_id = ?)", roundID, profileID, profileID).
		Delete(&Vote{}).Error
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &teamRepository{db: tx}
		return txFunc(txRepo)
	})
}
