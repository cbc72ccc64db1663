package event

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// Activity is the persisted form of an emitted event, backing the feed.
type Activity struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"index" json:"type"`
	TeamID    uint      `gorm:"index" json:"team_id,omitempty"`
	ProfileID uint      `json:"profile_id,omitempty"`
	RoundID   uint      `json:"round_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Recorder persists each event as an Activity row and fans it out on the bus.
type Recorder struct {
	db  *gorm.DB
	bus *Bus
}

func NewRecorder(db *gorm.DB, bus *Bus) *Recorder {
	return &Recorder{db: db, bus: bus}
}

// Emit implements Emitter. Persistence failures are logged, not propagated:
// the feed is derived data and must not fail the mutating operation that
// already committed.
func (r *Recorder) Emit(e Event) {
	row := Activity{
		ID:        e.ID,
		Type:      e.Type,
		TeamID:    e.TeamID,
		ProfileID: e.ProfileID,
		RoundID:   e.RoundID,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt,
	}
	if err := r.db.Create(&row).Error; err != nil {
		log.Printf("event: failed to persist activity %s: %v", e.Type, err)
	}
	if r.bus != nil {
		r.bus.Publish(e)
	}
}

// Recent returns the newest activity rows, optionally scoped to a team.
func Recent(db *gorm.DB, teamID uint, limit int) ([]Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []Activity
	query := db.Model(&Activity{}).Order("created_at desc").Limit(limit)
	if teamID != 0 {
		query = query.Where("team_id = ?", teamID)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
