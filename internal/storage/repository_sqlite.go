package storage

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thelaith/satire-empire/internal/game"
)

// MatchRecord stores one serialized match per row. The indexed columns
// (phase, deadline, privacy) exist so the scanner and lobby listing can
// query without decoding snapshots.
type MatchRecord struct {
	gorm.Model
	MatchID     string    `gorm:"uniqueIndex"`
	JoinCode    string    `gorm:"index"`
	Name        string    `gorm:"size:32"`
	Phase       string    `gorm:"index"`
	Turn        int
	Private     bool
	PlayerCount int
	MaxPlayers  int
	PhaseEndsAt time.Time `gorm:"index"`
	// Snapshot is the full JSON-encoded game.Match.
	Snapshot []byte `gorm:"type:blob"`
}

// TableName overrides the default so the persisted table is
// `match_snapshots` instead of the default `match_records`.
func (MatchRecord) TableName() string { return "match_snapshots" }

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveMatch(m *game.Match) error {
	blob, err := json.Marshal(m)
	if err != nil {
		return err
	}
	rec := MatchRecord{
		MatchID:     m.ID,
		JoinCode:    m.JoinCode,
		Name:        m.Name,
		Phase:       string(m.Phase),
		Turn:        m.Turn,
		Private:     m.Private,
		PlayerCount: len(m.Players),
		MaxPlayers:  m.Metadata.MaxPlayers,
		PhaseEndsAt: m.PhaseEndsAt,
		Snapshot:    blob,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"join_code", "name", "phase", "turn", "private",
			"player_count", "max_players", "phase_ends_at", "snapshot", "updated_at",
		}),
	}).Create(&rec).Error
}

func (r *sqliteRepository) GetMatchByID(id string) (*game.Match, error) {
	var rec MatchRecord
	if err := r.db.Where("match_id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return decodeSnapshot(&rec)
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*game.Match, error) {
	var rec MatchRecord
	if err := r.db.Where("join_code = ?", code).First(&rec).Error; err != nil {
		return nil, err
	}
	return decodeSnapshot(&rec)
}

func (r *sqliteRepository) ListPublicMatches() ([]MatchSummary, error) {
	var recs []MatchRecord
	err := r.db.
		Where("private = ? AND phase != ?", false, string(game.PhaseFinished)).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]MatchSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, MatchSummary{
			MatchID:     rec.MatchID,
			Name:        rec.Name,
			JoinCode:    rec.JoinCode,
			Phase:       rec.Phase,
			Turn:        rec.Turn,
			PlayerCount: rec.PlayerCount,
			MaxPlayers:  rec.MaxPlayers,
		})
	}
	return out, nil
}

func (r *sqliteRepository) FindDueMatchIDs(now time.Time) ([]string, error) {
	var ids []string
	err := r.db.Model(&MatchRecord{}).
		Where("phase NOT IN ? AND phase_ends_at != ? AND phase_ends_at <= ?",
			[]string{string(game.PhaseLobby), string(game.PhaseFinished)},
			time.Time{}, now).
		Pluck("match_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *sqliteRepository) DeleteMatch(id string) error {
	return r.db.Where("match_id = ?", id).Delete(&MatchRecord{}).Error
}

func decodeSnapshot(rec *MatchRecord) (*game.Match, error) {
	var m game.Match
	if err := json.Unmarshal(rec.Snapshot, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
