package team

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id uint) (*Team, error)
	GetTeamsByUserID(ctx context.Context, userID string, page, limit int) ([]Team, int64, error) // Teams user is a member of

	// TeamMember operations
	AddTeamMember(ctx context.Context, member *TeamMember) error
	GetTeamMember(ctx context.Context, teamID uint, userID string) (*TeamMember, error)
	RemoveTeamMember(ctx context.Context, teamID uint, userID string) error
	IsUserTeamMember(ctx context.Context, teamID uint, userID string) (bool, error)
	WithTransaction(ctx context.Context, txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetTeamByID(ctx context.Context, id uint) (*Team, error) {
	var team Team
	err := r.db.WithContext(ctx).
		Preload("Members", "is_active = ?", true).
		First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByUserID(ctx context.Context, userID string, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.WithContext(ctx).Model(&Team{}).
		Joins("JOIN team_members on team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.is_active = ? AND team_members.deleted_at IS NULL", userID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("teams.created_at DESC").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// --- TeamMember Operations ---

// AddTeamMember inserts the member or reactivates a previous membership.
func (r *teamRepository) AddTeamMember(ctx context.Context, member *TeamMember) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "is_active", "joined_at", "updated_at"}),
	}).Create(member).Error
}

func (r *teamRepository) GetTeamMember(ctx context.Context, teamID uint, userID string) (*TeamMember, error) {
	var member TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) RemoveTeamMember(ctx context.Context, teamID uint, userID string) error {
	return r.db.WithContext(ctx).Model(&TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("is_active", false).Error
}

func (r *teamRepository) IsUserTeamMember(ctx context.Context, teamID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TeamMember{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) WithTransaction(ctx context.Context, txFunc func(TeamRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
