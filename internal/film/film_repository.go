package film

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// FilmRepository defines the interface for game film data operations
type FilmRepository interface {
	CreateGame(ctx context.Context, game *Game) error
	GetGameByID(ctx context.Context, id uint) (*Game, error)
	GetGamesByTeamID(ctx context.Context, teamID uint, page, limit int) ([]Game, int64, error)

	CreatePlayTag(ctx context.Context, tag *PlayTag) error
	GetTagsByGameID(ctx context.Context, gameID uint) ([]PlayTag, error)
	GetTagsByPlayCode(ctx context.Context, teamID uint, code string) ([]PlayTag, error)
}

type filmRepository struct {
	db *gorm.DB
}

// NewFilmRepository creates a new instance of FilmRepository
func NewFilmRepository(db *gorm.DB) FilmRepository {
	return &filmRepository{db: db}
}

func (r *filmRepository) CreateGame(ctx context.Context, game *Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *filmRepository) GetGameByID(ctx context.Context, id uint) (*Game, error) {
	var game Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

func (r *filmRepository) GetGamesByTeamID(ctx context.Context, teamID uint, page, limit int) ([]Game, int64, error) {
	var games []Game
	var total int64

	query := r.db.WithContext(ctx).Model(&Game{}).Where("team_id = ?", teamID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("played_on desc").Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

func (r *filmRepository) CreatePlayTag(ctx context.Context, tag *PlayTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *filmRepository) GetTagsByGameID(ctx context.Context, gameID uint) ([]PlayTag, error) {
	var tags []PlayTag
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("timestamp asc").
		Find(&tags).Error
	return tags, err
}

// GetTagsByPlayCode finds every tag of a play code across the team's games.
func (r *filmRepository) GetTagsByPlayCode(ctx context.Context, teamID uint, code string) ([]PlayTag, error) {
	var tags []PlayTag
	err := r.db.WithContext(ctx).
		Joins("JOIN games ON games.id = play_tags.game_id AND games.deleted_at IS NULL").
		Where("games.team_id = ? AND play_tags.play_code = ?", teamID, code).
		Order("games.played_on desc, play_tags.timestamp asc").
		Find(&tags).Error
	return tags, err
}
