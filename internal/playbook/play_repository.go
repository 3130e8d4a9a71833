package playbook

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlayRepository defines the interface for play data operations
type PlayRepository interface {
	CreatePlay(ctx context.Context, play *Play) error
	UpdatePlay(ctx context.Context, id uint, fields PlayUpdate) error
	GetPlayByID(ctx context.Context, id uint) (*Play, error)
	ListPlays(ctx context.Context, filter ListFilter) ([]Play, int64, error)
	ListCodes(ctx context.Context, scope Scope) ([]string, error)
	SetArchived(ctx context.Context, id uint, archived bool) error

	// LockScope serializes code assignment within a scope until the
	// surrounding transaction ends.
	LockScope(ctx context.Context, scope Scope) error
	WithTransaction(ctx context.Context, txFunc func(PlayRepository) error) error
}

type playRepository struct {
	db *gorm.DB
}

// NewPlayRepository creates a new instance of PlayRepository
func NewPlayRepository(db *gorm.DB) PlayRepository {
	return &playRepository{db: db}
}

func (r *playRepository) CreatePlay(ctx context.Context, play *Play) error {
	return r.db.WithContext(ctx).Create(play).Error
}

func (r *playRepository) UpdatePlay(ctx context.Context, id uint, fields PlayUpdate) error {
	res := r.db.WithContext(ctx).Model(&Play{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":       fields.Name,
		"attributes": datatypes.NewJSONType(fields.Attributes),
		"diagram":    datatypes.NewJSONType(fields.Diagram),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlayNotFound
	}
	return nil
}

func (r *playRepository) GetPlayByID(ctx context.Context, id uint) (*Play, error) {
	var play Play
	if err := r.db.WithContext(ctx).First(&play, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &play, nil
}

func (r *playRepository) ListPlays(ctx context.Context, filter ListFilter) ([]Play, int64, error) {
	var plays []Play
	var total int64

	query := r.db.WithContext(ctx).Model(&Play{}).Scopes(filter.Scope.apply)
	if filter.Archived != nil {
		query = query.Where("archived = ?", *filter.Archived)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Offset(offset).Limit(filter.Limit).Order("code asc").Find(&plays).Error; err != nil {
		return nil, 0, err
	}
	return plays, total, nil
}

// ListCodes includes deleted plays so their codes are never handed out again.
func (r *playRepository) ListCodes(ctx context.Context, scope Scope) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).Unscoped().Model(&Play{}).Scopes(scope.apply).Pluck("code", &codes).Error
	return codes, err
}

func (r *playRepository) SetArchived(ctx context.Context, id uint, archived bool) error {
	res := r.db.WithContext(ctx).Model(&Play{}).Where("id = ?", id).Update("archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlayNotFound
	}
	return nil
}

func (r *playRepository) LockScope(ctx context.Context, scope Scope) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", scope.Key()).Error
}

func (r *playRepository) WithTransaction(ctx context.Context, txFunc func(PlayRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&playRepository{db: tx})
	})
}
