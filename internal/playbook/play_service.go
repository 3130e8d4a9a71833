package playbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"gorm.io/datatypes"
)

var (
	ErrMissingName      = errors.New("play name is required")
	ErrMissingFormation = errors.New("formation is required")
	ErrPlayNotFound     = errors.New("play not found")
	ErrForbidden        = errors.New("not allowed to access this playbook")
)

// MembershipChecker reports whether a user is on a team's staff.
type MembershipChecker interface {
	IsUserTeamMember(ctx context.Context, teamID uint, userID string) (bool, error)
}

// SaveInput is everything the save flow needs. A nil PlayID creates a new
// play; otherwise the existing play is updated in place and keeps its code.
type SaveInput struct {
	PlayID     *uint
	TeamID     *uint
	UserID     string
	Name       string
	Attributes diagram.PlayAttributes
	Diagram    diagram.PlayDiagram
}

// Service owns playbook rules on top of the repository.
type Service struct {
	repo    PlayRepository
	members MembershipChecker
}

func NewService(repo PlayRepository, members MembershipChecker) *Service {
	return &Service{repo: repo, members: members}
}

// CanAccessScope reports whether userID may read and write plays in scope.
func (s *Service) CanAccessScope(ctx context.Context, scope Scope, userID string) error {
	if scope.TeamID == nil {
		if scope.OwnerID != userID {
			return ErrForbidden
		}
		return nil
	}
	ok, err := s.members.IsUserTeamMember(ctx, *scope.TeamID, userID)
	if err != nil {
		return fmt.Errorf("check team membership: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// GetPlay loads a play the user can access.
func (s *Service) GetPlay(ctx context.Context, id uint, userID string) (*Play, error) {
	play, err := s.repo.GetPlayByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get play: %w", err)
	}
	if play == nil {
		return nil, ErrPlayNotFound
	}
	if err := s.CanAccessScope(ctx, ScopeOf(play), userID); err != nil {
		return nil, err
	}
	return play, nil
}

// ListPlays lists one playbook. The caller's own scope is used when
// filter.Scope has no team.
func (s *Service) ListPlays(ctx context.Context, filter ListFilter, userID string) ([]Play, int64, error) {
	if filter.Scope.TeamID == nil {
		filter.Scope.OwnerID = userID
	}
	if err := s.CanAccessScope(ctx, filter.Scope, userID); err != nil {
		return nil, 0, err
	}
	plays, total, err := s.repo.ListPlays(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list plays: %w", err)
	}
	return plays, total, nil
}

// NextPlayCode previews the code the next play created in scope gets.
func (s *Service) NextPlayCode(ctx context.Context, scope Scope) (string, error) {
	codes, err := s.repo.ListCodes(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("list play codes: %w", err)
	}
	return NextCode(codes), nil
}

// Archive hides or restores a play without deleting it.
func (s *Service) Archive(ctx context.Context, id uint, userID string, archived bool) (*Play, error) {
	play, err := s.GetPlay(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetArchived(ctx, play.ID, archived); err != nil {
		return nil, fmt.Errorf("archive play: %w", err)
	}
	play.Archived = archived
	return play, nil
}

// Save validates the input and persists it. Name and formation are checked
// before anything touches storage.
func (s *Service) Save(ctx context.Context, in SaveInput) (*Play, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(in.Attributes.Formation) == "" {
		return nil, ErrMissingFormation
	}
	if err := in.Attributes.Validate(); err != nil {
		return nil, err
	}

	if in.PlayID != nil {
		return s.update(ctx, *in.PlayID, name, in)
	}

	scope := Scope{TeamID: in.TeamID, OwnerID: in.UserID}
	if err := s.CanAccessScope(ctx, scope, in.UserID); err != nil {
		return nil, err
	}

	play := &Play{
		TeamID:     in.TeamID,
		OwnerID:    in.UserID,
		Name:       name,
		Attributes: datatypes.NewJSONType(in.Attributes),
		Diagram:    datatypes.NewJSONType(in.Diagram),
	}
	err := s.repo.WithTransaction(ctx, func(repo PlayRepository) error {
		if err := repo.LockScope(ctx, scope); err != nil {
			return err
		}
		codes, err := repo.ListCodes(ctx, scope)
		if err != nil {
			return err
		}
		play.Code = NextCode(codes)
		return repo.CreatePlay(ctx, play)
	})
	if err != nil {
		return nil, fmt.Errorf("create play: %w", err)
	}
	return play, nil
}

func (s *Service) update(ctx context.Context, id uint, name string, in SaveInput) (*Play, error) {
	play, err := s.GetPlay(ctx, id, in.UserID)
	if err != nil {
		return nil, err
	}
	fields := PlayUpdate{Name: name, Attributes: in.Attributes, Diagram: in.Diagram}
	if err := s.repo.UpdatePlay(ctx, play.ID, fields); err != nil {
		return nil, fmt.Errorf("update play: %w", err)
	}
	play.Name = fields.Name
	play.Attributes = datatypes.NewJSONType(fields.Attributes)
	play.Diagram = datatypes.NewJSONType(fields.Diagram)
	return play, nil
}
