// session/model.go
package session

import (
	"errors"
	"sync"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
)

var (
	ErrSessionNotFound = errors.New("editor session not found or expired")
	ErrSessionRejected = errors.New("editor session could not be stored, try again")
	ErrSaveInProgress  = errors.New("a save is already in progress for this session")
	ErrStoreFull       = errors.New("too many open editor sessions, close one or try again later")
)

// Session is one play being edited. All editor access goes through the
// session lock.
type Session struct {
	ID      string
	OwnerID string
	TeamID  *uint
	PlayID  *uint

	mu     sync.Mutex
	saving bool
	editor *diagram.Editor
}

func newSession(id, ownerID string, teamID *uint, editor *diagram.Editor) *Session {
	return &Session{ID: id, OwnerID: ownerID, TeamID: teamID, editor: editor}
}

// View is the client-facing snapshot of a session.
type View struct {
	ID         string                `json:"id"`
	PlayID     *uint                 `json:"play_id,omitempty"`
	TeamID     *uint                 `json:"team_id,omitempty"`
	State      diagram.State         `json:"state"`
	ODK        diagram.ODK           `json:"odk,omitempty"`
	Formation  string                `json:"formation,omitempty"`
	PlayType   string                `json:"play_type,omitempty"`
	Tokens     []diagram.PlayerToken `json:"tokens"`
	Routes     []diagram.Route       `json:"routes"`
	Pending    *diagram.PendingRoute `json:"pending,omitempty"`
	SelectedID string                `json:"selected_id,omitempty"`
	GrabbedID  string                `json:"grabbed_id,omitempty"`
	Saving     bool                  `json:"saving"`
	Warning    string                `json:"warning,omitempty"`
}

// view must be called with s.mu held.
func (s *Session) view() View {
	v := View{
		ID:         s.ID,
		PlayID:     s.PlayID,
		TeamID:     s.TeamID,
		State:      s.editor.State(),
		ODK:        s.editor.ODK(),
		Formation:  s.editor.FormationName(),
		PlayType:   s.editor.PlayType(),
		Tokens:     s.editor.Tokens(),
		Routes:     s.editor.Routes(),
		SelectedID: s.editor.SelectedID(),
		GrabbedID:  s.editor.GrabbedID(),
		Saving:     s.saving,
	}
	if p, ok := s.editor.Pending(); ok {
		v.Pending = &p
	}
	return v
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Do runs fn against the editor under the session lock and returns the
// resulting snapshot, even when fn fails.
func (s *Session) Do(fn func(e *diagram.Editor) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.editor)
	return s.view(), err
}

// SaveSnapshot is what a save persists, captured under the session lock.
type SaveSnapshot struct {
	PlayID     *uint
	TeamID     *uint
	Attributes diagram.PlayAttributes
	Diagram    diagram.PlayDiagram
}

// BeginSave marks the session as saving and serializes the editor. Editing
// may continue while the save runs; a second save is refused until
// FinishSave.
func (s *Session) BeginSave(attrs diagram.PlayAttributes) (SaveSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return SaveSnapshot{}, ErrSaveInProgress
	}

	d, attrs, err := s.editor.Serialize(attrs)
	if err != nil {
		return SaveSnapshot{}, err
	}

	s.saving = true
	return SaveSnapshot{PlayID: s.PlayID, TeamID: s.TeamID, Attributes: attrs, Diagram: d}, nil
}

// FinishSave clears the saving flag. A successful first save binds the
// session to the new play so later saves update it.
func (s *Session) FinishSave(playID *uint, attrs diagram.PlayAttributes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if playID != nil {
		s.PlayID = playID
		if pt := attrs.PlayType(); pt != "" {
			s.editor.SetPlayType(pt)
		}
	}
}
