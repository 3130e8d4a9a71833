// playbook/play_model.go
package playbook

import (
	"fmt"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Play is a saved diagram in a team or personal playbook.
type Play struct {
	gorm.Model
	TeamID     *uint                                      `json:"team_id" gorm:"index"` // nil for a personal playbook
	OwnerID    string                                     `json:"owner_id" gorm:"type:varchar(64);not null;index"`
	Code       string                                     `json:"code" gorm:"type:varchar(16);not null;index"`
	Name       string                                     `json:"name" gorm:"type:varchar(150);not null"`
	Attributes datatypes.JSONType[diagram.PlayAttributes] `json:"attributes" gorm:"type:jsonb" swaggertype:"object"`
	Diagram    datatypes.JSONType[diagram.PlayDiagram]    `json:"diagram" gorm:"type:jsonb" swaggertype:"object"`
	Archived   bool                                       `json:"archived" gorm:"default:false;index"`
}

// Scope is the playbook a code is unique within: a team's, or the owner's
// personal one when TeamID is nil.
type Scope struct {
	TeamID  *uint
	OwnerID string
}

// Key identifies the scope for locking.
func (s Scope) Key() string {
	if s.TeamID != nil {
		return fmt.Sprintf("team:%d", *s.TeamID)
	}
	return "user:" + s.OwnerID
}

func (s Scope) apply(db *gorm.DB) *gorm.DB {
	if s.TeamID != nil {
		return db.Where("team_id = ?", *s.TeamID)
	}
	return db.Where("team_id IS NULL AND owner_id = ?", s.OwnerID)
}

// ScopeOf returns the playbook a play belongs to.
func ScopeOf(p *Play) Scope {
	return Scope{TeamID: p.TeamID, OwnerID: p.OwnerID}
}

// PlayUpdate holds the fields a re-edit may change.
type PlayUpdate struct {
	Name       string
	Attributes diagram.PlayAttributes
	Diagram    diagram.PlayDiagram
}

// ListFilter narrows a playbook listing.
type ListFilter struct {
	Scope    Scope
	Archived *bool
	Page     int
	Limit    int
}
