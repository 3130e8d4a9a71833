// team/model.go
package team

import (
	"time"

	"gorm.io/gorm"
)

// Team is a football program whose coaching staff shares one playbook.
type Team struct {
	gorm.Model
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description"`
	Level       string       `json:"level"`
	Logo        string       `json:"logo"`
	CreatedByID string       `json:"created_by_id" gorm:"type:varchar(64);index"`
	Members     []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

// TeamMember is one coach on a team's staff. UserID is the auth provider's
// subject.
type TeamMember struct {
	gorm.Model
	TeamID   uint      `json:"team_id" gorm:"uniqueIndex:idx_team_member"`
	UserID   string    `json:"user_id" gorm:"type:varchar(64);uniqueIndex:idx_team_member"`
	Role     string    `json:"role" gorm:"default:'assistant_coach'"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active" gorm:"default:true"`
}
