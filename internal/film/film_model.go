// film/model.go
package film

import (
	"time"

	"gorm.io/gorm"
)

// Game is one game's film. The video itself lives elsewhere; VideoURL is
// stored as given.
type Game struct {
	gorm.Model
	TeamID      uint      `json:"team_id" gorm:"not null;index"`
	Opponent    string    `json:"opponent" gorm:"not null"`
	PlayedOn    time.Time `json:"played_on" gorm:"type:date"`
	Location    string    `json:"location"`
	VideoURL    string    `json:"video_url"`
	CreatedByID string    `json:"created_by_id" gorm:"type:varchar(64);index"`
	Tags        []PlayTag `json:"tags,omitempty" gorm:"foreignKey:GameID"`
}

// PlayTag marks where a play from the team's playbook shows up on film.
type PlayTag struct {
	gorm.Model
	GameID     uint    `json:"game_id" gorm:"not null;index"`
	PlayCode   string  `json:"play_code" gorm:"type:varchar(16);not null;index"`
	Timestamp  float64 `json:"timestamp"` // seconds into the video
	Quarter    int     `json:"quarter"`
	Down       int     `json:"down"`
	Distance   int     `json:"distance"`
	YardLine   int     `json:"yard_line"`
	Result     string  `json:"result"`
	Notes      string  `json:"notes"`
	TaggedByID string  `json:"tagged_by_id" gorm:"type:varchar(64)"`
}
