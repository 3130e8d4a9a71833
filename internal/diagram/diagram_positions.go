package diagram

import "strings"

// PositionGroup is a display grouping for assignment options.
type PositionGroup string

const (
	GroupOffensiveLine PositionGroup = "Offensive Line"
	GroupBacks         PositionGroup = "Backs"
	GroupReceivers     PositionGroup = "Receivers"
	GroupOther         PositionGroup = "Other"
)

var offensiveLinePositions = map[string]bool{
	"LT": true, "LG": true, "C": true, "RG": true, "RT": true,
	"OL": true, "G": true, "T": true,
}

var backPositions = map[string]bool{
	"QB": true, "RB": true, "FB": true, "HB": true, "TB": true,
}

var receiverPositions = map[string]bool{
	"WR": true, "TE": true, "SE": true, "FL": true,
}

// short receiver codes used by most formation sheets
var receiverShortCodes = map[string]bool{
	"X": true, "Y": true, "Z": true, "H": true, "SL": true, "SR": true,
}

// GroupForPosition derives the display group of a position code. It never
// limits which assignments are offered.
func GroupForPosition(code string) PositionGroup {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch {
	case offensiveLinePositions[code]:
		return GroupOffensiveLine
	case backPositions[code]:
		return GroupBacks
	case receiverPositions[code]:
		return GroupReceivers
	case strings.Contains(code, "WR"), strings.Contains(code, "TE"), receiverShortCodes[code]:
		return GroupReceivers
	}
	return GroupOther
}
