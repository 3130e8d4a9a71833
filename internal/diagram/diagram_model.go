// diagram/model.go
package diagram

// ODK is the offense / defense / kicking category of a play.
type ODK string

const (
	ODKOffense      ODK = "offense"
	ODKDefense      ODK = "defense"
	ODKSpecialTeams ODK = "specialTeams"
)

// Valid reports whether o is one of the known categories.
func (o ODK) Valid() bool {
	switch o {
	case ODKOffense, ODKDefense, ODKSpecialTeams:
		return true
	}
	return false
}

// Side of the ball a token lines up on.
type Side string

const (
	SideOffense Side = "offense"
	SideDefense Side = "defense"
)

// CoarsePlayType is the run/pass flag the assignment vocabulary is keyed by.
type CoarsePlayType string

const (
	CoarseRun  CoarsePlayType = "run"
	CoarsePass CoarsePlayType = "pass"
)

// CoarseFromPlayType maps an offensive play type attribute to run or pass.
// Only "Run" is a run; everything else (including empty) draws pass options.
func CoarseFromPlayType(playType string) CoarsePlayType {
	if playType == PlayTypeRun {
		return CoarseRun
	}
	return CoarsePass
}

// Point is a field-relative pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerToken is a positioned participant in the editor.
type PlayerToken struct {
	ID       string  `json:"id"`
	Position string  `json:"position"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label"`
	Side     Side    `json:"side"`
}

// Route is an assignment path drawn from a token.
type Route struct {
	ID         string  `json:"id"`
	PlayerID   string  `json:"player_id"`
	Points     []Point `json:"points"`
	Assignment string  `json:"assignment"`
}

// FormationSlot is one entry of a formation template.
type FormationSlot struct {
	Position string  `json:"position" yaml:"position"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Label    string  `json:"label" yaml:"label"`
}

// FormationLookup resolves a formation template by category and name.
type FormationLookup interface {
	Formation(odk ODK, name string) ([]FormationSlot, bool)
}

// AssignmentLookup returns the legal assignment labels for a position.
type AssignmentLookup interface {
	AssignmentOptions(position string, playType CoarsePlayType) []string
}

// --- Persisted shapes ---

// PlayerPosition is a token as stored in a diagram. No id, no side.
type PlayerPosition struct {
	Position string  `json:"position"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label"`
}

// DiagramRoute is a route as stored in a diagram.
type DiagramRoute struct {
	ID        string         `json:"id"`
	PlayerID  string         `json:"playerId"`
	Points    []Point        `json:"points"`
	Type      CoarsePlayType `json:"type"`
	RouteType string         `json:"routeType"`
}

// PlayDiagram is the lossy, persisted projection of an editor.
type PlayDiagram struct {
	ODK       ODK              `json:"odk"`
	Formation string           `json:"formation"`
	Players   []PlayerPosition `json:"players"`
	Routes    []DiagramRoute   `json:"routes"`
}
