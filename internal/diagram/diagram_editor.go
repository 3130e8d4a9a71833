package diagram

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// State of the editor's route flow.
type State string

const (
	StateIdle            State = "idle"
	StateFormationLoaded State = "formation_loaded"
	StateDrawingRoute    State = "drawing_route"
	StateAssigning       State = "assigning"
)

var (
	ErrInvalidState        = errors.New("operation not allowed in the current editor state")
	ErrDegenerateRoute     = errors.New("route needs at least two points and was discarded")
	ErrEmptyAssignment     = errors.New("assignment is required")
	ErrUnknownAssignment   = errors.New("assignment is not available for this player")
	ErrNonFiniteCoordinate = errors.New("coordinates must be finite numbers")
	ErrTokenGrabbed        = errors.New("another token is being dragged")
)

// PendingRoute is the route being drawn or awaiting its assignment.
type PendingRoute struct {
	PlayerID string  `json:"player_id"`
	Points   []Point `json:"points"`
}

// Editor holds one play diagram being edited. It is not safe for
// concurrent use; callers serialize access.
type Editor struct {
	formations  FormationLookup
	assignments AssignmentLookup
	newRouteID  func() string

	state     State
	odk       ODK
	formation string
	playType  string

	tokens []PlayerToken
	routes []Route

	selectedID    string
	pendingPlayer string
	pendingPath   []Point
	grabbedID     string
}

type EditorOption func(*Editor)

// WithRouteIDs overrides the route id generator.
func WithRouteIDs(fn func() string) EditorOption {
	return func(e *Editor) {
		e.newRouteID = fn
	}
}

func NewEditor(formations FormationLookup, assignments AssignmentLookup, opts ...EditorOption) *Editor {
	e := &Editor{
		formations:  formations,
		assignments: assignments,
		newRouteID:  uuid.NewString,
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) State() State          { return e.state }
func (e *Editor) ODK() ODK              { return e.odk }
func (e *Editor) FormationName() string { return e.formation }
func (e *Editor) PlayType() string      { return e.playType }
func (e *Editor) SelectedID() string    { return e.selectedID }
func (e *Editor) GrabbedID() string     { return e.grabbedID }

// SetPlayType sets the offensive play type the assignment step checks against.
func (e *Editor) SetPlayType(pt string) {
	e.playType = pt
}

func (e *Editor) routeFlowActive() bool {
	return e.state == StateDrawingRoute || e.state == StateAssigning
}

func tokenID(odk ODK, index int) string {
	return fmt.Sprintf("%s-%d", odk, index)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sideFor(odk ODK) Side {
	if odk == ODKDefense {
		return SideDefense
	}
	return SideOffense
}

// Tokens returns a copy of the token set in formation order.
func (e *Editor) Tokens() []PlayerToken {
	return slices.Clone(e.tokens)
}

// Routes returns a deep copy of the committed routes.
func (e *Editor) Routes() []Route {
	out := make([]Route, len(e.routes))
	for i, r := range e.routes {
		r.Points = slices.Clone(r.Points)
		out[i] = r
	}
	return out
}

// Pending returns the in-progress route, if any.
func (e *Editor) Pending() (PendingRoute, bool) {
	if !e.routeFlowActive() {
		return PendingRoute{}, false
	}
	return PendingRoute{PlayerID: e.pendingPlayer, Points: slices.Clone(e.pendingPath)}, true
}

func (e *Editor) token(id string) *PlayerToken {
	for i := range e.tokens {
		if e.tokens[i].ID == id {
			return &e.tokens[i]
		}
	}
	return nil
}

func (e *Editor) clearPending() {
	e.pendingPlayer = ""
	e.pendingPath = nil
	e.selectedID = ""
}

// LoadFormation replaces every token with the named template and clears all
// routes. An unknown formation leaves the editor untouched.
func (e *Editor) LoadFormation(odk ODK, name string) {
	slots, ok := e.formations.Formation(odk, name)
	if !ok {
		return
	}

	side := sideFor(odk)
	tokens := make([]PlayerToken, len(slots))
	for i, s := range slots {
		tokens[i] = PlayerToken{
			ID:       tokenID(odk, i),
			Position: s.Position,
			X:        s.X,
			Y:        s.Y,
			Label:    s.Label,
			Side:     side,
		}
	}

	e.tokens = tokens
	e.routes = nil
	e.clearPending()
	e.grabbedID = ""
	e.odk = odk
	e.formation = name
	e.state = StateFormationLoaded
}

// BeginRoute starts a route at the token's current position.
func (e *Editor) BeginRoute(playerID string) error {
	if e.routeFlowActive() {
		return ErrInvalidState
	}
	tok := e.token(playerID)
	if tok == nil {
		return nil
	}
	e.pendingPlayer = tok.ID
	e.pendingPath = []Point{{X: tok.X, Y: tok.Y}}
	e.selectedID = tok.ID
	e.state = StateDrawingRoute
	return nil
}

func (e *Editor) AddRoutePoint(x, y float64) error {
	if e.state != StateDrawingRoute {
		return ErrInvalidState
	}
	if !finite(x) || !finite(y) {
		return ErrNonFiniteCoordinate
	}
	e.pendingPath = append(e.pendingPath, Point{X: x, Y: y})
	return nil
}

// FinishRoute moves a drawn route to the assignment step. A route with a
// single point is dropped and ErrDegenerateRoute reported as a warning.
func (e *Editor) FinishRoute() error {
	if e.state != StateDrawingRoute {
		return ErrInvalidState
	}
	if len(e.pendingPath) < 2 {
		e.clearPending()
		e.state = StateFormationLoaded
		return ErrDegenerateRoute
	}
	e.state = StateAssigning
	return nil
}

// AssignmentOptions lists the labels a player may be given for a play type.
func (e *Editor) AssignmentOptions(playerID string, playType string) []string {
	tok := e.token(playerID)
	if tok == nil {
		return []string{}
	}
	opts := e.assignments.AssignmentOptions(tok.Position, CoarseFromPlayType(playType))
	return slices.Clone(opts)
}

// ConfirmAssignment commits the pending route with the given label.
func (e *Editor) ConfirmAssignment(label string) (Route, error) {
	if e.state != StateAssigning {
		return Route{}, ErrInvalidState
	}
	if strings.TrimSpace(label) == "" {
		return Route{}, ErrEmptyAssignment
	}
	if !slices.Contains(e.AssignmentOptions(e.pendingPlayer, e.playType), label) {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownAssignment, label)
	}

	r := Route{
		ID:         e.newRouteID(),
		PlayerID:   e.pendingPlayer,
		Points:     slices.Clone(e.pendingPath),
		Assignment: label,
	}
	e.routes = append(e.routes, r)
	e.clearPending()
	e.state = StateFormationLoaded
	return r, nil
}

func (e *Editor) CancelRoute() error {
	if !e.routeFlowActive() {
		return ErrInvalidState
	}
	e.clearPending()
	e.state = StateFormationLoaded
	return nil
}

// DeleteRoute removes the route with id, if present.
func (e *Editor) DeleteRoute(routeID string) error {
	if e.routeFlowActive() {
		return ErrInvalidState
	}
	e.routes = slices.DeleteFunc(e.routes, func(r Route) bool {
		return r.ID == routeID
	})
	return nil
}

// GrabToken enters the drag sub-state for one token.
func (e *Editor) GrabToken(id string) error {
	if e.grabbedID != "" && e.grabbedID != id {
		return ErrTokenGrabbed
	}
	if e.token(id) == nil {
		return nil
	}
	e.grabbedID = id
	return nil
}

func (e *Editor) ReleaseToken() {
	e.grabbedID = ""
}

// DragToken moves a token. Committed routes keep their drawn points.
func (e *Editor) DragToken(id string, x, y float64) error {
	if e.grabbedID != "" && e.grabbedID != id {
		return ErrTokenGrabbed
	}
	if !finite(x) || !finite(y) {
		return ErrNonFiniteCoordinate
	}
	tok := e.token(id)
	if tok == nil {
		return nil
	}
	tok.X, tok.Y = x, y
	return nil
}
