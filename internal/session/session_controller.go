package session

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/DhavalSuthar-24/gridiron/config"
	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"github.com/DhavalSuthar-24/gridiron/internal/middleware"
	"github.com/DhavalSuthar-24/gridiron/internal/playbook"
	"github.com/DhavalSuthar-24/gridiron/pkg/responses"
	"github.com/gin-gonic/gin"
)

// Catalog supplies formation templates and assignment vocabularies.
type Catalog interface {
	diagram.FormationLookup
	diagram.AssignmentLookup
}

// PlayStore is the playbook surface the editor needs.
type PlayStore interface {
	GetPlay(ctx context.Context, id uint, userID string) (*playbook.Play, error)
	CanAccessScope(ctx context.Context, scope playbook.Scope, userID string) error
	Save(ctx context.Context, in playbook.SaveInput) (*playbook.Play, error)
}

// EditorController exposes diagram editing over HTTP.
type EditorController struct {
	store     *Store
	catalog   Catalog
	plays     PlayStore
	appConfig *config.Config
}

func NewEditorController(store *Store, catalog Catalog, plays PlayStore, appConfig *config.Config) *EditorController {
	return &EditorController{store: store, catalog: catalog, plays: plays, appConfig: appConfig}
}

// --- DTOs for requests ---

type CreateSessionRequest struct {
	PlayID *uint `json:"play_id"`
	TeamID *uint `json:"team_id"`
}

type LoadFormationRequest struct {
	ODK  diagram.ODK `json:"odk" binding:"required,oneof=offense defense specialTeams"`
	Name string      `json:"name" binding:"required,max=100"`
}

type PlayTypeRequest struct {
	PlayType string `json:"play_type" binding:"omitempty,oneof=Run Pass RPO 'Play Action' Screen"`
}

type BeginRouteRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

type PointRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type ConfirmAssignmentRequest struct {
	Assignment string `json:"assignment"`
}

type MoveTokenRequest struct {
	X    *float64 `json:"x" binding:"required"`
	Y    *float64 `json:"y" binding:"required"`
	Hold bool     `json:"hold"` // keep the token grabbed after the move
}

type SaveRequest struct {
	Name       string                 `json:"name"`
	Attributes diagram.PlayAttributes `json:"attributes" swaggertype:"object"`
}

// AssignmentOptionsView lists what a player may be assigned.
type AssignmentOptionsView struct {
	PlayerID string                `json:"player_id"`
	Position string                `json:"position"`
	Group    diagram.PositionGroup `json:"group"`
	PlayType string                `json:"play_type"`
	Options  []string              `json:"options"`
}

// SaveResult is returned by a successful save.
type SaveResult struct {
	Play    *playbook.Play `json:"play"`
	Session View           `json:"session"`
}

// --- Helpers ---

func sendEditorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		responses.NotFound(c, "Editor session")
	case errors.Is(err, ErrSessionRejected), errors.Is(err, ErrStoreFull):
		responses.SendError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, diagram.ErrInvalidState), errors.Is(err, diagram.ErrTokenGrabbed),
		errors.Is(err, ErrSaveInProgress):
		responses.SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, diagram.ErrEmptyAssignment), errors.Is(err, diagram.ErrUnknownAssignment),
		errors.Is(err, diagram.ErrNonFiniteCoordinate):
		responses.BadRequest(c, err.Error())
	default:
		playbook.SendServiceError(c, "update editor session", err)
	}
}

// session resolves the caller's session from the path.
func (ec *EditorController) session(c *gin.Context) (*Session, string, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return nil, "", false
	}
	sess, err := ec.store.Get(c.Param("session_id"), userID)
	if err != nil {
		sendEditorError(c, err)
		return nil, "", false
	}
	return sess, userID, true
}

// apply runs one editor operation and answers with the new snapshot.
func (ec *EditorController) apply(c *gin.Context, message string, fn func(e *diagram.Editor) error) {
	sess, _, ok := ec.session(c)
	if !ok {
		return
	}
	view, err := sess.Do(fn)
	if err != nil {
		sendEditorError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, view)
}

func (ec *EditorController) newEditor() *diagram.Editor {
	return diagram.NewEditor(ec.catalog, ec.catalog)
}

// --- Session Handlers ---

// CreateSession godoc
// @Summary Open an editor session
// @Description Starts a blank diagram, or loads an existing play for re-editing when play_id is given.
// @Tags Editor
// @Accept json
// @Produce json
// @Param body body CreateSessionRequest false "Play to re-edit or team playbook to save into"
// @Success 201 {object} responses.SuccessResponse{data=View}
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Play not found"
// @Security ApiKeyAuth
// @Router /editor/sessions [post]
func (ec *EditorController) CreateSession(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
			return
		}
	}

	editor := ec.newEditor()
	teamID := req.TeamID
	var playID *uint

	if req.PlayID != nil {
		play, err := ec.plays.GetPlay(c.Request.Context(), *req.PlayID, userID)
		if err != nil {
			playbook.SendServiceError(c, "load play", err)
			return
		}
		editor.Restore(play.Diagram.Data())
		editor.SetPlayType(play.Attributes.Data().PlayType())
		teamID = play.TeamID
		playID = &play.ID
	} else {
		scope := playbook.Scope{TeamID: teamID, OwnerID: userID}
		if err := ec.plays.CanAccessScope(c.Request.Context(), scope, userID); err != nil {
			playbook.SendServiceError(c, "check access", err)
			return
		}
	}

	sess, err := ec.store.Create(userID, teamID, playID, editor)
	if err != nil {
		sendEditorError(c, err)
		return
	}
	log.Printf("editor session %s opened by %s", sess.ID, userID)
	responses.SendSuccess(c, http.StatusCreated, "Editor session created", sess.View())
}

// GetSession godoc
// @Summary Get an editor session
// @Tags Editor
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id} [get]
func (ec *EditorController) GetSession(c *gin.Context) {
	sess, _, ok := ec.session(c)
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Editor session retrieved", sess.View())
}

// DeleteSession godoc
// @Summary Close an editor session
// @Description Discards the session. Unsaved edits are lost.
// @Tags Editor
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Session not found"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id} [delete]
func (ec *EditorController) DeleteSession(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	if err := ec.store.Delete(c.Param("session_id"), userID); err != nil {
		sendEditorError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Editor session closed", nil)
}

// --- Editing Handlers ---

// LoadFormation godoc
// @Summary Load a formation
// @Description Replaces every token with the template and clears all routes. An unknown formation leaves the diagram unchanged.
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param body body LoadFormationRequest true "Formation"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/formation [post]
func (ec *EditorController) LoadFormation(c *gin.Context) {
	var req LoadFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	ec.apply(c, "Formation loaded", func(e *diagram.Editor) error {
		e.LoadFormation(req.ODK, req.Name)
		return nil
	})
}

// SetPlayType godoc
// @Summary Set the offensive play type
// @Description Run draws run assignments; any other value, or none, draws pass assignments.
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param body body PlayTypeRequest true "Play type"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/play-type [put]
func (ec *EditorController) SetPlayType(c *gin.Context) {
	var req PlayTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	ec.apply(c, "Play type updated", func(e *diagram.Editor) error {
		e.SetPlayType(req.PlayType)
		return nil
	})
}

// BeginRoute godoc
// @Summary Start drawing a route
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param body body BeginRouteRequest true "Player"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 409 {object} responses.ErrorResponse "A route is already in progress"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/routes [post]
func (ec *EditorController) BeginRoute(c *gin.Context) {
	var req BeginRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	ec.apply(c, "Route started", func(e *diagram.Editor) error {
		return e.BeginRoute(req.PlayerID)
	})
}

// AddRoutePoint godoc
// @Summary Append a point to the route being drawn
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param body body PointRequest true "Point"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 409 {object} responses.ErrorResponse "No route is being drawn"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/routes/points [post]
func (ec *EditorController) AddRoutePoint(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	ec.apply(c, "Point added", func(e *diagram.Editor) error {
		return e.AddRoutePoint(*req.X, *req.Y)
	})
}

// FinishRoute godoc
// @Summary Finish drawing and move to the assignment step
// @Description A route with a single point is discarded and the response carries a warning.
// @Tags Editor
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 409 {object} responses.ErrorResponse "No route is being drawn"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/routes/finish [post]
func (ec *EditorController) FinishRoute(c *gin.Context) {
	sess, _, ok := ec.session(c)
	if !ok {
		return
	}
	view, err := sess.Do(func(e *diagram.Editor) error {
		return e.FinishRoute()
	})
	switch {
	case errors.Is(err, diagram.ErrDegenerateRoute):
		view.Warning = err.Error()
		responses.SendSuccess(c, http.StatusOK, "Route discarded", view)
	case err != nil:
		sendEditorError(c, err)
	default:
		responses.SendSuccess(c, http.StatusOK, "Route ready for assignment", view)
	}
}

// ConfirmAssignment godoc
// @Summary Commit the pending route with an assignment
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param body body ConfirmAssignmentRequest true "Assignment label"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 400 {object} responses.ErrorResponse "Missing or unknown assignment"
// @Failure 409 {object} responses.ErrorResponse "No route awaiting assignment"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/routes/confirm [post]
func (ec *EditorController) ConfirmAssignment(c *gin.Context) {
	var req ConfirmAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	ec.apply(c, "Route added", func(e *diagram.Editor) error {
		_, err := e.ConfirmAssignment(req.Assignment)
		return err
	})
}

// CancelRoute godoc
// @Summary Abandon the route being drawn or assigned
// @Tags Editor
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 409 {object} responses.ErrorResponse "No route in progress"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/routes/cancel [post]
func (ec *EditorController) CancelRoute(c *gin.Context) {
	ec.apply(c, "Route cancelled", func(e *diagram.Editor) error {
		return e.CancelRoute()
	})
}

// DeleteRoute godoc
// @Summary Delete a committed route
// @Tags Editor
// @Produce json
// @Param session_id path string true "Session ID"
// @Param route_id path string true "Route ID"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 409 {object} responses.ErrorResponse "A route is in progress"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/routes/{route_id} [delete]
func (ec *EditorController) DeleteRoute(c *gin.Context) {
	routeID := c.Param("route_id")
	ec.apply(c, "Route deleted", func(e *diagram.Editor) error {
		return e.DeleteRoute(routeID)
	})
}

// MoveToken godoc
// @Summary Drag a token
// @Description Moves a token. With hold the token stays grabbed and other tokens can't move until it is released by a move without hold. Routes keep their drawn points.
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param token_id path string true "Token ID"
// @Param body body MoveTokenRequest true "New position"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 409 {object} responses.ErrorResponse "Another token is grabbed"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/tokens/{token_id} [put]
func (ec *EditorController) MoveToken(c *gin.Context) {
	var req MoveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	tokenID := c.Param("token_id")
	ec.apply(c, "Token moved", func(e *diagram.Editor) error {
		if err := e.GrabToken(tokenID); err != nil {
			return err
		}
		if err := e.DragToken(tokenID, *req.X, *req.Y); err != nil {
			return err
		}
		if !req.Hold {
			e.ReleaseToken()
		}
		return nil
	})
}

// AssignmentOptions godoc
// @Summary List assignments for a player
// @Description Options depend on the player's position and the session's play type.
// @Tags Editor
// @Produce json
// @Param session_id path string true "Session ID"
// @Param player_id query string true "Token ID"
// @Success 200 {object} responses.SuccessResponse{data=AssignmentOptionsView}
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/assignments [get]
func (ec *EditorController) AssignmentOptions(c *gin.Context) {
	playerID := c.Query("player_id")
	if playerID == "" {
		responses.BadRequest(c, "player_id is required")
		return
	}
	sess, _, ok := ec.session(c)
	if !ok {
		return
	}

	var out AssignmentOptionsView
	_, _ = sess.Do(func(e *diagram.Editor) error {
		out = AssignmentOptionsView{
			PlayerID: playerID,
			PlayType: e.PlayType(),
			Options:  e.AssignmentOptions(playerID, e.PlayType()),
		}
		for _, t := range e.Tokens() {
			if t.ID == playerID {
				out.Position = t.Position
				out.Group = diagram.GroupForPosition(t.Position)
			}
		}
		return nil
	})
	responses.SendSuccess(c, http.StatusOK, "Assignment options retrieved", out)
}

// SavePlay godoc
// @Summary Save the diagram as a play
// @Description Creates a play with the next free code, or updates the play this session was opened from. Name and formation are required.
// @Tags Editor
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param body body SaveRequest true "Play name and attributes"
// @Success 200 {object} responses.SuccessResponse{data=SaveResult}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 409 {object} responses.ErrorResponse "Save already in progress"
// @Failure 500 {object} responses.ErrorResponse "Persistence failed"
// @Security ApiKeyAuth
// @Router /editor/sessions/{session_id}/save [post]
func (ec *EditorController) SavePlay(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	sess, userID, ok := ec.session(c)
	if !ok {
		return
	}

	snap, err := sess.BeginSave(req.Attributes)
	if err != nil {
		sendEditorError(c, err)
		return
	}

	play, err := ec.plays.Save(c.Request.Context(), playbook.SaveInput{
		PlayID:     snap.PlayID,
		TeamID:     snap.TeamID,
		UserID:     userID,
		Name:       req.Name,
		Attributes: snap.Attributes,
		Diagram:    snap.Diagram,
	})
	if err != nil {
		sess.FinishSave(nil, snap.Attributes)
		playbook.SendServiceError(c, "save play", err)
		return
	}

	sess.FinishSave(&play.ID, snap.Attributes)
	log.Printf("play %s (%d) saved from session %s", play.Code, play.ID, sess.ID)
	responses.SendSuccess(c, http.StatusOK, "Play saved successfully", SaveResult{Play: play, Session: sess.View()})
}
