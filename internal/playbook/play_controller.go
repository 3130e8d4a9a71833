package playbook

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/gridiron/config"
	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"github.com/DhavalSuthar-24/gridiron/internal/middleware"
	"github.com/DhavalSuthar-24/gridiron/pkg/responses"
	"github.com/DhavalSuthar-24/gridiron/pkg/validator"
	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
)

// PlayController handles playbook HTTP requests
type PlayController struct {
	service   *Service
	appConfig *config.Config
}

func NewPlayController(service *Service, appConfig *config.Config) *PlayController {
	return &PlayController{service: service, appConfig: appConfig}
}

type ArchiveRequest struct {
	Archived *bool `json:"archived"`
}

// SendServiceError maps playbook and editor errors onto HTTP responses.
func SendServiceError(c *gin.Context, action string, err error) {
	var ve govalidator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		responses.SendValidationError(c, "Invalid play attributes", validator.ParseError(err))
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrMissingFormation),
		errors.Is(err, diagram.ErrAttributesMismatch):
		responses.BadRequest(c, err.Error())
	case errors.Is(err, ErrPlayNotFound):
		responses.NotFound(c, "Play")
	case errors.Is(err, ErrForbidden):
		responses.Forbidden(c, err.Error())
	default:
		responses.SendError(c, http.StatusInternalServerError, "Failed to "+action+": "+err.Error())
	}
}

func optionalUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// ListPlays godoc
// @Summary List plays in a playbook
// @Description Lists the team playbook when team_id is given, the caller's personal playbook otherwise.
// @Tags Plays
// @Produce json
// @Param team_id query int false "Team ID"
// @Param archived query bool false "Filter by archived flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Play}
// @Failure 403 {object} responses.ErrorResponse "Not on the team's staff"
// @Security ApiKeyAuth
// @Router /plays [get]
func (pc *PlayController) ListPlays(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	teamID, ok := optionalUint(c, "team_id")
	if !ok {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	filter := ListFilter{Scope: Scope{TeamID: teamID}}
	if raw := c.Query("archived"); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			responses.BadRequest(c, "archived must be true or false")
			return
		}
		filter.Archived = &archived
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	plays, total, err := pc.service.ListPlays(c.Request.Context(), filter, userID)
	if err != nil {
		SendServiceError(c, "list plays", err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Plays retrieved successfully", plays, total, filter.Page, filter.Limit)
}

// GetPlay godoc
// @Summary Get a play
// @Tags Plays
// @Produce json
// @Param play_id path int true "Play ID"
// @Success 200 {object} responses.SuccessResponse{data=Play}
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Play not found"
// @Security ApiKeyAuth
// @Router /plays/{play_id} [get]
func (pc *PlayController) GetPlay(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	playID, err := strconv.ParseUint(c.Param("play_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid play ID")
		return
	}

	play, err := pc.service.GetPlay(c.Request.Context(), uint(playID), userID)
	if err != nil {
		SendServiceError(c, "retrieve play", err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Play retrieved successfully", play)
}

// ArchivePlay godoc
// @Summary Archive or restore a play
// @Description Archives the play unless the body sets archived to false.
// @Tags Plays
// @Accept json
// @Produce json
// @Param play_id path int true "Play ID"
// @Param body body ArchiveRequest false "Archive flag"
// @Success 200 {object} responses.SuccessResponse{data=Play}
// @Failure 404 {object} responses.ErrorResponse "Play not found"
// @Security ApiKeyAuth
// @Router /plays/{play_id}/archive [put]
func (pc *PlayController) ArchivePlay(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	playID, err := strconv.ParseUint(c.Param("play_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid play ID")
		return
	}

	var req ArchiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
			return
		}
	}
	archived := true
	if req.Archived != nil {
		archived = *req.Archived
	}

	play, err := pc.service.Archive(c.Request.Context(), uint(playID), userID, archived)
	if err != nil {
		SendServiceError(c, "archive play", err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Play updated successfully", play)
}

// NextCode godoc
// @Summary Preview the next play code
// @Tags Plays
// @Produce json
// @Param team_id query int false "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=string}
// @Security ApiKeyAuth
// @Router /plays/next-code [get]
func (pc *PlayController) NextCode(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	teamID, ok := optionalUint(c, "team_id")
	if !ok {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	scope := Scope{TeamID: teamID, OwnerID: userID}
	if err := pc.service.CanAccessScope(c.Request.Context(), scope, userID); err != nil {
		SendServiceError(c, "check access", err)
		return
	}
	code, err := pc.service.NextPlayCode(c.Request.Context(), scope)
	if err != nil {
		SendServiceError(c, "compute next play code", err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Next play code computed", code)
}
