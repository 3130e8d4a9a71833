package film

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/gridiron/config"
	"github.com/DhavalSuthar-24/gridiron/internal/middleware"
	"github.com/DhavalSuthar-24/gridiron/internal/playbook"
	"github.com/DhavalSuthar-24/gridiron/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MembershipChecker reports whether a user is on a team's staff.
type MembershipChecker interface {
	IsUserTeamMember(ctx context.Context, teamID uint, userID string) (bool, error)
}

// PlayReader loads a play the caller may see.
type PlayReader interface {
	GetPlay(ctx context.Context, id uint, userID string) (*playbook.Play, error)
}

// FilmController handles game film and play tag requests
type FilmController struct {
	repo      FilmRepository
	members   MembershipChecker
	plays     PlayReader
	appConfig *config.Config
}

func NewFilmController(repo FilmRepository, members MembershipChecker, plays PlayReader, appConfig *config.Config) *FilmController {
	return &FilmController{repo: repo, members: members, plays: plays, appConfig: appConfig}
}

// --- DTOs for requests ---

type CreateGameRequest struct {
	TeamID   uint   `json:"team_id" binding:"required"`
	Opponent string `json:"opponent" binding:"required,max=100"`
	PlayedOn string `json:"played_on" binding:"required,datetime=2006-01-02"`
	Location string `json:"location" binding:"max=150"`
	VideoURL string `json:"video_url" binding:"omitempty,url"`
}

type CreateTagRequest struct {
	PlayCode  string   `json:"play_code" binding:"required,max=16"`
	Timestamp *float64 `json:"timestamp" binding:"required,gte=0"`
	Quarter   int      `json:"quarter" binding:"omitempty,min=1,max=5"`
	Down      int      `json:"down" binding:"omitempty,min=1,max=4"`
	Distance  int      `json:"distance" binding:"gte=0,lte=99"`
	YardLine  int      `json:"yard_line" binding:"gte=0,lte=100"`
	Result    string   `json:"result" binding:"max=50"`
	Notes     string   `json:"notes" binding:"max=2000"`
}

// staffGame loads a game and checks the caller is on the team's staff.
func (fc *FilmController) staffGame(c *gin.Context, userID string) (*Game, bool) {
	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid game ID")
		return nil, false
	}
	game, err := fc.repo.GetGameByID(c.Request.Context(), uint(gameID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve game: "+err.Error())
		return nil, false
	}
	if game == nil {
		responses.NotFound(c, "Game")
		return nil, false
	}
	if !fc.isStaff(c, game.TeamID, userID) {
		return nil, false
	}
	return game, true
}

func (fc *FilmController) isStaff(c *gin.Context, teamID uint, userID string) bool {
	ok, err := fc.members.IsUserTeamMember(c.Request.Context(), teamID, userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check membership: "+err.Error())
		return false
	}
	if !ok {
		responses.Forbidden(c, "Only team staff can access this film")
		return false
	}
	return true
}

// --- Game Handlers ---

// CreateGame godoc
// @Summary Add a game
// @Tags Film
// @Accept json
// @Produce json
// @Param game body CreateGameRequest true "Game"
// @Success 201 {object} responses.SuccessResponse{data=Game}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Not on the team's staff"
// @Security ApiKeyAuth
// @Router /games [post]
func (fc *FilmController) CreateGame(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	playedOn, err := time.Parse("2006-01-02", req.PlayedOn)
	if err != nil {
		responses.BadRequest(c, "played_on must be YYYY-MM-DD")
		return
	}

	if !fc.isStaff(c, req.TeamID, userID) {
		return
	}

	game := Game{
		TeamID:      req.TeamID,
		Opponent:    req.Opponent,
		PlayedOn:    playedOn,
		Location:    req.Location,
		VideoURL:    req.VideoURL,
		CreatedByID: userID,
	}
	if err := fc.repo.CreateGame(c.Request.Context(), &game); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create game: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Game created successfully", game)
}

// GetGames godoc
// @Summary List a team's games
// @Tags Film
// @Produce json
// @Param team_id query int true "Team ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Game}
// @Security ApiKeyAuth
// @Router /games [get]
func (fc *FilmController) GetGames(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	teamID, err := strconv.ParseUint(c.Query("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "team_id is required")
		return
	}
	if !fc.isStaff(c, uint(teamID), userID) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	games, total, err := fc.repo.GetGamesByTeamID(c.Request.Context(), uint(teamID), page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve games: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Games retrieved successfully", games, total, page, limit)
}

// GetGameByID godoc
// @Summary Get a game
// @Tags Film
// @Produce json
// @Param game_id path int true "Game ID"
// @Success 200 {object} responses.SuccessResponse{data=Game}
// @Failure 404 {object} responses.ErrorResponse "Game not found"
// @Security ApiKeyAuth
// @Router /games/{game_id} [get]
func (fc *FilmController) GetGameByID(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	game, ok := fc.staffGame(c, userID)
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game retrieved successfully", game)
}

// --- Tag Handlers ---

// CreateTag godoc
// @Summary Tag a play on film
// @Description Binds a video timestamp to a play code. Down, distance and notes are whatever the coach enters.
// @Tags Film
// @Accept json
// @Produce json
// @Param game_id path int true "Game ID"
// @Param tag body CreateTagRequest true "Tag"
// @Success 201 {object} responses.SuccessResponse{data=PlayTag}
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Security ApiKeyAuth
// @Router /games/{game_id}/tags [post]
func (fc *FilmController) CreateTag(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.PlayCode))
	if !playbook.IsPlayCode(code) {
		responses.BadRequest(c, "play_code must look like P-001")
		return
	}

	game, ok := fc.staffGame(c, userID)
	if !ok {
		return
	}

	tag := PlayTag{
		GameID:     game.ID,
		PlayCode:   code,
		Timestamp:  *req.Timestamp,
		Quarter:    req.Quarter,
		Down:       req.Down,
		Distance:   req.Distance,
		YardLine:   req.YardLine,
		Result:     req.Result,
		Notes:      req.Notes,
		TaggedByID: userID,
	}
	if err := fc.repo.CreatePlayTag(c.Request.Context(), &tag); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create tag: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tag created successfully", tag)
}

// GetGameTags godoc
// @Summary List a game's tags
// @Tags Film
// @Produce json
// @Param game_id path int true "Game ID"
// @Success 200 {object} responses.SuccessResponse{data=[]PlayTag}
// @Security ApiKeyAuth
// @Router /games/{game_id}/tags [get]
func (fc *FilmController) GetGameTags(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	game, ok := fc.staffGame(c, userID)
	if !ok {
		return
	}
	tags, err := fc.repo.GetTagsByGameID(c.Request.Context(), game.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve tags: "+err.Error())
		return
	}
	if tags == nil {
		tags = []PlayTag{}
	}
	responses.SendSuccess(c, http.StatusOK, "Tags retrieved successfully", tags)
}

// GetPlayTags godoc
// @Summary Find a play on film
// @Description Lists every tag of the play's code in the team's games. Personal plays have no film.
// @Tags Film
// @Produce json
// @Param play_id path int true "Play ID"
// @Success 200 {object} responses.SuccessResponse{data=[]PlayTag}
// @Failure 404 {object} responses.ErrorResponse "Play not found"
// @Security ApiKeyAuth
// @Router /plays/{play_id}/tags [get]
func (fc *FilmController) GetPlayTags(c *gin.Context) {
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

	play, err := fc.plays.GetPlay(c.Request.Context(), uint(playID), userID)
	if err != nil {
		playbook.SendServiceError(c, "retrieve play", err)
		return
	}

	tags := []PlayTag{}
	if play.TeamID != nil {
		tags, err = fc.repo.GetTagsByPlayCode(c.Request.Context(), *play.TeamID, play.Code)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve tags: "+err.Error())
			return
		}
		if tags == nil {
			tags = []PlayTag{}
		}
	}
	responses.SendSuccess(c, http.StatusOK, "Tags retrieved successfully", tags)
}
