package team

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/gridiron/config"
	"github.com/DhavalSuthar-24/gridiron/internal/middleware"
	"github.com/DhavalSuthar-24/gridiron/pkg/responses"
	"github.com/gin-gonic/gin"
)

const (
	RoleHeadCoach      = "head_coach"
	RoleCoordinator    = "coordinator"
	RoleAssistantCoach = "assistant_coach"
	RoleAnalyst        = "analyst"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	repo      TeamRepository
	appConfig *config.Config
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, appConfig *config.Config) *TeamController {
	return &TeamController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// isStaffManager reports whether the user may change the team's staff.
func (tc *TeamController) isStaffManager(c *gin.Context, team *Team, userID string) (bool, error) {
	if team.CreatedByID == userID {
		return true, nil
	}
	member, err := tc.repo.GetTeamMember(c.Request.Context(), team.ID, userID)
	if err != nil {
		return false, err
	}
	if member == nil || !member.IsActive {
		return false, nil
	}
	return member.Role == RoleHeadCoach || member.Role == RoleCoordinator, nil
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Level       string `json:"level" binding:"omitempty,oneof=youth high_school college pro"`
	Logo        string `json:"logo"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,max=64"`
	Role   string `json:"role" binding:"omitempty,oneof=head_coach coordinator assistant_coach analyst"`
}

// --- Team Handlers ---

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a new team with the authenticated user as head coach.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	team := Team{
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
		Logo:        req.Logo,
		CreatedByID: userID,
	}

	// Use a transaction to create team and initial member
	err = tc.repo.WithTransaction(c.Request.Context(), func(repo TeamRepository) error {
		if err := repo.CreateTeam(c.Request.Context(), &team); err != nil {
			return err
		}
		return repo.AddTeamMember(c.Request.Context(), &TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			Role:     RoleHeadCoach,
			JoinedAt: time.Now(),
			IsActive: true,
		})
	})
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create team: "+err.Error())
		return
	}

	createdTeam, err := tc.repo.GetTeamByID(c.Request.Context(), team.ID)
	if err != nil || createdTeam == nil {
		createdTeam = &team
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", createdTeam)
}

// GetTeamByID godoc
// @Summary Get a team
// @Description Returns a team and its active staff. Only staff may view it.
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse "Not a member"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	team, err := tc.repo.GetTeamByID(c.Request.Context(), uint(teamID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve team: "+err.Error())
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	isMember, err := tc.repo.IsUserTeamMember(c.Request.Context(), team.ID, userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check membership: "+err.Error())
		return
	}
	if !isMember {
		responses.Forbidden(c, "Only team staff can view this team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", team)
}

// GetMyTeams godoc
// @Summary List my teams
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /users/me/teams [get]
func (tc *TeamController) GetMyTeams(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, limit := pageParams(c)
	teams, total, err := tc.repo.GetTeamsByUserID(c.Request.Context(), userID, page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve your teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Your teams retrieved successfully", teams, total, page, limit)
}

// AddTeamMember godoc
// @Summary Add a coach to the staff
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param member body AddMemberRequest true "Member"
// @Success 201 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 403 {object} responses.ErrorResponse "Not a staff manager"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members [post]
func (tc *TeamController) AddTeamMember(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Role == "" {
		req.Role = RoleAssistantCoach
	}

	team, err := tc.repo.GetTeamByID(c.Request.Context(), uint(teamID))
	if err != nil || team == nil {
		responses.NotFound(c, "Team")
		return
	}

	allowed, err := tc.isStaffManager(c, team, userID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check permissions: "+err.Error())
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only the head coach or a coordinator can add staff")
		return
	}

	member := TeamMember{
		TeamID:   team.ID,
		UserID:   req.UserID,
		Role:     req.Role,
		JoinedAt: time.Now(),
		IsActive: true,
	}
	if err := tc.repo.AddTeamMember(c.Request.Context(), &member); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to add member: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Member added successfully", member)
}

// RemoveTeamMember godoc
// @Summary Remove a coach from the staff
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Not a staff manager"
// @Failure 404 {object} responses.ErrorResponse "Member not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members/{user_id} [delete]
func (tc *TeamController) RemoveTeamMember(c *gin.Context) {
	currentUserID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}
	memberUserID := c.Param("user_id")

	team, err := tc.repo.GetTeamByID(c.Request.Context(), uint(teamID))
	if err != nil || team == nil {
		responses.NotFound(c, "Team")
		return
	}

	// Coaches may always leave on their own.
	if memberUserID != currentUserID {
		allowed, err := tc.isStaffManager(c, team, currentUserID)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to check permissions: "+err.Error())
			return
		}
		if !allowed {
			responses.Forbidden(c, "Only the head coach or a coordinator can remove staff")
			return
		}
	}
	if team.CreatedByID == memberUserID {
		responses.Forbidden(c, "The team creator cannot be removed")
		return
	}

	memberToRemove, err := tc.repo.GetTeamMember(c.Request.Context(), team.ID, memberUserID)
	if err != nil || memberToRemove == nil || !memberToRemove.IsActive {
		responses.SendError(c, http.StatusNotFound, "Member not found in this team or already inactive")
		return
	}

	if err := tc.repo.RemoveTeamMember(c.Request.Context(), team.ID, memberUserID); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to remove member: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed (deactivated) successfully", nil)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
