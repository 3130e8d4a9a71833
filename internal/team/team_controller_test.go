package team

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/DhavalSuthar-24/gridiron/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	mu      sync.Mutex
	teams   map[uint]*Team
	members map[uint]map[string]*TeamMember
	nextID  uint
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   map[uint]*Team{},
		members: map[uint]map[string]*TeamMember{},
	}
}

func (f *fakeTeamRepo) CreateTeam(_ context.Context, team *Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	team.ID = f.nextID
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamRepo) GetTeamByID(_ context.Context, id uint) (*Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Members = nil
	for _, m := range f.members[id] {
		if m.IsActive {
			cp.Members = append(cp.Members, *m)
		}
	}
	return &cp, nil
}

func (f *fakeTeamRepo) GetTeamsByUserID(_ context.Context, userID string, page, limit int) ([]Team, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Team
	for id, ms := range f.members {
		if m, ok := ms[userID]; ok && m.IsActive {
			out = append(out, *f.teams[id])
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTeamRepo) AddTeamMember(_ context.Context, member *TeamMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.members[member.TeamID] == nil {
		f.members[member.TeamID] = map[string]*TeamMember{}
	}
	cp := *member
	f.members[member.TeamID][member.UserID] = &cp
	return nil
}

func (f *fakeTeamRepo) GetTeamMember(_ context.Context, teamID uint, userID string) (*TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[teamID][userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeTeamRepo) RemoveTeamMember(_ context.Context, teamID uint, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.members[teamID][userID]; ok {
		m.IsActive = false
	}
	return nil
}

func (f *fakeTeamRepo) IsUserTeamMember(_ context.Context, teamID uint, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[teamID][userID]
	return ok && m.IsActive, nil
}

func (f *fakeTeamRepo) WithTransaction(_ context.Context, txFunc func(TeamRepository) error) error {
	return txFunc(f)
}

func newTeamRouter(repo TeamRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, c.GetHeader("X-User"))
		c.Next()
	})
	TeamRoutes(api, repo, nil)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTeam_CreatorIsHeadCoach(t *testing.T) {
	repo := newFakeTeamRepo()
	r := newTeamRouter(repo)

	w := do(t, r, http.MethodPost, "/api/teams", "coach-1", CreateTeamRequest{Name: "Ridgemont Wildcats", Level: "high_school"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data Team `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "coach-1", resp.Data.CreatedByID)
	require.Len(t, resp.Data.Members, 1)
	assert.Equal(t, RoleHeadCoach, resp.Data.Members[0].Role)
}

func TestCreateTeam_Validation(t *testing.T) {
	r := newTeamRouter(newFakeTeamRepo())

	w := do(t, r, http.MethodPost, "/api/teams", "coach-1", CreateTeamRequest{Name: "AB"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/teams", "", CreateTeamRequest{Name: "Ridgemont"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetTeamByID_StaffOnly(t *testing.T) {
	repo := newFakeTeamRepo()
	r := newTeamRouter(repo)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/teams", "coach-1", CreateTeamRequest{Name: "Ridgemont"}).Code)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/teams/1", "coach-1", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/teams/1", "stranger", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/teams/99", "coach-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/teams/abc", "coach-1", nil).Code)
}

func TestMembership(t *testing.T) {
	repo := newFakeTeamRepo()
	r := newTeamRouter(repo)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/teams", "coach-1", CreateTeamRequest{Name: "Ridgemont"}).Code)

	w := do(t, r, http.MethodPost, "/api/teams/1/members", "coach-1", AddMemberRequest{UserID: "coach-2"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	ok, err := repo.IsUserTeamMember(context.Background(), 1, "coach-2")
	require.NoError(t, err)
	assert.True(t, ok)

	// Assistants can't manage staff.
	w = do(t, r, http.MethodPost, "/api/teams/1/members", "coach-2", AddMemberRequest{UserID: "coach-3"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodGet, "/api/users/me/teams", "coach-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data       []Team `json:"data"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.EqualValues(t, 1, list.Pagination.TotalItems)

	// The creator stays.
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodDelete, "/api/teams/1/members/coach-1", "coach-1", nil).Code)

	// A coach may leave.
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/teams/1/members/coach-2", "coach-2", nil).Code)
	ok, _ = repo.IsUserTeamMember(context.Background(), 1, "coach-2")
	assert.False(t, ok)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/teams/1/members/coach-2", "coach-1", nil).Code)
}
