package playbook

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"github.com/DhavalSuthar-24/gridiron/internal/testdb"
)

var integrationDB *gorm.DB

func TestMain(m *testing.M) {
	if !testdb.Enabled() {
		os.Exit(m.Run())
	}

	req := testdb.PostgresStartRequest{User: "test", Password: "test", DB: "test"}
	res, closeDB := testdb.StartPostgres(context.Background(), req)

	var err error
	integrationDB, err = testdb.Connect(res, req)
	if err != nil {
		closeDB()
		log.Fatal("failed to connect to postgres:", err)
	}

	code := m.Run()
	closeDB()
	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if integrationDB == nil {
		t.Skip("set " + testdb.EnvFlag + "=1 to run against Postgres")
	}
	testdb.Reset(t, integrationDB, &Play{})
	return integrationDB
}

func storedPlay(teamID *uint, owner, code, name string) *Play {
	return &Play{
		TeamID:     teamID,
		OwnerID:    owner,
		Code:       code,
		Name:       name,
		Attributes: datatypes.NewJSONType(offenseAttrs("Singleback")),
		Diagram:    datatypes.NewJSONType(diagram.PlayDiagram{}),
	}
}

func TestPlayRepository_RoundTripsJSONColumns(t *testing.T) {
	db := requireDB(t)
	repo := NewPlayRepository(db)
	ctx := context.Background()

	team := uint(3)
	play := storedPlay(&team, "coach-1", "P-001", "Inside Dive")
	require.NoError(t, repo.CreatePlay(ctx, play))

	got, err := repo.GetPlayByID(ctx, play.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	attrs := got.Attributes.Data()
	assert.Equal(t, diagram.ODKOffense, attrs.ODK)
	assert.Equal(t, "Singleback", attrs.Formation)
	require.NotNil(t, attrs.Offense)
	assert.Equal(t, diagram.PlayTypeRun, attrs.Offense.PlayType)

	missing, err := repo.GetPlayByID(ctx, play.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlayRepository_CodesIncludeDeletedPlays(t *testing.T) {
	db := requireDB(t)
	repo := NewPlayRepository(db)
	ctx := context.Background()

	team := uint(1)
	first := storedPlay(&team, "coach-1", "P-001", "Dive")
	second := storedPlay(&team, "coach-2", "P-002", "Power")
	personal := storedPlay(nil, "coach-1", "P-009", "Scratch")
	for _, p := range []*Play{first, second, personal} {
		require.NoError(t, repo.CreatePlay(ctx, p))
	}
	require.NoError(t, db.Delete(second).Error)

	codes, err := repo.ListCodes(ctx, Scope{TeamID: &team})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"P-001", "P-002"}, codes)
	assert.Equal(t, "P-003", NextCode(codes))

	codes, err = repo.ListCodes(ctx, Scope{OwnerID: "coach-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P-009"}, codes)

	plays, total, err := repo.ListPlays(ctx, ListFilter{Scope: Scope{TeamID: &team}, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, plays, 1)
	assert.Equal(t, "Dive", plays[0].Name)
}

func TestPlayRepository_UpdateAndArchive(t *testing.T) {
	db := requireDB(t)
	repo := NewPlayRepository(db)
	ctx := context.Background()

	play := storedPlay(nil, "coach-1", "P-001", "Dive")
	require.NoError(t, repo.CreatePlay(ctx, play))

	err := repo.UpdatePlay(ctx, play.ID, PlayUpdate{Name: "Dive Right", Attributes: offenseAttrs("I-Form")})
	require.NoError(t, err)
	got, err := repo.GetPlayByID(ctx, play.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dive Right", got.Name)
	assert.Equal(t, "P-001", got.Code)
	assert.Equal(t, "I-Form", got.Attributes.Data().Formation)

	assert.ErrorIs(t, repo.UpdatePlay(ctx, play.ID+100, PlayUpdate{Name: "x"}), ErrPlayNotFound)

	require.NoError(t, repo.SetArchived(ctx, play.ID, true))
	archived := true
	plays, _, err := repo.ListPlays(ctx, ListFilter{Scope: Scope{OwnerID: "coach-1"}, Archived: &archived, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, plays, 1)

	active := false
	plays, _, err = repo.ListPlays(ctx, ListFilter{Scope: Scope{OwnerID: "coach-1"}, Archived: &active, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, plays)

	assert.ErrorIs(t, repo.SetArchived(ctx, play.ID+100, true), ErrPlayNotFound)
}

func TestService_ConcurrentSavesGetDistinctCodes(t *testing.T) {
	db := requireDB(t)
	svc := NewService(NewPlayRepository(db), fakeMembers{})
	ctx := context.Background()

	const n = 8
	codes := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			play, err := svc.Save(ctx, SaveInput{UserID: "coach-1", Name: "Dive", Attributes: offenseAttrs("Singleback")})
			if assert.NoError(t, err) {
				codes[i] = play.Code
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
	assert.True(t, seen["P-001"])
	assert.True(t, seen["P-008"])
}
