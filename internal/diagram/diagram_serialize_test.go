package diagram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	e := newTestEditor()
	e.LoadFormation(ODKOffense, "Pro")
	e.SetPlayType(PlayTypePass)
	drawRoute(t, e, "offense-2", "Slant", Point{X: 120, Y: 150}, Point{X: 200, Y: 100})

	attrs := PlayAttributes{
		ODK:       ODKOffense,
		Formation: "Pro",
		Offense:   &OffenseAttributes{PlayType: PlayTypePass, Personnel: "11"},
	}
	d, gotAttrs, err := e.Serialize(attrs)
	require.NoError(t, err)

	assert.Equal(t, attrs, gotAttrs)
	assert.Equal(t, ODKOffense, d.ODK)
	assert.Equal(t, "Pro", d.Formation)
	require.Len(t, d.Players, 4)
	assert.Equal(t, PlayerPosition{Position: "X", X: 80, Y: 200, Label: "X"}, d.Players[2])
	require.Len(t, d.Routes, 1)
	assert.Equal(t, DiagramRoute{
		ID:        "route-1",
		PlayerID:  "offense-2",
		Points:    []Point{{X: 80, Y: 200}, {X: 120, Y: 150}, {X: 200, Y: 100}},
		Type:      CoarsePass,
		RouteType: "Slant",
	}, d.Routes[0])
}

func TestSerialize_FillsFromEditor(t *testing.T) {
	e := newTestEditor()
	e.LoadFormation(ODKDefense, "4-3")

	d, attrs, err := e.Serialize(PlayAttributes{})
	require.NoError(t, err)
	assert.Equal(t, ODKDefense, attrs.ODK)
	assert.Equal(t, ODKDefense, d.ODK)
	assert.Equal(t, "4-3", d.Formation)
	assert.NotNil(t, d.Routes)
}

func TestSerialize_RejectsMismatchedAttributes(t *testing.T) {
	e := newTestEditor()
	e.LoadFormation(ODKOffense, "Pro")
	e.SetPlayType(PlayTypeRun)
	drawRoute(t, e, "offense-1", "Dive", Point{X: 350, Y: 220}, Point{X: 355, Y: 180})

	tests := []struct {
		name  string
		attrs PlayAttributes
	}{
		{name: "other category", attrs: PlayAttributes{ODK: ODKDefense, Formation: "Pro", Defense: &DefenseAttributes{}}},
		{name: "other formation", attrs: PlayAttributes{ODK: ODKOffense, Formation: "Shotgun"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.Serialize(tt.attrs)
			assert.ErrorIs(t, err, ErrAttributesMismatch)
		})
	}

	// Matching attributes keep every route across a restore.
	d, attrs, err := e.Serialize(PlayAttributes{ODK: ODKOffense, Formation: "pro"})
	require.NoError(t, err)
	assert.Equal(t, ODKOffense, d.ODK)
	assert.Equal(t, "Pro", d.Formation)
	assert.Equal(t, "pro", attrs.Formation)

	restored := newTestEditor()
	restored.Restore(d)
	require.Len(t, restored.Routes(), 1)
	assert.Equal(t, "offense-1", restored.Routes()[0].PlayerID)
}

func TestSerialize_FillsPlayTypeFromEditor(t *testing.T) {
	e := newTestEditor()
	e.LoadFormation(ODKOffense, "Pro")
	e.SetPlayType(PlayTypeRun)
	drawRoute(t, e, "offense-1", "Dive", Point{X: 350, Y: 220}, Point{X: 355, Y: 180})

	given := &OffenseAttributes{Personnel: "21"}
	d, attrs, err := e.Serialize(PlayAttributes{ODK: ODKOffense, Formation: "Pro", Offense: given})
	require.NoError(t, err)
	require.NotNil(t, attrs.Offense)
	assert.Equal(t, PlayTypeRun, attrs.Offense.PlayType)
	assert.Equal(t, "21", attrs.Offense.Personnel)
	assert.Empty(t, given.PlayType, "caller's attributes are not modified")
	require.Len(t, d.Routes, 1)
	assert.Equal(t, CoarseRun, d.Routes[0].Type)

	_, attrs, err = e.Serialize(PlayAttributes{ODK: ODKOffense, Formation: "Pro", Offense: &OffenseAttributes{PlayType: PlayTypePass}})
	require.NoError(t, err)
	assert.Equal(t, PlayTypePass, attrs.Offense.PlayType, "an explicit play type wins")
}

func TestSerialize_JSONShape(t *testing.T) {
	e := newTestEditor()
	e.LoadFormation(ODKOffense, "Pro")
	e.SetPlayType(PlayTypeRun)
	drawRoute(t, e, "offense-1", "Dive", Point{X: 350, Y: 220})

	d, _, err := e.Serialize(PlayAttributes{ODK: ODKOffense, Formation: "Pro", Offense: &OffenseAttributes{PlayType: PlayTypeRun}})
	require.NoError(t, err)
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	routes := generic["routes"].([]interface{})
	route := routes[0].(map[string]interface{})
	assert.Equal(t, "offense-1", route["playerId"])
	assert.Equal(t, "run", route["type"])
	assert.Equal(t, "Dive", route["routeType"])

	player := generic["players"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, player, "id")
	assert.NotContains(t, player, "side")
}

func TestRestore_RoundTrip(t *testing.T) {
	e := newTestEditor()
	e.LoadFormation(ODKOffense, "Pro")
	e.SetPlayType(PlayTypePass)
	require.NoError(t, e.DragToken("offense-2", 60, 205))
	drawRoute(t, e, "offense-2", "Go", Point{X: 60, Y: 20})
	drawRoute(t, e, "offense-1", "Wheel", Point{X: 420, Y: 260}, Point{X: 450, Y: 120})

	d, _, err := e.Serialize(PlayAttributes{ODK: ODKOffense, Formation: "Pro"})
	require.NoError(t, err)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	var stored PlayDiagram
	require.NoError(t, json.Unmarshal(raw, &stored))

	restored := newTestEditor()
	restored.Restore(stored)

	require.Len(t, restored.Tokens(), len(e.Tokens()))
	for i, tok := range restored.Tokens() {
		orig := e.Tokens()[i]
		assert.Equal(t, orig.Position, tok.Position)
		assert.Equal(t, orig.X, tok.X)
		assert.Equal(t, orig.Y, tok.Y)
		assert.Equal(t, orig.Label, tok.Label)
	}
	require.Len(t, restored.Routes(), len(e.Routes()))
	for i, r := range restored.Routes() {
		orig := e.Routes()[i]
		assert.Equal(t, orig.Points, r.Points)
		assert.Equal(t, orig.Assignment, r.Assignment)
		assert.Equal(t, orig.PlayerID, r.PlayerID)
	}
	assert.Equal(t, StateFormationLoaded, restored.State())
	assert.Equal(t, "Pro", restored.FormationName())
}

func TestRestore_DropsBrokenRoutes(t *testing.T) {
	e := newTestEditor()
	e.Restore(PlayDiagram{
		ODK:       ODKOffense,
		Formation: "Pro",
		Players:   []PlayerPosition{{Position: "QB", X: 1, Y: 1, Label: "QB"}},
		Routes: []DiagramRoute{
			{ID: "a", PlayerID: "offense-0", Points: []Point{{X: 1, Y: 1}}},
			{ID: "b", PlayerID: "offense-7", Points: []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}},
			{PlayerID: "offense-0", Points: []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, RouteType: "Sneak"},
		},
	})

	routes := e.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "route-1", routes[0].ID)
	assert.Equal(t, "Sneak", routes[0].Assignment)
}
