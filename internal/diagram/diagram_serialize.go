package diagram

import (
	"fmt"
	"slices"
	"strings"
)

// Serialize projects the editor into the stored diagram and attribute
// shapes. The diagram's category and formation always come from the
// editor, so restored token ids match the stored routes; attributes naming
// a different category or formation fail with ErrAttributesMismatch. An
// offensive play without a play type takes the editor's. Name and
// formation presence are checked by the caller.
func (e *Editor) Serialize(attrs PlayAttributes) (PlayDiagram, PlayAttributes, error) {
	odk, formation := e.odk, e.formation
	if odk == "" {
		odk, formation = attrs.ODK, attrs.Formation
	}

	switch {
	case attrs.ODK == "":
		attrs.ODK = odk
	case attrs.ODK != odk:
		return PlayDiagram{}, PlayAttributes{}, fmt.Errorf("%w: attributes are %s but the diagram is %s", ErrAttributesMismatch, attrs.ODK, odk)
	}
	switch name := strings.TrimSpace(attrs.Formation); {
	case name == "":
		attrs.Formation = formation
	case !strings.EqualFold(name, formation):
		return PlayDiagram{}, PlayAttributes{}, fmt.Errorf("%w: attributes name formation %q but the diagram is %q", ErrAttributesMismatch, attrs.Formation, formation)
	}

	if attrs.ODK == ODKOffense && e.playType != "" && (attrs.Offense == nil || attrs.Offense.PlayType == "") {
		offense := OffenseAttributes{}
		if attrs.Offense != nil {
			offense = *attrs.Offense
		}
		offense.PlayType = e.playType
		attrs.Offense = &offense
	}

	d := PlayDiagram{
		ODK:       odk,
		Formation: formation,
		Players:   make([]PlayerPosition, 0, len(e.tokens)),
		Routes:    make([]DiagramRoute, 0, len(e.routes)),
	}
	for _, t := range e.tokens {
		d.Players = append(d.Players, PlayerPosition{
			Position: t.Position,
			X:        t.X,
			Y:        t.Y,
			Label:    t.Label,
		})
	}

	coarse := CoarseFromPlayType(attrs.PlayType())
	for _, r := range e.routes {
		if len(r.Points) < 2 {
			continue
		}
		d.Routes = append(d.Routes, DiagramRoute{
			ID:        r.ID,
			PlayerID:  r.PlayerID,
			Points:    slices.Clone(r.Points),
			Type:      coarse,
			RouteType: r.Assignment,
		})
	}
	return d, attrs, nil
}

// Restore loads a stored diagram for re-editing. Token ids are re-derived
// from category and index, so stored route player ids resolve again.
// Routes pointing at a missing player or with fewer than two points are
// dropped.
func (e *Editor) Restore(d PlayDiagram) {
	side := sideFor(d.ODK)
	tokens := make([]PlayerToken, len(d.Players))
	for i, p := range d.Players {
		tokens[i] = PlayerToken{
			ID:       tokenID(d.ODK, i),
			Position: p.Position,
			X:        p.X,
			Y:        p.Y,
			Label:    p.Label,
			Side:     side,
		}
	}
	e.tokens = tokens

	e.routes = nil
	for _, r := range d.Routes {
		if len(r.Points) < 2 || e.token(r.PlayerID) == nil {
			continue
		}
		id := r.ID
		if id == "" {
			id = e.newRouteID()
		}
		e.routes = append(e.routes, Route{
			ID:         id,
			PlayerID:   r.PlayerID,
			Points:     slices.Clone(r.Points),
			Assignment: r.RouteType,
		})
	}

	e.clearPending()
	e.grabbedID = ""
	e.odk = d.ODK
	e.formation = d.Formation
	e.state = StateFormationLoaded
}
