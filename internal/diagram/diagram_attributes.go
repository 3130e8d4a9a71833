package diagram

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DhavalSuthar-24/gridiron/pkg/validator"
)

const (
	PlayTypeRun        = "Run"
	PlayTypePass       = "Pass"
	PlayTypeRPO        = "RPO"
	PlayTypePlayAction = "Play Action"
	PlayTypeScreen     = "Screen"
)

var ErrAttributesMismatch = errors.New("attributes carry fields for a different odk")

// OffenseAttributes are only meaningful when odk is offense.
type OffenseAttributes struct {
	PlayType    string `json:"playType,omitempty" validate:"omitempty,oneof=Run Pass RPO 'Play Action' Screen"`
	Personnel   string `json:"personnel,omitempty" validate:"omitempty,max=10"`
	RunConcept  string `json:"runConcept,omitempty" validate:"omitempty,max=100"`
	PassConcept string `json:"passConcept,omitempty" validate:"omitempty,max=100"`
	Protection  string `json:"protection,omitempty" validate:"omitempty,max=100"`
	Motion      string `json:"motion,omitempty" validate:"omitempty,max=100"`
}

// DefenseAttributes are only meaningful when odk is defense.
type DefenseAttributes struct {
	Front     string `json:"front,omitempty" validate:"omitempty,max=100"`
	Coverage  string `json:"coverage,omitempty" validate:"omitempty,max=100"`
	BlitzType string `json:"blitzType,omitempty" validate:"omitempty,max=100"`
	Stunt     string `json:"stunt,omitempty" validate:"omitempty,max=100"`
	Pressure  string `json:"pressure,omitempty" validate:"omitempty,max=100"`
}

// SpecialTeamsAttributes are only meaningful when odk is specialTeams.
type SpecialTeamsAttributes struct {
	Unit       string `json:"unit,omitempty" validate:"omitempty,oneof=Kickoff 'Kick Return' Punt 'Punt Return' 'Field Goal' PAT"`
	KickType   string `json:"kickType,omitempty" validate:"omitempty,max=100"`
	ReturnType string `json:"returnType,omitempty" validate:"omitempty,max=100"`
}

// PlayAttributes is a tagged union discriminated by ODK. On the wire the
// common fields and the active variant's fields share one flat object.
type PlayAttributes struct {
	ODK       ODK    `json:"odk" validate:"required,oneof=offense defense specialTeams"`
	Formation string `json:"formation" validate:"required,max=100"`

	Offense      *OffenseAttributes      `json:"-"`
	Defense      *DefenseAttributes      `json:"-"`
	SpecialTeams *SpecialTeamsAttributes `json:"-"`
}

type attributesHeader struct {
	ODK       ODK    `json:"odk"`
	Formation string `json:"formation"`
}

// PlayType returns the offensive play type, empty for other categories.
func (a PlayAttributes) PlayType() string {
	if a.ODK == ODKOffense && a.Offense != nil {
		return a.Offense.PlayType
	}
	return ""
}

// Validate checks the common fields, the active variant, and that no other
// variant is populated.
func (a PlayAttributes) Validate() error {
	if err := validator.ValidateStruct(a); err != nil {
		return err
	}
	var mismatch bool
	switch a.ODK {
	case ODKOffense:
		mismatch = a.Defense != nil || a.SpecialTeams != nil
	case ODKDefense:
		mismatch = a.Offense != nil || a.SpecialTeams != nil
	case ODKSpecialTeams:
		mismatch = a.Offense != nil || a.Defense != nil
	}
	if mismatch {
		return fmt.Errorf("%w: %s", ErrAttributesMismatch, a.ODK)
	}
	return nil
}

func (a PlayAttributes) MarshalJSON() ([]byte, error) {
	h := attributesHeader{ODK: a.ODK, Formation: a.Formation}
	switch a.ODK {
	case ODKOffense:
		return json.Marshal(struct {
			attributesHeader
			*OffenseAttributes
		}{h, a.Offense})
	case ODKDefense:
		return json.Marshal(struct {
			attributesHeader
			*DefenseAttributes
		}{h, a.Defense})
	case ODKSpecialTeams:
		return json.Marshal(struct {
			attributesHeader
			*SpecialTeamsAttributes
		}{h, a.SpecialTeams})
	}
	return json.Marshal(h)
}

func (a *PlayAttributes) UnmarshalJSON(data []byte) error {
	var h attributesHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	*a = PlayAttributes{ODK: h.ODK, Formation: h.Formation}

	switch h.ODK {
	case ODKOffense:
		a.Offense = &OffenseAttributes{}
		return json.Unmarshal(data, a.Offense)
	case ODKDefense:
		a.Defense = &DefenseAttributes{}
		return json.Unmarshal(data, a.Defense)
	case ODKSpecialTeams:
		a.SpecialTeams = &SpecialTeamsAttributes{}
		return json.Unmarshal(data, a.SpecialTeams)
	}
	return nil
}
