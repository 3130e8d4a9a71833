package formation

import (
	"net/http"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
	"github.com/DhavalSuthar-24/gridiron/pkg/responses"
	"github.com/gin-gonic/gin"
)

// FormationController serves the read-only formation catalog.
type FormationController struct {
	catalog *Catalog
}

func NewFormationController(catalog *Catalog) *FormationController {
	return &FormationController{catalog: catalog}
}

// SlotView is a template slot with its display group.
type SlotView struct {
	diagram.FormationSlot
	Group diagram.PositionGroup `json:"group"`
}

// ListFormations godoc
// @Summary List formations
// @Description Lists formation names for a category.
// @Tags Formations
// @Produce json
// @Param odk query string true "offense, defense or specialTeams"
// @Success 200 {object} responses.SuccessResponse{data=[]string}
// @Failure 400 {object} responses.ErrorResponse "Invalid category"
// @Router /formations [get]
func (fc *FormationController) ListFormations(c *gin.Context) {
	odk := diagram.ODK(c.Query("odk"))
	if !odk.Valid() {
		responses.BadRequest(c, "odk must be one of offense, defense, specialTeams")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formations retrieved successfully", fc.catalog.Names(odk))
}

// GetFormation godoc
// @Summary Get a formation template
// @Tags Formations
// @Produce json
// @Param odk path string true "Category"
// @Param name path string true "Formation name"
// @Success 200 {object} responses.SuccessResponse{data=[]SlotView}
// @Failure 404 {object} responses.ErrorResponse "Formation not found"
// @Router /formations/{odk}/{name} [get]
func (fc *FormationController) GetFormation(c *gin.Context) {
	slots, ok := fc.catalog.Formation(diagram.ODK(c.Param("odk")), c.Param("name"))
	if !ok {
		responses.NotFound(c, "Formation")
		return
	}
	views := make([]SlotView, len(slots))
	for i, s := range slots {
		views[i] = SlotView{FormationSlot: s, Group: diagram.GroupForPosition(s.Position)}
	}
	responses.SendSuccess(c, http.StatusOK, "Formation retrieved successfully", views)
}
