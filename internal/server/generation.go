package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gendomain "github.com/gridpeak/voltra/internal/generation/domain"
)

func (s *Server) ListRealtimeGeneration(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	start, end, err := timeRangeParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	plantID, err := optionalIDParam(c, "power_plant_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	orgID, err := optionalIDParam(c, "organization_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := s.generationSvc.List(c.Request.Context(), actor, gendomain.ListRequest{
		Start:          start,
		End:            end,
		PowerPlantID:   plantID,
		OrganizationID: orgID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generation": rows})
}
