package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	plantdomain "github.com/gridpeak/voltra/internal/plant/domain"
)

type createPlantRequest struct {
	Name              string  `json:"name"`
	EIC               string  `json:"eic"`
	InstalledCapacity float64 `json:"installed_capacity"`
	FuelType          string  `json:"fuel_type"`
	OrganizationName  string  `json:"organization_name"`
	IsYekdem          bool    `json:"is_yekdem"`
	IsRes             bool    `json:"is_res"`
}

func (s *Server) CreatePlant(c *gin.Context) {
	var req createPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	plant, err := s.plantSvc.Create(c.Request.Context(), plantdomain.CreatePlantRequest{
		Name:              req.Name,
		EIC:               req.EIC,
		InstalledCapacity: req.InstalledCapacity,
		FuelType:          req.FuelType,
		OrganizationName:  req.OrganizationName,
		IsYekdem:          req.IsYekdem,
		IsRes:             req.IsRes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plant)
}

func (s *Server) ListPlants(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	orgID, err := optionalIDParam(c, "organization_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	plants, err := s.plantSvc.List(c.Request.Context(), actor, orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plants": plants})
}
