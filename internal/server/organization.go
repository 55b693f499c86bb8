package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
)

type createOrganizationRequest struct {
	Name string `json:"name"`
	EIC  string `json:"eic"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Create(c.Request.Context(), orgdomain.CreateOrganizationRequest{
		Name: req.Name,
		EIC:  req.EIC,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (s *Server) ListOrganizations(c *gin.Context) {
	orgs, err := s.organizationSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}
