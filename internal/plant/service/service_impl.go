package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/authz"
	"github.com/gridpeak/voltra/internal/identity"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	"github.com/gridpeak/voltra/internal/plant/domain"
	"github.com/gridpeak/voltra/pkg/db"
	"gorm.io/gorm"
)

type service struct {
	repo   domain.Repository
	orgSvc orgdomain.Service
	genID  *snowflake.Node
}

func NewService(repo domain.Repository, orgSvc orgdomain.Service, genID *snowflake.Node) domain.Service {
	return &service{repo: repo, orgSvc: orgSvc, genID: genID}
}

func (s *service) Create(ctx context.Context, req domain.CreatePlantRequest) (*domain.PlantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	eic := strings.TrimSpace(req.EIC)
	if eic == "" {
		return nil, domain.ErrInvalidEIC
	}
	if req.InstalledCapacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	org, err := s.orgSvc.ResolveByName(ctx, req.OrganizationName)
	if err != nil {
		return nil, err
	}

	plant := domain.PowerPlant{
		ID:                s.genID.Generate(),
		Name:              name,
		EIC:               eic,
		InstalledCapacity: req.InstalledCapacity,
		FuelType:          strings.TrimSpace(req.FuelType),
		IsYekdem:          req.IsYekdem,
		IsRes:             req.IsRes,
		CurrentStatus:     domain.StatusActive,
		OrganizationID:    org.ID,
	}

	if err := s.repo.Create(ctx, plant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	return toResponse(plant), nil
}

func (s *service) List(ctx context.Context, actor identity.Identity, organizationID *snowflake.ID) ([]domain.PlantResponse, error) {
	scope := authz.ScopeFor(actor)

	var (
		plants []domain.PowerPlant
		err    error
	)
	switch {
	case scope.Restricted():
		// An explicit organization filter is only honored when it names the
		// caller's own tenant; anything else is reported as missing.
		if organizationID != nil && !scope.PermitsOrg(*organizationID) {
			return nil, orgdomain.ErrNotFound
		}
		plants, err = s.repo.ListByOrganization(ctx, scope.OrgID())
	case organizationID != nil:
		plants, err = s.repo.ListByOrganization(ctx, *organizationID)
	default:
		plants, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PlantResponse, 0, len(plants))
	for _, plant := range plants {
		resp = append(resp, *toResponse(plant))
	}
	return resp, nil
}

func (s *service) Resolve(ctx context.Context, id snowflake.ID) (*domain.PowerPlant, error) {
	plant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return plant, nil
}

func toResponse(plant domain.PowerPlant) *domain.PlantResponse {
	return &domain.PlantResponse{
		ID:                plant.ID.String(),
		Name:              plant.Name,
		EIC:               plant.EIC,
		InstalledCapacity: plant.InstalledCapacity,
		FuelType:          plant.FuelType,
		IsYekdem:          plant.IsYekdem,
		IsRes:             plant.IsRes,
		CurrentStatus:     plant.CurrentStatus,
		OrganizationID:    plant.OrganizationID.String(),
	}
}
