package service

import (
	"context"

	"github.com/gridpeak/voltra/internal/authz"
	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/generation/domain"
	"github.com/gridpeak/voltra/internal/identity"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	plantdomain "github.com/gridpeak/voltra/internal/plant/domain"
	"github.com/gridpeak/voltra/internal/timewindow"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Repo     domain.Repository
	PlantSvc plantdomain.Service
	Policy   *timewindow.Policy
	Clock    clock.Clock
}

type service struct {
	repo     domain.Repository
	plantSvc plantdomain.Service
	policy   *timewindow.Policy
	clock    clock.Clock
}

func NewService(p Params) domain.Service {
	return &service{
		repo:     p.Repo,
		plantSvc: p.PlantSvc,
		policy:   p.Policy,
		clock:    p.Clock,
	}
}

func (s *service) List(ctx context.Context, actor identity.Identity, req domain.ListRequest) ([]domain.RowResponse, error) {
	if req.Start.IsZero() || req.End.IsZero() || req.Start.After(req.End) {
		return nil, domain.ErrInvalidRange
	}

	scope := authz.ScopeFor(actor)

	filter := domain.RangeFilter{
		PlantID:        req.PowerPlantID,
		OrganizationID: req.OrganizationID,
	}
	switch {
	case req.PowerPlantID != nil:
		plant, err := s.plantSvc.Resolve(ctx, *req.PowerPlantID)
		if err != nil {
			return nil, err
		}
		if scope.Restricted() && !scope.PermitsOrg(plant.OrganizationID) {
			return nil, plantdomain.ErrNotFound
		}
	case req.OrganizationID != nil:
		if scope.Restricted() && !scope.PermitsOrg(*req.OrganizationID) {
			return nil, orgdomain.ErrNotFound
		}
	case scope.Restricted():
		orgID := scope.OrgID()
		filter.OrganizationID = &orgID
	}

	window, ok := s.policy.Clamp(timewindow.FeedRealtimeGeneration, req.Start, req.End, s.clock.Now())
	if !ok {
		// The entire request is ahead of the visibility limit; serve an
		// empty result without a store read.
		return []domain.RowResponse{}, nil
	}
	filter.Start = window.Start
	filter.End = window.End

	rows, err := s.repo.ListRange(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, domain.RowResponse{
			ID:                   row.ID.String(),
			Timestamp:            row.Timestamp,
			ActualGeneration:     row.ActualGeneration,
			PlannedGeneration:    row.PlannedGeneration,
			SettlementGeneration: row.SettlementGeneration,
			PowerPlantID:         row.PowerPlantID.String(),
			PlantName:            row.PlantName,
			EIC:                  row.EIC,
			FuelType:             row.FuelType,
		})
	}
	return resp, nil
}
