package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/authz"
	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/config"
	"github.com/gridpeak/voltra/internal/identity"
	plantdomain "github.com/gridpeak/voltra/internal/plant/domain"
	"github.com/gridpeak/voltra/internal/plantevent/domain"
	"github.com/gridpeak/voltra/internal/simulation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	DB        *gorm.DB
	Repo      domain.Repository
	PlantRepo plantdomain.Repository
	PlantSvc  plantdomain.Service
	Authz     authz.Service
	Clock     clock.Clock
	Trigger   simulation.Trigger
	Config    config.Config
}

type service struct {
	log        *zap.Logger
	db         *gorm.DB
	repo       domain.Repository
	plantRepo  plantdomain.Repository
	plantSvc   plantdomain.Service
	authz      authz.Service
	clock      clock.Clock
	trigger    simulation.Trigger
	triggerTTL time.Duration
	genID      *snowflake.Node
}

func NewService(p Params, genID *snowflake.Node) domain.Service {
	return &service{
		log:        p.Log.Named("plantevent.service"),
		db:         p.DB,
		repo:       p.Repo,
		plantRepo:  p.PlantRepo,
		plantSvc:   p.PlantSvc,
		authz:      p.Authz,
		clock:      p.Clock,
		trigger:    p.Trigger,
		triggerTTL: p.Config.SimulationTimeout,
		genID:      genID,
	}
}

func (s *service) Start(ctx context.Context, actor identity.Identity, req domain.StartEventRequest) (*domain.EventResponse, error) {
	if !domain.ValidEventType(req.EventType) {
		return nil, domain.ErrInvalidEventType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, domain.ErrInvalidReason
	}
	if req.AffectedCapacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	plant, err := s.plantSvc.Resolve(ctx, req.PowerPlantID)
	if err != nil {
		return nil, err
	}
	if scope := authz.ScopeFor(actor); scope.Restricted() && !scope.PermitsOrg(plant.OrganizationID) {
		return nil, plantdomain.ErrNotFound
	}
	if err := s.authz.Authorize(ctx, actor, authz.ObjectPlantEvent, authz.ActionCreate); err != nil {
		return nil, err
	}
	// The open-event check runs before the capacity bound so a racing or
	// repeated start reports the conflict, not a validation error. The
	// guarded insert below re-checks it atomically.
	open, err := s.repo.HasOpen(ctx, plant.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, domain.ErrOpenEventExists
	}
	if req.AffectedCapacity > plant.InstalledCapacity {
		return nil, domain.ErrCapacityExceeded
	}

	event := domain.PlantEvent{
		ID:               s.genID.Generate(),
		EventType:        req.EventType,
		Reason:           strings.TrimSpace(req.Reason),
		Description:      strings.TrimSpace(req.Description),
		AffectedCapacity: req.AffectedCapacity,
		StartTime:        s.clock.Now().UTC(),
		PowerPlantID:     plant.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := s.repo.WithTx(tx).CreateIfNoOpen(ctx, event)
		if err != nil {
			return err
		}
		if !inserted {
			return domain.ErrOpenEventExists
		}
		return s.plantRepo.WithTx(tx).UpdateStatus(ctx, plant.ID, event.EventType)
	})
	if err != nil {
		return nil, err
	}

	s.recompute(ctx)
	return toResponse(event), nil
}

func (s *service) Finish(ctx context.Context, actor identity.Identity, eventID snowflake.ID) (*domain.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.authz.Authorize(ctx, actor, authz.ObjectPlantEvent, authz.ActionFinish); err != nil {
		return nil, err
	}
	plant, err := s.plantSvc.Resolve(ctx, event.PowerPlantID)
	if err != nil {
		return nil, err
	}
	if scope := authz.ScopeFor(actor); scope.Restricted() && !scope.PermitsOrg(plant.OrganizationID) {
		return nil, domain.ErrNotFound
	}
	if event.EndTime != nil {
		return nil, domain.ErrAlreadyConcluded
	}

	endTime := s.clock.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		closed, err := s.repo.WithTx(tx).Close(ctx, event.ID, endTime)
		if err != nil {
			return err
		}
		if !closed {
			return domain.ErrAlreadyConcluded
		}
		return s.plantRepo.WithTx(tx).UpdateStatus(ctx, plant.ID, plantdomain.StatusActive)
	})
	if err != nil {
		return nil, err
	}

	s.recompute(ctx)
	event.EndTime = &endTime
	return toResponse(*event), nil
}

func (s *service) List(ctx context.Context, actor identity.Identity, powerPlantID *snowflake.ID) ([]domain.EventResponse, error) {
	scope := authz.ScopeFor(actor)

	var filter domain.ListFilter
	if powerPlantID != nil {
		plant, err := s.plantSvc.Resolve(ctx, *powerPlantID)
		if err != nil {
			return nil, err
		}
		if scope.Restricted() && !scope.PermitsOrg(plant.OrganizationID) {
			return nil, plantdomain.ErrNotFound
		}
		filter.PlantID = powerPlantID
	} else if scope.Restricted() {
		orgID := scope.OrgID()
		filter.OrganizationID = &orgID
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, *toResponse(event))
	}
	return resp, nil
}

// recompute invokes the simulation trigger after a committed transition. One
// bounded attempt; failure is logged and swallowed because the transition it
// follows has already succeeded and must not be undone.
func (s *service) recompute(ctx context.Context) {
	triggerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.triggerTTL)
	defer cancel()

	if err := s.trigger.Recompute(triggerCtx); err != nil {
		s.log.Warn("hourly energy recompute failed", zap.Error(err))
	}
}

func toResponse(event domain.PlantEvent) *domain.EventResponse {
	resp := &domain.EventResponse{
		ID:               event.ID.String(),
		EventType:        event.EventType,
		Reason:           event.Reason,
		Description:      event.Description,
		AffectedCapacity: event.AffectedCapacity,
		StartTime:        event.StartTime.Format(time.RFC3339),
		PowerPlantID:     event.PowerPlantID.String(),
		Status:           domain.StatusOngoing,
	}
	if event.EndTime != nil {
		end := event.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
		resp.Status = domain.StatusCompleted
	}
	return resp
}
