package authz

import (
	"context"
	_ "embed"
	"errors"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/gridpeak/voltra/internal/identity"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectOrganization = "organization"
	ObjectUser         = "user"
	ObjectPlant        = "plant"
	ObjectPlantEvent   = "plant_event"
	ObjectGeneration   = "generation"
	ObjectMarketFeed   = "market_feed"
)

const (
	ActionCreate = "create"
	ActionView   = "view"
	ActionFinish = "finish"
)

var ErrForbidden = errors.New("forbidden")

// Service answers whether a role may perform an action on an object class.
// Tenant scoping is a separate concern; see Scope.
type Service interface {
	Authorize(ctx context.Context, actor identity.Identity, object, action string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authz.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor identity.Identity, object, action string) error {
	_ = ctx
	if !actor.Role.Valid() {
		return ErrForbidden
	}

	allowed, err := s.enforcer.Enforce(subjectFor(actor.Role), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", string(actor.Role)),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func subjectFor(role identity.Role) string {
	return "role:" + string(role)
}

// seedPolicies installs the role capability matrix. The role hierarchy is
// expressed through grouping links: super_admin inherits admin, admin
// inherits analyst.
func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:analyst", ObjectPlant, ActionView},
		{"role:analyst", ObjectPlantEvent, ActionView},
		{"role:analyst", ObjectGeneration, ActionView},
		{"role:analyst", ObjectMarketFeed, ActionView},

		{"role:admin", ObjectPlantEvent, ActionCreate},
		{"role:admin", ObjectPlantEvent, ActionFinish},

		{"role:super_admin", ObjectOrganization, ActionCreate},
		{"role:super_admin", ObjectOrganization, ActionView},
		{"role:super_admin", ObjectUser, ActionCreate},
		{"role:super_admin", ObjectUser, ActionView},
		{"role:super_admin", ObjectPlant, ActionCreate},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	groupings := [][]string{
		{"role:super_admin", "role:admin"},
		{"role:admin", "role:analyst"},
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	return nil
}

var Module = fx.Module("authz",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)
