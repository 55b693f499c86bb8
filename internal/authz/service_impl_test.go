package authz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gridpeak/voltra/internal/identity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthz(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	enforcer, err := NewEnforcer(db)
	if err != nil {
		t.Fatalf("build enforcer: %v", err)
	}
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func actorWith(role identity.Role) identity.Identity {
	return identity.Identity{UserID: 1, Role: role, OrganizationID: 2}
}

func TestCapabilityMatrix(t *testing.T) {
	svc := setupAuthz(t)
	ctx := context.Background()

	cases := []struct {
		role    identity.Role
		object  string
		action  string
		allowed bool
	}{
		{identity.RoleAnalyst, ObjectPlant, ActionView, true},
		{identity.RoleAnalyst, ObjectPlantEvent, ActionView, true},
		{identity.RoleAnalyst, ObjectGeneration, ActionView, true},
		{identity.RoleAnalyst, ObjectMarketFeed, ActionView, true},
		{identity.RoleAnalyst, ObjectPlantEvent, ActionCreate, false},
		{identity.RoleAnalyst, ObjectPlantEvent, ActionFinish, false},
		{identity.RoleAnalyst, ObjectOrganization, ActionCreate, false},
		{identity.RoleAnalyst, ObjectUser, ActionView, false},

		{identity.RoleAdmin, ObjectPlantEvent, ActionCreate, true},
		{identity.RoleAdmin, ObjectPlantEvent, ActionFinish, true},
		{identity.RoleAdmin, ObjectPlant, ActionView, true},
		{identity.RoleAdmin, ObjectOrganization, ActionCreate, false},
		{identity.RoleAdmin, ObjectUser, ActionCreate, false},
		{identity.RoleAdmin, ObjectPlant, ActionCreate, false},

		{identity.RoleSuperAdmin, ObjectOrganization, ActionCreate, true},
		{identity.RoleSuperAdmin, ObjectOrganization, ActionView, true},
		{identity.RoleSuperAdmin, ObjectUser, ActionCreate, true},
		{identity.RoleSuperAdmin, ObjectUser, ActionView, true},
		{identity.RoleSuperAdmin, ObjectPlant, ActionCreate, true},
		{identity.RoleSuperAdmin, ObjectPlantEvent, ActionCreate, true},
		{identity.RoleSuperAdmin, ObjectPlantEvent, ActionFinish, true},
		{identity.RoleSuperAdmin, ObjectMarketFeed, ActionView, true},
	}

	for _, tc := range cases {
		err := svc.Authorize(ctx, actorWith(tc.role), tc.object, tc.action)
		if tc.allowed && err != nil {
			t.Errorf("%s %s %s: expected allow, got %v", tc.role, tc.action, tc.object, err)
		}
		if !tc.allowed && !errors.Is(err, ErrForbidden) {
			t.Errorf("%s %s %s: expected ErrForbidden, got %v", tc.role, tc.action, tc.object, err)
		}
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	svc := setupAuthz(t)

	err := svc.Authorize(context.Background(), actorWith(identity.Role("operator")), ObjectPlant, ActionView)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown role, got %v", err)
	}
}
