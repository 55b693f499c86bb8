package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/gridpeak/voltra/internal/identity"
	"github.com/gridpeak/voltra/internal/migration"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	orgrepository "github.com/gridpeak/voltra/internal/organization/repository"
	orgservice "github.com/gridpeak/voltra/internal/organization/service"
	"github.com/gridpeak/voltra/internal/user/domain"
	"github.com/gridpeak/voltra/internal/user/repository"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) (domain.Service, orgdomain.Service) {
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
	if err := migration.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	orgSvc := orgservice.NewService(orgrepository.NewRepository(db), node)
	return NewService(repository.NewRepository(db), orgSvc, node), orgSvc
}

func createOrgForUsers(t *testing.T, orgSvc orgdomain.Service) snowflake.ID {
	t.Helper()
	org, err := orgSvc.Create(context.Background(), orgdomain.CreateOrganizationRequest{
		Name: "Aydem",
		EIC:  "40X000000000001A",
	})
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	id, err := snowflake.ParseString(org.ID)
	if err != nil {
		t.Fatalf("parse org id: %v", err)
	}
	return id
}

func TestCreateUser(t *testing.T) {
	svc, orgSvc := setupUserService(t)
	ctx := context.Background()
	orgID := createOrgForUsers(t, orgSvc)

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Username:       "grid.op",
		Password:       "s3cret",
		Role:           identity.RoleAnalyst,
		OrganizationID: orgID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Username != "grid.op" || user.Role != identity.RoleAnalyst {
		t.Fatalf("unexpected response: %+v", user)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc, orgSvc := setupUserService(t)
	ctx := context.Background()
	orgID := createOrgForUsers(t, orgSvc)

	if _, err := svc.Create(ctx, domain.CreateUserRequest{Password: "x", Role: identity.RoleAnalyst, OrganizationID: orgID}); !errors.Is(err, domain.ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateUserRequest{Username: "a", Role: identity.RoleAnalyst, OrganizationID: orgID}); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateUserRequest{Username: "a", Password: "x", Role: identity.Role("operator"), OrganizationID: orgID}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestCreateUserUnknownOrganization(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Username:       "grid.op",
		Password:       "s3cret",
		Role:           identity.RoleAdmin,
		OrganizationID: snowflake.ID(404),
	})
	if !errors.Is(err, orgdomain.ErrNotFound) {
		t.Fatalf("expected organization ErrNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, orgSvc := setupUserService(t)
	ctx := context.Background()
	orgID := createOrgForUsers(t, orgSvc)

	req := domain.CreateUserRequest{
		Username:       "grid.op",
		Password:       "s3cret",
		Role:           identity.RoleAdmin,
		OrganizationID: orgID,
	}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
