package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/gridpeak/voltra/internal/authz"
	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/config"
	"github.com/gridpeak/voltra/internal/identity"
	"github.com/gridpeak/voltra/internal/migration"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	orgrepository "github.com/gridpeak/voltra/internal/organization/repository"
	orgservice "github.com/gridpeak/voltra/internal/organization/service"
	plantdomain "github.com/gridpeak/voltra/internal/plant/domain"
	plantrepository "github.com/gridpeak/voltra/internal/plant/repository"
	plantservice "github.com/gridpeak/voltra/internal/plant/service"
	"github.com/gridpeak/voltra/internal/plantevent/domain"
	"github.com/gridpeak/voltra/internal/plantevent/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// roleAuthz mirrors the seeded capability matrix for event mutations:
// analysts may only view.
type roleAuthz struct{}

func (roleAuthz) Authorize(_ context.Context, actor identity.Identity, _, action string) error {
	if actor.Role == identity.RoleAnalyst && action != authz.ActionView {
		return authz.ErrForbidden
	}
	return nil
}

type stubTrigger struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubTrigger) Recompute(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubTrigger) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type eventFixture struct {
	svc     domain.Service
	db      *gorm.DB
	node    *snowflake.Node
	clk     *clock.FakeClock
	trigger *stubTrigger
}

func setupEventService(t *testing.T) *eventFixture {
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
	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		t.Fatalf("set busy_timeout: %v", err)
	}
	if err := migration.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	orgSvc := orgservice.NewService(orgrepository.NewRepository(db), node)
	plantRepo := plantrepository.NewRepository(db)
	plantSvc := plantservice.NewService(plantRepo, orgSvc, node)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	trigger := &stubTrigger{}

	svc := NewService(Params{
		Log:       zap.NewNop(),
		DB:        db,
		Repo:      repository.NewRepository(db),
		PlantRepo: plantRepo,
		PlantSvc:  plantSvc,
		Authz:     roleAuthz{},
		Clock:     clk,
		Trigger:   trigger,
		Config:    config.Config{SimulationTimeout: time.Second},
	}, node)

	return &eventFixture{svc: svc, db: db, node: node, clk: clk, trigger: trigger}
}

func (f *eventFixture) createOrg(t *testing.T, name string) orgdomain.Organization {
	t.Helper()
	org := orgdomain.Organization{ID: f.node.Generate(), Name: name, EIC: "40X" + name}
	if err := f.db.Create(&org).Error; err != nil {
		t.Fatalf("create org: %v", err)
	}
	return org
}

func (f *eventFixture) createPlant(t *testing.T, orgID snowflake.ID, name string, capacity float64) plantdomain.PowerPlant {
	t.Helper()
	plant := plantdomain.PowerPlant{
		ID:                f.node.Generate(),
		Name:              name,
		EIC:               "40W" + name,
		InstalledCapacity: capacity,
		FuelType:          "hydro",
		CurrentStatus:     plantdomain.StatusActive,
		OrganizationID:    orgID,
	}
	if err := f.db.Create(&plant).Error; err != nil {
		t.Fatalf("create plant: %v", err)
	}
	return plant
}

func (f *eventFixture) plantStatus(t *testing.T, id snowflake.ID) string {
	t.Helper()
	var plant plantdomain.PowerPlant
	if err := f.db.First(&plant, "id = ?", id).Error; err != nil {
		t.Fatalf("load plant: %v", err)
	}
	return plant.CurrentStatus
}

func adminOf(orgID snowflake.ID) identity.Identity {
	return identity.Identity{UserID: 1, Role: identity.RoleAdmin, OrganizationID: orgID}
}

func analystOf(orgID snowflake.ID) identity.Identity {
	return identity.Identity{UserID: 2, Role: identity.RoleAnalyst, OrganizationID: orgID}
}

func startRequest(plantID snowflake.ID, eventType string, capacity float64) domain.StartEventRequest {
	return domain.StartEventRequest{
		PowerPlantID:     plantID,
		EventType:        eventType,
		Reason:           "unit trip",
		AffectedCapacity: capacity,
	}
}

func TestStartFinishLifecycle(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Lifecycle")
	plant := f.createPlant(t, org.ID, "Lifecycle-1", 100)
	admin := adminOf(org.ID)

	if _, err := f.svc.Start(ctx, admin, startRequest(plant.ID, domain.EventTypeFailure, 150)); !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	created, err := f.svc.Start(ctx, admin, startRequest(plant.ID, domain.EventTypeFailure, 80))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if created.Status != domain.StatusOngoing {
		t.Fatalf("expected status %q, got %q", domain.StatusOngoing, created.Status)
	}
	if got := f.plantStatus(t, plant.ID); got != plantdomain.StatusFailure {
		t.Fatalf("expected plant status Failure, got %q", got)
	}

	if _, err := f.svc.Start(ctx, admin, startRequest(plant.ID, domain.EventTypeMaintenance, 10)); !errors.Is(err, domain.ErrOpenEventExists) {
		t.Fatalf("expected ErrOpenEventExists, got %v", err)
	}

	eventID, err := snowflake.ParseString(created.ID)
	if err != nil {
		t.Fatalf("parse event id: %v", err)
	}
	f.clk.Advance(2 * time.Hour)
	finished, err := f.svc.Finish(ctx, admin, eventID)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if finished.Status != domain.StatusCompleted {
		t.Fatalf("expected status %q, got %q", domain.StatusCompleted, finished.Status)
	}
	if finished.EndTime == nil {
		t.Fatal("expected end_time to be set")
	}
	if got := f.plantStatus(t, plant.ID); got != plantdomain.StatusActive {
		t.Fatalf("expected plant status Active, got %q", got)
	}

	if _, err := f.svc.Finish(ctx, admin, eventID); !errors.Is(err, domain.ErrAlreadyConcluded) {
		t.Fatalf("expected ErrAlreadyConcluded, got %v", err)
	}
}

func TestStartCapacityBoundary(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Boundary")
	plant := f.createPlant(t, org.ID, "Boundary-1", 100)

	if _, err := f.svc.Start(ctx, adminOf(org.ID), startRequest(plant.ID, domain.EventTypeMaintenance, 100)); err != nil {
		t.Fatalf("expected start at exact capacity to succeed, got %v", err)
	}
}

func TestStartValidation(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Validation")
	plant := f.createPlant(t, org.ID, "Validation-1", 100)
	admin := adminOf(org.ID)

	if _, err := f.svc.Start(ctx, admin, startRequest(plant.ID, "Explosion", 10)); !errors.Is(err, domain.ErrInvalidEventType) {
		t.Fatalf("expected ErrInvalidEventType, got %v", err)
	}
	if _, err := f.svc.Start(ctx, admin, startRequest(plant.ID, domain.EventTypeFailure, 0)); !errors.Is(err, domain.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
	req := startRequest(plant.ID, domain.EventTypeFailure, 10)
	req.Reason = "   "
	if _, err := f.svc.Start(ctx, admin, req); !errors.Is(err, domain.ErrInvalidReason) {
		t.Fatalf("expected ErrInvalidReason, got %v", err)
	}
}

func TestStartAnalystForbidden(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Analyst")
	plant := f.createPlant(t, org.ID, "Analyst-1", 100)

	if _, err := f.svc.Start(ctx, analystOf(org.ID), startRequest(plant.ID, domain.EventTypeFailure, 10)); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestStartMissingPlantBeforeRoleCheck(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Order")

	// A missing plant must be reported before the analyst role denial.
	missing := f.node.Generate()
	if _, err := f.svc.Start(ctx, analystOf(org.ID), startRequest(missing, domain.EventTypeFailure, 10)); !errors.Is(err, plantdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStartCrossTenantConcealed(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	orgA := f.createOrg(t, "TenantA")
	orgB := f.createOrg(t, "TenantB")
	plant := f.createPlant(t, orgA.ID, "TenantA-1", 100)

	// An out-of-tenant plant is indistinguishable from a missing one, even
	// for an admin who would otherwise be allowed to start events.
	if _, err := f.svc.Start(ctx, adminOf(orgB.ID), startRequest(plant.ID, domain.EventTypeFailure, 10)); !errors.Is(err, plantdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	super := identity.Identity{UserID: 3, Role: identity.RoleSuperAdmin, OrganizationID: orgB.ID}
	if _, err := f.svc.Start(ctx, super, startRequest(plant.ID, domain.EventTypeFailure, 10)); err != nil {
		t.Fatalf("expected super_admin start to succeed, got %v", err)
	}
}

func TestFinishCrossTenantConcealed(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	orgA := f.createOrg(t, "FinishA")
	orgB := f.createOrg(t, "FinishB")
	plant := f.createPlant(t, orgA.ID, "FinishA-1", 100)

	created, err := f.svc.Start(ctx, adminOf(orgA.ID), startRequest(plant.ID, domain.EventTypeMaintenance, 20))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	eventID, _ := snowflake.ParseString(created.ID)

	if _, err := f.svc.Finish(ctx, adminOf(orgB.ID), eventID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentStartSingleWinner(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Race")
	plant := f.createPlant(t, org.ID, "Race-1", 100)
	admin := adminOf(org.ID)

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Start(ctx, admin, startRequest(plant.ID, domain.EventTypeFailure, 50))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrOpenEventExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if conflicts != workers-1 {
		t.Fatalf("expected %d conflicts, got %d", workers-1, conflicts)
	}

	var open int64
	if err := f.db.Model(&domain.PlantEvent{}).Where("power_plant_id = ? AND end_time IS NULL", plant.ID).Count(&open).Error; err != nil {
		t.Fatalf("count open events: %v", err)
	}
	if open != 1 {
		t.Fatalf("expected one open event, got %d", open)
	}
}

func TestStatusMirroringAcrossPlants(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Mirror")
	plantA := f.createPlant(t, org.ID, "Mirror-A", 100)
	plantB := f.createPlant(t, org.ID, "Mirror-B", 200)
	admin := adminOf(org.ID)

	evA, err := f.svc.Start(ctx, admin, startRequest(plantA.ID, domain.EventTypeFailure, 10))
	if err != nil {
		t.Fatalf("start A: %v", err)
	}
	if _, err := f.svc.Start(ctx, admin, startRequest(plantB.ID, domain.EventTypeMaintenance, 20)); err != nil {
		t.Fatalf("start B: %v", err)
	}

	if got := f.plantStatus(t, plantA.ID); got != plantdomain.StatusFailure {
		t.Fatalf("plant A: expected Failure, got %q", got)
	}
	if got := f.plantStatus(t, plantB.ID); got != plantdomain.StatusMaintenance {
		t.Fatalf("plant B: expected Maintenance, got %q", got)
	}

	idA, _ := snowflake.ParseString(evA.ID)
	if _, err := f.svc.Finish(ctx, admin, idA); err != nil {
		t.Fatalf("finish A: %v", err)
	}
	if got := f.plantStatus(t, plantA.ID); got != plantdomain.StatusActive {
		t.Fatalf("plant A after finish: expected Active, got %q", got)
	}
	if got := f.plantStatus(t, plantB.ID); got != plantdomain.StatusMaintenance {
		t.Fatalf("plant B untouched: expected Maintenance, got %q", got)
	}
}

func TestListScopedOrderedWithDerivedStatus(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	orgA := f.createOrg(t, "ListA")
	orgB := f.createOrg(t, "ListB")
	plantA := f.createPlant(t, orgA.ID, "ListA-1", 100)
	plantB := f.createPlant(t, orgB.ID, "ListB-1", 100)
	adminA := adminOf(orgA.ID)
	adminB := adminOf(orgB.ID)

	first, err := f.svc.Start(ctx, adminA, startRequest(plantA.ID, domain.EventTypeMaintenance, 10))
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	firstID, _ := snowflake.ParseString(first.ID)
	f.clk.Advance(time.Hour)
	if _, err := f.svc.Finish(ctx, adminA, firstID); err != nil {
		t.Fatalf("finish first: %v", err)
	}
	f.clk.Advance(time.Hour)
	if _, err := f.svc.Start(ctx, adminA, startRequest(plantA.ID, domain.EventTypeFailure, 20)); err != nil {
		t.Fatalf("start second: %v", err)
	}
	if _, err := f.svc.Start(ctx, adminB, startRequest(plantB.ID, domain.EventTypeFailure, 30)); err != nil {
		t.Fatalf("start other tenant: %v", err)
	}

	events, err := f.svc.List(ctx, analystOf(orgA.ID), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for tenant A, got %d", len(events))
	}
	if events[0].Status != domain.StatusOngoing || events[1].Status != domain.StatusCompleted {
		t.Fatalf("expected [continue, completed], got [%s, %s]", events[0].Status, events[1].Status)
	}
	if events[0].StartTime < events[1].StartTime {
		t.Fatalf("expected start_time descending, got %s before %s", events[0].StartTime, events[1].StartTime)
	}

	// Filtering by a plant outside the tenant is concealed.
	if _, err := f.svc.List(ctx, analystOf(orgA.ID), &plantB.ID); !errors.Is(err, plantdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTriggerFailureSwallowed(t *testing.T) {
	f := setupEventService(t)
	ctx := context.Background()
	org := f.createOrg(t, "Trigger")
	plant := f.createPlant(t, org.ID, "Trigger-1", 100)
	f.trigger.err = errors.New("warehouse unavailable")

	created, err := f.svc.Start(ctx, adminOf(org.ID), startRequest(plant.ID, domain.EventTypeFailure, 10))
	if err != nil {
		t.Fatalf("expected start to succeed despite trigger failure, got %v", err)
	}
	if f.trigger.count() != 1 {
		t.Fatalf("expected one trigger invocation, got %d", f.trigger.count())
	}
	if got := f.plantStatus(t, plant.ID); got != plantdomain.StatusFailure {
		t.Fatalf("expected committed status Failure, got %q", got)
	}

	eventID, _ := snowflake.ParseString(created.ID)
	if _, err := f.svc.Finish(ctx, adminOf(org.ID), eventID); err != nil {
		t.Fatalf("expected finish to succeed despite trigger failure, got %v", err)
	}
	if f.trigger.count() != 2 {
		t.Fatalf("expected two trigger invocations, got %d", f.trigger.count())
	}
}
