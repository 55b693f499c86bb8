package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	gendomain "github.com/gridpeak/voltra/internal/generation/domain"
	marketdomain "github.com/gridpeak/voltra/internal/market/domain"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	plantdomain "github.com/gridpeak/voltra/internal/plant/domain"
	eventdomain "github.com/gridpeak/voltra/internal/plantevent/domain"
	userdomain "github.com/gridpeak/voltra/internal/user/domain"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

// RunMigrations applies the embedded schema migrations on postgres. The
// schema is created automatically on startup so a fresh instance is usable
// out of the box.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate creates the schema through gorm for sqlite, where the SQL
// migrations do not apply. The partial unique index guarding the single
// open event is created explicitly since gorm cannot express it.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orgdomain.Organization{},
		&userdomain.User{},
		&plantdomain.PowerPlant{},
		&eventdomain.PlantEvent{},
		&gendomain.GenerationData{},
		&marketdomain.MarketPrice{},
		&marketdomain.NationalConsumption{},
	); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_plant_events_open
		 ON plant_events (power_plant_id) WHERE end_time IS NULL`,
	).Error
}
