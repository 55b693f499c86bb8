// Package simulation wraps the downstream recomputation of derived hourly
// energy data. The trigger is strictly best-effort: it runs after an event
// transition has committed, with a bounded single attempt, and its failure is
// logged and swallowed so it can never undo the preceding commit.
package simulation

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Trigger asks the warehouse to recompute derived hourly energy data.
type Trigger interface {
	Recompute(ctx context.Context) error
}

type dbTrigger struct {
	db *gorm.DB
}

// NewTrigger returns a Trigger backed by the warehouse stored procedure.
func NewTrigger(db *gorm.DB) Trigger {
	return &dbTrigger{db: db}
}

func (t *dbTrigger) Recompute(ctx context.Context) error {
	return t.db.WithContext(ctx).Exec(`SELECT simulate_hourly_energy_data()`).Error
}

var Module = fx.Module("simulation",
	fx.Provide(NewTrigger),
)
