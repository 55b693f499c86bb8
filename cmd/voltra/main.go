package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/auth"
	"github.com/gridpeak/voltra/internal/authz"
	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/config"
	"github.com/gridpeak/voltra/internal/generation"
	"github.com/gridpeak/voltra/internal/market"
	"github.com/gridpeak/voltra/internal/migration"
	"github.com/gridpeak/voltra/internal/observability"
	"github.com/gridpeak/voltra/internal/organization"
	"github.com/gridpeak/voltra/internal/plant"
	"github.com/gridpeak/voltra/internal/plantevent"
	"github.com/gridpeak/voltra/internal/server"
	"github.com/gridpeak/voltra/internal/simulation"
	"github.com/gridpeak/voltra/internal/timewindow"
	"github.com/gridpeak/voltra/internal/user"
	"github.com/gridpeak/voltra/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		timewindow.Module,
		migration.Module,

		// Domain modules
		authz.Module,
		auth.Module,
		organization.Module,
		user.Module,
		plant.Module,
		plantevent.Module,
		generation.Module,
		market.Module,
		simulation.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
