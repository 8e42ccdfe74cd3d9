package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/vetcita/vetcita/internal/adminreport"
	"github.com/vetcita/vetcita/internal/analytics"
	"github.com/vetcita/vetcita/internal/auth"
	"github.com/vetcita/vetcita/internal/authorization"
	"github.com/vetcita/vetcita/internal/businesshours"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/config"
	"github.com/vetcita/vetcita/internal/entitlement"
	"github.com/vetcita/vetcita/internal/member"
	"github.com/vetcita/vetcita/internal/migration"
	"github.com/vetcita/vetcita/internal/observability"
	"github.com/vetcita/vetcita/internal/pet"
	"github.com/vetcita/vetcita/internal/plan"
	"github.com/vetcita/vetcita/internal/ratelimit"
	"github.com/vetcita/vetcita/internal/scheduler"
	"github.com/vetcita/vetcita/internal/server"
	"github.com/vetcita/vetcita/internal/subscription"
	"github.com/vetcita/vetcita/internal/superadmin"
	"github.com/vetcita/vetcita/internal/tenant"
	"github.com/vetcita/vetcita/internal/usage"
	"github.com/vetcita/vetcita/internal/whatsapp"
	"github.com/vetcita/vetcita/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Domain modules
		auth.Module,
		authorization.Module,
		tenant.Module,
		member.Module,
		plan.Module,
		subscription.Module,
		usage.Module,
		entitlement.Module,
		pet.Module,
		whatsapp.Module,
		businesshours.Module,
		superadmin.Module,
		adminreport.Module,
		analytics.Module,
		ratelimit.Module,

		// HTTP surface and background sweep
		server.Module,
		scheduler.Module,
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
