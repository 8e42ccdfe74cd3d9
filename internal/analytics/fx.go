package analytics

import (
	"github.com/vetcita/vetcita/internal/analytics/repository"
	"github.com/vetcita/vetcita/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
