package tenant

import (
	"github.com/vetcita/vetcita/internal/tenant/repository"
	"github.com/vetcita/vetcita/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
