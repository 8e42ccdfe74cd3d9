package superadmin

import (
	"github.com/vetcita/vetcita/internal/superadmin/repository"
	"github.com/vetcita/vetcita/internal/superadmin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("superadmin.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
