package businesshours

import (
	"github.com/vetcita/vetcita/internal/businesshours/repository"
	"github.com/vetcita/vetcita/internal/businesshours/service"
	"go.uber.org/fx"
)

var Module = fx.Module("businesshours.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
