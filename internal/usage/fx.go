package usage

import (
	"github.com/vetcita/vetcita/internal/usage/repository"
	"github.com/vetcita/vetcita/internal/usage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
