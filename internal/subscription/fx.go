package subscription

import (
	"github.com/vetcita/vetcita/internal/subscription/repository"
	"github.com/vetcita/vetcita/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
