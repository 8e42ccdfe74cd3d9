package pet

import (
	"github.com/vetcita/vetcita/internal/pet/repository"
	"github.com/vetcita/vetcita/internal/pet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
