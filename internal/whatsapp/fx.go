package whatsapp

import (
	"github.com/vetcita/vetcita/internal/whatsapp/repository"
	"github.com/vetcita/vetcita/internal/whatsapp/service"
	"go.uber.org/fx"
)

var Module = fx.Module("whatsapp.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
