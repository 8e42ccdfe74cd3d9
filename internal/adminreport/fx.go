package adminreport

import (
	"github.com/vetcita/vetcita/internal/adminreport/repository"
	"github.com/vetcita/vetcita/internal/adminreport/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adminreport.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
