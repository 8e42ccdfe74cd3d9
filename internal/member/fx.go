package member

import (
	"github.com/vetcita/vetcita/internal/member/repository"
	"github.com/vetcita/vetcita/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
