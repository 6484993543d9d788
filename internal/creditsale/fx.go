package creditsale

import (
	"github.com/vistoriahub/vistoria/internal/creditsale/repository"
	"github.com/vistoriahub/vistoria/internal/creditsale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("creditsale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
