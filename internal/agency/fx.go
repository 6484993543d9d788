package agency

import (
	"github.com/vistoriahub/vistoria/internal/agency/repository"
	"github.com/vistoriahub/vistoria/internal/agency/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agency.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
