package inspection

import (
	"github.com/vistoriahub/vistoria/internal/inspection/repository"
	"github.com/vistoriahub/vistoria/internal/inspection/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inspection.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
