package inspector

import (
	"github.com/vistoriahub/vistoria/internal/inspector/repository"
	"github.com/vistoriahub/vistoria/internal/inspector/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inspector.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
