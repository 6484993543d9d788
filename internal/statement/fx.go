package statement

import (
	"github.com/vistoriahub/vistoria/internal/statement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("statement.service",
	fx.Provide(service.New),
)
