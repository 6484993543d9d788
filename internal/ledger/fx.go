package ledger

import (
	"github.com/vistoriahub/vistoria/internal/ledger/repository"
	"github.com/vistoriahub/vistoria/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
