package migration

import (
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	"github.com/vistoriahub/vistoria/internal/config"
	creditsaledomain "github.com/vistoriahub/vistoria/internal/creditsale/domain"
	inspectiondomain "github.com/vistoriahub/vistoria/internal/inspection/domain"
	inspectordomain "github.com/vistoriahub/vistoria/internal/inspector/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// SQL migrations target postgres; local sqlite and mysql
			// setups rely on the model definitions instead.
			return conn.AutoMigrate(
				&agencydomain.Agency{},
				&creditsaledomain.CreditSale{},
				&creditsaledomain.CreditSalePayment{},
				&inspectordomain.Inspector{},
				&inspectiondomain.Inspection{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
